package services

import (
	"errors"
	"strings"
	"time"

	"campuslink/internal/db"
	"campuslink/internal/models"

	"gorm.io/gorm"
)

const MaxCommentLength = 2000

// PostComment creates the author's single comment on a post. Each author
// holds one comment slot per post; a second create fails with
// ErrDuplicateComment and the caller must edit instead. The comment row and
// the post's comments_count move together in one transaction.
func PostComment(postID, authorID uint, text string) (*models.Comment, error) {
	if authorID == 0 {
		return nil, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" || len(text) > MaxCommentLength {
		return nil, errors.New("comment must be between 1 and 2000 characters")
	}

	var comment models.Comment
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := withUpdateLock(tx).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Comment
		lookup := tx.Where("post_id = ? AND user_id = ?", postID, authorID).First(&existing)
		if lookup.Error == nil {
			return ErrDuplicateComment
		}
		if !errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
			return lookup.Error
		}

		comment = models.Comment{
			PostID: postID,
			UserID: authorID,
			Text:   text,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		return tx.Model(&post).UpdateColumn("comments_count", post.CommentsCount+1).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateComment) {
			return nil, err
		}
		return nil, storeErr(err)
	}

	GetTallyService().ScheduleSync(models.TargetPost, postID)
	return &comment, nil
}

// EditComment replaces the text of the author's comment on a post and stamps
// edited_at. Identity and created_at are preserved.
func EditComment(postID, authorID uint, newText string) error {
	if authorID == 0 {
		return ErrUnauthenticated
	}
	newText = strings.TrimSpace(newText)
	if newText == "" || len(newText) > MaxCommentLength {
		return errors.New("comment must be between 1 and 2000 characters")
	}

	now := time.Now()
	result := db.DB.Model(&models.Comment{}).
		Where("post_id = ? AND user_id = ?", postID, authorID).
		Updates(map[string]interface{}{
			"text":      newText,
			"edited_at": &now,
		})
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment frees the author's comment slot on a post and decrements the
// post's comments_count, floored at zero, in the same transaction. Votes on
// the comment are removed with it.
func DeleteComment(postID, authorID uint) error {
	if authorID == 0 {
		return ErrUnauthenticated
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Where("post_id = ? AND user_id = ?", postID, authorID).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?",
			models.TargetComment, comment.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		var post models.Post
		if err := withUpdateLock(tx).First(&post, postID).Error; err != nil {
			return err
		}
		count := post.CommentsCount - 1
		if count < 0 {
			count = 0
		}
		return tx.Model(&post).UpdateColumn("comments_count", count).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return storeErr(err)
	}

	GetTallyService().ScheduleSync(models.TargetPost, postID)
	return nil
}

// ListComments returns a post's comments oldest first.
func ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}
