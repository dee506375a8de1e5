package services

import (
	"errors"

	"campuslink/internal/db"
	"campuslink/internal/models"

	"gorm.io/gorm"
)

// Reactions is the persisted tally of a votable target.
type Reactions struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

const (
	VoteUp   = 1
	VoteDown = -1
)

// CastVote applies one voter's action on a post or comment and returns the
// updated tally. First vote creates the record, a repeat of the same polarity
// removes it (toggle off), the opposite polarity flips it. The vote row and
// the target's counters are read and written inside a single transaction with
// the target row locked, so concurrent casts by the same voter serialize.
func CastVote(voterID uint, targetType string, targetID uint, value int) (Reactions, error) {
	if voterID == 0 {
		return Reactions{}, ErrUnauthenticated
	}
	if value != VoteUp && value != VoteDown {
		return Reactions{}, errors.New("invalid vote value")
	}
	if targetType != models.TargetPost && targetType != models.TargetComment {
		return Reactions{}, errors.New("invalid vote target type")
	}

	var tally Reactions
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		up, down, err := lockTarget(tx, targetType, targetID)
		if err != nil {
			return err
		}

		var existing models.Vote
		lookup := tx.Where("target_type = ? AND target_id = ? AND user_id = ?",
			targetType, targetID, voterID).First(&existing)

		switch {
		case lookup.Error == nil && existing.Value == value:
			// Toggle off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if value == VoteUp {
				up--
			} else {
				down--
			}
		case lookup.Error == nil:
			// Flip polarity
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return err
			}
			if value == VoteUp {
				up++
				down--
			} else {
				down++
				up--
			}
		case errors.Is(lookup.Error, gorm.ErrRecordNotFound):
			vote := models.Vote{
				TargetType: targetType,
				TargetID:   targetID,
				UserID:     voterID,
				Value:      value,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if value == VoteUp {
				up++
			} else {
				down++
			}
		default:
			return lookup.Error
		}

		// Counters never go negative; clamping defends the tally against
		// drift left behind by interrupted writes.
		if up < 0 {
			up = 0
		}
		if down < 0 {
			down = 0
		}

		tally = Reactions{Upvotes: up, Downvotes: down}
		return writeTally(tx, targetType, targetID, tally)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reactions{}, err
		}
		return Reactions{}, storeErr(err)
	}

	GetTallyService().ScheduleSync(targetType, targetID)
	return tally, nil
}

// GetVote reports the voter's current stance on a target: "up", "down" or ""
// when no vote exists. Pure read, no side effects.
func GetVote(voterID uint, targetType string, targetID uint) (string, error) {
	if voterID == 0 {
		return "", ErrUnauthenticated
	}

	var vote models.Vote
	err := db.DB.Where("target_type = ? AND target_id = ? AND user_id = ?",
		targetType, targetID, voterID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storeErr(err)
	}

	if vote.Value == VoteUp {
		return "up", nil
	}
	return "down", nil
}

// lockTarget reads the target's tally under a row lock.
func lockTarget(tx *gorm.DB, targetType string, targetID uint) (up, down int, err error) {
	locked := withUpdateLock(tx)
	if targetType == models.TargetPost {
		var post models.Post
		if err := locked.First(&post, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, ErrNotFound
			}
			return 0, 0, err
		}
		return post.Upvotes, post.Downvotes, nil
	}

	var comment models.Comment
	if err := locked.First(&comment, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return comment.Upvotes, comment.Downvotes, nil
}

func writeTally(tx *gorm.DB, targetType string, targetID uint, tally Reactions) error {
	updates := map[string]interface{}{
		"upvotes":   tally.Upvotes,
		"downvotes": tally.Downvotes,
	}
	if targetType == models.TargetPost {
		return tx.Model(&models.Post{}).Where("id = ?", targetID).Updates(updates).Error
	}
	return tx.Model(&models.Comment{}).Where("id = ?", targetID).Updates(updates).Error
}
