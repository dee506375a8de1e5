package handlers

import (
	"net/http"
	"strings"
	"time"

	"campuslink/internal/db"
	"campuslink/internal/models"
	"campuslink/internal/services"
	"campuslink/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ListSuspended returns posts pulled from the feed by the report threshold,
// newest first, so moderators can work through the backlog.
func (h *AdminHandler) ListSuspended(c *gin.Context) {
	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Category").
		Where("is_suspended = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DeletePost removes a post and its dependent rows, resolving open reports
// against it.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	var post models.Post
	if err := db.DB.First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}
	if err := DeletePostCascade(&post); err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	utils.GetCache().Delete(feedCacheKey(1))
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// DeleteComment removes any member's comment along with its votes and
// reports.
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.First(&comment, utils.StringToUint(c.Param("id"))).Error; err != nil {
		Fail(c, http.StatusNotFound, "comment not found")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?",
			models.TargetComment, comment.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_type = ? AND content_id = ?",
			models.TargetComment, comment.ID).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ? AND comments_count > 0", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
	})
	if err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// BanUser blocks an account from logging in or being loaded from a session.
func (h *AdminHandler) BanUser(c *gin.Context) {
	now := time.Now()
	result := db.DB.Model(&models.User{}).
		Where("id = ? AND role <> ?", utils.StringToUint(c.Param("id")), "admin").
		Updates(map[string]interface{}{"is_banned": true, "banned_at": &now})
	if result.Error != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	if result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "user not found or not bannable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user banned"})
}

// UnbanUser restores a banned account.
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	result := db.DB.Model(&models.User{}).
		Where("id = ?", utils.StringToUint(c.Param("id"))).
		Updates(map[string]interface{}{"is_banned": false, "banned_at": nil})
	if result.Error != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	if result.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unbanned"})
}

// LookupUser finds a member by email for the moderation console, with their
// posts and comments attached.
func (h *AdminHandler) LookupUser(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		Fail(c, http.StatusBadRequest, "email query parameter is required")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Fail(c, http.StatusNotFound, "no account with that email")
		return
	}

	var posts []models.Post
	db.DB.Preload("Category").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&posts)

	var comments []models.Comment
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&comments)

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"posts":    posts,
		"comments": comments,
	})
}
