package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campuslink/internal/db"
	"campuslink/internal/middleware"
	"campuslink/internal/models"
	"campuslink/internal/services"
	"campuslink/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	MaxTitleLength = 300
	MaxTextLength  = 5000
	FeedPageSize   = 20
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type createPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
	Category string `json:"category" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if !user.IsActivated {
		Fail(c, http.StatusForbidden, "verify your email before posting")
		return
	}
	if !services.CanCreatePost(user.ID) {
		Fail(c, http.StatusTooManyRequests, "daily post limit reached, try again tomorrow")
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "title and category are required")
		return
	}

	title := utils.SanitizeText(strings.TrimSpace(req.Title))
	if title == "" || len(title) > MaxTitleLength {
		Fail(c, http.StatusBadRequest, fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLength))
		return
	}
	if len(req.Text) > MaxTextLength {
		Fail(c, http.StatusBadRequest, fmt.Sprintf("text must be at most %d characters", MaxTextLength))
		return
	}

	var category models.Category
	if err := db.DB.Where("name = ?", req.Category).First(&category).Error; err != nil {
		Fail(c, http.StatusBadRequest, "unknown category")
		return
	}

	post := models.Post{
		Pid:        utils.NewPid(),
		UserID:     user.ID,
		CategoryID: category.ID,
		Title:      title,
		Text:       req.Text,
		ImageURL:   strings.TrimSpace(req.ImageURL),
	}
	if err := db.DB.Create(&post).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}

	utils.GetCache().Delete(feedCacheKey(1))
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func feedCacheKey(page int) string {
	return fmt.Sprintf("post:feed:%d", page)
}

// List returns the public feed: sticky posts first, then newest, suspended
// posts hidden from everyone but admins.
func (h *PostHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	isAdmin := user != nil && user.Role == "admin"
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	// First page for anonymous readers is the hot path; cache it briefly.
	cacheable := !isAdmin && page == 1
	if cacheable {
		if cached := utils.GetCache().Get(feedCacheKey(page)); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	query := db.DB.Preload("User").Preload("Category")
	if !isAdmin {
		query = query.Where("is_suspended = ?", false)
	}

	var posts []models.Post
	if err := query.
		Order("sticky DESC, created_at DESC").
		Offset((page - 1) * FeedPageSize).
		Limit(FeedPageSize).
		Find(&posts).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}

	payload := gin.H{"posts": posts, "page": page}
	if cacheable {
		utils.GetCache().Set(feedCacheKey(page), payload, 30*time.Second)
	}
	c.JSON(http.StatusOK, payload)
}

// ListByCategory filters the feed by category name.
func (h *PostHandler) ListByCategory(c *gin.Context) {
	user := middleware.CurrentUser(c)
	isAdmin := user != nil && user.Role == "admin"

	var category models.Category
	if err := db.DB.Where("name = ?", c.Param("name")).First(&category).Error; err != nil {
		Fail(c, http.StatusNotFound, "unknown category")
		return
	}

	query := db.DB.Preload("User").Preload("Category").Where("category_id = ?", category.ID)
	if !isAdmin {
		query = query.Where("is_suspended = ?", false)
	}

	var posts []models.Post
	if err := query.Order("sticky DESC, created_at DESC").Limit(FeedPageSize).Find(&posts).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "category": category})
}

// ListByUser returns a member's posts, newest first.
func (h *PostHandler) ListByUser(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	isAdmin := viewer != nil && viewer.Role == "admin"
	userID := utils.StringToUint(c.Param("id"))

	query := db.DB.Preload("User").Preload("Category").Where("user_id = ?", userID)
	if !isAdmin {
		query = query.Where("is_suspended = ?", false)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Limit(FeedPageSize).Find(&posts).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// Search matches post titles, case-insensitive.
func (h *PostHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"posts": []models.Post{}})
		return
	}

	var posts []models.Post
	if err := db.DB.Preload("User").Preload("Category").
		Where("is_suspended = ?", false).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("created_at DESC").
		Limit(FeedPageSize).
		Find(&posts).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// Detail returns one post with rendered HTML, its comments, and (for logged
// in viewers) their vote on it.
func (h *PostHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")
	viewer := middleware.CurrentUser(c)
	isAdmin := viewer != nil && viewer.Role == "admin"

	var post models.Post
	if err := db.DB.Preload("User").Preload("Category").Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, http.StatusNotFound, "post not found")
			return
		}
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	if post.IsSuspended && !isAdmin && (viewer == nil || viewer.ID != post.UserID) {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	comments, err := services.ListComments(post.ID)
	if err != nil {
		FailWith(c, err)
		return
	}

	payload := gin.H{
		"post":      post,
		"text_html": utils.RenderMarkdown(post.Text),
		"comments":  comments,
	}
	if viewer != nil {
		vote, _ := services.GetVote(viewer.ID, models.TargetPost, post.ID)
		payload["my_vote"] = vote
	}
	c.JSON(http.StatusOK, payload)
}

type updatePostRequest struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != user.ID && user.Role != "admin" {
		Fail(c, http.StatusForbidden, "you can only edit your own posts")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if title := utils.SanitizeText(strings.TrimSpace(req.Title)); title != "" && len(title) <= MaxTitleLength {
		updates["title"] = title
	}
	if req.Text != "" && len(req.Text) <= MaxTextLength {
		updates["text"] = req.Text
	}
	if req.ImageURL != "" {
		updates["image_url"] = strings.TrimSpace(req.ImageURL)
	}
	if req.Category != "" {
		var category models.Category
		if err := db.DB.Where("name = ?", req.Category).First(&category).Error; err != nil {
			Fail(c, http.StatusBadRequest, "unknown category")
			return
		}
		updates["category_id"] = category.ID
	}
	if len(updates) == 0 {
		Fail(c, http.StatusBadRequest, "nothing to update")
		return
	}

	if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}

	utils.GetCache().Delete(feedCacheKey(1))
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Delete removes a post with everything hanging off it: comments, votes on
// the post and its comments, and reports. Visibility ends immediately
// regardless of report state.
func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != user.ID && user.Role != "admin" {
		Fail(c, http.StatusForbidden, "you can only delete your own posts")
		return
	}

	if err := DeletePostCascade(&post); err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}

	utils.GetCache().Delete(feedCacheKey(1))
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// DeletePostCascade removes a post and its dependent rows in one transaction.
// Shared with the admin moderation handler.
func DeletePostCascade(post *models.Post) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var comments []models.Comment
		if err := tx.Where("post_id = ?", post.ID).Find(&comments).Error; err != nil {
			return err
		}
		for _, comment := range comments {
			if err := tx.Where("target_type = ? AND target_id = ?",
				models.TargetComment, comment.ID).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("content_type = ? AND content_id = ?",
				models.TargetComment, comment.ID).Delete(&models.Report{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?",
			models.TargetPost, post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_type = ? AND content_id = ?",
			models.TargetPost, post.ID).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// SuggestCategory proxies a draft to the model for a category suggestion.
func (h *PostHandler) SuggestCategory(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Title == "" && req.Text == "") {
		Fail(c, http.StatusBadRequest, "title or text is required")
		return
	}

	var categories []models.Category
	if err := db.DB.Order("id").Find(&categories).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	suggestion, err := services.GetSuggestService().SuggestCategory(req.Title, req.Text, names)
	if err != nil {
		Fail(c, http.StatusBadGateway, "category suggestion unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": suggestion})
}
