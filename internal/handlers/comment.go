package handlers

import (
	"net/http"

	"campuslink/internal/db"
	"campuslink/internal/middleware"
	"campuslink/internal/models"
	"campuslink/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

func findPostByPid(c *gin.Context) (*models.Post, bool) {
	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return nil, false
	}
	return &post, true
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create adds the caller's comment on a post. Each member gets one comment
// slot per post; a second attempt returns 409 and the member should edit
// their existing comment instead.
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	post, ok := findPostByPid(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "text is required")
		return
	}

	comment, err := services.PostComment(post.ID, user.ID, req.Text)
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Update rewrites the caller's comment on a post.
func (h *CommentHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	post, ok := findPostByPid(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "text is required")
		return
	}

	if err := services.EditComment(post.ID, user.ID, req.Text); err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment updated"})
}

// Delete removes the caller's comment on a post, freeing the slot.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	post, ok := findPostByPid(c)
	if !ok {
		return
	}

	if err := services.DeleteComment(post.ID, user.ID); err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// List returns a post's comments oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	post, ok := findPostByPid(c)
	if !ok {
		return
	}

	comments, err := services.ListComments(post.ID)
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
