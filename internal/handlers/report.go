package handlers

import (
	"net/http"

	"campuslink/internal/db"
	"campuslink/internal/middleware"
	"campuslink/internal/models"
	"campuslink/internal/services"
	"campuslink/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

type fileReportRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ContentID   uint   `json:"content_id" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Reason      string `json:"reason"`
}

// Create files a report against a post or comment. The content owner is
// resolved server side so a forged owner id in the request cannot bypass the
// self-report check.
func (h *ReportHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req fileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "content_type, content_id and category are required")
		return
	}

	var ownerID uint
	switch req.ContentType {
	case models.TargetPost:
		var post models.Post
		if err := db.DB.Select("user_id").First(&post, req.ContentID).Error; err != nil {
			Fail(c, http.StatusNotFound, "reported content not found")
			return
		}
		ownerID = post.UserID
	case models.TargetComment:
		var comment models.Comment
		if err := db.DB.Select("user_id").First(&comment, req.ContentID).Error; err != nil {
			Fail(c, http.StatusNotFound, "reported content not found")
			return
		}
		ownerID = comment.UserID
	default:
		Fail(c, http.StatusBadRequest, "content_type must be post or comment")
		return
	}

	err := services.FileReport(user.ID, req.ContentType, req.ContentID, ownerID, req.Category, req.Reason)
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "report filed"})
}

// Categories lists the accepted report categories so clients stay in sync
// with the server's validation.
func (h *ReportHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.ReportCategories})
}

// List returns the moderation queue, newest first. Admin only.
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := services.ListReports()
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Dismiss marks a report reviewed without touching the content. Admin only.
func (h *ReportHandler) Dismiss(c *gin.Context) {
	reportID := utils.StringToUint(c.Param("id"))
	if err := services.DismissReport(reportID); err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report dismissed"})
}
