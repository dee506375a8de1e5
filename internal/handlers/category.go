package handlers

import (
	"net/http"

	"campuslink/internal/db"
	"campuslink/internal/models"
	"campuslink/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List returns all post categories in insertion order.
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := db.DB.Order("id").Find(&categories).Error; err != nil {
		FailWith(c, services.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
