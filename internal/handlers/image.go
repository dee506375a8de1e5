package handlers

import (
	"net/http"
	"strings"

	"campuslink/internal/services"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20 // 5 MB

type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload accepts a multipart image and forwards it to Cloudinary, returning
// the hosted URL for inclusion in a post.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		Fail(c, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		Fail(c, http.StatusRequestEntityTooLarge, "image must be at most 5 MB")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		Fail(c, http.StatusBadRequest, "file must be an image")
		return
	}

	result, err := services.UploadImage(file, header)
	if err != nil {
		Fail(c, http.StatusBadGateway, "image upload failed, please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": result.URL})
}
