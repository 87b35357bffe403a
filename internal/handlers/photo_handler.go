package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/media"
	"github.com/bookitlabs/bookit-server/internal/middleware"
	"github.com/bookitlabs/bookit-server/internal/models"
)

// Uploads above this size are rejected before decoding.
const maxPhotoBytes = 10 << 20

type PhotoHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewPhotoHandler(db *gorm.DB, uploader *media.Uploader) *PhotoHandler {
	return &PhotoHandler{db: db, uploader: uploader}
}

// Upload stores the staff member's profile photo and records its URL.
func (h *PhotoHandler) Upload(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_photo"})
		return
	}

	if file.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo_too_large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_photo"})
		return
	}
	defer src.Close()

	url, err := h.uploader.UploadStaffPhoto(c.Request.Context(), staffID, src)
	if err != nil {
		logrus.WithError(err).Error("photo upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
		return
	}

	if err := h.db.Model(&models.Staff{}).
		Where("id = ?", staffID).
		Update("photo_url", url).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_photo_url"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
