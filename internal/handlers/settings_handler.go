package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/models"
	"github.com/bookitlabs/bookit-server/internal/timezone"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	var settings []models.Setting
	if err := h.db.Order("key ASC").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_settings"})
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	c.JSON(http.StatusOK, gin.H{"settings": out})
}

type SettingsUpdateRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if tz, ok := req.Settings["timezone"]; ok && !timezone.IsValid(tz) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
		return
	}

	for key, value := range req.Settings {
		var s models.Setting
		err := h.db.Where("key = ?", key).First(&s).Error

		if err == gorm.ErrRecordNotFound {
			if err := h.db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_settings"})
				return
			}
			continue
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_settings"})
			return
		}

		s.Value = value
		if err := h.db.Save(&s).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
