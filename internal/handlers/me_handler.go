package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/middleware"
	"github.com/bookitlabs/bookit-server/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	staffIDVal, exists := c.Get(middleware.ContextStaffID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff_not_in_context"})
		return
	}

	staffID, ok := staffIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_staff_id_type"})
		return
	}

	var staff models.Staff
	if err := h.db.First(&staff, staffID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "staff_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": gin.H{
			"id":        staff.ID,
			"name":      staff.FullName(),
			"email":     staff.Email,
			"phone":     staff.Phone,
			"role":      staff.Role,
			"title":     staff.Title,
			"bio":       staff.Bio,
			"photo_url": staff.PhotoURL,
		},
	})
}
