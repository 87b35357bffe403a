package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/httpresp"
	"github.com/bookitlabs/bookit-server/internal/models"
)

type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

func (h *PaymentHandler) List(c *gin.Context) {
	q := h.db.Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if pType := c.Query("type"); pType != "" {
		q = q.Where("type = ?", pType)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_payments"})
		return
	}

	httpresp.List(c, payments)
}
