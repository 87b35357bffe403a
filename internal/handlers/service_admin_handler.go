package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/models"
)

// ServiceAdminHandler manages the service catalogue and its categories.
// Admin-only.
type ServiceAdminHandler struct {
	db *gorm.DB
}

func NewServiceAdminHandler(db *gorm.DB) *ServiceAdminHandler {
	return &ServiceAdminHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	DurationMin     int      `json:"duration_min" binding:"required,min=1"`
	Price           float64  `json:"price" binding:"required"`
	DepositAmount   *float64 `json:"deposit_amount"`
	DepositType     string   `json:"deposit_type"`
	BufferBeforeMin int      `json:"buffer_before_min"`
	BufferAfterMin  int      `json:"buffer_after_min"`
	CategoryIDs     []uint   `json:"category_ids"`
}

type UpdateServiceRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	DurationMin   *int     `json:"duration_min,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	DepositAmount *float64 `json:"deposit_amount,omitempty"`
	DepositType   *string  `json:"deposit_type,omitempty"`
	Active        *bool    `json:"active,omitempty"`
	DisplayOrder  *int     `json:"display_order,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// --------- Services ---------

func (h *ServiceAdminHandler) List(c *gin.Context) {
	q := h.db.Preload("Categories")

	if activeStr := strings.TrimSpace(c.Query("active")); activeStr != "" {
		q = q.Where("active = ?", activeStr == "true")
	}

	var services []models.Service
	if err := q.Order("display_order ASC, id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceAdminHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	depositType := req.DepositType
	if depositType == "" {
		depositType = "fixed"
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		Price:           req.Price,
		DepositAmount:   req.DepositAmount,
		DepositType:     depositType,
		BufferBeforeMin: req.BufferBeforeMin,
		BufferAfterMin:  req.BufferAfterMin,
		Active:          true,
	}

	if len(req.CategoryIDs) > 0 {
		var categories []models.Category
		if err := h.db.Find(&categories, req.CategoryIDs).Error; err == nil {
			svc.Categories = categories
		}
	}

	if err := h.db.Create(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceAdminHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DepositAmount != nil {
		svc.DepositAmount = req.DepositAmount
	}
	if req.DepositType != nil {
		svc.DepositType = *req.DepositType
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.DisplayOrder != nil {
		svc.DisplayOrder = *req.DisplayOrder
	}

	if err := h.db.Save(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Delete soft-deletes the service; past bookings keep their reference.
func (h *ServiceAdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Categories ---------

func (h *ServiceAdminHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}

	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}
