package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/auth"
	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
	"github.com/bookitlabs/bookit-server/internal/validators"
)

// StaffAdminHandler manages staff accounts and their service
// assignments. Admin-only.
type StaffAdminHandler struct {
	db *gorm.DB
}

func NewStaffAdminHandler(db *gorm.DB) *StaffAdminHandler {
	return &StaffAdminHandler{db: db}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
}

type UpdateStaffRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty"`
	Title     *string `json:"title,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type AssignServiceRequest struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	CustomPrice *float64 `json:"custom_price"`
}

// --------- Handlers ---------

func (h *StaffAdminHandler) List(c *gin.Context) {
	var staff []models.Staff
	if err := h.db.Order("display_order ASC, id ASC").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_staff"})
		return
	}

	c.JSON(http.StatusOK, staff)
}

func (h *StaffAdminHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	role := req.Role
	if role != "admin" {
		role = "staff"
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	staff := models.Staff{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		Title:        req.Title,
		Bio:          req.Bio,
		Active:       true,
	}

	if err := h.db.Create(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_staff"})
		return
	}

	c.JSON(http.StatusCreated, staff)
}

func (h *StaffAdminHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var staff models.Staff
	if err := h.db.First(&staff, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_staff"})
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.FirstName != nil {
		staff.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		staff.LastName = *req.LastName
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Role != nil && (*req.Role == "staff" || *req.Role == "admin") {
		staff.Role = *req.Role
	}
	if req.Title != nil {
		staff.Title = *req.Title
	}
	if req.Bio != nil {
		staff.Bio = *req.Bio
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.Save(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_staff"})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// Delete soft-deletes the staff member; their bookings keep the FK.
func (h *StaffAdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Delete(&models.Staff{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_staff"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AssignService links a staff member to a service, optionally with a
// price override. Re-assigning updates the override in place.
func (h *StaffAdminHandler) AssignService(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_staff_id"})
		return
	}

	var req AssignServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var staff models.Staff
	if err := h.db.First(&staff, staffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var link models.StaffService
	err = h.db.
		Where("staff_id = ? AND service_id = ?", staffID, req.ServiceID).
		First(&link).Error

	if err == gorm.ErrRecordNotFound {
		link = models.StaffService{
			StaffID:     uint(staffID),
			ServiceID:   req.ServiceID,
			CustomPrice: req.CustomPrice,
		}
		if err := h.db.Create(&link).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_assign_service"})
			return
		}
		c.JSON(http.StatusCreated, link)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_assign_service"})
		return
	}

	link.CustomPrice = req.CustomPrice
	if err := h.db.Save(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_assign_service"})
		return
	}

	c.JSON(http.StatusOK, link)
}

// ListStaffForService returns the active staff who perform a service,
// with their effective prices. Public: feeds wizard step 2.
func (h *StaffAdminHandler) ListStaffForService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Service is required.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND active = ?", serviceID, true).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var links []models.StaffService
	if err := h.db.Where("service_id = ?", serviceID).Find(&links).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	priceByStaff := make(map[uint]float64, len(links))
	ids := make([]uint, 0, len(links))
	for i := range links {
		priceByStaff[links[i].StaffID] = models.EffectivePrice(&svc, &links[i])
		ids = append(ids, links[i].StaffID)
	}

	var staff []models.Staff
	if len(ids) > 0 {
		if err := h.db.
			Where("id IN ? AND active = ?", ids, true).
			Order("display_order ASC, id ASC").
			Find(&staff).Error; err != nil {
			httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
			return
		}
	}

	out := make([]gin.H, 0, len(staff))
	for _, s := range staff {
		out = append(out, gin.H{
			"id":        s.ID,
			"name":      s.FullName(),
			"title":     s.Title,
			"photo_url": s.PhotoURL,
			"price":     priceByStaff[s.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"service_id": svc.ID, "staff": out})
}
