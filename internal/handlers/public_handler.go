package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
	ucBooking "github.com/bookitlabs/bookit-server/internal/usecase/booking"
	"github.com/bookitlabs/bookit-server/internal/wizard"
)

// PublicHandler serves the unauthenticated booking surface: service
// catalogue, availability, service selection and checkout.
type PublicHandler struct {
	db           *gorm.DB
	manager      *wizard.Manager
	wizardH      *WizardHandler
	availability *ucBooking.GetAvailability
	createUC     *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	manager *wizard.Manager,
	wizardH *WizardHandler,
	availability *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		manager:      manager,
		wizardH:      wizardH,
		availability: availability,
		createUC:     createUC,
	}
}

// --------- DTOs ---------

type SelectServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// --------- Services ---------

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Preload("Categories", "active = ?", true).
		Where("active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// SelectService verifies the service and advances the wizard to step 2.
func (h *PublicHandler) SelectService(c *gin.Context) {
	id, ok := h.wizardH.requireSession(c)
	if !ok {
		return
	}

	var req SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service is required.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND active = ?", req.ServiceID, true).
		First(&svc).Error; err != nil {

		httperr.NotFound(c, "invalid_service", "Service not found or inactive.")
		return
	}

	state, newID, err := h.manager.SelectService(
		c.Request.Context(),
		id,
		svc.ID,
		svc.Name,
		svc.DurationMin,
		svc.Price,
	)
	if err != nil {
		logrus.WithError(err).Error("wizard service selection failed")
		httperr.Internal(c, "session_unavailable", "Could not update booking session.")
		return
	}

	h.wizardH.setCookie(c, newID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"service": gin.H{
			"id":       svc.ID,
			"name":     svc.Name,
			"duration": svc.DurationMin,
			"price":    svc.Price,
		},
		"next_step": state.CurrentStep,
	})
}

// --------- Availability ---------

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	staffIDStr := c.Query("staff_id")
	serviceIDStr := c.Query("service_id")

	if date == "" || staffIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date, staff and service are required.")
		return
	}

	staffID, err1 := strconv.ParseUint(staffIDStr, 10, 64)
	serviceID, err2 := strconv.ParseUint(serviceIDStr, 10, 64)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_params", "Invalid staff or service.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		StaffID:   uint(staffID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// --------- Checkout ---------

// CreateBooking finalizes the wizard: the session must already hold a
// service, staff, date, time and contact details. The slot itself is
// arbitrated by the bookings table's unique index.
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	id, ok := h.wizardH.requireSession(c)
	if !ok {
		return
	}

	state, err := h.manager.Load(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("wizard session load failed")
		httperr.Internal(c, "session_unavailable", "Could not load booking session.")
		return
	}

	if state.ServiceID == nil || state.StaffID == nil ||
		state.Date == nil || state.Time == nil {
		httperr.BadRequest(c, "incomplete_wizard", "Booking details are incomplete.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ServiceID:     *state.ServiceID,
		StaffID:       *state.StaffID,
		Date:          *state.Date,
		Time:          *state.Time,
		CustomerName:  state.Customer["name"],
		CustomerEmail: state.Customer["email"],
		CustomerPhone: state.Customer["phone"],
		Notes:         state.Customer["notes"],
	})

	if err != nil {
		mapCreateBookingError(c, err)
		return
	}

	// Wizard is done; reset so a reused cookie starts clean.
	if _, err := h.manager.Clear(c.Request.Context(), id); err != nil {
		logrus.WithError(err).Warn("wizard session clear failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": b,
	})
}

func mapCreateBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "That time slot has just been booked.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "invalid_customer"):
		httperr.BadRequest(c, "invalid_customer", "Name and a valid email are required.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Service not found.")
	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
	default:
		logrus.WithError(err).Error("booking creation failed")
		httperr.Internal(c, "booking_failed", "Could not create booking.")
	}
}
