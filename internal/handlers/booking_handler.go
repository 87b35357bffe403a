package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/middleware"
	ucBooking "github.com/bookitlabs/bookit-server/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	transitions *ucBooking.TransitionBooking
	listings    *ucBooking.ListBookings
}

func NewBookingHandler(
	transitions *ucBooking.TransitionBooking,
	listings *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		transitions: transitions,
		listings:    listings,
	}
}

// --------- DTOs ---------

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// LISTINGS
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	items, err := h.listings.ByDate(c.Request.Context(), staffID, date)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "bookings": items})
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Year and month are required.")
		return
	}

	items, err := h.listings.ByMonth(c.Request.Context(), staffID, year, month)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_month") {
			httperr.BadRequest(c, "invalid_month", "Month must be between 1 and 12.")
			return
		}
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "bookings": items})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, "confirm")
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, "cancel")
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, "complete")
}

func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, "no_show")
}

func (h *BookingHandler) transition(c *gin.Context, action string) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking ID.")
		return
	}

	var result any
	var ucErr error

	switch action {
	case "confirm":
		result, ucErr = h.transitions.Confirm(c.Request.Context(), staffID, uint(bookingID))
	case "cancel":
		var req CancelBookingRequest
		// Reason is optional; an empty body is fine.
		_ = c.ShouldBindJSON(&req)
		result, ucErr = h.transitions.Cancel(c.Request.Context(), staffID, uint(bookingID), req.Reason)
	case "complete":
		result, ucErr = h.transitions.Complete(c.Request.Context(), staffID, uint(bookingID))
	case "no_show":
		result, ucErr = h.transitions.MarkNoShow(c.Request.Context(), staffID, uint(bookingID))
	}

	if ucErr != nil {
		switch {
		case httperr.IsBusiness(ucErr, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(ucErr, "invalid_state"):
			httperr.Conflict(c, "invalid_state", "Booking cannot change to that status.")
		default:
			logrus.WithError(ucErr).Error("booking transition failed")
			httperr.Internal(c, "transition_failed", "Could not update booking.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
