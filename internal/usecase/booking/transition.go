package booking

import (
	"context"
	"time"

	"github.com/bookitlabs/bookit-server/internal/audit"
	domain "github.com/bookitlabs/bookit-server/internal/domain/booking"
	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
)

// TransitionBooking applies a staff-initiated status change (confirm,
// cancel, complete, no-show) guarded by the domain transition rules.
type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionBooking) Confirm(
	ctx context.Context,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {
	return uc.apply(ctx, staffID, bookingID, "booking_confirmed",
		func(b *models.Booking) error {
			return domain.Confirm(b)
		})
}

func (uc *TransitionBooking) Cancel(
	ctx context.Context,
	staffID uint,
	bookingID uint,
	reason string,
) (*models.Booking, error) {
	return uc.apply(ctx, staffID, bookingID, "booking_cancelled",
		func(b *models.Booking) error {
			return domain.Cancel(b, reason, time.Now())
		})
}

func (uc *TransitionBooking) Complete(
	ctx context.Context,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {
	return uc.apply(ctx, staffID, bookingID, "booking_completed",
		func(b *models.Booking) error {
			return domain.Complete(b, time.Now())
		})
}

func (uc *TransitionBooking) MarkNoShow(
	ctx context.Context,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {
	return uc.apply(ctx, staffID, bookingID, "booking_no_show",
		func(b *models.Booking) error {
			return domain.MarkNoShow(b)
		})
}

func (uc *TransitionBooking) apply(
	ctx context.Context,
	staffID uint,
	bookingID uint,
	action string,
	transition func(*models.Booking) error,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := transition(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StaffID:  &staffID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
