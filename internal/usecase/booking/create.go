package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bookitlabs/bookit-server/internal/audit"
	domain "github.com/bookitlabs/bookit-server/internal/domain/booking"
	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
	"github.com/bookitlabs/bookit-server/internal/payments"
	"github.com/bookitlabs/bookit-server/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uint
	StaffID   uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	gateway payments.Gateway
	audit   *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	gateway payments.Gateway,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute books a slot. Conflict detection is the bookings table's unique
// (staff, date, start) index: the insert either lands or comes back as
// slot_taken. There is no overlap or buffer reasoning here.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Validate slot fields
	// --------------------------------------------------
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	startMin, err := parseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if in.CustomerName == "" || !validators.IsEmailValid(in.CustomerEmail) {
		return nil, httperr.ErrBusiness("invalid_customer")
	}

	// --------------------------------------------------
	// Service + staff
	// --------------------------------------------------
	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	staff, err := uc.repo.GetActiveStaff(ctx, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	link, err := uc.repo.GetStaffServiceLink(ctx, staff.ID, svc.ID)
	if err != nil {
		return nil, err
	}

	price := models.EffectivePrice(svc, link)
	endTime := formatClock(startMin + svc.DurationMin)

	// --------------------------------------------------
	// Customer (upsert by email)
	// --------------------------------------------------
	customer, err := uc.repo.UpsertCustomerByEmail(
		ctx,
		in.CustomerEmail,
		in.CustomerName,
		in.CustomerPhone,
		in.Notes,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Insert; the unique index arbitrates the slot
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		StaffID:     staff.ID,
		BookingDate: in.Date,
		StartTime:   in.Time,
		EndTime:     endTime,
		DurationMin: svc.DurationMin,
		Status:      string(domain.InitialStatus()),
		Price:       price,
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Deposit, when the service requires one
	// --------------------------------------------------
	if deposit := svc.DepositDue(price); deposit > 0 {
		prefID, err := uc.gateway.CreateDepositPreference(ctx, b.ID, svc.Name, deposit)
		if err != nil {
			// The booking stands; payment collection can be retried.
			logrus.WithError(err).WithField("booking_id", b.ID).
				Error("deposit preference creation failed")
		}

		payment := &models.Payment{
			BookingID:           b.ID,
			CustomerID:          customer.ID,
			Amount:              deposit,
			Type:                "deposit",
			Gateway:             "mercadopago",
			GatewayPreferenceID: prefID,
			Status:              "pending",
		}
		if err := uc.repo.CreatePayment(ctx, payment); err != nil {
			logrus.WithError(err).WithField("booking_id", b.ID).
				Error("deposit payment record failed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func parseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
