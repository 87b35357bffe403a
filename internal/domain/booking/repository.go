package booking

import (
	"context"

	"github.com/bookitlabs/bookit-server/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetStaffServiceLink(
		ctx context.Context,
		staffID uint,
		serviceID uint,
	) (*models.StaffService, error)

	// -------- Staff --------
	GetActiveStaff(
		ctx context.Context,
		staffID uint,
	) (*models.Staff, error)

	// -------- Customer --------
	UpsertCustomerByEmail(
		ctx context.Context,
		email string,
		name string,
		phone string,
		notes string,
	) (*models.Customer, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking inserts the row and returns ErrBusiness("slot_taken")
	// when (staff_id, booking_date, start_time) is already occupied. The
	// unique index is the only conflict check.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingForStaff(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listings / availability --------
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListBookingsForDay(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.Booking, error)

	ListBookingsForDateRange(
		ctx context.Context,
		staffID uint,
		from string,
		to string,
	) ([]models.Booking, error)

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
