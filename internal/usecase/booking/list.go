package booking

import (
	"context"
	"time"

	domain "github.com/bookitlabs/bookit-server/internal/domain/booking"
	"github.com/bookitlabs/bookit-server/internal/httperr"
)

type BookingListItem struct {
	ID            uint    `json:"id"`
	BookingDate   string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	ServiceName   string  `json:"service_name"`
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	staffID uint,
	date string,
) ([]BookingListItem, error) {

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.list(ctx, staffID, date, day.AddDate(0, 0, 1).Format("2006-01-02"))
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	staffID uint,
	year int,
	month int,
) ([]BookingListItem, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return uc.list(
		ctx,
		staffID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
}

func (uc *ListBookings) list(
	ctx context.Context,
	staffID uint,
	from string,
	to string,
) ([]BookingListItem, error) {

	bookings, err := uc.repo.ListBookingsForDateRange(ctx, staffID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]BookingListItem, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListItem{
			ID:            b.ID,
			BookingDate:   b.BookingDate,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
			Price:         b.Price,
			CustomerName:  b.Customer.Name,
			CustomerEmail: b.Customer.Email,
			ServiceName:   b.Service.Name,
		})
	}

	return out, nil
}
