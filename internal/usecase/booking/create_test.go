package booking

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookitlabs/bookit-server/internal/audit"
	domain "github.com/bookitlabs/bookit-server/internal/domain/booking"
	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
)

// fakeRepo satisfies domain.Repository with canned data.
type fakeRepo struct {
	service *models.Service
	staff   *models.Staff
	link    *models.StaffService

	takenSlots map[string]bool
	booking    *models.Booking

	createdBookings []*models.Booking
	createdPayments []*models.Payment
	updatedBookings []*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		service:    &models.Service{ID: 1, Name: "Haircut", DurationMin: 30, Price: 40, Active: true},
		staff:      &models.Staff{ID: 2, FirstName: "Mia", Active: true},
		takenSlots: map[string]bool{},
	}
}

func (r *fakeRepo) GetActiveService(_ context.Context, id uint) (*models.Service, error) {
	if r.service == nil || r.service.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.service, nil
}

func (r *fakeRepo) GetStaffServiceLink(_ context.Context, _, _ uint) (*models.StaffService, error) {
	return r.link, nil
}

func (r *fakeRepo) GetActiveStaff(_ context.Context, id uint) (*models.Staff, error) {
	if r.staff == nil || r.staff.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.staff, nil
}

func (r *fakeRepo) UpsertCustomerByEmail(_ context.Context, email, name, phone, notes string) (*models.Customer, error) {
	return &models.Customer{ID: 9, Email: email, Name: name, Phone: phone, Notes: notes}, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	key := b.BookingDate + "|" + b.StartTime
	if r.takenSlots[key] {
		return httperr.ErrBusiness("slot_taken")
	}
	r.takenSlots[key] = true
	b.ID = uint(len(r.createdBookings) + 1)
	r.createdBookings = append(r.createdBookings, b)
	return nil
}

func (r *fakeRepo) GetBookingForStaff(_ context.Context, bookingID, staffID uint) (*models.Booking, error) {
	if r.booking == nil || r.booking.ID != bookingID || r.booking.StaffID != staffID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	copied := *b
	r.booking = &copied
	r.updatedBookings = append(r.updatedBookings, b)
	return nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, _ uint, _ int) (*models.WorkingHours, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListBookingsForDay(_ context.Context, _ uint, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) ListBookingsForDateRange(_ context.Context, _ uint, _, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	r.createdPayments = append(r.createdPayments, p)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeGateway records preference requests.
type fakeGateway struct {
	calls int
	fail  error
}

func (g *fakeGateway) CreateDepositPreference(_ context.Context, _ uint, _ string, _ float64) (string, error) {
	g.calls++
	if g.fail != nil {
		return "", g.fail
	}
	return "pref-123", nil
}

func newTestDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return audit.NewDispatcher(audit.New(db))
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ServiceID:     1,
		StaffID:       2,
		Date:          "2026-03-12",
		Time:          "10:00",
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "+15550100",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeGateway{}, newTestDispatcher(t))

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if b.Status != string(domain.StatusPending) {
		t.Errorf("Status = %s, want pending", b.Status)
	}
	if b.EndTime != "10:30" {
		t.Errorf("EndTime = %s, want start plus duration", b.EndTime)
	}
	if b.Price != 40 {
		t.Errorf("Price = %v, want base service price", b.Price)
	}
	if len(repo.createdPayments) != 0 {
		t.Error("no deposit configured, no payment row expected")
	}
}

func TestCreateBookingUsesCustomPrice(t *testing.T) {
	repo := newFakeRepo()
	custom := 55.0
	repo.link = &models.StaffService{StaffID: 2, ServiceID: 1, CustomPrice: &custom}
	uc := NewCreateBooking(repo, &fakeGateway{}, newTestDispatcher(t))

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Price != 55 {
		t.Errorf("Price = %v, want the staff override", b.Price)
	}
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeGateway{}, newTestDispatcher(t))

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("want slot_taken, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		code   string
	}{
		{"bad date", func(in *CreateBookingInput) { in.Date = "12/03/2026" }, "invalid_date_or_time"},
		{"bad time", func(in *CreateBookingInput) { in.Time = "25:00" }, "invalid_date_or_time"},
		{"missing name", func(in *CreateBookingInput) { in.CustomerName = "" }, "invalid_customer"},
		{"bad email", func(in *CreateBookingInput) { in.CustomerEmail = "not-an-email" }, "invalid_customer"},
		{"unknown service", func(in *CreateBookingInput) { in.ServiceID = 99 }, "service_not_found"},
		{"unknown staff", func(in *CreateBookingInput) { in.StaffID = 99 }, "staff_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := NewCreateBooking(repo, &fakeGateway{}, newTestDispatcher(t))

			in := validInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Errorf("want %s, got %v", tc.code, err)
			}
			if len(repo.createdBookings) != 0 {
				t.Error("rejected input must not create a booking")
			}
		})
	}
}

func TestCreateBookingDepositRecordsPayment(t *testing.T) {
	repo := newFakeRepo()
	deposit := 10.0
	repo.service.DepositAmount = &deposit
	gw := &fakeGateway{}
	uc := NewCreateBooking(repo, gw, newTestDispatcher(t))

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
	if len(repo.createdPayments) != 1 {
		t.Fatalf("payments = %d, want 1", len(repo.createdPayments))
	}

	p := repo.createdPayments[0]
	if p.BookingID != b.ID || p.Amount != 10 || p.Type != "deposit" {
		t.Errorf("payment = %+v", p)
	}
	if p.GatewayPreferenceID != "pref-123" {
		t.Errorf("GatewayPreferenceID = %q", p.GatewayPreferenceID)
	}
}

func TestCreateBookingSurvivesGatewayFailure(t *testing.T) {
	repo := newFakeRepo()
	deposit := 10.0
	repo.service.DepositAmount = &deposit
	gw := &fakeGateway{fail: context.DeadlineExceeded}
	uc := NewCreateBooking(repo, gw, newTestDispatcher(t))

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("booking must stand when the gateway fails: %v", err)
	}
	if b.ID == 0 {
		t.Error("booking was not persisted")
	}
	if len(repo.createdPayments) != 1 || repo.createdPayments[0].GatewayPreferenceID != "" {
		t.Error("payment row should be recorded with an empty preference ID")
	}
}

func TestPercentageDeposit(t *testing.T) {
	repo := newFakeRepo()
	pct := 25.0
	repo.service.DepositAmount = &pct
	repo.service.DepositType = "percentage"
	gw := &fakeGateway{}
	uc := NewCreateBooking(repo, gw, newTestDispatcher(t))

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(repo.createdPayments) != 1 {
		t.Fatalf("payments = %d, want 1", len(repo.createdPayments))
	}
	if got := repo.createdPayments[0].Amount; got != 10 {
		t.Errorf("deposit = %v, want 25%% of 40", got)
	}
}
