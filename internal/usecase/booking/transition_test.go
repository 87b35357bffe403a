package booking

import (
	"context"
	"testing"

	domain "github.com/bookitlabs/bookit-server/internal/domain/booking"
	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
)

func transitionFixture(t *testing.T, status domain.Status) (*TransitionBooking, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	repo.booking = &models.Booking{
		ID:      11,
		StaffID: 2,
		Status:  string(status),
	}
	return NewTransitionBooking(repo, newTestDispatcher(t)), repo
}

func TestConfirmPendingBooking(t *testing.T) {
	uc, repo := transitionFixture(t, domain.StatusPending)

	b, err := uc.Confirm(context.Background(), 2, 11)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("Status = %s", b.Status)
	}
	if len(repo.updatedBookings) != 1 {
		t.Error("transition must persist the booking")
	}
}

func TestCancelRecordsReason(t *testing.T) {
	uc, _ := transitionFixture(t, domain.StatusConfirmed)

	b, err := uc.Cancel(context.Background(), 2, 11, "double booked")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != string(domain.StatusCancelled) {
		t.Errorf("Status = %s", b.Status)
	}
	if b.CancellationReason != "double booked" || b.CancelledAt == nil {
		t.Errorf("cancellation details missing: %+v", b)
	}
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	uc, repo := transitionFixture(t, domain.StatusPending)

	_, err := uc.Complete(context.Background(), 2, 11)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("want invalid_state, got %v", err)
	}
	if len(repo.updatedBookings) != 0 {
		t.Error("rejected transition must not persist")
	}
}

func TestMarkNoShow(t *testing.T) {
	uc, _ := transitionFixture(t, domain.StatusConfirmed)

	b, err := uc.MarkNoShow(context.Background(), 2, 11)
	if err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if b.Status != string(domain.StatusNoShow) {
		t.Errorf("Status = %s", b.Status)
	}
}

func TestTransitionScopedToOwningStaff(t *testing.T) {
	uc, _ := transitionFixture(t, domain.StatusPending)

	// Staff 3 does not own booking 11.
	_, err := uc.Confirm(context.Background(), 3, 11)
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("want booking_not_found, got %v", err)
	}
}

func TestTransitionUnknownBooking(t *testing.T) {
	uc, _ := transitionFixture(t, domain.StatusPending)

	_, err := uc.Confirm(context.Background(), 2, 99)
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("want booking_not_found, got %v", err)
	}
}
