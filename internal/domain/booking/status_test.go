package booking

import (
	"testing"
	"time"

	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
)

func TestTransitionRules(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

	cases := []struct {
		name    string
		check   func(Status) error
		allowed map[Status]bool
	}{
		{"confirm", CanConfirm, map[Status]bool{StatusPending: true}},
		{"cancel", CanCancel, map[Status]bool{StatusPending: true, StatusConfirmed: true}},
		{"complete", CanComplete, map[Status]bool{StatusConfirmed: true}},
		{"no_show", CanMarkNoShow, map[Status]bool{StatusConfirmed: true}},
	}

	for _, tc := range cases {
		for _, from := range all {
			err := tc.check(from)
			if tc.allowed[from] {
				if err != nil {
					t.Errorf("%s from %s: unexpected error %v", tc.name, from, err)
				}
				continue
			}
			if !httperr.IsBusiness(err, "invalid_state") {
				t.Errorf("%s from %s: want invalid_state, got %v", tc.name, from, err)
			}
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus() != StatusPending {
		t.Errorf("InitialStatus = %s, want %s", InitialStatus(), StatusPending)
	}
}

func TestCancelRecordsReasonAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	if err := Cancel(b, "client called in sick", now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if b.Status != string(StatusCancelled) {
		t.Errorf("Status = %s, want %s", b.Status, StatusCancelled)
	}
	if b.CancellationReason != "client called in sick" {
		t.Errorf("CancellationReason = %q", b.CancellationReason)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Errorf("CancelledAt = %v, want %v", b.CancelledAt, now)
	}
}

func TestCompleteStampsTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	if err := Complete(b, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if b.CompletedAt == nil || !b.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", b.CompletedAt, now)
	}
}

func TestActionsRejectInvalidState(t *testing.T) {
	b := &models.Booking{Status: string(StatusCancelled)}

	if err := Confirm(b); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Confirm on cancelled: got %v", err)
	}
	if b.Status != string(StatusCancelled) {
		t.Error("rejected action must not mutate the booking")
	}
}
