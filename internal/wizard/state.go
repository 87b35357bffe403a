package wizard

import (
	"time"

	"github.com/google/uuid"
)

// Wizard steps. The flow is service -> staff -> date/time -> contact
// details; navigation between in-range steps is unrestricted.
const (
	StepService = 1
	StepStaff   = 2
	StepSlot    = 3
	StepContact = 4
)

// SessionTTL is the inactivity window after which a wizard session is
// reset to defaults on next access.
const SessionTTL = 8 * time.Hour

// Customer fields accepted from the contact step. Anything else in the
// payload is dropped.
var allowedCustomerFields = []string{"name", "email", "phone", "notes"}

// State is the full wizard session payload. Booking fields stay nil until
// the corresponding step sets them.
type State struct {
	CurrentStep int `json:"current_step"`

	ServiceID       *uint   `json:"service_id"`
	ServiceName     string  `json:"service_name,omitempty"`
	ServiceDuration int     `json:"service_duration,omitempty"`
	ServicePrice    float64 `json:"service_price,omitempty"`

	StaffID *uint   `json:"staff_id"`
	Date    *string `json:"date"`
	Time    *string `json:"time"`

	Customer map[string]string `json:"customer"`

	CreatedAt    int64 `json:"created_at"`
	LastActivity int64 `json:"last_activity"`

	CSRFToken string `json:"csrf_token"`
}

func defaultState(now time.Time) *State {
	return &State{
		CurrentStep:  StepService,
		Customer:     map[string]string{},
		CreatedAt:    now.Unix(),
		LastActivity: now.Unix(),
		CSRFToken:    uuid.NewString(),
	}
}

// Expired reports whether the session has been idle longer than the TTL.
func (s *State) Expired(now time.Time) bool {
	return s.LastActivity > 0 && now.Unix()-s.LastActivity > int64(SessionTTL.Seconds())
}

// TimeRemaining returns seconds until expiry, floored at zero.
func (s *State) TimeRemaining(now time.Time) int64 {
	remaining := int64(SessionTTL.Seconds()) - (now.Unix() - s.LastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func ValidStep(step int) bool {
	return step >= StepService && step <= StepContact
}
