package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bookitlabs/bookit-server/internal/httperr"
)

// Store persists wizard sessions keyed by session ID. Get returns
// (nil, nil) for an unknown ID; Save owns TTL bookkeeping.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, s *State) error
	Delete(ctx context.Context, id string) error
}

// Update carries the partial payload of a wizard POST. Nil fields leave
// the stored value untouched; Customer entries merge key by key.
type Update struct {
	CurrentStep *int
	ServiceID   *uint
	StaffID     *uint
	Date        *string
	Time        *string
	Customer    map[string]string
}

// Manager owns wizard session lifecycle: lazy expiry, activity stamping
// and session-ID regeneration on step changes. Transitions are a pure
// function of (state, update); all ambient state lives behind Store.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// NewSessionID mints an ID for a visitor without one.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Load returns the session state, creating defaults for unknown IDs and
// resetting expired ones. Every load stamps last_activity.
func (m *Manager) Load(ctx context.Context, id string) (*State, error) {
	now := m.now()

	state, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if state == nil || state.Expired(now) {
		state = defaultState(now)
	}

	state.LastActivity = now.Unix()
	if err := m.store.Save(ctx, id, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Apply merges an update into the session. A step change regenerates the
// session ID (new key written, old key deleted) to prevent fixation; the
// returned ID is the one the caller must hand back to the client.
func (m *Manager) Apply(ctx context.Context, id string, up Update) (*State, string, error) {
	state, err := m.Load(ctx, id)
	if err != nil {
		return nil, id, err
	}

	stepChanged := false

	if up.CurrentStep != nil {
		if !ValidStep(*up.CurrentStep) {
			return nil, id, httperr.ErrBusiness("invalid_step")
		}
		if state.CurrentStep != *up.CurrentStep {
			stepChanged = true
		}
		state.CurrentStep = *up.CurrentStep
	}

	if up.ServiceID != nil {
		state.ServiceID = up.ServiceID
	}
	if up.StaffID != nil {
		state.StaffID = up.StaffID
	}
	if up.Date != nil {
		state.Date = up.Date
	}
	if up.Time != nil {
		state.Time = up.Time
	}

	if up.Customer != nil {
		if state.Customer == nil {
			state.Customer = map[string]string{}
		}
		for _, field := range allowedCustomerFields {
			if v, ok := up.Customer[field]; ok {
				state.Customer[field] = v
			}
		}
	}

	state.LastActivity = m.now().Unix()

	newID := id
	if stepChanged {
		newID = uuid.NewString()
	}

	if err := m.store.Save(ctx, newID, state); err != nil {
		return nil, id, err
	}

	if newID != id {
		if err := m.store.Delete(ctx, id); err != nil {
			return nil, id, err
		}
	}

	return state, newID, nil
}

// SelectService caches the chosen service on the session and advances to
// the staff step. Regenerates the session ID like any step change.
func (m *Manager) SelectService(
	ctx context.Context,
	id string,
	serviceID uint,
	name string,
	durationMin int,
	price float64,
) (*State, string, error) {

	state, err := m.Load(ctx, id)
	if err != nil {
		return nil, id, err
	}

	state.ServiceID = &serviceID
	state.ServiceName = name
	state.ServiceDuration = durationMin
	state.ServicePrice = price
	state.CurrentStep = StepStaff
	state.LastActivity = m.now().Unix()

	newID := uuid.NewString()
	if err := m.store.Save(ctx, newID, state); err != nil {
		return nil, id, err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return nil, id, err
	}

	return state, newID, nil
}

// Clear resets the session to defaults in place.
func (m *Manager) Clear(ctx context.Context, id string) (*State, error) {
	state := defaultState(m.now())
	if err := m.store.Save(ctx, id, state); err != nil {
		return nil, err
	}
	return state, nil
}

// TimeRemaining reports seconds left before the idle timeout for a
// just-loaded state.
func (m *Manager) TimeRemaining(state *State) int64 {
	return state.TimeRemaining(m.now())
}
