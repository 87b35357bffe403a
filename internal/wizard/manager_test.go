package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/bookitlabs/bookit-server/internal/httperr"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	sessions map[string]*State
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*State{}}
}

func (s *memStore) Get(_ context.Context, id string) (*State, error) {
	state, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (s *memStore) Save(_ context.Context, id string, state *State) error {
	copied := *state
	s.sessions[id] = &copied
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestManager(store Store, at time.Time) *Manager {
	m := NewManager(store)
	m.now = func() time.Time { return at }
	return m
}

func TestLoadCreatesDefaultSession(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTestManager(store, now)

	state, err := m.Load(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if state.CurrentStep != StepService {
		t.Errorf("CurrentStep = %d, want %d", state.CurrentStep, StepService)
	}
	if state.ServiceID != nil || state.StaffID != nil || state.Date != nil || state.Time != nil {
		t.Error("fresh session should have no booking fields set")
	}
	if state.CSRFToken == "" {
		t.Error("fresh session should carry a CSRF token")
	}
	if state.CreatedAt != now.Unix() {
		t.Errorf("CreatedAt = %d, want %d", state.CreatedAt, now.Unix())
	}
	if _, ok := store.sessions["visitor-1"]; !ok {
		t.Error("Load should persist the created session")
	}
}

func TestApplyStepBounds(t *testing.T) {
	for _, step := range []int{1, 2, 3, 4} {
		store := newMemStore()
		m := newTestManager(store, time.Now())

		update := Update{CurrentStep: &step}
		state, _, err := m.Apply(context.Background(), "s", update)
		if err != nil {
			t.Fatalf("step %d rejected: %v", step, err)
		}
		if state.CurrentStep != step {
			t.Errorf("CurrentStep = %d, want %d", state.CurrentStep, step)
		}
	}

	for _, step := range []int{0, 5, -1, 100} {
		store := newMemStore()
		m := newTestManager(store, time.Now())

		update := Update{CurrentStep: &step}
		_, _, err := m.Apply(context.Background(), "s", update)
		if !httperr.IsBusiness(err, "invalid_step") {
			t.Errorf("step %d: want invalid_step, got %v", step, err)
		}
	}
}

func TestApplyInvalidStepLeavesStateUntouched(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, time.Now())

	three := 3
	if _, _, err := m.Apply(context.Background(), "s", Update{CurrentStep: &three}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	bad := 9
	svc := uint(7)
	_, _, err := m.Apply(context.Background(), "s", Update{CurrentStep: &bad, ServiceID: &svc})
	if !httperr.IsBusiness(err, "invalid_step") {
		t.Fatalf("want invalid_step, got %v", err)
	}

	state, err := m.Load(context.Background(), "s")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.CurrentStep != 3 {
		t.Errorf("CurrentStep = %d, want 3 after rejected update", state.CurrentStep)
	}
	if state.ServiceID != nil {
		t.Error("ServiceID should not be set by a rejected update")
	}
}

func TestApplyStepChangeRegeneratesSessionID(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, time.Now())

	if _, err := m.Load(context.Background(), "old-id"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	two := 2
	_, newID, err := m.Apply(context.Background(), "old-id", Update{CurrentStep: &two})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if newID == "old-id" {
		t.Error("step change should regenerate the session ID")
	}
	if _, ok := store.sessions["old-id"]; ok {
		t.Error("old session key should be deleted after regeneration")
	}
	if _, ok := store.sessions[newID]; !ok {
		t.Error("new session key should be persisted")
	}
}

func TestApplySameStepKeepsSessionID(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, time.Now())

	if _, err := m.Load(context.Background(), "keep"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	one := 1
	date := "2026-03-12"
	_, newID, err := m.Apply(context.Background(), "keep", Update{CurrentStep: &one, Date: &date})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if newID != "keep" {
		t.Errorf("unchanged step rotated the session ID to %q", newID)
	}
}

func TestApplyMergesCustomerFields(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, time.Now())

	_, _, err := m.Apply(context.Background(), "s", Update{
		Customer: map[string]string{"name": "Ada Lovelace", "email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// A later partial update must not wipe earlier fields.
	state, _, err := m.Apply(context.Background(), "s", Update{
		Customer: map[string]string{"phone": "+15550100", "role": "admin"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if state.Customer["name"] != "Ada Lovelace" {
		t.Errorf("name = %q, want it preserved across updates", state.Customer["name"])
	}
	if state.Customer["email"] != "ada@example.com" {
		t.Errorf("email = %q, want it preserved", state.Customer["email"])
	}
	if state.Customer["phone"] != "+15550100" {
		t.Errorf("phone = %q, want the merged value", state.Customer["phone"])
	}
	if _, ok := state.Customer["role"]; ok {
		t.Error("unknown customer fields must be dropped")
	}
}

func TestSessionExpiresAfterIdleWindow(t *testing.T) {
	store := newMemStore()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTestManager(store, start)

	svc := uint(3)
	if _, _, err := m.Apply(context.Background(), "s", Update{ServiceID: &svc}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// One second inside the window: state survives.
	m.now = func() time.Time { return start.Add(SessionTTL) }
	state, err := m.Load(context.Background(), "s")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.ServiceID == nil {
		t.Fatal("session expired before the idle window elapsed")
	}

	// Past the window: reset to defaults with a new CSRF token.
	oldToken := state.CSRFToken
	m.now = func() time.Time { return start.Add(SessionTTL + 2*time.Second) }
	state, err = m.Load(context.Background(), "s")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.ServiceID != nil {
		t.Error("expired session should lose its selections")
	}
	if state.CurrentStep != StepService {
		t.Errorf("expired session CurrentStep = %d, want %d", state.CurrentStep, StepService)
	}
	if state.CSRFToken == oldToken {
		t.Error("expired session should mint a fresh CSRF token")
	}
}

func TestActivityExtendsSession(t *testing.T) {
	store := newMemStore()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTestManager(store, start)

	svc := uint(3)
	if _, _, err := m.Apply(context.Background(), "s", Update{ServiceID: &svc}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Touch the session every 7 hours; it must survive well past the
	// original 8 hour mark.
	for i := 1; i <= 3; i++ {
		at := start.Add(time.Duration(i) * 7 * time.Hour)
		m.now = func() time.Time { return at }
		state, err := m.Load(context.Background(), "s")
		if err != nil {
			t.Fatalf("Load at +%dh: %v", i*7, err)
		}
		if state.ServiceID == nil {
			t.Fatalf("session expired at +%dh despite activity", i*7)
		}
	}
}

func TestSelectServiceAdvancesAndRotates(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, time.Now())

	if _, err := m.Load(context.Background(), "s"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	state, newID, err := m.SelectService(context.Background(), "s", 42, "Deep Tissue Massage", 60, 80)
	if err != nil {
		t.Fatalf("SelectService: %v", err)
	}

	if newID == "s" {
		t.Error("SelectService should rotate the session ID")
	}
	if state.CurrentStep != StepStaff {
		t.Errorf("CurrentStep = %d, want %d", state.CurrentStep, StepStaff)
	}
	if state.ServiceID == nil || *state.ServiceID != 42 {
		t.Errorf("ServiceID = %v, want 42", state.ServiceID)
	}
	if state.ServiceName != "Deep Tissue Massage" || state.ServiceDuration != 60 || state.ServicePrice != 80 {
		t.Errorf("cached service fields wrong: %q %d %v",
			state.ServiceName, state.ServiceDuration, state.ServicePrice)
	}
}

func TestClearResetsSession(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store, time.Now())

	svc := uint(5)
	four := 4
	if _, _, err := m.Apply(context.Background(), "s", Update{
		CurrentStep: &four,
		ServiceID:   &svc,
		Customer:    map[string]string{"name": "Ada"},
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	state, err := m.Clear(context.Background(), "s")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if state.CurrentStep != StepService || state.ServiceID != nil || len(state.Customer) != 0 {
		t.Errorf("Clear left residue: step=%d service=%v customer=%v",
			state.CurrentStep, state.ServiceID, state.Customer)
	}
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	state := defaultState(now)

	if got := state.TimeRemaining(now); got != int64(SessionTTL.Seconds()) {
		t.Errorf("fresh TimeRemaining = %d, want %d", got, int64(SessionTTL.Seconds()))
	}
	if got := state.TimeRemaining(now.Add(3 * time.Hour)); got != int64((5 * time.Hour).Seconds()) {
		t.Errorf("TimeRemaining after 3h = %d, want %d", got, int64((5*time.Hour).Seconds()))
	}
	if got := state.TimeRemaining(now.Add(20 * time.Hour)); got != 0 {
		t.Errorf("TimeRemaining after expiry = %d, want 0", got)
	}
}
