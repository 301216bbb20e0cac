package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"afroboost/internal/logger"
)

var ErrSessionNotFound = errors.New("booking session not found")

// sessionTTL bounds how long an untouched session survives. Pending
// reservations are discarded with their session; nothing is persisted.
const sessionTTL = 30 * time.Minute

// Session is one customer's workflow. All access goes through its mutex;
// the state value inside is replaced, never mutated.
type Session struct {
	mu sync.Mutex

	id       string
	state    BookingState
	pending  *PendingReservation
	inFlight bool

	// confirmTimer paces the manual-confirmation prompt after the payment
	// link opens. Stopped when the session is torn down.
	confirmTimer *time.Timer

	lastTouched time.Time
}

func (s *Session) ID() string { return s.id }

// Snapshot returns a copy of the current state for serving reads.
func (s *Session) Snapshot() BookingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) touch(now time.Time) {
	s.lastTouched = now
}

func (s *Session) stopTimersLocked() {
	if s.confirmTimer != nil {
		s.confirmTimer.Stop()
		s.confirmTimer = nil
	}
}

// Store keeps live sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create opens a fresh Idle session.
func (st *Store) Create() *Session {
	s := &Session{
		id: uuid.NewString(),
		state: BookingState{
			State:      StateIdle,
			Selections: Selections{Quantity: 1},
		},
		lastTouched: st.now(),
	}

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete tears a session down, cancelling any armed timer.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if ok {
		s.mu.Lock()
		s.stopTimersLocked()
		s.pending = nil
		s.mu.Unlock()
	}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// StartReaper evicts idle sessions until the context is cancelled.
func (st *Store) StartReaper(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.reap()
		}
	}
}

func (st *Store) reap() {
	cutoff := st.now().Add(-sessionTTL)

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		s.mu.Lock()
		stale := s.lastTouched.Before(cutoff)
		s.mu.Unlock()
		if stale {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		s.stopTimersLocked()
		s.pending = nil
		s.mu.Unlock()
		logger.Debugf("Reaped stale booking session %s", s.id)
	}
}
