package app

import (
	"sync"
	"time"

	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/quiz"
)

// Session owns one practice attempt. The mutex serialises every controller
// operation so each one is atomic with respect to the others.
type Session struct {
	id          string
	now         func() time.Time
	mu          sync.Mutex
	ctrl        *quiz.Controller
	loadSeq     uint64
	lastSeen    time.Time
	subscribers map[chan quiz.Snapshot]struct{}
}

// NewSession is exported for infrastructure layers that create sessions.
func NewSession(id string) *Session {
	return NewSessionWithClock(id, time.Now)
}

// NewSessionWithClock allows deterministic idle times in tests.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return &Session{
		id:          id,
		now:         now,
		ctrl:        quiz.New(),
		lastSeen:    now(),
		subscribers: make(map[chan quiz.Snapshot]struct{}),
	}
}

// RestoreSession rebuilds a session from persisted state.
func RestoreSession(id string, m quiz.Memento, lastSeen time.Time) *Session {
	s := NewSession(id)
	s.ctrl = quiz.Restore(m)
	if !lastSeen.IsZero() {
		s.lastSeen = lastSeen
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// LastSeen returns the time of the last operation.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Memento returns the persistable controller state.
func (s *Session) Memento() quiz.Memento {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Memento()
}

// Snapshot returns the current client view.
func (s *Session) Snapshot() quiz.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Snapshot()
}

// apply runs fn against the controller under the lock. Subscribers receive the
// resulting snapshot only when fn succeeds.
func (s *Session) apply(fn func(c *quiz.Controller) error) (quiz.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.now()
	if err := fn(s.ctrl); err != nil {
		return s.ctrl.Snapshot(), err
	}
	return s.broadcastLocked(), nil
}

// read runs fn without touching subscribers.
func (s *Session) read(fn func(c *quiz.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	return fn(s.ctrl)
}

// beginLoad issues the sequence number for a new category load.
func (s *Session) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq++
	return s.loadSeq
}

// completeLoad applies fetched questions only if seq is still the latest load.
func (s *Session) completeLoad(seq uint64, category string, questions []domain.Question) (quiz.Snapshot, error) {
	return s.apply(func(c *quiz.Controller) error {
		if seq != s.loadSeq {
			return domain.ErrStaleLoad
		}
		return c.Load(category, questions)
	})
}

// failLoad clears the question set after a failed fetch, unless a newer load
// has been issued since.
func (s *Session) failLoad(seq uint64) (quiz.Snapshot, error) {
	return s.apply(func(c *quiz.Controller) error {
		if seq != s.loadSeq {
			return domain.ErrStaleLoad
		}
		c.Unload()
		return nil
	})
}

func (s *Session) subscribe() (<-chan quiz.Snapshot, func()) {
	ch := make(chan quiz.Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- s.ctrl.Snapshot()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close ends every subscription; stores call it when the session is removed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) broadcastLocked() quiz.Snapshot {
	snap := s.ctrl.Snapshot()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// slow reader: drop the oldest pending snapshot
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}
