package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/quiz"
)

// SessionStore is a Redis-backed implementation of app.SessionRepository.
// Notes:
//   - Live sessions stay in a local map so subscriptions and locking remain in-process.
//   - Every save writes the controller state to mcq:session:{id} with a TTL, so a
//     session unknown to this process (restart, another instance) is restored on Get.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

type storedSession struct {
	State    quiz.Memento `json:"state"`
	LastSeen time.Time    `json:"lastSeen"`
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Create(ctx context.Context, id string) *app.Session {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok {
		session = app.NewSession(id)
		s.sessions[id] = session
	}
	s.mu.Unlock()

	if !ok {
		s.Save(ctx, session)
	}
	return session
}

func (s *SessionStore) Get(ctx context.Context, id string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return session, true
	}

	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing, true
	}
	session = app.RestoreSession(id, stored.State, stored.LastSeen)
	s.sessions[id] = session
	return session, true
}

// Save writes the session state; failures are ignored since the local copy stays authoritative.
func (s *SessionStore) Save(ctx context.Context, session *app.Session) {
	raw, err := json.Marshal(storedSession{
		State:    session.Memento(),
		LastSeen: session.LastSeen(),
	})
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, s.key(session.ID()), raw, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	_ = s.client.Del(ctx, s.key(id)).Err()
}

// SweepIdle evicts idle local sessions. Their Redis keys are removed as well;
// keys of sessions held by other instances expire through their TTL.
func (s *SessionStore) SweepIdle(ctx context.Context, before time.Time) int {
	s.mu.Lock()
	var idle []string
	for id, session := range s.sessions {
		if session.LastSeen().Before(before) {
			idle = append(idle, id)
			delete(s.sessions, id)
			session.Close()
		}
	}
	s.mu.Unlock()

	if len(idle) > 0 {
		keys := make([]string, len(idle))
		for i, id := range idle {
			keys[i] = s.key(id)
		}
		_ = s.client.Del(ctx, keys...).Err()
	}
	return len(idle)
}

func (s *SessionStore) key(id string) string {
	return "mcq:session:" + id
}
