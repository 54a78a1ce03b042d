package memory

import (
	"context"
	"sync"

	"mcq-practice-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserRepository keyed by email.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) CreateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	s.users[user.Email] = user
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}
