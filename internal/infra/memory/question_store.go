package memory

import (
	"context"
	"sync"

	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/domain"
)

// QuestionStore keeps question sets in a map. It serves as the loader when no
// database or upstream is configured and accepts authored questions.
type QuestionStore struct {
	mu         sync.RWMutex
	categories map[string][]domain.Question
}

func NewQuestionStore(seed map[string][]domain.Question) *QuestionStore {
	categories := make(map[string][]domain.Question, len(seed))
	for category, qs := range seed {
		categories[category] = cloneQuestions(qs)
	}
	return &QuestionStore{categories: categories}
}

// LoadQuestions returns domain.ErrEmptyResult for an unknown or empty category.
func (s *QuestionStore) LoadQuestions(_ context.Context, category string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	qs := s.categories[category]
	if len(qs) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return cloneQuestions(qs), nil
}

// CreateQuestion validates the payload as a question record and appends it.
func (s *QuestionStore) CreateQuestion(_ context.Context, payload map[string]any) error {
	q, category, err := authoring.QuestionFromPayload(payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category] = append(s.categories[category], q)
	return nil
}
