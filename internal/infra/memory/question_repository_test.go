package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewQuestionStore(map[string][]domain.Question{
			"math": sampleQuestions(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.GetQuestions(context.Background(), "math"); err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected loader once, got %d", loader.count())
	}

	if _, err := repo.GetQuestions(context.Background(), "math"); err != nil {
		t.Fatalf("get questions 2: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.count())
	}

	repo.Invalidate(context.Background(), "math")
	if _, err := repo.GetQuestions(context.Background(), "math"); err != nil {
		t.Fatalf("get questions 3: %v", err)
	}
	if loader.count() != 2 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.count())
	}
}

func TestQuestionRepositoryExpires(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewQuestionStore(map[string][]domain.Question{"math": sampleQuestions()}),
	}
	repo := NewQuestionRepository(loader, time.Minute)
	now := time.Now()
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuestions(context.Background(), "math")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuestions(context.Background(), "math")
	if loader.count() != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.count())
	}
}

func TestQuestionRepositoryDoesNotCacheEmpty(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewQuestionStore(nil)}
	repo := NewQuestionRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.GetQuestions(context.Background(), "nepal"); !errors.Is(err, domain.ErrEmptyResult) {
			t.Fatalf("expected empty result, got %v", err)
		}
	}
	if loader.count() != 2 {
		t.Fatalf("expected empty results not cached, loader calls %d", loader.count())
	}
}

func TestQuestionRepositoryReturnsCopies(t *testing.T) {
	repo := NewQuestionRepository(NewQuestionStore(map[string][]domain.Question{"math": sampleQuestions()}), time.Minute)
	first, _ := repo.GetQuestions(context.Background(), "math")
	first[0].Options[0] = "mutated"
	second, _ := repo.GetQuestions(context.Background(), "math")
	if second[0].Options[0] == "mutated" {
		t.Fatalf("cached set was mutated through a returned slice")
	}
}

func TestQuestionStoreAcceptsAuthoredQuestions(t *testing.T) {
	store := NewQuestionStore(nil)
	err := store.CreateQuestion(context.Background(), map[string]any{
		"question":      "Largest organ?",
		"options":       []string{"Skin", "Liver"},
		"correctAnswer": "Skin",
		"category":      "physiology",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	qs, err := store.LoadQuestions(context.Background(), "physiology")
	if err != nil || len(qs) != 1 || qs[0].CorrectAnswer != "Skin" {
		t.Fatalf("unexpected load result %v, %v", qs, err)
	}

	err = store.CreateQuestion(context.Background(), map[string]any{"question": "Q", "category": "physiology"})
	if !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected invalid question, got %v", err)
	}
}

type countingLoader struct {
	app.QuestionLoader
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, category string) ([]domain.Question, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return l.QuestionLoader.LoadQuestions(ctx, category)
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:          "What is 2 + 2?",
			Options:       []string{"3", "4", "5"},
			CorrectAnswer: "4",
		},
		{
			Text:          "What is 3 * 3?",
			Options:       []string{"6", "9"},
			CorrectAnswer: "9",
		},
	}
}
