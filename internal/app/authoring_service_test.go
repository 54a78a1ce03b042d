package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/infra/memory"
)

type failingWriter struct{ err error }

func (w failingWriter) CreateQuestion(context.Context, map[string]any) error { return w.err }

func TestAuthoringSubmitClearsFormAndRefreshesCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuestionStore(map[string][]domain.Question{
		"math": {{Text: "1+1?", Options: []string{"1", "2"}, CorrectAnswer: "2"}},
	})
	cache := memory.NewQuestionRepository(store, time.Hour)
	service := app.NewAuthoringService(store, cache, zerolog.Nop())

	// Warm the cache so the new question only shows up after invalidation.
	if qs, err := cache.GetQuestions(ctx, "math"); err != nil || len(qs) != 1 {
		t.Fatalf("warm cache: %v %v", qs, err)
	}

	form := authoring.NewForm()
	form.Category = "math"
	form.Question = "2+2?"
	form.SetOption(0, "3")
	form.SetOption(1, "4")
	form.CorrectAnswer = "4"

	payload, err := service.Submit(ctx, form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if payload["category"] != "math" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if form.Question != "" || form.Category != "" || len(form.Options) != authoring.MinOptions {
		t.Fatalf("expected cleared form, got %+v", form)
	}

	qs, err := cache.GetQuestions(ctx, "math")
	if err != nil || len(qs) != 2 {
		t.Fatalf("expected refreshed set of 2, got %d (%v)", len(qs), err)
	}
}

func TestAuthoringSubmitFailureKeepsForm(t *testing.T) {
	writeErr := errors.New("failed to create MCQ")
	service := app.NewAuthoringService(failingWriter{err: writeErr}, nil, zerolog.Nop())

	form := authoring.NewForm()
	form.Category = "math"
	form.Question = "2+2?"
	form.SetOption(0, "3")
	form.SetOption(1, "4")
	form.CorrectAnswer = "4"

	if _, err := service.Submit(context.Background(), form); !errors.Is(err, writeErr) {
		t.Fatalf("expected writer error, got %v", err)
	}
	if form.Question != "2+2?" {
		t.Fatalf("expected form kept after failure")
	}

	form.Category = ""
	if _, err := service.Submit(context.Background(), form); !errors.Is(err, domain.ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}
}
