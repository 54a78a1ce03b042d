package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/infra/memory"
	"mcq-practice-service/internal/quiz"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), time.Minute)

	_ = store.Create(ctx, "s1")
	if !mr.Exists("mcq:session:s1") {
		t.Fatalf("expected redis key to be set")
	}

	store.Delete(ctx, "s1")
	if mr.Exists("mcq:session:s1") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionStoreRestoresFromRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := newClient(mr)
	questions := memory.NewQuestionRepository(memory.NewQuestionStore(map[string][]domain.Question{
		"math": sampleQuestions(),
	}), time.Minute)

	first := NewSessionStore(client, time.Minute)
	service := app.NewQuizService(first, questions, zerolog.Nop())
	id, _ := service.StartSession(ctx)
	if _, err := service.SelectCategory(ctx, id, "math"); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if _, err := service.SelectAnswer(ctx, id, "4"); err != nil {
		t.Fatalf("select answer: %v", err)
	}
	if _, err := service.Next(ctx, id); err != nil {
		t.Fatalf("next: %v", err)
	}

	// A second store simulates another instance sharing the same redis.
	second := NewSessionStore(client, time.Minute)
	restored, ok := second.Get(ctx, id)
	if !ok {
		t.Fatalf("expected session restored from redis")
	}
	snap := restored.Snapshot()
	if snap.Phase != quiz.PhaseInProgress || snap.Number != 2 || snap.Category != "math" {
		t.Fatalf("unexpected restored snapshot %+v", snap)
	}
	if snap.Answers[0] == nil || *snap.Answers[0] != "4" {
		t.Fatalf("expected first answer restored, got %v", snap.Answers[0])
	}
}

func TestSessionStoreSweepIdle(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr), time.Minute)
	_ = store.Create(ctx, "idle")

	if n := store.SweepIdle(ctx, time.Now().Add(time.Second)); n != 1 {
		t.Fatalf("expected one session swept, got %d", n)
	}
	if mr.Exists("mcq:session:idle") {
		t.Fatalf("expected swept session key removed")
	}
}
