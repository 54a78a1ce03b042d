package memory

import (
	"context"
	"testing"
	"time"

	"mcq-practice-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := store.Create(ctx, "s1")
	if session == nil {
		t.Fatalf("expected session")
	}
	if again := store.Create(ctx, "s1"); again != session {
		t.Fatalf("expected existing session returned for the same id")
	}
	if _, ok := store.Get(ctx, "s1"); !ok {
		t.Fatalf("expected session present")
	}

	store.Delete(ctx, "s1")
	if _, ok := store.Get(ctx, "s1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreSweepIdle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	store.Create(ctx, "old")

	if n := store.SweepIdle(ctx, time.Now().Add(-time.Hour)); n != 0 {
		t.Fatalf("expected nothing swept, got %d", n)
	}
	if n := store.SweepIdle(ctx, time.Now().Add(time.Second)); n != 1 {
		t.Fatalf("expected one session swept, got %d", n)
	}
	if _, ok := store.Get(ctx, "old"); ok {
		t.Fatalf("expected idle session removed")
	}
}

func TestUserStoreRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	user := sampleUser()
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateUser(ctx, user); err == nil {
		t.Fatalf("expected duplicate email rejected")
	}
	got, err := store.FindByEmail(ctx, user.Email)
	if err != nil || got.ID != user.ID {
		t.Fatalf("unexpected lookup %+v, %v", got, err)
	}
}

func sampleUser() domain.User {
	return domain.User{
		ID:           "u1",
		FullName:     "Asha Rai",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
}
