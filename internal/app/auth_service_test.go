package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/infra/memory"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := app.NewAuthService(memory.NewUserStore(), "secret", time.Hour, 4)

	user, err := auth.Register(ctx, app.RegisterRequest{FullName: " Asha Rai ", Email: "Asha@Example.com", Password: "pa55word"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.Email != "asha@example.com" || user.FullName != "Asha Rai" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash == "pa55word" {
		t.Fatalf("password stored in clear text")
	}

	if _, err := auth.Register(ctx, app.RegisterRequest{FullName: "Other", Email: "asha@example.com", Password: "x"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	res, err := auth.Login(ctx, app.LoginRequest{Email: "ASHA@example.com", Password: "pa55word"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := auth.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !res.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", res.ExpiresAt)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth := app.NewAuthService(memory.NewUserStore(), "secret", time.Hour, 4)
	if _, err := auth.Register(ctx, app.RegisterRequest{FullName: "A", Email: "a@example.com", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(ctx, app.LoginRequest{Email: "a@example.com", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, app.LoginRequest{Email: "nobody@example.com", Password: "right"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	issuer := app.NewAuthService(users, "one", time.Hour, 4)
	other := app.NewAuthService(users, "two", time.Hour, 4)

	if _, err := issuer.Register(ctx, app.RegisterRequest{FullName: "A", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := issuer.Login(ctx, app.LoginRequest{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := other.ParseToken(res.Token); err == nil {
		t.Fatalf("expected signature error")
	}
}
