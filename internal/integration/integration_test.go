package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/cli"
	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/infra/postgres"
	infraredis "mcq-practice-service/internal/infra/redis"
)

func TestPracticeSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisAddr, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	if err := cli.RunMigrations(ctx, pgURL, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// A second run must be a no-op.
	if err := cli.RunMigrations(ctx, pgURL, zerolog.Nop()); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	defer redisClient.Close()

	store := postgres.NewQuestionStore(pool)
	questions := infraredis.NewQuestionRepository(redisClient, store, 5*time.Minute)
	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	log := zerolog.Nop()
	service := app.NewQuizService(sessions, questions, log)
	authoringSvc := app.NewAuthoringService(store, questions, log)

	for _, q := range sampleQuestions() {
		payload := map[string]any{"question": q.Text, "options": q.Options, "correctAnswer": q.CorrectAnswer, "category": "math"}
		if err := store.CreateQuestion(ctx, payload); err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	id, _ := service.StartSession(ctx)
	snap, err := service.SelectCategory(ctx, id, "math")
	if err != nil {
		t.Fatalf("select category: %v", err)
	}
	if snap.Total != 2 {
		t.Fatalf("expected 2 questions, got %d", snap.Total)
	}
	if _, err := service.SelectAnswer(ctx, id, "4"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	report, _, err := service.Submit(ctx, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Score != 1 || report.Percentage != 50 {
		t.Fatalf("unexpected report %+v", report)
	}

	// A session missing locally is restored from its redis snapshot.
	restored := app.NewQuizService(infraredis.NewSessionStore(redisClient, 5*time.Minute), questions, log)
	rsnap, err := restored.Snapshot(ctx, id)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if rsnap.Report == nil || rsnap.Report.Score != 1 {
		t.Fatalf("expected restored report, got %+v", rsnap)
	}

	// Authoring through the service refreshes the cached set.
	if _, err := questions.GetQuestions(ctx, "math"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	form := newMathForm()
	if _, err := authoringSvc.Submit(ctx, form); err != nil {
		t.Fatalf("author question: %v", err)
	}
	qs, err := questions.GetQuestions(ctx, "math")
	if err != nil || len(qs) != 3 {
		t.Fatalf("expected 3 questions after authoring, got %d (%v)", len(qs), err)
	}

	if _, err := store.LoadQuestions(ctx, "history"); !errors.Is(err, domain.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}

	if _, err := pool.Exec(ctx, `INSERT INTO questions (category, data) VALUES ('broken', '{}'::jsonb)`); err != nil {
		t.Fatalf("insert broken row: %v", err)
	}
	if _, err := store.LoadQuestions(ctx, "broken"); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse for an invalid row, got %v", err)
	}
}

func TestUserStoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	if err := cli.RunMigrations(ctx, pgURL, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	auth := app.NewAuthService(postgres.NewUserStore(pool), "secret", time.Hour, 4)
	if _, err := auth.Register(ctx, app.RegisterRequest{FullName: "Asha Rai", Email: "asha@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := auth.Register(ctx, app.RegisterRequest{FullName: "Asha Rai", Email: "asha@example.com", Password: "pw123456"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := auth.Login(ctx, app.LoginRequest{Email: "asha@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := auth.Login(ctx, app.LoginRequest{Email: "nobody@example.com", Password: "pw"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "mcq", "POSTGRES_PASSWORD": "mcqpass", "POSTGRES_DB": "mcqdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://mcq:mcqpass@%s:%s/mcqdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	addr := fmt.Sprintf("%s:%s", host, port.Port())
	return addr, func() {
		_ = container.Terminate(ctx)
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
		{Text: "What is 3 * 3?", Options: []string{"6", "9"}, CorrectAnswer: "9"},
	}
}

func newMathForm() *authoring.Form {
	form := authoring.NewForm()
	form.Category = "math"
	form.Question = "What is 10 / 2?"
	form.SetOption(0, "2")
	form.SetOption(1, "5")
	form.CorrectAnswer = "5"
	return form
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
