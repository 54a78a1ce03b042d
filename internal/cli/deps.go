package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/config"
	"mcq-practice-service/internal/infra/memory"
	"mcq-practice-service/internal/infra/postgres"
	redisstore "mcq-practice-service/internal/infra/redis"
	"mcq-practice-service/internal/infra/remote"
)

// deps holds the wired services and the connections to release on shutdown.
type deps struct {
	sessions  app.SessionRepository
	questions app.QuestionRepository
	quiz      *app.QuizService
	authoring *app.AuthoringService
	auth      app.Authenticator
	// tokens is set only when authoring requires a locally issued token.
	tokens *app.AuthService

	closers []func()
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildDeps chooses backends from config: the upstream API when a base URL is
// set, otherwise Postgres when a URL is set, otherwise in-memory stores.
// Redis, when configured, backs the question cache and session snapshots.
func buildDeps(ctx context.Context, cfg config.Config, log zerolog.Logger) (*deps, error) {
	d := &deps{}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		p, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		pool = p
		d.closers = append(d.closers, pool.Close)
		log.Info().Msg("postgres connected")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			d.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		d.closers = append(d.closers, func() { _ = rdb.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("redis connected")
	}

	var (
		loader app.QuestionLoader
		writer app.QuestionWriter
	)
	var users app.UserRepository = memory.NewUserStore()
	switch {
	case cfg.Upstream.BaseURL != "":
		client := remote.NewClient(cfg.Upstream.BaseURL, remote.Paths{
			Questions: cfg.Upstream.QuestionsPath,
			Create:    cfg.Upstream.CreatePath,
			Register:  cfg.Upstream.RegisterPath,
			Login:     cfg.Upstream.LoginPath,
		}, config.TTLDuration(cfg.Upstream.Timeout, 10*time.Second))
		loader, writer, d.auth = client, client, client
		log.Info().Str("baseURL", cfg.Upstream.BaseURL).Msg("using upstream question service")
	case pool != nil:
		store := postgres.NewQuestionStore(pool)
		loader, writer = store, store
		users = postgres.NewUserStore(pool)
		log.Info().Msg("using postgres question store")
	default:
		store := memory.NewQuestionStore(memory.SampleQuestions())
		loader, writer = store, store
		log.Warn().Msg("no upstream or database configured, serving sample questions from memory")
	}
	if d.auth == nil {
		local := app.NewAuthService(users, cfg.Auth.JWTSecret, config.TTLDuration(cfg.Auth.JWTExpiry, 24*time.Hour), cfg.Auth.BcryptCost)
		d.auth = local
		if cfg.Auth.RequireForAuthoring {
			d.tokens = local
		}
	} else if cfg.Auth.RequireForAuthoring {
		log.Warn().Msg("auth.requireForAuthoring is ignored with an upstream API")
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 2*time.Hour)
	if rdb != nil {
		d.questions = redisstore.NewQuestionRepository(rdb, loader, questionTTL)
		d.sessions = redisstore.NewSessionStore(rdb, sessionTTL)
	} else {
		d.questions = memory.NewQuestionRepository(loader, questionTTL)
		d.sessions = memory.NewSessionStore()
	}

	d.quiz = app.NewQuizService(d.sessions, d.questions, log)
	d.authoring = app.NewAuthoringService(writer, d.questions, log)
	return d, nil
}
