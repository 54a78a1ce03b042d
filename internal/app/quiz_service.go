package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mcq-practice-service/internal/domain"
	"mcq-practice-service/internal/quiz"
)

// SessionRepository abstracts how practice sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Create(ctx context.Context, id string) *Session
	Get(ctx context.Context, id string) (*Session, bool)
	Save(ctx context.Context, session *Session)
	Delete(ctx context.Context, id string)
	// SweepIdle removes sessions whose last operation is before the cutoff and
	// returns how many were removed.
	SweepIdle(ctx context.Context, before time.Time) int
}

// QuestionLoader fetches a category's questions from a backing store or the upstream API.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, category string) ([]domain.Question, error)
}

// QuestionRepository serves question sets, usually from a cache in front of a loader.
type QuestionRepository interface {
	GetQuestions(ctx context.Context, category string) ([]domain.Question, error)
	Invalidate(ctx context.Context, category string)
}

// QuizService contains the practice-session use cases.
type QuizService struct {
	sessions  SessionRepository
	questions QuestionRepository
	log       zerolog.Logger
	newID     func() string
}

func NewQuizService(store SessionRepository, questions QuestionRepository, log zerolog.Logger) *QuizService {
	return &QuizService{
		sessions:  store,
		questions: questions,
		log:       log,
		newID:     func() string { return uuid.New().String() },
	}
}

// Subjects lists the practice categories.
func (s *QuizService) Subjects() []domain.Subject {
	return domain.Subjects()
}

// Faculties lists the landing-page faculties.
func (s *QuizService) Faculties() []domain.Faculty {
	return domain.Faculties()
}

// StartSession creates an empty session with no question set loaded.
func (s *QuizService) StartSession(ctx context.Context) (string, quiz.Snapshot) {
	session := s.sessions.Create(ctx, s.newID())
	s.log.Debug().Str("session", session.ID()).Msg("session started")
	return session.ID(), session.Snapshot()
}

// EndSession drops a session and closes its subscriptions.
func (s *QuizService) EndSession(ctx context.Context, sessionID string) error {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.sessions.Delete(ctx, sessionID)
	session.Close()
	return nil
}

// Snapshot returns the client view of a session.
func (s *QuizService) Snapshot(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return quiz.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// SelectCategory fetches a category's questions and loads them into the
// session. The fetch runs outside the session lock; if another load was
// issued meanwhile, this result is discarded with domain.ErrStaleLoad.
// A failed fetch leaves the session with no question set loaded.
func (s *QuizService) SelectCategory(ctx context.Context, sessionID, category string) (quiz.Snapshot, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return quiz.Snapshot{}, domain.ErrCategoryRequired
	}
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return quiz.Snapshot{}, domain.ErrSessionNotFound
	}

	seq := session.beginLoad()
	questions, err := s.questions.GetQuestions(ctx, category)
	if err == nil && len(questions) == 0 {
		err = domain.ErrEmptyResult
	}
	if err != nil {
		s.log.Warn().Err(err).Str("session", sessionID).Str("category", category).Msg("question fetch failed")
		snap, clearErr := session.failLoad(seq)
		if clearErr != nil {
			s.logStale(sessionID, category, seq)
			return snap, clearErr
		}
		s.sessions.Save(ctx, session)
		return snap, fmt.Errorf("load %s: %w", category, err)
	}

	snap, err := session.completeLoad(seq, category, questions)
	if err != nil {
		if errors.Is(err, domain.ErrStaleLoad) {
			s.logStale(sessionID, category, seq)
		}
		return snap, err
	}
	s.sessions.Save(ctx, session)
	return snap, nil
}

func (s *QuizService) logStale(sessionID, category string, seq uint64) {
	s.log.Debug().Str("session", sessionID).Str("category", category).Uint64("seq", seq).Msg("discarding stale question load")
}

// SelectAnswer records an answer for the current question.
func (s *QuizService) SelectAnswer(ctx context.Context, sessionID, value string) (quiz.Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		return c.SelectAnswer(value)
	})
}

// Next moves to the next question; a no-op on the last one.
func (s *QuizService) Next(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		c.Next()
		return nil
	})
}

// Previous moves to the previous question; a no-op on the first one.
func (s *QuizService) Previous(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		c.Previous()
		return nil
	})
}

// GoTo jumps to a 1-based question number.
func (s *QuizService) GoTo(ctx context.Context, sessionID string, number int) (quiz.Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		return c.GoTo(number)
	})
}

// Submit scores the session.
func (s *QuizService) Submit(ctx context.Context, sessionID string) (domain.ResultReport, quiz.Snapshot, error) {
	var report domain.ResultReport
	snap, err := s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		r, err := c.Submit()
		report = r
		return err
	})
	if err != nil {
		return domain.ResultReport{}, snap, err
	}
	s.log.Info().
		Str("session", sessionID).
		Str("category", snap.Category).
		Int("score", report.Score).
		Int("total", report.Total).
		Int("percentage", report.Percentage).
		Msg("quiz submitted")
	return report, snap, nil
}

// Reset clears the attempt, keeping the question set.
func (s *QuizService) Reset(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		c.Reset()
		return nil
	})
}

// CloseResults hides the results, keeping the report.
func (s *QuizService) CloseResults(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c *quiz.Controller) error {
		c.CloseResults()
		return nil
	})
}

// Review lists the per-question outcome after submission.
func (s *QuizService) Review(ctx context.Context, sessionID string) ([]domain.ReviewItem, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var items []domain.ReviewItem
	err := session.read(func(c *quiz.Controller) error {
		var err error
		items, err = c.Review()
		return err
	})
	return items, err
}

// Subscribe returns a channel of snapshots published after every change.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, sessionID string) (<-chan quiz.Snapshot, func(), error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

func (s *QuizService) mutate(ctx context.Context, sessionID string, fn func(c *quiz.Controller) error) (quiz.Snapshot, error) {
	session, ok := s.sessions.Get(ctx, sessionID)
	if !ok {
		return quiz.Snapshot{}, domain.ErrSessionNotFound
	}
	snap, err := session.apply(fn)
	if err != nil {
		return snap, err
	}
	s.sessions.Save(ctx, session)
	return snap, nil
}
