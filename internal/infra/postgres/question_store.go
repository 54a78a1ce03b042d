package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/domain"
)

// QuestionStore keeps questions as JSONB rows, one per question, keyed by category.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

// LoadQuestions returns a category's questions in insertion order.
func (s *QuestionStore) LoadQuestions(ctx context.Context, category string) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM questions WHERE category=$1 ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrEmptyResult
	}
	if err := domain.ValidateLoaded(questions); err != nil {
		return nil, fmt.Errorf("load %s: %w", category, err)
	}
	return questions, nil
}

// CreateQuestion stores the payload as-is after checking it describes a valid question.
func (s *QuestionStore) CreateQuestion(ctx context.Context, payload map[string]any) error {
	_, category, err := authoring.QuestionFromPayload(payload)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `INSERT INTO questions (category, data) VALUES ($1, $2::jsonb)`, category, string(raw)); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}
