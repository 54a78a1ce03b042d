package app

import (
	"context"

	"github.com/rs/zerolog"

	"mcq-practice-service/internal/authoring"
)

// QuestionWriter persists a new question from an authoring payload. Payloads
// are JSON objects that always carry a "category" key.
type QuestionWriter interface {
	CreateQuestion(ctx context.Context, payload map[string]any) error
}

// AuthoringService submits authoring forms to a question writer.
type AuthoringService struct {
	writer    QuestionWriter
	questions QuestionRepository
	log       zerolog.Logger
}

func NewAuthoringService(writer QuestionWriter, questions QuestionRepository, log zerolog.Logger) *AuthoringService {
	return &AuthoringService{writer: writer, questions: questions, log: log}
}

// Submit builds the form's payload, sends it, and clears the form on success.
// The category's cached question set is dropped so the new question shows up.
func (s *AuthoringService) Submit(ctx context.Context, form *authoring.Form) (map[string]any, error) {
	payload, err := form.Payload()
	if err != nil {
		return nil, err
	}
	if err := s.writer.CreateQuestion(ctx, payload); err != nil {
		s.log.Warn().Err(err).Str("category", form.Category).Msg("create question failed")
		return nil, err
	}
	if s.questions != nil {
		s.questions.Invalidate(ctx, form.Category)
	}
	s.log.Info().Str("category", form.Category).Msg("question created")
	form.Clear()
	return payload, nil
}
