package domain

import (
	"fmt"
	"strings"
	"time"
)

// Question models one MCQ item. CorrectAnswer holds the text of the right option.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Validate checks the record is answerable: a prompt, at least two filled
// options, and a correct answer that is one of them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question is required", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: at least two options are required", ErrInvalidQuestion)
	}
	found := false
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i+1)
		}
		if opt == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: correct answer must be one of the options", ErrInvalidQuestion)
	}
	return nil
}

// ValidateLoaded checks every fetched record. The first invalid one fails the
// whole set with ErrMalformedResponse wrapping the validation error.
func ValidateLoaded(questions []Question) error {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformedResponse, i+1, err)
		}
	}
	return nil
}

// QuestionSet is the ordered list of questions for one category.
type QuestionSet struct {
	Category  string     `json:"category"`
	Questions []Question `json:"questions"`
}

// ResultReport is the score summary produced on submission.
type ResultReport struct {
	Score        int `json:"score"`
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
	CorrectCount int `json:"correctCount"`
	WrongCount   int `json:"wrongCount"`
}

// Verdict returns the feedback band shown with the results.
func (r ResultReport) Verdict() string {
	switch {
	case r.Percentage >= 80:
		return "Excellent!"
	case r.Percentage >= 60:
		return "Good Job!"
	case r.Percentage >= 40:
		return "Not Bad!"
	default:
		return "Keep Practicing!"
	}
}

// ReviewItem shows one question's outcome after submission.
type ReviewItem struct {
	Number        int     `json:"number"`
	Question      string  `json:"question"`
	CorrectAnswer string  `json:"correctAnswer"`
	Selected      *string `json:"selected"`
	Correct       bool    `json:"correct"`
}

// Subject is a practice category listed in the subject drawer.
type Subject struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	QuestionCount int    `json:"questionCount"`
}

// Faculty is a top-level study area shown on the landing page.
type Faculty struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	QuestionCount int    `json:"questionCount"`
}

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
