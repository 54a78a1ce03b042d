// Package authoring models the MCQ creation form: manual entry, pasted JSON
// and uploaded JSON files, each producing the payload sent to a question writer.
package authoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mcq-practice-service/internal/domain"
)

const (
	MinOptions = 2
	MaxOptions = 6
)

// Mode selects which input the form submits.
type Mode int

const (
	ModeManual Mode = iota
	ModePastedJSON
	ModeUploadedFile
)

// ParseMode maps the wire names used by the API.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "manual":
		return ModeManual, nil
	case "json", "pasted":
		return ModePastedJSON, nil
	case "file", "upload":
		return ModeUploadedFile, nil
	}
	return ModeManual, fmt.Errorf("unknown authoring mode %q", s)
}

// Validation errors for the manual mode.
var (
	ErrQuestionRequired      = errors.New("question is required")
	ErrOptionsIncomplete     = errors.New("all options must be filled")
	ErrCorrectAnswerRequired = errors.New("correct answer must be selected")
)

// Form is the editable state behind one authoring submission.
type Form struct {
	Category      string
	Question      string
	Options       []string
	CorrectAnswer string
	Mode          Mode

	jsonText string
	document map[string]any
}

// NewForm returns a blank form with two empty options.
func NewForm() *Form {
	f := &Form{}
	f.Clear()
	return f
}

// Clear restores the defaults.
func (f *Form) Clear() {
	f.Category = ""
	f.Question = ""
	f.Options = make([]string, MinOptions)
	f.CorrectAnswer = ""
	f.jsonText = ""
	f.document = nil
}

// AddOption appends a blank option; it reports false once MaxOptions is reached.
func (f *Form) AddOption() bool {
	if len(f.Options) >= MaxOptions {
		return false
	}
	f.Options = append(f.Options, "")
	return true
}

// RemoveOption drops option i, keeping at least MinOptions. Removing the option
// that was marked correct clears the correct answer.
func (f *Form) RemoveOption(i int) bool {
	if len(f.Options) <= MinOptions || i < 0 || i >= len(f.Options) {
		return false
	}
	removed := f.Options[i]
	f.Options = append(f.Options[:i:i], f.Options[i+1:]...)
	if f.CorrectAnswer == removed {
		f.CorrectAnswer = ""
	}
	return true
}

// SetOption changes the text of option i.
func (f *Form) SetOption(i int, value string) bool {
	if i < 0 || i >= len(f.Options) {
		return false
	}
	f.Options[i] = value
	return true
}

// JSONText returns the pasted or pretty-printed uploaded JSON.
func (f *Form) JSONText() string {
	return f.jsonText
}

// Document returns the parsed JSON object, if any.
func (f *Form) Document() (map[string]any, bool) {
	return f.document, f.document != nil
}

// SetJSONText stores pasted text. Parseable objects become the document and
// lend their category to the form; anything else clears the document.
func (f *Form) SetJSONText(text string) {
	f.jsonText = text
	doc, err := parseObject([]byte(text))
	if err != nil {
		f.document = nil
		return
	}
	f.document = doc
	f.adoptCategory(doc)
}

// Upload parses an uploaded JSON file. A file that does not parse returns
// domain.ErrMalformedJSON and leaves the form untouched.
func (f *Form) Upload(data []byte) error {
	doc, err := parseObject(data)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	f.document = doc
	f.jsonText = string(pretty)
	f.adoptCategory(doc)
	return nil
}

// Payload builds the body sent to the question writer for the active mode.
// The form's category always wins over one inside a JSON document.
func (f *Form) Payload() (map[string]any, error) {
	if strings.TrimSpace(f.Category) == "" {
		return nil, domain.ErrCategoryRequired
	}

	switch {
	case f.Mode == ModePastedJSON && f.jsonText != "":
		doc, err := parseObject([]byte(f.jsonText))
		if err != nil {
			return nil, fmt.Errorf("invalid JSON in text area: %w", err)
		}
		doc["category"] = f.Category
		return doc, nil
	case f.Mode == ModeUploadedFile && f.document != nil:
		out := make(map[string]any, len(f.document)+1)
		for k, v := range f.document {
			out[k] = v
		}
		out["category"] = f.Category
		return out, nil
	}

	if strings.TrimSpace(f.Question) == "" {
		return nil, ErrQuestionRequired
	}
	for _, opt := range f.Options {
		if strings.TrimSpace(opt) == "" {
			return nil, ErrOptionsIncomplete
		}
	}
	if f.CorrectAnswer == "" {
		return nil, ErrCorrectAnswerRequired
	}
	return map[string]any{
		"question":      f.Question,
		"options":       append([]string(nil), f.Options...),
		"correctAnswer": f.CorrectAnswer,
		"category":      f.Category,
	}, nil
}

func (f *Form) adoptCategory(doc map[string]any) {
	if c, ok := doc["category"].(string); ok && c != "" {
		f.Category = c
	}
}

func parseObject(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrMalformedJSON)
	}
	return doc, nil
}

// QuestionFromPayload decodes a payload into a question record and validates it.
func QuestionFromPayload(payload map[string]any) (domain.Question, string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.Question{}, "", fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	var rec struct {
		domain.Question
		Category string `json:"category"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Question{}, "", fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	if rec.Category == "" {
		return domain.Question{}, "", domain.ErrCategoryRequired
	}
	if err := rec.Question.Validate(); err != nil {
		return domain.Question{}, "", err
	}
	return rec.Question, rec.Category, nil
}
