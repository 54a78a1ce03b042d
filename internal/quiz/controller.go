// Package quiz holds the practice-attempt state machine: question navigation,
// answer tracking, scoring and reset for one loaded question set.
//
// A Controller performs no I/O and no locking; callers that share one across
// goroutines must serialize access.
package quiz

import (
	"mcq-practice-service/internal/domain"
)

// Phase is the coarse lifecycle position of a controller.
type Phase string

const (
	PhaseNoSetLoaded Phase = "noSetLoaded"
	PhaseInProgress  Phase = "inProgress"
	PhaseSubmitted   Phase = "submitted"
)

// Controller owns the state of one quiz attempt.
type Controller struct {
	category       string
	questions      []domain.Question
	answers        []*string
	current        int
	report         *domain.ResultReport
	resultsVisible bool
}

// New returns a controller with no question set loaded.
func New() *Controller {
	return &Controller{}
}

// Load replaces the question set and starts a fresh attempt. An empty set is
// rejected with domain.ErrEmptyQuestionSet and the controller is left as it was.
func (c *Controller) Load(category string, questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptyQuestionSet
	}
	set := make([]domain.Question, len(questions))
	copy(set, questions)

	c.category = category
	c.questions = set
	c.answers = make([]*string, len(set))
	c.current = 0
	c.report = nil
	c.resultsVisible = false
	return nil
}

// Unload drops the question set and every answer, returning to
// PhaseNoSetLoaded.
func (c *Controller) Unload() {
	*c = Controller{}
}

// Loaded reports whether a question set is present.
func (c *Controller) Loaded() bool {
	return len(c.questions) > 0
}

// Phase derives the lifecycle position from the state.
func (c *Controller) Phase() Phase {
	switch {
	case !c.Loaded():
		return PhaseNoSetLoaded
	case c.report != nil:
		return PhaseSubmitted
	default:
		return PhaseInProgress
	}
}

// Category returns the id of the loaded category.
func (c *Controller) Category() string {
	return c.category
}

// Len returns the number of questions in the loaded set.
func (c *Controller) Len() int {
	return len(c.questions)
}

// CurrentIndex returns the 0-based cursor.
func (c *Controller) CurrentIndex() int {
	return c.current
}

// SelectAnswer records value for the current question. Any string is
// accepted; it is not checked against the question's options.
func (c *Controller) SelectAnswer(value string) error {
	if !c.Loaded() {
		return domain.ErrNoQuestionSet
	}
	v := value
	c.answers[c.current] = &v
	return nil
}

// Answer returns the recorded answer at a 0-based index; ok is false when the
// question is unanswered or the index does not exist.
func (c *Controller) Answer(index int) (string, bool) {
	if index < 0 || index >= len(c.answers) || c.answers[index] == nil {
		return "", false
	}
	return *c.answers[index], true
}

// Next advances the cursor; it is a no-op on the last question.
func (c *Controller) Next() bool {
	if c.current+1 >= len(c.questions) {
		return false
	}
	c.current++
	return true
}

// Previous moves the cursor back; it is a no-op on the first question.
func (c *Controller) Previous() bool {
	if c.current == 0 {
		return false
	}
	c.current--
	return true
}

// GoTo jumps to a 1-based question number.
func (c *Controller) GoTo(number int) error {
	if !c.Loaded() {
		return domain.ErrNoQuestionSet
	}
	if number < 1 || number > len(c.questions) {
		return domain.ErrQuestionOutOfRange
	}
	c.current = number - 1
	return nil
}

// Submit scores the attempt and shows the results. Unanswered questions count
// as wrong. Calling it again without changes yields the same report.
func (c *Controller) Submit() (domain.ResultReport, error) {
	if !c.Loaded() {
		return domain.ResultReport{}, domain.ErrNoQuestionSet
	}
	report := Score(c.questions, c.answers)
	c.report = &report
	c.resultsVisible = true
	return report, nil
}

// Reset clears every answer and the report, keeping the question set.
func (c *Controller) Reset() {
	c.answers = make([]*string, len(c.questions))
	c.current = 0
	c.report = nil
	c.resultsVisible = false
}

// CloseResults hides the results while keeping the report and answers.
func (c *Controller) CloseResults() {
	c.resultsVisible = false
}

// Report returns the last submission's report, if any.
func (c *Controller) Report() (domain.ResultReport, bool) {
	if c.report == nil {
		return domain.ResultReport{}, false
	}
	return *c.report, true
}

// ResultsVisible reports whether the results dialog is open.
func (c *Controller) ResultsVisible() bool {
	return c.resultsVisible
}

// Review lists every question with the correct answer and the selection.
// Only available after submission.
func (c *Controller) Review() ([]domain.ReviewItem, error) {
	if !c.Loaded() {
		return nil, domain.ErrNoQuestionSet
	}
	if c.report == nil {
		return nil, domain.ErrNotSubmitted
	}
	items := make([]domain.ReviewItem, len(c.questions))
	for i, q := range c.questions {
		item := domain.ReviewItem{
			Number:        i + 1,
			Question:      q.Text,
			CorrectAnswer: q.CorrectAnswer,
		}
		if a := c.answers[i]; a != nil {
			v := *a
			item.Selected = &v
			item.Correct = v == q.CorrectAnswer
		}
		items[i] = item
	}
	return items, nil
}

// Score compares answers to the correct answers by exact string equality.
// A nil entry never matches.
func Score(questions []domain.Question, answers []*string) domain.ResultReport {
	total := len(questions)
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] != nil && *answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return domain.ResultReport{
		Score:        score,
		Total:        total,
		Percentage:   percentage(score, total),
		CorrectCount: score,
		WrongCount:   total - score,
	}
}

// percentage rounds score/total*100 half up using integer arithmetic.
func percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}
