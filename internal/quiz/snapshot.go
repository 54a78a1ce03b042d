package quiz

import "mcq-practice-service/internal/domain"

// Snapshot is a read-only view of the controller for clients.
type Snapshot struct {
	Phase          Phase                `json:"phase"`
	Category       string               `json:"category,omitempty"`
	Total          int                  `json:"total"`
	Number         int                  `json:"number"`
	Question       *domain.Question     `json:"question,omitempty"`
	Selected       *string              `json:"selected"`
	Answers        []*string            `json:"answers"`
	Answered       int                  `json:"answered"`
	Progress       int                  `json:"progress"`
	Report         *domain.ResultReport `json:"report,omitempty"`
	Verdict        string               `json:"verdict,omitempty"`
	ResultsVisible bool                 `json:"resultsVisible"`
}

// Snapshot copies the current state. While results are not yet submitted the
// current question is sent without its correct answer.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          c.Phase(),
		Category:       c.category,
		Total:          len(c.questions),
		Answers:        copyAnswers(c.answers),
		ResultsVisible: c.resultsVisible,
	}
	if !c.Loaded() {
		return snap
	}

	q := c.questions[c.current]
	q.Options = append([]string(nil), q.Options...)
	if c.report == nil {
		q.CorrectAnswer = ""
	}
	snap.Number = c.current + 1
	snap.Question = &q
	snap.Selected = snap.Answers[c.current]
	snap.Progress = snap.Number * 100 / snap.Total
	for _, a := range c.answers {
		if a != nil {
			snap.Answered++
		}
	}
	if c.report != nil {
		r := *c.report
		snap.Report = &r
		snap.Verdict = r.Verdict()
	}
	return snap
}

// Memento is the full serialisable state, used to persist sessions.
type Memento struct {
	Category       string               `json:"category"`
	Questions      []domain.Question    `json:"questions"`
	Answers        []*string            `json:"answers"`
	Current        int                  `json:"current"`
	Report         *domain.ResultReport `json:"report,omitempty"`
	ResultsVisible bool                 `json:"resultsVisible"`
}

// Memento captures the controller state.
func (c *Controller) Memento() Memento {
	m := Memento{
		Category:       c.category,
		Questions:      append([]domain.Question(nil), c.questions...),
		Answers:        copyAnswers(c.answers),
		Current:        c.current,
		ResultsVisible: c.resultsVisible,
	}
	if c.report != nil {
		r := *c.report
		m.Report = &r
	}
	return m
}

// Restore rebuilds a controller from a memento, repairing an answer slice or
// cursor that does not fit the question set.
func Restore(m Memento) *Controller {
	c := New()
	if len(m.Questions) == 0 {
		return c
	}
	c.category = m.Category
	c.questions = append([]domain.Question(nil), m.Questions...)
	c.answers = make([]*string, len(c.questions))
	copy(c.answers, copyAnswers(m.Answers))
	if m.Current >= 0 && m.Current < len(c.questions) {
		c.current = m.Current
	}
	if m.Report != nil {
		r := *m.Report
		c.report = &r
		c.resultsVisible = m.ResultsVisible
	}
	return c
}

func copyAnswers(answers []*string) []*string {
	out := make([]*string, len(answers))
	for i, a := range answers {
		if a != nil {
			v := *a
			out[i] = &v
		}
	}
	return out
}
