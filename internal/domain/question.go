package domain

import (
	"context"
	"slices"
)

// OptionsPerQuestion is the number of choices every parsed question carries.
const OptionsPerQuestion = 4

// QuestionRecord is one multiple-choice question as produced by a QuestionSource.
type QuestionRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// HasListedAnswer reports whether CorrectAnswer equals one of the options
// verbatim. Questions without a listed answer can never be scored correct.
func (q QuestionRecord) HasListedAnswer() bool {
	return slices.Contains(q.Options, q.CorrectAnswer)
}

// QuestionSource turns a topic and a question count into question records.
// Implementations may return fewer records than requested, including none.
type QuestionSource interface {
	Generate(ctx context.Context, topic string, count int) ([]QuestionRecord, error)
}
