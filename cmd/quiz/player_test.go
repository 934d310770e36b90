package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	questions []domain.QuestionRecord
	err       error
	topics    []string
}

func (s *stubSource) Generate(_ context.Context, topic string, _ int) ([]domain.QuestionRecord, error) {
	s.topics = append(s.topics, topic)
	return s.questions, s.err
}

func twoQuestions() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{Question: "Largest planet?", Options: []string{"Mars", "Jupiter", "Venus", "Earth"}, CorrectAnswer: "Jupiter"},
		{Question: "Closest star?", Options: []string{"Sirius", "Vega", "The Sun", "Rigel"}, CorrectAnswer: "The Sun"},
	}
}

func play(t *testing.T, source domain.QuestionSource, input string, topic string, count int) string {
	t.Helper()
	var out bytes.Buffer
	p := newPlayer(strings.NewReader(input), &out, source, config.QuizConfig{})
	require.NoError(t, p.run(context.Background(), topic, count))
	return out.String()
}

func TestPlayer_PerfectRound(t *testing.T) {
	out := play(t, &stubSource{questions: twoQuestions()}, "2\n3\nq\n", "space", 2)

	assert.Contains(t, out, "Question 1 of 2")
	assert.Contains(t, out, "  2) Jupiter")
	assert.Equal(t, 2, strings.Count(out, "Correct!"))
	assert.Contains(t, out, "Your score: 2/2")
	assert.Contains(t, out, "Perfect score")
	assert.Contains(t, out, "Goodbye!")
}

func TestPlayer_RejectsMissingSelection(t *testing.T) {
	out := play(t, &stubSource{questions: twoQuestions()}, "\n9\n1\n3\nq\n", "space", 2)

	assert.Equal(t, 2, strings.Count(out, "Select an option from 1 to 4."))
	assert.Contains(t, out, "Wrong! The correct answer is: Jupiter")
	assert.Contains(t, out, "Your score: 1/2")
	assert.NotContains(t, out, "Perfect score")
}

func TestPlayer_PromptsAndReturnsHome(t *testing.T) {
	source := &stubSource{questions: twoQuestions()}
	input := strings.Join([]string{
		"space", "abc", "0", "2", // first topic, invalid counts, then 2
		"2", "3", "h", // answers, home
		"oceans", "2", "1", "1", "q",
	}, "\n") + "\n"

	out := play(t, source, input, "", 0)

	assert.Equal(t, []string{"space", "oceans"}, source.topics)
	assert.Contains(t, out, "Please enter a whole number.")
	assert.Contains(t, out, "count must be between 1 and 100")
	assert.Contains(t, out, "Your score: 0/2")
}

func TestPlayer_GenerationFailure(t *testing.T) {
	source := &stubSource{err: domain.NewLLMServiceError(errors.New("timeout"))}
	out := play(t, source, "q\n", "space", 3)

	assert.Contains(t, out, "An error occurred: Failed to generate quiz with LLM service")
	assert.NotContains(t, out, "Question 1")
}

func TestPlayer_EmptyGeneration(t *testing.T) {
	out := play(t, &stubSource{}, "q\n", "space", 3)

	assert.Contains(t, out, domain.DefaultUnavailableNotice)
	assert.NotContains(t, out, "Your score")
}

func TestPlayer_EndOfInput(t *testing.T) {
	out := play(t, &stubSource{questions: twoQuestions()}, "2\n", "space", 2)
	assert.Contains(t, out, "Goodbye!")
}

func TestSelectOption(t *testing.T) {
	q := twoQuestions()[0]

	assert.Equal(t, "Mars", selectOption(q, "1"))
	assert.Equal(t, "Earth", selectOption(q, " 4 "))
	assert.Empty(t, selectOption(q, "5"))
	assert.Empty(t, selectOption(q, "Jupiter"))
	assert.Empty(t, selectOption(q, ""))
}
