package domain

import (
	"slices"
	"strings"
	"time"
)

// SessionStatus is derived from a QuizSession; it is never stored.
type SessionStatus string

const (
	StatusAwaitingTopic SessionStatus = "awaiting_topic"
	StatusInProgress    SessionStatus = "in_progress"
	StatusFinished      SessionStatus = "finished"
	// StatusUnavailable is the terminal state of a generation that produced no questions.
	StatusUnavailable SessionStatus = "unavailable"
)

// DefaultUnavailableNotice is shown when a generation succeeded but yielded no usable question.
const DefaultUnavailableNotice = "Unable to generate a quiz for this topic. Try another topic or fewer questions."

// QuizSession is the state of one user's pass through a generated quiz.
// Transitions return a new value and never modify the receiver.
type QuizSession struct {
	ID             string           `json:"id"`
	Topic          string           `json:"topic"`
	RequestedCount int              `json:"requested_count"`
	Generated      bool             `json:"generated"`
	Questions      []QuestionRecord `json:"questions"`
	CurrentIndex   int              `json:"current_index"`
	Score          int              `json:"score"`
	UserAnswers    []string         `json:"user_answers"`
	Finished       bool             `json:"finished"`
	Notice         string           `json:"notice,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// AnswerOutcome is the immediate feedback for one submitted answer.
type AnswerOutcome struct {
	QuestionNumber int    `json:"question_number"`
	Selected       string `json:"selected"`
	Correct        bool   `json:"correct"`
	CorrectAnswer  string `json:"correct_answer"`
}

// ReviewItem pairs a question with the answer the user gave.
type ReviewItem struct {
	Number        int    `json:"number"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	AnswerListed  bool   `json:"answer_listed"`
}

// Scorecard is the summary of a finished session.
type Scorecard struct {
	Score   int          `json:"score"`
	Total   int          `json:"total"`
	Perfect bool         `json:"perfect"`
	Review  []ReviewItem `json:"review"`
}

// NewQuizSession returns an empty session waiting for a topic.
func NewQuizSession(id string, now time.Time) QuizSession {
	return QuizSession{
		ID:          id,
		UserAnswers: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Status derives the state machine position from the session fields.
func (s QuizSession) Status() SessionStatus {
	switch {
	case s.Finished:
		return StatusFinished
	case len(s.Questions) > 0:
		return StatusInProgress
	case s.Generated:
		return StatusUnavailable
	default:
		return StatusAwaitingTopic
	}
}

// Start loads a freshly generated question set, discarding any previous progress.
// An empty set leaves the session Unavailable with a notice instead of Finished.
func (s QuizSession) Start(topic string, requested int, questions []QuestionRecord, now time.Time) QuizSession {
	next := QuizSession{
		ID:             s.ID,
		Topic:          topic,
		RequestedCount: requested,
		Generated:      true,
		Questions:      slices.Clone(questions),
		UserAnswers:    []string{},
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      now,
	}
	if len(next.Questions) == 0 {
		next.Questions = nil
		next.Notice = DefaultUnavailableNotice
	}
	return next
}

// CurrentQuestion returns the question awaiting an answer, if any.
func (s QuizSession) CurrentQuestion() (QuestionRecord, bool) {
	if s.Status() != StatusInProgress || s.CurrentIndex >= len(s.Questions) {
		return QuestionRecord{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// SubmitAnswer records selected for the current question and advances.
// An empty selection is rejected and the session is returned unchanged.
func (s QuizSession) SubmitAnswer(selected string, now time.Time) (QuizSession, AnswerOutcome, error) {
	current, ok := s.CurrentQuestion()
	if !ok {
		return s, AnswerOutcome{}, NewQuizNotInProgressError(s.Status())
	}
	if strings.TrimSpace(selected) == "" {
		return s, AnswerOutcome{}, NewNoAnswerSelectedError()
	}

	next := s
	next.UserAnswers = append(slices.Clone(s.UserAnswers), selected)
	outcome := AnswerOutcome{
		QuestionNumber: s.CurrentIndex + 1,
		Selected:       selected,
		Correct:        selected == current.CorrectAnswer,
		CorrectAnswer:  current.CorrectAnswer,
	}
	if outcome.Correct {
		next.Score++
	}
	next.CurrentIndex++
	if next.CurrentIndex == len(next.Questions) {
		next.Finished = true
	}
	next.UpdatedAt = now
	return next, outcome, nil
}

// Reset returns home: progress and questions are cleared so nothing from the
// previous quiz is visible to the next one.
func (s QuizSession) Reset(now time.Time) QuizSession {
	next := NewQuizSession(s.ID, s.CreatedAt)
	next.UpdatedAt = now
	return next
}

// Summary builds the scorecard. It is only available once the session is finished.
func (s QuizSession) Summary() (Scorecard, error) {
	if s.Status() != StatusFinished {
		return Scorecard{}, NewQuizNotFinishedError(s.Status())
	}
	card := Scorecard{
		Score:  s.Score,
		Total:  len(s.Questions),
		Review: make([]ReviewItem, 0, len(s.Questions)),
	}
	card.Perfect = card.Total > 0 && card.Score == card.Total
	for i, q := range s.Questions {
		item := ReviewItem{
			Number:        i + 1,
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			AnswerListed:  q.HasListedAnswer(),
		}
		if i < len(s.UserAnswers) {
			item.UserAnswer = s.UserAnswers[i]
			item.Correct = item.UserAnswer == q.CorrectAnswer
		}
		card.Review = append(card.Review, item)
	}
	return card, nil
}
