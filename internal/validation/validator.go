package validation

import (
	"strings"
	"unicode/utf8"

	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/util"
)

// Validator provides request validation functionality
type Validator struct {
	minQuestions   int
	maxQuestions   int
	maxTopicLength int
}

// NewValidator creates a validator bounded by the quiz settings.
// Non-positive values fall back to 1-100 questions and 200-character topics.
func NewValidator(cfg config.QuizConfig) *Validator {
	v := &Validator{
		minQuestions:   cfg.MinQuestions,
		maxQuestions:   cfg.MaxQuestions,
		maxTopicLength: cfg.MaxTopicLength,
	}
	if v.minQuestions <= 0 {
		v.minQuestions = 1
	}
	if v.maxQuestions < v.minQuestions {
		v.maxQuestions = 100
	}
	if v.maxTopicLength <= 0 {
		v.maxTopicLength = 200
	}
	return v
}

// ValidateStartQuizRequest validates the generate quiz request
func (v *Validator) ValidateStartQuizRequest(topic string, count int, sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	topic = strings.TrimSpace(topic)
	if topic == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if n := utf8.RuneCountInString(topic); n > v.maxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 1, v.maxTopicLength))
	}

	if count < v.minQuestions || count > v.maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("count", count, v.minQuestions, v.maxQuestions))
	}

	if sessionID != "" && !util.IsValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}

	return errors
}

// ValidateSessionID validates a session id path parameter
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}
