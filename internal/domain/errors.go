package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeRateLimited  ErrorCode = "RATE_LIMITED"

	// Quiz session errors
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	CodeNoAnswerSelected  ErrorCode = "NO_ANSWER_SELECTED"
	CodeQuizNotInProgress ErrorCode = "QUIZ_NOT_IN_PROGRESS"
	CodeQuizNotFinished   ErrorCode = "QUIZ_NOT_FINISHED"
	CodeLLMServiceError   ErrorCode = "LLM_SERVICE_ERROR"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so sentinel
// comparisons work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a key/value pair that is rendered in error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is checks.
var (
	ErrSessionNotFound   = &DomainError{Code: CodeSessionNotFound}
	ErrNoAnswerSelected  = &DomainError{Code: CodeNoAnswerSelected}
	ErrQuizNotInProgress = &DomainError{Code: CodeQuizNotInProgress}
	ErrQuizNotFinished   = &DomainError{Code: CodeQuizNotFinished}
	ErrLLMService        = &DomainError{Code: CodeLLMServiceError}
)

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Quiz session not found with ID: %s", sessionID), nil)
}

func NewNoAnswerSelectedError() *DomainError {
	return NewError(CodeNoAnswerSelected, "Select an answer before submitting", nil)
}

func NewQuizNotInProgressError(status SessionStatus) *DomainError {
	return NewError(CodeQuizNotInProgress, "Quiz is not accepting answers", nil).
		WithContext("status", string(status))
}

func NewQuizNotFinishedError(status SessionStatus) *DomainError {
	return NewError(CodeQuizNotFinished, "Scorecard is available once the quiz is finished", nil).
		WithContext("status", string(status))
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to generate quiz with LLM service", err)
}

func NewRateLimitedError() *DomainError {
	return NewError(CodeRateLimited, "Too many quiz generation requests, try again later", nil)
}
