package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/util"
	"mcq-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestLogger())
	return app
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"session not found", domain.NewSessionNotFoundError("x"), http.StatusNotFound, string(domain.CodeSessionNotFound)},
		{"no answer selected", domain.NewNoAnswerSelectedError(), http.StatusBadRequest, string(domain.CodeNoAnswerSelected)},
		{"not in progress", domain.NewQuizNotInProgressError(domain.StatusFinished), http.StatusConflict, string(domain.CodeQuizNotInProgress)},
		{"not finished", domain.NewQuizNotFinishedError(domain.StatusInProgress), http.StatusConflict, string(domain.CodeQuizNotFinished)},
		{"rate limited", domain.NewRateLimitedError(), http.StatusTooManyRequests, string(domain.CodeRateLimited)},
		{"llm", domain.NewLLMServiceError(errors.New("down")), http.StatusServiceUnavailable, string(domain.CodeLLMServiceError)},
		{"internal", domain.NewInternalError("boom", errors.New("cause")), http.StatusInternalServerError, string(domain.CodeInternal)},
		{"wrapped domain", errors.Join(errors.New("ctx"), domain.NewSessionNotFoundError("y")), http.StatusNotFound, string(domain.CodeSessionNotFound)},
		{"fiber", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError, string(domain.CodeInternal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestErrorHandler_DetailsAndHiddenCause(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.NewQuizNotFinishedError(domain.StatusUnavailable)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "unavailable", body.Details["status"])

	app = newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.NewLLMServiceError(errors.New("api key sk-secret rejected"))
	})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sk-secret")
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	app := newTestApp()
	app.Post("/", func(c *fiber.Ctx) error {
		return domain.ValidationErrors{
			domain.NewMissingFieldError("topic"),
			domain.NewOutOfRangeError("count", 0, 1, 100),
		}
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ValidationErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, string(domain.CodeValidation), body.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "topic", body.Errors[0].Field)
	assert.Equal(t, domain.CodeOutOfRange, body.Errors[1].Code)
}

func TestValidateSessionID(t *testing.T) {
	vm := NewValidationMiddleware(validation.NewValidator(config.QuizConfig{}))
	app := newTestApp()
	app.Get("/quizzes/:id", vm.ValidateSessionID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(SessionIDLocal).(string))
	})

	id := util.NewULID()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quizzes/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, id, string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/quizzes/not-a-ulid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := newTestApp()
	app.Use(RateLimiter(ctx, config.RateLimitConfig{Requests: 2, Window: time.Hour}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimiter_Disabled(t *testing.T) {
	app := newTestApp()
	app.Use(RateLimiter(context.Background(), config.RateLimitConfig{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	for i := 0; i < 20; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	l := &ipRateLimiter{visitors: map[string]*visitor{}, limit: 1, burst: 1}
	now := time.Now()

	l.allow("10.0.0.1", now.Add(-2*time.Hour))
	l.allow("10.0.0.2", now)

	assert.Equal(t, 1, l.evictIdle(now, time.Hour))
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "10.0.0.2")
}
