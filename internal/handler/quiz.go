package handler

import (
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/dto"
	"mcq-quiz/internal/service"
	"mcq-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// StartQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions on a topic and starts a new session.
// @Description A generation that yields no usable question returns status "unavailable" with a notice.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.StartQuizRequest true "Topic and number of questions"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}

	if errs := h.validator.ValidateStartQuizRequest(req.Topic, req.Count, req.SessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.StartQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuiz godoc
// @Summary Show the current state of a quiz
// @Description Returns the current question (without its answer) or the final summary.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Answer the current question
// @Description Records the selected option, reports whether it was correct and advances the quiz.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Param request body dto.SubmitAnswerRequest true "Selected option"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/answers [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}

	resp, err := h.service.SubmitAnswer(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetScorecard godoc
// @Summary Show the scorecard
// @Description Returns the score and the per-question review of a finished quiz.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.ScorecardResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/scorecard [get]
func (h *QuizHandler) GetScorecard(c *fiber.Ctx) error {
	resp, err := h.service.GetScorecard(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetQuiz godoc
// @Summary Return home
// @Description Clears the session so a new topic can be requested.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID (ULID)"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/reset [post]
func (h *QuizHandler) ResetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.ResetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
