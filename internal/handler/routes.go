package handler

import (
	"mcq-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /api. generateLimiter guards quiz generation only.
func RegisterRoutes(app *fiber.App, quizHandler *QuizHandler, healthHandler *HealthHandler, vm *middleware.ValidationMiddleware, generateLimiter fiber.Handler) {
	apiGroup := app.Group("/api")

	apiGroup.Get("/health", healthHandler.Health)

	validID := vm.ValidateSessionID()
	apiGroup.Post("/quizzes", generateLimiter, quizHandler.StartQuiz)
	apiGroup.Get("/quizzes/:id", validID, quizHandler.GetQuiz)
	apiGroup.Post("/quizzes/:id/answers", validID, quizHandler.SubmitAnswer)
	apiGroup.Get("/quizzes/:id/scorecard", validID, quizHandler.GetScorecard)
	apiGroup.Post("/quizzes/:id/reset", validID, quizHandler.ResetQuiz)
}
