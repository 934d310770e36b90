package handler

import (
	"context"
	"time"

	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/dto"
	"mcq-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	cache domain.Cache
}

// NewHealthHandler creates a health handler. c may be nil when sessions are kept in memory.
func NewHealthHandler(c domain.Cache) *HealthHandler {
	return &HealthHandler{cache: c}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Checks: map[string]string{}}
	if h.cache == nil {
		resp.Checks["cache"] = "disabled"
		return c.JSON(resp)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Health check: cache ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Checks["cache"] = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	resp.Checks["cache"] = "ok"
	return c.JSON(resp)
}
