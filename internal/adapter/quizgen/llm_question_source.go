package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/logger"
	"mcq-quiz/internal/monitoring"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1500
)

const promptTemplate = `Create a multiple-choice quiz on the topic '%s'.
Provide %d questions with 4 options each and indicate the correct answer.
Format every question exactly like this, with no numbering, markdown or extra commentary:
Question
Option A
Option B
Option C
Option D
Correct Answer: Option
The text after "Correct Answer: " must repeat one of the four options exactly.
Separate questions with one blank line.`

// LLMQuestionSource implements domain.QuestionSource with a single call to a
// langchaingo model per quiz.
type LLMQuestionSource struct {
	model       llms.Model
	temperature float64
	maxTokens   int
	timeout     time.Duration
	limiter     *rate.Limiter
}

// NewLLMQuestionSource wraps model with the sampling settings from cfg.
// A negative temperature falls back to the default.
// A positive cfg.RequestsPerMinute paces outbound calls.
func NewLLMQuestionSource(model llms.Model, cfg config.LLMConfig) (*LLMQuestionSource, error) {
	if model == nil {
		return nil, fmt.Errorf("llm model cannot be nil")
	}

	src := &LLMQuestionSource{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
	// Zero is a valid, deterministic setting.
	if src.temperature < 0 {
		src.temperature = defaultTemperature
	}
	if src.maxTokens <= 0 {
		src.maxTokens = defaultMaxTokens
	}
	if cfg.RequestsPerMinute > 0 {
		src.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return src, nil
}

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(topic string, count int) string {
	return fmt.Sprintf(promptTemplate, topic, count)
}

// Generate asks the model for count questions on topic. Malformed blocks in
// the reply are dropped, so fewer than count records (or none) may come back.
func (g *LLMQuestionSource) Generate(ctx context.Context, topic string, count int) ([]domain.QuestionRecord, error) {
	l := logger.Get()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, domain.NewLLMServiceError(fmt.Errorf("waiting for llm rate limiter: %w", err))
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	l.Info("Requesting quiz from LLM", zap.String("topic", topic), zap.Int("count", count))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.model, BuildPrompt(topic, count),
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err), zap.Duration("timeout", g.timeout))
			return nil, domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}

	l.Debug("Raw LLM quiz response", zap.String("raw_response", raw))

	result := ParseQuestions(raw)
	monitoring.DroppedBlocks.Add(float64(result.Dropped))
	monitoring.UnlistedAnswers.Add(float64(result.Unlisted))

	if result.Dropped > 0 {
		l.Warn("Dropped malformed question blocks from LLM response",
			zap.String("topic", topic),
			zap.Int("dropped", result.Dropped))
	}
	if result.Unlisted > 0 {
		l.Warn("LLM marked a correct answer that is not one of the options",
			zap.String("topic", topic),
			zap.Int("unlisted", result.Unlisted))
	}
	l.Info("Parsed LLM quiz response",
		zap.Int("requested", count),
		zap.Int("parsed", len(result.Questions)))

	return result.Questions, nil
}

var _ domain.QuestionSource = (*LLMQuestionSource)(nil)
