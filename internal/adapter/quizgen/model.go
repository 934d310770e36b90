package quizgen

import (
	"context"
	"fmt"
	"net/http"

	"mcq-quiz/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Models used when llm.model is not configured.
const (
	DefaultOllamaModel   = "qwen3:0.6b"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGoogleAIModel = "gemini-1.5-flash"
)

// NewModel builds the langchaingo client selected by cfg.Provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		httpClient := &http.Client{Timeout: cfg.Timeout}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(modelOrDefault(cfg.Model, DefaultOllamaModel)),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama LLM client: %w", err)
		}
		return llm, nil

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		llm, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(modelOrDefault(cfg.Model, DefaultOpenAIModel)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI LLM client: %w", err)
		}
		return llm, nil

	case config.ProviderGoogleAI:
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("google generative AI API key cannot be empty")
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GoogleAPIKey),
			googleai.WithDefaultModel(modelOrDefault(cfg.Model, DefaultGoogleAIModel)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google AI LLM client: %w", err)
		}
		return llm, nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}

// ModelName reports the model NewModel selects for cfg.
func ModelName(cfg config.LLMConfig) string {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return modelOrDefault(cfg.Model, DefaultOpenAIModel)
	case config.ProviderGoogleAI:
		return modelOrDefault(cfg.Model, DefaultGoogleAIModel)
	default:
		return modelOrDefault(cfg.Model, DefaultOllamaModel)
	}
}

func modelOrDefault(model, def string) string {
	if model == "" {
		return def
	}
	return model
}
