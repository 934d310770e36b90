package quizgen

import (
	"context"
	"testing"
	"time"

	"mcq-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	ctx := context.Background()

	t.Run("ollama", func(t *testing.T) {
		model, err := NewModel(ctx, config.LLMConfig{
			Provider:  config.ProviderOllama,
			ServerURL: "http://localhost:11434",
			Timeout:   time.Second,
		})
		require.NoError(t, err)
		assert.NotNil(t, model)
	})

	t.Run("ollama without url", func(t *testing.T) {
		_, err := NewModel(ctx, config.LLMConfig{Provider: config.ProviderOllama})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server URL cannot be empty")
	})

	t.Run("openai", func(t *testing.T) {
		model, err := NewModel(ctx, config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test"})
		require.NoError(t, err)
		assert.NotNil(t, model)
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := NewModel(ctx, config.LLMConfig{Provider: config.ProviderOpenAI})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key cannot be empty")
	})

	t.Run("googleai without key", func(t *testing.T) {
		_, err := NewModel(ctx, config.LLMConfig{Provider: config.ProviderGoogleAI})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key cannot be empty")
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewModel(ctx, config.LLMConfig{Provider: "bard"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported llm provider")
	})
}

func TestModelName(t *testing.T) {
	assert.Equal(t, DefaultOllamaModel, ModelName(config.LLMConfig{Provider: config.ProviderOllama}))
	assert.Equal(t, DefaultOpenAIModel, ModelName(config.LLMConfig{Provider: config.ProviderOpenAI}))
	assert.Equal(t, DefaultGoogleAIModel, ModelName(config.LLMConfig{Provider: config.ProviderGoogleAI}))
	assert.Equal(t, "llama3", ModelName(config.LLMConfig{Provider: config.ProviderOllama, Model: "llama3"}))
}
