package logger

import (
	"os"
	"path/filepath"
	"testing"

	"mcq-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_BeforeInitializeIsUsable(t *testing.T) {
	assert.NotNil(t, Get())
	assert.NotPanics(t, func() { Get().Info("no-op before init") })
}

func TestInitialize_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")

	err := Initialize(config.LoggerConfig{
		Env:   "production",
		Level: "debug",
		File:  config.LogFileConfig{Path: path},
	})
	require.NoError(t, err)

	Get().Debug("raw quiz response")
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "raw quiz response")
	assert.Contains(t, string(data), `"level":"debug"`)
}
