package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haydenkz/nvim-wingman/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default().Model, cfg.Model)
	assert.Equal(t, 2000, cfg.DebounceMs)
	assert.True(t, cfg.AutoTrigger)
	assert.Equal(t, llm.KindOllama, cfg.BackendKind())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: openai
model: gpt-4o-mini
api_key: sk-test
trigger_threshold: 3
debounce_ms: 500
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, llm.KindOpenAI, cfg.BackendKind())
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 3, cfg.TriggerThreshold)
	assert.Equal(t, 500, cfg.DebounceMs)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().OllamaURL, cfg.OllamaURL)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "sk-from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.APIKey)
}

func TestClientOptionsSelectsBaseURL(t *testing.T) {
	cfg := Default()
	cfg.Backend = string(llm.KindOpenAI)
	assert.Equal(t, cfg.OpenAIURL, cfg.ClientOptions().BaseURL)

	cfg.Backend = string(llm.KindOllama)
	assert.Equal(t, cfg.OllamaURL, cfg.ClientOptions().BaseURL)
}

func TestWarningsOnMissingCredential(t *testing.T) {
	cfg := Default()
	cfg.Backend = string(llm.KindOpenAI)
	cfg.APIKey = ""

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "API key")

	cfg.APIKey = "sk-test"
	assert.Empty(t, cfg.Warnings())

	// Ollama needs no credential.
	ollama := Default()
	assert.Empty(t, ollama.Warnings())
}
