// Package config loads the engine's configuration from a YAML file,
// applying defaults first and environment fallbacks for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/haydenkz/nvim-wingman/internal/llm"
	"gopkg.in/yaml.v3"
)

const appName = "wingman"

// APIKeyEnvVar is consulted when the config file carries no api_key.
const APIKeyEnvVar = "WINGMAN_API_KEY"

type Config struct {
	Backend   string `yaml:"backend"` // "ollama" or "openai"
	OllamaURL string `yaml:"ollama_url"`
	OpenAIURL string `yaml:"openai_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`

	ShowSuggestions  bool    `yaml:"show_suggestions"`
	AutoTrigger      bool    `yaml:"auto_trigger"`
	TriggerThreshold int     `yaml:"trigger_threshold"`
	Temperature      float32 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	AcceptKey        string  `yaml:"accept_key"`
	DebounceMs       int     `yaml:"debounce_ms"`
	ContextLines     int     `yaml:"context_window_lines"`
}

func Default() Config {
	return Config{
		Backend:          string(llm.KindOllama),
		OllamaURL:        "http://localhost:11434",
		OpenAIURL:        "https://api.openai.com/v1",
		Model:            "qwen2.5-coder",
		ShowSuggestions:  true,
		AutoTrigger:      true,
		TriggerThreshold: 10,
		Temperature:      0.2,
		MaxTokens:        256,
		AcceptKey:        "tab",
		DebounceMs:       2000,
		ContextLines:     20,
	}
}

// DefaultPath returns the conventional config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, appName, "config.yaml")
}

// Load reads the config file at path, decoding it over the defaults. A
// missing file is not an error; the defaults are returned. An empty path
// uses DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return applyFallbacks(cfg), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return applyFallbacks(cfg), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return applyFallbacks(cfg), nil
}

func applyFallbacks(cfg Config) Config {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(APIKeyEnvVar)
	}
	return cfg
}

// BackendKind returns the configured backend as a dialect tag.
func (c Config) BackendKind() llm.Kind {
	if c.Backend == string(llm.KindOpenAI) {
		return llm.KindOpenAI
	}
	return llm.KindOllama
}

// ClientOptions assembles the backend client options for the configured
// dialect.
func (c Config) ClientOptions() llm.Options {
	baseURL := c.OllamaURL
	if c.BackendKind() == llm.KindOpenAI {
		baseURL = c.OpenAIURL
	}

	return llm.Options{
		BaseURL:     baseURL,
		APIKey:      c.APIKey,
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// Warnings reports setup problems that should be surfaced once at startup
// but do not block it. A missing credential only warns; the request will
// fail later on its own.
func (c Config) Warnings() []string {
	var warnings []string
	if c.BackendKind() == llm.KindOpenAI && c.APIKey == "" {
		warnings = append(warnings, fmt.Sprintf(
			"backend %q requires an API key; set api_key in the config file or %s",
			c.Backend, APIKeyEnvVar,
		))
	}
	return warnings
}
