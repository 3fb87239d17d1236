package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/haydenkz/nvim-wingman/internal/prompt"
	"go.uber.org/zap"
)

// ollamaGenerateRequest is the non-streaming generate request body.
type ollamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	Stream      bool    `json:"stream"`
}

// ollamaGenerateResponse is the subset of the generate response we read.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// OllamaClient speaks the single-prompt generate dialect. No auth header is
// sent; Ollama instances are expected to be local or otherwise unsecured.
type OllamaClient struct {
	httpClient *http.Client
	apiURL     string
	options    Options
	logger     *zap.Logger
}

func NewOllamaClient(options Options, logger *zap.Logger) *OllamaClient {
	apiURL := strings.TrimSuffix(options.BaseURL, "/") + "/api/generate"
	return &OllamaClient{
		httpClient: &http.Client{},
		apiURL:     apiURL,
		options:    options,
		logger:     logger,
	}
}

func (c *OllamaClient) Kind() Kind {
	return KindOllama
}

func (c *OllamaClient) Complete(ctx context.Context, in prompt.Input) (string, error) {
	body := ollamaGenerateRequest{
		Model:       c.options.Model,
		Prompt:      prompt.Text(in),
		Temperature: c.options.Temperature,
		NumPredict:  c.options.MaxTokens,
		Stream:      false,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("dispatching ollama completion", zap.String("model", c.options.Model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}

	var parsed ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ParseError{Err: err}
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("backend error: %s", parsed.Error)
	}

	return StripFence(parsed.Response), nil
}
