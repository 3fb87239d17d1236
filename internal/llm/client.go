// Package llm performs the outbound completion request. Two backend
// dialects are supported: Ollama's native generate endpoint and the
// OpenAI-compatible chat endpoint. Both return a cleaned suggestion string
// with any markdown fence wrapping removed.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/haydenkz/nvim-wingman/internal/prompt"
	"go.uber.org/zap"
)

// Kind selects a backend dialect.
type Kind string

const (
	KindOllama Kind = "ollama"
	KindOpenAI Kind = "openai"
)

// Client is the completion backend contract. Complete issues one request
// and returns the cleaned suggestion text. An empty string with a nil error
// means the model had nothing to suggest. No retries are performed.
type Client interface {
	Complete(ctx context.Context, in prompt.Input) (string, error)
	Kind() Kind
}

// Options configures a backend client.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// New selects the client implementation for a backend kind. Unknown kinds
// fall back to the Ollama dialect, matching the config default.
func New(kind Kind, options Options, logger *zap.Logger) Client {
	switch kind {
	case KindOpenAI:
		return NewChatClient(options, logger)
	default:
		return NewOllamaClient(options, logger)
	}
}

// StatusError reports a non-success HTTP response from the backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// ParseError reports a malformed response body.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse backend response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StripFence removes a single leading and trailing markdown code fence from
// raw model output. The leading fence may carry a language tag. Interior
// newlines are preserved; multi-line suggestions are expected.
func StripFence(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		rest := cleaned[3:]
		// Drop the language tag, if any, through the end of the fence line.
		if idx := strings.Index(rest, "\n"); idx != -1 {
			cleaned = rest[idx+1:]
		} else {
			cleaned = strings.TrimLeft(rest, "`")
		}
	}

	cleaned = strings.TrimSuffix(strings.TrimRight(cleaned, " \t\n"), "```")
	return strings.TrimRight(cleaned, "\n")
}
