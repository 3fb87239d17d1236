package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/haydenkz/nvim-wingman/internal/prompt"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ChatClient speaks the OpenAI-compatible chat dialect with bearer auth.
type ChatClient struct {
	client  *openai.Client
	options Options
	logger  *zap.Logger
}

func NewChatClient(options Options, logger *zap.Logger) *ChatClient {
	clientConfig := openai.DefaultConfig(options.APIKey)
	if options.BaseURL != "" {
		clientConfig.BaseURL = options.BaseURL
	}

	return &ChatClient{
		client:  openai.NewClientWithConfig(clientConfig),
		options: options,
		logger:  logger,
	}
}

func (c *ChatClient) Kind() Kind {
	return KindOpenAI
}

func (c *ChatClient) Complete(ctx context.Context, in prompt.Input) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.options.Model,
		Messages:    prompt.Messages(in),
		Temperature: c.options.Temperature,
		MaxTokens:   c.options.MaxTokens,
		Stream:      false,
	}

	c.logger.Debug("dispatching chat completion", zap.String("model", c.options.Model))

	chatCompletion, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return "", &StatusError{Code: apiErr.HTTPStatusCode}
		}
		return "", fmt.Errorf("request failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return "", nil
	}

	return StripFence(chatCompletion.Choices[0].Message.Content), nil
}
