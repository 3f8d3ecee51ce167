package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"stockai-news/internal/resilience/circuitbreaker"
	"stockai-news/internal/resilience/retry"
)

// Claude implements Completer using Anthropic's Claude API, with circuit
// breaker and retry logic around each call.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	model          anthropic.Model
	maxTokens      int64
	timeout        time.Duration
}

// NewClaude creates a Claude completer with the given API key.
func NewClaude(apiKey string, timeout time.Duration) *Claude {
	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ChatAPIConfig("claude")),
		retryConfig:    retry.ChatAPIConfig(),
		model:          anthropic.ModelClaudeSonnet4_5_20250929,
		maxTokens:      1024,
		timeout:        timeout,
	}
}

// Name implements Completer.
func (c *Claude) Name() string { return "claude" }

// Complete implements Completer.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude circuit breaker open, request rejected",
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("claude completion failed: %w", retryErr)
	}

	return result, nil
}

func (c *Claude) doComplete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(prompt)),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", errors.New("claude api returned empty response")
	}

	return message.Content[0].Text, nil
}
