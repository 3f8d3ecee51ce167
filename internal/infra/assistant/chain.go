package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stockai-news/internal/observability/metrics"
)

// ErrNoProviders is returned when a chain is built without any completer.
var ErrNoProviders = errors.New("assistant: no completion providers configured")

// Chain tries each completer in order until one returns a non-empty answer.
// Provider order is the configured preference order; a provider whose call
// fails or answers with empty text is skipped and the next one is tried.
type Chain struct {
	completers []Completer
	logger     *slog.Logger
}

// NewChain builds a fallback chain over the given completers.
func NewChain(logger *slog.Logger, completers ...Completer) (*Chain, error) {
	if len(completers) == 0 {
		return nil, ErrNoProviders
	}
	return &Chain{completers: completers, logger: logger}, nil
}

// Providers returns the names of the configured completers in order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.completers))
	for i, completer := range c.completers {
		names[i] = completer.Name()
	}
	return names
}

// Complete implements Completer by delegating to the first provider that
// produces a usable answer.
func (c *Chain) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, completer := range c.completers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		start := time.Now()
		text, err := completer.Complete(ctx, prompt)
		metrics.RecordChatCompletion(completer.Name(), time.Since(start), err)

		if err != nil {
			c.logger.Warn("chat provider failed, trying next",
				slog.String("provider", completer.Name()),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.logger.Warn("chat provider returned empty answer, trying next",
				slog.String("provider", completer.Name()))
			lastErr = fmt.Errorf("provider %s returned empty answer", completer.Name())
			continue
		}

		return text, nil
	}

	return "", fmt.Errorf("all chat providers failed: %w", lastErr)
}

// Name implements Completer.
func (c *Chain) Name() string { return "chain" }
