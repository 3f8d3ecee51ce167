package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockai-news/internal/handler/http/requestid"
)

func TestNewLogger_JSONByDefault(t *testing.T) {
	t.Setenv("LOG_PRETTY", "")

	logger := NewLogger()
	assert.IsType(t, &slog.JSONHandler{}, logger.Handler())
}

func TestNewLogger_PrettySwitchesToText(t *testing.T) {
	t.Setenv("LOG_PRETTY", "true")

	logger := NewLogger()
	assert.IsType(t, &slog.TextHandler{}, logger.Handler())
}

func TestWithRequestID(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	ctx := requestid.WithRequestID(t.Context(), "req-123")
	assert.NotSame(t, logger, WithRequestID(ctx, logger))
	assert.Same(t, logger, WithRequestID(t.Context(), logger), "no request ID leaves the logger unchanged")
}
