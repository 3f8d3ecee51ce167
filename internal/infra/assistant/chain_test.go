package assistant

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeCompleter) Name() string { return f.name }

func TestNewChain_NoProviders(t *testing.T) {
	_, err := NewChain(slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestChain_FirstProviderWins(t *testing.T) {
	first := &fakeCompleter{name: "claude", text: "AAPL looks range-bound."}
	second := &fakeCompleter{name: "openai", text: "unused"}

	chain, err := NewChain(slog.New(slog.DiscardHandler), first, second)
	require.NoError(t, err)

	text, err := chain.Complete(context.Background(), "What about AAPL?")
	require.NoError(t, err)
	assert.Equal(t, "AAPL looks range-bound.", text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "fallback provider must not be called on success")
}

func TestChain_FallsBackOnError(t *testing.T) {
	first := &fakeCompleter{name: "claude", err: errors.New("rate limited")}
	second := &fakeCompleter{name: "openai", text: "fallback answer"}

	chain, err := NewChain(slog.New(slog.DiscardHandler), first, second)
	require.NoError(t, err)

	text, err := chain.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fallback answer", text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChain_FallsBackOnEmptyAnswer(t *testing.T) {
	first := &fakeCompleter{name: "claude", text: "   "}
	second := &fakeCompleter{name: "openai", text: "real answer"}

	chain, err := NewChain(slog.New(slog.DiscardHandler), first, second)
	require.NoError(t, err)

	text, err := chain.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "real answer", text)
}

func TestChain_AllProvidersFail(t *testing.T) {
	first := &fakeCompleter{name: "claude", err: errors.New("overloaded")}
	second := &fakeCompleter{name: "openai", err: errors.New("invalid key")}

	chain, err := NewChain(slog.New(slog.DiscardHandler), first, second)
	require.NoError(t, err)

	_, err = chain.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all chat providers failed")
}

func TestChain_ContextCancelled(t *testing.T) {
	first := &fakeCompleter{name: "claude", text: "never reached"}

	chain, err := NewChain(slog.New(slog.DiscardHandler), first)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = chain.Complete(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, first.calls)
}

func TestChain_Providers(t *testing.T) {
	chain, err := NewChain(slog.New(slog.DiscardHandler),
		&fakeCompleter{name: "claude"},
		&fakeCompleter{name: "openai"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"claude", "openai"}, chain.Providers())
}
