// Package config loads application configuration from the environment and an
// optional YAML sources file. The source registry is resolved here once at
// startup and handed to the aggregator as an explicit value; nothing in the
// runtime mutates it afterwards.
package config

import (
	"fmt"
	"strings"
	"time"

	"stockai-news/internal/domain/entity"
	pkgconfig "stockai-news/pkg/config"
)

// Config holds all runtime settings for the api process.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string

	// FetchTimeout bounds a single source fetch so one slow feed cannot
	// stall the aggregation.
	FetchTimeout time.Duration

	// AggregateTimeout bounds the whole fan-out. Worst-case latency is the
	// slowest source's timeout, not the sum, but a global ceiling keeps a
	// misbehaving resolver from holding a request open.
	AggregateTimeout time.Duration

	// RequestTimeout is the per-request budget enforced by middleware.
	RequestTimeout time.Duration

	// CacheTTL is how long a successful aggregation result is served before
	// a re-fetch. Zero disables caching and restores fetch-per-query.
	CacheTTL time.Duration

	// RefreshSchedule is the cron expression for background cache warming.
	// Empty disables the scheduler.
	RefreshSchedule string

	// DefaultLimit is the article count returned when the client does not
	// pass an explicit limit.
	DefaultLimit int

	// Sources is the resolved feed registry.
	Sources []entity.Source

	// Chat configures the AI assistant endpoint.
	Chat ChatConfig
}

// ChatConfig holds settings for the chat assistant providers.
type ChatConfig struct {
	// Providers lists provider names in fallback order. Supported values:
	// "claude", "openai". A provider without an API key is skipped at wiring
	// time.
	Providers []string

	AnthropicAPIKey string
	OpenAIAPIKey    string

	// Timeout bounds a single completion call.
	Timeout time.Duration

	// RatePerSecond and Burst configure the token-bucket limiter in front of
	// the endpoint.
	RatePerSecond float64
	Burst         int
}

// Load resolves the full configuration. It returns an error only for
// problems worth refusing to start over: an unreadable sources file or an
// invalid source definition.
func Load() (*Config, error) {
	sources := entity.DefaultSources()
	if path := pkgconfig.GetEnvString("NEWS_SOURCES_FILE", ""); path != "" {
		loaded, err := LoadSourcesFile(path)
		if err != nil {
			return nil, fmt.Errorf("load sources file: %w", err)
		}
		sources = loaded
	}

	cfg := &Config{
		ListenAddr:       pkgconfig.GetEnvString("LISTEN_ADDR", ":8080"),
		FetchTimeout:     pkgconfig.GetEnvDuration("FEED_FETCH_TIMEOUT", 10*time.Second),
		AggregateTimeout: pkgconfig.GetEnvDuration("AGGREGATE_TIMEOUT", 30*time.Second),
		RequestTimeout:   pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		CacheTTL:         pkgconfig.GetEnvDuration("NEWS_CACHE_TTL", 5*time.Minute),
		RefreshSchedule:  pkgconfig.GetEnvString("NEWS_REFRESH_SCHEDULE", "@every 5m"),
		DefaultLimit:     pkgconfig.GetEnvInt("NEWS_DEFAULT_LIMIT", 50),
		Sources:          sources,
		Chat: ChatConfig{
			Providers:       splitProviders(pkgconfig.GetEnvString("CHAT_PROVIDERS", "claude,openai")),
			AnthropicAPIKey: pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
			OpenAIAPIKey:    pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
			Timeout:         pkgconfig.GetEnvDuration("CHAT_TIMEOUT", 60*time.Second),
			RatePerSecond:   pkgconfig.GetEnvFloat("CHAT_RATE_PER_SECOND", 2.0),
			Burst:           pkgconfig.GetEnvInt("CHAT_RATE_BURST", 5),
		},
	}

	for i := range cfg.Sources {
		if err := cfg.Sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid source registry: %w", err)
		}
	}

	return cfg, nil
}

func splitProviders(list string) []string {
	parts := strings.Split(list, ",")
	providers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			providers = append(providers, strings.ToLower(p))
		}
	}
	return providers
}
