package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"stockai-news/internal/config"
	"stockai-news/internal/domain/entity"
	"stockai-news/internal/infra/assistant"
	"stockai-news/internal/infra/feed"
	"stockai-news/internal/observability/logging"
	"stockai-news/internal/observability/tracing"
	newsUC "stockai-news/internal/usecase/news"

	hhttp "stockai-news/internal/handler/http"
	hchat "stockai-news/internal/handler/http/chat"
	hnews "stockai-news/internal/handler/http/news"
	"stockai-news/internal/handler/http/requestid"
	"stockai-news/internal/handler/http/respond"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	fetcher := feed.NewRSSFetcher(&http.Client{}, cfg.FetchTimeout)
	svc := newsUC.NewService(cfg.Sources, fetcher, newsUC.ServiceConfig{
		CacheTTL:         cfg.CacheTTL,
		AggregateTimeout: cfg.AggregateTimeout,
		Logger:           logger,
	})

	active := svc.ActiveSources()
	if len(active) == 0 {
		logger.Error("refusing to start", slog.Any("error", entity.ErrNoActiveSources))
		os.Exit(1)
	}

	completer, providers := buildAssistant(logger, cfg.Chat)

	handler := setupRoutes(logger, cfg, svc, fetcher, completer, providers, len(active))

	scheduler := startScheduler(logger, cfg, svc)

	runServer(logger, cfg, handler, scheduler)
}

// buildAssistant wires the chat provider chain from the configured provider
// order, skipping any provider whose API key is absent. A nil completer means
// the chat endpoint will reject requests.
func buildAssistant(logger *slog.Logger, cfg config.ChatConfig) (assistant.Completer, []string) {
	var completers []assistant.Completer
	for _, name := range cfg.Providers {
		switch name {
		case "claude":
			if cfg.AnthropicAPIKey == "" {
				logger.Warn("chat provider skipped, API key not set", slog.String("provider", name))
				continue
			}
			completers = append(completers, assistant.NewClaude(cfg.AnthropicAPIKey, cfg.Timeout))
		case "openai":
			if cfg.OpenAIAPIKey == "" {
				logger.Warn("chat provider skipped, API key not set", slog.String("provider", name))
				continue
			}
			completers = append(completers, assistant.NewOpenAI(cfg.OpenAIAPIKey, cfg.Timeout))
		default:
			logger.Warn("unknown chat provider ignored", slog.String("provider", name))
		}
	}

	chain, err := assistant.NewChain(logger, completers...)
	if err != nil {
		logger.Warn("chat assistant disabled, no providers configured")
		return nil, nil
	}
	return chain, chain.Providers()
}

// setupRoutes builds the mux and wraps it in the shared middleware chain.
func setupRoutes(
	logger *slog.Logger,
	cfg *config.Config,
	svc *newsUC.Service,
	fetcher *feed.RSSFetcher,
	completer assistant.Completer,
	providers []string,
	activeSources int,
) http.Handler {
	mux := http.NewServeMux()

	hnews.Register(mux, svc, cfg.DefaultLimit)

	if completer != nil {
		hchat.Register(mux, hchat.NewHandler(completer, cfg.Chat.RatePerSecond, cfg.Chat.Burst, logger))
	} else {
		mux.Handle("POST /chat", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respond.JSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Missing API key",
			})
		}))
	}

	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		Version:       getVersion(),
		SourceCount:   activeSources,
		Fetcher:       fetcher,
		ChatProviders: providers,
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(1<<20),
		hhttp.Timeout(cfg.RequestTimeout),
	)
}

// startScheduler warms the snapshot cache on the configured cron schedule so
// the first request after TTL expiry does not pay the full fan-out. A failed
// warm leaves the previous snapshot serving.
func startScheduler(logger *slog.Logger, cfg *config.Config, svc *newsUC.Service) *cron.Cron {
	if cfg.RefreshSchedule == "" || cfg.CacheTTL <= 0 {
		logger.Info("cache warming disabled")
		return nil
	}

	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.AggregateTimeout)
		defer cancel()
		if err := svc.WarmCache(ctx); err != nil {
			logger.Error("cache warm failed", slog.String("error", respond.SanitizeError(err)))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshSchedule, warm); err != nil {
		logger.Error("invalid refresh schedule", slog.String("schedule", cfg.RefreshSchedule), slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Fill the cache before the first tick.
	go warm()

	logger.Info("cache warming started", slog.String("schedule", cfg.RefreshSchedule))
	return c
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler, scheduler *cron.Cron) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.ListenAddr),
			slog.String("version", getVersion()),
			slog.Int("sources", len(cfg.Sources)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
