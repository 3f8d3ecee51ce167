// Package news implements the aggregation pipeline: it fans fetches out
// across all enabled sources, normalizes raw feed items into Articles, and
// exposes the filtering, search, and summary operations consumed by the HTTP
// layer.
package news

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"stockai-news/internal/domain/entity"
	"stockai-news/internal/infra/feed"
	"stockai-news/internal/observability/metrics"
	"stockai-news/internal/observability/tracing"
)

// ServiceConfig holds the tunables for a Service.
type ServiceConfig struct {
	// CacheTTL is how long a successful aggregation is served before a
	// re-fetch. Zero disables the cache.
	CacheTTL time.Duration

	// AggregateTimeout bounds the whole fan-out so worst-case latency is
	// one slow source's timeout, never the sum of all of them.
	AggregateTimeout time.Duration

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger

	// Now is the clock; defaults to time.Now. Injected for tests.
	Now func() time.Time
}

// Service is the aggregator. It holds the immutable source registry and a
// fetcher; every public operation is a fresh computation over the current
// snapshot, with the TTL cache as the only state carried between calls.
type Service struct {
	sources          []entity.Source
	fetcher          feed.Fetcher
	cache            *snapshotCache
	aggregateTimeout time.Duration
	logger           *slog.Logger
	now              func() time.Time
}

// NewService creates the aggregator for the given source registry. The
// registry is an explicit value, not ambient state, so tests can inject fake
// sources and fetchers freely.
func NewService(sources []entity.Source, fetcher feed.Fetcher, cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.AggregateTimeout <= 0 {
		cfg.AggregateTimeout = 30 * time.Second
	}

	return &Service{
		sources:          sources,
		fetcher:          fetcher,
		cache:            newSnapshotCache(cfg.CacheTTL),
		aggregateTimeout: cfg.AggregateTimeout,
		logger:           cfg.Logger,
		now:              cfg.Now,
	}
}

// ActiveSources returns the enabled subset of the registry.
func (s *Service) ActiveSources() []entity.Source {
	active := make([]entity.Source, 0, len(s.sources))
	for _, src := range s.sources {
		if src.Active {
			active = append(active, src)
		}
	}
	return active
}

// FetchAll returns the full article set, sorted most recent first. A fresh
// cached snapshot is served as-is; otherwise every active source is fetched
// concurrently and the result cached. The returned slice is an immutable
// snapshot: callers filter into new slices and never mutate it.
func (s *Service) FetchAll(ctx context.Context) ([]entity.Article, error) {
	if articles, ok := s.cache.get(s.now()); ok {
		metrics.RecordCacheEvent(metrics.CacheHit)
		return articles, nil
	}
	metrics.RecordCacheEvent(metrics.CacheMiss)

	articles, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.set(articles, s.now())
	return articles, nil
}

// ErrAllSourcesFailed reports a batch in which not a single source fetch
// succeeded. Partial failures degrade silently; total failure surfaces as an
// error so the HTTP layer answers 500 instead of an empty success.
var ErrAllSourcesFailed = errors.New("news aggregation failed: all sources unavailable")

// aggregate performs the actual fan-out: one goroutine per active source,
// joined once all have settled. A per-source failure contributes an empty
// list and never aborts the batch; aggregate errors only when the gather was
// cancelled before producing anything, or when every source failed.
func (s *Service) aggregate(ctx context.Context) ([]entity.Article, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "news.aggregate")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.aggregateTimeout)
	defer cancel()

	active := s.ActiveSources()
	start := s.now()

	// Indexed result slots: no shared mutable state between fetches, each
	// goroutine writes only its own slot.
	results := make([][]entity.Article, len(active))
	errs := make([]error, len(active))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range active {
		g.Go(func() error {
			fetchedAt := s.now()
			items, err := s.fetcher.Fetch(gctx, src)
			if err != nil {
				s.logger.Warn("failed to fetch feed, skipping source",
					slog.String("source", src.Name),
					slog.String("feed_url", src.FeedURL),
					slog.Any("error", err))
				errs[i] = err
				return nil
			}

			articles := make([]entity.Article, 0, len(items))
			for idx, item := range items {
				articles = append(articles, normalizeItem(src, item, idx, fetchedAt))
			}
			results[i] = articles
			return nil
		})
	}

	// Workers never return errors (failures become empty contributions),
	// so Wait here only joins.
	_ = g.Wait()

	merged := make([]entity.Article, 0, 64)
	for _, batch := range results {
		merged = append(merged, batch...)
	}

	// A cancelled gather that produced nothing is an aggregate-level
	// failure; a cancelled gather with partial results still serves them.
	if err := ctx.Err(); err != nil && len(merged) == 0 {
		return nil, err
	}

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if len(active) > 0 && failed == len(active) {
		return nil, ErrAllSourcesFailed
	}

	// Most recent first. The sort is stable so articles with equal
	// timestamps keep their merge order (source configuration order).
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	duration := s.now().Sub(start)
	metrics.RecordAggregation(duration)
	span.SetAttributes(
		attribute.Int("news.sources", len(active)),
		attribute.Int("news.articles", len(merged)),
	)
	s.logger.Info("aggregation completed",
		slog.Int("sources", len(active)),
		slog.Int("articles", len(merged)),
		slog.Duration("duration", duration))

	return merged, nil
}

// FetchByTicker returns articles tagged with the given symbol,
// case-insensitively.
func (s *Service) FetchByTicker(ctx context.Context, ticker string) ([]entity.Article, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Article, 0, len(all))
	for i := range all {
		if all[i].HasTicker(ticker) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// FetchByCategory returns articles whose category matches exactly.
func (s *Service) FetchByCategory(ctx context.Context, category entity.Category) ([]entity.Article, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Article, 0, len(all))
	for i := range all {
		if all[i].Category == category {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// Search returns articles whose title, description, or any ticker contains
// the query substring, case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]entity.Article, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(query)
	matched := make([]entity.Article, 0, len(all))
	for i := range all {
		if articleMatches(&all[i], term) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// Summary computes the aggregate counts over the current article set.
func (s *Service) Summary(ctx context.Context) (entity.Summary, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return entity.Summary{}, err
	}
	return entity.NewSummary(all), nil
}

// Refresh invalidates the cached snapshot so the next query re-fetches every
// source from scratch.
func (s *Service) Refresh(ctx context.Context) {
	s.cache.invalidate()
	metrics.RecordCacheEvent(metrics.CacheInvalidate)
	s.logger.Info("news cache invalidated")
}

// WarmCache aggregates and stores a fresh snapshot. Used by the background
// scheduler; on failure the previous snapshot keeps serving.
func (s *Service) WarmCache(ctx context.Context) error {
	articles, err := s.aggregate(ctx)
	if err != nil {
		return err
	}
	s.cache.set(articles, s.now())
	metrics.RecordCacheEvent(metrics.CacheWarm)
	return nil
}

func articleMatches(a *entity.Article, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(a.Title), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Description), lowerTerm) {
		return true
	}
	for _, t := range a.Tickers {
		if strings.Contains(strings.ToLower(t), lowerTerm) {
			return true
		}
	}
	return false
}
