// Package metrics provides centralized Prometheus metrics for the
// application.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track request patterns and performance.
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Feed pipeline metrics track per-source fetch behavior and aggregation cost.
var (
	// FeedFetchTotal counts feed fetches by source and outcome.
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_total",
			Help: "Total number of feed fetch attempts by source and result",
		},
		[]string{"source", "result"},
	)

	// FeedFetchDuration measures per-source fetch duration in seconds.
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Feed fetch duration in seconds by source",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"source"},
	)

	// FeedArticlesTotal counts normalized articles produced per source.
	FeedArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_articles_total",
			Help: "Total number of articles normalized from each source",
		},
		[]string{"source"},
	)

	// AggregationDuration measures the full fan-out duration in seconds.
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_aggregation_duration_seconds",
			Help:    "Duration of a full multi-source aggregation in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)
)

// Cache metrics track snapshot reuse.
var (
	// CacheEventsTotal counts cache hits, misses, and invalidations.
	CacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_events_total",
			Help: "Total number of news cache events by type",
		},
		[]string{"event"},
	)
)

// Chat metrics track the assistant endpoint.
var (
	// ChatRequestsTotal counts completion attempts by provider and outcome.
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat completion attempts by provider and result",
		},
		[]string{"provider", "result"},
	)

	// ChatDuration measures completion latency in seconds by provider.
	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_completion_duration_seconds",
			Help:    "Chat completion duration in seconds by provider",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// RecordFeedFetch records one per-source fetch attempt.
func RecordFeedFetch(source string, duration time.Duration, articles int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	FeedFetchTotal.WithLabelValues(source, result).Inc()
	FeedFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err == nil && articles > 0 {
		FeedArticlesTotal.WithLabelValues(source).Add(float64(articles))
	}
}

// RecordAggregation records the duration of a full fan-out.
func RecordAggregation(duration time.Duration) {
	AggregationDuration.Observe(duration.Seconds())
}

// Cache event names used with RecordCacheEvent.
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheInvalidate = "invalidate"
	CacheWarm       = "warm"
)

// RecordCacheEvent records one cache event by name.
func RecordCacheEvent(event string) {
	CacheEventsTotal.WithLabelValues(event).Inc()
}

// RecordChatCompletion records one provider completion attempt.
func RecordChatCompletion(provider string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ChatRequestsTotal.WithLabelValues(provider, result).Inc()
	ChatDuration.WithLabelValues(provider).Observe(duration.Seconds())
}
