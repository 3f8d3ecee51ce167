package news

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockai-news/internal/domain/entity"
	"stockai-news/internal/infra/feed"
)

// stubFetcher serves canned items per source name and counts calls.
type stubFetcher struct {
	mu    sync.Mutex
	items map[string][]feed.Item
	errs  map[string]error
	calls map[string]int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		items: make(map[string][]feed.Item),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, src entity.Source) ([]feed.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[src.Name]++
	if err := f.errs[src.Name]; err != nil {
		return nil, err
	}
	return f.items[src.Name], nil
}

func (f *stubFetcher) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// fakeClock is a settable clock shared with the service under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func threeSources() []entity.Source {
	return []entity.Source{
		{Name: "Alpha", FeedURL: "https://alpha.example/feed", Category: entity.CategoryMarkets, Active: true},
		{Name: "Beta", FeedURL: "https://beta.example/feed", Category: entity.CategoryBusiness, Active: true},
		{Name: "Gamma", FeedURL: "https://gamma.example/feed", Category: entity.CategoryAnalysis, Active: true},
	}
}

func itemAt(title string, published time.Time) feed.Item {
	return feed.Item{
		Title:       title,
		Link:        "https://example.com/" + title,
		Description: title,
		Published:   &published,
	}
}

func newTestService(t *testing.T, sources []entity.Source, fetcher feed.Fetcher, ttl time.Duration, clock *fakeClock) *Service {
	t.Helper()
	return NewService(sources, fetcher, ServiceConfig{
		CacheTTL:         ttl,
		AggregateTimeout: 5 * time.Second,
		Logger:           slog.New(slog.DiscardHandler),
		Now:              clock.Now,
	})
}

func TestFetchAll_SortedMostRecentFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{
		itemAt("old", base.Add(-48*time.Hour)),
		itemAt("newest", base.Add(-1*time.Hour)),
	}
	fetcher.items["Beta"] = []feed.Item{
		itemAt("middle", base.Add(-12*time.Hour)),
	}

	svc := newTestService(t, threeSources(), fetcher, 0, clock)
	articles, err := svc.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 3)

	for i := 1; i < len(articles); i++ {
		assert.False(t, articles[i-1].PublishedAt.Before(articles[i].PublishedAt),
			"articles must be sorted non-increasing by publishedAt")
	}
	assert.Equal(t, "newest", articles[0].Title)
	assert.Equal(t, "old", articles[2].Title)
}

func TestFetchAll_PartialSourceFailure(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("from alpha", base)}
	fetcher.errs["Beta"] = errors.New("connection refused")
	fetcher.items["Gamma"] = []feed.Item{itemAt("from gamma", base)}

	svc := newTestService(t, threeSources(), fetcher, 0, clock)
	articles, err := svc.FetchAll(context.Background())

	require.NoError(t, err, "one failing source must not fail the batch")
	require.Len(t, articles, 2)
	sources := []string{articles[0].Source, articles[1].Source}
	assert.ElementsMatch(t, []string{"Alpha", "Gamma"}, sources)
}

func TestFetchAll_AllSourcesFail(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.errs["Alpha"] = errors.New("connection refused")
	fetcher.errs["Beta"] = errors.New("dns failure")
	fetcher.errs["Gamma"] = errors.New("504 gateway timeout")

	svc := newTestService(t, threeSources(), fetcher, 0, clock)
	articles, err := svc.FetchAll(context.Background())

	require.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.Empty(t, articles)
}

func TestFetchAll_EmptyFeedsAreNotAFailure(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	// Every source reachable but none carrying items: an empty success, not
	// an aggregation failure.
	fetcher := newStubFetcher()

	svc := newTestService(t, threeSources(), fetcher, 0, clock)
	articles, err := svc.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestFetchAll_InactiveSourcesSkipped(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	sources := threeSources()
	sources[1].Active = false

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("a", base)}
	fetcher.items["Beta"] = []feed.Item{itemAt("b", base)}

	svc := newTestService(t, sources, fetcher, 0, clock)
	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.callCount("Alpha"))
	assert.Equal(t, 0, fetcher.callCount("Beta"), "inactive sources are never fetched")
}

func TestFetchByTicker_CaseInsensitive(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{
		itemAt("AAPL hits new record", base),
		itemAt("quiet bond session", base),
	}

	svc := newTestService(t, threeSources(), fetcher, 0, clock)

	articles, err := svc.FetchByTicker(context.Background(), "aapl")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Contains(t, articles[0].Title, "AAPL")
}

func TestFetchByCategory(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("markets piece", base)}
	fetcher.items["Beta"] = []feed.Item{itemAt("business piece", base)}

	svc := newTestService(t, threeSources(), fetcher, 0, clock)

	articles, err := svc.FetchByCategory(context.Background(), entity.CategoryBusiness)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Beta", articles[0].Source)
}

func TestSearch_MatchesTitleDescriptionAndTickers(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{
		{Title: "AAPL rallies", Link: "u1", Description: "tech leads", Published: &base},
		{Title: "Oil slips", Link: "u2", Description: "crude inventories build", Published: &base},
		{Title: "Chipmakers", Link: "u3", Description: "apple suppliers gain", Published: &base},
	}

	svc := newTestService(t, threeSources(), fetcher, 0, clock)

	articles, err := svc.Search(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, articles, 1, "search must not match articles without the term")

	articles, err = svc.Search(context.Background(), "apple")
	require.NoError(t, err)
	assert.Len(t, articles, 1, "description match, case-insensitive")

	articles, err = svc.Search(context.Background(), "crude")
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestSummary_MatchesFetchAll(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{
		itemAt("stocks surge on strong earnings", base),
		itemAt("markets plunge amid recession fears", base),
	}
	fetcher.items["Beta"] = []feed.Item{itemAt("quarterly report due", base)}

	svc := newTestService(t, threeSources(), fetcher, time.Minute, clock)

	all, err := svc.FetchAll(context.Background())
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(all), summary.TotalArticles)
	assert.Equal(t, 1, summary.Sentiments[entity.SentimentPositive])
	assert.Equal(t, 1, summary.Sentiments[entity.SentimentNegative])
	assert.Equal(t, 1, summary.Sentiments[entity.SentimentNeutral])
	assert.Equal(t, 2, summary.Categories[entity.CategoryMarkets])
	assert.Equal(t, 1, summary.Categories[entity.CategoryBusiness])
}

func TestFetchAll_CacheServesWithinTTL(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("cached", base)}

	svc := newTestService(t, threeSources(), fetcher, time.Minute, clock)

	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)
	_, err = svc.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.callCount("Alpha"), "second call within TTL must hit the cache")

	clock.Advance(2 * time.Minute)
	_, err = svc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount("Alpha"), "expired cache must trigger a re-fetch")
}

func TestRefresh_InvalidatesCache(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("v1", base)}

	svc := newTestService(t, threeSources(), fetcher, time.Hour, clock)

	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)

	svc.Refresh(context.Background())

	_, err = svc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount("Alpha"), "refresh must force the next query to re-fetch")
}

func TestWarmCache(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("warmed", base)}

	svc := newTestService(t, threeSources(), fetcher, time.Hour, clock)

	require.NoError(t, svc.WarmCache(context.Background()))

	_, err := svc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.callCount("Alpha"), "a warmed cache serves queries without re-fetching")
}

func TestFetchAll_ZeroTTLDisablesCache(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	fetcher := newStubFetcher()
	fetcher.items["Alpha"] = []feed.Item{itemAt("x", base)}

	svc := newTestService(t, threeSources(), fetcher, 0, clock)

	_, _ = svc.FetchAll(context.Background())
	_, _ = svc.FetchAll(context.Background())

	assert.Equal(t, 2, fetcher.callCount("Alpha"), "ttl zero restores fetch-per-query")
}
