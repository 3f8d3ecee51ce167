// Package feed provides the RSS/Atom fetcher used by the aggregator. It is
// built on the gofeed library and isolates failures per source: a network or
// parse error surfaces as an error for that one source only, which the
// aggregator converts into an empty contribution.
package feed

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"stockai-news/internal/domain/entity"
	"stockai-news/internal/observability/metrics"
	"stockai-news/internal/resilience/circuitbreaker"
)

// Item is one raw entry from a syndication feed, before normalization.
type Item struct {
	Title       string
	Link        string
	Description string
	Content     string
	Published   *time.Time
	Author      string
	ImageURL    string
}

// Fetcher retrieves the raw items of one source's feed.
type Fetcher interface {
	Fetch(ctx context.Context, src entity.Source) ([]Item, error)
}

// RSSFetcher implements Fetcher using gofeed. Each source gets its own
// circuit breaker so a feed that keeps timing out is skipped cheaply for a
// while instead of eating its full timeout on every batch.
type RSSFetcher struct {
	client  *http.Client
	timeout time.Duration

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates an RSSFetcher. timeout bounds a single fetch,
// including body download and parsing.
func NewRSSFetcher(client *http.Client, timeout time.Duration) *RSSFetcher {
	return &RSSFetcher{
		client:   client,
		timeout:  timeout,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// Fetch retrieves and parses the feed for src. The per-source timeout and
// circuit breaker apply; the caller decides what a failure means (the
// aggregator treats it as an empty contribution).
func (f *RSSFetcher) Fetch(ctx context.Context, src entity.Source) ([]Item, error) {
	cb := f.breaker(src.Name)

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, src)
	})
	if err != nil {
		metrics.RecordFeedFetch(src.Name, time.Since(start), 0, err)
		return nil, err
	}

	items := result.([]Item)
	metrics.RecordFeedFetch(src.Name, time.Since(start), len(items), nil)
	return items, nil
}

// BreakerStates reports the current circuit state per source, for the health
// endpoint.
func (f *RSSFetcher) BreakerStates() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	states := make(map[string]string, len(f.breakers))
	for name, cb := range f.breakers {
		states[name] = cb.State().String()
	}
	return states
}

func (f *RSSFetcher) breaker(sourceName string) *circuitbreaker.CircuitBreaker {
	f.mu.Lock()
	defer f.mu.Unlock()

	cb, ok := f.breakers[sourceName]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.FeedFetchConfig(sourceName))
		f.breakers[sourceName] = cb
	}
	return cb
}

func (f *RSSFetcher) doFetch(ctx context.Context, src entity.Source) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = "StockAI-NewsBot"
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(src.FeedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, Item{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Content:     it.Content,
			Published:   it.PublishedParsed,
			Author:      authorOf(it),
			ImageURL:    imageOf(it),
		})
	}

	return items, nil
}

// authorOf resolves the item author from the declared author field first,
// then the dc:creator extension.
func authorOf(it *gofeed.Item) string {
	if it.Author != nil && it.Author.Name != "" {
		return it.Author.Name
	}
	if len(it.Authors) > 0 && it.Authors[0] != nil && it.Authors[0].Name != "" {
		return it.Authors[0].Name
	}
	if it.DublinCoreExt != nil && len(it.DublinCoreExt.Creator) > 0 {
		return it.DublinCoreExt.Creator[0]
	}
	return ""
}

// imageOf extracts a best-effort image URL from enclosure, media:content, or
// media:thumbnail metadata. Returns "" when nothing usable is present.
func imageOf(it *gofeed.Item) string {
	for _, enc := range it.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}

	if media, ok := it.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	return ""
}
