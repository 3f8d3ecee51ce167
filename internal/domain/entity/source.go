package entity

import (
	"fmt"
	"net/url"
)

// Category is the topical tag a source assigns to every article it produces.
type Category string

const (
	CategoryBusiness Category = "business"
	CategoryMarkets  Category = "markets"
	CategoryFinance  Category = "finance"
	CategoryAnalysis Category = "analysis"
)

// Valid reports whether c is one of the fixed category tags.
func (c Category) Valid() bool {
	switch c {
	case CategoryBusiness, CategoryMarkets, CategoryFinance, CategoryAnalysis:
		return true
	}
	return false
}

// Source represents one configured news feed: a syndication URL plus the
// category its articles inherit and an enabled flag. Sources are configured
// at process start and are immutable during a run; Active may be toggled by
// configuration but never by runtime events.
type Source struct {
	Name     string   `yaml:"name" json:"name"`
	FeedURL  string   `yaml:"feed_url" json:"url"`
	Category Category `yaml:"category" json:"category"`
	Active   bool     `yaml:"active" json:"active"`
}

// Validate checks the Source fields. The feed URL must parse and use an
// http(s) scheme so a misconfigured registry fails at startup, not mid-fetch.
func (s *Source) Validate() error {
	if s.Name == "" {
		return ErrSourceNameRequired
	}
	if s.FeedURL == "" {
		return fmt.Errorf("source %q: %w", s.Name, ErrFeedURLRequired)
	}
	u, err := url.Parse(s.FeedURL)
	if err != nil {
		return fmt.Errorf("source %q: invalid feed_url: %w", s.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source %q: feed_url scheme must be http or https, got %q", s.Name, u.Scheme)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("source %q: invalid category %q (must be business, markets, finance, or analysis)", s.Name, s.Category)
	}
	return nil
}

// DefaultSources returns the built-in registry of finance feeds used when no
// sources file is configured.
func DefaultSources() []Source {
	return []Source{
		{Name: "Reuters Business", FeedURL: "https://feeds.reuters.com/reuters/businessNews", Category: CategoryBusiness, Active: true},
		{Name: "Bloomberg Markets", FeedURL: "https://feeds.bloomberg.com/markets/news.rss", Category: CategoryMarkets, Active: true},
		{Name: "CNBC Markets", FeedURL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Category: CategoryMarkets, Active: true},
		{Name: "MarketWatch", FeedURL: "https://feeds.marketwatch.com/marketwatch/marketpulse/", Category: CategoryMarkets, Active: true},
		{Name: "Yahoo Finance", FeedURL: "https://feeds.finance.yahoo.com/rss/2.0/headline", Category: CategoryFinance, Active: true},
		{Name: "Seeking Alpha", FeedURL: "https://seekingalpha.com/feed.xml", Category: CategoryAnalysis, Active: true},
	}
}
