// Package entity defines the core domain entities for the news aggregation
// pipeline. It contains the fundamental business objects such as Article and
// Source, along with their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// Sentiment is the coarse tone label attached to an article at normalization
// time. The classifier always returns one of the three values below; an
// article is never unclassified.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// MaxTickers caps how many ticker symbols are attached to a single article.
const MaxTickers = 5

// Article is the normalized representation of one feed item. Articles are
// immutable once produced: a refresh yields a full new set and never mutates
// instances handed out earlier. Sentiment and Tickers are derived once at
// normalization time and never recomputed.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
	Category    Category  `json:"category"`
	Sentiment   Sentiment `json:"sentiment"`
	Tickers     []string  `json:"tickers"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Author      string    `json:"author"`
}

// HasTicker reports whether the article carries the given symbol.
// Comparison is case-insensitive and exact.
func (a *Article) HasTicker(symbol string) bool {
	for _, t := range a.Tickers {
		if strings.EqualFold(t, symbol) {
			return true
		}
	}
	return false
}

// Summary is the aggregate view over one article snapshot. It is derived on
// demand and never stored; all counts are recomputed fully per request.
type Summary struct {
	TotalArticles int               `json:"totalArticles"`
	Categories    map[Category]int  `json:"categories"`
	Sentiments    map[Sentiment]int `json:"sentiment"`
	TopTickers    map[string]int    `json:"topTickers"`
}

// NewSummary computes the aggregate counts for the given article set.
// The sentiment map always contains all three labels, even at zero.
func NewSummary(articles []Article) Summary {
	s := Summary{
		TotalArticles: len(articles),
		Categories:    make(map[Category]int),
		Sentiments: map[Sentiment]int{
			SentimentPositive: 0,
			SentimentNegative: 0,
			SentimentNeutral:  0,
		},
		TopTickers: make(map[string]int),
	}
	for i := range articles {
		a := &articles[i]
		s.Categories[a.Category]++
		s.Sentiments[a.Sentiment]++
		for _, t := range a.Tickers {
			s.TopTickers[t]++
		}
	}
	return s
}
