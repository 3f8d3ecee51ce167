package news

import (
	"strings"
	"time"

	"stockai-news/internal/domain/entity"
)

// DateRange is a relative date-window bucket evaluated against "now" at
// query time.
type DateRange string

const (
	RangeToday DateRange = "today" // published within the last 24h
	RangeWeek  DateRange = "week"  // last 7 days
	RangeMonth DateRange = "month" // last 30 days
	RangeAll   DateRange = "all"   // no restriction
)

// ParseDateRange maps a query-string value onto a DateRange. Empty and
// unrecognized values mean no restriction.
func ParseDateRange(s string) DateRange {
	switch DateRange(strings.ToLower(s)) {
	case RangeToday:
		return RangeToday
	case RangeWeek:
		return RangeWeek
	case RangeMonth:
		return RangeMonth
	default:
		return RangeAll
	}
}

// cutoff returns the oldest PublishedAt still inside the bucket, or the zero
// time for RangeAll.
func (r DateRange) cutoff(now time.Time) time.Time {
	switch r {
	case RangeToday:
		return now.Add(-24 * time.Hour)
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// FilterOptions combines the query-layer filters. All set filters apply
// conjunctively; zero values mean "no restriction". Limit truncates after
// filtering, so on an input sorted most-recent-first it always keeps the
// most recent matches.
type FilterOptions struct {
	Query     string
	Category  entity.Category
	Sentiment entity.Sentiment
	Range     DateRange
	Limit     int
}

// Filter applies opts over articles, preserving input order. The input slice
// is never mutated.
func Filter(articles []entity.Article, opts FilterOptions, now time.Time) []entity.Article {
	term := strings.ToLower(opts.Query)
	cutoff := opts.Range.cutoff(now)

	matched := make([]entity.Article, 0, len(articles))
	for i := range articles {
		a := &articles[i]

		if term != "" && !articleMatches(a, term) {
			continue
		}
		if opts.Category != "" && a.Category != opts.Category {
			continue
		}
		if opts.Sentiment != "" && a.Sentiment != opts.Sentiment {
			continue
		}
		if !cutoff.IsZero() && a.PublishedAt.Before(cutoff) {
			continue
		}

		matched = append(matched, *a)
		if opts.Limit > 0 && len(matched) == opts.Limit {
			break
		}
	}

	return matched
}
