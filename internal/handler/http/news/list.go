package news

import (
	"net/http"
	"strconv"
	"time"

	"stockai-news/internal/domain/entity"
	"stockai-news/internal/handler/http/respond"
	newsUC "stockai-news/internal/usecase/news"
)

// ListHandler serves GET /news. Exactly one primary lookup runs per request:
// ticker wins over category, category over search, and a bare request returns
// everything. Sentiment and range then narrow the result, and limit truncates.
type ListHandler struct {
	Svc          Service
	DefaultLimit int
	Now          func() time.Time
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		articles []entity.Article
		err      error
	)
	switch {
	case q.Get("ticker") != "":
		articles, err = h.Svc.FetchByTicker(r.Context(), q.Get("ticker"))
	case q.Get("category") != "":
		articles, err = h.Svc.FetchByCategory(r.Context(), entity.Category(q.Get("category")))
	case q.Get("search") != "":
		articles, err = h.Svc.Search(r.Context(), q.Get("search"))
	default:
		articles, err = h.Svc.FetchAll(r.Context())
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, "Failed to fetch news", err)
		return
	}

	now := h.now()
	articles = newsUC.Filter(articles, newsUC.FilterOptions{
		Sentiment: parseSentiment(q.Get("sentiment")),
		Range:     newsUC.ParseDateRange(q.Get("range")),
		Limit:     h.limit(q.Get("limit")),
	}, now)

	respond.JSON(w, http.StatusOK, listResponse{
		Success:   true,
		Data:      articles,
		Count:     len(articles),
		Timestamp: now.UTC(),
	})
}

func (h ListHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// limit parses the limit parameter, falling back to the configured default
// when it is missing or not a positive integer.
func (h ListHandler) limit(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return n
	}
	return h.DefaultLimit
}

// parseSentiment treats unknown values as "no restriction", mirroring how
// unknown range values fall back to all.
func parseSentiment(raw string) entity.Sentiment {
	s := entity.Sentiment(raw)
	if !s.Valid() {
		return ""
	}
	return s
}
