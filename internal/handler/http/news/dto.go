// Package news exposes the news aggregation endpoints. GET serves the
// filtered article list, POST dispatches the summary and refresh actions.
package news

import (
	"context"
	"time"

	"stockai-news/internal/domain/entity"
)

// Service is the slice of the aggregator the handlers consume.
type Service interface {
	FetchAll(ctx context.Context) ([]entity.Article, error)
	FetchByTicker(ctx context.Context, ticker string) ([]entity.Article, error)
	FetchByCategory(ctx context.Context, category entity.Category) ([]entity.Article, error)
	Search(ctx context.Context, query string) ([]entity.Article, error)
	Summary(ctx context.Context) (entity.Summary, error)
	Refresh(ctx context.Context)
}

// listResponse is the GET /news success envelope.
type listResponse struct {
	Success   bool             `json:"success"`
	Data      []entity.Article `json:"data"`
	Count     int              `json:"count"`
	Timestamp time.Time        `json:"timestamp"`
}

// summaryResponse is the POST /news {action: "summary"} success envelope.
type summaryResponse struct {
	Success bool           `json:"success"`
	Data    entity.Summary `json:"data"`
}

// actionResponse is the POST /news success envelope for side-effect actions.
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// actionRequest is the POST /news request body.
type actionRequest struct {
	Action string `json:"action"`
}
