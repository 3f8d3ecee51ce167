package http

import (
	"net/http"
	"time"

	"stockai-news/internal/handler/http/respond"
)

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the status of one health check item.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerReporter exposes the per-source circuit breaker states, reported by
// the fetcher for sources that have been hit at least once.
type BreakerReporter interface {
	BreakerStates() map[string]string
}

// HealthHandler reports liveness plus the state of each feed source's
// circuit breaker and the configured chat providers.
type HealthHandler struct {
	Version       string
	SourceCount   int
	Fetcher       BreakerReporter
	ChatProviders []string
}

// ServeHTTP returns 200 with per-check details. An open feed breaker marks
// the feeds check degraded but never fails the endpoint: the aggregator
// serves partial results by design of the pipeline, so the process is still
// healthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)

	checks["sources"] = CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"active": h.SourceCount},
	}

	feedCheck := CheckStatus{Status: "healthy"}
	if h.Fetcher != nil {
		states := h.Fetcher.BreakerStates()
		details := make(map[string]any, len(states))
		for source, state := range states {
			details[source] = state
			if state != "closed" {
				feedCheck.Status = "degraded"
				feedCheck.Message = "one or more feed circuit breakers are not closed"
			}
		}
		feedCheck.Details = details
	}
	checks["feeds"] = feedCheck

	checks["chat"] = CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"providers": h.ChatProviders},
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status == "degraded" {
			status = "degraded"
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}
