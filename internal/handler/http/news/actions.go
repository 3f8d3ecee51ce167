package news

import (
	"encoding/json"
	"net/http"

	"stockai-news/internal/handler/http/respond"
)

// ActionHandler serves POST /news. The body selects a side-effecting
// operation: "summary" computes sentiment and ticker counts over the current
// article set, "refresh" drops the cached snapshot so the next read re-fetches.
type ActionHandler struct {
	Svc Service
}

func (h ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// An undecodable body is a processing failure, not an unknown action;
	// 400 is reserved for well-formed requests naming an action we do not
	// support.
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, "Failed to process request", err)
		return
	}

	switch req.Action {
	case "summary":
		summary, err := h.Svc.Summary(r.Context())
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, "Failed to process request", err)
			return
		}
		respond.JSON(w, http.StatusOK, summaryResponse{Success: true, Data: summary})

	case "refresh":
		h.Svc.Refresh(r.Context())
		respond.JSON(w, http.StatusOK, actionResponse{
			Success: true,
			Message: "News sources refreshed successfully",
		})

	default:
		respond.Error(w, http.StatusBadRequest, "Invalid action", "")
	}
}
