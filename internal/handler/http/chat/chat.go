// Package chat exposes the finance assistant endpoint. A single shared
// token bucket caps how fast the upstream completion APIs can be hit.
package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"stockai-news/internal/handler/http/respond"
	"stockai-news/internal/infra/assistant"
)

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// Handler serves POST /chat.
type Handler struct {
	Completer assistant.Completer
	Limiter   *rate.Limiter
	Logger    *slog.Logger
}

// NewHandler builds the chat handler. ratePerSecond and burst size the token
// bucket shared by all clients.
func NewHandler(completer assistant.Completer, ratePerSecond float64, burst int, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return Handler{
		Completer: completer,
		Limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		Logger:    logger,
	}
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow() {
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{
			"error": "Too many requests",
		})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing prompt",
		})
		return
	}

	text, err := h.Completer.Complete(r.Context(), req.Prompt)
	if err != nil {
		h.Logger.Error("chat completion failed",
			slog.String("error", respond.SanitizeError(err)))
		respond.JSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate response",
		})
		return
	}

	respond.JSON(w, http.StatusOK, chatResponse{Text: text})
}

// Register registers the chat endpoint with the given mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("POST /chat", h)
}
