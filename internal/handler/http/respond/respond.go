// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, log only.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with a short label and a human-readable
// message. The label is stable for clients, the message is free-form.
func Error(w http.ResponseWriter, code int, label, message string) {
	JSON(w, code, errorEnvelope{Success: false, Error: label, Message: message})
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors are returned as a generic message with details logged for
// debugging. Safe errors (validation errors) are returned as-is.
func SafeError(w http.ResponseWriter, code int, label string, err error) {
	if err == nil {
		return
	}

	msg := err.Error()

	// Validation-style errors are fine to echo back to the client.
	safeErrors := []string{
		"required",
		"invalid",
		"not found",
		"must be",
		"cannot be",
		"too long",
		"too short",
	}

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 5xx responses never echo internals.
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		Error(w, code, label, msg)
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	Error(w, code, label, "internal server error")
}
