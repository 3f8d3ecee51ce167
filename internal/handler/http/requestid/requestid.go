// Package requestid provides middleware and helpers for per-request IDs,
// used to correlate log entries for a single request.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a private type so no other package can collide with our key.
type contextKey string

const (
	// Key is the context key under which the request ID is stored.
	Key contextKey = "request_id"
	// Header is the HTTP header used to propagate request IDs.
	Header = "X-Request-ID"
)

// FromContext returns the request ID stored in ctx, or "" if absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(Key).(string); ok {
		return id
	}
	return ""
}

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, Key, id)
}

// Middleware assigns each request an ID. An incoming X-Request-ID header is
// honored so upstream proxies can thread their own IDs; otherwise a fresh
// UUID is generated. The ID is echoed on the response and stored in the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
