package entity

import "errors"

// Domain-level validation errors. Handlers match on these with errors.Is to
// pick the HTTP status; messages are safe to surface to clients.
var (
	ErrSourceNameRequired = errors.New("source name is required")
	ErrFeedURLRequired    = errors.New("feed_url is required")
	ErrNoActiveSources    = errors.New("no active sources configured")
)
