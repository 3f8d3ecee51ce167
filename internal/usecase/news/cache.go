package news

import (
	"sync"
	"time"

	"stockai-news/internal/domain/entity"
)

// snapshotCache holds the most recent successful aggregation result for a
// bounded time. Snapshots are immutable; readers share the slice, never
// mutate it, and a refresh swaps in a whole new one. A TTL of zero disables
// caching entirely, restoring fetch-per-query behavior.
type snapshotCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	articles  []entity.Article
	fetchedAt time.Time
	valid     bool
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{ttl: ttl}
}

// get returns the cached snapshot if one exists and is still fresh at now.
func (c *snapshotCache) get(now time.Time) ([]entity.Article, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || now.Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.articles, true
}

// set stores a new snapshot taken at now.
func (c *snapshotCache) set(articles []entity.Article, now time.Time) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = articles
	c.fetchedAt = now
	c.valid = true
}

// invalidate drops the snapshot so the next query re-fetches from scratch.
func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = nil
	c.valid = false
}
