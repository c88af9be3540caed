// Package cache holds the process-local page cache fronting the news listing.
package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/newsdesk/news-api/internal/domain"
)

// Hooks carries the hit/miss metric callbacks; nil fields are no-ops.
type Hooks struct {
	OnHit  func()
	OnMiss func()
}

// PageCache stores assembled listing pages keyed by their query parameters.
// Entries expire after the configured TTL and the least recently used entry
// is evicted once the size cap is reached. Invalidation is wholesale: any
// write to the news table resets the entire cache rather than tracking which
// filter combinations a row might appear under. False misses are acceptable;
// stale pages are not.
type PageCache struct {
	lru   *expirable.LRU[string, *domain.PaginatedNews]
	hooks Hooks
}

// New creates a cache holding at most maxEntries pages, each valid for ttl.
func New(maxEntries int, ttl time.Duration, hooks Hooks) *PageCache {
	if hooks.OnHit == nil {
		hooks.OnHit = func() {}
	}
	if hooks.OnMiss == nil {
		hooks.OnMiss = func() {}
	}
	return &PageCache{
		lru:   expirable.NewLRU[string, *domain.PaginatedNews](maxEntries, nil, ttl),
		hooks: hooks,
	}
}

// Key derives the cache key for a listing query. Absent filters serialize as
// empty strings, so an explicit empty filter and no filter share a key.
func Key(f domain.ListFilter) string {
	return fmt.Sprintf("news:%d:%d:%s:%s", f.Page, f.Limit, f.Title, f.Description)
}

func (c *PageCache) Get(key string) (*domain.PaginatedNews, bool) {
	page, ok := c.lru.Get(key)
	if ok {
		c.hooks.OnHit()
	} else {
		c.hooks.OnMiss()
	}
	return page, ok
}

func (c *PageCache) Set(key string, page *domain.PaginatedNews) {
	c.lru.Add(key, page)
}

// Reset drops every cached page. Called after each successful write; the
// single atomic purge is what keeps a concurrent reader from ever observing
// a half-invalidated page.
func (c *PageCache) Reset() {
	c.lru.Purge()
}

// Len reports the current number of cached pages.
func (c *PageCache) Len() int {
	return c.lru.Len()
}
