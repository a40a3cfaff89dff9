package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
	ttl       time.Duration
}

func (e cacheEntry) fresh(now time.Time) bool {
	return now.Sub(e.fetchedAt) < e.ttl
}

// TTLCache memoizes fetched resources for a freshness window and coalesces
// concurrent fetches of the same key into a single in-flight call. An expired
// entry is treated as absent, never served stale. Failed fetches are not
// cached, so the next caller retries immediately.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group // prevents duplicate in-flight fetches
	obs     Observer

	now func() time.Time
}

func NewTTLCache(obs Observer) *TTLCache {
	if obs == nil {
		obs = NopObserver{}
	}
	return &TTLCache{
		entries: make(map[string]cacheEntry),
		obs:     obs,
		now:     time.Now,
	}
}

// GetOrFetch returns the cached value for key when fresh, otherwise runs fetch
// (once, however many callers arrive concurrently) and stores the result.
// A caller whose context is cancelled detaches; the in-flight fetch still
// completes for the remaining waiters.
func (c *TTLCache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && entry.fresh(c.now()) {
		c.obs.CacheHit(key)
		return entry.value, nil
	}
	c.obs.CacheMiss(key)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have just stored it.
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && entry.fresh(c.now()) {
			return entry.value, nil
		}

		// The fetch must outlive any single caller, so it runs detached from
		// the caller's context.
		value, err := fetch(context.Background())
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{value: value, fetchedAt: c.now(), ttl: ttl}
		c.mu.Unlock()
		c.obs.CacheStore(key, ttl)
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops the entry for key, if any.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every entry.
func (c *TTLCache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
