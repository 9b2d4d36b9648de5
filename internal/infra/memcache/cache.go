// Package memcache provides the process-local TTL cache used as the default
// search result cache. Entries are swept lazily on writes; there is no
// background timer.
package memcache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// entry is one cached payload with its expiry deadline.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache implements domain.Cache with a bounded in-memory map.
//
// Concurrent misses for the same key may both compute and both write; the
// last write wins, which is harmless because the payload is a pure function
// of the key's inputs. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	maxEntries int
	now        func() time.Time
	logger     *zap.Logger

	hits   int64
	misses int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects the time source. Tests use this to control TTL expiry
// deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a bounded in-memory cache. maxEntries <= 0 means unbounded.
func New(maxEntries int, logger *zap.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get retrieves a value by key. Returns nil when the key is absent or past
// its TTL. Expired entries are left for the next write sweep.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		c.misses++
		return nil, nil
	}

	c.hits++
	return e.value, nil
}

// Set stores a value with the given TTL, overwriting any previous entry for
// the key. Every write sweeps the whole map and drops expired entries; when
// the cache is still full afterwards, the entry closest to expiry is evicted.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictSoonestLocked()
		}
	}

	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}

	return nil
}

// Clear removes all cached values and reports how many were dropped.
func (c *Cache) Clear(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]entry)

	if c.logger != nil {
		c.logger.Info("cache cleared", zap.Int("entries_removed", removed))
	}

	return removed, nil
}

// Len returns the number of live (unexpired) entries.
func (c *Cache) Len(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	live := 0
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			live++
		}
	}

	return live, nil
}

// Stats reports hit/miss counters for the analytics endpoint.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits, c.misses
}

// sweepLocked drops every expired entry. Caller must hold mu.
func (c *Cache) sweepLocked(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// evictSoonestLocked removes the entry closest to expiry to make room.
// Caller must hold mu.
func (c *Cache) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}
