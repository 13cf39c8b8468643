package cache

import (
	"fmt"
	"sync"
	"time"
)

// entry holds one cached payload together with the time it was stored.
type entry[T any] struct {
	payload  T
	storedAt time.Time
}

// Cache is a concurrency-safe, coordinate-keyed cache with a fixed
// freshness window. Keys are derived by rounding latitude and longitude to
// two decimal places, so lookups within roughly 1.1 km of each other share a
// slot. Entries past the freshness window are treated as absent on read and
// physically removed by Sweep.
type Cache[T any] struct {
	mu       sync.RWMutex
	entries  map[string]entry[T]
	duration time.Duration

	// now is swappable so tests can advance the clock.
	now func() time.Time
}

// New creates a Cache whose entries stay fresh for the given duration.
func New[T any](duration time.Duration) *Cache[T] {
	return &Cache[T]{
		entries:  make(map[string]entry[T]),
		duration: duration,
		now:      time.Now,
	}
}

// Key returns the canonical cache key for a coordinate pair. Rounding to two
// decimals is intentional: it coalesces nearby lookups into one slot to keep
// the hit rate high against a rate-limited upstream.
func Key(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

// Get returns the cached payload for the coordinate pair if it is still
// fresh. A stale entry behaves as a miss; it is not evicted here.
func (c *Cache[T]) Get(lat, lon float64) (T, bool) {
	key := Key(lat, lon)

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.duration {
		var zero T
		return zero, false
	}
	return e.payload, true
}

// Set stores the payload for the coordinate pair, overwriting any prior
// entry for the same key.
func (c *Cache[T]) Set(lat, lon float64, payload T) {
	key := Key(lat, lon)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		payload:  payload,
		storedAt: c.now(),
	}
}

// Sweep removes all entries older than the freshness window and returns the
// number removed. The scheduler calls this periodically; tests call it
// directly.
func (c *Cache[T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= c.duration {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, fresh or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// SetClock overrides the cache's clock. Intended for tests.
func (c *Cache[T]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
