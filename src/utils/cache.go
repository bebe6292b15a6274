package utils

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

// TTLCache is a keyed in-process cache whose entries expire a fixed duration
// after they were set. Concurrent writers to the same key are last-writer-wins.
type TTLCache[K comparable, V any] struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[K]cacheEntry[V]
	mutex   sync.RWMutex
}

// NewTTLCache initializes an empty cache. A nil clock defaults to time.Now.
func NewTTLCache[K comparable, V any](ttl time.Duration, now func() time.Time) *TTLCache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[K, V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[K]cacheEntry[V]),
	}
}

// Set stores value under key for the cache TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[V]{
		value:      value,
		expiration: c.now().Add(c.ttl),
	}
}

// Get returns the value for key while it has not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()

	if !ok || !c.now().Before(entry.expiration) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Purge drops expired entries and returns how many were removed.
func (c *TTLCache[K, V]) Purge() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiration) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
