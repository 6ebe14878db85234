// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package cache

import (
	"sync"
	"time"
)

// entry represents a cached item with expiration
type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// TTL provides a thread-safe in-memory cache with a single TTL for all
// entries. Expired entries are removed lazily on Get and in bulk by
// Cleanup; there is no background goroutine.
type TTL[K Key, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
	statsMu sync.RWMutex
	stats   Stats
}

// Stats is a point-in-time snapshot of cache performance counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Option configures a TTL cache.
type Option func(*ttlOptions)

type ttlOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *ttlOptions) { o.now = now }
}

// NewTTL creates a thread-safe in-memory cache with automatic expiration.
//
// name labels the cache's Prometheus metrics; ttl applies to every entry.
//
// Example:
//
//	profiles := cache.NewTTL[int, Profile]("profiles", time.Hour)
//	profiles.Set(42, p)
//	if p, ok := profiles.Get(42); ok {
//	    // Use cached value
//	}
func NewTTL[K Key, V any](name string, ttl time.Duration, opts ...Option) *TTL[K, V] {
	o := ttlOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[K, V]{
		name:    name,
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     o.now,
		stats: Stats{
			LastCleanup: o.now(),
		},
	}
}

// Get retrieves a value by key. An expired entry is removed and counted
// as a miss.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		c.recordMiss()
		return zero, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction(1)
		return zero, false
	}

	c.recordHit()
	return e.data, true
}

// Set stores a value with the cache's TTL, overwriting any existing entry.
func (c *TTL[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value in the cache with a custom TTL
func (c *TTL[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		data:      value,
		expiresAt: c.now().Add(ttl),
	}
	c.setTotalKeys(len(c.entries))
}

// SetMany stores a batch under one write lock so readers never observe a
// partially published batch.
func (c *TTL[K, V]) SetMany(entries map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	for k, v := range entries {
		c.entries[k] = entry[V]{data: v, expiresAt: expiresAt}
	}
	c.setTotalKeys(len(c.entries))
}

// Delete removes a specific cache entry by key. No-op if the key is absent.
func (c *TTL[K, V]) Delete(key K) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	n := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEviction(1)
	}
	c.setTotalKeys(n)
}

// Clear removes all entries from the cache in a single atomic operation.
func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()

	c.recordEviction(evictions)
	c.setTotalKeys(0)
}

// Cleanup removes all expired entries and returns how many were removed.
func (c *TTL[K, V]) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += int64(removed)
	c.stats.TotalKeys = int64(n)
	c.stats.LastCleanup = now
	c.statsMu.Unlock()
	recordSize(c.name, n)
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Name returns the metrics label of the cache.
func (c *TTL[K, V]) Name() string {
	return c.name
}

// GetStats returns a snapshot of current cache performance statistics.
func (c *TTL[K, V]) GetStats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()

	return c.stats
}

// HitRate returns the cache hit rate as a percentage
func (c *TTL[K, V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *TTL[K, V]) setTotalKeys(n int) {
	c.statsMu.Lock()
	c.stats.TotalKeys = int64(n)
	c.statsMu.Unlock()
	recordSize(c.name, n)
}

// recordHit increments the hit counter
func (c *TTL[K, V]) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	recordHit(c.name)
}

// recordMiss increments the miss counter
func (c *TTL[K, V]) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	recordMiss(c.name)
}

// recordEviction adds to the eviction counter
func (c *TTL[K, V]) recordEviction(n int64) {
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}
