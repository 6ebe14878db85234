// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package cache

// Key is the set of key types every Store implementation accepts.
// It is a subset of what ristretto can hash, so any Key can back
// a Ristretto store as well as a TTL map.
type Key interface {
	int | int64 | uint64 | string
}

// Store is a key/value cache handle. Implementations decide expiry and
// eviction; callers treat every miss as "recompute and Set".
//
// Usage:
//
//	var profiles cache.Store[int, Profile] = cache.NewTTL[int, Profile]("profiles", time.Hour)
//	if p, ok := profiles.Get(userID); ok {
//	    return p
//	}
type Store[K Key, V any] interface {
	// Get returns the value and true if present and not expired.
	Get(key K) (V, bool)

	// Set stores a value with the store's default TTL.
	Set(key K, value V)

	// SetMany stores a batch of values. Readers observe either none or
	// all of the batch for stores that support it (TTL).
	SetMany(entries map[K]V)

	// Delete removes a single entry.
	Delete(key K)

	// Clear removes every entry.
	Clear()
}

// Cleaner is implemented by stores that need periodic removal of expired
// entries.
type Cleaner interface {
	Cleanup() int
}

// Type selects a Store implementation from configuration.
type Type string

const (
	// TypeTTL is the mutex-guarded TTL map.
	TypeTTL Type = "ttl"
	// TypeRistretto is the ristretto-backed store.
	TypeRistretto Type = "ristretto"
	// TypeNoop disables caching.
	TypeNoop Type = "noop"
)

// Noop is a Store that never retains anything.
type Noop[K Key, V any] struct {
	name string
}

// NewNoop returns a disabled cache. Every Get is a miss.
func NewNoop[K Key, V any](name string) *Noop[K, V] {
	return &Noop[K, V]{name: name}
}

func (n *Noop[K, V]) Get(K) (V, bool) {
	var zero V
	recordMiss(n.name)
	return zero, false
}

// Set discards the value.
func (n *Noop[K, V]) Set(K, V) {}

// SetMany discards the batch.
func (n *Noop[K, V]) SetMany(map[K]V) {}

// Delete is a no-op.
func (n *Noop[K, V]) Delete(K) {}

// Clear is a no-op.
func (n *Noop[K, V]) Clear() {}
