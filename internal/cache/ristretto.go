// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// RistrettoConfig sizes a ristretto-backed store.
type RistrettoConfig struct {
	// MaxEntries bounds the number of cached values (each costs 1).
	MaxEntries int64

	// TTL applies to every entry.
	TTL time.Duration
}

// Ristretto is a Store backed by ristretto's admission-controlled cache.
// It suits large keyspaces such as per-recipe similarity lists, where a
// bounded size matters more than exact retention.
type Ristretto[K Key, V any] struct {
	name  string
	cache *ristretto.Cache[K, V]
	ttl   time.Duration
}

// NewRistretto creates a ristretto-backed store.
func NewRistretto[K Key, V any](name string, cfg RistrettoConfig) (*Ristretto[K, V], error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10000
	}
	c, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters: cfg.MaxEntries * 10,
		MaxCost:     cfg.MaxEntries,
		BufferItems: 64,

		// Cost counts entries, so ristretto's per-item overhead must not
		// be added on top.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache %q: %w", name, err)
	}
	return &Ristretto[K, V]{name: name, cache: c, ttl: cfg.TTL}, nil
}

// Get implements Store.
func (r *Ristretto[K, V]) Get(key K) (V, bool) {
	v, ok := r.cache.Get(key)
	if ok {
		recordHit(r.name)
	} else {
		recordMiss(r.name)
	}
	return v, ok
}

// Set implements Store. Writes are made visible before returning.
func (r *Ristretto[K, V]) Set(key K, value V) {
	r.cache.SetWithTTL(key, value, 1, r.ttl)
	r.cache.Wait()
}

// SetMany implements Store. Ristretto has no batch primitive, so entries
// become visible together only after the final Wait.
func (r *Ristretto[K, V]) SetMany(entries map[K]V) {
	for k, v := range entries {
		r.cache.SetWithTTL(k, v, 1, r.ttl)
	}
	r.cache.Wait()
}

// Delete implements Store.
func (r *Ristretto[K, V]) Delete(key K) {
	r.cache.Del(key)
}

// Clear implements Store.
func (r *Ristretto[K, V]) Clear() {
	r.cache.Clear()
}

// Close stops ristretto's background goroutines.
func (r *Ristretto[K, V]) Close() {
	r.cache.Close()
}
