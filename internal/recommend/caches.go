// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"fmt"
	"sync"

	"github.com/tomtom215/recipehub/internal/cache"
)

// trendingKey is the single key of the global trending cache.
const trendingKey = 0

// Caches holds the three independent projection caches. Each is a
// recomputable view of the activity log; a miss recomputes synchronously.
//
// Profile writes are guarded by per-user generations: an append bumps the
// user's generation and deletes the cached profile, and a profile computed
// before that bump is never published.
type Caches struct {
	// Profiles maps user id -> preference profile.
	Profiles cache.Store[int, *Profile]

	// Trending holds the global trend table under trendingKey.
	Trending cache.Store[int, *TrendTable]

	// Similar maps recipe id -> ranked similar recipes.
	Similar cache.Store[int, *SimilarEntry]

	mu          sync.Mutex
	generations map[int]uint64
}

// SimilarEntry is a cached Similar ranking. Fingerprint is the hash of the
// query recipe's feature vector when the ranking was computed; an entry whose
// fingerprint no longer matches is treated as a miss.
type SimilarEntry struct {
	Fingerprint uint64
	Results     []Result
}

// NewCaches wraps the given stores. Nil stores are replaced with no-op ones.
func NewCaches(profiles cache.Store[int, *Profile], trending cache.Store[int, *TrendTable], similar cache.Store[int, *SimilarEntry]) *Caches {
	if profiles == nil {
		profiles = cache.NewNoop[int, *Profile]("profiles")
	}
	if trending == nil {
		trending = cache.NewNoop[int, *TrendTable]("trending")
	}
	if similar == nil {
		similar = cache.NewNoop[int, *SimilarEntry]("similar")
	}
	return &Caches{
		Profiles:    profiles,
		Trending:    trending,
		Similar:     similar,
		generations: make(map[int]uint64),
	}
}

// NoopCaches returns caches that never retain anything.
func NoopCaches() *Caches {
	return NewCaches(nil, nil, nil)
}

// NewCachesFromConfig builds the caches selected by cfg.Backend.
//
//nolint:gocritic // hugeParam: config section passed by value
func NewCachesFromConfig(cfg CacheConfig) (*Caches, error) {
	switch cfg.Backend {
	case cache.TypeNoop:
		return NoopCaches(), nil
	case cache.TypeTTL, "":
		return NewCaches(
			cache.NewTTL[int, *Profile]("profiles", cfg.ProfileTTL),
			cache.NewTTL[int, *TrendTable]("trending", cfg.TrendingTTL),
			cache.NewTTL[int, *SimilarEntry]("similar", cfg.SimilarTTL),
		), nil
	case cache.TypeRistretto:
		similar, err := cache.NewRistretto[int, *SimilarEntry]("similar", cache.RistrettoConfig{
			MaxEntries: cfg.SimilarMaxEntries,
			TTL:        cfg.SimilarTTL,
		})
		if err != nil {
			return nil, err
		}
		return NewCaches(
			cache.NewTTL[int, *Profile]("profiles", cfg.ProfileTTL),
			cache.NewTTL[int, *TrendTable]("trending", cfg.TrendingTTL),
			similar,
		), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// InvalidateUser drops the user's cached profile and bumps its generation.
func (c *Caches) InvalidateUser(userID int) {
	c.mu.Lock()
	c.generations[userID]++
	c.Profiles.Delete(userID)
	c.mu.Unlock()
}

// generation returns the user's current generation.
func (c *Caches) generation(userID int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID]
}

// generationsSnapshot copies every known generation.
func (c *Caches) generationsSnapshot() map[int]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]uint64, len(c.generations))
	for k, v := range c.generations {
		out[k] = v
	}
	return out
}

// storeProfile publishes p unless the user was invalidated after gen.
func (c *Caches) storeProfile(gen uint64, p *Profile) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[p.UserID] != gen {
		return false
	}
	c.Profiles.Set(p.UserID, p)
	return true
}

// publishProfiles publishes a batch in one SetMany, skipping users
// invalidated after the snapshot generations were taken.
func (c *Caches) publishProfiles(gens map[int]uint64, profiles map[int]*Profile) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := make(map[int]*Profile, len(profiles))
	for userID, p := range profiles {
		if c.generations[userID] == gens[userID] {
			fresh[userID] = p
		}
	}
	c.Profiles.SetMany(fresh)
	return len(fresh)
}

// Cleaners returns the caches that need periodic expiry sweeps.
func (c *Caches) Cleaners() []cache.Cleaner {
	var out []cache.Cleaner
	for _, s := range []any{c.Profiles, c.Trending, c.Similar} {
		if cl, ok := s.(cache.Cleaner); ok {
			out = append(out, cl)
		}
	}
	return out
}

// Clear empties all three caches.
func (c *Caches) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Profiles.Clear()
	c.Trending.Clear()
	c.Similar.Clear()
}

// Close releases stores that hold background resources.
func (c *Caches) Close() {
	for _, s := range []any{c.Profiles, c.Trending, c.Similar} {
		if cl, ok := s.(interface{ Close() }); ok {
			cl.Close()
		}
	}
}
