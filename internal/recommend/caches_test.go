// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"testing"
	"time"

	"github.com/tomtom215/recipehub/internal/cache"
)

func newTTLCaches() *Caches {
	return NewCaches(
		cache.NewTTL[int, *Profile]("test_profiles", time.Hour),
		cache.NewTTL[int, *TrendTable]("test_trending", time.Hour),
		cache.NewTTL[int, *SimilarEntry]("test_similar", time.Hour),
	)
}

func TestNewCachesFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend      cache.Type
		wantCleaners int
		wantErr      bool
	}{
		{cache.TypeTTL, 3, false},
		{"", 3, false},
		{cache.TypeRistretto, 2, false},
		{cache.TypeNoop, 0, false},
		{"memcached", 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig().Cache
			cfg.Backend = tt.backend

			c, err := NewCachesFromConfig(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCachesFromConfig() error = %v", err)
			}
			defer c.Close()

			if got := len(c.Cleaners()); got != tt.wantCleaners {
				t.Errorf("len(Cleaners()) = %d, want %d", got, tt.wantCleaners)
			}
		})
	}
}

func TestCachesInvalidateUser(t *testing.T) {
	t.Parallel()

	c := newTTLCaches()
	c.Profiles.Set(1, &Profile{UserID: 1})
	c.Profiles.Set(2, &Profile{UserID: 2})

	c.InvalidateUser(1)

	if _, ok := c.Profiles.Get(1); ok {
		t.Error("invalidated profile still cached")
	}
	if _, ok := c.Profiles.Get(2); !ok {
		t.Error("other user's profile was dropped")
	}
	if c.generation(1) != 1 || c.generation(2) != 0 {
		t.Errorf("generations = %d, %d, want 1, 0", c.generation(1), c.generation(2))
	}
}

func TestCachesStoreProfileSkipsStale(t *testing.T) {
	t.Parallel()

	c := newTTLCaches()
	gen := c.generation(1)

	// An append lands while the profile is being computed.
	c.InvalidateUser(1)

	if c.storeProfile(gen, &Profile{UserID: 1}) {
		t.Error("storeProfile() published a stale profile")
	}
	if _, ok := c.Profiles.Get(1); ok {
		t.Error("stale profile is cached")
	}

	if !c.storeProfile(c.generation(1), &Profile{UserID: 1}) {
		t.Error("storeProfile() rejected a fresh profile")
	}
	if _, ok := c.Profiles.Get(1); !ok {
		t.Error("fresh profile not cached")
	}
}

func TestCachesPublishProfiles(t *testing.T) {
	t.Parallel()

	c := newTTLCaches()
	gens := c.generationsSnapshot()
	c.InvalidateUser(2)

	n := c.publishProfiles(gens, map[int]*Profile{
		1: {UserID: 1},
		2: {UserID: 2},
		3: {UserID: 3},
	})

	if n != 2 {
		t.Errorf("publishProfiles() = %d, want 2", n)
	}
	for _, id := range []int{1, 3} {
		if _, ok := c.Profiles.Get(id); !ok {
			t.Errorf("profile %d not published", id)
		}
	}
	if _, ok := c.Profiles.Get(2); ok {
		t.Error("profile invalidated during refresh was published")
	}
}

func TestCachesClear(t *testing.T) {
	t.Parallel()

	c := newTTLCaches()
	c.Profiles.Set(1, &Profile{UserID: 1})
	c.Trending.Set(trendingKey, &TrendTable{})
	c.Similar.Set(1, &SimilarEntry{Results: []Result{{RecipeID: 2}}})

	c.Clear()

	if _, ok := c.Profiles.Get(1); ok {
		t.Error("profiles not cleared")
	}
	if _, ok := c.Trending.Get(trendingKey); ok {
		t.Error("trending not cleared")
	}
	if _, ok := c.Similar.Get(1); ok {
		t.Error("similar not cleared")
	}
}

func TestNoopCaches(t *testing.T) {
	t.Parallel()

	c := NoopCaches()
	c.Profiles.Set(1, &Profile{UserID: 1})
	if _, ok := c.Profiles.Get(1); ok {
		t.Error("noop cache retained a value")
	}
	c.InvalidateUser(1)
	c.Close()
}
