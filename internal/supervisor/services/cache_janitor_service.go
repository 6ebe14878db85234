// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recipehub/internal/cache"
	"github.com/tomtom215/recipehub/internal/metrics"
)

// CacheJanitorService sweeps expired entries out of TTL caches. Stores that
// expire on their own (ristretto) are not passed in.
type CacheJanitorService struct {
	cleaners []cache.Cleaner
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheJanitorService creates the sweeper. A non-positive interval
// selects 5m.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheJanitorService(cleaners []cache.Cleaner, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		cleaners: cleaners,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
	}
}

// Serve implements suture.Service.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep runs one cleanup pass and returns the number of entries removed.
func (j *CacheJanitorService) Sweep() int {
	removed := 0
	for _, c := range j.cleaners {
		removed += c.Cleanup()
	}
	metrics.RecordCacheCleanup(removed)
	if removed > 0 {
		j.logger.Debug().Int("removed", removed).Msg("expired cache entries swept")
	}
	return removed
}

// String names the service in supervisor events.
func (j *CacheJanitorService) String() string {
	return "cache-janitor"
}
