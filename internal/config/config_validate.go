// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package config

import (
	"fmt"
	"slices"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	// Collaborative scoring degrades to zero on its own timeout, which only
	// happens if it fires before the request deadline.
	if c.Recommend.Limits.CollaborativeTimeout >= c.Server.RequestTimeout {
		return fmt.Errorf("recommend.limits.collaborative_timeout (%v) must be less than server.request_timeout (%v)",
			c.Recommend.Limits.CollaborativeTimeout, c.Server.RequestTimeout)
	}

	return c.validateBatch()
}

// validateServer validates HTTP listener settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}

	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"server.request_timeout":  c.Server.RequestTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}

	return c.validateRateLimits()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting bounds
func (c *Config) validateRateLimits() error {
	if c.Server.RateLimitDisabled {
		return nil
	}

	if c.Server.RateLimitRequests < minRateLimitRequests || c.Server.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Server.RateLimitWindow < minRateLimitWindow || c.Server.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed
func (c *Config) HasWildcardCORS() bool {
	return slices.Contains(c.Server.CORSOrigins, "*")
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.Logging.Logging().Validate(); err != nil {
		return fmt.Errorf("LOG_LEVEL/LOG_FORMAT invalid: %w", err)
	}
	return nil
}

// validateStore validates the activity log backend
func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case StoreMemory:
		return nil
	case StoreBadger:
		if c.Store.Path == "" {
			return fmt.Errorf("BADGER_PATH is required when store.backend=badger")
		}
		return nil
	default:
		return fmt.Errorf("store.backend must be one of: %s, %s", StoreBadger, StoreMemory)
	}
}

// validateBatch validates the scheduled refresh settings
func (c *Config) validateBatch() error {
	if c.Batch.CacheCleanupInterval <= 0 {
		return fmt.Errorf("batch.cache_cleanup_interval must be positive, got %v", c.Batch.CacheCleanupInterval)
	}
	if !c.Batch.Enabled {
		return nil
	}
	if c.Batch.Interval < time.Minute {
		return fmt.Errorf("batch.interval must be at least 1m, got %v", c.Batch.Interval)
	}
	if c.Batch.Timeout <= 0 {
		return fmt.Errorf("batch.timeout must be positive, got %v", c.Batch.Timeout)
	}
	return nil
}
