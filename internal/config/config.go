// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/logging"
	"github.com/tomtom215/recipehub/internal/recommend"
)

// Store backends.
const (
	StoreBadger = "badger"
	StoreMemory = "memory"
)

// Config holds the complete service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   LoggingConfig    `koanf:"logging"`
	Store     StoreConfig      `koanf:"store"`
	Catalog   CatalogConfig    `koanf:"catalog"`
	Recommend recommend.Config `koanf:"recommend"`
	Batch     BatchConfig      `koanf:"batch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds each API request, including recommendation
	// computation.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// CORSOrigins lists allowed origins. "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	Caller bool `koanf:"caller"`
}

// Logging converts the section into a logging.Config.
func (l LoggingConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// StoreConfig selects and configures the activity log backend.
type StoreConfig struct {
	// Backend is badger or memory.
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory.
	Path string `koanf:"path"`

	SyncWrites  bool `koanf:"sync_writes"`
	Compression bool `koanf:"compression"`
}

// Badger converts the section into an activity.BadgerConfig.
func (s StoreConfig) Badger() activity.BadgerConfig {
	return activity.BadgerConfig{
		Path:        s.Path,
		SyncWrites:  s.SyncWrites,
		Compression: s.Compression,
	}
}

// CatalogConfig points at the recipe catalog and user directory.
type CatalogConfig struct {
	// Path is a JSON file with "recipes" and "users". Empty starts with an
	// empty catalog.
	Path string `koanf:"path"`
}

// BatchConfig controls the scheduled refresh of profiles and trends.
type BatchConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval between refreshes.
	Interval time.Duration `koanf:"interval"`

	// OnStartup runs a refresh as soon as the service starts.
	OnStartup bool `koanf:"on_startup"`

	// Timeout bounds a single refresh.
	Timeout time.Duration `koanf:"timeout"`

	// CacheCleanupInterval is how often expired cache entries are swept.
	CacheCleanupInterval time.Duration `koanf:"cache_cleanup_interval"`
}

// defaultConfig returns a Config with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RequestTimeout:    10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Backend:     StoreBadger,
			Path:        "/data/recipehub/activity",
			Compression: true,
		},
		Recommend: *recommend.DefaultConfig(),
		Batch: BatchConfig{
			Enabled:              true,
			Interval:             24 * time.Hour,
			OnStartup:            true,
			Timeout:              10 * time.Minute,
			CacheCleanupInterval: 5 * time.Minute,
		},
	}
}

// Default returns the default configuration.
func Default() *Config {
	return defaultConfig()
}
