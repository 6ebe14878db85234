// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recipehub/internal/logging"
	"github.com/tomtom215/recipehub/internal/recommend"
)

// Refresher recomputes profiles and trend scores.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// BatchConfig controls the refresh schedule.
type BatchConfig struct {
	// Interval between scheduled refreshes. Default: 24h
	Interval time.Duration

	// OnStartup runs a refresh as soon as the service starts.
	OnStartup bool

	// Timeout bounds a single refresh. Default: 10m
	Timeout time.Duration
}

// BatchService runs the batch refresh on a fixed schedule.
type BatchService struct {
	refresher Refresher
	config    BatchConfig
	logger    zerolog.Logger
	runs      atomic.Int64
	failures  atomic.Int64
}

// NewBatchService creates the refresh scheduler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBatchService(refresher Refresher, cfg BatchConfig, logger zerolog.Logger) *BatchService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &BatchService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "batch-refresh").Logger(),
	}
}

// Serve implements suture.Service. Refresh failures are logged and retried
// on the next tick; they never end the service.
func (s *BatchService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Msg("batch refresh service starting")

	if s.config.OnStartup {
		s.run(ctx, "startup")
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("batch refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx, "scheduled")
		}
	}
}

func (s *BatchService) run(ctx context.Context, trigger string) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	log := s.logger.With().
		Str("trigger", trigger).
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Logger()

	start := time.Now()
	err := s.refresher.Refresh(ctx)
	switch {
	case err == nil:
		s.runs.Add(1)
		log.Info().Dur("duration", time.Since(start)).Msg("batch refresh complete")
	case errors.Is(err, recommend.ErrRefreshInProgress):
		log.Debug().Msg("batch refresh skipped, another run is active")
	case errors.Is(err, context.DeadlineExceeded):
		s.failures.Add(1)
		log.Warn().Err(err).Dur("timeout", s.config.Timeout).Msg("batch refresh did not finish in time")
	default:
		s.failures.Add(1)
		log.Error().Err(err).Msg("batch refresh failed")
	}
}

// Runs returns the number of completed refreshes.
func (s *BatchService) Runs() int64 {
	return s.runs.Load()
}

// Failures returns the number of refreshes that ended in an error.
func (s *BatchService) Failures() int64 {
	return s.failures.Load()
}

// String names the service in supervisor events.
func (s *BatchService) String() string {
	return "batch-refresh"
}
