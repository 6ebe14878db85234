// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
)

// TrendScorer scores recipes by recent activity volume:
//
//	trend(r) = min(recent non-dismissal events on r / distinct users in the log, 1)
//
// The denominator covers the whole log, so scores are comparable across
// recipes.
type TrendScorer struct {
	store  activity.Store
	window time.Duration
}

// NewTrendScorer creates a trend scorer over the given trailing window.
func NewTrendScorer(store activity.Store, window time.Duration) *TrendScorer {
	return &TrendScorer{store: store, window: window}
}

// Compute reads the log once and returns the trend table as of now.
func (s *TrendScorer) Compute(ctx context.Context, now time.Time) (*TrendTable, error) {
	events, err := activity.Collect(ctx, s.store, activity.Filter{})
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}
	return computeTrends(events, now, s.window), nil
}

// computeTrends builds a trend table from a snapshot of the log.
func computeTrends(events []activity.Event, now time.Time, window time.Duration) *TrendTable {
	since := now.Add(-window)
	users := make(map[int]struct{})
	recent := make(map[int]int)

	for i := range events {
		e := &events[i]
		users[e.UserID] = struct{}{}
		if e.Timestamp.Before(since) || !e.Type.Positive() {
			continue
		}
		recent[e.RecipeID]++
	}

	table := &TrendTable{
		Scores:     make(map[int]float64, len(recent)),
		Users:      len(users),
		ComputedAt: now,
	}
	if len(users) == 0 {
		return table
	}
	for recipeID, n := range recent {
		table.Scores[recipeID] = clamp01(float64(n) / float64(len(users)))
	}
	return table
}
