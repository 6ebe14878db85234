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
	"github.com/tomtom215/recipehub/internal/catalog"
)

// DiversityPenalty measures how concentrated a user's recent activity is
// in each category. The penalty for a candidate is the share of the user's
// window events whose recipe has the candidate's category.
type DiversityPenalty struct {
	store     activity.Store
	recipes   catalog.Recipes
	window    time.Duration
	minEvents int
}

// NewDiversityPenalty creates a diversity penalty over the given window.
// Windows with fewer than minEvents events produce no penalty.
func NewDiversityPenalty(store activity.Store, recipes catalog.Recipes, window time.Duration, minEvents int) *DiversityPenalty {
	return &DiversityPenalty{
		store:     store,
		recipes:   recipes,
		window:    window,
		minEvents: minEvents,
	}
}

// Penalties returns the penalty for every candidate.
func (d *DiversityPenalty) Penalties(ctx context.Context, userID int, now time.Time, candidates []catalog.Recipe) (map[int]float64, error) {
	shares, err := d.CategoryShares(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(candidates))
	for i := range candidates {
		out[candidates[i].ID] = shares[normalizeFeature(candidates[i].Category)]
	}
	return out, nil
}

// CategoryShares returns each category's share of the user's window events.
func (d *DiversityPenalty) CategoryShares(ctx context.Context, userID int, now time.Time) (map[string]float64, error) {
	events, err := activity.Collect(ctx, d.store, activity.Filter{
		UserID: userID,
		Since:  now.Add(-d.window),
	})
	if err != nil {
		return nil, fmt.Errorf("read recent activity for user %d: %w", userID, err)
	}

	res := newRecipeResolver(ctx, d.recipes)
	shares := categoryShares(events, res.lookup, d.minEvents)
	if res.err != nil {
		return nil, fmt.Errorf("resolve recipes for user %d: %w", userID, res.err)
	}
	return shares, nil
}

// categoryShares computes count(events in category) / count(events).
// Events on recipes missing from the catalog count in the denominator only.
func categoryShares(events []activity.Event, lookup recipeLookup, minEvents int) map[string]float64 {
	shares := make(map[string]float64)
	if len(events) == 0 || len(events) < minEvents {
		return shares
	}

	counts := make(map[string]int)
	for i := range events {
		r, ok := lookup(events[i].RecipeID)
		if !ok {
			continue
		}
		if k := normalizeFeature(r.Category); k != "" {
			counts[k]++
		}
	}
	for k, n := range counts {
		shares[k] = float64(n) / float64(len(events))
	}
	return shares
}
