// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/catalog"
)

// ProfileBuilder aggregates a user's activity into a preference profile.
type ProfileBuilder struct {
	store      activity.Store
	recipes    catalog.Recipes
	vectorizer *Vectorizer
	weights    ActivityWeights
	topN       int
}

// NewProfileBuilder creates a profile builder.
//
//nolint:gocritic // hugeParam: config section passed by value
func NewProfileBuilder(store activity.Store, recipes catalog.Recipes, vectorizer *Vectorizer, weights ActivityWeights, topN int) *ProfileBuilder {
	return &ProfileBuilder{
		store:      store,
		recipes:    recipes,
		vectorizer: vectorizer,
		weights:    weights,
		topN:       topN,
	}
}

// Build reads the user's full history and computes the profile.
func (b *ProfileBuilder) Build(ctx context.Context, userID int, now time.Time) (*Profile, error) {
	events, err := activity.Collect(ctx, b.store, activity.Filter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("read activity for user %d: %w", userID, err)
	}

	res := newRecipeResolver(ctx, b.recipes)
	p := b.fromEvents(userID, events, res.lookup, now)
	if res.err != nil {
		return nil, fmt.Errorf("resolve recipes for user %d: %w", userID, res.err)
	}
	return p, nil
}

// fromEvents builds a profile from the user's events in timestamp order.
func (b *ProfileBuilder) fromEvents(userID int, events []activity.Event, lookup recipeLookup, now time.Time) *Profile {
	p := &Profile{
		UserID:              userID,
		Vector:              FeatureVector{},
		FavoriteIngredients: []string{},
		FavoriteCategories:  []string{},
		FavoriteTags:        []string{},
		TotalActivities:     len(events),
		ComputedAt:          now,
		lastActivity:        make(map[int]activity.Type),
	}
	if len(events) == 0 {
		return p
	}

	ingredients := make(map[string]int)
	categories := make(map[string]int)
	tags := make(map[string]int)
	difficulties := make(map[string]int)
	months := make(map[monthKey]struct{})
	cookTimes := make(map[int]int) // positively interacted recipe -> minutes
	cooked := 0

	for i := range events {
		e := &events[i]
		p.lastActivity[e.RecipeID] = e.Type
		ts := e.Timestamp.UTC()
		months[monthKey{ts.Year(), ts.Month()}] = struct{}{}
		if e.Type == activity.TypeCooked {
			cooked++
		}

		r, ok := lookup(e.RecipeID)
		if !ok {
			continue
		}
		if w := b.weights.Weight(e.Type); w != 0 {
			p.Vector.AddScaled(b.vectorizer.Vector(r), w)
		}
		if !e.Type.Positive() {
			continue
		}

		cookTimes[r.ID] = r.CookTimeMinutes
		countDistinct(ingredients, r.Ingredients)
		countDistinct(tags, r.Tags)
		if k := normalizeFeature(r.Category); k != "" {
			categories[k]++
		}
		if k := normalizeFeature(r.Difficulty); k != "" {
			difficulties[k]++
		}
	}

	p.Vector.DropNonPositive()

	p.FavoriteIngredients = topByCount(ingredients, b.topN)
	p.FavoriteCategories = topByCount(categories, b.topN)
	p.FavoriteTags = topByCount(tags, b.topN)
	if top := topByCount(difficulties, 1); len(top) == 1 {
		p.PreferredDifficulty = top[0]
	}
	p.CookingFrequencyPerMonth = float64(cooked) / float64(len(months))
	p.AverageCookTime = meanCookTime(cookTimes)

	return p
}

type monthKey struct {
	year  int
	month time.Month
}

// countDistinct counts each normalized value once per call.
func countDistinct(counts map[string]int, values []string) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		k := normalizeFeature(v)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		counts[k]++
	}
}

// topByCount returns up to n keys ordered by count desc, then name asc.
func topByCount(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// meanCookTime averages the positive cook times of distinct recipes.
func meanCookTime(cookTimes map[int]int) float64 {
	ids := make([]int, 0, len(cookTimes))
	for id, minutes := range cookTimes {
		if minutes > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0
	}
	sort.Ints(ids)
	var total float64
	for _, id := range ids {
		total += float64(cookTimes[id])
	}
	return total / float64(len(ids))
}
