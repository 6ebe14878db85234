// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/recipehub/internal/catalog"
)

// Feature key namespaces.
const (
	prefixIngredient = "ingredient:"
	prefixCategory   = "category:"
	prefixTag        = "tag:"
	prefixTime       = "time:"
	prefixDifficulty = "difficulty:"
)

// Time buckets.
const (
	BucketShort  = "short"
	BucketMedium = "medium"
	BucketLong   = "long"
)

// Vectorizer converts recipes into feature vectors. Results are memoised by
// recipe id and invalidated when the recipe's UpdatedAt changes.
// It is safe for concurrent use.
type Vectorizer struct {
	cfg FeatureConfig

	mu   sync.RWMutex
	memo map[int]memoEntry
}

type memoEntry struct {
	updatedAt time.Time
	vector    FeatureVector
}

// NewVectorizer creates a vectorizer.
func NewVectorizer(cfg FeatureConfig) *Vectorizer {
	return &Vectorizer{
		cfg:  cfg,
		memo: make(map[int]memoEntry),
	}
}

// Vector returns the feature vector for a recipe. The returned vector is
// shared and must not be modified.
//
//nolint:gocritic // hugeParam: recipe passed by value, mirrors catalog API
func (v *Vectorizer) Vector(recipe catalog.Recipe) FeatureVector {
	v.mu.RLock()
	e, ok := v.memo[recipe.ID]
	v.mu.RUnlock()
	if ok && e.updatedAt.Equal(recipe.UpdatedAt) {
		return e.vector
	}

	vec := v.compute(&recipe)

	v.mu.Lock()
	v.memo[recipe.ID] = memoEntry{updatedAt: recipe.UpdatedAt, vector: vec}
	v.mu.Unlock()
	return vec
}

// Len returns the number of memoised vectors.
func (v *Vectorizer) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.memo)
}

func (v *Vectorizer) compute(r *catalog.Recipe) FeatureVector {
	vec := make(FeatureVector, len(r.Ingredients)+len(r.Tags)+3)

	// Repeated ingredients or tags count once.
	for _, ing := range r.Ingredients {
		if k := normalizeFeature(ing); k != "" {
			vec[prefixIngredient+k] = v.cfg.IngredientWeight
		}
	}
	if k := normalizeFeature(r.Category); k != "" {
		vec[prefixCategory+k] = v.cfg.CategoryWeight
	}
	for _, tag := range r.Tags {
		if k := normalizeFeature(tag); k != "" {
			vec[prefixTag+k] = v.cfg.TagWeight
		}
	}
	if b := v.TimeBucket(r.CookTimeMinutes); b != "" {
		vec[prefixTime+b] = v.cfg.TimeWeight
	}
	if k := normalizeFeature(r.Difficulty); k != "" {
		vec[prefixDifficulty+k] = v.cfg.DifficultyWeight
	}
	return vec
}

// TimeBucket discretizes a cook time. Non-positive times have no bucket.
func (v *Vectorizer) TimeBucket(minutes int) string {
	switch {
	case minutes <= 0:
		return ""
	case minutes < v.cfg.ShortMaxMinutes:
		return BucketShort
	case minutes < v.cfg.MediumMaxMinutes:
		return BucketMedium
	default:
		return BucketLong
	}
}

func normalizeFeature(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
