// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/cache"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the blend of score components.
	Weights BlendWeights `koanf:"weights" json:"weights"`

	// ActivityWeights scales each activity type when building preference vectors.
	ActivityWeights ActivityWeights `koanf:"activity_weights" json:"activity_weights"`

	// Features defines the per-feature weights of recipe vectors.
	Features FeatureConfig `koanf:"features" json:"features"`

	// Thresholds decides which components are mentioned in a reason.
	Thresholds ThresholdConfig `koanf:"thresholds" json:"thresholds"`

	// Windows defines the trailing windows for trend and diversity.
	Windows WindowConfig `koanf:"windows" json:"windows"`

	// Limits contains result bounds and timeouts.
	Limits LimitsConfig `koanf:"limits" json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `koanf:"cache" json:"cache"`

	// ExcludeInteracted drops recipes the user already interacted with
	// positively from the recommendation candidates.
	ExcludeInteracted bool `koanf:"exclude_interacted" json:"exclude_interacted"`
}

// BlendWeights defines the relative contribution of each score component.
// The combined score is
//
//	clamp01(Collaborative*c + Content*x + Trend*t - Diversity*d)
//
// Weights are applied as given, not normalized.
type BlendWeights struct {
	Collaborative float64 `koanf:"collaborative" json:"collaborative"`
	Content       float64 `koanf:"content" json:"content"`
	Trend         float64 `koanf:"trend" json:"trend"`
	Diversity     float64 `koanf:"diversity" json:"diversity"`
}

// ActivityWeights scales each activity type's contribution to a preference
// vector. Negative values are allowed and subtract from the profile.
type ActivityWeights struct {
	Cooked    float64 `koanf:"cooked" json:"cooked"`
	Favorited float64 `koanf:"favorited" json:"favorited"`
	Rated     float64 `koanf:"rated" json:"rated"`
	Viewed    float64 `koanf:"viewed" json:"viewed"`
	Dismissed float64 `koanf:"dismissed" json:"dismissed"`
}

// Weight returns the weight for an activity type. Unknown types weigh 0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ActivityWeights) Weight(t activity.Type) float64 {
	switch t {
	case activity.TypeCooked:
		return w.Cooked
	case activity.TypeFavorited:
		return w.Favorited
	case activity.TypeRated:
		return w.Rated
	case activity.TypeViewed:
		return w.Viewed
	case activity.TypeDismissed:
		return w.Dismissed
	default:
		return 0
	}
}

// FeatureConfig contains parameters for recipe feature vectors.
type FeatureConfig struct {
	IngredientWeight float64 `koanf:"ingredient_weight" json:"ingredient_weight"`
	CategoryWeight   float64 `koanf:"category_weight" json:"category_weight"`
	TagWeight        float64 `koanf:"tag_weight" json:"tag_weight"`
	TimeWeight       float64 `koanf:"time_weight" json:"time_weight"`
	DifficultyWeight float64 `koanf:"difficulty_weight" json:"difficulty_weight"`

	// ShortMaxMinutes is the exclusive upper bound of the "short" bucket.
	ShortMaxMinutes int `koanf:"short_max_minutes" json:"short_max_minutes"`

	// MediumMaxMinutes is the exclusive upper bound of the "medium" bucket.
	// Anything at or above it is "long".
	MediumMaxMinutes int `koanf:"medium_max_minutes" json:"medium_max_minutes"`
}

// ThresholdConfig contains significance thresholds for explanations.
type ThresholdConfig struct {
	Content       float64 `koanf:"content" json:"content"`
	Collaborative float64 `koanf:"collaborative" json:"collaborative"`
	Trend         float64 `koanf:"trend" json:"trend"`
}

// WindowConfig contains the trailing windows read from the activity log.
type WindowConfig struct {
	// Trend is the window counted by the trend score.
	Trend time.Duration `koanf:"trend" json:"trend"`

	// Diversity is the window inspected by the diversity penalty.
	Diversity time.Duration `koanf:"diversity" json:"diversity"`

	// DiversityMinEvents is the activity count below which the penalty is 0.
	DiversityMinEvents int `koanf:"diversity_min_events" json:"diversity_min_events"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	DefaultRecommend int `koanf:"default_recommend" json:"default_recommend"`
	MaxRecommend     int `koanf:"max_recommend" json:"max_recommend"`
	DefaultSimilar   int `koanf:"default_similar" json:"default_similar"`
	MaxSimilar       int `koanf:"max_similar" json:"max_similar"`
	DefaultTrending  int `koanf:"default_trending" json:"default_trending"`
	MaxTrending      int `koanf:"max_trending" json:"max_trending"`

	// TopFavorites bounds the favorite ingredient/category/tag lists.
	TopFavorites int `koanf:"top_favorites" json:"top_favorites"`

	// CollaborativeTimeout bounds neighbour scoring per request.
	CollaborativeTimeout time.Duration `koanf:"collaborative_timeout" json:"collaborative_timeout"`

	// RefreshConcurrency bounds profile computation during batch refresh.
	RefreshConcurrency int `koanf:"refresh_concurrency" json:"refresh_concurrency"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Backend selects the store for all three caches: ttl, ristretto or noop.
	// The similar-recipes cache uses ristretto when Backend is ristretto.
	Backend cache.Type `koanf:"backend" json:"backend"`

	ProfileTTL  time.Duration `koanf:"profile_ttl" json:"profile_ttl"`
	TrendingTTL time.Duration `koanf:"trending_ttl" json:"trending_ttl"`
	SimilarTTL  time.Duration `koanf:"similar_ttl" json:"similar_ttl"`

	// SimilarMaxEntries bounds the ristretto-backed similar-recipes cache.
	SimilarMaxEntries int64 `koanf:"similar_max_entries" json:"similar_max_entries"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: BlendWeights{
			Collaborative: 0.3,
			Content:       0.5,
			Trend:         0.1,
			Diversity:     0.1,
		},
		ActivityWeights: ActivityWeights{
			Cooked:    3.0,
			Favorited: 3.0,
			Rated:     2.0,
			Viewed:    1.0,
			Dismissed: 0.0,
		},
		Features: FeatureConfig{
			IngredientWeight: 1.0,
			CategoryWeight:   2.0,
			TagWeight:        1.5,
			TimeWeight:       1.0,
			DifficultyWeight: 1.0,
			ShortMaxMinutes:  20,
			MediumMaxMinutes: 45,
		},
		Thresholds: ThresholdConfig{
			Content:       0.5,
			Collaborative: 0.5,
			Trend:         0.5,
		},
		Windows: WindowConfig{
			Trend:              30 * 24 * time.Hour,
			Diversity:          7 * 24 * time.Hour,
			DiversityMinEvents: 3,
		},
		Limits: LimitsConfig{
			DefaultRecommend:     10,
			MaxRecommend:         50,
			DefaultSimilar:       5,
			MaxSimilar:           20,
			DefaultTrending:      10,
			MaxTrending:          50,
			TopFavorites:         10,
			CollaborativeTimeout: 2 * time.Second,
			RefreshConcurrency:   4,
		},
		Cache: CacheConfig{
			Backend:           cache.TypeTTL,
			ProfileTTL:        time.Hour,
			TrendingTTL:       30 * time.Minute,
			SimilarTTL:        24 * time.Hour,
			SimilarMaxEntries: 10000,
		},
		ExcludeInteracted: true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"weights.collaborative": w.Collaborative,
		"weights.content":       w.Content,
		"weights.trend":         w.Trend,
		"weights.diversity":     w.Diversity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%s must be a finite non-negative number, got %f", name, v)
		}
	}

	aw := c.ActivityWeights
	for _, v := range []float64{aw.Cooked, aw.Favorited, aw.Rated, aw.Viewed, aw.Dismissed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("activity_weights must be finite, got %f", v)
		}
	}
	explicit := math.Min(aw.Cooked, math.Min(aw.Favorited, aw.Rated))
	if explicit <= aw.Viewed {
		return fmt.Errorf("activity_weights: cooked, favorited and rated must exceed viewed (%f <= %f)", explicit, aw.Viewed)
	}
	if aw.Viewed <= aw.Dismissed {
		return fmt.Errorf("activity_weights: viewed must exceed dismissed (%f <= %f)", aw.Viewed, aw.Dismissed)
	}

	f := c.Features
	for name, v := range map[string]float64{
		"features.ingredient_weight": f.IngredientWeight,
		"features.category_weight":   f.CategoryWeight,
		"features.tag_weight":        f.TagWeight,
		"features.time_weight":       f.TimeWeight,
		"features.difficulty_weight": f.DifficultyWeight,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%s must be a finite positive number, got %f", name, v)
		}
	}
	if f.ShortMaxMinutes <= 0 || f.MediumMaxMinutes <= f.ShortMaxMinutes {
		return fmt.Errorf("features: time buckets must satisfy 0 < short_max_minutes < medium_max_minutes, got %d, %d",
			f.ShortMaxMinutes, f.MediumMaxMinutes)
	}

	for name, v := range map[string]float64{
		"thresholds.content":       c.Thresholds.Content,
		"thresholds.collaborative": c.Thresholds.Collaborative,
		"thresholds.trend":         c.Thresholds.Trend,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, v)
		}
	}

	if c.Windows.Trend <= 0 {
		return fmt.Errorf("windows.trend must be positive, got %v", c.Windows.Trend)
	}
	if c.Windows.Diversity <= 0 {
		return fmt.Errorf("windows.diversity must be positive, got %v", c.Windows.Diversity)
	}
	if c.Windows.DiversityMinEvents < 0 {
		return fmt.Errorf("windows.diversity_min_events must be non-negative, got %d", c.Windows.DiversityMinEvents)
	}

	l := c.Limits
	for _, b := range []struct {
		name       string
		def, limit int
	}{
		{"recommend", l.DefaultRecommend, l.MaxRecommend},
		{"similar", l.DefaultSimilar, l.MaxSimilar},
		{"trending", l.DefaultTrending, l.MaxTrending},
	} {
		if b.def < 1 {
			return fmt.Errorf("limits.default_%s must be positive, got %d", b.name, b.def)
		}
		if b.limit < b.def {
			return fmt.Errorf("limits.max_%s must be >= limits.default_%s, got %d < %d", b.name, b.name, b.limit, b.def)
		}
	}
	if l.TopFavorites < 1 {
		return fmt.Errorf("limits.top_favorites must be positive, got %d", l.TopFavorites)
	}
	if l.CollaborativeTimeout <= 0 {
		return fmt.Errorf("limits.collaborative_timeout must be positive, got %v", l.CollaborativeTimeout)
	}
	if l.RefreshConcurrency < 1 {
		return fmt.Errorf("limits.refresh_concurrency must be positive, got %d", l.RefreshConcurrency)
	}

	switch c.Cache.Backend {
	case cache.TypeTTL, cache.TypeRistretto, cache.TypeNoop:
	default:
		return fmt.Errorf("cache.backend must be one of ttl, ristretto, noop, got %q", c.Cache.Backend)
	}
	if c.Cache.ProfileTTL <= 0 || c.Cache.TrendingTTL <= 0 || c.Cache.SimilarTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive, got profile=%v trending=%v similar=%v",
			c.Cache.ProfileTTL, c.Cache.TrendingTTL, c.Cache.SimilarTTL)
	}
	if c.Cache.Backend == cache.TypeRistretto && c.Cache.SimilarMaxEntries < 1 {
		return fmt.Errorf("cache.similar_max_entries must be positive, got %d", c.Cache.SimilarMaxEntries)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types (no pointers/slices)
	clone := *c
	return &clone
}
