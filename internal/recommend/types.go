// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
)

// FeedbackType is explicit feedback a user gives on a recipe.
type FeedbackType string

const (
	// FeedbackInterested records interest; stored as a rating event.
	FeedbackInterested FeedbackType = "interested"
	// FeedbackNotInterested hides the recipe; stored as a dismissal.
	FeedbackNotInterested FeedbackType = "not_interested"
	// FeedbackFavorited adds the recipe to favorites.
	FeedbackFavorited FeedbackType = "favorited"
	// FeedbackCooked records that the user cooked the recipe.
	FeedbackCooked FeedbackType = "cooked"
)

// AllFeedbackTypes lists every valid feedback type.
var AllFeedbackTypes = []FeedbackType{FeedbackInterested, FeedbackNotInterested, FeedbackFavorited, FeedbackCooked}

// ParseFeedbackType converts a wire name into a FeedbackType.
func ParseFeedbackType(s string) (FeedbackType, error) {
	ft := FeedbackType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ft.ActivityType(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidFeedbackType, s)
	}
	return ft, nil
}

// ActivityType returns the activity type the feedback is stored as.
func (f FeedbackType) ActivityType() (activity.Type, bool) {
	switch f {
	case FeedbackInterested:
		return activity.TypeRated, true
	case FeedbackNotInterested:
		return activity.TypeDismissed, true
	case FeedbackFavorited:
		return activity.TypeFavorited, true
	case FeedbackCooked:
		return activity.TypeCooked, true
	default:
		return "", false
	}
}

// Profile is a user's aggregated preference profile.
//
// Profiles are published to caches and shared between requests, so they
// must be treated as immutable once built.
type Profile struct {
	UserID int `json:"user_id"`

	// Vector is the weighted sum of interacted recipe vectors. It holds only
	// positive weights and is empty for cold-start users.
	Vector FeatureVector `json:"-"`

	FavoriteIngredients      []string  `json:"favorite_ingredients"`
	FavoriteCategories       []string  `json:"favorite_categories"`
	FavoriteTags             []string  `json:"favorite_tags"`
	CookingFrequencyPerMonth float64   `json:"cooking_frequency_per_month"`
	AverageCookTime          float64   `json:"average_cook_time"`
	PreferredDifficulty      string    `json:"preferred_difficulty"`
	TotalActivities          int       `json:"total_activities"`
	ComputedAt               time.Time `json:"computed_at"`

	// latest activity type per recipe, used for candidate exclusion
	lastActivity map[int]activity.Type
}

// ColdStart reports whether the profile carries no preference signal.
func (p *Profile) ColdStart() bool {
	return len(p.Vector) == 0
}

// Dismissed reports whether the user's latest activity on the recipe was
// a dismissal.
func (p *Profile) Dismissed(recipeID int) bool {
	t, ok := p.lastActivity[recipeID]
	return ok && t == activity.TypeDismissed
}

// Interacted reports whether the user's latest activity on the recipe was
// positive.
func (p *Profile) Interacted(recipeID int) bool {
	t, ok := p.lastActivity[recipeID]
	return ok && t.Positive()
}

// ProfileSummary is the serializable part of a Profile.
type ProfileSummary struct {
	UserID                   int       `json:"user_id"`
	FavoriteIngredients      []string  `json:"favorite_ingredients"`
	FavoriteCategories       []string  `json:"favorite_categories"`
	FavoriteTags             []string  `json:"favorite_tags"`
	CookingFrequencyPerMonth float64   `json:"cooking_frequency_per_month"`
	AverageCookTime          float64   `json:"average_cook_time"`
	PreferredDifficulty      string    `json:"preferred_difficulty"`
	TotalActivities          int       `json:"total_activities"`
	ComputedAt               time.Time `json:"computed_at"`
}

// Summary returns a copy of the profile without the raw vector.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		UserID:                   p.UserID,
		FavoriteIngredients:      append([]string{}, p.FavoriteIngredients...),
		FavoriteCategories:       append([]string{}, p.FavoriteCategories...),
		FavoriteTags:             append([]string{}, p.FavoriteTags...),
		CookingFrequencyPerMonth: p.CookingFrequencyPerMonth,
		AverageCookTime:          p.AverageCookTime,
		PreferredDifficulty:      p.PreferredDifficulty,
		TotalActivities:          p.TotalActivities,
		ComputedAt:               p.ComputedAt,
	}
}

// Components holds the individual score components of a result, each in [0, 1].
type Components struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
	Trend         float64 `json:"trend"`
	Diversity     float64 `json:"diversity"`
}

// Result is one ranked recipe with its explanation.
type Result struct {
	RecipeID        int         `json:"recipe_id"`
	Title           string      `json:"title"`
	Score           float64     `json:"score"`
	Reason          []string    `json:"reason"`
	MatchPercentage int         `json:"match_percentage"`
	Components      *Components `json:"components,omitempty"`
}

// TrendTable holds trend scores for every recipe with recent activity.
// Recipes absent from Scores have a trend of 0.
type TrendTable struct {
	Scores     map[int]float64 `json:"scores"`
	Users      int             `json:"users"`
	ComputedAt time.Time       `json:"computed_at"`
}

// Score returns the trend score of a recipe.
func (t *TrendTable) Score(recipeID int) float64 {
	return t.Scores[recipeID]
}

// Stats reports engine counters.
type Stats struct {
	Requests              int64     `json:"requests"`
	Errors                int64     `json:"errors"`
	ColdStarts            int64     `json:"cold_starts"`
	CollaborativeTimeouts int64     `json:"collaborative_timeouts"`
	EventsRecorded        int64     `json:"events_recorded"`
	LastRefreshAt         time.Time `json:"last_refresh_at"`
	LastRefreshDurationMS int64     `json:"last_refresh_duration_ms"`
	LastRefreshProfiles   int       `json:"last_refresh_profiles"`
}
