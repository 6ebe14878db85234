// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

// Package catalog exposes the read-only recipe catalog and user directory
// that the recommendation engine consults.
//
// The catalog is owned elsewhere in the application; this package only
// defines the narrow interfaces the engine needs plus an in-memory
// implementation that can be populated from a JSON file.
package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrRecipeNotFound is returned when a recipe id is not in the catalog.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrInvalidRecipe is returned when a recipe fails validation on load.
	ErrInvalidRecipe = errors.New("invalid recipe")
)

// Recipe holds the static attributes the recommender reads.
type Recipe struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags,omitempty"`
	Ingredients     []string  `json:"ingredients,omitempty"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Difficulty      string    `json:"difficulty,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Recipes is the read side of the recipe catalog.
type Recipes interface {
	// Recipe returns a single recipe or ErrRecipeNotFound.
	Recipe(ctx context.Context, id int) (Recipe, error)

	// List returns every recipe ordered by id.
	List(ctx context.Context) ([]Recipe, error)
}

// Users is the user directory.
type Users interface {
	// UserExists reports whether the user id is known.
	UserExists(ctx context.Context, id int) (bool, error)
}
