// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/recipehub/internal/catalog"
)

// recipeLookup resolves recipes by id. A false result means the recipe is
// not in the catalog; events on it still count toward activity totals.
type recipeLookup func(id int) (catalog.Recipe, bool)

// recipeResolver memoises catalog lookups for the duration of one
// computation. The first non-NotFound error is kept in err.
type recipeResolver struct {
	ctx      context.Context
	recipes  catalog.Recipes
	resolved map[int]*catalog.Recipe
	err      error
}

func newRecipeResolver(ctx context.Context, recipes catalog.Recipes) *recipeResolver {
	return &recipeResolver{
		ctx:      ctx,
		recipes:  recipes,
		resolved: make(map[int]*catalog.Recipe),
	}
}

func (r *recipeResolver) lookup(id int) (catalog.Recipe, bool) {
	if rec, ok := r.resolved[id]; ok {
		if rec == nil {
			return catalog.Recipe{}, false
		}
		return *rec, true
	}
	rec, err := r.recipes.Recipe(r.ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrRecipeNotFound) && r.err == nil {
			r.err = err
		}
		r.resolved[id] = nil
		return catalog.Recipe{}, false
	}
	r.resolved[id] = &rec
	return rec, true
}

// mapLookup resolves recipes from a preloaded catalog listing.
func mapLookup(recipes map[int]catalog.Recipe) recipeLookup {
	return func(id int) (catalog.Recipe, bool) {
		r, ok := recipes[id]
		return r, ok
	}
}

// indexRecipes keys a catalog listing by id.
func indexRecipes(list []catalog.Recipe) map[int]catalog.Recipe {
	m := make(map[int]catalog.Recipe, len(list))
	for i := range list {
		m[list[i].ID] = list[i]
	}
	return m
}
