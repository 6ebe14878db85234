// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// Memory is an in-memory catalog implementing both Recipes and Users.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	recipes map[int]Recipe
	users   map[int]struct{}
}

// NewMemory creates an empty catalog.
func NewMemory() *Memory {
	return &Memory{
		recipes: make(map[int]Recipe),
		users:   make(map[int]struct{}),
	}
}

// Put inserts or replaces recipes.
func (m *Memory) Put(recipes ...Recipe) error {
	for i := range recipes {
		if recipes[i].ID <= 0 {
			return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidRecipe, recipes[i].ID)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range recipes {
		r := recipes[i]
		r.Tags = append([]string(nil), r.Tags...)
		r.Ingredients = append([]string(nil), r.Ingredients...)
		m.recipes[r.ID] = r
	}
	return nil
}

// AddUsers registers user ids in the directory.
func (m *Memory) AddUsers(ids ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if id > 0 {
			m.users[id] = struct{}{}
		}
	}
}

// Recipe implements Recipes.
func (m *Memory) Recipe(ctx context.Context, id int) (Recipe, error) {
	if err := ctx.Err(); err != nil {
		return Recipe{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.recipes[id]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %d", ErrRecipeNotFound, id)
	}
	return r, nil
}

// List implements Recipes.
func (m *Memory) List(ctx context.Context) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UserExists implements Users.
func (m *Memory) UserExists(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[id]
	return ok, nil
}

// Len returns the number of recipes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recipes)
}

// fileFormat is the on-disk layout read by LoadFile.
type fileFormat struct {
	Recipes []Recipe `json:"recipes"`
	Users   []int    `json:"users"`
}

// LoadFile reads a JSON catalog of the form {"recipes": [...], "users": [...]}.
// Users referenced nowhere else are still registered so they can record
// their first activity.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Load(data)
}

// Load decodes a JSON catalog document.
func Load(data []byte) (*Memory, error) {
	var doc fileFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[int]struct{}, len(doc.Recipes))
	for i := range doc.Recipes {
		r := &doc.Recipes[i]
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidRecipe, r.ID)
		}
		seen[r.ID] = struct{}{}
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: recipe %d has no title", ErrInvalidRecipe, r.ID)
		}
	}

	m := NewMemory()
	if err := m.Put(doc.Recipes...); err != nil {
		return nil, err
	}
	m.AddUsers(doc.Users...)
	return m, nil
}
