// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/catalog"
	"github.com/tomtom215/recipehub/internal/logging"
)

// testNow is the fixed "current time" of the fixtures.
var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// testRecipes is a small catalog covering every feature family.
func testRecipes() []catalog.Recipe {
	return []catalog.Recipe{
		{ID: 1, Title: "Chicken Curry", Category: "curry", Tags: []string{"spicy", "dinner"},
			Ingredients: []string{"chicken", "curry paste", "coconut milk", "rice"}, CookTimeMinutes: 40, Difficulty: "medium"},
		{ID: 2, Title: "Chickpea Curry", Category: "curry", Tags: []string{"spicy", "vegan"},
			Ingredients: []string{"chickpeas", "curry paste", "coconut milk", "rice"}, CookTimeMinutes: 35, Difficulty: "easy"},
		{ID: 3, Title: "Greek Salad", Category: "salad", Tags: []string{"fresh", "vegetarian"},
			Ingredients: []string{"tomato", "cucumber", "feta", "olives"}, CookTimeMinutes: 10, Difficulty: "easy"},
		{ID: 4, Title: "Caesar Salad", Category: "salad", Tags: []string{"fresh"},
			Ingredients: []string{"lettuce", "parmesan", "croutons", "chicken"}, CookTimeMinutes: 15, Difficulty: "easy"},
		{ID: 5, Title: "Beef Stew", Category: "stew", Tags: []string{"comfort", "dinner"},
			Ingredients: []string{"beef", "carrot", "potato", "onion"}, CookTimeMinutes: 120, Difficulty: "hard"},
		{ID: 6, Title: "Pancakes", Category: "breakfast", Tags: []string{"sweet"},
			Ingredients: []string{"flour", "egg", "milk"}, CookTimeMinutes: 20, Difficulty: "easy"},
	}
}

// newTestCatalog returns a catalog with testRecipes and users 1 through 5.
func newTestCatalog(t *testing.T) *catalog.Memory {
	t.Helper()
	c := catalog.NewMemory()
	if err := c.Put(testRecipes()...); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	c.AddUsers(1, 2, 3, 4, 5)
	return c
}

// ev builds an event at testNow minus ago.
func ev(userID, recipeID int, typ activity.Type, ago time.Duration) activity.Event {
	return activity.Event{
		UserID:    userID,
		RecipeID:  recipeID,
		Type:      typ,
		Timestamp: testNow.Add(-ago),
	}
}

// newTestStore returns a memory store holding events.
func newTestStore(t *testing.T, events ...activity.Event) *activity.MemoryStore {
	t.Helper()
	s := activity.NewMemoryStore()
	for _, e := range events {
		if err := s.Append(context.Background(), e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newTestEngine wires an engine over the fixtures with caching disabled.
func newTestEngine(t *testing.T, cfg *Config, store activity.Store, cat *catalog.Memory, clock *testClock) *Engine {
	t.Helper()
	return newTestEngineWithCaches(t, cfg, store, cat, clock, NoopCaches())
}

// newTestEngineWithCaches wires an engine over the fixtures with the given caches.
func newTestEngineWithCaches(t *testing.T, cfg *Config, store activity.Store, cat *catalog.Memory, clock *testClock, caches *Caches) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e, err := NewEngine(cfg, Dependencies{
		Store:   store,
		Recipes: cat,
		Users:   cat,
		Caches:  caches,
		Clock:   clock.Now,
	}, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(caches.Close)
	return e
}

// resultIDs extracts recipe ids in order.
func resultIDs(results []Result) []int {
	ids := make([]int, len(results))
	for i := range results {
		ids[i] = results[i].RecipeID
	}
	return ids
}

func containsID(results []Result, id int) bool {
	for i := range results {
		if results[i].RecipeID == id {
			return true
		}
	}
	return false
}
