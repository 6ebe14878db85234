// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
)

func TestComputeTrends(t *testing.T) {
	t.Parallel()

	window := 30 * day
	events := []activity.Event{
		ev(1, 1, activity.TypeCooked, 1*day),
		ev(1, 1, activity.TypeViewed, 2*day),
		ev(2, 1, activity.TypeFavorited, 3*day),
		ev(3, 2, activity.TypeCooked, 40*day), // outside the window
		ev(4, 3, activity.TypeDismissed, day), // negative
		ev(1, 4, activity.TypeViewed, window), // exactly on the boundary
		ev(2, 5, activity.TypeViewed, time.Hour),
		ev(2, 5, activity.TypeViewed, 2*time.Hour),
		ev(3, 5, activity.TypeViewed, 3*time.Hour),
		ev(4, 5, activity.TypeViewed, 4*time.Hour),
		ev(1, 5, activity.TypeViewed, 5*time.Hour),
	}

	table := computeTrends(events, testNow, window)

	if table.Users != 4 {
		t.Errorf("Users = %d, want 4", table.Users)
	}
	tests := []struct {
		recipeID int
		want     float64
	}{
		{1, 0.75},
		{2, 0},
		{3, 0},
		{4, 0.25},
		{5, 1}, // 5 events / 4 users, clamped
		{6, 0},
	}
	for _, tt := range tests {
		if got := table.Score(tt.recipeID); got != tt.want {
			t.Errorf("Score(%d) = %v, want %v", tt.recipeID, got, tt.want)
		}
	}
	if _, ok := table.Scores[2]; ok {
		t.Error("recipes without recent activity should be absent from the table")
	}
}

func TestComputeTrendsEmptyLog(t *testing.T) {
	t.Parallel()

	table := computeTrends(nil, testNow, 30*day)
	if table.Users != 0 || len(table.Scores) != 0 {
		t.Errorf("empty log gave %+v", table)
	}
	if table.Score(1) != 0 {
		t.Error("Score() on empty table should be 0")
	}
}

func TestTrendScorerCompute(t *testing.T) {
	t.Parallel()

	store := newTestStore(t,
		ev(1, 2, activity.TypeCooked, day),
		ev(2, 3, activity.TypeViewed, 60*day),
	)
	table, err := NewTrendScorer(store, 30*day).Compute(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := table.Score(2); got != 0.5 {
		t.Errorf("Score(2) = %v, want 0.5", got)
	}
	if got := table.Score(3); got != 0 {
		t.Errorf("Score(3) = %v, want 0", got)
	}
	if !table.ComputedAt.Equal(testNow) {
		t.Errorf("ComputedAt = %v, want %v", table.ComputedAt, testNow)
	}
}
