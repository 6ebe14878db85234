// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/recipehub/internal/activity"
)

func TestParseFeedbackType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		want     FeedbackType
		wantType activity.Type
		wantErr  bool
	}{
		{"interested", FeedbackInterested, activity.TypeRated, false},
		{"not_interested", FeedbackNotInterested, activity.TypeDismissed, false},
		{" Favorited ", FeedbackFavorited, activity.TypeFavorited, false},
		{"COOKED", FeedbackCooked, activity.TypeCooked, false},
		{"loved", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFeedbackType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFeedbackType) || !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseFeedbackType(%q) error = %v, want ErrInvalidFeedbackType", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFeedbackType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFeedbackType(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if at, ok := got.ActivityType(); !ok || at != tt.wantType {
				t.Errorf("ActivityType() = %q, %v, want %q", at, ok, tt.wantType)
			}
		})
	}
}

func TestFeedbackRecorderFeedback(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var invalidated []int
	f := NewFeedbackRecorder(store, newTestCatalog(t), newTestCatalog(t), func(userID int) {
		invalidated = append(invalidated, userID)
	})

	err := f.Feedback(context.Background(), 1, 2, FeedbackNotInterested, map[string]string{"note": "too spicy"}, testNow)
	if err != nil {
		t.Fatalf("Feedback() error = %v", err)
	}

	events, err := activity.Collect(context.Background(), store, activity.Filter{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.UserID != 1 || e.RecipeID != 2 || e.Type != activity.TypeDismissed {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Source != activity.SourceFeedback {
		t.Errorf("Source = %q, want feedback", e.Source)
	}
	if e.Metadata[MetadataFeedback] != string(FeedbackNotInterested) || e.Metadata["note"] != "too spicy" {
		t.Errorf("Metadata = %v", e.Metadata)
	}
	if !e.Timestamp.Equal(testNow) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, testNow)
	}
	if e.ID == "" {
		t.Error("event should have an id")
	}
	if len(invalidated) != 1 || invalidated[0] != 1 {
		t.Errorf("onAppend calls = %v, want [1]", invalidated)
	}
}

func TestFeedbackRecorderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   int
		recipeID int
		feedback FeedbackType
		wantErr  error
	}{
		{"unknown user", 42, 1, FeedbackCooked, ErrUnknownUserOrRecipe},
		{"unknown recipe", 1, 99, FeedbackCooked, ErrUnknownUserOrRecipe},
		{"invalid feedback", 1, 1, FeedbackType("meh"), ErrInvalidFeedbackType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newTestStore(t)
			called := false
			f := NewFeedbackRecorder(store, newTestCatalog(t), newTestCatalog(t), func(int) { called = true })

			err := f.Feedback(context.Background(), tt.userID, tt.recipeID, tt.feedback, nil, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Feedback() error = %v, want %v", err, tt.wantErr)
			}
			if store.Len() != 0 {
				t.Error("failed feedback must not append")
			}
			if called {
				t.Error("failed feedback must not invalidate")
			}
		})
	}
}

func TestFeedbackRecorderRecordActivity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	f := NewFeedbackRecorder(store, newTestCatalog(t), newTestCatalog(t), nil)

	if err := f.RecordActivity(context.Background(), 3, 4, activity.TypeViewed, nil, testNow); err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	events, err := activity.Collect(context.Background(), store, activity.Filter{UserID: 3})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(events) != 1 || events[0].Source != activity.SourceActivity || events[0].Type != activity.TypeViewed {
		t.Errorf("unexpected events %+v", events)
	}

	err = f.RecordActivity(context.Background(), 3, 4, activity.Type("liked"), nil, testNow)
	if !errors.Is(err, ErrInvalidActivityType) || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RecordActivity(liked) error = %v, want ErrInvalidActivityType", err)
	}

	err = f.RecordActivity(context.Background(), 3, 4, activity.TypeCooked, nil, testNow.AddDate(-1, 0, 0))
	if err != nil {
		t.Errorf("RecordActivity() with an old timestamp error = %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrInvalidFeedbackType, ErrInvalidActivityType, ErrInvalidLimit} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v should wrap ErrInvalidArgument", err)
		}
		if errors.Is(err, ErrUnknownEntity) {
			t.Errorf("%v should not wrap ErrUnknownEntity", err)
		}
	}
	if !errors.Is(ErrUnknownUserOrRecipe, ErrUnknownEntity) {
		t.Error("ErrUnknownUserOrRecipe should wrap ErrUnknownEntity")
	}
}
