// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/catalog"
	"github.com/tomtom215/recipehub/internal/metrics"
)

// MetadataFeedback is the metadata key recording the feedback kind on
// events written by the FeedbackRecorder.
const MetadataFeedback = "feedback"

// FeedbackRecorder writes explicit feedback and raw activity into the
// activity log after checking that the user and recipe exist.
type FeedbackRecorder struct {
	store   activity.Store
	recipes catalog.Recipes
	users   catalog.Users

	// onAppend runs after every successful append, with the user id.
	onAppend func(userID int)
}

// NewFeedbackRecorder creates a feedback recorder. onAppend may be nil.
func NewFeedbackRecorder(store activity.Store, recipes catalog.Recipes, users catalog.Users, onAppend func(userID int)) *FeedbackRecorder {
	if onAppend == nil {
		onAppend = func(int) {}
	}
	return &FeedbackRecorder{
		store:    store,
		recipes:  recipes,
		users:    users,
		onAppend: onAppend,
	}
}

// Feedback validates and records explicit feedback.
func (f *FeedbackRecorder) Feedback(ctx context.Context, userID, recipeID int, feedback FeedbackType, metadata map[string]string, at time.Time) error {
	t, ok := feedback.ActivityType()
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFeedbackType, feedback)
	}

	md := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		md[k] = v
	}
	md[MetadataFeedback] = string(feedback)

	return f.append(ctx, activity.Event{
		UserID:    userID,
		RecipeID:  recipeID,
		Type:      t,
		Timestamp: at,
		Metadata:  md,
		Source:    activity.SourceFeedback,
	})
}

// RecordActivity validates and records a raw activity event.
func (f *FeedbackRecorder) RecordActivity(ctx context.Context, userID, recipeID int, t activity.Type, metadata map[string]string, at time.Time) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivityType, t)
	}

	var md map[string]string
	if len(metadata) > 0 {
		md = make(map[string]string, len(metadata))
		for k, v := range metadata {
			md[k] = v
		}
	}

	return f.append(ctx, activity.Event{
		UserID:    userID,
		RecipeID:  recipeID,
		Type:      t,
		Timestamp: at,
		Metadata:  md,
		Source:    activity.SourceActivity,
	})
}

//nolint:gocritic // hugeParam: event passed by value into the store
func (f *FeedbackRecorder) append(ctx context.Context, event activity.Event) error {
	if err := f.checkExists(ctx, event.UserID, event.RecipeID); err != nil {
		return err
	}
	if err := f.store.Append(ctx, event); err != nil {
		if errors.Is(err, activity.ErrInvalidEvent) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return fmt.Errorf("append activity: %w", err)
	}
	metrics.RecordFeedback(string(event.Source), string(event.Type))
	f.onAppend(event.UserID)
	return nil
}

// checkExists delegates existence checks to the user directory and catalog.
func (f *FeedbackRecorder) checkExists(ctx context.Context, userID, recipeID int) error {
	ok, err := f.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return fmt.Errorf("%w: user %d", ErrUnknownUserOrRecipe, userID)
	}

	if _, err := f.recipes.Recipe(ctx, recipeID); err != nil {
		if errors.Is(err, catalog.ErrRecipeNotFound) {
			return fmt.Errorf("%w: recipe %d", ErrUnknownUserOrRecipe, recipeID)
		}
		return fmt.Errorf("check recipe %d: %w", recipeID, err)
	}
	return nil
}
