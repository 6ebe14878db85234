// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

// Package activity provides the append-only activity log that the
// recommendation core reads from and writes to.
//
// Two backends are available:
//
//   - MemoryStore: slice-backed log guarded by a sync.RWMutex (tests, small installs)
//   - BadgerStore: durable BadgerDB log with a per-user index
//
// Both implement Store. Readers always observe a consistent snapshot: the
// memory backend copies matching events under the read lock, the Badger
// backend iterates inside a read-only MVCC transaction.
package activity

import (
	"fmt"
	"strings"
	"time"
)

// Type classifies a user-recipe interaction.
type Type string

const (
	// TypeViewed is an implicit signal: the user opened the recipe.
	TypeViewed Type = "viewed"
	// TypeCooked means the user cooked the recipe.
	TypeCooked Type = "cooked"
	// TypeRated means the user rated the recipe.
	TypeRated Type = "rated"
	// TypeFavorited means the user added the recipe to favorites.
	TypeFavorited Type = "favorited"
	// TypeDismissed means the user dismissed the recipe from suggestions.
	TypeDismissed Type = "dismissed"
)

// AllTypes lists every valid activity type.
var AllTypes = []Type{TypeViewed, TypeCooked, TypeRated, TypeFavorited, TypeDismissed}

// Valid reports whether t is one of the closed set of activity types.
func (t Type) Valid() bool {
	switch t {
	case TypeViewed, TypeCooked, TypeRated, TypeFavorited, TypeDismissed:
		return true
	default:
		return false
	}
}

// Positive reports whether the activity expresses interest in the recipe.
// Only dismissals are negative.
func (t Type) Positive() bool {
	return t.Valid() && t != TypeDismissed
}

// String returns the wire name of the type.
func (t Type) String() string {
	return string(t)
}

// ParseType converts a wire name into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Source records which path wrote an event.
type Source string

const (
	// SourceActivity marks raw activity ingestion.
	SourceActivity Source = "activity"
	// SourceFeedback marks explicit feedback recorded by the user.
	SourceFeedback Source = "feedback"
)

// Event is a single immutable entry of the activity log.
type Event struct {
	// ID is assigned on append when empty.
	ID string `json:"id"`

	// UserID identifies the acting user.
	UserID int `json:"user_id"`

	// RecipeID identifies the recipe acted upon.
	RecipeID int `json:"recipe_id"`

	// Type classifies the interaction.
	Type Type `json:"type"`

	// Timestamp is when the interaction happened.
	Timestamp time.Time `json:"timestamp"`

	// Metadata carries free-form attributes (rating value, feedback kind, ...).
	Metadata map[string]string `json:"metadata,omitempty"`

	// Source records whether the event came from ingestion or feedback.
	Source Source `json:"source,omitempty"`
}

// Validate checks the fields every stored event must carry.
func (e *Event) Validate() error {
	switch {
	case e.UserID <= 0:
		return fmt.Errorf("%w: user_id must be positive, got %d", ErrInvalidEvent, e.UserID)
	case e.RecipeID <= 0:
		return fmt.Errorf("%w: recipe_id must be positive, got %d", ErrInvalidEvent, e.RecipeID)
	case !e.Type.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidEvent, ErrUnknownType, e.Type)
	case e.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	}
	return nil
}

// clone returns a copy that does not share the metadata map.
func (e Event) clone() Event {
	if e.Metadata != nil {
		md := make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			md[k] = v
		}
		e.Metadata = md
	}
	return e
}
