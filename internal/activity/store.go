// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package activity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("activity store is closed")

	// ErrInvalidEvent is returned when an event fails validation on append.
	ErrInvalidEvent = errors.New("invalid activity event")

	// ErrUnknownType is returned for activity types outside the closed set.
	ErrUnknownType = errors.New("unknown activity type")

	// ErrStop may be returned from a Scan callback to end iteration early.
	// Scan itself then returns nil.
	ErrStop = errors.New("stop scan")
)

// Store is the append-only activity log.
//
// Append may be called concurrently with Scan. Scan delivers events in
// ascending timestamp order from a consistent snapshot of the log.
type Store interface {
	// Append persists a new event. An empty ID is replaced with a UUID.
	Append(ctx context.Context, event Event) error

	// Scan calls fn for every event matching filter.
	Scan(ctx context.Context, filter Filter, fn func(Event) error) error

	// Close releases the store's resources.
	Close() error
}

// Filter restricts a Scan. Zero values match everything.
type Filter struct {
	// UserID restricts to one user when positive.
	UserID int

	// Since is an inclusive lower bound on Timestamp.
	Since time.Time

	// Until is an exclusive upper bound on Timestamp.
	Until time.Time

	// Types restricts to the given activity types when non-empty.
	Types []Type
}

// Match reports whether e passes the filter.
func (f *Filter) Match(e *Event) bool {
	if f.UserID > 0 && e.UserID != f.UserID {
		return false
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && !e.Timestamp.Before(f.Until) {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Collect drains a Scan into a slice.
func Collect(ctx context.Context, s Store, filter Filter) ([]Event, error) {
	var events []Event
	err := s.Scan(ctx, filter, func(e Event) error {
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
