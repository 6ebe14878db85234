// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package activity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const backendMemory = "memory"

// MemoryStore is an in-memory Store. It is safe for concurrent use:
// appends take the write lock, scans copy a snapshot under the read lock
// and invoke the callback without holding it.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
	byUser map[int][]int // user_id -> indexes into events
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[int][]int),
	}
}

// Append validates and stores an event.
func (s *MemoryStore) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		recordAppendFailure(backendMemory)
		return err
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event = event.clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		recordAppendFailure(backendMemory)
		return ErrStoreClosed
	}

	s.byUser[event.UserID] = append(s.byUser[event.UserID], len(s.events))
	s.events = append(s.events, event)
	recordAppend(backendMemory, event.Type)
	return nil
}

// Scan delivers matching events in timestamp order.
func (s *MemoryStore) Scan(ctx context.Context, filter Filter, fn func(Event) error) error {
	start := time.Now()
	defer func() {
		recordScanLatency(backendMemory, time.Since(start).Seconds())
	}()

	snapshot, err := s.snapshot(filter)
	if err != nil {
		return err
	}

	for i := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(snapshot[i]); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// snapshot copies the matching events under the read lock.
func (s *MemoryStore) snapshot(filter Filter) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var out []Event
	if filter.UserID > 0 {
		idx := s.byUser[filter.UserID]
		out = make([]Event, 0, len(idx))
		for _, i := range idx {
			if filter.Match(&s.events[i]) {
				out = append(out, s.events[i].clone())
			}
		}
	} else {
		out = make([]Event, 0, len(s.events))
		for i := range s.events {
			if filter.Match(&s.events[i]) {
				out = append(out, s.events[i].clone())
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// Len returns the number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Close marks the store closed. Further calls fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("close memory store: %w", ErrStoreClosed)
	}
	s.closed = true
	return nil
}
