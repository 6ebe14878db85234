// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recipehub/internal/logging"
	"github.com/tomtom215/recipehub/internal/recommend"
)

type fakeRefresher struct {
	mu      sync.Mutex
	calls   int
	err     error
	delay   time.Duration
	corrIDs []string
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.corrIDs = append(f.corrIDs, logging.CorrelationIDFromContext(ctx))
	delay, err := f.delay, f.err
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

func (f *fakeRefresher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func serveFor(t *testing.T, svc *BatchService, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestNewBatchServiceDefaults(t *testing.T) {
	svc := NewBatchService(&fakeRefresher{}, BatchConfig{}, zerolog.Nop())
	if svc.config.Interval != 24*time.Hour {
		t.Errorf("Interval = %v, want 24h", svc.config.Interval)
	}
	if svc.config.Timeout != 10*time.Minute {
		t.Errorf("Timeout = %v, want 10m", svc.config.Timeout)
	}
	if svc.String() != "batch-refresh" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestBatchServiceStartup(t *testing.T) {
	tests := []struct {
		name      string
		onStartup bool
		want      int
	}{
		{"refreshes on startup", true, 1},
		{"waits for first tick", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := &fakeRefresher{}
			svc := NewBatchService(ref, BatchConfig{Interval: time.Hour, OnStartup: tt.onStartup}, zerolog.Nop())
			serveFor(t, svc, 100*time.Millisecond)
			if got := ref.Calls(); got != tt.want {
				t.Errorf("Refresh calls = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBatchServiceSchedule(t *testing.T) {
	ref := &fakeRefresher{}
	svc := NewBatchService(ref, BatchConfig{Interval: 40 * time.Millisecond}, zerolog.Nop())
	serveFor(t, svc, 150*time.Millisecond)

	if got := ref.Calls(); got < 2 {
		t.Errorf("Refresh calls = %d, want at least 2", got)
	}
	if svc.Runs() != int64(ref.Calls()) {
		t.Errorf("Runs() = %d, want %d", svc.Runs(), ref.Calls())
	}

	ref.mu.Lock()
	defer ref.mu.Unlock()
	seen := make(map[string]bool)
	for _, id := range ref.corrIDs {
		if id == "" {
			t.Error("refresh ran without a correlation ID")
		}
		if seen[id] {
			t.Errorf("correlation ID %q reused", id)
		}
		seen[id] = true
	}
}

func TestBatchServiceErrors(t *testing.T) {
	tests := []struct {
		name         string
		refresher    *fakeRefresher
		timeout      time.Duration
		wantFailures int64
	}{
		{"failure keeps service alive", &fakeRefresher{err: errors.New("store unavailable")}, time.Second, 1},
		{"overlap is skipped", &fakeRefresher{err: recommend.ErrRefreshInProgress}, time.Second, 0},
		{"timeout counts as failure", &fakeRefresher{delay: time.Second}, 20 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBatchService(tt.refresher, BatchConfig{
				Interval:  time.Hour,
				OnStartup: true,
				Timeout:   tt.timeout,
			}, zerolog.Nop())
			serveFor(t, svc, 150*time.Millisecond)

			if got := svc.Failures(); got != tt.wantFailures {
				t.Errorf("Failures() = %d, want %d", got, tt.wantFailures)
			}
			if svc.Runs() != 0 {
				t.Errorf("Runs() = %d, want 0", svc.Runs())
			}
		})
	}
}
