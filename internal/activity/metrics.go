// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the activity log
var (
	// appendsTotal counts appended events by backend and activity type.
	appendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_appends_total",
		Help: "Total number of events appended to the activity log",
	}, []string{"backend", "type"})

	// appendFailures counts failed appends by backend.
	appendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_append_failures_total",
		Help: "Total number of failed activity log appends",
	}, []string{"backend"})

	// scanLatency measures the time spent scanning the log.
	scanLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "activity_scan_latency_seconds",
		Help:    "Activity log scan latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"backend"})
)

// recordAppend increments the append counter for a backend.
func recordAppend(backend string, t Type) {
	appendsTotal.WithLabelValues(backend, string(t)).Inc()
}

// recordAppendFailure increments the append failure counter for a backend.
func recordAppendFailure(backend string) {
	appendFailures.WithLabelValues(backend).Inc()
}

// recordScanLatency observes a scan duration in seconds.
func recordScanLatency(backend string, seconds float64) {
	scanLatency.WithLabelValues(backend).Observe(seconds)
}
