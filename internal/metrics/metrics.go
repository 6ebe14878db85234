// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - API endpoint latency and throughput
// - Recommendation operations (latency, cold starts, degraded scoring)
// - Feedback and activity ingestion
// - Nightly batch refresh

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Engine Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation engine operations",
		},
		[]string{"operation", "status"}, // status: "ok", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation engine operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	RecommendColdStarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cold_starts_total",
			Help: "Recommendations served from the trend-only cold start path",
		},
	)

	RecommendCollaborativeTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_collaborative_timeouts_total",
			Help: "Collaborative scoring runs that hit their deadline and returned partial scores",
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidate recipes scored per recommendation request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		},
	)

	// Feedback / Activity Ingestion Metrics
	FeedbackRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_feedback_recorded_total",
			Help: "Total number of feedback and activity events recorded",
		},
		[]string{"source", "type"},
	)

	// Batch Refresh Metrics
	BatchRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batch_refresh_duration_seconds",
			Help:    "Duration of the batch profile and trend refresh in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	BatchRefreshProfiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "batch_refresh_profiles",
			Help: "Number of profiles published by the last batch refresh",
		},
	)

	BatchRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batch_refresh_errors_total",
			Help: "Total number of failed batch refreshes",
		},
	)

	BatchRefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "batch_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful batch refresh",
		},
	)

	// Cache Metrics
	CacheExpiredEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_expired_evictions_total",
			Help: "Expired cache entries removed by the periodic sweep",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendOperation records one engine operation and its outcome.
func RecordRecommendOperation(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RecommendRequests.WithLabelValues(operation, status).Inc()
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFeedback counts a recorded event by source and activity type.
func RecordFeedback(source, activityType string) {
	FeedbackRecorded.WithLabelValues(source, activityType).Inc()
}

// RecordBatchRefresh records a batch refresh run.
func RecordBatchRefresh(duration time.Duration, profiles int, err error) {
	BatchRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		BatchRefreshErrors.Inc()
		return
	}
	BatchRefreshProfiles.Set(float64(profiles))
	BatchRefreshLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordCacheCleanup counts entries removed by an expiry sweep.
func RecordCacheCleanup(removed int) {
	if removed > 0 {
		CacheExpiredEvictions.Add(float64(removed))
	}
}
