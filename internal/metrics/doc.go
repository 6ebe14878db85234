// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommend_requests_total: Engine operations (counter)
    Labels: operation, status
  - recommend_duration_seconds: Engine operation latency (histogram)
  - recommend_cold_starts_total: Trend-only cold start responses (counter)
  - recommend_collaborative_timeouts_total: Degraded collaborative runs (counter)
  - recommend_candidates: Candidates scored per request (histogram)
  - recommend_feedback_recorded_total: Ingested events (counter)
    Labels: source, type

Batch Metrics:
  - batch_refresh_duration_seconds (histogram)
  - batch_refresh_profiles (gauge)
  - batch_refresh_errors_total (counter)
  - batch_refresh_last_success_timestamp (gauge)

Package-level collectors in internal/activity and internal/cache cover
the activity log and cache hit rates.
*/
package metrics
