// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Routes

	GET  /api/v1/health/live                            liveness probe
	GET  /api/v1/health/ready                           readiness checks
	GET  /api/v1/recommendations/user/{userID}?limit=   personalized recommendations
	GET  /api/v1/recommendations/similar/{recipeID}?limit=
	GET  /api/v1/recommendations/trending?limit=
	GET  /api/v1/recommendations/preferences/{userID}   preference profile summary
	POST /api/v1/recommendations/feedback               explicit feedback
	GET  /api/v1/recommendations/status                 engine counters
	GET  /api/v1/recommendations/config                 active engine configuration
	POST /api/v1/recommendations/refresh                start a batch refresh
	POST /api/v1/activity                               record an activity event
	GET  /metrics                                       Prometheus metrics

A missing limit selects the engine default. A limit that is not an integer,
or is outside [1, max], is rejected.

# Response Format

Every JSON response uses the same envelope:

	{
	  "status": "success",
	  "data": [...],
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Errors set status to "error" and fill "error" with a code and message.
Engine errors map to HTTP status codes by class:

	recommend.ErrInvalidArgument  400 INVALID_ARGUMENT
	recommend.ErrUnknownEntity    404 NOT_FOUND
	anything else                 500 INTERNAL_ERROR

# Middleware

Applied to every route, in order: request ID with logging context,
access logging, RealIP, Recoverer and CORS. API routes add per-IP rate
limiting (go-chi/httprate), security headers, Prometheus request metrics
and a per-request timeout. Recommendation responses are gzip-compressed
when the client accepts it.
*/
package api
