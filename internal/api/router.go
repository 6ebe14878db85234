// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a router. A nil config uses DefaultMiddlewareConfig.
func NewRouter(handler *Handler, config *MiddlewareConfig) *Router {
	return &Router{
		handler:    handler,
		middleware: NewMiddleware(config),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())
	r.Use(AccessLog())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.middleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Use(chimiddleware.Compress(5, "application/json"))
		r.Use(router.middleware.Timeout())

		r.Get("/user/{userID}", router.handler.GetRecommendations)
		r.Get("/similar/{recipeID}", router.handler.GetSimilar)
		r.Get("/trending", router.handler.GetTrending)
		r.Get("/preferences/{userID}", router.handler.GetPreferences)
		r.With(router.middleware.RateLimitWrite()).Post("/feedback", router.handler.PostFeedback)

		r.Get("/status", router.handler.GetStatus)
		r.Get("/config", router.handler.GetConfig)
		r.With(router.middleware.RateLimitRefresh()).Post("/refresh", router.handler.TriggerRefresh)
	})

	r.Route("/api/v1/activity", func(r chi.Router) {
		r.Use(router.middleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())
		r.Use(router.middleware.Timeout())
		r.Post("/", router.handler.PostActivity)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
