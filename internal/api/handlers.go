// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/logging"
	"github.com/tomtom215/recipehub/internal/recommend"
)

// zeroTime omits query_time_ms from metadata.
var zeroTime time.Time

// Engine is the recommendation surface the handlers need.
// *recommend.Engine implements it.
type Engine interface {
	Recommend(ctx context.Context, userID, limit int) ([]recommend.Result, error)
	Similar(ctx context.Context, recipeID, limit int) ([]recommend.Result, error)
	Trending(ctx context.Context, limit int) ([]recommend.Result, error)
	Preferences(ctx context.Context, userID int) (recommend.ProfileSummary, error)
	Feedback(ctx context.Context, userID, recipeID int, feedback recommend.FeedbackType, metadata map[string]string) error
	RecordActivity(ctx context.Context, userID, recipeID int, t activity.Type, metadata map[string]string) error
	Refresh(ctx context.Context) error
	Refreshing() bool
	Stats() recommend.Stats
	GetConfig() *recommend.Config
}

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Handler serves the recommendation API.
type Handler struct {
	engine    Engine
	checks    map[string]ReadinessCheck
	startTime time.Time

	// refreshTimeout bounds refreshes started over HTTP.
	refreshTimeout time.Duration

	// refreshCtx is the parent of background refreshes. It outlives requests.
	refreshCtx context.Context
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithReadinessCheck registers a named readiness check.
func WithReadinessCheck(name string, check ReadinessCheck) HandlerOption {
	return func(h *Handler) {
		h.checks[name] = check
	}
}

// WithRefreshContext sets the parent context of background refreshes.
// Cancelling it aborts a running refresh.
func WithRefreshContext(ctx context.Context, timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.refreshCtx = ctx
		h.refreshTimeout = timeout
	}
}

// NewHandler creates a handler serving engine.
func NewHandler(engine Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:         engine,
		checks:         make(map[string]ReadinessCheck),
		startTime:      time.Now(),
		refreshTimeout: 10 * time.Minute,
		refreshCtx:     context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HealthLive handles GET /api/v1/health/live.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, zeroTime)
}

// HealthReady handles GET /api/v1/health/ready.
// Returns 503 if any readiness check fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := h.checks[name](r.Context()); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("check", name).Msg("readiness check failed")
			results[name] = "failed"
			ready = false
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Status:   "error",
			Data:     map[string]interface{}{"checks": results},
			Metadata: newMetadata(r, zeroTime),
			Error:    &APIError{Code: ErrCodeNotReady, Message: "Service not ready"},
		})
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"checks": results,
	}, zeroTime)
}

// GetRecommendations handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	results, err := h.engine.Recommend(r.Context(), userID, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondList(w, r, results, start)
}

// GetSimilar handles GET /api/v1/recommendations/similar/{recipeID}.
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recipeID, err := pathID(r, "recipeID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	results, err := h.engine.Similar(r.Context(), recipeID, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondList(w, r, results, start)
}

// GetTrending handles GET /api/v1/recommendations/trending.
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := queryLimit(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	results, err := h.engine.Trending(r.Context(), limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondList(w, r, results, start)
}

// GetPreferences handles GET /api/v1/recommendations/preferences/{userID}.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	summary, err := h.engine.Preferences(r.Context(), userID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, summary, start)
}

// PostFeedback handles POST /api/v1/recommendations/feedback.
func (h *Handler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	feedback, err := recommend.ParseFeedbackType(req.FeedbackType)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	if err := h.engine.Feedback(r.Context(), req.UserID, req.RecipeID, feedback, req.Metadata); err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int("user_id", req.UserID).
		Int("recipe_id", req.RecipeID).
		Str("feedback", string(feedback)).
		Msg("feedback recorded")

	respondSuccess(w, r, http.StatusCreated, RecordedResponse{
		UserID:   req.UserID,
		RecipeID: req.RecipeID,
		Type:     string(feedback),
	}, start)
}

// PostActivity handles POST /api/v1/activity.
func (h *Handler) PostActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	t, err := activity.ParseType(req.ActivityType)
	if err != nil {
		respondEngineError(w, r, fmt.Errorf("%w: %q", recommend.ErrInvalidActivityType, req.ActivityType))
		return
	}

	if err := h.engine.RecordActivity(r.Context(), req.UserID, req.RecipeID, t, req.Metadata); err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, RecordedResponse{
		UserID:   req.UserID,
		RecipeID: req.RecipeID,
		Type:     t.String(),
	}, start)
}

// GetStatus handles GET /api/v1/recommendations/status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"stats":      h.engine.Stats(),
		"refreshing": h.engine.Refreshing(),
	}, zeroTime)
}

// GetConfig handles GET /api/v1/recommendations/config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.GetConfig(), zeroTime)
}

// TriggerRefresh handles POST /api/v1/recommendations/refresh.
// The refresh runs in the background; 409 is returned if one is running.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if h.engine.Refreshing() {
		respondError(w, r, http.StatusConflict, ErrCodeConflict, recommend.ErrRefreshInProgress.Error(), nil)
		return
	}

	correlationID := logging.CorrelationIDFromContext(r.Context())
	go func() {
		ctx, cancel := context.WithTimeout(h.refreshCtx, h.refreshTimeout)
		defer cancel()
		ctx = logging.ContextWithCorrelationID(ctx, correlationID)

		if err := h.engine.Refresh(ctx); err != nil {
			if errors.Is(err, recommend.ErrRefreshInProgress) {
				logging.Ctx(ctx).Info().Msg("manual refresh skipped: already running")
				return
			}
			logging.Ctx(ctx).Error().Err(err).Msg("manual refresh failed")
			return
		}
		logging.Ctx(ctx).Info().Msg("manual refresh completed")
	}()

	respondSuccess(w, r, http.StatusAccepted, map[string]string{
		"message": "Refresh started",
	}, zeroTime)
}
