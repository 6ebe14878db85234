// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/recommend"
)

// fakeEngine is a scripted Engine.
type fakeEngine struct {
	mu sync.Mutex

	results []recommend.Result
	summary recommend.ProfileSummary
	err     error

	refreshing bool
	refreshed  chan struct{}

	lastUserID   int
	lastRecipeID int
	lastLimit    int
	lastFeedback recommend.FeedbackType
	lastActivity activity.Type
	lastMetadata map[string]string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{refreshed: make(chan struct{}, 1)}
}

func (f *fakeEngine) record(userID, recipeID, limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUserID, f.lastRecipeID, f.lastLimit = userID, recipeID, limit
}

func (f *fakeEngine) Recommend(_ context.Context, userID, limit int) ([]recommend.Result, error) {
	f.record(userID, 0, limit)
	return f.results, f.err
}

func (f *fakeEngine) Similar(_ context.Context, recipeID, limit int) ([]recommend.Result, error) {
	f.record(0, recipeID, limit)
	return f.results, f.err
}

func (f *fakeEngine) Trending(_ context.Context, limit int) ([]recommend.Result, error) {
	f.record(0, 0, limit)
	return f.results, f.err
}

func (f *fakeEngine) Preferences(_ context.Context, userID int) (recommend.ProfileSummary, error) {
	f.record(userID, 0, 0)
	return f.summary, f.err
}

func (f *fakeEngine) Feedback(_ context.Context, userID, recipeID int, feedback recommend.FeedbackType, metadata map[string]string) error {
	f.record(userID, recipeID, 0)
	f.mu.Lock()
	f.lastFeedback, f.lastMetadata = feedback, metadata
	f.mu.Unlock()
	return f.err
}

func (f *fakeEngine) RecordActivity(_ context.Context, userID, recipeID int, t activity.Type, metadata map[string]string) error {
	f.record(userID, recipeID, 0)
	f.mu.Lock()
	f.lastActivity, f.lastMetadata = t, metadata
	f.mu.Unlock()
	return f.err
}

func (f *fakeEngine) Refresh(context.Context) error {
	f.refreshed <- struct{}{}
	return f.err
}

func (f *fakeEngine) Refreshing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshing
}

func (f *fakeEngine) Stats() recommend.Stats {
	return recommend.Stats{Requests: 7, ColdStarts: 2}
}

func (f *fakeEngine) GetConfig() *recommend.Config {
	return recommend.DefaultConfig()
}

// newTestServer builds the full router around handler with rate limiting off.
func newTestServer(t *testing.T, handler *Handler) http.Handler {
	t.Helper()
	cfg := DefaultMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"*"}
	return NewRouter(handler, cfg).SetupChi()
}

// do sends a request through h and decodes the envelope.
func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestGetRecommendations(t *testing.T) {
	results := []recommend.Result{{RecipeID: 2, Title: "Chickpea Curry", Score: 0.8, Reason: []string{"matches your taste"}, MatchPercentage: 80}}

	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantCode   string
		wantLimit  int
	}{
		{"default limit", "/api/v1/recommendations/user/1", nil, http.StatusOK, "", 0},
		{"explicit limit", "/api/v1/recommendations/user/1?limit=3", nil, http.StatusOK, "", 3},
		{"non numeric user", "/api/v1/recommendations/user/abc", nil, http.StatusBadRequest, ErrCodeBadRequest, 0},
		{"non numeric limit", "/api/v1/recommendations/user/1?limit=ten", nil, http.StatusBadRequest, ErrCodeBadRequest, 0},
		{"zero limit", "/api/v1/recommendations/user/1?limit=0", nil, http.StatusBadRequest, ErrCodeBadRequest, 0},
		{"limit out of range", "/api/v1/recommendations/user/1?limit=500", recommend.ErrInvalidLimit, http.StatusBadRequest, ErrCodeInvalidArgument, 500},
		{"unknown user", "/api/v1/recommendations/user/99", recommend.ErrUnknownUserOrRecipe, http.StatusNotFound, ErrCodeNotFound, 0},
		{"internal failure", "/api/v1/recommendations/user/1", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newFakeEngine()
			eng.results = results
			eng.err = tt.err
			srv := newTestServer(t, NewHandler(eng))

			rec, resp := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if resp.Status != "error" || resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("error = %+v, want code %s", resp.Error, tt.wantCode)
				}
				if tt.wantStatus == http.StatusInternalServerError && strings.Contains(resp.Error.Message, "disk") {
					t.Errorf("internal error details leaked: %q", resp.Error.Message)
				}
				return
			}

			if resp.Status != "success" {
				t.Errorf("status field = %q, want success", resp.Status)
			}
			if resp.Metadata.Count == nil || *resp.Metadata.Count != 1 {
				t.Errorf("metadata.count = %v, want 1", resp.Metadata.Count)
			}
			if eng.lastLimit != tt.wantLimit || eng.lastUserID != 1 {
				t.Errorf("engine called with user %d limit %d, want 1 and %d", eng.lastUserID, eng.lastLimit, tt.wantLimit)
			}
		})
	}
}

func TestGetRecommendations_EmptyListIsArray(t *testing.T) {
	eng := newFakeEngine()
	srv := newTestServer(t, NewHandler(eng))

	rec, _ := do(t, srv, http.MethodGet, "/api/v1/recommendations/trending", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want data to be an empty array", rec.Body.String())
	}
}

func TestGetSimilarAndTrending(t *testing.T) {
	eng := newFakeEngine()
	eng.results = []recommend.Result{{RecipeID: 2}, {RecipeID: 3}}
	srv := newTestServer(t, NewHandler(eng))

	rec, resp := do(t, srv, http.MethodGet, "/api/v1/recommendations/similar/1?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("similar status = %d", rec.Code)
	}
	if eng.lastRecipeID != 1 || eng.lastLimit != 2 {
		t.Errorf("Similar called with recipe %d limit %d", eng.lastRecipeID, eng.lastLimit)
	}
	if *resp.Metadata.Count != 2 {
		t.Errorf("count = %d, want 2", *resp.Metadata.Count)
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/recommendations/trending?limit=1", "")
	if rec.Code != http.StatusOK || eng.lastLimit != 1 {
		t.Errorf("trending status = %d limit = %d", rec.Code, eng.lastLimit)
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/recommendations/similar/x", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("similar with bad id status = %d, want 400", rec.Code)
	}
}

func TestGetPreferences(t *testing.T) {
	eng := newFakeEngine()
	eng.summary = recommend.ProfileSummary{UserID: 4, FavoriteCategories: []string{"curry"}, TotalActivities: 3}
	srv := newTestServer(t, NewHandler(eng))

	rec, _ := do(t, srv, http.MethodGet, "/api/v1/recommendations/preferences/4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Data recommend.ProfileSummary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.UserID != 4 || body.Data.TotalActivities != 3 || body.Data.FavoriteCategories[0] != "curry" {
		t.Errorf("data = %+v", body.Data)
	}

	eng.err = recommend.ErrInvalidArgument
	rec, _ = do(t, srv, http.MethodGet, "/api/v1/recommendations/preferences/0", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid user status = %d, want 400", rec.Code)
	}
}

func TestPostFeedback(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		err          error
		wantStatus   int
		wantCode     string
		wantFeedback recommend.FeedbackType
	}{
		{"interested", `{"user_id":1,"recipe_id":2,"feedback_type":"interested"}`, nil, http.StatusCreated, "", recommend.FeedbackInterested},
		{"case insensitive", `{"user_id":1,"recipe_id":2,"feedback_type":"NOT_INTERESTED"}`, nil, http.StatusCreated, "", recommend.FeedbackNotInterested},
		{"with metadata", `{"user_id":1,"recipe_id":2,"feedback_type":"cooked","metadata":{"source":"app"}}`, nil, http.StatusCreated, "", recommend.FeedbackCooked},
		{"unknown feedback", `{"user_id":1,"recipe_id":2,"feedback_type":"loved"}`, nil, http.StatusBadRequest, "VALIDATION_ERROR", ""},
		{"missing user", `{"recipe_id":2,"feedback_type":"cooked"}`, nil, http.StatusBadRequest, "VALIDATION_ERROR", ""},
		{"unknown field", `{"user_id":1,"recipe_id":2,"feedback_type":"cooked","stars":5}`, nil, http.StatusBadRequest, ErrCodeInvalidJSON, ""},
		{"malformed", `{"user_id":`, nil, http.StatusBadRequest, ErrCodeInvalidJSON, ""},
		{"unknown recipe", `{"user_id":1,"recipe_id":99,"feedback_type":"cooked"}`, recommend.ErrUnknownUserOrRecipe, http.StatusNotFound, ErrCodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newFakeEngine()
			eng.err = tt.err
			srv := newTestServer(t, NewHandler(eng))

			rec, resp := do(t, srv, http.MethodPost, "/api/v1/recommendations/feedback", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
				}
				return
			}
			if eng.lastFeedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", eng.lastFeedback, tt.wantFeedback)
			}
			if eng.lastUserID != 1 || eng.lastRecipeID != 2 {
				t.Errorf("engine called with user %d recipe %d", eng.lastUserID, eng.lastRecipeID)
			}
		})
	}
}

func TestPostFeedback_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t, NewHandler(newFakeEngine()))

	big := fmt.Sprintf(`{"user_id":1,"recipe_id":2,"feedback_type":"cooked","metadata":{"note":"%s"}}`, strings.Repeat("x", maxBodyBytes))
	rec, _ := do(t, srv, http.MethodPost, "/api/v1/recommendations/feedback", big)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestPostActivity(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantType   activity.Type
	}{
		{"viewed", `{"user_id":3,"recipe_id":4,"activity_type":"viewed"}`, http.StatusCreated, activity.TypeViewed},
		{"rated with metadata", `{"user_id":3,"recipe_id":4,"activity_type":"rated","metadata":{"stars":"4"}}`, http.StatusCreated, activity.TypeRated},
		{"unknown type", `{"user_id":3,"recipe_id":4,"activity_type":"shared"}`, http.StatusBadRequest, ""},
		{"zero recipe", `{"user_id":3,"recipe_id":0,"activity_type":"viewed"}`, http.StatusBadRequest, ""},
		{"empty metadata key", `{"user_id":3,"recipe_id":4,"activity_type":"viewed","metadata":{"":"x"}}`, http.StatusBadRequest, ""},
		{"empty body", ``, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newFakeEngine()
			srv := newTestServer(t, NewHandler(eng))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/activity", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantType != "" && eng.lastActivity != tt.wantType {
				t.Errorf("activity = %q, want %q", eng.lastActivity, tt.wantType)
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	eng := newFakeEngine()
	healthy := NewHandler(eng, WithReadinessCheck("catalog", func(context.Context) error { return nil }))
	srv := newTestServer(t, healthy)

	rec, resp := do(t, srv, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Errorf("live = %d %q", rec.Code, resp.Status)
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200", rec.Code)
	}

	failing := NewHandler(eng,
		WithReadinessCheck("catalog", func(context.Context) error { return nil }),
		WithReadinessCheck("activity_store", func(context.Context) error { return activity.ErrStoreClosed }),
	)
	rec, resp = do(t, newTestServer(t, failing), http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready with failing check = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeNotReady {
		t.Errorf("error = %+v", resp.Error)
	}
	if !strings.Contains(rec.Body.String(), `"activity_store":"failed"`) {
		t.Errorf("body = %s, want failed check listed", rec.Body.String())
	}
}

func TestStatusAndConfig(t *testing.T) {
	srv := newTestServer(t, NewHandler(newFakeEngine()))

	rec, _ := do(t, srv, http.MethodGet, "/api/v1/recommendations/status", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"cold_starts":2`) {
		t.Errorf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/recommendations/config", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"exclude_interacted":true`) {
		t.Errorf("config = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestTriggerRefresh(t *testing.T) {
	eng := newFakeEngine()
	srv := newTestServer(t, NewHandler(eng, WithRefreshContext(context.Background(), time.Minute)))

	rec, _ := do(t, srv, http.MethodPost, "/api/v1/recommendations/refresh", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	select {
	case <-eng.refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("Refresh was not started")
	}

	eng.mu.Lock()
	eng.refreshing = true
	eng.mu.Unlock()
	rec, resp := do(t, srv, http.MethodPost, "/api/v1/recommendations/refresh", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status while refreshing = %d, want 409", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeConflict {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRouting(t *testing.T) {
	srv := newTestServer(t, NewHandler(newFakeEngine()))

	rec, resp := do(t, srv, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route = %d %+v", rec.Code, resp.Error)
	}

	rec, resp = do(t, srv, http.MethodDelete, "/api/v1/recommendations/trending", "")
	if rec.Code != http.StatusMethodNotAllowed || resp.Error == nil || resp.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("wrong method = %d %+v", rec.Code, resp.Error)
	}

	rec, _ = do(t, srv, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Errorf("/metrics = %d", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t, NewHandler(newFakeEngine()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID header = %q, want req-123", got)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Metadata.RequestID != "req-123" {
		t.Errorf("metadata.request_id = %q, want req-123", resp.Metadata.RequestID)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("a request ID should be generated when none is sent")
	}
}

func TestRecommendationsGzip(t *testing.T) {
	eng := newFakeEngine()
	results := make([]recommend.Result, 50)
	for i := range results {
		results[i] = recommend.Result{RecipeID: i + 1, Score: 0.5, Reason: []string{"popular this week"}}
	}
	eng.results = results
	srv := newTestServer(t, NewHandler(eng))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/trending", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var resp APIResponse
	if err := json.NewDecoder(zr).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Metadata.Count == nil || *resp.Metadata.Count != 50 {
		t.Errorf("count = %v, want 50", resp.Metadata.Count)
	}
}
