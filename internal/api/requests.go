// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/recipehub/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// FeedbackRequest is the body of POST /api/v1/recommendations/feedback.
type FeedbackRequest struct {
	UserID       int               `json:"user_id" validate:"required,gt=0"`
	RecipeID     int               `json:"recipe_id" validate:"required,gt=0"`
	FeedbackType string            `json:"feedback_type" validate:"required,feedback_type"`
	Metadata     map[string]string `json:"metadata,omitempty" validate:"max=32,dive,keys,min=1,max=64,endkeys,max=512"`
}

// ActivityRequest is the body of POST /api/v1/activity.
type ActivityRequest struct {
	UserID       int               `json:"user_id" validate:"required,gt=0"`
	RecipeID     int               `json:"recipe_id" validate:"required,gt=0"`
	ActivityType string            `json:"activity_type" validate:"required,activity_type"`
	Metadata     map[string]string `json:"metadata,omitempty" validate:"max=32,dive,keys,min=1,max=64,endkeys,max=512"`
}

// RecordedResponse acknowledges a stored event.
type RecordedResponse struct {
	UserID   int    `json:"user_id"`
	RecipeID int    `json:"recipe_id"`
	Type     string `json:"type"`
}

// errBadParam marks a malformed path or query parameter.
var errBadParam = errors.New("bad parameter")

// pathID parses a positive integer path parameter. Range checks beyond
// syntax are left to the engine.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadParam, name, raw)
	}
	return id, nil
}

// queryLimit parses the optional limit query parameter. Absent means 0,
// which selects the engine default.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit must be an integer, got %q", errBadParam, raw)
	}
	if limit == 0 {
		return 0, fmt.Errorf("%w: limit must be positive", errBadParam)
	}
	return limit, nil
}

// decodeAndValidate decodes a JSON body into dst and validates it. On
// failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large", nil)
			return false
		}
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read request body", err)
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "Request body is empty", nil)
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON body", nil)
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		respondJSON(w, http.StatusBadRequest, &APIResponse{
			Status:   "error",
			Metadata: newMetadata(r, zeroTime),
			Error: &APIError{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
		return false
	}
	return true
}
