// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

// Package validation validates API request structs with go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so building one per request would be wasteful. Field names in
// errors come from the json tag, so messages match what clients sent.
//
// Custom tags:
//
//	activity_type  the value is one of viewed, cooked, rated, favorited, dismissed
//	feedback_type  the value is one of interested, not_interested, favorited, cooked
//
// Example:
//
//	type FeedbackRequest struct {
//	    UserID   int    `json:"user_id" validate:"required,gt=0"`
//	    RecipeID int    `json:"recipe_id" validate:"required,gt=0"`
//	    Feedback string `json:"feedback" validate:"required,feedback_type"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
package validation
