// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/recipehub/internal/recommend"
)

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeNotReady         = "NOT_READY"
)

// classifyError maps an engine error to an HTTP status and error code.
func classifyError(err error) (status int, code string) {
	switch {
	case errors.Is(err, recommend.ErrInvalidArgument):
		return http.StatusBadRequest, ErrCodeInvalidArgument
	case errors.Is(err, recommend.ErrUnknownEntity):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, recommend.ErrRefreshInProgress):
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// clientMessage returns the message sent to clients. Internal failures are
// not described beyond their class.
func clientMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		if errors.Is(err, context.DeadlineExceeded) {
			return "Request timed out"
		}
		return "Internal server error"
	}
	return err.Error()
}
