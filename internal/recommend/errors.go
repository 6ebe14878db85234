// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers classify with errors.Is against the three roots;
// the specific errors wrap exactly one root.
var (
	// ErrInvalidArgument covers out-of-range limits and unknown enum values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownEntity is returned when a user or recipe id is not known
	// to the catalog or user directory.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrComputationTimeout marks collaborative scoring that hit its
	// deadline. The engine absorbs it and degrades to partial scores.
	ErrComputationTimeout = errors.New("computation timeout")

	// ErrInvalidFeedbackType is returned for feedback outside the closed set.
	ErrInvalidFeedbackType = fmt.Errorf("%w: invalid feedback type", ErrInvalidArgument)

	// ErrInvalidActivityType is returned for activity types outside the closed set.
	ErrInvalidActivityType = fmt.Errorf("%w: invalid activity type", ErrInvalidArgument)

	// ErrInvalidLimit is returned when a result limit is out of range.
	ErrInvalidLimit = fmt.Errorf("%w: limit out of range", ErrInvalidArgument)

	// ErrRefreshInProgress is returned when Refresh is called while another
	// refresh is running.
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrUnknownUserOrRecipe is returned when a referenced id does not exist.
	ErrUnknownUserOrRecipe = fmt.Errorf("%w: unknown user or recipe", ErrUnknownEntity)
)
