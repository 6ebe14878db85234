// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

// Package recommend implements the hybrid recipe recommendation engine.
//
// # Architecture
//
// Every score is a projection of the activity log (package activity) and
// the recipe catalog (package catalog):
//
//   - Vectorizer: recipe -> sparse feature vector (ingredients, category,
//     tags, cook-time bucket, difficulty)
//   - ProfileBuilder: activity history -> preference Profile
//   - CollaborativeScorer: Jaccard similarity between users' positively
//     interacted recipe sets
//   - ContentScorer: cosine similarity between recipe and preference vectors
//   - TrendScorer: recent activity volume per recipe
//   - DiversityPenalty: share of recent activity per category
//   - Combiner: blends the components into ranked, explained Results
//   - FeedbackRecorder: validated writes to the activity log
//
// The combined score of a candidate is
//
//	clamp01(w_c*collaborative + w_x*content + w_t*trend - w_d*diversity)
//
// and results are ordered by score descending, then recipe id ascending.
//
// # Cold Start
//
// A user whose profile carries no positive preference signal is ranked by
// trend alone. This is a defined path, not an error.
//
// # Caching
//
// Profiles, the trend table and similar-recipe lists are cached in
// independent stores (package cache). Recording activity for a user drops
// that user's cached profile. Refresh recomputes all profiles and the
// trend table from one snapshot of the log and publishes them without
// overwriting profiles invalidated while it ran.
//
// # Errors
//
// Callers classify errors with errors.Is against ErrInvalidArgument and
// ErrUnknownEntity. Collaborative scoring runs under its own deadline; on
// timeout the engine proceeds with the partial scores and logs a warning.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, recommend.Dependencies{
//	    Store:   store,
//	    Recipes: recipes,
//	    Users:   recipes,
//	    Caches:  caches,
//	}, logger)
//	results, err := engine.Recommend(ctx, userID, 10)
package recommend
