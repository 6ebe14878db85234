// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"math"

	"github.com/tomtom215/recipehub/internal/catalog"
)

// Cosine returns the cosine similarity of two feature vectors in [0, 1].
// It is 0 when either vector has zero magnitude. The result is exactly
// symmetric and exactly 1 for equal non-empty vectors.
func Cosine(a, b FeatureVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	na, nb := a.SquaredNorm(), b.SquaredNorm()
	if na == 0 || nb == 0 {
		return 0
	}
	dot := a.Dot(b)
	if dot == na && na == nb {
		// Identical vectors: sqrt(na*na) may round away from na.
		return 1
	}
	denom := math.Sqrt(na * nb)
	if math.IsInf(denom, 0) {
		denom = math.Sqrt(na) * math.Sqrt(nb)
	}
	return clamp01(dot / denom)
}

// ContentScorer compares recipe vectors with a preference vector or with
// another recipe's vector.
type ContentScorer struct {
	vectorizer *Vectorizer
}

// NewContentScorer creates a content scorer.
func NewContentScorer(vectorizer *Vectorizer) *ContentScorer {
	return &ContentScorer{vectorizer: vectorizer}
}

// ScoreProfile returns the cosine similarity of every candidate to the
// preference vector.
func (s *ContentScorer) ScoreProfile(preference FeatureVector, candidates []catalog.Recipe) map[int]float64 {
	scores := make(map[int]float64, len(candidates))
	for i := range candidates {
		scores[candidates[i].ID] = Cosine(s.vectorizer.Vector(candidates[i]), preference)
	}
	return scores
}

// Similarity returns the content similarity between two recipes.
//
//nolint:gocritic // hugeParam: recipes passed by value, mirrors catalog API
func (s *ContentScorer) Similarity(a, b catalog.Recipe) float64 {
	return Cosine(s.vectorizer.Vector(a), s.vectorizer.Vector(b))
}

// ScoreSimilar scores every candidate against the query recipe, skipping
// the query itself.
//
//nolint:gocritic // hugeParam: query passed by value, mirrors catalog API
func (s *ContentScorer) ScoreSimilar(query catalog.Recipe, candidates []catalog.Recipe) map[int]float64 {
	qv := s.vectorizer.Vector(query)
	scores := make(map[int]float64, len(candidates))
	for i := range candidates {
		if candidates[i].ID == query.ID {
			continue
		}
		scores[candidates[i].ID] = Cosine(s.vectorizer.Vector(candidates[i]), qv)
	}
	return scores
}

// clamp01 bounds x to [0, 1]; NaN maps to 0.
func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 1:
		return 1
	default:
		return x
	}
}
