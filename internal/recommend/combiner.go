// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/recipehub/internal/catalog"
)

// Explanation strings attached to results.
const (
	ReasonContent       = "matches your preferences"
	ReasonCollaborative = "popular with similar users"
	ReasonTrending      = "trending now"
	ReasonRecent        = "popular recently"
	ReasonFallback      = "something new to try"
	ReasonColdStart     = "new user: trending recipes"
	reasonSimilarPrefix = "similar to "
)

// Combiner blends score components into a ranked, explained list.
type Combiner struct {
	weights    BlendWeights
	thresholds ThresholdConfig
}

// NewCombiner creates a combiner.
//
//nolint:gocritic // hugeParam: config sections passed by value
func NewCombiner(weights BlendWeights, thresholds ThresholdConfig) *Combiner {
	return &Combiner{weights: weights, thresholds: thresholds}
}

// Total returns the blended score of clamped components, clamped to [0, 1].
//
//nolint:gocritic // hugeParam: small value type
func (c *Combiner) Total(comp Components) float64 {
	return clamp01(c.weights.Collaborative*clamp01(comp.Collaborative) +
		c.weights.Content*clamp01(comp.Content) +
		c.weights.Trend*clamp01(comp.Trend) -
		c.weights.Diversity*clamp01(comp.Diversity))
}

// Reasons lists the significant components, or the fallback when none is.
//
//nolint:gocritic // hugeParam: small value type
func (c *Combiner) Reasons(comp Components) []string {
	var reasons []string
	if comp.Content >= c.thresholds.Content {
		reasons = append(reasons, ReasonContent)
	}
	if comp.Collaborative >= c.thresholds.Collaborative {
		reasons = append(reasons, ReasonCollaborative)
	}
	if comp.Trend >= c.thresholds.Trend {
		reasons = append(reasons, ReasonTrending)
	}
	if len(reasons) == 0 {
		reasons = []string{ReasonFallback}
	}
	return reasons
}

// Combine scores every candidate from its components and ranks the results.
func (c *Combiner) Combine(candidates []catalog.Recipe, components map[int]Components) []Result {
	results := make([]Result, 0, len(candidates))
	for i := range candidates {
		comp := clampComponents(components[candidates[i].ID])
		results = append(results, newResult(&candidates[i], c.Total(comp), c.Reasons(comp), &comp))
	}
	rankResults(results)
	return results
}

// ColdStart ranks candidates by trend alone.
func (c *Combiner) ColdStart(candidates []catalog.Recipe, trends *TrendTable) []Result {
	results := make([]Result, 0, len(candidates))
	for i := range candidates {
		t := clamp01(trends.Score(candidates[i].ID))
		results = append(results, newResult(&candidates[i], t, []string{ReasonColdStart}, &Components{Trend: t}))
	}
	rankResults(results)
	return results
}

// Trending ranks candidates by trend with trend-specific explanations.
func (c *Combiner) Trending(candidates []catalog.Recipe, trends *TrendTable) []Result {
	results := make([]Result, 0, len(candidates))
	for i := range candidates {
		t := clamp01(trends.Score(candidates[i].ID))
		reason := ReasonFallback
		switch {
		case t >= c.thresholds.Trend && t > 0:
			reason = ReasonTrending
		case t > 0:
			reason = ReasonRecent
		}
		results = append(results, newResult(&candidates[i], t, []string{reason}, &Components{Trend: t}))
	}
	rankResults(results)
	return results
}

// Similar ranks content similarities to a query recipe.
func (c *Combiner) Similar(query *catalog.Recipe, candidates []catalog.Recipe, similarity map[int]float64) []Result {
	results := make([]Result, 0, len(similarity))
	for i := range candidates {
		sim, ok := similarity[candidates[i].ID]
		if !ok {
			continue
		}
		sim = clamp01(sim)
		results = append(results, newResult(&candidates[i], sim,
			[]string{reasonSimilarPrefix + query.Title}, &Components{Content: sim}))
	}
	rankResults(results)
	return results
}

func newResult(r *catalog.Recipe, score float64, reasons []string, comp *Components) Result {
	return Result{
		RecipeID:        r.ID,
		Title:           r.Title,
		Score:           score,
		Reason:          reasons,
		MatchPercentage: int(math.Round(score * 100)),
		Components:      comp,
	}
}

// rankResults sorts by score descending, then recipe id ascending.
func rankResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].RecipeID < results[j].RecipeID
	})
}

//nolint:gocritic // hugeParam: small value type
func clampComponents(c Components) Components {
	return Components{
		Collaborative: clamp01(c.Collaborative),
		Content:       clamp01(c.Content),
		Trend:         clamp01(c.Trend),
		Diversity:     clamp01(c.Diversity),
	}
}

func truncate(results []Result, limit int) []Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
