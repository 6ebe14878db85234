// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/recipehub/internal/activity"
)

// CollaborativeScorer predicts interest in recipes from users whose
// positively interacted recipe sets overlap with the target user's.
//
// Similarity between users is Jaccard over those sets. The predicted
// interest in recipe r is the similarity-weighted share of neighbours that
// interacted with r:
//
//	sum_v sim(u,v) * [r in S_v] / sum_v sim(u,v)
//
// Neighbours are found through a recipe -> users index, so users sharing
// no recipe with u are never compared (their similarity is 0 anyway).
type CollaborativeScorer struct {
	store activity.Store
}

// NewCollaborativeScorer creates a collaborative scorer.
func NewCollaborativeScorer(store activity.Store) *CollaborativeScorer {
	return &CollaborativeScorer{store: store}
}

// Score reads the log and scores the candidates for userID.
//
// When ctx expires the scores computed so far are returned together with
// an error wrapping ErrComputationTimeout; candidates missing from the map
// score 0.
func (s *CollaborativeScorer) Score(ctx context.Context, userID int, candidates []int) (map[int]float64, error) {
	idx, err := buildInteractionIndex(ctx, s.store)
	if err != nil {
		if ctx.Err() != nil {
			return map[int]float64{}, fmt.Errorf("%w: reading activity: %w", ErrComputationTimeout, ctx.Err())
		}
		return nil, err
	}
	return idx.predict(ctx, userID, candidates)
}

// interactionIndex is a read-only projection of the whole activity log.
type interactionIndex struct {
	// positive maps user -> set of positively interacted recipes.
	positive map[int]map[int]struct{}

	// byRecipe maps recipe -> users with a positive interaction, in
	// first-interaction order.
	byRecipe map[int][]int

	// users holds every user present in the log, including users whose
	// only events are dismissals.
	users map[int]struct{}
}

func newInteractionIndex() *interactionIndex {
	return &interactionIndex{
		positive: make(map[int]map[int]struct{}),
		byRecipe: make(map[int][]int),
		users:    make(map[int]struct{}),
	}
}

func buildInteractionIndex(ctx context.Context, store activity.Store) (*interactionIndex, error) {
	idx := newInteractionIndex()
	err := store.Scan(ctx, activity.Filter{}, func(e activity.Event) error {
		idx.add(&e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan activity: %w", err)
	}
	return idx, nil
}

func (x *interactionIndex) add(e *activity.Event) {
	x.users[e.UserID] = struct{}{}
	if !e.Type.Positive() {
		return
	}
	set, ok := x.positive[e.UserID]
	if !ok {
		set = make(map[int]struct{})
		x.positive[e.UserID] = set
	}
	if _, seen := set[e.RecipeID]; seen {
		return
	}
	set[e.RecipeID] = struct{}{}
	x.byRecipe[e.RecipeID] = append(x.byRecipe[e.RecipeID], e.UserID)
}

// predict computes collaborative scores from the index.
func (x *interactionIndex) predict(ctx context.Context, userID int, candidates []int) (map[int]float64, error) {
	scores := make(map[int]float64, len(candidates))
	target := x.positive[userID]
	if len(target) == 0 {
		return scores, nil
	}

	overlap := make(map[int]int)
	for recipeID := range target {
		for _, v := range x.byRecipe[recipeID] {
			if v != userID {
				overlap[v]++
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return scores, fmt.Errorf("%w: comparing neighbours: %w", ErrComputationTimeout, err)
	}

	neighbours := make([]int, 0, len(overlap))
	for v := range overlap {
		neighbours = append(neighbours, v)
	}
	sort.Ints(neighbours)

	sims := make(map[int]float64, len(neighbours))
	var total float64
	for _, v := range neighbours {
		inter := overlap[v]
		union := len(target) + len(x.positive[v]) - inter
		if union == 0 {
			continue
		}
		sim := float64(inter) / float64(union)
		sims[v] = sim
		total += sim
	}
	if total == 0 {
		return scores, nil
	}

	for i, recipeID := range candidates {
		if err := ctx.Err(); err != nil {
			return scores, fmt.Errorf("%w: scored %d of %d candidates: %w", ErrComputationTimeout, i, len(candidates), err)
		}
		var sum float64
		for _, v := range x.byRecipe[recipeID] {
			sum += sims[v]
		}
		scores[recipeID] = clamp01(sum / total)
	}
	return scores, nil
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b map[int]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	inter := 0
	for id := range small {
		if _, ok := large[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
