// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/recipehub/internal/activity"
	"github.com/tomtom215/recipehub/internal/catalog"
	"github.com/tomtom215/recipehub/internal/logging"
	"github.com/tomtom215/recipehub/internal/metrics"
)

// Dependencies are the collaborators the engine reads from and writes to.
type Dependencies struct {
	// Store is the activity log. Required.
	Store activity.Store

	// Recipes is the read-only recipe catalog. Required.
	Recipes catalog.Recipes

	// Users is the user directory. Required.
	Users catalog.Users

	// Caches holds the projection caches. Nil disables caching.
	Caches *Caches

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Engine is the hybrid recommendation engine. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	now    func() time.Time

	store   activity.Store
	recipes catalog.Recipes
	users   catalog.Users
	caches  *Caches

	vectorizer    *Vectorizer
	profiles      *ProfileBuilder
	collaborative *CollaborativeScorer
	content       *ContentScorer
	trend         *TrendScorer
	diversity     *DiversityPenalty
	combiner      *Combiner
	feedback      *FeedbackRecorder

	// Refresh state
	refreshMu  sync.Mutex
	refreshing atomic.Bool
	statsMu    sync.RWMutex
	stats      Stats

	requestCount   atomic.Int64
	errorCount     atomic.Int64
	coldStarts     atomic.Int64
	collabTimeouts atomic.Int64
	eventsRecorded atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Store == nil || deps.Recipes == nil || deps.Users == nil {
		return nil, errors.New("store, recipes and users are required")
	}
	if deps.Caches == nil {
		deps.Caches = NoopCaches()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		now:     deps.Clock,
		store:   deps.Store,
		recipes: deps.Recipes,
		users:   deps.Users,
		caches:  deps.Caches,
	}
	e.vectorizer = NewVectorizer(cfg.Features)
	e.profiles = NewProfileBuilder(deps.Store, deps.Recipes, e.vectorizer, cfg.ActivityWeights, cfg.Limits.TopFavorites)
	e.collaborative = NewCollaborativeScorer(deps.Store)
	e.content = NewContentScorer(e.vectorizer)
	e.trend = NewTrendScorer(deps.Store, cfg.Windows.Trend)
	e.diversity = NewDiversityPenalty(deps.Store, deps.Recipes, cfg.Windows.Diversity, cfg.Windows.DiversityMinEvents)
	e.combiner = NewCombiner(cfg.Weights, cfg.Thresholds)
	e.feedback = NewFeedbackRecorder(deps.Store, deps.Recipes, deps.Users, e.onAppend)

	return e, nil
}

// Recommend returns up to limit recipes for the user. A limit of 0 selects
// the default.
func (e *Engine) Recommend(ctx context.Context, userID, limit int) (results []Result, err error) {
	defer e.track("recommend", time.Now(), &err)

	limit, err = resolveLimit(limit, e.config.Limits.DefaultRecommend, e.config.Limits.MaxRecommend)
	if err != nil {
		return nil, err
	}
	if err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	logger := e.requestLogger(ctx, userID)

	profile, err := e.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	recipes, err := e.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if len(recipes) == 0 {
		logger.Debug().Msg("empty catalog")
		return []Result{}, nil
	}
	trends, err := e.trending(ctx)
	if err != nil {
		return nil, err
	}

	if profile.ColdStart() {
		e.coldStarts.Add(1)
		metrics.RecommendColdStarts.Inc()
		candidates := e.candidates(profile, recipes, false)
		logger.Debug().Int("candidates", len(candidates)).Msg("cold start, ranking by trend")
		return truncate(e.combiner.ColdStart(candidates, trends), limit), nil
	}

	candidates := e.candidates(profile, recipes, e.config.ExcludeInteracted)
	metrics.RecommendCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return []Result{}, nil
	}

	collab, err := e.collaborativeScores(ctx, userID, candidates, logger)
	if err != nil {
		return nil, err
	}
	content := e.content.ScoreProfile(profile.Vector, candidates)
	penalties, err := e.diversity.Penalties(ctx, userID, e.now(), candidates)
	if err != nil {
		return nil, err
	}

	components := make(map[int]Components, len(candidates))
	for i := range candidates {
		id := candidates[i].ID
		components[id] = Components{
			Collaborative: collab[id],
			Content:       content[id],
			Trend:         trends.Score(id),
			Diversity:     penalties[id],
		}
	}

	results = truncate(e.combiner.Combine(candidates, components), limit)
	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Msg("recommendation complete")
	return results, nil
}

// Similar returns up to limit recipes most similar in content to recipeID.
func (e *Engine) Similar(ctx context.Context, recipeID, limit int) (results []Result, err error) {
	defer e.track("similar", time.Now(), &err)

	limit, err = resolveLimit(limit, e.config.Limits.DefaultSimilar, e.config.Limits.MaxSimilar)
	if err != nil {
		return nil, err
	}

	query, err := e.recipes.Recipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, catalog.ErrRecipeNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrUnknownEntity, recipeID)
		}
		return nil, fmt.Errorf("get recipe %d: %w", recipeID, err)
	}

	fingerprint := e.vectorizer.Vector(query).Hash()
	if cached, ok := e.caches.Similar.Get(recipeID); ok && cached.Fingerprint == fingerprint {
		return copyResults(cached.Results, limit), nil
	}

	recipes, err := e.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	similarity := e.content.ScoreSimilar(query, recipes)
	ranked := truncate(e.combiner.Similar(&query, recipes, similarity), e.config.Limits.MaxSimilar)
	e.caches.Similar.Set(recipeID, &SimilarEntry{Fingerprint: fingerprint, Results: ranked})

	return copyResults(ranked, limit), nil
}

// Trending returns up to limit recipes ranked by trend.
func (e *Engine) Trending(ctx context.Context, limit int) (results []Result, err error) {
	defer e.track("trending", time.Now(), &err)

	limit, err = resolveLimit(limit, e.config.Limits.DefaultTrending, e.config.Limits.MaxTrending)
	if err != nil {
		return nil, err
	}
	trends, err := e.trending(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := e.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return truncate(e.combiner.Trending(recipes, trends), limit), nil
}

// Feedback records explicit feedback from a user on a recipe.
func (e *Engine) Feedback(ctx context.Context, userID, recipeID int, feedback FeedbackType, metadata map[string]string) (err error) {
	defer e.track("feedback", time.Now(), &err)
	return e.feedback.Feedback(ctx, userID, recipeID, feedback, metadata, e.now())
}

// RecordActivity records a raw activity event.
func (e *Engine) RecordActivity(ctx context.Context, userID, recipeID int, t activity.Type, metadata map[string]string) (err error) {
	defer e.track("record_activity", time.Now(), &err)
	return e.feedback.RecordActivity(ctx, userID, recipeID, t, metadata, e.now())
}

// Preferences returns the serializable summary of the user's profile.
func (e *Engine) Preferences(ctx context.Context, userID int) (summary ProfileSummary, err error) {
	defer e.track("preferences", time.Now(), &err)

	if err := e.requireUser(ctx, userID); err != nil {
		return ProfileSummary{}, err
	}
	p, err := e.profile(ctx, userID)
	if err != nil {
		return ProfileSummary{}, err
	}
	return p.Summary(), nil
}

// Refresh recomputes every user's profile and the trend table from one
// snapshot of the log and publishes them to the caches. Only one refresh
// runs at a time; the store is never locked for the computation.
func (e *Engine) Refresh(ctx context.Context) (err error) {
	if !e.refreshMu.TryLock() {
		return ErrRefreshInProgress
	}
	defer e.refreshMu.Unlock()
	e.refreshing.Store(true)
	defer e.refreshing.Store(false)

	start := time.Now()
	published := 0
	defer func() {
		metrics.RecordBatchRefresh(time.Since(start), published, err)
	}()

	now := e.now()
	gens := e.caches.generationsSnapshot()

	events, err := activity.Collect(ctx, e.store, activity.Filter{})
	if err != nil {
		return fmt.Errorf("snapshot activity: %w", err)
	}
	list, err := e.recipes.List(ctx)
	if err != nil {
		return fmt.Errorf("list recipes: %w", err)
	}
	lookup := mapLookup(indexRecipes(list))

	byUser := make(map[int][]activity.Event)
	for i := range events {
		byUser[events[i].UserID] = append(byUser[events[i].UserID], events[i])
	}

	var (
		mu       sync.Mutex
		profiles = make(map[int]*Profile, len(byUser))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Limits.RefreshConcurrency)
	for userID, userEvents := range byUser {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := e.profiles.fromEvents(userID, userEvents, lookup, now)
			mu.Lock()
			profiles[userID] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("compute profiles: %w", err)
	}

	trends := computeTrends(events, now, e.config.Windows.Trend)

	published = e.caches.publishProfiles(gens, profiles)
	e.caches.Trending.Set(trendingKey, trends)

	duration := time.Since(start)
	e.statsMu.Lock()
	e.stats.LastRefreshAt = now
	e.stats.LastRefreshDurationMS = duration.Milliseconds()
	e.stats.LastRefreshProfiles = published
	e.statsMu.Unlock()

	e.logger.Info().
		Int("events", len(events)).
		Int("users", len(byUser)).
		Int("published", published).
		Int("trending", len(trends.Scores)).
		Dur("duration", duration).
		Msg("batch refresh complete")
	return nil
}

// Refreshing reports whether a refresh is running.
func (e *Engine) Refreshing() bool {
	return e.refreshing.Load()
}

// Stats returns the current engine counters.
func (e *Engine) Stats() Stats {
	e.statsMu.RLock()
	s := e.stats
	e.statsMu.RUnlock()

	s.Requests = e.requestCount.Load()
	s.Errors = e.errorCount.Load()
	s.ColdStarts = e.coldStarts.Load()
	s.CollaborativeTimeouts = e.collabTimeouts.Load()
	s.EventsRecorded = e.eventsRecorded.Load()
	return s
}

// Caches returns the engine's caches.
func (e *Engine) Caches() *Caches {
	return e.caches
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// profile returns the cached profile or builds and caches it.
func (e *Engine) profile(ctx context.Context, userID int) (*Profile, error) {
	if p, ok := e.caches.Profiles.Get(userID); ok {
		return p, nil
	}
	gen := e.caches.generation(userID)
	p, err := e.profiles.Build(ctx, userID, e.now())
	if err != nil {
		return nil, err
	}
	e.caches.storeProfile(gen, p)
	return p, nil
}

// trending returns the cached trend table or computes and caches it.
func (e *Engine) trending(ctx context.Context) (*TrendTable, error) {
	if t, ok := e.caches.Trending.Get(trendingKey); ok {
		return t, nil
	}
	t, err := e.trend.Compute(ctx, e.now())
	if err != nil {
		return nil, err
	}
	e.caches.Trending.Set(trendingKey, t)
	return t, nil
}

// collaborativeScores runs the collaborative scorer under its own deadline.
// A timeout degrades to the partial scores; cancellation of ctx itself is
// returned as an error.
func (e *Engine) collaborativeScores(ctx context.Context, userID int, candidates []catalog.Recipe, logger zerolog.Logger) (map[int]float64, error) {
	ids := make([]int, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].ID
	}

	collabCtx, cancel := context.WithTimeout(ctx, e.config.Limits.CollaborativeTimeout)
	defer cancel()

	scores, err := e.collaborative.Score(collabCtx, userID, ids)
	if err == nil {
		return scores, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if !errors.Is(err, ErrComputationTimeout) {
		return nil, fmt.Errorf("collaborative scoring: %w", err)
	}

	e.collabTimeouts.Add(1)
	metrics.RecommendCollaborativeTimeouts.Inc()
	logger.Warn().
		Err(err).
		Int("scored", len(scores)).
		Int("candidates", len(ids)).
		Msg("collaborative scoring timed out, using partial scores")
	if scores == nil {
		scores = map[int]float64{}
	}
	return scores, nil
}

// candidates filters the catalog for a user. Recipes whose latest activity
// is a dismissal are always dropped; positively interacted recipes are
// dropped when excludeInteracted is set.
func (e *Engine) candidates(profile *Profile, recipes []catalog.Recipe, excludeInteracted bool) []catalog.Recipe {
	out := make([]catalog.Recipe, 0, len(recipes))
	for i := range recipes {
		id := recipes[i].ID
		if profile.Dismissed(id) {
			continue
		}
		if excludeInteracted && profile.Interacted(id) {
			continue
		}
		out = append(out, recipes[i])
	}
	return out
}

// requireUser returns ErrUnknownEntity for users missing from the directory.
func (e *Engine) requireUser(ctx context.Context, userID int) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user_id must be positive, got %d", ErrInvalidArgument, userID)
	}
	ok, err := e.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return fmt.Errorf("%w: user %d", ErrUnknownEntity, userID)
	}
	return nil
}

// requestLogger creates a logger with request context.
func (e *Engine) requestLogger(ctx context.Context, userID int) zerolog.Logger {
	lc := e.logger.With().Int("user_id", userID)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc.Logger()
}

// onAppend invalidates the user's profile after a successful append.
func (e *Engine) onAppend(userID int) {
	e.eventsRecorded.Add(1)
	e.caches.InvalidateUser(userID)
}

// track counts a request and records its outcome.
func (e *Engine) track(operation string, start time.Time, err *error) {
	e.requestCount.Add(1)
	if *err != nil {
		e.errorCount.Add(1)
	}
	metrics.RecordRecommendOperation(operation, time.Since(start), *err)
}

// resolveLimit applies the default for 0 and rejects values outside [1, max].
func resolveLimit(limit, def, maxLimit int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLimit, limit, maxLimit)
	}
	return limit, nil
}

// copyResults returns the first limit results in a new slice.
func copyResults(results []Result, limit int) []Result {
	n := min(len(results), limit)
	out := make([]Result, n)
	copy(out, results[:n])
	return out
}
