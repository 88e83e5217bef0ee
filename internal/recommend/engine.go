// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/store"
)

// Config holds recommendation engine tuning.
type Config struct {
	// TopGenres is the number of top preference genres used by the
	// recommendation filter. Default: 2.
	TopGenres int

	// MaxRecommendations caps the recommendation set size. Default: 5.
	MaxRecommendations int

	// Workers is the parallelism of the neighbor similarity scan.
	// Default: 4.
	Workers int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		TopGenres:          DefaultTopGenres,
		MaxRecommendations: DefaultMaxRecommendations,
		Workers:            4,
	}
}

// Result is the record returned for one recommendation request: the selected
// neighbor, both preference profiles, and the recommended title set.
type Result struct {
	// RunID uniquely identifies this recommendation run.
	RunID string `json:"run_id"`

	// GeneratedAt is when the recommendation was computed.
	GeneratedAt time.Time `json:"generated_at"`

	// SimilarUser is the id of the selected nearest neighbor.
	SimilarUser int `json:"similar_user"`

	// SimilarUserPrefs is the neighbor's full preference profile.
	SimilarUserPrefs store.Profile `json:"similar_user_prefs"`

	// YourPrefs is the target user's full preference profile.
	YourPrefs store.Profile `json:"your_prefs"`

	// RecommendedMovies is the recommended title set, sorted.
	RecommendedMovies []string `json:"recommended_movies"`
}

// Engine wires the similarity scorer, neighbor selector, and recommendation
// filter over a ratings store. It is safe for concurrent use; all state it
// touches lives in the store, which synchronizes itself.
type Engine struct {
	store  *store.Store
	config Config
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine over the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(st *store.Store, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.TopGenres <= 0 {
		cfg.TopGenres = DefaultTopGenres
	}
	if cfg.MaxRecommendations <= 0 {
		cfg.MaxRecommendations = DefaultMaxRecommendations
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return &Engine{
		store:  st,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// RecommendFor computes the full recommendation record for one target user:
// nearest neighbor by profile similarity, then the neighbor's top unseen,
// genre-matching movies. Fails fast with the store/selector error taxonomy;
// no partial results.
func (e *Engine) RecommendFor(targetID int) (*Result, error) {
	start := time.Now()

	result, err := e.recommendFor(targetID)

	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendationsTotal.WithLabelValues(statusLabel(err)).Inc()

	if err != nil {
		e.logger.Error().Err(err).Int("target_id", targetID).Msg("Recommendation failed")
		return nil, err
	}

	metrics.RecommendationSetSize.Observe(float64(len(result.RecommendedMovies)))
	e.logger.Info().
		Int("target_id", targetID).
		Int("similar_user", result.SimilarUser).
		Int("titles", len(result.RecommendedMovies)).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendation computed")
	return result, nil
}

func (e *Engine) recommendFor(targetID int) (*Result, error) {
	targetProfile, err := e.store.Profile(targetID)
	if err != nil {
		return nil, err
	}

	scanStart := time.Now()
	profiles := e.store.Profiles()
	neighborID, err := FindNearest(targetID, profiles, e.config.Workers)
	metrics.NeighborScanDuration.Observe(time.Since(scanStart).Seconds())
	if err != nil {
		return nil, err
	}

	titles, err := Recommend(neighborID, targetID, e.store, e.config.TopGenres, e.config.MaxRecommendations)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		SimilarUser:       neighborID,
		SimilarUserPrefs:  profiles[neighborID],
		YourPrefs:         targetProfile,
		RecommendedMovies: titles,
	}, nil
}

// statusLabel maps an error to its metrics outcome label.
func statusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isUnknownUser(err):
		return "unknown_user"
	case isNoCandidates(err):
		return "no_candidates"
	default:
		return "error"
	}
}

func isUnknownUser(err error) bool {
	var unknownUser *store.UnknownUserError
	return errors.As(err, &unknownUser)
}

func isNoCandidates(err error) bool {
	var noOthers *NoOtherUsersError
	return errors.As(err, &noOthers)
}
