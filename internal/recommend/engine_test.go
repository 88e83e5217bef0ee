// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/store"
)

func TestEngineEndToEnd(t *testing.T) {
	// The worked example: two users over a three-movie catalog.
	cat := catalog.New([]catalog.Movie{
		{ID: 1, Title: "A", Genres: []string{"Comedy"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Comedy", "Drama"}},
	})
	st, err := store.New(cat, map[int]map[int]float64{
		10: {1: 5.0, 2: 1.0},
		20: {1: 4.0, 3: 5.0},
	})
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}

	engine := NewEngine(st, DefaultConfig(), zerolog.Nop())

	result, err := engine.RecommendFor(10)
	if err != nil {
		t.Fatalf("RecommendFor() error = %v", err)
	}

	if result.SimilarUser != 20 {
		t.Errorf("SimilarUser = %d, want 20", result.SimilarUser)
	}

	wantYours := store.Profile{"Comedy": 5.0, "Drama": 1.0}
	for genre, want := range wantYours {
		if math.Abs(result.YourPrefs[genre]-want) > 1e-9 {
			t.Errorf("YourPrefs[%q] = %f, want %f", genre, result.YourPrefs[genre], want)
		}
	}
	wantNeighbor := store.Profile{"Comedy": 4.5, "Drama": 5.0}
	for genre, want := range wantNeighbor {
		if math.Abs(result.SimilarUserPrefs[genre]-want) > 1e-9 {
			t.Errorf("SimilarUserPrefs[%q] = %f, want %f", genre, result.SimilarUserPrefs[genre], want)
		}
	}

	// Movie 1 is already seen by user 10; only C survives the pipeline.
	if !reflect.DeepEqual(result.RecommendedMovies, []string{"C"}) {
		t.Errorf("RecommendedMovies = %v, want [C]", result.RecommendedMovies)
	}

	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if result.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
}

func TestEngineUnknownTarget(t *testing.T) {
	cat := catalog.New([]catalog.Movie{{ID: 1, Title: "A", Genres: []string{"Comedy"}}})
	st, err := store.New(cat, map[int]map[int]float64{10: {1: 5.0}})
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	engine := NewEngine(st, DefaultConfig(), zerolog.Nop())

	_, err = engine.RecommendFor(999)
	var unknownUser *store.UnknownUserError
	if !errors.As(err, &unknownUser) {
		t.Fatalf("RecommendFor() error = %v, want *store.UnknownUserError", err)
	}
}

func TestEngineNoOtherUsers(t *testing.T) {
	cat := catalog.New([]catalog.Movie{{ID: 1, Title: "A", Genres: []string{"Comedy"}}})
	st, err := store.New(cat, map[int]map[int]float64{10: {1: 5.0}})
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	engine := NewEngine(st, DefaultConfig(), zerolog.Nop())

	_, err = engine.RecommendFor(10)
	var noOthers *NoOtherUsersError
	if !errors.As(err, &noOthers) {
		t.Fatalf("RecommendFor() error = %v, want *NoOtherUsersError", err)
	}
}

func TestEngineAfterMergeOverwrite(t *testing.T) {
	cat := catalog.New([]catalog.Movie{
		{ID: 1, Title: "A", Genres: []string{"Comedy"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Drama"}},
	})
	st, err := store.New(cat, map[int]map[int]float64{
		10: {1: 5.0},
		20: {2: 5.0, 3: 4.0},
	})
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	engine := NewEngine(st, DefaultConfig(), zerolog.Nop())

	// User 10's replacement ratings flip their taste to Drama; the next
	// recommendation must reflect the new profile, not the old one.
	if err := st.Merge(10, map[int]float64{2: 5.0}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	result, err := engine.RecommendFor(10)
	if err != nil {
		t.Fatalf("RecommendFor() error = %v", err)
	}
	if _, ok := result.YourPrefs["Comedy"]; ok {
		t.Errorf("stale Comedy preference survived merge: %v", result.YourPrefs)
	}
	if !reflect.DeepEqual(result.RecommendedMovies, []string{"C"}) {
		t.Errorf("RecommendedMovies = %v, want [C]", result.RecommendedMovies)
	}
}
