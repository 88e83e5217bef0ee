// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Movie{
		{ID: 1, Title: "A", Genres: []string{"Comedy"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Comedy", "Drama"}},
		{ID: 4, Title: "D", Genres: []string{"Horror", "Horror"}},
	})
}

func TestDeriveProfile(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name    string
		ratings map[int]float64
		want    Profile
	}{
		{
			name:    "averages across genres",
			ratings: map[int]float64{1: 5.0, 2: 1.0},
			want:    Profile{"Comedy": 5.0, "Drama": 1.0},
		},
		{
			name:    "multi-genre movie contributes to each genre",
			ratings: map[int]float64{1: 4.0, 3: 5.0},
			want:    Profile{"Comedy": 4.5, "Drama": 5.0},
		},
		{
			name:    "duplicate genre tags average out to the same value",
			ratings: map[int]float64{4: 3.0},
			want:    Profile{"Horror": 3.0},
		},
		{
			name:    "empty ratings give empty profile",
			ratings: map[int]float64{},
			want:    Profile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveProfile(tt.ratings, cat)
			if err != nil {
				t.Fatalf("DeriveProfile() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("DeriveProfile() = %v, want %v", got, tt.want)
			}
			for genre, want := range tt.want {
				if math.Abs(got[genre]-want) > 1e-9 {
					t.Errorf("profile[%q] = %f, want %f", genre, got[genre], want)
				}
			}
		})
	}
}

func TestDeriveProfileUnknownMovie(t *testing.T) {
	_, err := DeriveProfile(map[int]float64{99: 4.0}, testCatalog())

	var unknownMovie *UnknownMovieError
	if !errors.As(err, &unknownMovie) {
		t.Fatalf("DeriveProfile() error = %v, want *UnknownMovieError", err)
	}
	if unknownMovie.MovieID != 99 {
		t.Errorf("MovieID = %d, want 99", unknownMovie.MovieID)
	}
}

func TestNewRejectsUnknownMovie(t *testing.T) {
	_, err := New(testCatalog(), map[int]map[int]float64{
		10: {1: 5.0},
		20: {77: 2.0},
	})

	var unknownMovie *UnknownMovieError
	if !errors.As(err, &unknownMovie) {
		t.Fatalf("New() error = %v, want *UnknownMovieError", err)
	}
}

func TestStoreUnknownUser(t *testing.T) {
	s, err := New(testCatalog(), map[int]map[int]float64{10: {1: 5.0}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := s.Ratings(999); err == nil {
		t.Error("Ratings(999) error = nil, want *UnknownUserError")
	}

	_, err = s.Profile(999)
	var unknownUser *UnknownUserError
	if !errors.As(err, &unknownUser) {
		t.Fatalf("Profile(999) error = %v, want *UnknownUserError", err)
	}
	if unknownUser.UserID != 999 {
		t.Errorf("UserID = %d, want 999", unknownUser.UserID)
	}
}

func TestMergeReplacesEntirely(t *testing.T) {
	s, err := New(testCatalog(), map[int]map[int]float64{
		10: {1: 5.0, 2: 1.0},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// New batch omits movie 2; its Drama average must not survive the merge.
	if err := s.Merge(10, map[int]float64{1: 3.0}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	profile, err := s.Profile(10)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if _, ok := profile["Drama"]; ok {
		t.Errorf("Drama average persisted after replace merge: %v", profile)
	}
	if profile["Comedy"] != 3.0 {
		t.Errorf("profile[Comedy] = %f, want 3.0", profile["Comedy"])
	}

	ratings, err := s.Ratings(10)
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	if _, ok := ratings[2]; ok {
		t.Errorf("old rating persisted after replace merge: %v", ratings)
	}
}

func TestMergeAddsNewUser(t *testing.T) {
	s, err := New(testCatalog(), map[int]map[int]float64{10: {1: 5.0}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Merge(20, map[int]float64{3: 4.0}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := s.UserIDs(); !reflect.DeepEqual(got, []int{10, 20}) {
		t.Errorf("UserIDs() = %v, want [10 20]", got)
	}
}

func TestMergeRejectsUnknownMovie(t *testing.T) {
	s, err := New(testCatalog(), map[int]map[int]float64{10: {1: 5.0}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var unknownMovie *UnknownMovieError
	if err := s.Merge(20, map[int]float64{500: 1.0}); !errors.As(err, &unknownMovie) {
		t.Fatalf("Merge() error = %v, want *UnknownMovieError", err)
	}

	// The failed merge must not leave a partial user behind.
	if _, err := s.Profile(20); err == nil {
		t.Error("Profile(20) succeeded after failed merge")
	}
}

func TestProfilesSnapshotIsolation(t *testing.T) {
	s, err := New(testCatalog(), map[int]map[int]float64{10: {1: 5.0}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	snapshot := s.Profiles()
	snapshot[10]["Comedy"] = -100

	profile, err := s.Profile(10)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile["Comedy"] != 5.0 {
		t.Errorf("snapshot mutation leaked into store: profile[Comedy] = %f", profile["Comedy"])
	}
}
