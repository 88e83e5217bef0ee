// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package store owns the per-user raw ratings and their derived genre
// preference profiles, keeping the two in sync on every write.
package store

import (
	"sort"
	"sync"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Store holds the movie catalog together with every known user's raw ratings
// and derived preference profile. Profiles are derived on write so a user's
// ratings and profile can never drift apart.
//
// Store is safe for concurrent use: the batch pipeline runs single-threaded,
// but the HTTP surface merges ratings while serving recommendations.
type Store struct {
	mu       sync.RWMutex
	catalog  *catalog.Catalog
	ratings  map[int]map[int]float64
	profiles map[int]Profile
}

// New builds a Store from the catalog and the initial per-user ratings,
// deriving every user's preference profile up front. A rating against a
// movie missing from the catalog fails with *UnknownMovieError.
func New(cat *catalog.Catalog, ratings map[int]map[int]float64) (*Store, error) {
	s := &Store{
		catalog:  cat,
		ratings:  make(map[int]map[int]float64, len(ratings)),
		profiles: make(map[int]Profile, len(ratings)),
	}

	for userID, userRatings := range ratings {
		if err := s.put(userID, userRatings); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// put stores one user's ratings and derived profile. Caller must hold mu or
// have exclusive access.
func (s *Store) put(userID int, userRatings map[int]float64) error {
	profile, err := DeriveProfile(userRatings, s.catalog)
	if err != nil {
		return err
	}

	copied := make(map[int]float64, len(userRatings))
	for movieID, rating := range userRatings {
		copied[movieID] = rating
	}
	s.ratings[userID] = copied
	s.profiles[userID] = profile
	return nil
}

// Merge adds or overwrites one user's ratings. Replace semantics: the user's
// prior ratings and profile are discarded entirely, never accumulated into.
func (s *Store) Merge(userID int, userRatings map[int]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(userID, userRatings)
}

// MergeAll applies Merge for every user in the batch. Used for the optional
// new-ratings overlay, which carries the same shape as the initial dataset.
func (s *Store) MergeAll(ratings map[int]map[int]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, userRatings := range ratings {
		if err := s.put(userID, userRatings); err != nil {
			return err
		}
	}
	return nil
}

// Catalog returns the movie catalog backing this store.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Ratings returns a copy of one user's raw ratings, or *UnknownUserError.
func (s *Store) Ratings(userID int) (map[int]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userRatings, ok := s.ratings[userID]
	if !ok {
		return nil, &UnknownUserError{UserID: userID}
	}
	out := make(map[int]float64, len(userRatings))
	for movieID, rating := range userRatings {
		out[movieID] = rating
	}
	return out, nil
}

// Profile returns a copy of one user's preference profile, or
// *UnknownUserError.
func (s *Store) Profile(userID int) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, &UnknownUserError{UserID: userID}
	}
	return profile.Clone(), nil
}

// Profiles returns an immutable snapshot of every user's profile. The
// neighbor scan iterates this snapshot so a concurrent Merge cannot skew a
// running similarity search.
func (s *Store) Profiles() map[int]Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]Profile, len(s.profiles))
	for userID, profile := range s.profiles {
		out[userID] = profile.Clone()
	}
	return out
}

// UserIDs returns every known user id in ascending order.
func (s *Store) UserIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.ratings))
	for id := range s.ratings {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of known users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings)
}
