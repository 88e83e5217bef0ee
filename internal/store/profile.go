// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Profile maps a genre to the arithmetic mean of a user's ratings for movies
// tagged with that genre. A genre the user has never rated is absent, not
// zero; downstream similarity math depends on that distinction.
type Profile map[string]float64

// Clone returns an independent copy of the profile.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for g, v := range p {
		out[g] = v
	}
	return out
}

// DeriveProfile converts a user's raw movie ratings into their genre
// preference profile. It is a pure function of its inputs.
//
// A movie tagged with a genre more than once contributes its rating once per
// tag occurrence, matching the source dataset's duplicate handling. A rating
// for a movie missing from the catalog returns *UnknownMovieError.
func DeriveProfile(ratings map[int]float64, cat *catalog.Catalog) (Profile, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for movieID, rating := range ratings {
		genres, ok := cat.Genres(movieID)
		if !ok {
			return nil, &UnknownMovieError{MovieID: movieID}
		}
		for _, genre := range genres {
			sums[genre] += rating
			counts[genre]++
		}
	}

	profile := make(Profile, len(sums))
	for genre, sum := range sums {
		profile[genre] = sum / float64(counts[genre])
	}
	return profile, nil
}
