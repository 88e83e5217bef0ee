// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"

	"github.com/tomtom215/reelmatch/internal/store"
)

// DefaultTopGenres is the number of top preference genres considered when
// matching recommendations.
const DefaultTopGenres = 2

// DefaultMaxRecommendations caps the size of a recommendation set.
const DefaultMaxRecommendations = 5

// ratedMovie pairs a movie id with the source user's rating for it.
type ratedMovie struct {
	movieID int
	rating  float64
}

// TopGenres returns up to n genres with the highest preference values,
// descending. Equal preference values break toward the lexicographically
// smaller genre name so the cut at n is reproducible across runs.
func TopGenres(p store.Profile, n int) []string {
	genres := make([]string, 0, len(p))
	for genre := range p {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if p[genres[i]] != p[genres[j]] {
			return p[genres[i]] > p[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > n {
		genres = genres[:n]
	}
	return genres
}

// Recommend filters and ranks the source user's rated movies into a
// recommendation set for the recipient:
//
//  1. take the recipient's top genres (at most topGenres; fewer exist for
//     thin profiles, zero yields an empty result),
//  2. drop every movie the recipient has already rated,
//  3. keep movies tagged with at least one top genre,
//  4. rank by the source's rating descending and truncate to limit,
//  5. resolve ids to titles.
//
// The result is a title set: distinct movie ids sharing a title collapse to
// one entry, so the returned slice may be shorter than limit even when more
// movies survived the filters. Titles come back sorted for deterministic
// output. Unknown source or recipient fails with *store.UnknownUserError.
func Recommend(sourceID, recipientID int, st *store.Store, topGenres, limit int) ([]string, error) {
	if topGenres <= 0 {
		topGenres = DefaultTopGenres
	}
	if limit <= 0 {
		limit = DefaultMaxRecommendations
	}

	sourceRatings, err := st.Ratings(sourceID)
	if err != nil {
		return nil, err
	}
	recipientRatings, err := st.Ratings(recipientID)
	if err != nil {
		return nil, err
	}
	recipientProfile, err := st.Profile(recipientID)
	if err != nil {
		return nil, err
	}

	wanted := TopGenres(recipientProfile, topGenres)

	unseen := removeSeen(sourceRatings, recipientRatings)
	matched := matchingGenres(unseen, wanted, st)

	// Rank by the source's rating, equal ratings fall to the smaller movie
	// id to keep the truncation reproducible.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].rating != matched[j].rating {
			return matched[i].rating > matched[j].rating
		}
		return matched[i].movieID < matched[j].movieID
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}

	titles := make(map[string]struct{}, len(matched))
	for _, m := range matched {
		title, err := st.Catalog().Title(m.movieID)
		if err != nil {
			return nil, err
		}
		titles[title] = struct{}{}
	}

	out := make([]string, 0, len(titles))
	for title := range titles {
		out = append(out, title)
	}
	sort.Strings(out)
	return out, nil
}

// removeSeen returns the source's rated movies minus anything the recipient
// has already rated. Exact id match only.
func removeSeen(source, recipient map[int]float64) []ratedMovie {
	unseen := make([]ratedMovie, 0, len(source))
	for movieID, rating := range source {
		if _, seen := recipient[movieID]; !seen {
			unseen = append(unseen, ratedMovie{movieID: movieID, rating: rating})
		}
	}
	return unseen
}

// matchingGenres keeps movies tagged with at least one of the wanted genres.
func matchingGenres(movies []ratedMovie, wanted []string, st *store.Store) []ratedMovie {
	wantedSet := make(map[string]struct{}, len(wanted))
	for _, genre := range wanted {
		wantedSet[genre] = struct{}{}
	}

	matched := make([]ratedMovie, 0, len(movies))
	for _, m := range movies {
		genres, ok := st.Catalog().Genres(m.movieID)
		if !ok {
			// Store construction guarantees rated movies exist in the
			// catalog; an id slipping through here is a programming error
			// upstream, and skipping keeps the pipeline total.
			continue
		}
		for _, genre := range genres {
			if _, want := wantedSet[genre]; want {
				matched = append(matched, m)
				break
			}
		}
	}
	return matched
}
