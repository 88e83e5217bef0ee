// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import "fmt"

// UnknownMovieError reports a rating that references a movie id absent from
// the catalog.
type UnknownMovieError struct {
	MovieID int
}

func (e *UnknownMovieError) Error() string {
	return fmt.Sprintf("movie %d is not in the catalog", e.MovieID)
}

// UnknownUserError reports a requested user id with no entry in the store.
type UnknownUserError struct {
	UserID int
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("user %d is not in the store", e.UserID)
}
