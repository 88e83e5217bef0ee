// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog holds the immutable movie catalog: the mapping from movie
// id to title and genre list that every other component resolves against.
package catalog

import (
	"fmt"
	"sort"
)

// Movie is a single catalog entry. Genres preserve the order and duplicates
// of the source dataset; callers that need set semantics build their own.
type Movie struct {
	// ID is the unique movie identifier.
	ID int `json:"id"`

	// Title is the display title with any year suffix already stripped.
	Title string `json:"title"`

	// Genres is the ordered genre list as tagged in the source dataset.
	Genres []string `json:"genres"`
}

// Catalog is an immutable movie lookup. It is populated once at startup and
// safe for concurrent reads.
type Catalog struct {
	movies map[int]Movie
}

// New builds a Catalog from the given entries. Later entries with a
// duplicate id overwrite earlier ones.
func New(movies []Movie) *Catalog {
	m := make(map[int]Movie, len(movies))
	for _, mv := range movies {
		m[mv.ID] = mv
	}
	return &Catalog{movies: m}
}

// FromMap builds a Catalog directly from an id-keyed map.
func FromMap(movies map[int]Movie) *Catalog {
	m := make(map[int]Movie, len(movies))
	for id, mv := range movies {
		mv.ID = id
		m[id] = mv
	}
	return &Catalog{movies: m}
}

// Lookup returns the movie for the given id.
func (c *Catalog) Lookup(id int) (Movie, bool) {
	mv, ok := c.movies[id]
	return mv, ok
}

// Title resolves a movie id to its title.
func (c *Catalog) Title(id int) (string, error) {
	mv, ok := c.movies[id]
	if !ok {
		return "", fmt.Errorf("catalog: no movie with id %d", id)
	}
	return mv.Title, nil
}

// Genres returns the genre list for a movie id. The returned slice must not
// be mutated.
func (c *Catalog) Genres(id int) ([]string, bool) {
	mv, ok := c.movies[id]
	if !ok {
		return nil, false
	}
	return mv.Genres, true
}

// Len returns the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// IDs returns all movie ids in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.movies))
	for id := range c.movies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// All returns every movie keyed by id. The returned map is a copy; mutating
// it does not affect the catalog.
func (c *Catalog) All() map[int]Movie {
	out := make(map[int]Movie, len(c.movies))
	for id, mv := range c.movies {
		out[id] = mv
	}
	return out
}
