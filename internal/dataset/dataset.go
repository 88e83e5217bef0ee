// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset reads and writes the on-disk JSON datasets: the movie
// catalog, per-user ratings, and the recommendation result record.
//
// The wire format keeps the scraper's conventions: all integer keys are
// JSON strings, and a catalog entry is a two-element array of title and
// genre list:
//
//	{"912": ["The Grand Heist", ["Comedy", "Crime"]]}
//	{"123456789": {"912": 4.5}}
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// movieRecord is the catalog wire entry: ["Title", ["Genre", ...]].
type movieRecord struct {
	Title  string
	Genres []string
}

// UnmarshalJSON decodes the two-element array form.
func (r *movieRecord) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("movie record has %d elements, want 2", len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.Title); err != nil {
		return fmt.Errorf("movie title: %w", err)
	}
	if err := json.Unmarshal(parts[1], &r.Genres); err != nil {
		return fmt.Errorf("movie genres: %w", err)
	}
	return nil
}

// MarshalJSON encodes back to the two-element array form.
func (r movieRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.Title, r.Genres})
}

// ParseCatalog decodes the movie dataset bytes into a Catalog.
func ParseCatalog(data []byte) (*catalog.Catalog, error) {
	var raw map[string]movieRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode movie dataset: %w", err)
	}

	movies := make([]catalog.Movie, 0, len(raw))
	for key, rec := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("movie id %q is not an integer", key)
		}
		movies = append(movies, catalog.Movie{
			ID:     id,
			Title:  rec.Title,
			Genres: rec.Genres,
		})
	}
	return catalog.New(movies), nil
}

// LoadCatalog reads and decodes the movie dataset at path.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read movie dataset: %w", err)
	}
	return ParseCatalog(data)
}

// ParseRatings decodes ratings dataset bytes into userID -> movieID -> rating.
func ParseRatings(data []byte) (map[int]map[int]float64, error) {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ratings dataset: %w", err)
	}

	ratings := make(map[int]map[int]float64, len(raw))
	for userKey, userRatings := range raw {
		userID, err := strconv.Atoi(userKey)
		if err != nil {
			return nil, fmt.Errorf("user id %q is not an integer", userKey)
		}
		converted := make(map[int]float64, len(userRatings))
		for movieKey, rating := range userRatings {
			movieID, err := strconv.Atoi(movieKey)
			if err != nil {
				return nil, fmt.Errorf("movie id %q is not an integer", movieKey)
			}
			converted[movieID] = rating
		}
		ratings[userID] = converted
	}
	return ratings, nil
}

// LoadRatings reads and decodes the ratings dataset at path.
func LoadRatings(path string) (map[int]map[int]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratings dataset: %w", err)
	}
	return ParseRatings(data)
}

// WriteCatalog writes movies to path in the catalog wire format.
func WriteCatalog(path string, movies map[int]catalog.Movie) error {
	out := make(map[string]movieRecord, len(movies))
	for id, mv := range movies {
		out[strconv.Itoa(id)] = movieRecord{Title: mv.Title, Genres: mv.Genres}
	}
	return writeJSON(path, out)
}

// WriteRatings writes ratings to path in the ratings wire format.
func WriteRatings(path string, ratings map[int]map[int]float64) error {
	out := make(map[string]map[string]float64, len(ratings))
	for userID, userRatings := range ratings {
		converted := make(map[string]float64, len(userRatings))
		for movieID, rating := range userRatings {
			converted[strconv.Itoa(movieID)] = rating
		}
		out[strconv.Itoa(userID)] = converted
	}
	return writeJSON(path, out)
}

// WriteResult serializes any result record to path as indented JSON.
func WriteResult(path string, result interface{}) error {
	return writeJSON(path, result)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
