// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package scrape

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// firstPage is where the paginated movie listing starts.
const firstPage = "page_1.html"

// Movies walks the paginated movie tables under baseURL and returns the
// catalog entries keyed by movie id. Each page is a table whose rows carry
// td.movie_id, td.movie_title, and td.genres cells; pagination follows the
// "Next page" button's link until it disappears.
func Movies(ctx context.Context, client *Client, baseURL string) (map[int]catalog.Movie, error) {
	movies := make(map[int]catalog.Movie)

	page := firstPage
	for page != "" {
		url := baseURL + page
		body, err := client.Get(ctx, url)
		if err != nil {
			metrics.ScrapeRequests.WithLabelValues("movies", "error").Inc()
			return nil, err
		}
		metrics.ScrapeRequests.WithLabelValues("movies", "ok").Inc()

		next, err := parseMoviePage(body, movies)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", url, err)
		}

		logging.Debug().Str("page", page).Int("movies", len(movies)).Msg("Scraped movie page")
		page = next
	}

	logging.Info().Int("movies", len(movies)).Msg("Movie catalog scrape complete")
	return movies, nil
}

// parseMoviePage extracts this page's movies into the accumulator and
// returns the next page reference, or empty when pagination ends.
func parseMoviePage(body []byte, movies map[int]catalog.Movie) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var rowErr error
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 || rowErr != nil {
			// First row is the header.
			return
		}

		idText := strings.TrimSpace(row.Find("td.movie_id").Text())
		id, err := strconv.Atoi(idText)
		if err != nil {
			rowErr = fmt.Errorf("movie id %q is not an integer", idText)
			return
		}

		title := cleanTitle(row.Find("td.movie_title").Text())
		genres := splitGenres(row.Find("td.genres").Text())

		movies[id] = catalog.Movie{ID: id, Title: title, Genres: genres}
	})
	if rowErr != nil {
		return "", rowErr
	}

	next, _ := doc.Find(`button[aria-label="Next page"]`).Find("a").Attr("href")
	return next, nil
}

// cleanTitle trims whitespace and strips a trailing parenthesized year,
// cutting at the last "(" so titles containing parentheses survive.
func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if idx := strings.LastIndex(title, "("); idx != -1 {
		title = strings.TrimSpace(title[:idx])
	}
	return title
}

// splitGenres splits the comma-separated genre cell, preserving order.
func splitGenres(raw string) []string {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}
