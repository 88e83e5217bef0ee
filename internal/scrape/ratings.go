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

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Ratings fetches ratings_<id>.html under baseURL for every movie id and
// accumulates the per-user rating maps. Each page is a table whose rows
// carry td.user_id and td.rating cells.
func Ratings(ctx context.Context, client *Client, baseURL string, movieIDs []int) (map[int]map[int]float64, error) {
	ratings := make(map[int]map[int]float64)

	for _, movieID := range movieIDs {
		url := fmt.Sprintf("%sratings_%d.html", baseURL, movieID)
		body, err := client.Get(ctx, url)
		if err != nil {
			metrics.ScrapeRequests.WithLabelValues("ratings", "error").Inc()
			return nil, err
		}
		metrics.ScrapeRequests.WithLabelValues("ratings", "ok").Inc()

		if err := parseRatingsPage(body, movieID, ratings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", url, err)
		}
	}

	logging.Info().
		Int("movies", len(movieIDs)).
		Int("users", len(ratings)).
		Msg("Ratings scrape complete")
	return ratings, nil
}

// parseRatingsPage folds one movie's rating rows into the accumulator.
func parseRatingsPage(body []byte, movieID int, ratings map[int]map[int]float64) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return err
	}

	var rowErr error
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 || rowErr != nil {
			return
		}

		userText := strings.TrimSpace(row.Find("td.user_id").Text())
		userID, err := strconv.Atoi(userText)
		if err != nil {
			rowErr = fmt.Errorf("user id %q is not an integer", userText)
			return
		}

		ratingText := strings.TrimSpace(row.Find("td.rating").Text())
		rating, err := strconv.ParseFloat(ratingText, 64)
		if err != nil {
			rowErr = fmt.Errorf("rating %q is not a number", ratingText)
			return
		}

		if ratings[userID] == nil {
			ratings[userID] = make(map[int]float64)
		}
		ratings[userID][movieID] = rating
	})
	return rowErr
}
