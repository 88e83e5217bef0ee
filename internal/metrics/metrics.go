// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics registers the Prometheus collectors for ReelMatch:
// recommendation throughput and latency, store population, scraper fetch
// outcomes, circuit breaker state, and HTTP request durations.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation engine metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"status"}, // "ok", "unknown_user", "no_candidates", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_duration_seconds",
			Help:    "End-to-end duration of a recommendation request",
			Buckets: prometheus.DefBuckets,
		},
	)

	NeighborScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_neighbor_scan_duration_seconds",
			Help:    "Duration of the nearest-neighbor similarity scan",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationSetSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_set_size",
			Help:    "Number of titles in a returned recommendation set",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// Store metrics
	StoreUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_store_users",
			Help: "Current number of users in the ratings store",
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	// Scraper metrics
	ScrapeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_scrape_requests_total",
			Help: "Total scraper page fetches by kind and outcome",
		},
		[]string{"kind", "status"}, // kind: "movies", "ratings"
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method, route, and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveHTTPRequest records one HTTP request observation.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
