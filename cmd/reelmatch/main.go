// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the entry point for the ReelMatch command.
//
// ReelMatch recommends movies by matching a user's genre taste profile
// against every other user in the ratings dataset. It has three modes:
//
//   - Batch (default): load the datasets, derive preference profiles, find
//     the nearest neighbor of the target user, and write the recommendation
//     record as JSON.
//   - Serve (-serve): expose profiles and recommendations over a REST API
//     with Prometheus metrics, supervised by a suture tree.
//   - Scrape (-scrape): fetch the movie catalog and per-movie ratings from
//     the configured source site and write the dataset JSON files.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (MOVIES_PATH, TARGET_USER, HTTP_PORT, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Batch run against the bundled datasets:
//
//	export TARGET_USER=123456789
//	./reelmatch
//
// Serve mode:
//
//	export HTTP_PORT=8460
//	./reelmatch -serve
//
// Scrape a fresh dataset:
//
//	export SCRAPE_MOVIES_URL=https://example.com/movies/
//	export SCRAPE_RATINGS_URL=https://example.com/ratings/
//	./reelmatch -scrape
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/scrape"
	"github.com/tomtom215/reelmatch/internal/store"
	"github.com/tomtom215/reelmatch/internal/supervisor"
)

func main() {
	var (
		serveMode  = flag.Bool("serve", false, "run the HTTP API instead of a batch recommendation")
		scrapeMode = flag.Bool("scrape", false, "scrape the source site and write the dataset files")
		targetUser = flag.Int("user", -1, "batch mode target user (overrides configuration)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// Config errors are logged with the default logger since the
		// configured one is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if *targetUser >= 0 {
		cfg.Datasets.TargetUser = *targetUser
	}

	switch {
	case *serveMode && *scrapeMode:
		logging.Fatal().Msg("-serve and -scrape are mutually exclusive")
	case *scrapeMode:
		err = runScrape(cfg)
	case *serveMode:
		err = runServe(cfg)
	default:
		err = runBatch(cfg)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("ReelMatch failed")
	}
}

// loadStore builds the in-memory store from the configured datasets and
// applies the optional new-ratings overlay.
func loadStore(cfg *config.Config) (*store.Store, error) {
	cat, err := dataset.LoadCatalog(cfg.Datasets.MoviesPath)
	if err != nil {
		return nil, fmt.Errorf("loading movie catalog: %w", err)
	}
	ratings, err := dataset.LoadRatings(cfg.Datasets.RatingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading ratings: %w", err)
	}

	st, err := store.New(cat, ratings)
	if err != nil {
		return nil, fmt.Errorf("building store: %w", err)
	}

	if path := cfg.Datasets.NewRatingsPath; path != "" {
		overlay, err := dataset.LoadRatings(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// The overlay is optional. Proceed with base data only.
			logging.Warn().
				Str("path", path).
				Msg("New ratings file not found, continuing without it")
		case err != nil:
			return nil, fmt.Errorf("loading new ratings: %w", err)
		default:
			if err := st.MergeAll(overlay); err != nil {
				return nil, fmt.Errorf("merging new ratings: %w", err)
			}
			logging.Info().
				Str("path", path).
				Int("users", len(overlay)).
				Msg("Merged new ratings")
		}
	}

	metrics.StoreUsers.Set(float64(st.Len()))
	metrics.CatalogMovies.Set(float64(cat.Len()))

	logging.Info().
		Int("movies", cat.Len()).
		Int("users", st.Len()).
		Msg("Datasets loaded")
	return st, nil
}

func engineConfig(cfg *config.Config) recommend.Config {
	return recommend.Config{
		TopGenres:          cfg.Recommend.TopGenres,
		MaxRecommendations: cfg.Recommend.MaxRecommendations,
		Workers:            cfg.Recommend.Workers,
	}
}

// runBatch performs a single recommendation run for the configured target
// user and writes the result record to the output path.
func runBatch(cfg *config.Config) error {
	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(st, engineConfig(cfg), logging.Logger())

	result, err := engine.RecommendFor(cfg.Datasets.TargetUser)
	if err != nil {
		return fmt.Errorf("recommending for user %d: %w", cfg.Datasets.TargetUser, err)
	}

	if err := dataset.WriteResult(cfg.Datasets.OutputPath, result); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	logging.Info().
		Str("path", cfg.Datasets.OutputPath).
		Int("similar_user", result.SimilarUser).
		Int("recommendations", len(result.RecommendedMovies)).
		Msg("Recommendation run complete")
	return nil
}

// runServe starts the supervised HTTP API and blocks until SIGINT or
// SIGTERM.
func runServe(cfg *config.Config) error {
	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(st, engineConfig(cfg), logging.Logger())
	handler := api.NewHandler(st, engine)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
		CORSOrigins:       cfg.Server.CORSOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.Add(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("addr", server.Addr).
		Msg("Starting ReelMatch API")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}
	logging.Info().Msg("ReelMatch API stopped")
	return nil
}

// runScrape fetches the catalog and ratings from the source site and
// writes the dataset JSON files into the scrape output directory.
func runScrape(cfg *config.Config) error {
	if cfg.Scrape.MoviesURL == "" || cfg.Scrape.RatingsURL == "" {
		return fmt.Errorf("scrape mode requires scrape.movies_url and scrape.ratings_url")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := scrape.NewClient(scrape.ClientConfig{
		RequestsPerSecond: cfg.Scrape.RequestsPerSecond,
		Burst:             cfg.Scrape.Burst,
		Timeout:           cfg.Scrape.Timeout,
	})

	movies, err := scrape.Movies(ctx, client, cfg.Scrape.MoviesURL)
	if err != nil {
		return fmt.Errorf("scraping movies: %w", err)
	}
	logging.Info().Int("movies", len(movies)).Msg("Movie catalog scraped")

	movieIDs := make([]int, 0, len(movies))
	for id := range movies {
		movieIDs = append(movieIDs, id)
	}
	ratings, err := scrape.Ratings(ctx, client, cfg.Scrape.RatingsURL, movieIDs)
	if err != nil {
		return fmt.Errorf("scraping ratings: %w", err)
	}
	logging.Info().Int("users", len(ratings)).Msg("Ratings scraped")

	if err := os.MkdirAll(cfg.Scrape.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	moviesPath := filepath.Join(cfg.Scrape.OutputDir, "all_movies_info.json")
	ratingsPath := filepath.Join(cfg.Scrape.OutputDir, "large_movies.json")

	if err := dataset.WriteCatalog(moviesPath, movies); err != nil {
		return fmt.Errorf("writing movie catalog: %w", err)
	}
	if err := dataset.WriteRatings(ratingsPath, ratings); err != nil {
		return fmt.Errorf("writing ratings: %w", err)
	}

	logging.Info().
		Str("movies_path", moviesPath).
		Str("ratings_path", ratingsPath).
		Msg("Scrape complete")
	return nil
}
