// ReelMatch - Genre Taste Matching and Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads ReelMatch configuration via Koanf v2 with layered
// sources: built-in defaults, an optional YAML config file, and environment
// variables (highest priority).
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for ReelMatch.
type Config struct {
	Datasets  DatasetsConfig  `koanf:"datasets"`
	Recommend RecommendConfig `koanf:"recommend"`
	Scrape    ScrapeConfig    `koanf:"scrape"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetsConfig locates the on-disk JSON datasets and the batch output.
type DatasetsConfig struct {
	// MoviesPath is the movie catalog dataset.
	MoviesPath string `koanf:"movies_path" validate:"required"`

	// RatingsPath is the initial per-user ratings dataset.
	RatingsPath string `koanf:"ratings_path" validate:"required"`

	// NewRatingsPath is the optional ratings overlay merged before a batch
	// run. Empty disables the merge; a configured-but-missing file logs a
	// warning and the run proceeds unmerged.
	NewRatingsPath string `koanf:"new_ratings_path"`

	// OutputPath is where the batch run writes the recommendation record.
	OutputPath string `koanf:"output_path" validate:"required"`

	// TargetUser is the user the batch run recommends for.
	TargetUser int `koanf:"target_user"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// TopGenres is how many top preference genres the filter matches on.
	TopGenres int `koanf:"top_genres" validate:"gt=0"`

	// MaxRecommendations caps the recommendation set size.
	MaxRecommendations int `koanf:"max_recommendations" validate:"gt=0"`

	// Workers is the parallelism of the neighbor similarity scan.
	Workers int `koanf:"workers" validate:"gt=0"`
}

// ScrapeConfig controls dataset acquisition from the source site.
type ScrapeConfig struct {
	// MoviesURL is the base URL of the paginated movie tables
	// (page_1.html lives directly under it).
	MoviesURL string `koanf:"movies_url"`

	// RatingsURL is the base URL of the per-movie rating pages
	// (ratings_<id>.html lives directly under it).
	RatingsURL string `koanf:"ratings_url"`

	// OutputDir receives the scraped dataset JSON files.
	OutputDir string `koanf:"output_dir"`

	// RequestsPerSecond throttles fetches against the source site.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gt=0"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst" validate:"gt=0"`

	// Timeout bounds a single page fetch.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// ServerConfig holds the HTTP API settings for serve mode.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"gt=0,lte=65535"`

	// ReadTimeout/WriteTimeout bound request processing.
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RateLimitRequests per RateLimitWindow per client IP.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gt=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`

	// CORSOrigins is the allowed origin list. Empty denies cross-origin.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			MoviesPath:     "scrapes/all_movies_info.json",
			RatingsPath:    "scrapes/large_movies.json",
			NewRatingsPath: "my_movie_ratings.json",
			OutputPath:     "out/recommendations.json",
			TargetUser:     123456789,
		},
		Recommend: RecommendConfig{
			TopGenres:          2,
			MaxRecommendations: 5,
			Workers:            4,
		},
		Scrape: ScrapeConfig{
			MoviesURL:         "",
			RatingsURL:        "",
			OutputDir:         "scrapes",
			RequestsPerSecond: 4,
			Burst:             2,
			Timeout:           15 * time.Second,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8460,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Datasets.TargetUser < 0 {
		return fmt.Errorf("invalid configuration: target_user must be non-negative, got %d", c.Datasets.TargetUser)
	}
	return nil
}
