// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package config loads and validates the application configuration.
//
// Configuration is layered: struct defaults first, then an optional YAML
// file, then environment variables with the highest priority.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tastematch/tastematch/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server" validate:"required"`
	Data      DataConfig      `koanf:"data" validate:"required"`
	Prefs     PrefsConfig     `koanf:"prefs" validate:"required"`
	Recommend RecommendConfig `koanf:"recommend" validate:"required"`
	API       APIConfig       `koanf:"api" validate:"required"`
	Logging   LoggingConfig   `koanf:"logging" validate:"required"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// DataConfig points at the JSON source files.
type DataConfig struct {
	// RestaurantsPath is the catalog feed. Required: without it there is
	// nothing to recommend.
	RestaurantsPath string `koanf:"restaurants_path" validate:"required"`

	// CommentsPath and ReviewsPath are optional rating sources; missing or
	// malformed files are skipped at training time.
	CommentsPath string `koanf:"comments_path"`
	ReviewsPath  string `koanf:"reviews_path"`
}

// PrefsConfig configures preference persistence.
type PrefsConfig struct {
	// Store selects the snapshot backend: "badger" or "memory".
	Store string `koanf:"store" validate:"oneof=badger memory"`

	// StorePath is the BadgerDB directory, used when Store is "badger".
	StorePath string `koanf:"store_path"`

	// UserID identifies the session user in the rating matrix.
	UserID string `koanf:"user_id" validate:"required"`
}

// RecommendConfig configures the engine and its training schedule.
type RecommendConfig struct {
	// TrainOnStartup trains the model before the server starts serving.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is the periodic retraining interval. Zero falls back
	// to a daily retrain.
	TrainInterval time.Duration `koanf:"train_interval" validate:"gte=0"`

	// Engine holds the hybrid blend weights and encoder facet weights.
	Engine recommend.Config `koanf:"engine"`
}

// APIConfig bounds API behavior.
type APIConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"gte=1"`
	MaxLimit     int `koanf:"max_limit" validate:"gte=1"`

	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the configuration used before any file or
// environment overrides.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Data: DataConfig{
			RestaurantsPath: "data/restaurants_with_coords.json",
			CommentsPath:    "data/restaurant_comments.json",
			ReviewsPath:     "data/restaurants_reviews.json",
		},
		Prefs: PrefsConfig{
			Store:     "badger",
			StorePath: "data/prefs",
			UserID:    "current_user",
		},
		Recommend: RecommendConfig{
			TrainOnStartup: true,
			TrainInterval:  15 * time.Minute,
			Engine:         recommend.DefaultConfig(),
		},
		API: APIConfig{
			DefaultLimit:    12,
			MaxLimit:        50,
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.API.DefaultLimit > c.API.MaxLimit {
		return fmt.Errorf("api.default_limit (%d) must not exceed api.max_limit (%d)",
			c.API.DefaultLimit, c.API.MaxLimit)
	}
	if c.Prefs.Store == "badger" && c.Prefs.StorePath == "" {
		return fmt.Errorf("prefs.store_path is required when prefs.store is badger")
	}
	if err := c.Recommend.Engine.Validate(); err != nil {
		return fmt.Errorf("recommend.engine: %w", err)
	}

	return nil
}
