// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	engine, err := hybrid.NewEngine(cfg.EngineConfig(), logger)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Storage   StorageConfig   `koanf:"storage"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DataConfig holds the dataset locations.
//
// When DuckDBPath points to a database file, the interactions, projects and
// users tables are read from it and the CSV paths are ignored.
//
// Environment Variables:
//   - INTERACTIONS_PATH, PROJECTS_PATH, USERS_PATH: CSV files
//   - DUCKDB_PATH: DuckDB database file (default: in-memory)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: DuckDB worker threads (0 = NumCPU)
type DataConfig struct {
	InteractionsPath string `koanf:"interactions_path"`
	ProjectsPath     string `koanf:"projects_path"`
	UsersPath        string `koanf:"users_path"`
	DuckDBPath       string `koanf:"duckdb_path"`
	MaxMemory        string `koanf:"max_memory" validate:"required"`
	Threads          int    `koanf:"threads" validate:"min=0"`
}

// RecommendConfig holds the recommendation engine settings.
//
// The latent factor defaults (factors 100, epochs 20, learning rate 0.005,
// regularization 0.02, seed 42) reproduce the reference model. Zero factors
// and zero epochs are taken literally.
type RecommendConfig struct {
	Factors        int     `koanf:"factors" validate:"min=0"`
	Epochs         int     `koanf:"epochs" validate:"min=0"`
	LearningRate   float64 `koanf:"learning_rate" validate:"finite,gte=0"`
	Regularization float64 `koanf:"regularization" validate:"finite,gte=0"`
	InitStdDev     float64 `koanf:"init_std_dev" validate:"finite,gte=0"`
	Seed           int64   `koanf:"seed"`

	// Clip clamps predictions to [0, 1]. Default: false (unclipped)
	Clip bool `koanf:"clip"`

	// K is the default list length; MaxK caps the k query parameter.
	K    int `koanf:"k" validate:"min=1"`
	MaxK int `koanf:"max_k" validate:"min=1"`

	// HoldoutFraction is the share of ratings held out for evaluation.
	// Default: 0.2
	HoldoutFraction float64 `koanf:"holdout_fraction" validate:"gte=0,lt=1"`
	MinInteractions int     `koanf:"min_interactions" validate:"min=0"`

	// TrainOnStartup trains as soon as the server starts.
	// Default: true
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is how often to retrain. 0 disables periodic training.
	// Default: 0
	TrainInterval   time.Duration `koanf:"train_interval" validate:"gte=0"`
	TrainingTimeout time.Duration `koanf:"training_timeout" validate:"gt=0"`

	Weights WeightsConfig `koanf:"weights"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries" validate:"min=0"`
}

// WeightsConfig holds the fusion weights. 1.0/1.0 is the plain sum.
type WeightsConfig struct {
	CF      float64 `koanf:"cf" validate:"finite,gte=0"`
	Content float64 `koanf:"content" validate:"finite,gte=0"`
}

// StorageConfig holds model snapshot persistence settings
type StorageConfig struct {
	Enabled        bool   `koanf:"enabled"`
	Path           string `koanf:"path"`
	RetainVersions int    `koanf:"retain_versions" validate:"min=1"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, in that order. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
