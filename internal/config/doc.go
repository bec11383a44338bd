// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package config provides centralized configuration management for Fundmatch.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/fundmatch/config.yaml
  - Environment variables, through an explicit mapping table

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown timeout (default: 15s)

Data:
  - INTERACTIONS_PATH, PROJECTS_PATH, USERS_PATH: CSV files
    (default: data/interactions.csv, data/projects.csv, data/users.csv)
  - DUCKDB_PATH: DuckDB file holding the tables (default: in-memory)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS

Recommendation Engine:
  - RECOMMEND_FACTORS (100), RECOMMEND_EPOCHS (20),
    RECOMMEND_LEARNING_RATE (0.005), RECOMMEND_REGULARIZATION (0.02),
    RECOMMEND_INIT_STD_DEV (0.1), RECOMMEND_SEED (42), RECOMMEND_CLIP (false)
  - RECOMMEND_K (10), RECOMMEND_MAX_K (100)
  - RECOMMEND_HOLDOUT_FRACTION (0.2), RECOMMEND_MIN_INTERACTIONS (1)
  - RECOMMEND_TRAIN_ON_STARTUP (true), RECOMMEND_TRAIN_INTERVAL (0 = off),
    RECOMMEND_TRAINING_TIMEOUT (10m)
  - RECOMMEND_WEIGHT_CF (1.0), RECOMMEND_WEIGHT_CONTENT (1.0)
  - RECOMMEND_CACHE_ENABLED (true), RECOMMEND_CACHE_TTL (5m),
    RECOMMEND_CACHE_MAX_ENTRIES (10000)

Model Store:
  - MODEL_STORE_ENABLED (false), MODEL_STORE_PATH (/data/models),
    MODEL_STORE_RETAIN_VERSIONS (3)

Security:
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

# Validation

Field constraints are declared as validator/v10 struct tags and checked
through the validation package; cross-field rules (CSV paths vs. DuckDB
file, k bounds, rate limit ranges, engine hyperparameters) are checked in
Validate.
*/
package config
