// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/fundmatch/internal/validation"
)

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks field constraints declared in struct tags, then the
// cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateData requires either all three CSV paths or a DuckDB file.
func (c *Config) validateData() error {
	if c.Data.DuckDBPath != "" {
		return nil
	}
	required := []struct{ env, path string }{
		{"INTERACTIONS_PATH", c.Data.InteractionsPath},
		{"PROJECTS_PATH", c.Data.ProjectsPath},
		{"USERS_PATH", c.Data.UsersPath},
	}
	for _, r := range required {
		if r.path == "" {
			return fmt.Errorf("%s is required when DUCKDB_PATH is not set", r.env)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.K > c.Recommend.MaxK {
		return fmt.Errorf("RECOMMEND_K (%d) must not exceed RECOMMEND_MAX_K (%d)", c.Recommend.K, c.Recommend.MaxK)
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("MODEL_STORE_PATH is required when MODEL_STORE_ENABLED=true")
	}
	return nil
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitRequests < minRateLimitRequests || c.Security.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
