// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// LatentFactor contains the collaborative model hyperparameters.
	LatentFactor LatentFactorConfig `json:"latent_factor"`

	// Weights scales the two signals before they are summed.
	Weights FusionWeights `json:"weights"`

	// Training contains training run parameters.
	Training TrainingConfig `json:"training"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response cache parameters.
	Cache CacheConfig `json:"cache"`
}

// LatentFactorConfig contains parameters for the biased matrix factorization model.
type LatentFactorConfig struct {
	// Factors is the latent dimensionality.
	// Default: 100.
	Factors int `json:"factors"`

	// Epochs is the number of SGD passes over the training ratings.
	// Zero is valid and leaves the model at its initial values.
	// Default: 20.
	Epochs int `json:"epochs"`

	// LearningRate is the SGD step size.
	// Default: 0.005.
	LearningRate float64 `json:"learning_rate"`

	// Regularization is the L2 penalty on biases and factors.
	// Default: 0.02.
	Regularization float64 `json:"regularization"`

	// InitStdDev is the standard deviation of the normal factor initialization.
	// Default: 0.1.
	InitStdDev float64 `json:"init_std_dev"`

	// Seed seeds the factor initialization.
	// Default: 42.
	Seed int64 `json:"seed"`

	// Clip clamps predictions to [0, 1]. Predictions are unclipped by
	// default, so scores slightly outside the range are possible.
	Clip bool `json:"clip"`
}

// FusionWeights scales the collaborative and content signals.
// The hybrid score is CF*cf_score + Content*content_score; the defaults of
// 1.0 give the plain sum of both signals.
type FusionWeights struct {
	CF      float64 `json:"cf"`
	Content float64 `json:"content"`
}

// TrainingConfig contains training run parameters.
type TrainingConfig struct {
	// HoldoutFraction is the share of ratings held out for evaluation.
	// Zero disables evaluation and trains on everything.
	// Default: 0.2.
	HoldoutFraction float64 `json:"holdout_fraction"`

	// SplitSeed seeds the holdout shuffle.
	// Default: 42.
	SplitSeed int64 `json:"split_seed"`

	// MinInteractions is the minimum number of interactions required to train.
	// Default: 1.
	MinInteractions int `json:"min_interactions"`

	// Timeout is the maximum time allowed for a training run.
	// Default: 10m.
	Timeout time.Duration `json:"timeout"`

	// RetainVersions is the number of stored model versions to keep.
	// Default: 3.
	RetainVersions int `json:"retain_versions"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultK is the list length used when a request does not set one.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultLatentFactorConfig returns the default model hyperparameters.
func DefaultLatentFactorConfig() LatentFactorConfig {
	return LatentFactorConfig{
		Factors:        100,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		Seed:           42,
		Clip:           false,
	}
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		LatentFactor: DefaultLatentFactorConfig(),
		Weights: FusionWeights{
			CF:      1.0,
			Content: 1.0,
		},
		Training: TrainingConfig{
			HoldoutFraction: 0.2,
			SplitSeed:       42,
			MinInteractions: 1,
			Timeout:         10 * time.Minute,
			RetainVersions:  3,
		},
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the latent factor parameters.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c LatentFactorConfig) Validate() error {
	if c.Factors < 0 {
		return fmt.Errorf("latent_factor.factors must be non-negative, got %d", c.Factors)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("latent_factor.epochs must be non-negative, got %d", c.Epochs)
	}
	if !isFinite(c.LearningRate) || c.LearningRate <= 0 {
		return fmt.Errorf("latent_factor.learning_rate must be positive, got %f", c.LearningRate)
	}
	if !isFinite(c.Regularization) || c.Regularization < 0 {
		return fmt.Errorf("latent_factor.regularization must be non-negative, got %f", c.Regularization)
	}
	if !isFinite(c.InitStdDev) || c.InitStdDev < 0 {
		return fmt.Errorf("latent_factor.init_std_dev must be non-negative, got %f", c.InitStdDev)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.LatentFactor.Validate(); err != nil {
		return err
	}

	if !isFinite(c.Weights.CF) || c.Weights.CF < 0 {
		return fmt.Errorf("weights.cf must be non-negative, got %f", c.Weights.CF)
	}
	if !isFinite(c.Weights.Content) || c.Weights.Content < 0 {
		return fmt.Errorf("weights.content must be non-negative, got %f", c.Weights.Content)
	}

	if c.Training.HoldoutFraction < 0 || c.Training.HoldoutFraction >= 1 {
		return fmt.Errorf("training.holdout_fraction must be in [0, 1), got %f", c.Training.HoldoutFraction)
	}
	if c.Training.MinInteractions < 0 {
		return fmt.Errorf("training.min_interactions must be non-negative, got %d", c.Training.MinInteractions)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}
	if c.Training.RetainVersions < 1 {
		return fmt.Errorf("training.retain_versions must be positive, got %d", c.Training.RetainVersions)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}

// ClampK applies the default and maximum list length to k.
func (c *Config) ClampK(k int) int {
	if k <= 0 {
		k = c.Limits.DefaultK
	}
	if k > c.Limits.MaxK {
		k = c.Limits.MaxK
	}
	return k
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
