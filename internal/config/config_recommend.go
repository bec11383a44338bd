// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package config

import (
	"github.com/tomtom215/fundmatch/internal/recommend"
)

// EngineConfig builds the recommendation engine configuration.
// The holdout split reuses the model seed.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		LatentFactor: recommend.LatentFactorConfig{
			Factors:        r.Factors,
			Epochs:         r.Epochs,
			LearningRate:   r.LearningRate,
			Regularization: r.Regularization,
			InitStdDev:     r.InitStdDev,
			Seed:           r.Seed,
			Clip:           r.Clip,
		},
		Weights: recommend.FusionWeights{
			CF:      r.Weights.CF,
			Content: r.Weights.Content,
		},
		Training: recommend.TrainingConfig{
			HoldoutFraction: r.HoldoutFraction,
			SplitSeed:       r.Seed,
			MinInteractions: r.MinInteractions,
			Timeout:         r.TrainingTimeout,
			RetainVersions:  c.Storage.RetainVersions,
		},
		Limits: recommend.LimitsConfig{
			DefaultK: r.K,
			MaxK:     r.MaxK,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
	}
}
