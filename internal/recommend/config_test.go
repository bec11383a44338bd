// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package recommend

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("latent factor defaults match reference hyperparameters", func(t *testing.T) {
		lf := cfg.LatentFactor
		if lf.Factors != 100 {
			t.Errorf("Factors = %d, want 100", lf.Factors)
		}
		if lf.Epochs != 20 {
			t.Errorf("Epochs = %d, want 20", lf.Epochs)
		}
		if lf.LearningRate != 0.005 {
			t.Errorf("LearningRate = %f, want 0.005", lf.LearningRate)
		}
		if lf.Regularization != 0.02 {
			t.Errorf("Regularization = %f, want 0.02", lf.Regularization)
		}
		if lf.Clip {
			t.Error("Clip = true, want unclipped by default")
		}
	})

	t.Run("fusion weights default to a plain sum", func(t *testing.T) {
		if cfg.Weights.CF != 1.0 || cfg.Weights.Content != 1.0 {
			t.Errorf("Weights = %+v, want {1 1}", cfg.Weights)
		}
	})

	t.Run("default k is 10", func(t *testing.T) {
		if cfg.Limits.DefaultK != 10 {
			t.Errorf("DefaultK = %d, want 10", cfg.Limits.DefaultK)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "zero epochs is valid",
			modify: func(c *Config) { c.LatentFactor.Epochs = 0 },
		},
		{
			name:    "negative factors",
			modify:  func(c *Config) { c.LatentFactor.Factors = -1 },
			wantErr: "latent_factor.factors",
		},
		{
			name:    "negative epochs",
			modify:  func(c *Config) { c.LatentFactor.Epochs = -3 },
			wantErr: "latent_factor.epochs",
		},
		{
			name:    "zero learning rate",
			modify:  func(c *Config) { c.LatentFactor.LearningRate = 0 },
			wantErr: "latent_factor.learning_rate",
		},
		{
			name:    "NaN regularization",
			modify:  func(c *Config) { c.LatentFactor.Regularization = math.NaN() },
			wantErr: "latent_factor.regularization",
		},
		{
			name:    "negative content weight",
			modify:  func(c *Config) { c.Weights.Content = -0.5 },
			wantErr: "weights.content",
		},
		{
			name:    "holdout fraction of one",
			modify:  func(c *Config) { c.Training.HoldoutFraction = 1 },
			wantErr: "training.holdout_fraction",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Training.Timeout = 0 },
			wantErr: "training.timeout",
		},
		{
			name:    "max k below default k",
			modify:  func(c *Config) { c.Limits.MaxK = 5 },
			wantErr: "limits.max_k",
		},
		{
			name:    "enabled cache without ttl",
			modify:  func(c *Config) { c.Cache.TTL = 0 },
			wantErr: "cache.ttl",
		},
		{
			name: "disabled cache ignores ttl",
			modify: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.TTL = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.LatentFactor.Factors = 8
	clone.Cache.TTL = time.Second

	if cfg.LatentFactor.Factors != 100 {
		t.Errorf("original Factors changed to %d", cfg.LatentFactor.Factors)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("original Cache.TTL changed to %v", cfg.Cache.TTL)
	}
}

func TestConfigClampK(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		k    int
		want int
	}{
		{0, 10},
		{-4, 10},
		{3, 3},
		{100, 100},
		{5000, 100},
	}

	for _, tt := range tests {
		if got := cfg.ClampK(tt.k); got != tt.want {
			t.Errorf("ClampK(%d) = %d, want %d", tt.k, got, tt.want)
		}
	}
}
