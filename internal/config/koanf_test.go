// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns the reference defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Data.InteractionsPath != "data/interactions.csv" {
		t.Errorf("Data.InteractionsPath = %q", cfg.Data.InteractionsPath)
	}

	r := cfg.Recommend
	if r.Factors != 100 || r.Epochs != 20 || r.LearningRate != 0.005 || r.Regularization != 0.02 {
		t.Errorf("model defaults = %d factors, %d epochs, lr %v, reg %v", r.Factors, r.Epochs, r.LearningRate, r.Regularization)
	}
	if r.Seed != 42 || r.InitStdDev != 0.1 || r.Clip {
		t.Errorf("seed=%d init_std_dev=%v clip=%v", r.Seed, r.InitStdDev, r.Clip)
	}
	if r.K != 10 {
		t.Errorf("K = %d, want 10", r.K)
	}
	if r.Weights.CF != 1 || r.Weights.Content != 1 {
		t.Errorf("Weights = %+v, want 1/1", r.Weights)
	}
	if !r.TrainOnStartup || r.TrainInterval != 0 {
		t.Errorf("TrainOnStartup=%v TrainInterval=%v", r.TrainOnStartup, r.TrainInterval)
	}

	if cfg.Storage.Enabled {
		t.Error("Storage.Enabled should be false by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_FACTORS", "recommend.factors"},
		{"RECOMMEND_WEIGHT_CONTENT", "recommend.weights.content"},
		{"INTERACTIONS_PATH", "data.interactions_path"},
		{"MODEL_STORE_PATH", "storage.path"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"log_level", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing CONFIG_PATH file is ignored", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Recommend.Factors != 100 {
		t.Errorf("Factors = %d, want 100", cfg.Recommend.Factors)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_FACTORS", "16")
	t.Setenv("RECOMMEND_LEARNING_RATE", "0.01")
	t.Setenv("RECOMMEND_CLIP", "true")
	t.Setenv("RECOMMEND_TRAIN_INTERVAL", "6h")
	t.Setenv("RECOMMEND_WEIGHT_CONTENT", "0.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Factors != 16 || cfg.Recommend.LearningRate != 0.01 || !cfg.Recommend.Clip {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.TrainInterval != 6*time.Hour {
		t.Errorf("TrainInterval = %v, want 6h", cfg.Recommend.TrainInterval)
	}
	if cfg.Recommend.Weights.Content != 0.5 || cfg.Recommend.Weights.CF != 1 {
		t.Errorf("Weights = %+v", cfg.Recommend.Weights)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
data:
  interactions_path: /srv/interactions.csv
recommend:
  factors: 8
  epochs: 5
  weights:
    cf: 0.5
storage:
  enabled: true
  path: /srv/models
security:
  cors_origins:
    - https://app.example
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, env should override file", cfg.Server.Port)
	}
	if cfg.Data.InteractionsPath != "/srv/interactions.csv" || cfg.Data.ProjectsPath != "data/projects.csv" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Recommend.Factors != 8 || cfg.Recommend.Epochs != 5 || cfg.Recommend.Weights.CF != 0.5 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.LearningRate != 0.005 {
		t.Errorf("LearningRate = %v, default should survive", cfg.Recommend.LearningRate)
	}
	if !cfg.Storage.Enabled || cfg.Storage.Path != "/srv/models" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://app.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "invalid log level", env: map[string]string{"LOG_LEVEL": "verbose"}, wantErr: "Level"},
		{name: "port out of range", env: map[string]string{"HTTP_PORT": "70000"}, wantErr: "Port"},
		{name: "holdout fraction of one", env: map[string]string{"RECOMMEND_HOLDOUT_FRACTION": "1"}, wantErr: "HoldoutFraction"},
		{name: "negative weight", env: map[string]string{"RECOMMEND_WEIGHT_CF": "-1"}, wantErr: "CF"},
		{name: "k above max", env: map[string]string{"RECOMMEND_K": "50", "RECOMMEND_MAX_K": "20"}, wantErr: "RECOMMEND_MAX_K"},
		{name: "cache without ttl", env: map[string]string{"RECOMMEND_CACHE_TTL": "0s"}, wantErr: "cache.ttl"},
		{name: "rate limit window too long", env: map[string]string{"RATE_LIMIT_WINDOW": "2h"}, wantErr: "RATE_LIMIT_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
