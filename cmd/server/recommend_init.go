// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/fundmatch/internal/config"
	"github.com/tomtom215/fundmatch/internal/recommend"
	"github.com/tomtom215/fundmatch/internal/recommend/hybrid"
	"github.com/tomtom215/fundmatch/internal/recommend/storage"
	"github.com/tomtom215/fundmatch/internal/supervisor/services"
)

// RecommendComponents holds all recommendation-related components.
type RecommendComponents struct {
	Engine  *hybrid.Engine
	Store   *storage.Store
	Service *services.RecommendService

	logger zerolog.Logger
}

// Close releases the model store, if one was opened.
func (c *RecommendComponents) Close() {
	if c == nil || c.Store == nil {
		return
	}
	if err := c.Store.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to close model store")
	}
}

// initRecommend builds the engine, opens the snapshot store when enabled and
// creates the supervised service that trains it.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, provider recommend.DataProvider, logger zerolog.Logger) (*RecommendComponents, error) {
	logger.Info().
		Int("factors", cfg.Recommend.Factors).
		Int("epochs", cfg.Recommend.Epochs).
		Float64("weight_cf", cfg.Recommend.Weights.CF).
		Float64("weight_content", cfg.Recommend.Weights.Content).
		Dur("train_interval", cfg.Recommend.TrainInterval).
		Bool("train_on_startup", cfg.Recommend.TrainOnStartup).
		Msg("initializing recommendation engine")

	engine, err := hybrid.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetDataProvider(provider)

	components := &RecommendComponents{Engine: engine, logger: logger}

	if cfg.Storage.Enabled {
		store, err := storage.NewStore(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open model store at %s: %w", cfg.Storage.Path, err)
		}
		engine.SetStore(store)
		components.Store = store
		logger.Info().
			Str("path", cfg.Storage.Path).
			Int("retain_versions", cfg.Storage.RetainVersions).
			Msg("model store opened")
	} else {
		logger.Info().Msg("model store disabled (MODEL_STORE_ENABLED=false)")
	}

	components.Service = services.NewRecommendService(engine, services.RecommendServiceConfig{
		RestoreOnStartup: cfg.Storage.Enabled,
		TrainOnStartup:   cfg.Recommend.TrainOnStartup,
		TrainInterval:    cfg.Recommend.TrainInterval,
	}, logger)

	return components, nil
}
