// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// RecommendEngine is the training surface of the recommendation engine.
// *hybrid.Engine satisfies it.
type RecommendEngine interface {
	Train(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	IsReady() bool
}

// RecommendServiceConfig holds configuration for the recommendation service.
type RecommendServiceConfig struct {
	// RestoreOnStartup loads the latest stored snapshot before training.
	RestoreOnStartup bool

	// TrainOnStartup trains as soon as the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain. 0 disables periodic training.
	TrainInterval time.Duration
}

// RecommendService drives the engine's training lifecycle under suture:
// restore from the model store, train on startup, then retrain on a ticker.
//
// Training errors are logged and never returned, so a bad dataset does not
// put the engine layer into a restart loop. When suture restarts the
// service after a panic, startup work is skipped if a model is already served.
type RecommendService struct {
	engine RecommendEngine
	config RecommendServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRecommendService creates a new recommendation service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecommendService(engine RecommendEngine, cfg RecommendServiceConfig, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "recommend").Logger(),
		name:   "recommend-service",
	}
}

// Serve implements suture.Service.
func (s *RecommendService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("restore_on_startup", s.config.RestoreOnStartup).
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("recommendation service starting")

	if !s.engine.IsReady() {
		s.startup(ctx)
	}

	if s.config.TrainInterval <= 0 {
		<-ctx.Done()
		s.logger.Info().Msg("recommendation service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("recommendation service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled training triggered")
			s.train(ctx, "scheduled")
		}
	}
}

// startup restores the stored model, then trains if configured.
// A restored model is served while the fresh one trains.
func (s *RecommendService) startup(ctx context.Context) {
	if s.config.RestoreOnStartup {
		restored, err := s.engine.Restore(ctx)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("model restore failed")
		case restored:
			s.logger.Info().Msg("serving restored model")
		default:
			s.logger.Info().Msg("no stored model to restore")
		}
	}

	if s.config.TrainOnStartup && ctx.Err() == nil {
		s.train(ctx, "startup")
	}
}

// train runs one training cycle and logs the outcome.
func (s *RecommendService) train(ctx context.Context, trigger string) {
	start := time.Now()
	err := s.engine.Train(ctx)

	switch {
	case err == nil:
		s.logger.Info().
			Str("trigger", trigger).
			Dur("duration", time.Since(start)).
			Msg("model training complete")
	case errors.Is(err, recommend.ErrTrainingInProgress):
		s.logger.Debug().Str("trigger", trigger).Msg("training skipped, run already in progress")
	case ctx.Err() != nil:
		s.logger.Debug().Err(err).Str("trigger", trigger).Msg("training interrupted by shutdown")
	default:
		s.logger.Warn().
			Err(err).
			Str("trigger", trigger).
			Bool("serving_previous_model", s.engine.IsReady()).
			Msg("model training failed")
	}
}

// String returns the service name for logging.
func (s *RecommendService) String() string {
	return s.name
}
