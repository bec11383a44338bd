// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/fundmatch/internal/recommend"
	"github.com/tomtom215/fundmatch/internal/recommend/hybrid"
)

// Recommender is the engine surface the handlers depend on.
// *hybrid.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	RecommendByInterest(ctx context.Context, userID int) ([]recommend.Project, error)
	RecommendOrFallback(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Popular(ctx context.Context, k int) (*recommend.Response, error)
	Predict(ctx context.Context, userID, projectID int) (*hybrid.Prediction, error)
	Train(ctx context.Context) error
	Status() recommend.TrainingStatus
	Metrics() recommend.Metrics
	IsReady() bool
}

// Pinger reports dataset connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

var _ Recommender = (*hybrid.Engine)(nil)

// defaultRequestTimeout bounds read endpoints when no timeout is configured.
const defaultRequestTimeout = 10 * time.Second

// Handler serves the recommendation API.
type Handler struct {
	engine         Recommender
	db             Pinger
	version        string
	startTime      time.Time
	requestTimeout time.Duration
}

// NewHandler creates a handler over the given engine. db may be nil.
func NewHandler(engine Recommender, db Pinger, version string, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Handler{
		engine:         engine,
		db:             db,
		version:        version,
		startTime:      time.Now(),
		requestTimeout: requestTimeout,
	}
}
