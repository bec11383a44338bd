// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/fundmatch/internal/models"
)

// Health reports liveness together with model readiness.
//
// @Summary Health check
// @Description Always 200 while the process serves requests. Status is "healthy" once a model is served, "starting" before the first training completes and "degraded" when the dataset is unreachable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	state := "healthy"
	switch {
	case h.db != nil && !dbConnected:
		state = "degraded"
	case !status.Ready:
		state = "starting"
	}

	respondSuccess(w, r, &models.HealthResponse{
		Status:            state,
		Version:           h.version,
		DatabaseConnected: dbConnected,
		ModelReady:        status.Ready,
		ModelVersion:      status.ModelVersion,
		LastTrainedAt:     status.LastTrainedAt,
		Uptime:            time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthLive is the liveness check.
//
// @Summary Liveness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady returns 200 only once a trained model is being served.
//
// @Summary Readiness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.IsReady() {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotReady, "Recommendation models have not been trained", nil)
		return
	}
	status := h.engine.Status()
	respondSuccess(w, r, map[string]interface{}{
		"ready":         true,
		"model_version": status.ModelVersion,
	}, models.Metadata{})
}
