// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package models

import (
	"time"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeModelNotReady      = "MODEL_NOT_READY"
	ErrCodeInvalidData        = "INVALID_NORMALIZATION"
	ErrCodeInsufficientData   = "INSUFFICIENT_DATA"
	ErrCodeTrainingInProgress = "TRAINING_IN_PROGRESS"
	ErrCodeTrainingDiverged   = "TRAINING_DIVERGED"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// APIResponse is the envelope of every JSON endpoint.
//
//	{
//	  "status": "success",
//	  "data": {"items": [...], "total_candidates": 3, "metadata": {...}},
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z", "query_time_ms": 2}
//	}
//
// On failure Status is "error", Data is null and Error is set.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable error code with a human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status            string    `json:"status"`
	Version           string    `json:"version"`
	DatabaseConnected bool      `json:"database_connected"`
	ModelReady        bool      `json:"model_ready"`
	ModelVersion      int       `json:"model_version"`
	LastTrainedAt     time.Time `json:"last_trained_at,omitempty"`
	Uptime            float64   `json:"uptime_seconds"`
}

// InterestResponse lists knowledge-based matches for one user.
type InterestResponse struct {
	UserID   int                 `json:"user_id"`
	Count    int                 `json:"count"`
	Projects []recommend.Project `json:"projects"`
}

// StatusResponse combines training status with request counters.
type StatusResponse struct {
	Training recommend.TrainingStatus `json:"training"`
	Metrics  recommend.Metrics        `json:"metrics"`
}
