// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/fundmatch/internal/models"
	"github.com/tomtom215/fundmatch/internal/recommend"
)

// errorMapping translates an engine error into an HTTP status, an API error
// code and a client-safe message.
type errorMapping struct {
	status  int
	code    string
	message string
}

// mapError classifies err. Unknown errors map to 500 with a generic message
// so internal details are not exposed.
func mapError(err error) errorMapping {
	var notFound *recommend.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return errorMapping{http.StatusNotFound, models.ErrCodeNotFound, notFound.Error()}
	case errors.Is(err, recommend.ErrNotFound):
		return errorMapping{http.StatusNotFound, models.ErrCodeNotFound, "Resource not found"}
	case errors.Is(err, recommend.ErrModelNotReady):
		return errorMapping{http.StatusServiceUnavailable, models.ErrCodeModelNotReady, "Recommendation models have not been trained"}
	case errors.Is(err, recommend.ErrInvalidNormalization):
		return errorMapping{http.StatusUnprocessableEntity, models.ErrCodeInvalidData, "Donation amounts cannot be normalized"}
	case errors.Is(err, recommend.ErrInsufficientData):
		return errorMapping{http.StatusUnprocessableEntity, models.ErrCodeInsufficientData, "Not enough interactions to train"}
	case errors.Is(err, recommend.ErrTrainingDiverged):
		return errorMapping{http.StatusUnprocessableEntity, models.ErrCodeTrainingDiverged, "Training diverged; lower the learning rate"}
	case errors.Is(err, recommend.ErrTrainingInProgress):
		return errorMapping{http.StatusConflict, models.ErrCodeTrainingInProgress, "Training is already in progress"}
	case errors.Is(err, context.DeadlineExceeded):
		return errorMapping{http.StatusGatewayTimeout, models.ErrCodeInternal, "Request timed out"}
	default:
		return errorMapping{http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error"}
	}
}
