// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/fundmatch/internal/logging"
	"github.com/tomtom215/fundmatch/internal/models"
	"github.com/tomtom215/fundmatch/internal/validation"
)

// sanitizeLogValue replaces control characters so client input cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak validator from data using FNV-1a
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta models.Metadata) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.RequestID = logging.RequestIDFromContext(r.Context())
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondAPIError(w, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Error().
			Int("status", status).
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusError,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: apiErr,
	})
}

// respondEngineError maps an engine error onto the error envelope.
// Only unexpected failures are logged at error level.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	m := mapError(err)
	if m.status >= http.StatusInternalServerError && m.status != http.StatusServiceUnavailable {
		respondError(w, m.status, m.code, m.message, err)
		return
	}
	logging.Ctx(r.Context()).Debug().
		Err(err).
		Int("status", m.status).
		Str("code", m.code).
		Msg("request rejected")
	respondError(w, m.status, m.code, m.message, nil)
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// invalidParam builds a validation error for a malformed parameter.
func invalidParam(name, raw string) *models.APIError {
	return &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: fmt.Sprintf("%s must be an integer", name),
		Details: map[string]interface{}{
			"field": name,
			"value": sanitizeLogValue(raw),
		},
	}
}

// userIDParam parses the {userID} path parameter.
func userIDParam(r *http.Request) (int, *models.APIError) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam("user_id", raw)
	}
	return id, nil
}

// intQuery parses an optional integer query parameter.
// Absent parameters yield defaultValue; malformed ones are an error.
func intQuery(r *http.Request, key string, defaultValue int) (int, *models.APIError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidParam(key, raw)
	}
	return v, nil
}

// requiredIntQuery parses a mandatory integer query parameter.
func requiredIntQuery(r *http.Request, key string) (int, *models.APIError) {
	if r.URL.Query().Get(key) == "" {
		return 0, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: fmt.Sprintf("%s is required", key),
			Details: map[string]interface{}{"field": key, "tag": "required"},
		}
	}
	return intQuery(r, key, 0)
}
