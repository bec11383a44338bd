// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/fundmatch/internal/logging"
	"github.com/tomtom215/fundmatch/internal/models"
	"github.com/tomtom215/fundmatch/internal/recommend"
)

// recommendRequest parses {userID} and ?k= into a validated request.
func recommendRequest(r *http.Request) (recommend.Request, *models.APIError) {
	userID, apiErr := userIDParam(r)
	if apiErr != nil {
		return recommend.Request{}, apiErr
	}
	k, apiErr := intQuery(r, "k", 0)
	if apiErr != nil {
		return recommend.Request{}, apiErr
	}

	req := recommend.Request{
		UserID:    userID,
		K:         k,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return recommend.Request{}, apiErr
	}
	return req, nil
}

func responseMetadata(resp *recommend.Response) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now(),
		QueryTimeMS: resp.Metadata.LatencyMS,
		Cached:      resp.Metadata.CacheHit,
	}
}

// GetRecommendations returns the hybrid ranking for a user.
//
// @Summary Hybrid recommendations
// @Description Ranks every project of the interaction history by collaborative score plus same-category count. k defaults to the configured list length and is capped at the configured maximum.
// @Tags Recommendations
// @Produce json
// @Param userID path int true "User ID"
// @Param k query int false "Number of recommendations"
// @Success 200 {object} models.APIResponse{data=recommend.Response}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Models not trained"
// @Router /recommendations/users/{userID} [get]
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	req, apiErr := recommendRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, responseMetadata(resp))
}

// GetInterestMatches returns the projects matching the user's declared interest.
//
// @Summary Knowledge-based matches
// @Description Projects whose category equals the user's interests, in catalog order. An empty list is not an error.
// @Tags Recommendations
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} models.APIResponse{data=models.InterestResponse}
// @Failure 404 {object} models.APIResponse "Unknown user"
// @Failure 503 {object} models.APIResponse "Models not trained"
// @Router /recommendations/users/{userID}/interest [get]
func (h *Handler) GetInterestMatches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, apiErr := userIDParam(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	projects, err := h.engine.RecommendByInterest(ctx, userID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if projects == nil {
		projects = []recommend.Project{}
	}

	respondSuccess(w, r, &models.InterestResponse{
		UserID:   userID,
		Count:    len(projects),
		Projects: projects,
	}, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// GetRecommendationsWithFallback serves the hybrid list for users with
// history, the interest matches for registered users, and the popularity
// ranking otherwise. metadata.source names the strategy used.
//
// @Summary Recommendations with cold-start fallback
// @Tags Recommendations
// @Produce json
// @Param userID path int true "User ID"
// @Param k query int false "Number of recommendations"
// @Success 200 {object} models.APIResponse{data=recommend.Response}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Models not trained"
// @Router /recommendations/users/{userID}/fallback [get]
func (h *Handler) GetRecommendationsWithFallback(w http.ResponseWriter, r *http.Request) {
	req, apiErr := recommendRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.RecommendOrFallback(ctx, req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, responseMetadata(resp))
}

// GetPopular returns the projects with the highest donation volume.
//
// @Summary Popular projects
// @Tags Recommendations
// @Produce json
// @Param k query int false "Number of projects"
// @Success 200 {object} models.APIResponse{data=recommend.Response}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Models not trained"
// @Router /recommendations/popular [get]
func (h *Handler) GetPopular(w http.ResponseWriter, r *http.Request) {
	k, apiErr := intQuery(r, "k", 0)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&recommend.Request{K: k}); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Popular(ctx, k)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, responseMetadata(resp))
}

// GetPrediction returns the raw collaborative estimate for one pair.
//
// @Summary Collaborative prediction
// @Description Normalized prediction and its value in donation units. Unknown users or projects fall back to the global bias.
// @Tags Recommendations
// @Produce json
// @Param user_id query int true "User ID"
// @Param project_id query int true "Project ID"
// @Success 200 {object} models.APIResponse{data=hybrid.Prediction}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Models not trained"
// @Router /recommendations/predict [get]
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, apiErr := requiredIntQuery(r, "user_id")
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	projectID, apiErr := requiredIntQuery(r, "project_id")
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	prediction, err := h.engine.Predict(ctx, userID, projectID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, prediction, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// GetStatus returns training status, holdout evaluation and counters.
//
// @Summary Engine status
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.StatusResponse}
// @Router /recommendations/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, &models.StatusResponse{
		Training: h.engine.Status(),
		Metrics:  h.engine.Metrics(),
	}, models.Metadata{})
}

// TriggerTraining runs a synchronous training cycle.
// The run is detached from the client connection; the engine applies its
// own training timeout.
//
// @Summary Train models
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=recommend.TrainingStatus}
// @Failure 409 {object} models.APIResponse "Training already in progress"
// @Failure 422 {object} models.APIResponse "Unusable training data"
// @Router /recommendations/train [post]
func (h *Handler) TriggerTraining(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.engine.Train(context.WithoutCancel(r.Context())); err != nil {
		respondEngineError(w, r, err)
		return
	}

	status := h.engine.Status()
	logging.Ctx(r.Context()).Info().
		Int("model_version", status.ModelVersion).
		Dur("duration", time.Since(start)).
		Msg("training triggered via API")

	respondSuccess(w, r, status, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}
