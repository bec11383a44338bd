// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package api provides the HTTP interface of Fundmatch.

Every JSON endpoint returns the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "request_id": "..."}}

Errors set status to "error" and carry a machine-readable code:

	404 NOT_FOUND              unknown user (interest endpoint)
	503 MODEL_NOT_READY        no trained model is being served
	422 INVALID_NORMALIZATION  donations cannot be normalized
	422 INSUFFICIENT_DATA      too few interactions to train
	409 TRAINING_IN_PROGRESS   a training run is already active
	400 VALIDATION_ERROR       malformed path or query parameters
	429 RATE_LIMIT_EXCEEDED    httprate limit reached

# Routes

	GET  /api/v1/health
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/recommendations/users/{userID}?k=
	GET  /api/v1/recommendations/users/{userID}/interest
	GET  /api/v1/recommendations/users/{userID}/fallback?k=
	GET  /api/v1/recommendations/popular?k=
	GET  /api/v1/recommendations/predict?user_id=&project_id=
	GET  /api/v1/recommendations/status
	POST /api/v1/recommendations/train
	GET  /metrics

# Middleware

The router is built on chi. Request IDs, panic recovery, CORS (go-chi/cors)
and access logging apply globally; API groups add security headers,
per-IP rate limiting (go-chi/httprate), Prometheus instrumentation and
response compression.
*/
package api
