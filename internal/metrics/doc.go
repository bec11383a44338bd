// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed by the API router on /metrics.

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Database Metrics:
  - duckdb_query_duration_seconds: Dataset query time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
  - duckdb_rows_loaded_total: Rows read per table (counter)

Training Metrics:
  - recommend_training_duration_seconds (histogram)
  - recommend_training_runs_total (counter)
    Labels: outcome (success, invalid_normalization, insufficient_data, canceled, error)
  - recommend_training_last_success_timestamp (gauge)
  - recommend_model_version, recommend_model_interactions (gauge)
  - recommend_holdout_rmse, recommend_holdout_mae (gauge)

Serving Metrics:
  - recommend_requests_total (counter)
    Labels: endpoint (hybrid, interest, fallback, popular, predict), outcome
  - recommend_latency_seconds (histogram)
  - recommend_fallbacks_total (counter), Labels: source
  - recommend_cache_hits_total, recommend_cache_misses_total (counter)
  - recommend_cache_entries (gauge)

Model Store Metrics:
  - recommend_model_store_operations_total (counter)
    Labels: operation (save, load, prune), status
  - recommend_model_store_last_size_bytes (gauge)

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation("hybrid", outcome, time.Since(start))

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
