// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - Dataset loading (DuckDB)
// - API endpoint latency and throughput
// - Model training and evaluation
// - Recommendation serving and response cache
// - Model store persistence

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_loaded_total",
			Help: "Total number of rows read from source datasets",
		},
		[]string{"table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Duration of full training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of training runs by outcome",
		},
		[]string{"outcome"}, // "success", "invalid_normalization", "insufficient_data", "canceled", "error"
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_training_last_success_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_version",
			Help: "Version of the snapshot currently being served",
		},
	)

	ModelInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_interactions",
			Help: "Number of interactions the served snapshot was trained on",
		},
	)

	HoldoutRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_holdout_rmse",
			Help: "RMSE of the served latent factor model on held-out ratings (normalized units)",
		},
	)

	HoldoutMAE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_holdout_mae",
			Help: "MAE of the served latent factor model on held-out ratings (normalized units)",
		},
	)

	// Serving Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"endpoint", "outcome"},
	)

	RecommendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_latency_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"endpoint"},
	)

	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total number of fallback responses by source",
		},
		[]string{"source"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	RecommendCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_cache_entries",
			Help: "Current number of cached recommendation responses",
		},
	)

	// Model Store Metrics
	ModelStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_model_store_operations_total",
			Help: "Total number of model store operations",
		},
		[]string{"operation", "status"}, // operation: save, load, prune
	)

	ModelStoreSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_store_last_size_bytes",
			Help: "Compressed size of the last saved snapshot",
		},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordRowsLoaded records rows read from a source table
func RecordRowsLoaded(table string, rows int) {
	DBRowsLoaded.WithLabelValues(table).Add(float64(rows))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordTraining records the outcome of a training run.
// version is only applied on success.
func RecordTraining(outcome string, duration time.Duration, version, interactions int) {
	TrainingDuration.Observe(duration.Seconds())
	TrainingRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		TrainingLastSuccess.Set(float64(time.Now().Unix()))
		ModelVersion.Set(float64(version))
		ModelInteractions.Set(float64(interactions))
	}
}

// RecordEvaluation records the holdout accuracy of the served model
func RecordEvaluation(rmse, mae float64) {
	HoldoutRMSE.Set(rmse)
	HoldoutMAE.Set(mae)
}

// RecordRecommendation records a served recommendation request
func RecordRecommendation(endpoint, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	RecommendLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordFallback records which source answered a fallback request
func RecordFallback(source string) {
	RecommendFallbacks.WithLabelValues(source).Inc()
}

// RecordCacheAccess records a response cache lookup
func RecordCacheAccess(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// UpdateCacheSize sets the response cache gauge
func UpdateCacheSize(entries int) {
	RecommendCacheSize.Set(float64(entries))
}

// RecordModelStore records a model store operation
func RecordModelStore(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ModelStoreOperations.WithLabelValues(operation, status).Inc()
}

// SetModelStoreSize records the compressed size of the last saved snapshot
func SetModelStoreSize(sizeBytes int64) {
	ModelStoreSizeBytes.Set(float64(sizeBytes))
}

// SetAppInfo publishes the build version
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// StatusLabel converts an HTTP status code to a label value
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
