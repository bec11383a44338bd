// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package recommend

import (
	"strings"
	"time"
)

// InteractionType classifies how a user engaged with a project.
// It is carried for reporting only and never changes scoring.
type InteractionType int

const (
	// InteractionUnknown is used when the source data has no type column.
	InteractionUnknown InteractionType = iota
	// InteractionView indicates the user viewed the project page.
	InteractionView
	// InteractionLike indicates the user liked the project.
	InteractionLike
	// InteractionDonate indicates the user donated to the project.
	InteractionDonate
)

// String returns a human-readable name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionView:
		return "view"
	case InteractionLike:
		return "like"
	case InteractionDonate:
		return "donate"
	default:
		return "unknown"
	}
}

// ParseInteractionType converts a source label into an InteractionType.
// Unrecognized labels map to InteractionUnknown.
func ParseInteractionType(s string) InteractionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "view":
		return InteractionView
	case "like":
		return InteractionLike
	case "donate", "donation":
		return InteractionDonate
	default:
		return InteractionUnknown
	}
}

// Interaction is a single user-project event from the source data.
type Interaction struct {
	// UserID identifies the donor.
	UserID int `json:"user_id"`

	// ProjectID identifies the project.
	ProjectID int `json:"project_id"`

	// DonationAmount is the raw, non-negative amount donated.
	// Views and likes carry 0.
	DonationAmount float64 `json:"donation_amount"`

	// Type is the optional interaction label.
	Type InteractionType `json:"type"`
}

// Project is a fundable project from the catalog.
// Only ID and Category are consumed by the scoring core.
type Project struct {
	ID          int     `json:"project_id"`
	Category    string  `json:"category"`
	Title       string  `json:"title,omitempty"`
	ImpactScore float64 `json:"impact_score,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// User is a registered user with a single declared interest.
type User struct {
	ID        int    `json:"user_id"`
	Interests string `json:"interests"`
	Name      string `json:"name,omitempty"`
}

// Rating is an interaction whose donation amount has been normalized to [0, 1].
type Rating struct {
	UserID    int
	ProjectID int
	Value     float64
}

// ScoredProject is one row of a ranked recommendation list.
type ScoredProject struct {
	// ProjectID is the recommended project.
	ProjectID int `json:"project_id"`

	// Category is the project category, empty if the project is not in the catalog.
	Category string `json:"category,omitempty"`

	// Score is the fused ranking score.
	Score float64 `json:"score"`

	// CFScore is the collaborative prediction in donation units.
	CFScore float64 `json:"cf_score"`

	// ContentScore is the number of same-category projects in the user's history.
	ContentScore float64 `json:"content_score"`
}

// Source identifies which strategy produced a recommendation list.
type Source string

const (
	// SourceHybrid is the fused collaborative + content ranking.
	SourceHybrid Source = "hybrid"
	// SourceKnowledge is the declared-interest filter.
	SourceKnowledge Source = "knowledge"
	// SourcePopularity is the donation-volume ranking.
	SourcePopularity Source = "popularity"
)

// Request is a recommendation request.
type Request struct {
	// UserID is the user to generate recommendations for. Any integer the
	// dataset carries is accepted, negative ones included.
	UserID int `json:"user_id"`

	// K is the number of recommendations to return.
	// Defaults to Config.Limits.DefaultK if zero.
	K int `json:"k,omitempty" validate:"gte=0"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is a ranked recommendation list with diagnostics.
type Response struct {
	// Items is the ordered list, highest score first.
	Items []ScoredProject `json:"items"`

	// TotalCandidates is the number of projects that were scored.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ProjectIDs returns the ranked project IDs.
func (r *Response) ProjectIDs() []int {
	ids := make([]int, len(r.Items))
	for i := range r.Items {
		ids[i] = r.Items[i].ProjectID
	}
	return ids
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID    string    `json:"request_id"`
	UserID       int       `json:"user_id"`
	Source       Source    `json:"source"`
	LatencyMS    int64     `json:"latency_ms"`
	CacheHit     bool      `json:"cache_hit"`
	ModelVersion int       `json:"model_version"`
	TrainedAt    time.Time `json:"trained_at"`
	Timestamp    time.Time `json:"timestamp"`
}

// Evaluation holds holdout accuracy of the collaborative model.
// Errors are in normalized units.
type Evaluation struct {
	RMSE       float64 `json:"rmse"`
	MAE        float64 `json:"mae"`
	TestCount  int     `json:"test_count"`
	TrainCount int     `json:"train_count"`
}

// TrainingStatus represents the current training state.
type TrainingStatus struct {
	// IsTraining indicates whether training is currently in progress.
	IsTraining bool `json:"is_training"`

	// Ready is true once a trained snapshot is being served.
	Ready bool `json:"ready"`

	// LastTrainedAt is when training last completed.
	LastTrainedAt time.Time `json:"last_trained_at"`

	// LastTrainingDurationMS is how long the last training took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastError contains the last training error, if any.
	LastError string `json:"last_error,omitempty"`

	InteractionCount int `json:"interaction_count"`
	ProjectCount     int `json:"project_count"`
	UserCount        int `json:"user_count"`

	// MaxDonation is the normalization scalar of the served model.
	MaxDonation float64 `json:"max_donation"`

	// ModelVersion is the current model version.
	ModelVersion int `json:"model_version"`

	// Evaluation is the holdout result of the served model, if any.
	Evaluation *Evaluation `json:"evaluation,omitempty"`

	// Restored is true when the served model was loaded from the model store.
	Restored bool `json:"restored"`
}

// Metrics contains engine counters for the status endpoint.
type Metrics struct {
	RequestCount  int64 `json:"request_count"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	ErrorCount    int64 `json:"error_count"`
	TrainingCount int64 `json:"training_count"`
	FallbackCount int64 `json:"fallback_count"`
}
