// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package hybrid

import (
	"sort"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// Predictor estimates a normalized rating for a user-project pair.
type Predictor interface {
	Predict(userID, projectID int) float64
	IsTrained() bool
}

// ContentScorer counts category overlap between a user's history and a project.
type ContentScorer interface {
	Score(userID, projectID int) int
	Category(projectID int) (string, bool)
	IsTrained() bool
}

// RankerConfig holds the inputs a Ranker needs besides its scorers.
type RankerConfig struct {
	// Candidates are the distinct project IDs of the interaction history
	// in discovery order.
	Candidates []int

	// MaxDonation scales collaborative predictions back to donation units.
	MaxDonation float64

	// Weights scale the collaborative and content terms.
	Weights recommend.FusionWeights

	// DefaultK is used when a request asks for k <= 0.
	DefaultK int
}

// Ranker fuses collaborative and content scores into one ranked list.
//
// For every candidate p:
//
//	hybrid(u, p) = Wcf * Predict(u, p) * MaxDonation + Wcontent * Score(u, p)
//
// With the default weights of 1.0 this is the plain sum of the two scores.
// A Ranker is immutable and safe for concurrent use.
type Ranker struct {
	cf      Predictor
	content ContentScorer
	config  RankerConfig
}

// NewRanker creates a ranker over the given scorers.
//
//nolint:gocritic // hugeParam: cfg is built once per training run
func NewRanker(cf Predictor, content ContentScorer, cfg RankerConfig) *Ranker {
	cfg.Candidates = append([]int(nil), cfg.Candidates...)
	return &Ranker{cf: cf, content: content, config: cfg}
}

// Ready reports whether both scorers are trained.
func (r *Ranker) Ready() bool {
	return r.cf != nil && r.content != nil && r.cf.IsTrained() && r.content.IsTrained()
}

// Candidates returns a copy of the candidate set in discovery order.
func (r *Ranker) Candidates() []int {
	return append([]int(nil), r.config.Candidates...)
}

// Recommend returns at most k projects for the user, highest hybrid score
// first. Ties keep discovery order. It fails with recommend.ErrModelNotReady
// before any scoring work when either scorer is untrained.
func (r *Ranker) Recommend(userID, k int) ([]recommend.ScoredProject, error) {
	if !r.Ready() {
		return nil, recommend.ErrModelNotReady
	}
	if k <= 0 {
		k = r.config.DefaultK
	}

	w := r.config.Weights
	scored := make([]recommend.ScoredProject, len(r.config.Candidates))
	for i, projectID := range r.config.Candidates {
		cf := r.cf.Predict(userID, projectID) * r.config.MaxDonation
		content := float64(r.content.Score(userID, projectID))
		category, _ := r.content.Category(projectID)

		scored[i] = recommend.ScoredProject{
			ProjectID:    projectID,
			Category:     category,
			Score:        w.CF*cf + w.Content*content,
			CFScore:      cf,
			ContentScore: content,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}
