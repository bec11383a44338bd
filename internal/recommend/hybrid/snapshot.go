// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package hybrid

import (
	"time"

	"github.com/tomtom215/fundmatch/internal/recommend"
	"github.com/tomtom215/fundmatch/internal/recommend/algorithms"
)

// snapshotName is the model store key of persisted snapshots.
const snapshotName = "hybrid"

// Snapshot is the immutable set of trained artifacts served by the engine.
// A new Snapshot is built for every training run and published atomically.
type Snapshot struct {
	Version   int
	TrainedAt time.Time

	LatentFactor *algorithms.LatentFactor
	Content      *algorithms.ContentIndex
	Knowledge    *algorithms.KnowledgeFilter
	Popularity   *algorithms.Popularity
	Ranker       *Ranker

	MaxDonation float64
	Evaluation  *recommend.Evaluation

	InteractionCount int
	ProjectCount     int
	UserCount        int

	// Restored is true when the collaborative parameters were loaded from
	// the model store instead of trained in this process.
	Restored bool
}

// SnapshotState is the persisted form of a Snapshot.
// Content, knowledge and popularity indexes are cheap to rebuild from the
// source data and are not stored.
type SnapshotState struct {
	Version          int
	TrainedAt        time.Time
	LatentFactor     algorithms.LatentFactorState
	Candidates       []int
	MaxDonation      float64
	Evaluation       *recommend.Evaluation
	InteractionCount int
	ProjectCount     int
	UserCount        int
}

// state exports the persisted form of s.
func (s *Snapshot) state() SnapshotState {
	return SnapshotState{
		Version:          s.Version,
		TrainedAt:        s.TrainedAt,
		LatentFactor:     s.LatentFactor.State(),
		Candidates:       s.Ranker.Candidates(),
		MaxDonation:      s.MaxDonation,
		Evaluation:       s.Evaluation,
		InteractionCount: s.InteractionCount,
		ProjectCount:     s.ProjectCount,
		UserCount:        s.UserCount,
	}
}
