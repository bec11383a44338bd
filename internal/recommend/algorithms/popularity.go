// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// Popularity ranks projects by the total amount donated to them.
// It provides the baseline for users unknown to every other component.
//
// The popularity score is computed as:
//
//	score(project) = sum(donation_amount) over all interactions with project
//
// Ties are broken by interaction count, then by discovery order.
type Popularity struct {
	BaseAlgorithm

	totals    map[int]float64
	counts    map[int]int
	sortedIDs []int
}

// NewPopularity creates a new popularity ranker.
func NewPopularity() *Popularity {
	return &Popularity{
		BaseAlgorithm: NewBaseAlgorithm("popularity"),
		totals:        make(map[int]float64),
		counts:        make(map[int]int),
	}
}

// Train computes popularity scores from raw interactions.
//
//nolint:gocritic // rangeValCopy: Interaction is passed by value in range, acceptable for clarity
func (p *Popularity) Train(ctx context.Context, interactions []recommend.Interaction) error {
	totals := make(map[int]float64)
	counts := make(map[int]int)
	order := make([]int, 0)

	for _, inter := range interactions {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		if _, ok := counts[inter.ProjectID]; !ok {
			order = append(order, inter.ProjectID)
		}
		totals[inter.ProjectID] += inter.DonationAmount
		counts[inter.ProjectID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		return counts[a] > counts[b]
	})

	p.acquireTrainLock()
	defer p.releaseTrainLock()

	p.totals = totals
	p.counts = counts
	p.sortedIDs = order
	p.markTrained()
	return nil
}

// Top returns the k most popular projects with their totals as scores.
// k <= 0 returns nil.
func (p *Popularity) Top(k int) []recommend.ScoredProject {
	p.acquirePredictLock()
	defer p.releasePredictLock()

	if k <= 0 || len(p.sortedIDs) == 0 {
		return nil
	}
	if k > len(p.sortedIDs) {
		k = len(p.sortedIDs)
	}

	result := make([]recommend.ScoredProject, k)
	for i, id := range p.sortedIDs[:k] {
		result[i] = recommend.ScoredProject{ProjectID: id, Score: p.totals[id]}
	}
	return result
}

// Len returns the number of ranked projects.
func (p *Popularity) Len() int {
	p.acquirePredictLock()
	defer p.releasePredictLock()
	return len(p.sortedIDs)
}
