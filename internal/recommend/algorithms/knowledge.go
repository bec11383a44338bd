// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// KnowledgeFilter matches projects against a user's declared interest.
// A project matches when its category is exactly equal to the interest
// string. No history is needed, so it serves cold-start users.
type KnowledgeFilter struct {
	BaseAlgorithm

	interests map[int]string
	projects  []recommend.Project
}

// NewKnowledgeFilter creates an empty, unbuilt filter.
func NewKnowledgeFilter() *KnowledgeFilter {
	return &KnowledgeFilter{
		BaseAlgorithm: NewBaseAlgorithm("knowledge"),
		interests:     make(map[int]string),
	}
}

// Build indexes user interests and keeps the catalog in source order.
// The first record wins for duplicate user IDs.
//
//nolint:gocritic // rangeValCopy: User is small
func (k *KnowledgeFilter) Build(ctx context.Context, users []recommend.User, projects []recommend.Project) error {
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	interests := make(map[int]string, len(users))
	for _, u := range users {
		if _, ok := interests[u.ID]; !ok {
			interests[u.ID] = u.Interests
		}
	}

	k.acquireTrainLock()
	defer k.releaseTrainLock()

	k.interests = interests
	k.projects = append([]recommend.Project(nil), projects...)
	k.markTrained()
	return nil
}

// Recommend returns the IDs of the projects whose category equals the
// user's interest, in catalog order. An unknown user fails with a
// *recommend.NotFoundError. No match returns an empty, non-nil slice.
func (k *KnowledgeFilter) Recommend(userID int) ([]int, error) {
	matches, err := k.RecommendProjects(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(matches))
	for i := range matches {
		ids[i] = matches[i].ID
	}
	return ids, nil
}

// RecommendProjects is Recommend returning the full catalog records.
func (k *KnowledgeFilter) RecommendProjects(userID int) ([]recommend.Project, error) {
	k.acquirePredictLock()
	defer k.releasePredictLock()

	if !k.trained {
		return nil, recommend.ErrModelNotReady
	}

	interest, ok := k.interests[userID]
	if !ok {
		return nil, fmt.Errorf("knowledge filter: %w", recommend.NewNotFoundError("user", userID))
	}

	matches := make([]recommend.Project, 0)
	for i := range k.projects {
		if k.projects[i].Category == interest {
			matches = append(matches, k.projects[i])
		}
	}
	return matches, nil
}

// Interest returns the declared interest of a user.
func (k *KnowledgeFilter) Interest(userID int) (string, bool) {
	k.acquirePredictLock()
	defer k.releasePredictLock()
	interest, ok := k.interests[userID]
	return interest, ok
}

// NumUsers returns the number of users indexed.
func (k *KnowledgeFilter) NumUsers() int {
	k.acquirePredictLock()
	defer k.releasePredictLock()
	return len(k.interests)
}
