// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package algorithms

import (
	"context"

	"github.com/tomtom215/fundmatch/internal/recommend"
)

// ContentIndex scores a candidate project by how many projects in the
// user's history share its category.
//
// The score is:
//
//	score(u, p) = |{ h in history(u) : category(h) == category(p) }|
//
// History keeps duplicates, so a user who interacted with the same project
// three times contributes three to its category. History projects missing
// from the catalog never match. A candidate missing from the catalog
// scores 0.
type ContentIndex struct {
	BaseAlgorithm

	categories map[int]string
	history    map[int][]int

	// categoryCounts[user][category] is precomputed at build time so Score
	// is O(1).
	categoryCounts map[int]map[string]int
}

// NewContentIndex creates an empty, unbuilt index.
func NewContentIndex() *ContentIndex {
	return &ContentIndex{
		BaseAlgorithm:  NewBaseAlgorithm("content"),
		categories:     make(map[int]string),
		history:        make(map[int][]int),
		categoryCounts: make(map[int]map[string]int),
	}
}

// Build indexes the catalog and the interaction history in one pass.
// The first catalog record wins for duplicate project IDs.
//
//nolint:gocritic // rangeValCopy: Project and Interaction are small
func (c *ContentIndex) Build(ctx context.Context, projects []recommend.Project, interactions []recommend.Interaction) error {
	categories := make(map[int]string, len(projects))
	for _, p := range projects {
		if _, ok := categories[p.ID]; !ok {
			categories[p.ID] = p.Category
		}
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	history := make(map[int][]int)
	counts := make(map[int]map[string]int)
	for _, inter := range interactions {
		history[inter.UserID] = append(history[inter.UserID], inter.ProjectID)

		category, ok := categories[inter.ProjectID]
		if !ok {
			continue
		}
		userCounts, ok := counts[inter.UserID]
		if !ok {
			userCounts = make(map[string]int)
			counts[inter.UserID] = userCounts
		}
		userCounts[category]++
	}

	c.acquireTrainLock()
	defer c.releaseTrainLock()

	c.categories = categories
	c.history = history
	c.categoryCounts = counts
	c.markTrained()
	return nil
}

// IsBuilt reports whether Build has completed.
func (c *ContentIndex) IsBuilt() bool {
	return c.IsTrained()
}

// Score returns the category overlap count between the user's history and
// the project. It is 0 for an unknown user or project.
func (c *ContentIndex) Score(userID, projectID int) int {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	category, ok := c.categories[projectID]
	if !ok {
		return 0
	}
	return c.categoryCounts[userID][category]
}

// History returns a copy of the user's project history in source order.
func (c *ContentIndex) History(userID int) []int {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return append([]int(nil), c.history[userID]...)
}

// HasHistory reports whether the user has any recorded interaction.
func (c *ContentIndex) HasHistory(userID int) bool {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return len(c.history[userID]) > 0
}

// Category returns the catalog category of a project.
func (c *ContentIndex) Category(projectID int) (string, bool) {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	category, ok := c.categories[projectID]
	return category, ok
}

// NumProjects returns the number of catalog projects indexed.
func (c *ContentIndex) NumProjects() int {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return len(c.categories)
}
