// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package recommend holds the shared data model of the hybrid project
// recommendation engine: interactions, projects, users, normalized ratings,
// engine configuration and the error taxonomy.
//
// # Architecture
//
// The engine fuses three signals to recommend crowdfunding projects:
//
//   - Collaborative filtering: a biased latent factor model trained with SGD
//     on donation amounts normalized to [0, 1] (algorithms.LatentFactor)
//   - Content-based scoring: how many projects in a user's history share the
//     candidate's category (algorithms.ContentIndex)
//   - Knowledge-based filtering: projects whose category equals the user's
//     declared interest (algorithms.KnowledgeFilter)
//
// The fusion and ranking live in the hybrid subpackage, persistence in the
// storage subpackage. This package has no dependencies on other internal
// packages; the DataProvider interface lets the database layer feed the
// engine without import cycles.
//
// # Normalization
//
// Donation amounts are divided by the largest amount in the full interaction
// set. That maximum is kept by the InteractionStore so that predictions can
// be scaled back to donation units. A zero, negative or non-finite maximum is
// reported as ErrInvalidNormalization before any training work starts.
//
// # Errors
//
//   - ErrInvalidNormalization: normalization is undefined for the data
//   - ErrModelNotReady: ranking requested before training completed
//   - ErrNotFound / *NotFoundError: unknown user or project
//   - ErrTrainingInProgress: a second concurrent training run was requested
//   - ErrInsufficientData: too few interactions to train
//
// Cold start is not an error: unseen users or projects get a degraded but
// defined collaborative score.
//
// # Usage
//
//	store, err := recommend.NewInteractionStore(interactions)
//	if errors.Is(err, recommend.ErrInvalidNormalization) {
//	    // fix the data before training
//	}
//	train, test := recommend.SplitRatings(store.Ratings(), 0.2, 42)
package recommend
