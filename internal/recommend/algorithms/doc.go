// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package algorithms implements the scoring components of the hybrid engine.
//
// # Components
//
// Collaborative Filtering:
//   - LatentFactor: biased matrix factorization fitted with SGD
//
// Content-Based Filtering:
//   - ContentIndex: counts a user's past projects sharing a candidate's category
//
// Knowledge-Based Filtering:
//   - KnowledgeFilter: projects whose category equals the user's declared interest
//
// Baselines:
//   - Popularity: projects ranked by total donation amount
//
// Evaluate reports RMSE and MAE of a trained LatentFactor over held-out ratings.
//
// # Usage Example
//
//	lf, err := algorithms.NewLatentFactor(recommend.DefaultLatentFactorConfig())
//	if err != nil {
//	    return err
//	}
//	if err := lf.Train(ctx, ratings); err != nil {
//	    return err
//	}
//	score := lf.Predict(userID, projectID) * maxDonation
//
// # Determinism
//
// LatentFactor training is single-threaded. Factor initialization draws from
// a math/rand source seeded with the configured seed, users first and then
// projects, each in first-seen order, and every epoch walks the ratings in
// their given order. Two trainings over the same data with the same seed
// produce bit-identical parameters.
//
// # Thread Safety
//
// All components are safe for concurrent use. Training acquires an exclusive
// lock while prediction uses a shared lock.
package algorithms
