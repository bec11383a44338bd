// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

/*
Package hybrid fuses the collaborative and content scores into a single
ranking and serves it.

# Engine

Engine owns the training lifecycle. A training run loads interactions,
projects and users from a recommend.DataProvider, normalizes donations,
trains the latent factor model on the holdout-split training part, builds
the content index, knowledge filter and popularity ranking, and publishes
everything as one immutable Snapshot through an atomic pointer. Readers
never block on training and always see a consistent set of components.

	engine, err := hybrid.NewEngine(cfg, logger)
	engine.SetDataProvider(provider)
	engine.SetStore(store) // optional persistence
	if err := engine.Train(ctx); err != nil { ... }

	resp, err := engine.Recommend(ctx, recommend.Request{UserID: 42, K: 10})

Only one training run may be active; a concurrent Train call returns
recommend.ErrTrainingInProgress. A failed run leaves the previous snapshot
serving.

# Scoring

For every candidate project p (the distinct projects of the interaction
history, in discovery order):

	hybrid(u, p) = Wcf * Predict(u, p) * MaxDonation + Wcontent * Score(u, p)

Results are sorted by descending score with a stable sort, so ties keep
discovery order.

# Fallback

RecommendOrFallback serves users without history from the declared-interest
filter, then from the donation-volume popularity ranking.

# Caching

Hybrid responses are cached in an expiring LRU keyed by snapshot version,
user and list length. Publishing a snapshot purges the cache.
*/
package hybrid
