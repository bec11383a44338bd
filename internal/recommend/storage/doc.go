// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package storage provides persistence for trained recommendation snapshots.
//
// A trained snapshot survives restarts so the server can answer requests
// before its first training run completes.
//
// # Overview
//
// The storage system provides:
//   - Gob serialization for efficient Go type encoding
//   - Gzip compression to reduce storage footprint
//   - SHA-256 checksums for data integrity verification
//   - Version tracking for model lineage
//   - Pruning of old model versions
//
// # Storage Format
//
// Models live in a BadgerDB database, one key per version:
//
//	key:   model/{name}/{version, 10 zero-padded digits}
//
//	value (gob):
//	  - Metadata (ModelMetadata)
//	  - CompressedData (gzip-compressed gob-encoded model state)
//
// # Usage Example
//
//	store, err := storage.NewStore("/data/models")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Save(ctx, "hybrid", 3, snapshotState, storage.ModelMetadata{
//	    TrainedAt:        time.Now(),
//	    InteractionCount: 1000,
//	})
//
//	var state SnapshotState
//	meta, err := store.Load(ctx, "hybrid", 0, &state) // 0 = latest
//
// # Thread Safety
//
// All operations are safe for concurrent use. Writes are serialized by the
// store's mutex and by BadgerDB transactions.
package storage
