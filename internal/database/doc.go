// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package database loads the recommendation dataset through DuckDB.
//
// # Sources
//
// With DUCKDB_PATH unset, an in-memory DuckDB instance reads the three CSV
// files directly with read_csv_auto:
//
//	interactions.csv  user_id, project_id[, donation_amount][, interaction_type]
//	projects.csv      project_id, category[, title][, description][, impact_score][, location]
//	users.csv         user_id, interests[, name][, email]
//
// With DUCKDB_PATH set, the database file is opened read-only and the
// tables interactions, projects and users are read instead; CSV paths are
// ignored.
//
// Bracketed columns are optional. A missing or empty donation_amount reads
// as 0; a missing interaction_type reads as unknown. Rows with a NULL id
// are skipped. Row order is the source order.
//
// # Usage
//
//	db, err := database.New(&cfg.Data)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	engine.SetDataProvider(db)
//
// DB implements recommend.DataProvider and is safe for concurrent use.
package database
