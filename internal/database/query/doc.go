// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

// Package query builds the DuckDB SELECT statements used by the dataset
// loader.
//
// Sources are either a CSV file read through read_csv_auto or a table of a
// DuckDB database file. Source files differ in which optional columns they
// carry, so the builder is told which columns exist and substitutes a
// fallback expression for every optional column that is absent:
//
//	sb := query.NewSelectBuilder(query.CSVSource(path), columns)
//	sb.Required("user_id", "BIGINT").
//	    Required("project_id", "BIGINT").
//	    Optional("donation_amount", "DOUBLE", "0")
//	sb.Where().AddNotNull("user_id").AddNotNull("project_id")
//	sql, args, err := sb.Build()
//
// Missing required columns are reported together by Build.
package query
