// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/fundmatch/internal/config"
	"github.com/tomtom215/fundmatch/internal/database/query"
	"github.com/tomtom215/fundmatch/internal/logging"
)

// Source table names inside a DuckDB database file.
const (
	TableInteractions = "interactions"
	TableProjects     = "projects"
	TableUsers        = "users"
)

// queryTimeout bounds a single load query.
const queryTimeout = 60 * time.Second

// DB wraps the DuckDB connection used to read the dataset.
type DB struct {
	conn *sql.DB
	cfg  config.DataConfig
}

// New opens DuckDB for the configured sources. It does not read any data;
// missing CSV files surface on the first load.
func New(cfg *config.DataConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// preserve_insertion_order keeps CSV row order, which fixes the
	// normalization and training order.
	path, accessMode := ":memory:", "read_write"
	if cfg.DuckDBPath != "" {
		path, accessMode = cfg.DuckDBPath, "read_only"
	}
	connStr := fmt.Sprintf("%s?access_mode=%s&threads=%d&max_memory=%s&preserve_insertion_order=true",
		path, accessMode, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Debug().
		Str("duckdb_path", cfg.DuckDBPath).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("DuckDB opened")

	return &DB{conn: conn, cfg: *cfg}, nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// source returns the FROM expression for a dataset table. A configured
// DuckDB file supplies every table; CSV paths are used only without one.
func (db *DB) source(table string) (string, error) {
	if db.cfg.DuckDBPath != "" {
		return query.TableSource(table), nil
	}

	var path string
	switch table {
	case TableInteractions:
		path = db.cfg.InteractionsPath
	case TableProjects:
		path = db.cfg.ProjectsPath
	case TableUsers:
		path = db.cfg.UsersPath
	}
	if path == "" {
		return "", fmt.Errorf("no CSV path configured for %s", table)
	}
	return query.CSVSource(path), nil
}

// columns lists the column names of a source without reading rows.
func (db *DB) columns(ctx context.Context, source string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM "+source+" LIMIT 0")
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return cols, rows.Err()
}
