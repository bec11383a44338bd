// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/fundmatch/internal/database/query"
	"github.com/tomtom215/fundmatch/internal/logging"
	"github.com/tomtom215/fundmatch/internal/metrics"
	"github.com/tomtom215/fundmatch/internal/recommend"
)

var _ recommend.DataProvider = (*DB)(nil)

// GetInteractions returns all interactions in source order.
func (db *DB) GetInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	var interactions []recommend.Interaction

	err := db.load(ctx, TableInteractions,
		func(sb *query.SelectBuilder) {
			sb.Required("user_id", "BIGINT").
				Required("project_id", "BIGINT").
				Optional("donation_amount", "DOUBLE", "0").
				Optional("interaction_type", "VARCHAR", "''")
			sb.Where().AddNotNull("user_id").AddNotNull("project_id")
		},
		func(rows *sql.Rows) error {
			var (
				in       recommend.Interaction
				typeName string
			)
			if err := rows.Scan(&in.UserID, &in.ProjectID, &in.DonationAmount, &typeName); err != nil {
				return err
			}
			in.Type = recommend.ParseInteractionType(typeName)
			interactions = append(interactions, in)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

// GetProjects returns the project catalog in source order.
func (db *DB) GetProjects(ctx context.Context) ([]recommend.Project, error) {
	var projects []recommend.Project

	err := db.load(ctx, TableProjects,
		func(sb *query.SelectBuilder) {
			sb.Required("project_id", "BIGINT").
				RequiredOr("category", "VARCHAR", "''").
				Optional("title", "VARCHAR", "''").
				Optional("impact_score", "DOUBLE", "0").
				Optional("location", "VARCHAR", "''")
			sb.Where().AddNotNull("project_id")
		},
		func(rows *sql.Rows) error {
			var p recommend.Project
			if err := rows.Scan(&p.ID, &p.Category, &p.Title, &p.ImpactScore, &p.Location); err != nil {
				return err
			}
			projects = append(projects, p)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetUsers returns the registered users in source order.
func (db *DB) GetUsers(ctx context.Context) ([]recommend.User, error) {
	var users []recommend.User

	err := db.load(ctx, TableUsers,
		func(sb *query.SelectBuilder) {
			sb.Required("user_id", "BIGINT").
				RequiredOr("interests", "VARCHAR", "''").
				Optional("name", "VARCHAR", "''")
			sb.Where().AddNotNull("user_id")
		},
		func(rows *sql.Rows) error {
			var u recommend.User
			if err := rows.Scan(&u.ID, &u.Interests, &u.Name); err != nil {
				return err
			}
			users = append(users, u)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// load runs one projection over table and feeds every row to scan.
func (db *DB) load(ctx context.Context, table string, build func(*query.SelectBuilder), scan func(*sql.Rows) error) (err error) {
	start := time.Now()
	loaded := 0
	defer func() {
		metrics.RecordDBQuery("load", table, time.Since(start), err)
		if err == nil {
			metrics.RecordRowsLoaded(table, loaded)
			logging.Debug().Str("table", table).Int("rows", loaded).
				Dur("duration", time.Since(start)).Msg("Dataset table loaded")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	source, err := db.source(table)
	if err != nil {
		return err
	}
	cols, err := db.columns(ctx, source)
	if err != nil {
		return fmt.Errorf("read %s columns: %w", table, err)
	}

	sb := query.NewSelectBuilder(source, cols)
	build(sb)
	stmt, args, err := sb.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		if err = scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		loaded++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}
