// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumns is returned by Build when a required column is absent.
var ErrMissingColumns = errors.New("missing required columns")

// QuoteIdent quotes a SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral quotes a SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// CSVSource reads a headered CSV file with type sniffing.
func CSVSource(path string) string {
	return fmt.Sprintf("read_csv_auto(%s, header = true)", QuoteLiteral(path))
}

// TableSource selects from a table of the attached database.
func TableSource(table string) string {
	return QuoteIdent(table)
}

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddNotNull skips rows where column is NULL.
func (wb *WhereBuilder) AddNotNull(column string) *WhereBuilder {
	wb.clauses = append(wb.clauses, QuoteIdent(column)+" IS NOT NULL")
	return wb
}

// Build joins clauses with AND. Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// SelectBuilder builds a projection over a source whose columns are known
// up front. Column names match case-insensitively.
type SelectBuilder struct {
	source  string
	present map[string]string
	exprs   []string
	missing []string
	where   *WhereBuilder
}

// NewSelectBuilder starts a query over source with the given column names.
func NewSelectBuilder(source string, columns []string) *SelectBuilder {
	present := make(map[string]string, len(columns))
	for _, c := range columns {
		present[strings.ToLower(c)] = c
	}
	return &SelectBuilder{
		source:  source,
		present: present,
		where:   NewWhereBuilder(),
	}
}

// Has reports whether the source carries column.
func (sb *SelectBuilder) Has(column string) bool {
	_, ok := sb.present[strings.ToLower(column)]
	return ok
}

// Required projects column cast to sqlType. Absence fails Build.
func (sb *SelectBuilder) Required(column, sqlType string) *SelectBuilder {
	actual, ok := sb.present[strings.ToLower(column)]
	if !ok {
		sb.missing = append(sb.missing, column)
		sb.exprs = append(sb.exprs, "NULL")
		return sb
	}
	sb.exprs = append(sb.exprs, fmt.Sprintf("CAST(%s AS %s)", QuoteIdent(actual), sqlType))
	return sb
}

// RequiredOr is Required with NULL or unconvertible values replaced by
// fallback.
func (sb *SelectBuilder) RequiredOr(column, sqlType, fallback string) *SelectBuilder {
	if !sb.Has(column) {
		return sb.Required(column, sqlType)
	}
	return sb.Optional(column, sqlType, fallback)
}

// Optional projects column cast to sqlType, or fallback when the column is
// absent, NULL or not convertible.
func (sb *SelectBuilder) Optional(column, sqlType, fallback string) *SelectBuilder {
	actual, ok := sb.present[strings.ToLower(column)]
	if !ok {
		sb.exprs = append(sb.exprs, fallback)
		return sb
	}
	sb.exprs = append(sb.exprs, fmt.Sprintf("COALESCE(TRY_CAST(%s AS %s), %s)", QuoteIdent(actual), sqlType, fallback))
	return sb
}

// Where exposes the filter of the query.
func (sb *SelectBuilder) Where() *WhereBuilder {
	return sb.where
}

// Build renders the statement. Column order follows the Required and
// Optional calls.
func (sb *SelectBuilder) Build() (string, []interface{}, error) {
	if len(sb.missing) > 0 {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(sb.missing, ", "))
	}
	if len(sb.exprs) == 0 {
		return "", nil, errors.New("no columns selected")
	}
	where, args := sb.where.BuildWithPrefix()
	return fmt.Sprintf("SELECT %s FROM %s %s", strings.Join(sb.exprs, ", "), sb.source, where), args, nil
}
