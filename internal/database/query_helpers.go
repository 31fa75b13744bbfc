// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/netsight/internal/logging"
	"github.com/tomtom215/netsight/internal/metrics"
)

// queryBuilder helps construct SQL queries with filters.
// The base query must end in a WHERE clause (typically "WHERE 1=1").
type queryBuilder struct {
	baseQuery string
	args      []interface{}
	filters   []string
}

// newQueryBuilder creates a new query builder with a base query.
func newQueryBuilder(baseQuery string) *queryBuilder {
	return &queryBuilder{
		baseQuery: baseQuery,
		args:      make([]interface{}, 0, 4),
		filters:   make([]string, 0, 3),
	}
}

// addCaptureFilter restricts column to a single capture when captureID is set
func (qb *queryBuilder) addCaptureFilter(column string, captureID *int64) *queryBuilder {
	if captureID != nil {
		qb.filters = append(qb.filters, column+" = ?")
		qb.args = append(qb.args, *captureID)
	}
	return qb
}

// addContainsFilter adds a case-insensitive substring match when value is non-empty
func (qb *queryBuilder) addContainsFilter(column, value string) *queryBuilder {
	if value != "" {
		qb.filters = append(qb.filters, column+" ILIKE '%' || ? || '%'")
		qb.args = append(qb.args, value)
	}
	return qb
}

// addFilter adds a custom filter condition
func (qb *queryBuilder) addFilter(condition string, args ...interface{}) *queryBuilder {
	qb.filters = append(qb.filters, condition)
	qb.args = append(qb.args, args...)
	return qb
}

// addLimit appends a LIMIT argument; the suffix passed to build must hold the placeholder
func (qb *queryBuilder) addLimit(limit int) *queryBuilder {
	qb.args = append(qb.args, limit)
	return qb
}

// build constructs the final query and returns it with args
func (qb *queryBuilder) build(suffix string) (string, []interface{}) {
	query := qb.baseQuery
	if len(qb.filters) > 0 {
		query += " AND " + strings.Join(qb.filters, " AND ")
	}
	if suffix != "" {
		query += " " + suffix
	}
	return query, qb.args
}

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan function.
// The returned slice is never nil so empty results encode as [].
func queryAndScan[T any](ctx context.Context, db *sql.DB, table, query string, args []interface{}, scan scanFunc[T]) (results []T, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
	}()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results = make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// parseList splits a comma-joined aggregate into its elements.
func parseList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	return strings.Split(s.String, ",")
}

// decodeJSONList decodes a JSON-encoded string array column. NULL and
// undecodable values read as an empty list.
func decodeJSONList(s sql.NullString, column string) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		logging.Debug().Str("column", column).Err(err).Msg("Ignoring malformed JSON list column")
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// encodeJSONList encodes an optional list for a JSON text column; nil becomes NULL.
func encodeJSONList(values []string) (interface{}, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// nullString maps the empty string to SQL NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullFloat maps zero to SQL NULL.
func nullFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}

// stringPtr returns the value of a nullable column as a pointer.
func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// floatPtr returns the value of a nullable column as a pointer.
func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
