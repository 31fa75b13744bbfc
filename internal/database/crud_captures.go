// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/netsight/internal/models"
)

const captureColumns = `
	id, sensor_os, sensor_hostname, interface_name, local_ip,
	start_time, duration_seconds, packet_count, imported_at, filename, device_count`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCapture(row rowScanner) (models.Capture, error) {
	var (
		c          models.Capture
		importedAt time.Time
	)
	err := row.Scan(
		&c.ID, &c.SensorOS, &c.SensorHostname, &c.InterfaceName, &c.LocalIP,
		&c.StartTime, &c.DurationSeconds, &c.PacketCount, &importedAt, &c.Filename, &c.DeviceCount,
	)
	if err != nil {
		return models.Capture{}, err
	}
	c.ImportedAt = importedAt.UTC().Format(time.RFC3339)
	return c, nil
}

// GetCaptures returns every capture with its device count, most recent
// start time first. An empty store yields an empty, non-nil slice.
func (db *DB) GetCaptures(ctx context.Context) ([]models.Capture, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT` + captureColumns + `
	FROM capture_overview
	ORDER BY start_time DESC, id DESC`

	captures, err := queryAndScan(ctx, db.conn, "captures", query, nil, func(rows *sql.Rows) (models.Capture, error) {
		return scanCapture(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	return captures, nil
}

// GetCapture returns a single capture by id, or ErrCaptureNotFound.
func (db *DB) GetCapture(ctx context.Context, id int64) (*models.Capture, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT` + captureColumns + `
	FROM capture_overview
	WHERE id = ?`

	c, err := scanCapture(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCaptureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query capture %d: %w", id, err)
	}
	return &c, nil
}

// CountCaptures returns the number of stored captures.
func (db *DB) CountCaptures(ctx context.Context) (int64, error) {
	if db.isClosed() {
		return 0, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM captures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count captures: %w", err)
	}
	return n, nil
}
