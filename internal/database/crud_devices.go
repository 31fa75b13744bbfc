// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/netsight/internal/models"
)

func scanDevice(rows *sql.Rows) (models.Device, error) {
	var (
		d                                          models.Device
		vendor, hostname, osGuess, signals, source sql.NullString
		firstSeen, lastSeen, ips                   sql.NullString
		confidence                                 sql.NullFloat64
	)
	err := rows.Scan(
		&d.ID, &d.CaptureID, &d.MAC, &vendor, &hostname,
		&osGuess, &confidence, &signals,
		&source, &firstSeen, &lastSeen,
		&ips,
	)
	if err != nil {
		return models.Device{}, err
	}

	d.Vendor = stringPtr(vendor)
	d.Hostname = stringPtr(hostname)
	d.OSGuess = stringPtr(osGuess)
	d.OSConfidence = floatPtr(confidence)
	d.SignalsUsed = decodeJSONList(signals, "signals_used")
	d.DiscoverySource = stringPtr(source)
	d.FirstSeen = firstSeen.String
	d.LastSeen = lastSeen.String
	d.IPs = parseList(ips)
	return d, nil
}

// GetDevices returns devices matching filter, most recently seen first.
// Each device carries its IPs in insertion order and its decoded signals.
// No match yields an empty, non-nil slice.
func (db *DB) GetDevices(ctx context.Context, filter models.DeviceFilter) ([]models.Device, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query, args := deviceQueryBuilder(filter).build(deviceGroupBy + `
	ORDER BY d.last_seen DESC, d.id ASC`)

	devices, err := queryAndScan(ctx, db.conn, "devices", query, args, scanDevice)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	return devices, nil
}
