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

// Graph source caps.
const (
	GraphDomainsLimit      = 50
	GraphDestinationsLimit = 30
)

// GetGraphSource loads the rows graph.Build works from, optionally limited to
// one capture:
//   - devices in id order (the first device anchors destination links)
//   - the 50 domains with the highest summed query count
//   - the 30 destinations with the highest summed bytes
//   - every DNS row that recorded querying IPs, in id order
func (db *DB) GetGraphSource(ctx context.Context, captureID *int64) (*models.GraphSource, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		src models.GraphSource
		err error
	)

	query, args := deviceQueryBuilder(models.DeviceFilter{CaptureID: captureID}).
		build(deviceGroupBy + ` ORDER BY d.id ASC`)
	if src.Devices, err = queryAndScan(ctx, db.conn, "devices", query, args, scanDevice); err != nil {
		return nil, fmt.Errorf("failed to query graph devices: %w", err)
	}

	query, args = newQueryBuilder(`SELECT domain FROM dns_domains WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		addLimit(GraphDomainsLimit).
		build(`GROUP BY domain ORDER BY SUM(query_count) DESC, domain LIMIT ?`)
	if src.Domains, err = queryAndScan(ctx, db.conn, "dns_domains", query, args, func(rows *sql.Rows) (string, error) {
		var domain string
		err := rows.Scan(&domain)
		return domain, err
	}); err != nil {
		return nil, fmt.Errorf("failed to query graph domains: %w", err)
	}

	query, args = newQueryBuilder(`SELECT address, CAST(SUM(bytes_total) AS BIGINT) FROM destinations WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		addLimit(GraphDestinationsLimit).
		build(`GROUP BY address ORDER BY SUM(bytes_total) DESC, address LIMIT ?`)
	if src.Destinations, err = queryAndScan(ctx, db.conn, "destinations", query, args, func(rows *sql.Rows) (models.DestinationVolume, error) {
		var d models.DestinationVolume
		err := rows.Scan(&d.Address, &d.Bytes)
		return d, err
	}); err != nil {
		return nil, fmt.Errorf("failed to query graph destinations: %w", err)
	}

	query, args = newQueryBuilder(`SELECT domain, querying_ips FROM dns_domains WHERE 1=1`).
		addFilter("querying_ips IS NOT NULL").
		addCaptureFilter("capture_id", captureID).
		build(`ORDER BY id`)
	if src.DNSQueries, err = queryAndScan(ctx, db.conn, "dns_domains", query, args, func(rows *sql.Rows) (models.DNSQueryRow, error) {
		var r models.DNSQueryRow
		err := rows.Scan(&r.Domain, &r.QueryingIPs)
		return r, err
	}); err != nil {
		return nil, fmt.Errorf("failed to query dns querying ips: %w", err)
	}

	return &src, nil
}
