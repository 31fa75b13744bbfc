// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/netsight/internal/metrics"
	"github.com/tomtom215/netsight/internal/models"
)

// GetStats returns the dashboard overview totals:
//   - totalCaptures: stored captures
//   - totalDevices: stored device rows (a MAC seen in two captures counts twice)
//   - totalDomains: distinct queried domain names
//   - totalPackets: packet_count summed over captures
func (db *DB) GetStats(ctx context.Context) (*models.OverviewStats, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var stats models.OverviewStats
	err := db.conn.QueryRowContext(ctx, `
	SELECT
		(SELECT COUNT(*) FROM captures),
		(SELECT COUNT(*) FROM devices),
		(SELECT COUNT(DISTINCT domain) FROM dns_domains),
		(SELECT CAST(COALESCE(SUM(packet_count), 0) AS BIGINT) FROM captures)`,
	).Scan(&stats.TotalCaptures, &stats.TotalDevices, &stats.TotalDomains, &stats.TotalPackets)
	metrics.RecordDBQuery("SELECT", "stats", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query overview stats: %w", err)
	}
	return &stats, nil
}
