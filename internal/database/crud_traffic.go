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

// Result caps for the traffic summary. Protocols are uncapped.
const (
	TopPortsLimit        = 20
	TopTalkersLimit      = 20
	TopDNSDomainsLimit   = 50
	TopDestinationsLimit = 20
)

// GetTraffic aggregates traffic across all captures, or a single capture when
// captureID is set. SUM is cast back to BIGINT because DuckDB widens it to HUGEINT.
//
// Orderings (ties broken by key for stable output):
//   - protocols: summed count DESC
//   - ports: summed count per (port, protocol) DESC, limit 20
//   - talkers: summed bytes sent + received per IP DESC, limit 20
//   - dnsDomains: summed query count DESC, limit 50
//   - destinations: summed bytes DESC, limit 20
func (db *DB) GetTraffic(ctx context.Context, captureID *int64) (*models.TrafficSummary, error) {
	if db.isClosed() {
		return nil, ErrDatabaseClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		summary models.TrafficSummary
		err     error
	)

	if summary.Protocols, err = db.trafficProtocols(ctx, captureID); err != nil {
		return nil, fmt.Errorf("failed to query protocol counts: %w", err)
	}
	if summary.Ports, err = db.trafficPorts(ctx, captureID); err != nil {
		return nil, fmt.Errorf("failed to query top ports: %w", err)
	}
	if summary.Talkers, err = db.trafficTalkers(ctx, captureID); err != nil {
		return nil, fmt.Errorf("failed to query top talkers: %w", err)
	}
	if summary.DNSDomains, err = db.trafficDNSDomains(ctx, captureID); err != nil {
		return nil, fmt.Errorf("failed to query dns domains: %w", err)
	}
	if summary.Destinations, err = db.trafficDestinations(ctx, captureID); err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}

	return &summary, nil
}

func (db *DB) trafficProtocols(ctx context.Context, captureID *int64) ([]models.ProtocolCount, error) {
	query, args := newQueryBuilder(`
	SELECT protocol, CAST(SUM("count") AS BIGINT)
	FROM protocol_counts
	WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		build(`GROUP BY protocol ORDER BY SUM("count") DESC, protocol`)

	return queryAndScan(ctx, db.conn, "protocol_counts", query, args, func(rows *sql.Rows) (models.ProtocolCount, error) {
		var p models.ProtocolCount
		err := rows.Scan(&p.Protocol, &p.Count)
		return p, err
	})
}

func (db *DB) trafficPorts(ctx context.Context, captureID *int64) ([]models.PortCount, error) {
	query, args := newQueryBuilder(`
	SELECT port, protocol, CAST(SUM("count") AS BIGINT)
	FROM top_ports
	WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		addLimit(TopPortsLimit).
		build(`GROUP BY port, protocol ORDER BY SUM("count") DESC, port, protocol LIMIT ?`)

	return queryAndScan(ctx, db.conn, "top_ports", query, args, func(rows *sql.Rows) (models.PortCount, error) {
		var p models.PortCount
		err := rows.Scan(&p.Port, &p.Protocol, &p.Count)
		return p, err
	})
}

func (db *DB) trafficTalkers(ctx context.Context, captureID *int64) ([]models.Talker, error) {
	query, args := newQueryBuilder(`
	SELECT
		ip,
		CAST(SUM(bytes_sent) AS BIGINT),
		CAST(SUM(bytes_received) AS BIGINT),
		CAST(SUM(packets_sent) AS BIGINT),
		CAST(SUM(packets_received) AS BIGINT)
	FROM top_talkers
	WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		addLimit(TopTalkersLimit).
		build(`GROUP BY ip ORDER BY SUM(bytes_sent) + SUM(bytes_received) DESC, ip LIMIT ?`)

	return queryAndScan(ctx, db.conn, "top_talkers", query, args, func(rows *sql.Rows) (models.Talker, error) {
		var t models.Talker
		err := rows.Scan(&t.IP, &t.BytesSent, &t.BytesReceived, &t.PacketsSent, &t.PacketsReceived)
		return t, err
	})
}

func (db *DB) trafficDNSDomains(ctx context.Context, captureID *int64) ([]models.DNSDomainCount, error) {
	query, args := newQueryBuilder(`
	SELECT domain, CAST(SUM(query_count) AS BIGINT)
	FROM dns_domains
	WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		addLimit(TopDNSDomainsLimit).
		build(`GROUP BY domain ORDER BY SUM(query_count) DESC, domain LIMIT ?`)

	return queryAndScan(ctx, db.conn, "dns_domains", query, args, func(rows *sql.Rows) (models.DNSDomainCount, error) {
		var d models.DNSDomainCount
		err := rows.Scan(&d.Domain, &d.QueryCount)
		return d, err
	})
}

func (db *DB) trafficDestinations(ctx context.Context, captureID *int64) ([]models.Destination, error) {
	query, args := newQueryBuilder(`
	SELECT address, CAST(SUM(connection_count) AS BIGINT), CAST(SUM(bytes_total) AS BIGINT)
	FROM destinations
	WHERE 1=1`).
		addCaptureFilter("capture_id", captureID).
		addLimit(TopDestinationsLimit).
		build(`GROUP BY address ORDER BY SUM(bytes_total) DESC, address LIMIT ?`)

	return queryAndScan(ctx, db.conn, "destinations", query, args, func(rows *sql.Rows) (models.Destination, error) {
		var d models.Destination
		err := rows.Scan(&d.Address, &d.ConnectionCount, &d.BytesTotal)
		return d, err
	})
}
