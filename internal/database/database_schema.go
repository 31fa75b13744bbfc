// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
database_schema.go - Database Schema Management

Tables:
  - captures: One row per imported sensor summary
  - devices: Devices discovered during a capture
  - device_ips: IP addresses claimed by a device (one row per address)
  - protocol_counts: Packet count per protocol
  - top_ports: Busiest port/protocol pairs
  - top_talkers: Busiest local IPs by bytes and packets
  - dns_domains: Queried domains with the IPs that queried them
  - destinations: External addresses with connection and byte totals

Every child table carries capture_id so read queries can filter to a single
capture without joins. Surrogate keys come from one sequence per table and
are returned with INSERT ... RETURNING id.

signals_used and querying_ips are JSON-encoded text; they are only decoded
in Go and never queried inside SQL.

All statements are idempotent (IF NOT EXISTS), so opening an existing file
is a no-op.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the sequence and table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS captures_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS devices_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS device_ips_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS protocol_counts_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS top_ports_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS top_talkers_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS dns_domains_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS destinations_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS captures (
			id BIGINT PRIMARY KEY DEFAULT nextval('captures_id_seq'),
			sensor_os TEXT NOT NULL,
			sensor_hostname TEXT NOT NULL,
			interface_name TEXT NOT NULL,
			local_ip TEXT NOT NULL,
			start_time TEXT NOT NULL,
			duration_seconds DOUBLE NOT NULL,
			packet_count BIGINT NOT NULL,
			imported_at TIMESTAMP NOT NULL,
			filename TEXT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS devices (
			id BIGINT PRIMARY KEY DEFAULT nextval('devices_id_seq'),
			capture_id BIGINT NOT NULL,
			mac TEXT NOT NULL,
			vendor TEXT,
			hostname TEXT,
			os_guess TEXT,
			os_confidence DOUBLE,
			signals_used TEXT,
			discovery_source TEXT,
			first_seen TEXT,
			last_seen TEXT
		);`,

		`CREATE TABLE IF NOT EXISTS device_ips (
			id BIGINT PRIMARY KEY DEFAULT nextval('device_ips_id_seq'),
			device_id BIGINT NOT NULL,
			ip TEXT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS protocol_counts (
			id BIGINT PRIMARY KEY DEFAULT nextval('protocol_counts_id_seq'),
			capture_id BIGINT NOT NULL,
			protocol TEXT NOT NULL,
			"count" BIGINT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS top_ports (
			id BIGINT PRIMARY KEY DEFAULT nextval('top_ports_id_seq'),
			capture_id BIGINT NOT NULL,
			port BIGINT NOT NULL,
			protocol TEXT NOT NULL,
			"count" BIGINT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS top_talkers (
			id BIGINT PRIMARY KEY DEFAULT nextval('top_talkers_id_seq'),
			capture_id BIGINT NOT NULL,
			ip TEXT NOT NULL,
			bytes_sent BIGINT NOT NULL,
			bytes_received BIGINT NOT NULL,
			packets_sent BIGINT NOT NULL,
			packets_received BIGINT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS dns_domains (
			id BIGINT PRIMARY KEY DEFAULT nextval('dns_domains_id_seq'),
			capture_id BIGINT NOT NULL,
			domain TEXT NOT NULL,
			query_count BIGINT NOT NULL,
			querying_ips TEXT
		);`,

		`CREATE TABLE IF NOT EXISTS destinations (
			id BIGINT PRIMARY KEY DEFAULT nextval('destinations_id_seq'),
			capture_id BIGINT NOT NULL,
			address TEXT NOT NULL,
			connection_count BIGINT NOT NULL,
			bytes_total BIGINT NOT NULL
		);`,
	}
}

// createIndexes creates database indexes for query optimization.
// Skips index creation if cfg.SkipIndexes is true (for fast test setup).
func (db *DB) createIndexes() error {
	if db.cfg != nil && db.cfg.SkipIndexes {
		return nil
	}

	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements
func getIndexQueries() []string {
	return []string{
		// Capture filter on every child table
		`CREATE INDEX IF NOT EXISTS idx_devices_capture ON devices(capture_id);`,
		`CREATE INDEX IF NOT EXISTS idx_protocol_counts_capture ON protocol_counts(capture_id);`,
		`CREATE INDEX IF NOT EXISTS idx_top_ports_capture ON top_ports(capture_id);`,
		`CREATE INDEX IF NOT EXISTS idx_top_talkers_capture ON top_talkers(capture_id);`,
		`CREATE INDEX IF NOT EXISTS idx_dns_domains_capture ON dns_domains(capture_id);`,
		`CREATE INDEX IF NOT EXISTS idx_destinations_capture ON destinations(capture_id);`,

		// Device lookups
		`CREATE INDEX IF NOT EXISTS idx_device_ips_device ON device_ips(device_id);`,
		`CREATE INDEX IF NOT EXISTS idx_devices_mac ON devices(mac);`,

		// Capture listing order
		`CREATE INDEX IF NOT EXISTS idx_captures_start_time ON captures(start_time);`,
	}
}
