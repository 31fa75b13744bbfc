// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

// Package database is the DuckDB-backed store for imported sensor summaries.
//
// # Overview
//
// A single *DB is opened at startup with New, injected into the HTTP API, the
// importer and the CLI, and closed on shutdown. It owns:
//   - schema creation (sequences, tables, indexes) and versioned migrations
//   - the import writer, one transaction per summary
//   - the read queries backing every dashboard endpoint
//
// # Architecture
//
//   - database.go: lifecycle (New, Close, Ping, initialize)
//   - database_connection.go: connection pool and conflict detection
//   - database_schema.go: table and index DDL
//   - migrations.go: versioned migrations (capture_overview view)
//   - database_utils.go: context defaults, profiling, checkpoints
//   - crud_import.go: InsertSummary
//   - crud_captures.go, crud_devices.go, crud_traffic.go, crud_graph.go, crud_stats.go: reads
//   - filter.go, query_helpers.go: WHERE clause building and row scanning
//
// # Durability
//
// InsertSummary commits all rows of a summary atomically and then issues a
// CHECKPOINT so the data reaches the database file, not only the WAL.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	result, err := db.InsertSummary(ctx, summary, "capture.json")
//	devices, err := db.GetDevices(ctx, models.DeviceFilter{Vendor: "apple"})
//
// # Thread Safety
//
// All methods are safe for concurrent use. database/sql pools connections;
// DuckDB runs readers in parallel and serializes conflicting writers.
package database
