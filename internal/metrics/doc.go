// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:3000/metrics

# Available Metrics

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Query failures (counter)
    Labels: operation, table, error_type (first 50 chars of the error)
  - duckdb_rows_inserted_total: Rows written by imports (counter)
    Labels: table

API Metrics:
  - api_requests_total: Requests by method, route pattern and status (counter)
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected by the rate limiter (counter)

Import Metrics:
  - summary_imports_total: Imports by source (upload, watcher, cli) and result (counter)
  - summary_import_duration_seconds: Import latency by source (histogram)
  - summary_import_devices: Devices per successful import (histogram)
  - summary_import_last_success_timestamp: Unix time of last success (gauge)
  - watcher_files_skipped_total: Drop-folder files not imported by reason (counter)

WebSocket Metrics:
  - websocket_connections: Connected clients (gauge)
  - websocket_messages_sent_total, websocket_messages_received_total (counters)
  - websocket_errors_total: Errors by type (counter)

System Metrics:
  - app_info: Version and Go version labels (gauge, always 1)
  - app_uptime_seconds: Process uptime (gauge)

# Usage

	start := time.Now()
	result, err := db.InsertSummary(ctx, summary, filename)
	metrics.RecordDBQuery("INSERT", "captures", time.Since(start), err)

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
