// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package main is the entry point for the Netsight dashboard server.

Netsight stores summaries produced by a passive network sensor (devices,
protocol counts, top ports and talkers, DNS lookups, external destinations)
in DuckDB and serves them to the dashboard frontend as JSON.

# Application Architecture

	RootSupervisor ("netsight")
	├── DataSupervisor ("data-layer")
	│   ├── db-checkpoint
	│   └── import-watcher (when IMPORT_WATCH_DIR is set)
	├── MessagingSupervisor ("messaging-layer")
	│   └── websocket-hub
	└── APISupervisor ("api-layer")
	    └── http-server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB file, schema and migrations
 4. WebSocket hub and importer
 5. Drop-folder ledger (badger) and watcher, if enabled
 6. Supervisor tree, then the HTTP server

# Configuration

	DUCKDB_PATH=/data/netsight.duckdb
	HTTP_PORT=3000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	CORS_ORIGINS=http://localhost:5173
	IMPORT_WATCH_DIR=/data/incoming
	IMPORT_LEDGER_DIR=/data/ledger
	STATIC_DIR=/app/web/dist

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
to 10s, the hub closes its clients, the watcher stops, and the database is
checkpointed and closed.
*/
package main
