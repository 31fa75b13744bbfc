// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package config provides centralized configuration management for Netsight.

Configuration is loaded with Koanf v2 from three layers, each overriding the
previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, ./config.yaml or /etc/netsight/config.yaml)
 3. Environment variables mapped explicitly to config paths

# Environment Variables

Database:
  - DUCKDB_PATH: Database file path (default: /data/netsight.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: DuckDB worker threads (default: 0 = NumCPU)

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3000)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - STATIC_DIR: Optional directory served at / (default: disabled)
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)

Import:
  - IMPORT_MAX_UPLOAD_BYTES: Upload size limit (default: 32MB)
  - IMPORT_WATCH_DIR: Drop folder for sensor summaries (default: disabled)
  - IMPORT_LEDGER_DIR: BadgerDB ledger of imported files (default: /data/ledger)
  - IMPORT_DEBOUNCE: Settle time for dropped files (default: 2s)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Example YAML

	server:
	  port: 8080
	database:
	  path: /var/lib/netsight/netsight.duckdb
	import:
	  watch_dir: /var/spool/netsight
	logging:
	  level: debug
	  format: console
*/
package config
