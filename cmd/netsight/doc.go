// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package main is the netsight command-line tool.

It opens the DuckDB file directly, so it reads the same configuration as the
server and must not run while the server holds the file for writing.

Usage:

	netsight import [--keep-going] <file.json>...
	netsight captures [--json]
	netsight devices [--capture ID] [--vendor SUBSTR] [--os SUBSTR] [--json]

Global flags:

	--db PATH     DuckDB file, overrides DUCKDB_PATH and config.yaml
	-v, --verbose debug logging on stderr
*/
package main
