// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package ingest turns sensor summary files into stored captures.

Every import path goes through Importer:

	upload handler ─┐
	netsight import ├─→ Importer.Import → validation.DecodeSummary → Store.InsertSummary
	drop folder     ─┘                                             └→ Notifier (websocket)

Importer records per-source metrics (upload, watcher, cli) and logs every
import under a correlation ID.

Drop Folder:

Watcher monitors import.watch_dir for *.json files. Editors and copy tools
write files in several steps, so a file is imported only after it has been
quiet for import.debounce. The SHA-256 of each imported file is kept in a
badger-backed Ledger under import.ledger_dir; identical content dropped again,
or still present after a restart, is skipped.

Files that fail validation stay in the folder and are retried only when they
change. Hidden files (leading dot) are ignored so partially copied temp files
are not picked up.
*/
package ingest
