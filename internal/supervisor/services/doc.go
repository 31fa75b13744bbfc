// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package services adapts netsight components to suture.Service.

	HTTPServerService    *http.Server          api layer
	WebSocketHubService  *websocket.Hub        messaging layer
	CheckpointService    *database.DB          data layer

The drop-folder watcher (ingest.Watcher) already has the
Serve(ctx) error / String() shape and is added to the data layer directly.

Each wrapper depends on a one- or two-method interface rather than the
concrete type, so tests drive them with small fakes.
*/
package services
