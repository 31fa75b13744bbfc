// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package websocket pushes live notifications to dashboard clients.

A Hub owns the set of connected clients and fans out typed messages; each
Client runs a read goroutine (answering pings) and a write goroutine
(delivering messages and keepalive pings).

	┌──────────┐
	│   Hub    │ ← Broadcasts to all clients
	└────┬─────┘
	     │
	┌────┴─────┬─────────┐
	│ Client1  │ Client2 │ ...
	└──────────┴─────────┘

Message Types:

  - capture_imported: a summary was stored
    {captureId, deviceCount, filename, source, timestamp}
  - ping / pong: application-level keepalive initiated by the client

Usage:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx) // usually supervised, see internal/supervisor

	client := websocket.NewClient(hub, conn)
	hub.Register <- client
	client.Start()

	hub.BroadcastCaptureImported(42, 12, "office.json", "upload")

Broadcasts never block the caller. A client whose send buffer is full is
dropped and must reconnect.
*/
package websocket
