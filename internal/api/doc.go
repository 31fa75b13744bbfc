// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package api serves the dashboard's HTTP JSON API on a chi router.

Endpoints:

	GET  /api/captures                  captures, newest first, with device counts
	GET  /api/captures/{id}             one capture
	GET  /api/devices?captureId=&vendor=&os=
	GET  /api/traffic?captureId=        protocol, port, talker, DNS and destination aggregates
	GET  /api/graph?captureId=          device/domain/external graph
	GET  /api/stats                     overview totals
	POST /api/import                    multipart upload, field "file"
	GET  /api/ws                        websocket: capture_imported notifications
	GET  /api/health, /live, /ready     health checks
	GET  /metrics                       Prometheus exposition

Read endpoints return bare JSON arrays or objects. Every failure is a JSON
object {"error": "<message>"}; store errors are logged in full and reported
to the client with a fixed per-endpoint message.

captureId is optional everywhere. A value that is not an integer is ignored
and the endpoint answers as if it were absent.

Middleware Stack:

	RequestID → RealIP → Recoverer → CORS → (route group)
	  /api:        rate limit → security headers → metrics → gzip → timeout
	  /api/import: stricter rate limit on top of /api
	  /api/health: permissive rate limit → security headers
  /api/ws:     websocket rate limit → metrics (no gzip, no timeout)
*/
package api
