// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package supervisor runs the server's long-lived services under suture v4.

Tree layout:

	RootSupervisor ("netsight")
	├── DataSupervisor ("data-layer")
	│   ├── CheckpointService
	│   └── import-watcher (if import.watch_dir is set)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently, so a watcher that keeps failing
on an unreadable directory backs off without touching the HTTP server.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (service start, failure, backoff) are written through the
sutureslog adapter to the zerolog-backed slog logger.
*/
package supervisor
