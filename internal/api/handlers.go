// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"time"

	"github.com/tomtom215/netsight/internal/config"
	"github.com/tomtom215/netsight/internal/database"
	"github.com/tomtom215/netsight/internal/ingest"
	ws "github.com/tomtom215/netsight/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response writers and query parsing
//   - handlers_core.go: captures, devices, traffic, graph, stats
//   - handlers_import.go: summary upload
//   - handlers_health.go: health checks
//   - handlers_websocket.go: websocket upgrade
type Handler struct {
	db        *database.DB
	importer  *ingest.Importer
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// wsHub may be nil, in which case /api/ws answers 503.
//
// Example:
//
//	importer := ingest.NewImporter(db, hub)
//	handler := api.NewHandler(db, importer, hub, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(db *database.DB, importer *ingest.Importer, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		importer:  importer,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// maxUploadBytes returns the upload size limit.
func (h *Handler) maxUploadBytes() int64 {
	if h.config == nil || h.config.Import.MaxUploadBytes <= 0 {
		return defaultMaxUploadBytes
	}
	return h.config.Import.MaxUploadBytes
}
