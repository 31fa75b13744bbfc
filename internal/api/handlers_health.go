// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status            string    `json:"status"`
	Version           string    `json:"version"`
	DatabaseConnected bool      `json:"database_connected"`
	SchemaVersion     int       `json:"schema_version"`
	WebSocketClients  int       `json:"websocket_clients"`
	Uptime            float64   `json:"uptime"`
	Timestamp         time.Time `json:"timestamp"`
}

// Version is reported by the health endpoint; set at link time.
var Version = "dev"

// Health reports overall service health. It always answers 200; a lost
// database connection is reported as "degraded".
//
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	health := HealthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
		Timestamp:         time.Now().UTC(),
	}
	if dbConnected {
		if v, err := h.db.GetCurrentSchemaVersion(r.Context()); err == nil {
			health.SchemaVersion = v
		}
	}
	if h.wsHub != nil {
		health.WebSocketClients = h.wsHub.GetClientCount()
	}

	respondJSON(w, http.StatusOK, health)
}

// HealthLive handles liveness checks. The process answering is enough.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness checks: 200 once the database answers and
// its migrations have run, 503 otherwise.
//
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	schemaVersion := 0
	if dbConnected {
		if v, err := h.db.GetCurrentSchemaVersion(r.Context()); err == nil {
			schemaVersion = v
		}
	}
	ready := dbConnected && schemaVersion > 0

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, map[string]interface{}{
		"status":             status,
		"database_connected": dbConnected,
		"schema_version":     schemaVersion,
		"uptime":             time.Since(h.startTime).Seconds(),
	})
}
