// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/netsight/internal/database"
	"github.com/tomtom215/netsight/internal/graph"
	"github.com/tomtom215/netsight/internal/models"
)

// Captures lists every stored capture, newest start time first.
//
// @Summary List captures
// @Tags Core
// @Produce json
// @Success 200 {array} models.Capture
// @Failure 500 {object} ErrorResponse "Failed to fetch captures"
// @Router /captures [get]
func (h *Handler) Captures(w http.ResponseWriter, r *http.Request) {
	captures, err := h.db.GetCaptures(r.Context())
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Failed to fetch captures", err)
		return
	}
	respondJSON(w, http.StatusOK, captures)
}

// Capture returns one capture by id.
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid capture id", nil)
		return
	}

	capture, err := h.db.GetCapture(r.Context(), id)
	if errors.Is(err, database.ErrCaptureNotFound) {
		respondError(w, http.StatusNotFound, "Capture not found", nil)
		return
	}
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Failed to fetch capture", err)
		return
	}
	respondJSON(w, http.StatusOK, capture)
}

// Devices lists devices, optionally narrowed to one capture and by
// case-insensitive vendor and OS substrings.
//
// @Summary List devices
// @Tags Core
// @Produce json
// @Param captureId query int false "Capture ID"
// @Param vendor query string false "Vendor substring"
// @Param os query string false "OS guess substring"
// @Success 200 {array} models.Device
// @Failure 400 {object} ErrorResponse "Invalid captureId"
// @Failure 500 {object} ErrorResponse "Failed to fetch devices"
// @Router /devices [get]
func (h *Handler) Devices(w http.ResponseWriter, r *http.Request) {
	captureID, ok := captureIDParam(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := models.DeviceFilter{
		CaptureID: captureID,
		Vendor:    strings.TrimSpace(q.Get("vendor")),
		OS:        strings.TrimSpace(q.Get("os")),
	}

	devices, err := h.db.GetDevices(r.Context(), filter)
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Failed to fetch devices", err)
		return
	}
	respondJSON(w, http.StatusOK, devices)
}

// Traffic returns the five traffic aggregates for one capture or all.
//
// @Summary Traffic aggregates
// @Tags Core
// @Produce json
// @Param captureId query int false "Capture ID"
// @Success 200 {object} models.TrafficSummary
// @Failure 400 {object} ErrorResponse "Invalid captureId"
// @Failure 500 {object} ErrorResponse "Failed to fetch traffic data"
// @Router /traffic [get]
func (h *Handler) Traffic(w http.ResponseWriter, r *http.Request) {
	captureID, ok := captureIDParam(w, r)
	if !ok {
		return
	}
	traffic, err := h.db.GetTraffic(r.Context(), captureID)
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Failed to fetch traffic data", err)
		return
	}
	respondJSON(w, http.StatusOK, traffic)
}

// Graph returns the device/domain/external relationship graph.
//
// @Summary Relationship graph
// @Tags Core
// @Produce json
// @Param captureId query int false "Capture ID"
// @Success 200 {object} models.GraphData
// @Failure 400 {object} ErrorResponse "Invalid captureId"
// @Failure 500 {object} ErrorResponse "Failed to fetch graph data"
// @Router /graph [get]
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	captureID, ok := captureIDParam(w, r)
	if !ok {
		return
	}
	src, err := h.db.GetGraphSource(r.Context(), captureID)
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Failed to fetch graph data", err)
		return
	}
	respondJSON(w, http.StatusOK, graph.Build(*src))
}

// Stats returns the overview totals shown on the dashboard home page.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetStats(r.Context())
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
