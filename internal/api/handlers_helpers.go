// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/netsight/internal/logging"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"error": message}. A non-nil err is logged with the
// request's IDs; it never reaches the client.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	respondErrorCtx(context.Background(), w, status, message, err)
}

func respondErrorCtx(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		logging.Ctx(ctx).Error().
			Int("status", status).
			Str("message", message).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, ErrorResponse{Error: message})
}

// captureIDParam parses the optional captureId query parameter. An absent
// value means "all captures"; a value that is not an integer is answered
// with 400 and ok is false.
func captureIDParam(w http.ResponseWriter, r *http.Request) (id *int64, ok bool) {
	raw := r.URL.Query().Get("captureId")
	if raw == "" {
		return nil, true
	}

	parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		logging.Ctx(r.Context()).Debug().
			Str("captureId", sanitizeLogValue(raw)).
			Msg("Rejected non-numeric captureId")
		respondError(w, http.StatusBadRequest, "Invalid captureId", nil)
		return nil, false
	}
	return &parsed, true
}
