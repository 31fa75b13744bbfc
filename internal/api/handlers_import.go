// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tomtom215/netsight/internal/metrics"
	"github.com/tomtom215/netsight/internal/validation"
)

const (
	// defaultMaxUploadBytes applies when no limit is configured.
	defaultMaxUploadBytes = 32 << 20

	// multipartMemory is the part of a multipart body kept in memory;
	// the rest spills to temporary files.
	multipartMemory = 8 << 20

	uploadField = "file"
)

// Import stores an uploaded sensor summary as a new capture.
//
// @Summary Import a sensor summary
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Sensor summary JSON"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} ErrorResponse "No file provided, Invalid JSON format, or Invalid summary format"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 500 {object} ErrorResponse "Import failed"
// @Router /import [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes())

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			respondError(w, http.StatusRequestEntityTooLarge, "File too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "No file provided", nil)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondErrorCtx(r.Context(), w, http.StatusInternalServerError, "Import failed", err)
		return
	}

	result, err := h.importer.Import(r.Context(), data, filepath.Base(header.Filename), metrics.SourceUpload)
	if err != nil {
		status, message := importErrorResponse(err)
		if status == http.StatusInternalServerError {
			respondErrorCtx(r.Context(), w, status, message, err)
			return
		}
		respondError(w, status, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// isBodyTooLarge reports whether err came from the MaxBytesReader limit.
// The multipart reader does not always keep the error chain intact.
func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

// importErrorResponse maps an import error to its status and client message.
func importErrorResponse(err error) (int, string) {
	if errors.Is(err, validation.ErrInvalidJSON) {
		return http.StatusBadRequest, "Invalid JSON format"
	}

	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "Invalid summary format: " + verr.Error()
	}

	return http.StatusInternalServerError, "Import failed"
}
