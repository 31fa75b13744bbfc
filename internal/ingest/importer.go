// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/netsight/internal/logging"
	"github.com/tomtom215/netsight/internal/metrics"
	"github.com/tomtom215/netsight/internal/models"
	"github.com/tomtom215/netsight/internal/validation"
)

// Store persists a validated summary. *database.DB implements it.
type Store interface {
	InsertSummary(ctx context.Context, summary *models.Summary, filename string) (models.ImportResult, error)
}

// Notifier is told about every stored capture. *websocket.Hub implements it.
type Notifier interface {
	BroadcastCaptureImported(captureID int64, deviceCount int, filename, source string)
}

// Importer validates summary documents and writes them to the store.
// It is shared by the upload handler, the CLI and the drop-folder watcher.
type Importer struct {
	store    Store
	notifier Notifier
}

// NewImporter creates an Importer. notifier may be nil.
func NewImporter(store Store, notifier Notifier) *Importer {
	return &Importer{store: store, notifier: notifier}
}

// IsInvalid reports whether err means the document was rejected by
// validation rather than by the store.
func IsInvalid(err error) bool {
	var verr *validation.RequestValidationError
	return errors.Is(err, validation.ErrInvalidJSON) || errors.As(err, &verr)
}

// Import decodes data, validates it and stores it as one capture.
//
// Validation errors (see IsInvalid) are returned unwrapped and nothing is
// written. Store failures are wrapped; the transaction has been rolled back.
// source labels metrics and notifications (metrics.SourceUpload, ...).
func (i *Importer) Import(ctx context.Context, data []byte, filename, source string) (models.ImportResult, error) {
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	log := logging.Ctx(ctx).With().
		Str("filename", filename).
		Str("source", source).
		Logger()

	start := time.Now()

	summary, err := validation.DecodeSummary(data)
	if err != nil {
		metrics.RecordImport(source, metrics.ResultInvalid, time.Since(start), 0)
		log.Warn().Err(err).Msg("Rejected sensor summary")
		return models.ImportResult{}, err
	}

	result, err := i.store.InsertSummary(ctx, summary, filename)
	if err != nil {
		metrics.RecordImport(source, metrics.ResultError, time.Since(start), 0)
		log.Error().Err(err).Msg("Failed to store sensor summary")
		return models.ImportResult{}, fmt.Errorf("store summary: %w", err)
	}

	metrics.RecordImport(source, metrics.ResultSuccess, time.Since(start), result.DeviceCount)
	log.Info().
		Int64("capture_id", result.CaptureID).
		Int("devices", result.DeviceCount).
		Dur("duration", time.Since(start)).
		Msg("Imported sensor summary")

	if i.notifier != nil {
		i.notifier.BroadcastCaptureImported(result.CaptureID, result.DeviceCount, filename, source)
	}
	return result, nil
}

// ImportFile reads path and imports it under its base name.
func (i *Importer) ImportFile(ctx context.Context, path, source string) (models.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	return i.Import(ctx, data, filepath.Base(path), source)
}
