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
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/netsight/internal/logging"
	"github.com/tomtom215/netsight/internal/metrics"
)

// Watcher skip reasons reported to metrics.WatcherFilesSkipped.
const (
	SkipDuplicate  = "duplicate"
	SkipUnreadable = "unreadable"
	SkipInvalid    = "invalid"
)

// debounceTick is how often settled files are collected.
const debounceTick = 100 * time.Millisecond

// maxImportAttempts bounds retries of a file whose import failed for a reason
// other than its content. After that the file waits for its next write event
// or the next start.
const maxImportAttempts = 5

// Watcher imports *.json files dropped into a directory. A file is imported
// once it has produced no write events for the debounce window; content that
// the ledger already knows is skipped.
//
// Watcher implements suture.Service.
type Watcher struct {
	dir      string
	importer *Importer
	ledger   *Ledger
	debounce time.Duration

	mu       sync.Mutex
	pending  map[string]time.Time
	attempts map[string]int
}

// NewWatcher creates a drop-folder watcher for dir.
func NewWatcher(dir string, importer *Importer, ledger *Ledger, debounce time.Duration) *Watcher {
	return &Watcher{
		dir:      dir,
		importer: importer,
		ledger:   ledger,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		attempts: make(map[string]int),
	}
}

// String names the service in supervisor logs.
func (w *Watcher) String() string {
	return "import-watcher"
}

// Serve watches the directory until ctx is canceled. Files already present
// when Serve starts are queued too, so files dropped while the server was
// down are picked up.
func (w *Watcher) Serve(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("create watch dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() {
		if cerr := fsw.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close fsnotify watcher")
		}
	}()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	known, err := w.ledger.Count()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to count import ledger entries")
	}
	logging.Info().
		Str("dir", w.dir).
		Dur("debounce", w.debounce).
		Int("ledger_entries", known).
		Msg("Watching drop folder for sensor summaries")

	if err := w.queueExisting(); err != nil {
		logging.Warn().Err(err).Str("dir", w.dir).Msg("Failed to scan drop folder")
	}

	ticker := time.NewTicker(debounceTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Str("component", "import-watcher").Msg("Drop folder watcher stopped")
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			logging.Error().Err(err).Msg("Drop folder watcher error")

		case <-ticker.C:
			w.processSettled(ctx)
		}
	}
}

// isSummaryFile reports whether name looks like a sensor summary.
func isSummaryFile(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), ".json")
}

func (w *Watcher) queueExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range entries {
		if e.Type().IsRegular() && isSummaryFile(e.Name()) {
			w.pending[filepath.Join(w.dir, e.Name())] = time.Now()
		}
	}
	return nil
}

// handleEvent records create and write events for debouncing and forgets
// files that went away before settling.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isSummaryFile(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.pending[event.Name] = time.Now()
		delete(w.attempts, event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
		delete(w.attempts, event.Name)
	}
}

// retryLater queues path again after a failure that was not caused by its
// content. Each attempt waits one more debounce window than the last. It
// returns false once maxImportAttempts is reached.
func (w *Watcher) retryLater(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.attempts[path]++
	n := w.attempts[path]
	if n >= maxImportAttempts {
		delete(w.attempts, path)
		return false
	}
	// A newer write event already queued it
	if _, queued := w.pending[path]; !queued {
		w.pending[path] = time.Now().Add(time.Duration(n-1) * w.debounce)
	}
	return true
}

func (w *Watcher) forgetAttempts(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.attempts, path)
}

// settled removes and returns the files quiet for at least the debounce window.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	return ready
}

func (w *Watcher) processSettled(ctx context.Context) {
	for _, path := range w.settled(time.Now()) {
		if ctx.Err() != nil {
			return
		}
		w.importFile(ctx, path)
	}
}

// importFile imports one settled file unless its content is in the ledger.
func (w *Watcher) importFile(ctx context.Context, path string) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx).With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		w.forgetAttempts(path)
		if os.IsNotExist(err) {
			log.Debug().Msg("Dropped file vanished before import")
			return
		}
		metrics.RecordWatcherSkip(SkipUnreadable)
		log.Warn().Err(err).Msg("Failed to read dropped file")
		return
	}

	hash := ContentHash(data)
	prior, err := w.ledger.Lookup(hash)
	if err != nil {
		log.Error().Err(err).Msg("Import ledger lookup failed")
		w.requeue(log, path)
		return
	}
	if prior != nil {
		w.forgetAttempts(path)
		metrics.RecordWatcherSkip(SkipDuplicate)
		log.Debug().
			Int64("capture_id", prior.CaptureID).
			Str("first_filename", prior.Filename).
			Msg("Skipping already imported file")
		return
	}

	result, err := w.importer.Import(ctx, data, filepath.Base(path), metrics.SourceWatcher)
	if err != nil {
		// Importer already logged the failure
		if IsInvalid(err) {
			metrics.RecordWatcherSkip(SkipInvalid)
			w.forgetAttempts(path)
			return
		}
		w.requeue(log, path)
		return
	}
	w.forgetAttempts(path)

	entry := LedgerEntry{
		Filename:   filepath.Base(path),
		CaptureID:  result.CaptureID,
		ImportedAt: time.Now().UTC(),
	}
	if err := w.ledger.Record(hash, entry); err != nil {
		log.Error().Err(err).Int64("capture_id", result.CaptureID).Msg("Failed to record import in ledger")
	}
}

func (w *Watcher) requeue(log zerolog.Logger, path string) {
	if w.retryLater(path) {
		log.Debug().Msg("Dropped file queued for another import attempt")
		return
	}
	log.Error().
		Int("attempts", maxImportAttempts).
		Msg("Giving up on dropped file until it changes or the server restarts")
}
