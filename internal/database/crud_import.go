// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/netsight/internal/logging"
	"github.com/tomtom215/netsight/internal/metrics"
	"github.com/tomtom215/netsight/internal/models"
)

// insertCounts tracks rows written per table within one import.
type insertCounts map[string]int

// InsertSummary writes a validated sensor summary and all of its children in
// a single transaction, then checkpoints so the import is durable on disk.
//
// Write order: capture, devices (+ device_ips), protocol_counts, top_ports,
// top_talkers, dns_domains, destinations. Any failure rolls back every row.
//
// Device defaults:
//   - empty vendor, hostname, osGuess and zero confidence are stored as NULL
//   - signalsUsed is stored as JSON text, or NULL when absent
//   - discoverySource defaults to "passive"
//   - firstSeen and lastSeen default to the capture start time
//
// Transaction conflicts with a concurrent writer are retried.
func (db *DB) InsertSummary(ctx context.Context, summary *models.Summary, filename string) (models.ImportResult, error) {
	if summary == nil {
		return models.ImportResult{}, ErrNilSummary
	}
	if db.isClosed() {
		return models.ImportResult{}, ErrDatabaseClosed
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		result models.ImportResult
		counts insertCounts
		err    error
	)
	for attempt := 0; attempt <= db.maxImportRetries; attempt++ {
		if attempt > 0 {
			logging.Ctx(ctx).Warn().Int("attempt", attempt).Err(err).Msg("Retrying import after transaction conflict")
			select {
			case <-time.After(db.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return models.ImportResult{}, ctx.Err()
			}
		}

		start := time.Now()
		result, counts, err = db.insertSummaryTx(ctx, summary, filename)
		metrics.RecordDBQuery("INSERT", "captures", time.Since(start), err)
		if err == nil || !isTransactionConflict(err) {
			break
		}
	}
	if err != nil {
		return models.ImportResult{}, err
	}

	for table, n := range counts {
		metrics.RecordRowsInserted(table, n)
	}

	if err := db.checkpoint(ctx); err != nil {
		// Committed data is safe in the WAL; a failed checkpoint only delays the flush
		logging.Ctx(ctx).Warn().Err(err).Int64("capture_id", result.CaptureID).Msg("Checkpoint after import failed")
	}

	return result, nil
}

// insertSummaryTx runs one import attempt inside a transaction.
func (db *DB) insertSummaryTx(ctx context.Context, s *models.Summary, filename string) (models.ImportResult, insertCounts, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.ImportResult{}, nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Ctx(ctx).Warn().Err(rbErr).Msg("Failed to roll back import transaction")
			}
		}
	}()

	w := &summaryWriter{tx: tx, counts: make(insertCounts)}

	captureID, err := w.insertCapture(ctx, s, filename)
	if err != nil {
		return models.ImportResult{}, nil, err
	}

	steps := []func(context.Context, int64, *models.Summary) error{
		w.insertDevices,
		w.insertProtocolCounts,
		w.insertTopPorts,
		w.insertTopTalkers,
		w.insertDNSDomains,
		w.insertDestinations,
	}
	for _, step := range steps {
		if err := step(ctx, captureID, s); err != nil {
			return models.ImportResult{}, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.ImportResult{}, nil, fmt.Errorf("failed to commit import: %w", err)
	}
	committed = true

	return models.ImportResult{
		Success:     true,
		CaptureID:   captureID,
		DeviceCount: len(s.Devices),
	}, w.counts, nil
}

// summaryWriter holds the transaction shared by every insert step.
type summaryWriter struct {
	tx     *sql.Tx
	counts insertCounts
}

// prepare prepares a statement on the transaction; callers must close it.
func (w *summaryWriter) prepare(ctx context.Context, table, query string) (*sql.Stmt, error) {
	stmt, err := w.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	return stmt, nil
}

func (w *summaryWriter) insertCapture(ctx context.Context, s *models.Summary, filename string) (int64, error) {
	var id int64
	err := w.tx.QueryRowContext(ctx, `
		INSERT INTO captures (
			sensor_os, sensor_hostname, interface_name, local_ip,
			start_time, duration_seconds, packet_count, imported_at, filename
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		s.Sensor.OS, s.Sensor.Hostname, s.Sensor.Interface, s.Sensor.LocalIP,
		s.Capture.StartTime, s.Capture.Duration, s.Capture.PacketCount, time.Now().UTC(), filename,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert capture: %w", err)
	}
	w.counts["captures"]++
	return id, nil
}

func (w *summaryWriter) insertDevices(ctx context.Context, captureID int64, s *models.Summary) error {
	if len(s.Devices) == 0 {
		return nil
	}

	ipStmt, err := w.prepare(ctx, "device_ips", `INSERT INTO device_ips (device_id, ip) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer closeWithLog(ipStmt, "device_ips statement")

	for i := range s.Devices {
		d := &s.Devices[i]

		signals, err := encodeJSONList(d.SignalsUsed)
		if err != nil {
			return fmt.Errorf("failed to encode signals for device %s: %w", d.MAC, err)
		}

		source := d.DiscoverySource
		if source == "" {
			source = models.DefaultDiscoverySource
		}
		firstSeen := d.FirstSeen
		if firstSeen == "" {
			firstSeen = s.Capture.StartTime
		}
		lastSeen := d.LastSeen
		if lastSeen == "" {
			lastSeen = s.Capture.StartTime
		}

		var deviceID int64
		err = w.tx.QueryRowContext(ctx, `
			INSERT INTO devices (
				capture_id, mac, vendor, hostname, os_guess, os_confidence,
				signals_used, discovery_source, first_seen, last_seen
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			captureID, d.MAC, nullString(d.Vendor), nullString(d.Hostname), nullString(d.OSGuess),
			nullFloat(d.Confidence), signals, source, firstSeen, lastSeen,
		).Scan(&deviceID)
		if err != nil {
			return fmt.Errorf("failed to insert device %s: %w", d.MAC, err)
		}
		w.counts["devices"]++

		for _, ip := range d.IPs {
			if _, err := ipStmt.ExecContext(ctx, deviceID, ip); err != nil {
				return fmt.Errorf("failed to insert ip %s for device %s: %w", ip, d.MAC, err)
			}
			w.counts["device_ips"]++
		}
	}
	return nil
}

func (w *summaryWriter) insertProtocolCounts(ctx context.Context, captureID int64, s *models.Summary) error {
	if len(s.Traffic.ProtocolCounts) == 0 {
		return nil
	}

	stmt, err := w.prepare(ctx, "protocol_counts", `INSERT INTO protocol_counts (capture_id, protocol, "count") VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer closeWithLog(stmt, "protocol_counts statement")

	// Sorted for a deterministic row order
	protocols := make([]string, 0, len(s.Traffic.ProtocolCounts))
	for p := range s.Traffic.ProtocolCounts {
		protocols = append(protocols, p)
	}
	sort.Strings(protocols)

	for _, p := range protocols {
		if _, err := stmt.ExecContext(ctx, captureID, p, s.Traffic.ProtocolCounts[p]); err != nil {
			return fmt.Errorf("failed to insert protocol count %s: %w", p, err)
		}
		w.counts["protocol_counts"]++
	}
	return nil
}

func (w *summaryWriter) insertTopPorts(ctx context.Context, captureID int64, s *models.Summary) error {
	if len(s.Traffic.TopPorts) == 0 {
		return nil
	}

	stmt, err := w.prepare(ctx, "top_ports", `INSERT INTO top_ports (capture_id, port, protocol, "count") VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer closeWithLog(stmt, "top_ports statement")

	for _, p := range s.Traffic.TopPorts {
		if _, err := stmt.ExecContext(ctx, captureID, p.Port, p.Protocol, p.Count); err != nil {
			return fmt.Errorf("failed to insert port %d/%s: %w", p.Port, p.Protocol, err)
		}
		w.counts["top_ports"]++
	}
	return nil
}

func (w *summaryWriter) insertTopTalkers(ctx context.Context, captureID int64, s *models.Summary) error {
	if len(s.Traffic.TopTalkers) == 0 {
		return nil
	}

	stmt, err := w.prepare(ctx, "top_talkers", `
		INSERT INTO top_talkers (capture_id, ip, bytes_sent, bytes_received, packets_sent, packets_received)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer closeWithLog(stmt, "top_talkers statement")

	for _, t := range s.Traffic.TopTalkers {
		if _, err := stmt.ExecContext(ctx, captureID, t.IP, t.BytesSent, t.BytesReceived, t.PacketsSent, t.PacketsReceived); err != nil {
			return fmt.Errorf("failed to insert talker %s: %w", t.IP, err)
		}
		w.counts["top_talkers"]++
	}
	return nil
}

func (w *summaryWriter) insertDNSDomains(ctx context.Context, captureID int64, s *models.Summary) error {
	if len(s.Traffic.DNSDomains) == 0 {
		return nil
	}

	stmt, err := w.prepare(ctx, "dns_domains", `INSERT INTO dns_domains (capture_id, domain, query_count, querying_ips) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer closeWithLog(stmt, "dns_domains statement")

	for _, d := range s.Traffic.DNSDomains {
		ips, err := encodeJSONList(d.QueryingIPs)
		if err != nil {
			return fmt.Errorf("failed to encode querying ips for %s: %w", d.Domain, err)
		}
		if _, err := stmt.ExecContext(ctx, captureID, d.Domain, d.QueryCount, ips); err != nil {
			return fmt.Errorf("failed to insert dns domain %s: %w", d.Domain, err)
		}
		w.counts["dns_domains"]++
	}
	return nil
}

func (w *summaryWriter) insertDestinations(ctx context.Context, captureID int64, s *models.Summary) error {
	if len(s.Traffic.Destinations) == 0 {
		return nil
	}

	stmt, err := w.prepare(ctx, "destinations", `INSERT INTO destinations (capture_id, address, connection_count, bytes_total) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer closeWithLog(stmt, "destinations statement")

	for _, d := range s.Traffic.Destinations {
		if _, err := stmt.ExecContext(ctx, captureID, d.Address, d.ConnectionCount, d.BytesTotal); err != nil {
			return fmt.Errorf("failed to insert destination %s: %w", d.Address, err)
		}
		w.counts["destinations"]++
	}
	return nil
}
