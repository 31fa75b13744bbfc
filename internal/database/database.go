// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/netsight/internal/config"
	"github.com/tomtom215/netsight/internal/logging"
)

// DB wraps the DuckDB connection and provides data access methods
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// closed guards against use after Close
	closed   bool
	closedMu sync.RWMutex

	// Import retry on DuckDB transaction conflicts
	maxImportRetries int
	retryDelay       time.Duration
}

// New opens the DuckDB database at cfg.Path and initializes the schema.
// Use ":memory:" as the path for an ephemeral store.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure parent directory exists for database file
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order=false reduces memory usage but may change result order
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// No extensions are needed; disable auto-install/auto-load so a restricted
	// network never stalls startup
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:             conn,
		cfg:              cfg,
		maxImportRetries: 3,
		retryDelay:       50 * time.Millisecond,
	}

	if err := db.configureConnectionPool(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.enableProfiling(); err != nil {
		logging.Warn().Err(err).Msg("Query profiling not enabled")
	}

	logging.Info().Str("path", cfg.Path).Int("threads", numThreads).Str("max_memory", cfg.MaxMemory).Msg("Database opened")

	return db, nil
}

// Close checkpoints the WAL into the database file and closes the connection.
// Calling Close more than once is a no-op.
func (db *DB) Close() error {
	db.closedMu.Lock()
	defer db.closedMu.Unlock()

	if db.closed || db.conn == nil {
		return nil
	}
	db.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.checkpoint(ctx); err != nil {
		// Best effort; the WAL is replayed on next open
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	return db.conn.Close()
}

// isClosed reports whether Close has been called.
func (db *DB) isClosed() bool {
	db.closedMu.RLock()
	defer db.closedMu.RUnlock()
	return db.closed
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil || db.isClosed() {
		return ErrDatabaseClosed
	}
	return db.conn.PingContext(ctx)
}

// initialize creates tables, applies migrations and builds indexes
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}

	if err := db.runVersionedMigrations(); err != nil {
		return err
	}

	if err := db.createIndexes(); err != nil {
		return err
	}

	// Flush schema changes so a crash before the first import leaves no WAL behind
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}
