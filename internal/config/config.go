// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//   - Database: DuckDB configuration (path, memory, threads, profiling)
//   - Server: HTTP server configuration (port, host, timeout, static assets)
//   - Security: CORS and rate limiting
//   - Import: Upload limits and the drop-folder watcher
//   - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Import   ImportConfig   `koanf:"import"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
	SkipIndexes            bool   `koanf:"skip_indexes"`             // Skip index creation (fast test setup)
	EnableProfiling        bool   `koanf:"enable_profiling"`         // PRAGMA enable_profiling in detailed mode
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	StaticDir   string        `koanf:"static_dir"`  // Optional built frontend served at "/"
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
// Netsight has no authentication; these settings only shape how the API is exposed.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// ImportConfig holds sensor summary import settings.
//
// Environment Variables:
//   - IMPORT_MAX_UPLOAD_BYTES: Maximum accepted upload size (default: 32MB)
//   - IMPORT_WATCH_DIR: Drop folder watched for new summary files (default: disabled)
//   - IMPORT_LEDGER_DIR: BadgerDB directory recording imported files (default: /data/ledger)
//   - IMPORT_DEBOUNCE: Quiet period before a dropped file is imported (default: 2s)
type ImportConfig struct {
	// MaxUploadBytes caps the multipart body accepted by POST /api/import.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// WatchDir enables the drop-folder importer when non-empty.
	WatchDir string `koanf:"watch_dir"`

	// LedgerDir stores content hashes of files already imported from WatchDir
	// so a restart does not import them twice.
	LedgerDir string `koanf:"ledger_dir"`

	// Debounce is how long a dropped file must stay unchanged before import.
	Debounce time.Duration `koanf:"debounce"`
}

// WatchEnabled reports whether the drop-folder importer should run.
func (c ImportConfig) WatchEnabled() bool {
	return c.WatchDir != ""
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production, console for development.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all sources in order of precedence:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
