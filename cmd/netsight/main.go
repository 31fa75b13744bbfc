// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/netsight/internal/config"
	"github.com/tomtom215/netsight/internal/database"
	"github.com/tomtom215/netsight/internal/logging"
)

var (
	dbPath  string
	verbose bool

	// cfg is populated by the root PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "netsight",
	Short: "Netsight - offline tools for the network visibility store",
	Long: `netsight works directly against the DuckDB file used by the dashboard server.

It imports sensor summary files without going through the HTTP API and prints
the stored captures and devices as tables. Configuration is read the same way
as the server (config.yaml, CONFIG_PATH and environment variables).

Stop the server before importing: DuckDB allows one writing process per file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dbPath != "" {
			loaded.Database.Path = dbPath
		}
		cfg = loaded

		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Init(logging.Config{
			Level:  level,
			Format: "console",
			Output: cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "DuckDB file (overrides DUCKDB_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(importCmd, capturesCmd, devicesCmd)
}

// openStore opens the configured database. Callers must Close it.
func openStore() (*database.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	return db, nil
}

func closeStore(db *database.DB) {
	logging.Debug().Str("path", db.GetDatabasePath()).Msg("Closing database")
	if err := db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing database")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
