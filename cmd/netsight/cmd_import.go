// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tomtom215/netsight/internal/ingest"
	"github.com/tomtom215/netsight/internal/metrics"
)

var keepGoing bool

// importCmd loads summary files straight into the store.
var importCmd = &cobra.Command{
	Use:   "import <file.json>...",
	Short: "Import sensor summary files",
	Long: `Validates each file and stores it as one capture, exactly like an upload
through POST /api/import. Files are imported in argument order.

By default the first failing file stops the run; --keep-going imports the
remaining files and reports every failure at the end.

Example:
  netsight import --db ./data/netsight.duckdb summary-*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue after a file fails")
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	ctx := commandContext(cmd)
	importer := ingest.NewImporter(db, nil)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"File", "Status", "Capture", "Devices", "Detail"})

	failed := 0
	for _, path := range args {
		result, err := importer.ImportFile(ctx, path, metrics.SourceCLI)
		if err != nil {
			failed++
			status := "error"
			if ingest.IsInvalid(err) {
				status = "rejected"
			}
			table.Append([]string{filepath.Base(path), status, "-", "-", err.Error()})
			if !keepGoing {
				break
			}
			continue
		}
		table.Append([]string{
			filepath.Base(path),
			"imported",
			strconv.FormatInt(result.CaptureID, 10),
			strconv.Itoa(result.DeviceCount),
			"",
		})
	}
	table.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(args))
	}
	return nil
}
