// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package main

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tomtom215/netsight/internal/models"
)

var (
	jsonOutput bool

	deviceCapture int64
	deviceVendor  string
	deviceOS      string
)

// capturesCmd lists stored captures, newest first.
var capturesCmd = &cobra.Command{
	Use:   "captures",
	Short: "List stored captures",
	Args:  cobra.NoArgs,
	RunE:  runCaptures,
}

// devicesCmd lists devices with the same filters as GET /api/devices.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices",
	Long: `Lists devices newest capture first. --vendor and --os are
case-insensitive substring matches and may be combined.

Example:
  netsight devices --capture 3 --vendor apple`,
	Args: cobra.NoArgs,
	RunE: runDevices,
}

func init() {
	for _, c := range []*cobra.Command{capturesCmd, devicesCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
	}
	devicesCmd.Flags().Int64Var(&deviceCapture, "capture", 0, "Only devices from this capture id")
	devicesCmd.Flags().StringVar(&deviceVendor, "vendor", "", "Vendor substring")
	devicesCmd.Flags().StringVar(&deviceOS, "os", "", "OS guess substring")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runCaptures(cmd *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	captures, err := db.GetCaptures(commandContext(cmd))
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), captures)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Imported", "Sensor", "Interface", "Start", "Duration", "Packets", "Devices", "File"})
	for _, c := range captures {
		table.Append([]string{
			strconv.FormatInt(c.ID, 10),
			c.ImportedAt,
			c.SensorHostname,
			c.InterfaceName,
			c.StartTime,
			strconv.FormatFloat(c.DurationSeconds, 'f', 1, 64) + "s",
			strconv.FormatInt(c.PacketCount, 10),
			strconv.FormatInt(c.DeviceCount, 10),
			c.Filename,
		})
	}
	table.Render()
	return nil
}

func runDevices(cmd *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	filter := models.DeviceFilter{Vendor: deviceVendor, OS: deviceOS}
	if cmd.Flags().Changed("capture") {
		id := deviceCapture
		filter.CaptureID = &id
	}

	devices, err := db.GetDevices(commandContext(cmd), filter)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), devices)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Capture", "MAC", "IPs", "Vendor", "Hostname", "OS", "Confidence", "Last Seen"})
	for i := range devices {
		d := &devices[i]
		table.Append([]string{
			strconv.FormatInt(d.CaptureID, 10),
			d.MAC,
			strings.Join(d.IPs, ", "),
			optional(d.Vendor),
			optional(d.Hostname),
			optional(d.OSGuess),
			confidence(d.OSConfidence),
			d.LastSeen,
		})
	}
	table.Render()
	return nil
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func confidence(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
