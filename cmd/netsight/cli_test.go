// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/netsight/internal/config"
	"github.com/tomtom215/netsight/internal/logging"
	"github.com/tomtom215/netsight/internal/models"
)

const summaryJSON = `{
  "sensor": {"os": "linux", "hostname": "sensor-01", "interface": "eth0", "localIP": "192.168.1.2"},
  "capture": {"startTime": "2026-01-01T10:00:00Z", "duration": 60, "packetCount": 1200},
  "devices": [
    {"mac": "aa:bb:cc:00:00:01", "ips": ["192.168.1.10"], "hostname": "laptop", "vendor": "Apple Inc.", "osGuess": "macOS", "confidence": 0.9},
    {"mac": "aa:bb:cc:00:00:03", "ips": ["192.168.1.12"], "vendor": "Raspberry Pi", "osGuess": "Linux"}
  ],
  "traffic": {
    "protocolCounts": {"tcp": 1000},
    "topPorts": [],
    "topTalkers": [],
    "dnsDomains": [],
    "destinations": []
  }
}`

func TestMain(m *testing.M) {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

// useTempStore points the commands at a fresh DuckDB file and resets flags.
func useTempStore(t *testing.T) {
	t.Helper()

	cfg = &config.Config{
		Database: config.DatabaseConfig{
			Path:        filepath.Join(t.TempDir(), "cli.duckdb"),
			MaxMemory:   "256MB",
			Threads:     1,
			SkipIndexes: true,
		},
	}
	keepGoing, jsonOutput = false, false
	deviceCapture, deviceVendor, deviceOS = 0, "", ""

	t.Cleanup(func() {
		cfg = nil
		keepGoing, jsonOutput = false, false
		deviceCapture, deviceVendor, deviceOS = 0, "", ""
	})
}

// newCmd returns a bare command whose output is captured in buf.
func newCmd(buf *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	return cmd
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportCmd(t *testing.T) {
	useTempStore(t)

	var out bytes.Buffer
	err := runImport(newCmd(&out), []string{writeFile(t, "first.json", summaryJSON)})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "first.json")
	assert.Contains(t, out.String(), "imported")

	out.Reset()
	jsonOutput = true
	require.NoError(t, runCaptures(newCmd(&out), nil))

	var captures []models.Capture
	require.NoError(t, json.Unmarshal(out.Bytes(), &captures))
	require.Len(t, captures, 1)
	assert.Equal(t, "first.json", captures[0].Filename)
	assert.Equal(t, int64(2), captures[0].DeviceCount)
}

func TestImportCmdStopsOnFirstFailure(t *testing.T) {
	useTempStore(t)

	bad := writeFile(t, "bad.json", `{"sensor": {}}`)
	good := writeFile(t, "good.json", summaryJSON)

	var out bytes.Buffer
	err := runImport(newCmd(&out), []string{bad, good})
	require.Error(t, err)
	assert.Contains(t, out.String(), "rejected")
	assert.NotContains(t, out.String(), "good.json")
}

func TestImportCmdKeepGoing(t *testing.T) {
	useTempStore(t)
	keepGoing = true

	args := []string{
		writeFile(t, "bad.json", `not json`),
		writeFile(t, "good.json", summaryJSON),
		filepath.Join(t.TempDir(), "missing.json"),
	}

	var out bytes.Buffer
	err := runImport(newCmd(&out), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 files failed")

	text := out.String()
	assert.Contains(t, text, "rejected")
	assert.Contains(t, text, "good.json")
	assert.Contains(t, text, "error")
}

func TestCapturesCmdTable(t *testing.T) {
	useTempStore(t)

	var out bytes.Buffer
	require.NoError(t, runImport(newCmd(&out), []string{writeFile(t, "one.json", summaryJSON)}))

	out.Reset()
	require.NoError(t, runCaptures(newCmd(&out), nil))

	text := out.String()
	assert.Contains(t, text, "sensor-01")
	assert.Contains(t, text, "eth0")
	assert.Contains(t, text, "60.0s")
	assert.Contains(t, text, "one.json")
}

func TestCapturesCmdEmptyStore(t *testing.T) {
	useTempStore(t)
	jsonOutput = true

	var out bytes.Buffer
	require.NoError(t, runCaptures(newCmd(&out), nil))
	assert.Equal(t, "[]", strings.TrimSpace(out.String()))
}

func TestDevicesCmdFilters(t *testing.T) {
	useTempStore(t)

	var out bytes.Buffer
	require.NoError(t, runImport(newCmd(&out), []string{
		writeFile(t, "a.json", summaryJSON),
		writeFile(t, "b.json", summaryJSON),
	}))

	tests := []struct {
		name    string
		args    []string
		wantLen int
	}{
		{"all captures", nil, 4},
		{"one capture", []string{"--capture", "1"}, 2},
		{"vendor substring", []string{"--vendor", "apple"}, 2},
		{"vendor and os", []string{"--vendor", "raspberry", "--os", "mac"}, 0},
		{"unknown capture", []string{"--capture", "99"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOutput = true

			// Fresh flags so Changed does not leak between cases.
			cmd := newCmd(&out)
			cmd.Flags().Int64Var(&deviceCapture, "capture", 0, "")
			cmd.Flags().StringVar(&deviceVendor, "vendor", "", "")
			cmd.Flags().StringVar(&deviceOS, "os", "", "")
			require.NoError(t, cmd.Flags().Parse(tt.args))

			out.Reset()
			require.NoError(t, runDevices(cmd, nil))

			var devices []models.Device
			require.NoError(t, json.Unmarshal(out.Bytes(), &devices))
			assert.Len(t, devices, tt.wantLen)
		})
	}
}

func TestDevicesCmdTable(t *testing.T) {
	useTempStore(t)

	var out bytes.Buffer
	require.NoError(t, runImport(newCmd(&out), []string{writeFile(t, "a.json", summaryJSON)}))

	out.Reset()
	require.NoError(t, runDevices(newCmd(&out), nil))

	text := out.String()
	assert.Contains(t, text, "aa:bb:cc:00:00:01")
	assert.Contains(t, text, "laptop")
	assert.Contains(t, text, "0.90")
	// Missing hostname and confidence render as a dash.
	assert.Contains(t, text, "-")
}

func TestOpenStoreWithoutConfig(t *testing.T) {
	cfg = nil
	_, err := openStore()
	assert.Error(t, err)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"import", "captures", "devices"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
