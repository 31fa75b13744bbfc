// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package graph

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomtom215/netsight/internal/models"
)

func strPtr(s string) *string { return &s }

func device(mac string, hostname *string, ips ...string) models.Device {
	return models.Device{MAC: mac, Hostname: hostname, IPs: ips}
}

// floatTolerance compares link weights within floating-point error.
var floatTolerance = cmpopts.EquateApprox(0, 1e-9)

func TestBuildEmptySource(t *testing.T) {
	t.Parallel()

	got := Build(models.GraphSource{})

	if got.Nodes == nil || got.Links == nil {
		t.Fatalf("Build() returned nil slices: nodes=%v links=%v", got.Nodes, got.Links)
	}
	if len(got.Nodes) != 0 || len(got.Links) != 0 {
		t.Errorf("Build() = %d nodes, %d links, want 0/0", len(got.Nodes), len(got.Links))
	}
}

func TestBuildNodeIdentity(t *testing.T) {
	t.Parallel()

	src := models.GraphSource{
		Devices: []models.Device{
			device("aa:aa:aa:aa:aa:01", strPtr("laptop"), "192.168.1.10"),
			device("aa:aa:aa:aa:aa:02", nil, "192.168.1.20"),
		},
		Domains: []string{"example.com"},
		DNSQueries: []models.DNSQueryRow{
			{Domain: "example.com", QueryingIPs: `["192.168.1.10"]`},
		},
	}

	got := Build(src)

	wantNodes := []models.GraphNode{
		{ID: "device:aa:aa:aa:aa:aa:01", Type: "device", Label: "laptop", MAC: "aa:aa:aa:aa:aa:01", IP: "192.168.1.10"},
		{ID: "device:aa:aa:aa:aa:aa:02", Type: "device", Label: "192.168.1.20", MAC: "aa:aa:aa:aa:aa:02", IP: "192.168.1.20"},
		{ID: "domain:example.com", Type: "domain", Label: "example.com"},
	}
	wantLinks := []models.GraphLink{
		{Source: "device:aa:aa:aa:aa:aa:01", Target: "domain:example.com", Weight: 1},
	}

	if diff := cmp.Diff(wantNodes, got.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantLinks, got.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestDeviceLabelPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		device models.Device
		want   string
	}{
		{"hostname wins", device("m1", strPtr("nas"), "10.0.0.1"), "nas"},
		{"empty hostname falls back to first ip", device("m2", strPtr(""), "10.0.0.2", "10.0.0.3"), "10.0.0.2"},
		{"no hostname uses first ip", device("m3", nil, "10.0.0.4"), "10.0.0.4"},
		{"no hostname and no ip uses mac", device("m4", nil), "m4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Build(models.GraphSource{Devices: []models.Device{tt.device}})
			if len(got.Nodes) != 1 {
				t.Fatalf("got %d nodes, want 1", len(got.Nodes))
			}
			if got.Nodes[0].Label != tt.want {
				t.Errorf("label = %q, want %q", got.Nodes[0].Label, tt.want)
			}
		})
	}
}

func TestDeviceNodeCarriesVendorAndOS(t *testing.T) {
	t.Parallel()

	d := device("m1", nil, "10.0.0.1")
	d.Vendor = strPtr("Apple")
	d.OSGuess = strPtr("macOS")

	got := Build(models.GraphSource{Devices: []models.Device{d}})

	if got.Nodes[0].Vendor != "Apple" || got.Nodes[0].OS != "macOS" {
		t.Errorf("node = %+v, want vendor Apple and os macOS", got.Nodes[0])
	}
}

func TestBuildDNSLinkGating(t *testing.T) {
	t.Parallel()

	src := models.GraphSource{
		Devices: []models.Device{device("m1", nil, "10.0.0.1")},
		Domains: []string{"known.com", "stranger.com"},
		DNSQueries: []models.DNSQueryRow{
			// IP not owned by any device
			{Domain: "stranger.com", QueryingIPs: `["10.9.9.9"]`},
			// Domain outside the node set
			{Domain: "uncapped.com", QueryingIPs: `["10.0.0.1"]`},
			// Malformed row is skipped, the rest proceed
			{Domain: "known.com", QueryingIPs: `not-json`},
			{Domain: "known.com", QueryingIPs: `["10.0.0.1"]`},
		},
	}

	got := Build(src)

	want := []models.GraphLink{{Source: "device:m1", Target: "domain:known.com", Weight: 1}}
	if diff := cmp.Diff(want, got.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
	for _, n := range got.Nodes {
		if n.ID == "domain:uncapped.com" {
			t.Errorf("domain outside the capped set must not become a node")
		}
	}
}

func TestBuildDomainCapExcludesNodesAndLinks(t *testing.T) {
	t.Parallel()

	// The store returns at most 50 domains; the 51st only appears in the
	// querying-IP rows and must be dropped from both nodes and links.
	domains := make([]string, 50)
	queries := make([]models.DNSQueryRow, 0, 51)
	for i := range domains {
		domains[i] = fmt.Sprintf("d%02d.example", i)
		queries = append(queries, models.DNSQueryRow{Domain: domains[i], QueryingIPs: `["10.0.0.1"]`})
	}
	queries = append(queries, models.DNSQueryRow{Domain: "d50.example", QueryingIPs: `["10.0.0.1"]`})

	got := Build(models.GraphSource{
		Devices:    []models.Device{device("m1", nil, "10.0.0.1")},
		Domains:    domains,
		DNSQueries: queries,
	})

	if len(got.Nodes) != 51 {
		t.Errorf("got %d nodes, want 51 (1 device + 50 domains)", len(got.Nodes))
	}
	if len(got.Links) != 50 {
		t.Errorf("got %d links, want 50", len(got.Links))
	}
	for _, l := range got.Links {
		if l.Target == "domain:d50.example" {
			t.Errorf("link to capped domain present: %+v", l)
		}
	}
}

func TestBuildDestinationWeightAndFirstDevice(t *testing.T) {
	t.Parallel()

	src := models.GraphSource{
		Devices: []models.Device{
			device("first", nil, "10.0.0.1"),
			device("second", nil, "10.0.0.2"),
		},
		Destinations: []models.DestinationVolume{
			{Address: "8.8.8.8", Bytes: 999},
			{Address: "1.1.1.1", Bytes: 0},
		},
	}

	got := Build(src)

	want := []models.GraphLink{
		{Source: "device:first", Target: "external:8.8.8.8", Weight: 3},
		{Source: "device:first", Target: "external:1.1.1.1", Weight: 0},
	}
	if diff := cmp.Diff(want, got.Links, floatTolerance); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}

	external := got.Nodes[len(got.Nodes)-2]
	if external.ID != "external:8.8.8.8" || external.IP != "8.8.8.8" || external.Label != "8.8.8.8" {
		t.Errorf("external node = %+v", external)
	}
}

func TestBuildDestinationsWithoutDevices(t *testing.T) {
	t.Parallel()

	got := Build(models.GraphSource{
		Destinations: []models.DestinationVolume{{Address: "8.8.8.8", Bytes: 10}},
	})

	if len(got.Nodes) != 1 {
		t.Errorf("got %d nodes, want 1 external node", len(got.Nodes))
	}
	if len(got.Links) != 0 {
		t.Errorf("got %d links, want none without devices", len(got.Links))
	}
}

func TestBuildLastWriterWinsForSharedIP(t *testing.T) {
	t.Parallel()

	src := models.GraphSource{
		Devices: []models.Device{
			device("old", nil, "10.0.0.5"),
			device("new", nil, "10.0.0.5"),
		},
		Domains:    []string{"a.com"},
		DNSQueries: []models.DNSQueryRow{{Domain: "a.com", QueryingIPs: `["10.0.0.5"]`}},
	}

	got := Build(src)

	if len(got.Links) != 1 || got.Links[0].Source != "device:new" {
		t.Errorf("links = %+v, want single link from device:new", got.Links)
	}
}

func TestBuildDeduplicatesNodeIDs(t *testing.T) {
	t.Parallel()

	// Same MAC seen in two captures, same name as domain and destination list entries.
	src := models.GraphSource{
		Devices: []models.Device{
			device("m1", strPtr("first-capture"), "10.0.0.1"),
			device("m1", strPtr("second-capture"), "10.0.0.1"),
		},
		Domains:      []string{"a.com", "a.com"},
		Destinations: []models.DestinationVolume{{Address: "9.9.9.9", Bytes: 1}, {Address: "9.9.9.9", Bytes: 2}},
	}

	got := Build(src)

	seen := make(map[string]bool)
	for _, n := range got.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	if len(got.Nodes) != 3 {
		t.Errorf("got %d nodes, want 3", len(got.Nodes))
	}
	if got.Nodes[0].Label != "first-capture" {
		t.Errorf("first device occurrence should win, got label %q", got.Nodes[0].Label)
	}
}

func TestDestinationWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int64
		want  float64
	}{
		{0, 0},
		{9, 1},
		{999, 3},
		{999999, 6},
	}

	for _, tt := range tests {
		if got := DestinationWeight(tt.bytes); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DestinationWeight(%d) = %v, want %v", tt.bytes, got, tt.want)
		}
	}
}
