// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/netsight/internal/models"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(h, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestCaptures(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/api/captures")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty store body = %s, want []", rec.Body.String())
	}

	first := importSample(t, h)
	second := importSample(t, h)

	var captures []models.Capture
	decodeBody(t, get(t, h, "/api/captures"), &captures)
	if len(captures) != 2 {
		t.Fatalf("got %d captures, want 2", len(captures))
	}
	// Same start time: newer ID first.
	if captures[0].ID != second || captures[1].ID != first {
		t.Errorf("order = [%d %d], want [%d %d]", captures[0].ID, captures[1].ID, second, first)
	}
	if captures[0].DeviceCount != 3 {
		t.Errorf("device_count = %d, want 3", captures[0].DeviceCount)
	}
}

func TestCaptureByID(t *testing.T) {
	h, _ := newTestRouter(t)
	id := importSample(t, h)

	var capture models.Capture
	rec := get(t, h, fmt.Sprintf("/api/captures/%d", id))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	decodeBody(t, rec, &capture)
	if capture.ID != id || capture.SensorHostname != "sensor-01" {
		t.Errorf("capture = %+v", capture)
	}

	if rec := get(t, h, "/api/captures/9999"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
	if rec := get(t, h, "/api/captures/abc"); rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", rec.Code)
	}
}

func TestDevices_Filters(t *testing.T) {
	h, _ := newTestRouter(t)
	id := importSample(t, h)
	importSample(t, h)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all captures", "", 6},
		{"one capture", fmt.Sprintf("?captureId=%d", id), 3},
		{"vendor substring is case-insensitive", fmt.Sprintf("?captureId=%d&vendor=apple", id), 2},
		{"vendor and os combine", fmt.Sprintf("?captureId=%d&vendor=apple&os=ios", id), 1},
		{"no match is an empty array", "?vendor=nokia", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, "/api/devices"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var devices []models.Device
			decodeBody(t, rec, &devices)
			if devices == nil {
				t.Fatalf("body = %s, want a JSON array", rec.Body.String())
			}
			if len(devices) != tt.want {
				t.Errorf("got %d devices, want %d", len(devices), tt.want)
			}
		})
	}
}

func TestTraffic(t *testing.T) {
	h, _ := newTestRouter(t)
	id := importSample(t, h)

	rec := get(t, h, fmt.Sprintf("/api/traffic?captureId=%d", id))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var traffic models.TrafficSummary
	decodeBody(t, rec, &traffic)
	if len(traffic.Protocols) != 2 || traffic.Protocols[0].Protocol != "tcp" {
		t.Errorf("protocols = %+v, want tcp first", traffic.Protocols)
	}
	if len(traffic.Ports) != 1 || traffic.Ports[0].Port != 443 {
		t.Errorf("ports = %+v", traffic.Ports)
	}
	if len(traffic.DNSDomains) != 1 || traffic.DNSDomains[0].Domain != "example.com" {
		t.Errorf("dnsDomains = %+v", traffic.DNSDomains)
	}
	if len(traffic.Destinations) != 1 || traffic.Destinations[0].BytesTotal != 999 {
		t.Errorf("destinations = %+v", traffic.Destinations)
	}
}

func TestGraph(t *testing.T) {
	h, _ := newTestRouter(t)
	id := importSample(t, h)

	rec := get(t, h, fmt.Sprintf("/api/graph?captureId=%d", id))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var g models.GraphData
	decodeBody(t, rec, &g)

	// 3 devices, 1 domain, 1 external address.
	if len(g.Nodes) != 5 {
		t.Errorf("got %d nodes, want 5", len(g.Nodes))
	}
	if len(g.Links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(g.Links), g.Links)
	}

	dns, dest := g.Links[0], g.Links[1]
	if dns.Source != "device:aa:bb:cc:00:00:01" || dns.Target != "domain:example.com" || dns.Weight != 1 {
		t.Errorf("dns link = %+v", dns)
	}
	if dest.Source != "device:aa:bb:cc:00:00:01" || dest.Target != "external:93.184.216.34" || math.Abs(dest.Weight-3) > 1e-9 {
		t.Errorf("destination link = %+v", dest)
	}
}

func TestGraph_EmptyStore(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/api/graph")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"nodes":[],"links":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestStats(t *testing.T) {
	h, _ := newTestRouter(t)
	importSample(t, h)
	importSample(t, h)

	var stats models.OverviewStats
	decodeBody(t, get(t, h, "/api/stats"), &stats)

	want := models.OverviewStats{TotalCaptures: 2, TotalDevices: 6, TotalDomains: 1, TotalPackets: 2400}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestReadEndpoints_StoreFailure(t *testing.T) {
	h, db := newTestRouter(t)
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	tests := []struct {
		path    string
		message string
	}{
		{"/api/captures", "Failed to fetch captures"},
		{"/api/devices", "Failed to fetch devices"},
		{"/api/traffic", "Failed to fetch traffic data"},
		{"/api/graph", "Failed to fetch graph data"},
		{"/api/stats", "Failed to fetch stats"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			var body ErrorResponse
			decodeBody(t, rec, &body)
			if body.Error != tt.message {
				t.Errorf("error = %q, want %q", body.Error, tt.message)
			}
		})
	}
}

func TestReadEndpoints_InvalidCaptureID(t *testing.T) {
	h, _ := newTestRouter(t)
	importSample(t, h)

	for _, path := range []string{
		"/api/devices?captureId=latest",
		"/api/traffic?captureId=1.5",
		"/api/graph?captureId=abc",
	} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, h, path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
			var body ErrorResponse
			decodeBody(t, rec, &body)
			if body.Error != "Invalid captureId" {
				t.Errorf("error = %q, want %q", body.Error, "Invalid captureId")
			}
		})
	}
}
