// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "captures",
			duration:  10 * time.Millisecond,
		},
		{
			name:      "successful INSERT query",
			operation: "INSERT",
			table:     "devices",
			duration:  5 * time.Millisecond,
		},
		{
			name:      "failed query",
			operation: "SELECT",
			table:     "dns_domains",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies the error label is capped at 50 characters
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := strings.Repeat("x", 100)
	RecordDBQuery("SELECT", "truncation_test", time.Millisecond, errors.New(long))

	got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "truncation_test", long[:50]))
	if got != 1 {
		t.Errorf("truncated error counter = %v, want 1", got)
	}
}

// TestRecordRowsInserted tests the inserted row counter
func TestRecordRowsInserted(t *testing.T) {
	before := testutil.ToFloat64(DBRowsInserted.WithLabelValues("rows_test"))

	RecordRowsInserted("rows_test", 3)
	RecordRowsInserted("rows_test", 0)
	RecordRowsInserted("rows_test", -1)

	if got := testutil.ToFloat64(DBRowsInserted.WithLabelValues("rows_test")) - before; got != 3 {
		t.Errorf("rows inserted delta = %v, want 3", got)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		method     string
		endpoint   string
		statusCode string
	}{
		{"GET", "/api/captures", "200"},
		{"GET", "/api/devices", "500"},
		{"POST", "/api/import", "400"},
		{"GET", "/api/graph", "429"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.endpoint, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 25*time.Millisecond)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after-before != 1 {
				t.Errorf("request counter delta = %v, want 1", after-before)
			}
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates a realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}

	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

// TestRecordImport tests import outcome recording
func TestRecordImport(t *testing.T) {
	successBefore := testutil.ToFloat64(ImportsTotal.WithLabelValues(SourceCLI, ResultSuccess))
	invalidBefore := testutil.ToFloat64(ImportsTotal.WithLabelValues(SourceUpload, ResultInvalid))

	RecordImport(SourceCLI, ResultSuccess, 20*time.Millisecond, 12)
	RecordImport(SourceUpload, ResultInvalid, time.Millisecond, 0)

	if got := testutil.ToFloat64(ImportsTotal.WithLabelValues(SourceCLI, ResultSuccess)) - successBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ImportsTotal.WithLabelValues(SourceUpload, ResultInvalid)) - invalidBefore; got != 1 {
		t.Errorf("invalid delta = %v, want 1", got)
	}
	if testutil.ToFloat64(ImportLastSuccess) == 0 {
		t.Error("last success timestamp should be set after a successful import")
	}
}

// TestRecordWatcherSkip tests the skipped file counter
func TestRecordWatcherSkip(t *testing.T) {
	before := testutil.ToFloat64(WatcherFilesSkipped.WithLabelValues("duplicate"))
	RecordWatcherSkip("duplicate")
	if got := testutil.ToFloat64(WatcherFilesSkipped.WithLabelValues("duplicate")) - before; got != 1 {
		t.Errorf("skip delta = %v, want 1", got)
	}
}

// TestWebSocketMetrics tests WebSocket metric recording
func TestWebSocketMetrics(t *testing.T) {
	WSConnections.Set(10)
	WSConnections.Inc()
	WSConnections.Dec()
	if got := testutil.ToFloat64(WSConnections); got != 10 {
		t.Errorf("connections = %v, want 10", got)
	}

	WSMessagesSent.Add(100)
	WSMessagesReceived.Add(50)
	WSErrors.WithLabelValues("write_timeout").Inc()
}

// TestAppMetrics tests application-level metrics
func TestAppMetrics(t *testing.T) {
	AppInfo.WithLabelValues("1.0.0", "go1.24").Set(1)
	AppUptime.Set(3600)
	AppUptime.Add(60)

	if got := testutil.ToFloat64(AppUptime); got != 3660 {
		t.Errorf("uptime = %v, want 3660", got)
	}
}

// TestConcurrentMetricRecording checks recording is safe from many goroutines
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordDBQuery("SELECT", "concurrent", time.Millisecond, nil)
			RecordAPIRequest("GET", "/api/concurrent", "200", time.Millisecond)
			RecordImport(SourceWatcher, ResultSuccess, time.Millisecond, 1)
		}()
	}
	wg.Wait()
}

// TestMetricsRegistration verifies collectors are registered on the default registry
func TestMetricsRegistration(t *testing.T) {
	RecordDBQuery("SELECT", "registration", time.Millisecond, nil)
	RecordImport(SourceUpload, ResultSuccess, time.Millisecond, 1)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{
		"duckdb_query_duration_seconds",
		"summary_imports_total",
		"summary_import_duration_seconds",
	} {
		if !names[want] {
			t.Errorf("metric %q not registered", want)
		}
	}
}
