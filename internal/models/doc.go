// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

/*
Package models defines data structures shared across Netsight.

Model Categories:

1. Sensor summary (input):
  - Summary: one sensor run as imported from JSON
  - SensorInfo, CaptureInfo, DeviceInfo, TrafficInfo and the traffic entries

2. Stored rows (API output):
  - Capture: capture header plus computed device_count
  - Device: device row with decoded ips and signals_used
  - TrafficSummary: protocol, port, talker, DNS and destination aggregates
  - OverviewStats: dashboard totals

3. Graph:
  - GraphSource: rows loaded from the store for one assembly pass
  - GraphNode, GraphLink, GraphData: the derived relationship graph

JSON field names of output models match the dashboard contract exactly:
row models use the snake_case column names, envelopes use camelCase.
*/
package models
