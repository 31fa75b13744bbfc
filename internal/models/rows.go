// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package models

// Capture is one stored sensor run with the number of devices it discovered.
type Capture struct {
	ID              int64   `json:"id"`
	SensorOS        string  `json:"sensor_os"`
	SensorHostname  string  `json:"sensor_hostname"`
	InterfaceName   string  `json:"interface_name"`
	LocalIP         string  `json:"local_ip"`
	StartTime       string  `json:"start_time"`
	DurationSeconds float64 `json:"duration_seconds"`
	PacketCount     int64   `json:"packet_count"`
	ImportedAt      string  `json:"imported_at"`
	Filename        string  `json:"filename"`
	DeviceCount     int64   `json:"device_count"`
}

// Device is one stored device. Nullable columns are pointers so they
// serialize as JSON null; IPs and SignalsUsed are always arrays.
type Device struct {
	ID              int64    `json:"id"`
	CaptureID       int64    `json:"capture_id"`
	MAC             string   `json:"mac"`
	Vendor          *string  `json:"vendor"`
	Hostname        *string  `json:"hostname"`
	OSGuess         *string  `json:"os_guess"`
	OSConfidence    *float64 `json:"os_confidence"`
	SignalsUsed     []string `json:"signals_used"`
	DiscoverySource *string  `json:"discovery_source"`
	FirstSeen       string   `json:"first_seen"`
	LastSeen        string   `json:"last_seen"`
	IPs             []string `json:"ips"`
}

// DeviceFilter narrows a device listing. Zero values mean "no filter";
// Vendor and OS are case-insensitive substring matches, AND-combined.
type DeviceFilter struct {
	CaptureID *int64
	Vendor    string
	OS        string
}

// ProtocolCount is the packet count of one protocol.
type ProtocolCount struct {
	Protocol string `json:"protocol"`
	Count    int64  `json:"count"`
}

// PortCount is the packet count of one port/protocol pair.
type PortCount struct {
	Port     int64  `json:"port"`
	Protocol string `json:"protocol"`
	Count    int64  `json:"count"`
}

// Talker is one IP ranked by bytes sent plus received.
type Talker struct {
	IP              string `json:"ip"`
	BytesSent       int64  `json:"bytes_sent"`
	BytesReceived   int64  `json:"bytes_received"`
	PacketsSent     int64  `json:"packets_sent"`
	PacketsReceived int64  `json:"packets_received"`
}

// DNSDomainCount is the query count of one domain.
type DNSDomainCount struct {
	Domain     string `json:"domain"`
	QueryCount int64  `json:"query_count"`
}

// Destination is one external address ranked by bytes.
type Destination struct {
	Address         string `json:"address"`
	ConnectionCount int64  `json:"connection_count"`
	BytesTotal      int64  `json:"bytes_total"`
}

// TrafficSummary is the response of GET /api/traffic.
type TrafficSummary struct {
	Protocols    []ProtocolCount  `json:"protocols"`
	Ports        []PortCount      `json:"ports"`
	Talkers      []Talker         `json:"talkers"`
	DNSDomains   []DNSDomainCount `json:"dnsDomains"`
	Destinations []Destination    `json:"destinations"`
}

// OverviewStats holds the dashboard totals across every capture.
type OverviewStats struct {
	TotalCaptures int64 `json:"totalCaptures"`
	TotalDevices  int64 `json:"totalDevices"`
	TotalDomains  int64 `json:"totalDomains"`
	TotalPackets  int64 `json:"totalPackets"`
}
