// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package models

// DefaultDiscoverySource is stored for devices whose summary entry carries no
// discovery source.
const DefaultDiscoverySource = "passive"

// Summary is one sensor run as produced by the external network sensor.
// Values are already validated; see validation.DecodeSummary.
type Summary struct {
	Sensor  SensorInfo   `json:"sensor"`
	Capture CaptureInfo  `json:"capture"`
	Devices []DeviceInfo `json:"devices"`
	Traffic TrafficInfo  `json:"traffic"`
}

// SensorInfo describes the host the sensor ran on.
type SensorInfo struct {
	OS        string `json:"os"`
	Hostname  string `json:"hostname"`
	Interface string `json:"interface"`
	LocalIP   string `json:"localIP"`
}

// CaptureInfo describes the capture window.
type CaptureInfo struct {
	StartTime   string  `json:"startTime"`
	Duration    float64 `json:"duration"` // seconds
	PacketCount int64   `json:"packetCount"`
}

// DeviceInfo is one discovered endpoint. Every field except MAC and IPs is optional;
// empty strings and a zero confidence are stored as NULL.
type DeviceInfo struct {
	MAC             string   `json:"mac"`
	IPs             []string `json:"ips"`
	Vendor          string   `json:"vendor,omitempty"`
	Hostname        string   `json:"hostname,omitempty"`
	OSGuess         string   `json:"osGuess,omitempty"`
	Confidence      float64  `json:"confidence,omitempty"`      // 0-1
	SignalsUsed     []string `json:"signalsUsed,omitempty"`     // nil when the sensor sent none
	DiscoverySource string   `json:"discoverySource,omitempty"` // "passive" when empty
	FirstSeen       string   `json:"firstSeen,omitempty"`
	LastSeen        string   `json:"lastSeen,omitempty"`
}

// TrafficInfo holds the per-capture traffic aggregates.
type TrafficInfo struct {
	ProtocolCounts map[string]int64   `json:"protocolCounts"`
	TopPorts       []PortEntry        `json:"topPorts"`
	TopTalkers     []TalkerEntry      `json:"topTalkers"`
	DNSDomains     []DNSDomainEntry   `json:"dnsDomains"`
	Destinations   []DestinationEntry `json:"destinations"`
}

// PortEntry counts packets seen on one port/protocol pair.
type PortEntry struct {
	Port     int64  `json:"port"`
	Protocol string `json:"protocol"`
	Count    int64  `json:"count"`
}

// TalkerEntry is one IP ranked by traffic volume.
type TalkerEntry struct {
	IP              string `json:"ip"`
	BytesSent       int64  `json:"bytesSent"`
	BytesReceived   int64  `json:"bytesReceived"`
	PacketsSent     int64  `json:"packetsSent"`
	PacketsReceived int64  `json:"packetsReceived"`
}

// DNSDomainEntry is one queried domain. QueryingIPs is nil when the sensor
// did not attribute the queries.
type DNSDomainEntry struct {
	Domain      string   `json:"domain"`
	QueryCount  int64    `json:"queryCount"`
	QueryingIPs []string `json:"queryingIPs,omitempty"`
}

// DestinationEntry is one external address contacted during the capture.
type DestinationEntry struct {
	Address         string `json:"address"`
	ConnectionCount int64  `json:"connectionCount"`
	BytesTotal      int64  `json:"bytesTotal"`
}

// ImportResult is returned by a successful import.
type ImportResult struct {
	Success     bool  `json:"success"`
	CaptureID   int64 `json:"captureId"`
	DeviceCount int   `json:"deviceCount"`
}
