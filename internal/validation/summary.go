// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package validation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/netsight/internal/models"
)

// ErrInvalidJSON is returned by DecodeSummary when the input is not a JSON document.
var ErrInvalidJSON = errors.New("invalid JSON format")

// The *Document types mirror the sensor summary with pointer fields so that
// an absent or null required value is distinguishable from a zero value.

type summaryDocument struct {
	Sensor  *sensorDocument  `json:"sensor" validate:"required"`
	Capture *captureDocument `json:"capture" validate:"required"`
	Devices []deviceDocument `json:"devices" validate:"required,dive"`
	Traffic *trafficDocument `json:"traffic" validate:"required"`
}

type sensorDocument struct {
	OS        *string `json:"os" validate:"required"`
	Hostname  *string `json:"hostname" validate:"required"`
	Interface *string `json:"interface" validate:"required"`
	LocalIP   *string `json:"localIP" validate:"required"`
}

type captureDocument struct {
	StartTime   *string  `json:"startTime" validate:"required"`
	Duration    *float64 `json:"duration" validate:"required"`
	PacketCount *float64 `json:"packetCount" validate:"required"`
}

type deviceDocument struct {
	MAC             *string   `json:"mac" validate:"required"`
	IPs             []*string `json:"ips" validate:"required,dive,required"`
	Vendor          *string   `json:"vendor"`
	Hostname        *string   `json:"hostname"`
	OSGuess         *string   `json:"osGuess"`
	Confidence      *float64  `json:"confidence"`
	SignalsUsed     []*string `json:"signalsUsed" validate:"omitempty,dive,required"`
	DiscoverySource *string   `json:"discoverySource"`
	FirstSeen       *string   `json:"firstSeen"`
	LastSeen        *string   `json:"lastSeen"`
}

type trafficDocument struct {
	ProtocolCounts map[string]*float64   `json:"protocolCounts" validate:"required,dive,required"`
	TopPorts       []portDocument        `json:"topPorts" validate:"required,dive"`
	TopTalkers     []talkerDocument      `json:"topTalkers" validate:"required,dive"`
	DNSDomains     []dnsDomainDocument   `json:"dnsDomains" validate:"required,dive"`
	Destinations   []destinationDocument `json:"destinations" validate:"required,dive"`
}

type portDocument struct {
	Port     *float64 `json:"port" validate:"required"`
	Protocol *string  `json:"protocol" validate:"required"`
	Count    *float64 `json:"count" validate:"required"`
}

type talkerDocument struct {
	IP              *string  `json:"ip" validate:"required"`
	BytesSent       *float64 `json:"bytesSent" validate:"required"`
	BytesReceived   *float64 `json:"bytesReceived" validate:"required"`
	PacketsSent     *float64 `json:"packetsSent" validate:"required"`
	PacketsReceived *float64 `json:"packetsReceived" validate:"required"`
}

type dnsDomainDocument struct {
	Domain      *string   `json:"domain" validate:"required"`
	QueryCount  *float64  `json:"queryCount" validate:"required"`
	QueryingIPs []*string `json:"queryingIPs" validate:"omitempty,dive,required"`
}

type destinationDocument struct {
	Address         *string  `json:"address" validate:"required"`
	ConnectionCount *float64 `json:"connectionCount" validate:"required"`
	BytesTotal      *float64 `json:"bytesTotal" validate:"required"`
}

// DecodeSummary parses and schema-checks a sensor summary document.
//
// Errors:
//   - ErrInvalidJSON when data is not a single JSON object
//   - *RequestValidationError naming the offending field path when a value
//     has the wrong JSON kind, or a required field or list item is missing
//     or null
//
// Kind checks run on a generic decode first so every path is reported in
// document notation (devices[0].ips[1]); required rules run afterwards.
// DecodeSummary has no side effects.
func DecodeSummary(data []byte) (*models.Summary, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if len(trimmed) > 0 && json.Valid(trimmed) {
			return nil, newFieldError("summary", "type", "summary must be a JSON object", nil)
		}
		return nil, ErrInvalidJSON
	}

	var raw interface{}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if verr := checkKinds(raw); verr != nil {
		return nil, verr
	}

	var doc summaryDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, newFieldError("summary", "type", fmt.Sprintf("summary could not be decoded: %v", err), nil)
	}

	if verr := ValidateStruct(&doc); verr != nil {
		return nil, verr
	}

	return doc.toModel(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// derefList keeps nil as nil; items are non-nil after validation.
func derefList(in []*string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = deref(p)
	}
	return out
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// count converts a validated JSON number to an integer count.
func count(f *float64) int64 {
	return int64(derefFloat(f))
}

// toModel converts a validated document; required pointers are non-nil.
func (d *summaryDocument) toModel() *models.Summary {
	s := &models.Summary{
		Sensor: models.SensorInfo{
			OS:        deref(d.Sensor.OS),
			Hostname:  deref(d.Sensor.Hostname),
			Interface: deref(d.Sensor.Interface),
			LocalIP:   deref(d.Sensor.LocalIP),
		},
		Capture: models.CaptureInfo{
			StartTime:   deref(d.Capture.StartTime),
			Duration:    derefFloat(d.Capture.Duration),
			PacketCount: count(d.Capture.PacketCount),
		},
		Devices: make([]models.DeviceInfo, 0, len(d.Devices)),
		Traffic: models.TrafficInfo{
			ProtocolCounts: make(map[string]int64, len(d.Traffic.ProtocolCounts)),
			TopPorts:       make([]models.PortEntry, 0, len(d.Traffic.TopPorts)),
			TopTalkers:     make([]models.TalkerEntry, 0, len(d.Traffic.TopTalkers)),
			DNSDomains:     make([]models.DNSDomainEntry, 0, len(d.Traffic.DNSDomains)),
			Destinations:   make([]models.DestinationEntry, 0, len(d.Traffic.Destinations)),
		},
	}

	for i := range d.Devices {
		dev := &d.Devices[i]
		s.Devices = append(s.Devices, models.DeviceInfo{
			MAC:             deref(dev.MAC),
			IPs:             derefList(dev.IPs),
			Vendor:          deref(dev.Vendor),
			Hostname:        deref(dev.Hostname),
			OSGuess:         deref(dev.OSGuess),
			Confidence:      derefFloat(dev.Confidence),
			SignalsUsed:     derefList(dev.SignalsUsed),
			DiscoverySource: deref(dev.DiscoverySource),
			FirstSeen:       deref(dev.FirstSeen),
			LastSeen:        deref(dev.LastSeen),
		})
	}

	for proto, n := range d.Traffic.ProtocolCounts {
		s.Traffic.ProtocolCounts[proto] = count(n)
	}
	for _, p := range d.Traffic.TopPorts {
		s.Traffic.TopPorts = append(s.Traffic.TopPorts, models.PortEntry{
			Port:     count(p.Port),
			Protocol: deref(p.Protocol),
			Count:    count(p.Count),
		})
	}
	for _, t := range d.Traffic.TopTalkers {
		s.Traffic.TopTalkers = append(s.Traffic.TopTalkers, models.TalkerEntry{
			IP:              deref(t.IP),
			BytesSent:       count(t.BytesSent),
			BytesReceived:   count(t.BytesReceived),
			PacketsSent:     count(t.PacketsSent),
			PacketsReceived: count(t.PacketsReceived),
		})
	}
	for _, dns := range d.Traffic.DNSDomains {
		s.Traffic.DNSDomains = append(s.Traffic.DNSDomains, models.DNSDomainEntry{
			Domain:      deref(dns.Domain),
			QueryCount:  count(dns.QueryCount),
			QueryingIPs: derefList(dns.QueryingIPs),
		})
	}
	for _, dest := range d.Traffic.Destinations {
		s.Traffic.Destinations = append(s.Traffic.Destinations, models.DestinationEntry{
			Address:         deref(dest.Address),
			ConnectionCount: count(dest.ConnectionCount),
			BytesTotal:      count(dest.BytesTotal),
		})
	}

	return s
}
