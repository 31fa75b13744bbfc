// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package models

// Graph node types.
const (
	NodeTypeDevice   = "device"
	NodeTypeDomain   = "domain"
	NodeTypeExternal = "external"
)

// GraphNode is one vertex of the relationship graph. ID is unique within a
// graph and prefixed with the node type ("device:<mac>", "domain:<name>",
// "external:<ip>").
type GraphNode struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Label  string `json:"label"`
	MAC    string `json:"mac,omitempty"`
	IP     string `json:"ip,omitempty"`
	Vendor string `json:"vendor,omitempty"`
	OS     string `json:"os,omitempty"`
}

// GraphLink connects two node IDs.
type GraphLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// GraphData is the response of GET /api/graph.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// DestinationVolume is an external address with its summed byte count.
type DestinationVolume struct {
	Address string
	Bytes   int64
}

// DNSQueryRow is a stored DNS domain with its raw querying-IP column.
// QueryingIPs holds the JSON text exactly as stored and may be malformed.
type DNSQueryRow struct {
	Domain      string
	QueryingIPs string
}

// GraphSource holds the rows one graph assembly works from.
type GraphSource struct {
	// Devices in the order the first-device heuristic relies on (by id).
	Devices []Device
	// Domains are the capped, query-count ordered domain names.
	Domains []string
	// Destinations are the capped, byte ordered external addresses.
	Destinations []DestinationVolume
	// DNSQueries are every DNS row in scope that recorded querying IPs.
	DNSQueries []DNSQueryRow
}
