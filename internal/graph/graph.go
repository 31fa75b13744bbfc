// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

// Package graph derives the device/domain/external relationship graph from
// rows loaded by the database layer.
//
// Build is a pure function: it performs no I/O and its output depends only on
// the order and content of the GraphSource it is given.
//
// Node identity:
//   - device:<mac>    one per MAC, first occurrence wins
//   - domain:<name>   one per domain name
//   - external:<ip>   one per destination address
//
// Links:
//   - device -> domain, weight 1, for every querying IP owned by a known device
//   - first device -> external, weight log10(bytes+1), for every destination
//
// The destination link source is always the first device of the source set;
// flow-level attribution of destinations is not modeled.
package graph

import (
	"math"

	"github.com/goccy/go-json"

	"github.com/tomtom215/netsight/internal/models"
)

const (
	devicePrefix   = "device:"
	domainPrefix   = "domain:"
	externalPrefix = "external:"

	// dnsLinkWeight is the fixed strength of a device -> domain edge.
	dnsLinkWeight = 1.0
)

// DeviceNodeID returns the node ID of a device.
func DeviceNodeID(mac string) string { return devicePrefix + mac }

// DomainNodeID returns the node ID of a domain.
func DomainNodeID(name string) string { return domainPrefix + name }

// ExternalNodeID returns the node ID of an external address.
func ExternalNodeID(addr string) string { return externalPrefix + addr }

// DestinationWeight is the link weight of an external destination: log10(bytes+1).
func DestinationWeight(bytes int64) float64 {
	return math.Log10(float64(bytes) + 1)
}

// nodeSet keeps nodes in insertion order and rejects duplicate IDs.
type nodeSet struct {
	nodes []models.GraphNode
	ids   map[string]struct{}
}

func newNodeSet(capacity int) *nodeSet {
	return &nodeSet{
		nodes: make([]models.GraphNode, 0, capacity),
		ids:   make(map[string]struct{}, capacity),
	}
}

// add appends n unless a node with the same ID exists.
func (s *nodeSet) add(n models.GraphNode) {
	if _, ok := s.ids[n.ID]; ok {
		return
	}
	s.ids[n.ID] = struct{}{}
	s.nodes = append(s.nodes, n)
}

func (s *nodeSet) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Build assembles the graph for one source set. Nodes and Links are never nil.
func Build(src models.GraphSource) models.GraphData {
	set := newNodeSet(len(src.Devices) + len(src.Domains) + len(src.Destinations))

	for i := range src.Devices {
		set.add(deviceNode(&src.Devices[i]))
	}
	for _, name := range src.Domains {
		set.add(models.GraphNode{
			ID:    DomainNodeID(name),
			Type:  models.NodeTypeDomain,
			Label: name,
		})
	}
	for _, dest := range src.Destinations {
		set.add(models.GraphNode{
			ID:    ExternalNodeID(dest.Address),
			Type:  models.NodeTypeExternal,
			Label: dest.Address,
			IP:    dest.Address,
		})
	}

	links := make([]models.GraphLink, 0)
	links = appendDNSLinks(links, set, src)
	links = appendDestinationLinks(links, set, src)

	return models.GraphData{Nodes: set.nodes, Links: links}
}

// deviceNode labels a device by hostname, else first IP, else MAC.
func deviceNode(d *models.Device) models.GraphNode {
	node := models.GraphNode{
		ID:    DeviceNodeID(d.MAC),
		Type:  models.NodeTypeDevice,
		Label: d.MAC,
		MAC:   d.MAC,
	}
	if len(d.IPs) > 0 {
		node.IP = d.IPs[0]
	}
	if d.Vendor != nil {
		node.Vendor = *d.Vendor
	}
	if d.OSGuess != nil {
		node.OS = *d.OSGuess
	}

	switch {
	case d.Hostname != nil && *d.Hostname != "":
		node.Label = *d.Hostname
	case node.IP != "":
		node.Label = node.IP
	}
	return node
}

// ipOwners maps every device IP to the owning MAC. When two devices claim
// the same IP the later one wins.
func ipOwners(devices []models.Device) map[string]string {
	owners := make(map[string]string)
	for i := range devices {
		for _, ip := range devices[i].IPs {
			owners[ip] = devices[i].MAC
		}
	}
	return owners
}

// appendDNSLinks links querying devices to the domains they resolved. Rows
// whose querying IP list does not decode contribute nothing.
func appendDNSLinks(links []models.GraphLink, set *nodeSet, src models.GraphSource) []models.GraphLink {
	owners := ipOwners(src.Devices)

	for _, row := range src.DNSQueries {
		var ips []string
		if err := json.Unmarshal([]byte(row.QueryingIPs), &ips); err != nil {
			continue
		}

		target := DomainNodeID(row.Domain)
		for _, ip := range ips {
			mac, ok := owners[ip]
			if !ok {
				continue
			}
			source := DeviceNodeID(mac)
			if set.has(source) && set.has(target) {
				links = append(links, models.GraphLink{Source: source, Target: target, Weight: dnsLinkWeight})
			}
		}
	}
	return links
}

// appendDestinationLinks anchors every external node on the first device.
func appendDestinationLinks(links []models.GraphLink, set *nodeSet, src models.GraphSource) []models.GraphLink {
	if len(src.Devices) == 0 {
		return links
	}
	source := DeviceNodeID(src.Devices[0].MAC)

	for _, dest := range src.Destinations {
		target := ExternalNodeID(dest.Address)
		if !set.has(target) {
			continue
		}
		links = append(links, models.GraphLink{
			Source: source,
			Target: target,
			Weight: DestinationWeight(dest.Bytes),
		})
	}
	return links
}
