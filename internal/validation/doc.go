// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

// Package validation checks sensor summary documents before they reach the
// database.
//
// It wraps go-playground/validator v10 in a thread-safe singleton whose field
// names come from json tags, so every error names the document path that
// failed ("sensor.os", "devices[3].mac", "traffic.protocolCounts[tcp]").
//
// # Decoding
//
// DecodeSummary parses the raw upload with goccy/go-json into pointer-field
// wire types, runs struct validation, and converts the result into a
// models.Summary. Required scalars are pointers so that a missing or null
// value is rejected while an explicit zero is accepted.
//
//	summary, err := validation.DecodeSummary(body)
//	switch {
//	case errors.Is(err, validation.ErrInvalidJSON):
//	    // not JSON at all
//	case err != nil:
//	    var verr *validation.RequestValidationError
//	    errors.As(err, &verr) // verr.Fields() lists the failing paths
//	}
//
// # Required Fields
//
//   - sensor: os, hostname, interface, localIP
//   - capture: startTime, duration, packetCount
//   - devices[]: mac, ips (everything else optional)
//   - traffic: protocolCounts, topPorts, topTalkers, dnsDomains, destinations
//
// Numeric counts are accepted as JSON numbers and truncated to integers.
// Empty arrays are valid.
//
// # Thread Safety
//
// GetValidator, ValidateStruct and DecodeSummary are safe for concurrent use.
package validation
