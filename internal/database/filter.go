// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package database

import (
	"github.com/tomtom215/netsight/internal/models"
)

// deviceSelect lists every device column plus the comma-joined IPs in insertion order.
// The aliases d (devices) and di (device_ips) are fixed.
const deviceSelect = `
	SELECT
		d.id, d.capture_id, d.mac, d.vendor, d.hostname,
		d.os_guess, d.os_confidence, d.signals_used,
		d.discovery_source, d.first_seen, d.last_seen,
		string_agg(di.ip, ',' ORDER BY di.id) AS ips
	FROM devices d
	LEFT JOIN device_ips di ON di.device_id = d.id
	WHERE 1=1`

// deviceGroupBy must list every non-aggregated column of deviceSelect.
const deviceGroupBy = `
	GROUP BY d.id, d.capture_id, d.mac, d.vendor, d.hostname,
		d.os_guess, d.os_confidence, d.signals_used,
		d.discovery_source, d.first_seen, d.last_seen`

// deviceQueryBuilder applies a DeviceFilter to the device listing.
//
// Filter semantics:
//   - CaptureID: exact match on devices.capture_id
//   - Vendor: case-insensitive substring of devices.vendor
//   - OS: case-insensitive substring of devices.os_guess
//
// Conditions combine with AND; NULL columns never match a non-empty filter.
func deviceQueryBuilder(filter models.DeviceFilter) *queryBuilder {
	return newQueryBuilder(deviceSelect).
		addCaptureFilter("d.capture_id", filter.CaptureID).
		addContainsFilter("d.vendor", filter.Vendor).
		addContainsFilter("d.os_guess", filter.OS)
}
