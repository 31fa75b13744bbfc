// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package validation

import (
	"fmt"
	"sort"
)

// kindCheck verifies the JSON kind of one decoded value and appends an
// error per mismatch. Null values are left to the required rules.
type kindCheck func(path string, v interface{}, errs []ValidationError) []ValidationError

type member struct {
	name  string
	check kindCheck
}

func field(name string, check kindCheck) member {
	return member{name: name, check: check}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// jsonKind names the kind of a value produced by decoding into interface{}.
func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func kindError(path, want string, v interface{}) ValidationError {
	got := jsonKind(v)
	return ValidationError{
		field:   path,
		tag:     "type",
		param:   want,
		value:   v,
		message: fmt.Sprintf("%s must be %s, got %s", path, want, got),
	}
}

func scalar(want string, ok func(interface{}) bool) kindCheck {
	return func(path string, v interface{}, errs []ValidationError) []ValidationError {
		if v == nil || ok(v) {
			return errs
		}
		return append(errs, kindError(path, want, v))
	}
}

var (
	isString = scalar("a string", func(v interface{}) bool { _, ok := v.(string); return ok })
	isNumber = scalar("a number", func(v interface{}) bool { _, ok := v.(float64); return ok })
)

func object(members ...member) kindCheck {
	return func(path string, v interface{}, errs []ValidationError) []ValidationError {
		if v == nil {
			return errs
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return append(errs, kindError(path, "an object", v))
		}
		for _, mem := range members {
			errs = mem.check(joinPath(path, mem.name), m[mem.name], errs)
		}
		return errs
	}
}

func listOf(elem kindCheck) kindCheck {
	return func(path string, v interface{}, errs []ValidationError) []ValidationError {
		if v == nil {
			return errs
		}
		items, ok := v.([]interface{})
		if !ok {
			return append(errs, kindError(path, "an array", v))
		}
		for i, item := range items {
			errs = elem(fmt.Sprintf("%s[%d]", path, i), item, errs)
		}
		return errs
	}
}

// mapOf checks every value of an object used as a dictionary, in key order.
func mapOf(elem kindCheck) kindCheck {
	return func(path string, v interface{}, errs []ValidationError) []ValidationError {
		if v == nil {
			return errs
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return append(errs, kindError(path, "an object", v))
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			errs = elem(fmt.Sprintf("%s[%s]", path, k), m[k], errs)
		}
		return errs
	}
}

// summaryKinds mirrors the sensor summary layout. Paths use the same
// notation as the required rules: "devices[0].ips[1]",
// "traffic.protocolCounts[tcp]".
var summaryKinds = object(
	field("sensor", object(
		field("os", isString),
		field("hostname", isString),
		field("interface", isString),
		field("localIP", isString),
	)),
	field("capture", object(
		field("startTime", isString),
		field("duration", isNumber),
		field("packetCount", isNumber),
	)),
	field("devices", listOf(object(
		field("mac", isString),
		field("ips", listOf(isString)),
		field("vendor", isString),
		field("hostname", isString),
		field("osGuess", isString),
		field("confidence", isNumber),
		field("signalsUsed", listOf(isString)),
		field("discoverySource", isString),
		field("firstSeen", isString),
		field("lastSeen", isString),
	))),
	field("traffic", object(
		field("protocolCounts", mapOf(isNumber)),
		field("topPorts", listOf(object(
			field("port", isNumber),
			field("protocol", isString),
			field("count", isNumber),
		))),
		field("topTalkers", listOf(object(
			field("ip", isString),
			field("bytesSent", isNumber),
			field("bytesReceived", isNumber),
			field("packetsSent", isNumber),
			field("packetsReceived", isNumber),
		))),
		field("dnsDomains", listOf(object(
			field("domain", isString),
			field("queryCount", isNumber),
			field("queryingIPs", listOf(isString)),
		))),
		field("destinations", listOf(object(
			field("address", isString),
			field("connectionCount", isNumber),
			field("bytesTotal", isNumber),
		))),
	)),
)

// checkKinds reports every value in doc whose JSON kind does not match the
// summary layout. It returns nil when all present values have the right kind.
func checkKinds(doc interface{}) *RequestValidationError {
	errs := summaryKinds("", doc, nil)
	if len(errs) == 0 {
		return nil
	}
	return &RequestValidationError{errors: errs}
}
