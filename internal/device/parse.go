package device

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// payload keys sent by the device firmware
const (
	keyVoltage   = "voltage_V"
	keyCurrent   = "current_mA"
	keyPower     = "power_mW"
	keyEnergy    = "energy_Joules"
	keyPotential = "potentialE_Joules"
	keyStatus    = "status"
	keyTarget    = "target_V"
	keyTimestamp = "timestamp"
)

// parseNumber coerces a raw JSON value the lenient way: numbers pass through,
// strings are read up to the longest numeric prefix, anything else is NaN.
func parseNumber(raw json.RawMessage, ok bool) float64 {
	if !ok {
		return math.NaN()
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return math.NaN()
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return math.NaN()
		}
		return parseLeadingFloat(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return parseLeadingFloat(string(raw))
	default:
		return math.NaN()
	}
}

// parseLeadingFloat parses the longest prefix of s (after leading whitespace)
// that forms a decimal literal. "Infinity" with an optional sign is accepted.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if s == "" {
		return math.NaN()
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// out of range values come back as ±Inf with ErrRange
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseText returns strings verbatim and any other JSON value as its raw text.
func parseText(raw json.RawMessage, ok bool) string {
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
