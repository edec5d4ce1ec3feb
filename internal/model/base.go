package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID identifies a record. The factory service sends numeric ids, the demo
// store uses prefixed strings, so both decode into the same type.
type ID string

// NewID generates a short demo-store id such as "dep-1f3a9c2b".
func NewID(prefix string) ID {
	return ID(prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	// Numeric id, keep its textual form
	*id = ID(string(data))
	return nil
}

// Int is an integer field that never fails to decode: numbers, numeric
// strings and null are accepted, anything else becomes 0.
type Int int

func (n *Int) UnmarshalJSON(data []byte) error {
	*n = Int(coerceFloat(data))
	return nil
}

// coerceFloat reads a JSON scalar as a number, defaulting to 0.
func coerceFloat(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// OEE is Overall Equipment Effectiveness stored as a fraction in [0, 1].
//
// The factory service and the machine form both speak percentages (85 for
// 85%), older payloads speak fractions (0.85). Decoding treats anything above
// 1 as a percentage; this is the only place the conversion happens.
type OEE float64

func (o *OEE) UnmarshalJSON(data []byte) error {
	*o = OEEFromInput(coerceFloat(data))
	return nil
}

// OEEFromInput normalises a fraction or a percentage into a fraction.
func OEEFromInput(v float64) OEE {
	if v > 1 {
		v = v / 100
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return OEE(v)
}

// Percent returns the value on a 0..100 scale for display.
func (o OEE) Percent() float64 {
	return float64(o) * 100
}
