package totals

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a lenient numeric form value. It accepts JSON numbers, numeric
// strings such as "1,250.50", null, empty strings and garbage, and falls back
// to 0 instead of failing. Decoding a Number never returns an error.
type Number float64

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(s))
		return nil
	}
	*n = Number(ParseNumber(string(raw)))
	return nil
}

// ParseNumber parses a user-entered amount, returning 0 when s is not a
// finite number. Thousands separators and surrounding spaces are ignored.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// OptionalNumber is a Number whose absence is meaningful. A missing or null
// value decodes to Valid=false; any other value decodes as a Number.
type OptionalNumber struct {
	Value Number
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*o = OptionalNumber{}
		return nil
	}
	o.Valid = true
	return o.Value.UnmarshalJSON(data)
}

// MarshalJSON implements json.Marshaler.
func (o OptionalNumber) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(float64(o.Value))
}

// Ptr returns nil when the value is absent.
func (o OptionalNumber) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	f := float64(o.Value)
	return &f
}
