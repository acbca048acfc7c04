package shared

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Payload is a decoded JSON object. A key that is present with a null value is
// distinct from an absent key.
type Payload map[string]any

// Has reports whether key was sent by the caller, even as null.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Blank reports whether key is absent, null or an all-whitespace string.
func (p Payload) Blank(key string) bool {
	return isBlank(p[key])
}

// Float parses v as a float64, falling back to def when v is missing, null, unparsable
// or not a finite number.
func Float(v any, def float64) float64 {
	f, ok := finite(v)
	if !ok {
		return def
	}
	return f
}

// Number parses v as a finite float64. ok is false when v is missing, null,
// unparsable or not finite.
func Number(v any) (float64, bool) {
	return finite(v)
}

// Int parses v as an int, falling back to def when v is missing, null, unparsable,
// not finite or outside the int32 range of an INTEGER column. Fractional input is
// truncated.
func Int(v any, def int) int {
	f, ok := finite(v)
	if !ok || f < math.MinInt32 || f > math.MaxInt32 {
		return def
	}
	return int(f)
}

// Int64 parses v as an int64 identifier. ok is false when v cannot be read as one.
func Int64(v any) (int64, bool) {
	if isBlank(v) {
		return 0, false
	}
	switch n := unwrapNumber(v).(type) {
	case string:
		i, err := cast.ToInt64E(strings.TrimSpace(n))
		return i, err == nil
	default:
		i, err := cast.ToInt64E(n)
		return i, err == nil
	}
}

// Bool parses v as a bool, falling back to def.
func Bool(v any, def bool) bool {
	if isBlank(v) {
		return def
	}
	b, err := cast.ToBoolE(unwrapNumber(v))
	if err != nil {
		return def
	}
	return b
}

// String returns v as a string, or "" for null.
func String(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(unwrapNumber(v))
}

// OptionalString returns nil for null input so the column is written as NULL.
func OptionalString(v any) *string {
	if v == nil {
		return nil
	}
	s := String(v)
	return &s
}

// RawJSON re-encodes an arbitrary decoded value for a jsonb column.
func RawJSON(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}

// NormalizeName trims and lowercases a name for uniqueness comparison only.
// A Caser keeps state, so one is built per call.
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

func finite(v any) (float64, bool) {
	if isBlank(v) {
		return 0, false
	}
	n := unwrapNumber(v)
	if str, ok := n.(string); ok {
		n = strings.TrimSpace(str)
	}
	f, err := cast.ToFloat64E(n)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

func unwrapNumber(v any) any {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return v
}
