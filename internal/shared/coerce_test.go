package shared

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 7},
		{"blank string", "  ", 7},
		{"garbage", "abc", 7},
		{"numeric string", "12.5", 12.5},
		{"json number", json.Number("99.99"), 99.99},
		{"float", 3.25, 3.25},
		{"int", 4, 4},
		{"nan string", "NaN", 7},
		{"nan json number", json.Number("NaN"), 7},
		{"inf string", "Inf", 7},
		{"infinity string", "-infinity", 7},
		{"nan float", math.NaN(), 7},
		{"overflow", "1e400", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Float(tt.in, 7), 1e-9)
		})
	}
}

func TestIntTruncatesAndFallsBack(t *testing.T) {
	assert.Equal(t, 1, Int(nil, 1))
	assert.Equal(t, 1, Int("many", 1))
	assert.Equal(t, 3, Int("3", 1))
	assert.Equal(t, 2, Int("2.9", 1))
	assert.Equal(t, 0, Int(json.Number("0"), 1))
	assert.Equal(t, 5, Int(5.0, 1))
	assert.Equal(t, -4, Int("-4", 1))
}

func TestIntRejectsNonFiniteAndOutOfRange(t *testing.T) {
	for _, in := range []any{"NaN", json.Number("NaN"), "Inf", "infinity", math.Inf(1), "3000000000", json.Number("-2147483649")} {
		assert.Equal(t, 1, Int(in, 1), "%v", in)
	}
	assert.Equal(t, math.MaxInt32, Int(json.Number("2147483647"), 1))
}

func TestNumber(t *testing.T) {
	f, ok := Number(json.Number("12.5"))
	require.True(t, ok)
	assert.Equal(t, 12.5, f)

	for _, in := range []any{nil, "", "ten", "NaN", math.Inf(-1)} {
		_, ok = Number(in)
		assert.False(t, ok, "%v", in)
	}
}

func TestInt64(t *testing.T) {
	id, ok := Int64(json.Number("42"))
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	id, ok = Int64(" 17 ")
	require.True(t, ok)
	assert.Equal(t, int64(17), id)

	_, ok = Int64("seventeen")
	assert.False(t, ok)

	_, ok = Int64(nil)
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool("false", true))
	assert.True(t, Bool("1", false))
	assert.False(t, Bool(json.Number("0"), true))
	assert.True(t, Bool("maybe", true))
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(nil))

	s := OptionalString("hello")
	require.NotNil(t, s)
	assert.Equal(t, "hello", *s)

	n := OptionalString(json.Number("12"))
	require.NotNil(t, n)
	assert.Equal(t, "12", *n)
}

func TestRawJSON(t *testing.T) {
	raw, err := RawJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = RawJSON(map[string]any{"size": "M"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":"M"}`, string(raw))

	raw, err = RawJSON(json.RawMessage(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(raw))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "vintage leather bag", NormalizeName("  Vintage LEATHER Bag "))
	assert.Equal(t, NormalizeName("Chair"), NormalizeName(" chair"))
}

func TestPayloadHasAndBlank(t *testing.T) {
	p := Payload{"email": nil, "name": "  ", "category": "Shoes"}

	assert.True(t, p.Has("email"))
	assert.False(t, p.Has("address"))

	assert.True(t, p.Blank("email"))
	assert.True(t, p.Blank("name"))
	assert.True(t, p.Blank("address"))
	assert.False(t, p.Blank("category"))
}
