package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"  42.5", 42.5},
		{"12.5abc", 12.5},
		{"-3", -3},
		{".5", 0.5},
		{"1e3", 1000},
		{"1e", 1},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFloat(tt.in), tt.in)
	}

	for _, in := range []string{"", "abc", " ", "-", "."} {
		assert.True(t, math.IsNaN(ParseFloat(in)), in)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, float64(24), ParseInt("24"))
	assert.Equal(t, float64(24), ParseInt(" 24mods"))
	assert.Equal(t, float64(12), ParseInt("12.9"))
	assert.Equal(t, float64(-7), ParseInt("-7"))
	assert.True(t, math.IsNaN(ParseInt("")))
	assert.True(t, math.IsNaN(ParseInt("x24")))
}

func TestParsers_NullPassthrough(t *testing.T) {
	for _, p := range []Parser{FloatParser{}, TextParser{}} {
		assert.True(t, p.Parse(Raw{Type: Absent}).IsNull())
		assert.True(t, p.Parse(Raw{Type: Null}).IsNull())
	}
}

func TestFor(t *testing.T) {
	assert.IsType(t, FloatParser{}, For(true))
	assert.IsType(t, TextParser{}, For(false))
}

func TestFloatParser(t *testing.T) {
	n := FloatParser{}.Parse(RawString("1337"))
	assert.Equal(t, KindFloat, n.Kind())
	assert.Equal(t, float64(1337), n.Float64())
	assert.Equal(t, "1337", n.String())

	n = FloatParser{}.Parse(RawString("nope"))
	assert.True(t, math.IsNaN(n.Float64()))
	assert.False(t, n.IsNull())
}

func TestTextParser_KeepsPrecision(t *testing.T) {
	big := "123456789012345678901234567890"
	n := TextParser{}.Parse(RawNumber(big))
	assert.Equal(t, KindText, n.Kind())
	assert.Equal(t, big, n.String())
}

func TestNumber_Int(t *testing.T) {
	assert.Equal(t, float64(100), FromText("100").Int())
	assert.Equal(t, float64(100), FromFloat(100.7).Int())
	assert.True(t, math.IsNaN(FromFloat(math.NaN()).Int()))
	assert.True(t, math.IsNaN(FromFloat(math.Inf(1)).Int()))
	assert.True(t, math.IsNaN(NullNumber().Int()))
	assert.True(t, math.IsNaN(FromText("").Int()))
}

func TestNumber_IntExponentLiteral(t *testing.T) {
	n := TextParser{}.Parse(RawNumber("1e2"))
	assert.Equal(t, "1e2", n.String())
	assert.Equal(t, float64(100), n.Int())
	assert.Equal(t, float64(2), TextParser{}.Parse(RawNumber("2.9")).Int())

	// a string keeps plain prefix semantics
	assert.Equal(t, float64(1), TextParser{}.Parse(RawString("1e2")).Int())
}

func TestNumber_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Number{
		"f":   FromFloat(1.5),
		"nan": FromFloat(math.NaN()),
		"t":   FromText("900"),
		"n":   NullNumber(),
	})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"f":1.5,"nan":null,"t":"900","n":null}`, string(out))
}

func TestRaw(t *testing.T) {
	assert.True(t, RawString("1").Is("1"))
	assert.False(t, RawNumber("1").Is("1"))
	assert.False(t, Raw{Type: Absent}.Valid())
	assert.False(t, Raw{Type: Null}.Valid())
	assert.True(t, RawString("").Valid())
}
