package numeric

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RawType is the JSON type a field had on the wire.
type RawType int

const (
	Absent RawType = iota
	Null
	String
	JSONNumber
	Bool
	Other // object or array
)

// Raw is a loosely typed wire field. Text holds the string contents for
// String fields and the literal JSON text for everything else.
type Raw struct {
	Text string
	Type RawType
}

func RawString(s string) Raw { return Raw{Text: s, Type: String} }

func RawNumber(s string) Raw { return Raw{Text: s, Type: JSONNumber} }

// Valid reports whether the field carries a value (is neither absent nor null).
func (r Raw) Valid() bool {
	return r.Type != Absent && r.Type != Null
}

// Is reports whether the field is exactly the JSON string s.
func (r Raw) Is(s string) bool {
	return r.Type == String && r.Text == s
}

// Kind is the representation a Number holds.
type Kind int

const (
	KindNull Kind = iota
	KindFloat
	KindText
)

// Number is a parsed wire number. Float numbers hold a float64 (NaN when the
// input had no numeric prefix); Text numbers keep the wire text so very large
// values such as score totals survive without precision loss.
type Number struct {
	kind    Kind
	f       float64
	s       string
	literal bool // s is a JSON number literal rather than a string
}

func NullNumber() Number { return Number{} }

func FromFloat(f float64) Number { return Number{kind: KindFloat, f: f} }

func FromText(s string) Number { return Number{kind: KindText, s: s} }

// FromLiteral keeps the text of a JSON number literal such as "1e2".
func FromLiteral(s string) Number { return Number{kind: KindText, s: s, literal: true} }

func (n Number) Kind() Kind { return n.kind }

func (n Number) IsNull() bool { return n.kind == KindNull }

// Float64 returns the value as a float64. Null numbers are NaN.
func (n Number) Float64() float64 {
	switch n.kind {
	case KindFloat:
		return n.f
	case KindText:
		return ParseFloat(n.s)
	default:
		return math.NaN()
	}
}

// Int re-parses the value as a base-10 integer. The result is integral or NaN.
func (n Number) Int() float64 {
	switch n.kind {
	case KindFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return math.NaN()
		}
		return math.Trunc(n.f)
	case KindText:
		if n.literal {
			return FromFloat(ParseFloat(n.s)).Int()
		}
		return ParseInt(n.s)
	default:
		return math.NaN()
	}
}

func (n Number) String() string {
	switch n.kind {
	case KindFloat:
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	case KindText:
		return n.s
	default:
		return ""
	}
}

// MarshalJSON writes floats as JSON numbers, text as JSON strings and null
// (or a non-finite float) as null.
func (n Number) MarshalJSON() ([]byte, error) {
	v, _ := n.MarshalYAML()
	return json.Marshal(v)
}

func (n Number) MarshalYAML() (any, error) {
	switch n.kind {
	case KindFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return nil, nil
		}
		return n.f, nil
	case KindText:
		return n.s, nil
	default:
		return nil, nil
	}
}

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseFloat parses the longest numeric prefix of s after leading whitespace.
// It returns NaN when s has no numeric prefix.
func ParseFloat(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// out-of-range values come back as ±Inf, which is what we want
	f, _ := strconv.ParseFloat(m, 64)
	return f
}

// ParseInt parses the leading base-10 digits of s after leading whitespace.
// It returns NaN when s has no digits.
func ParseInt(s string) float64 {
	m := intPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if m == "" {
		return math.NaN()
	}
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
