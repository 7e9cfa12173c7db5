package numeric

// Parser converts a raw wire field into a Number. Implementations must pass
// absent and null fields through as a null Number.
type Parser interface {
	Parse(r Raw) Number
}

// FloatParser produces native float64 numbers.
type FloatParser struct{}

func (FloatParser) Parse(r Raw) Number {
	if !r.Valid() {
		return NullNumber()
	}
	return FromFloat(ParseFloat(r.Text))
}

// TextParser keeps the wire text untouched.
type TextParser struct{}

func (TextParser) Parse(r Raw) Number {
	if !r.Valid() {
		return NullNumber()
	}
	if r.Type == JSONNumber {
		return FromLiteral(r.Text)
	}
	return FromText(r.Text)
}

// For returns the parser selected by the parse-numeric setting.
func For(parseNumeric bool) Parser {
	if parseNumeric {
		return FloatParser{}
	}
	return TextParser{}
}
