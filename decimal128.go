package bson

import "github.com/scigolib/bsondoc/internal/decimal128"

// Decimal128 is a 128-bit IEEE-754-2008 decimal floating point value,
// stored as the two 64-bit halves used on the wire.
type Decimal128 struct {
	High, Low uint64
}

// NewDecimal128FromString parses s into a Decimal128, per the format's
// from-string tokenization rules. Malformed input yields a NaN value
// rather than an error.
func NewDecimal128FromString(s string) Decimal128 {
	high, low := decimal128.FromString(s)
	return Decimal128{High: high, Low: low}
}

// String renders d using the format's plain/scientific selection rules.
// The result is at most 44 characters.
func (d Decimal128) String() string {
	return decimal128.ToString(d.High, d.Low)
}
