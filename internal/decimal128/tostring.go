package decimal128

import (
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

// ToString renders a decimal128 bit pattern using the same plain/scientific
// selection rules as the General Decimal Arithmetic specification's
// to-scientific-string conversion: plain notation when the exponent is
// non-positive and the adjusted exponent is at least -6, scientific
// notation otherwise.
func ToString(high, low uint64) string {
	kind, negative, exponent, significand := Classify(high, low)

	switch kind {
	case KindInfinity:
		if negative {
			return "-Infinity"
		}
		return "Infinity"
	case KindNaN:
		return "NaN"
	}

	sign := ""
	if negative {
		sign = "-"
	}

	digits := extractDigits(significand)

	// A true zero with a non-zero exponent is always rendered in
	// scientific form, bypassing the plain-notation rules below.
	if digits == "0" && exponent != 0 {
		return sign + "0E" + signedExponent(exponent)
	}

	digitCount := len(digits)
	adjExp := exponent + digitCount - 1

	if exponent <= 0 && adjExp >= -6 {
		if exponent == 0 {
			return sign + digits
		}
		pointPos := digitCount + exponent
		if pointPos > 0 {
			return sign + digits[:pointPos] + "." + digits[pointPos:]
		}
		return sign + "0." + strings.Repeat("0", -pointPos) + digits
	}

	var body string
	if digitCount == 1 {
		body = digits
	} else {
		body = digits[:1] + "." + digits[1:]
	}
	return sign + body + "E" + signedExponent(adjExp)
}

func signedExponent(exp int) string {
	if exp >= 0 {
		return "+" + strconv.Itoa(exp)
	}
	return strconv.Itoa(exp)
}

// extractDigits renders a 128-bit significand as decimal digits with no
// leading zeros, peeling off nine digits at a time since 10^9 fits in a
// uint64 remainder from QuoRem64.
func extractDigits(sig uint128.Uint128) string {
	if sig.IsZero() {
		return "0"
	}

	const chunk = 1_000_000_000
	var groups []uint64
	cur := sig
	for !cur.IsZero() {
		q, r := cur.QuoRem64(chunk)
		groups = append(groups, r)
		cur = q
	}

	var sb strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		if i == len(groups)-1 {
			sb.WriteString(strconv.FormatUint(groups[i], 10))
		} else {
			sb.WriteString(pad9(groups[i]))
		}
	}
	return sb.String()
}

func pad9(v uint64) string {
	s := strconv.FormatUint(v, 10)
	if len(s) >= 9 {
		return s
	}
	return strings.Repeat("0", 9-len(s)) + s
}
