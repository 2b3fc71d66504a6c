package decimal128

import (
	"strings"

	"lukechampine.com/uint128"
)

// FromString parses a decimal128 source string and returns its bit
// pattern. Malformed input — empty, a lone '.', a stray 'E', or trailing
// garbage — is not an error: it is represented as NaN, matching the
// format's own to-string output for that kind.
func FromString(s string) (high, low uint64) {
	negative, body, ok := splitSign(s)
	if !ok {
		return NaN()
	}

	lower := strings.ToLower(body)
	if lower == "infinity" || lower == "inf" {
		return Infinity(negative)
	}
	if lower == "nan" {
		return NaN()
	}

	intPart, fracPart, expPart, hasExp, ok := splitNumeric(body)
	if !ok {
		return NaN()
	}
	if intPart == "" && fracPart == "" {
		return NaN()
	}

	statedExp := 0
	if hasExp {
		v, ok := parseSignedInt(expPart)
		if !ok {
			return NaN()
		}
		statedExp = v
	}

	combined := intPart + fracPart
	effectiveExp := statedExp - len(fracPart)

	stripped := strings.TrimLeft(combined, "0")
	if stripped == "" {
		stripped = "0"
	}

	var significand uint128.Uint128
	if stripped != "0" && len(stripped) > 34 {
		dropped := len(stripped) - 34
		kept := stripped[:34]
		rest := stripped[34:]
		significand = accumulate(kept)
		if roundHalfToEven(rest, kept[len(kept)-1]) {
			significand = significand.Add64(1)
			if len(extractDigits(significand)) > 34 {
				significand, _ = significand.QuoRem64(10)
				dropped++
			}
		}
		effectiveExp += dropped
	} else {
		significand = accumulate(stripped)
	}

	for effectiveExp > ExponentMax {
		if significand.IsZero() {
			effectiveExp = ExponentMax
			break
		}
		digits := extractDigits(significand)
		if digits == "0" || digits[len(digits)-1] != '0' {
			return Infinity(negative)
		}
		significand, _ = significand.QuoRem64(10)
		effectiveExp++
	}
	if effectiveExp < ExponentMin {
		significand = uint128.Zero
		effectiveExp = ExponentMin
	}

	return Compose(negative, effectiveExp, significand)
}

// roundHalfToEven decides whether to round the kept digit string up given
// the dropped tail "rest" (its first digit is the rounding digit, the
// remainder determines whether the boundary is exact) and the last kept
// digit (to break exact ties toward even).
func roundHalfToEven(rest string, lastKept byte) bool {
	if rest == "" {
		return false
	}
	roundDigit := rest[0]
	if roundDigit > '5' {
		return true
	}
	if roundDigit < '5' {
		return false
	}
	if strings.ContainsAny(rest[1:], "123456789") {
		return true
	}
	return (lastKept-'0')%2 == 1
}

func accumulate(digits string) uint128.Uint128 {
	sig := uint128.Zero
	for i := 0; i < len(digits); i++ {
		sig = sig.Mul64(10).Add64(uint64(digits[i] - '0'))
	}
	return sig
}

func splitSign(s string) (negative bool, rest string, ok bool) {
	if s == "" {
		return false, "", false
	}
	switch s[0] {
	case '+':
		return false, s[1:], true
	case '-':
		return true, s[1:], true
	default:
		return false, s, true
	}
}

// splitNumeric splits body into integer digits, fractional digits, and an
// optional exponent, validating that only digits, at most one '.', and at
// most one [eE] exponent marker appear, with no trailing garbage.
func splitNumeric(body string) (intPart, fracPart, expPart string, hasExp, ok bool) {
	i := 0
	start := i
	for i < len(body) && isDigit(body[i]) {
		i++
	}
	intPart = body[start:i]

	if i < len(body) && body[i] == '.' {
		i++
		start = i
		for i < len(body) && isDigit(body[i]) {
			i++
		}
		fracPart = body[start:i]
	}

	if i < len(body) && (body[i] == 'e' || body[i] == 'E') {
		i++
		expStart := i
		if i < len(body) && (body[i] == '+' || body[i] == '-') {
			i++
		}
		digitsStart := i
		for i < len(body) && isDigit(body[i]) {
			i++
		}
		if i == digitsStart {
			return "", "", "", false, false
		}
		expPart = body[expStart:i]
		hasExp = true
	}

	if i != len(body) {
		return "", "", "", false, false
	}
	return intPart, fracPart, expPart, hasExp, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseSignedInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i = 1
	}
	if i == len(s) {
		return 0, false
	}
	v := 0
	for ; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	if neg {
		v = -v
	}
	return v, true
}
