package decimal128

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToString_One(t *testing.T) {
	got := ToString(0x3040000000000000, 0x0000000000000001)
	require.Equal(t, "1", got)
}

func TestToString_TinyNegative(t *testing.T) {
	got := ToString(0x8000000000000000, 0x0000000000000001)
	require.Equal(t, "-1E-6176", got)
}

func TestToString_Infinity(t *testing.T) {
	high, low := Infinity(false)
	require.Equal(t, "Infinity", ToString(high, low))

	high, low = Infinity(true)
	require.Equal(t, "-Infinity", ToString(high, low))
}

func TestToString_NaN(t *testing.T) {
	high, low := NaN()
	require.Equal(t, "NaN", ToString(high, low))
}

func TestToString_ZeroWithExponent(t *testing.T) {
	high, low := Compose(false, -3, accumulate("0"))
	require.Equal(t, "0E-3", ToString(high, low))
}

func TestToString_ZeroExactExponent(t *testing.T) {
	high, low := Compose(false, 0, accumulate("0"))
	require.Equal(t, "0", ToString(high, low))
}

func TestFromString_RoundTrip(t *testing.T) {
	cases := []string{
		"1", "-1", "0", "123", "-123.456", "3.14159",
		"1.23E+10", "5E-10", "100", "0.001",
	}
	for _, s := range cases {
		high, low := FromString(s)
		got := ToString(high, low)
		require.Equal(t, s, got, "round trip for %q", s)
	}
}

func TestFromString_Infinity(t *testing.T) {
	high, low := FromString("Infinity")
	require.Equal(t, "Infinity", ToString(high, low))

	high, low = FromString("-Infinity")
	require.Equal(t, "-Infinity", ToString(high, low))

	high, low = FromString("inf")
	require.Equal(t, "Infinity", ToString(high, low))
}

func TestFromString_Malformed(t *testing.T) {
	malformed := []string{"", ".", "1.2.3", "1E", "1EE5", "abc", "1.2Xe5", "--1"}
	for _, s := range malformed {
		high, low := FromString(s)
		require.Equal(t, "NaN", ToString(high, low), "input %q should parse as NaN", s)
	}
}

func TestFromString_NaNVariants(t *testing.T) {
	for _, s := range []string{"NaN", "nan", "-NaN", "NAN"} {
		high, low := FromString(s)
		require.Equal(t, "NaN", ToString(high, low))
	}
}

func TestFromString_ExponentClampOverflow(t *testing.T) {
	high, low := FromString("1E10000")
	require.Equal(t, "Infinity", ToString(high, low))
}

func TestFromString_ExponentClampUnderflow(t *testing.T) {
	high, low := FromString("1E-10000")
	require.Equal(t, "0E-6176", ToString(high, low))
}

func TestFromString_TruncatesWithRoundHalfToEven(t *testing.T) {
	// 35 significant digits, rounding digit exactly 5 with nothing after,
	// last kept digit 4 (even) -> no round up.
	high, low := FromString("12345678901234567890123456789012345")
	require.Equal(t, "1.234567890123456789012345678901234E+34", ToString(high, low))
}

func TestClassify_Finite(t *testing.T) {
	kind, negative, exponent, sig := Classify(0x3040000000000000, 1)
	require.Equal(t, KindFinite, kind)
	require.False(t, negative)
	require.Equal(t, 0, exponent)
	require.Equal(t, uint64(1), sig.Lo)
	require.Equal(t, uint64(0), sig.Hi)
}
