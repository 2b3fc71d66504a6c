package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimal128_One(t *testing.T) {
	d := Decimal128{High: 0x3040000000000000, Low: 0x0000000000000001}
	require.Equal(t, "1", d.String())
}

func TestDecimal128_TinyNegative(t *testing.T) {
	d := Decimal128{High: 0x8000000000000000, Low: 0x0000000000000001}
	require.Equal(t, "-1E-6176", d.String())
}

func TestNewDecimal128FromString_RoundTrip(t *testing.T) {
	d := NewDecimal128FromString("1")
	require.Equal(t, uint64(0x3040000000000000), d.High)
	require.Equal(t, uint64(1), d.Low)
	require.Equal(t, "1", d.String())
}
