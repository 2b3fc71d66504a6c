package oid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[[Size]byte]bool)
	for i := 0; i < 1000; i++ {
		id := Generate()
		require.False(t, seen[id], "duplicate id at iteration %d", i)
		seen[id] = true
	}
}

func TestGenerate_CounterIncrements(t *testing.T) {
	a := Generate()
	b := Generate()
	require.NotEqual(t, a[9:12], b[9:12])
}

func TestHexRoundTrip(t *testing.T) {
	id := Generate()
	s := Hex(id)
	require.Len(t, s, 24)

	back, err := FromHex(s)
	require.NoError(t, err)
	require.Equal(t, id, back)
}

func TestFromHex_InvalidLength(t *testing.T) {
	_, err := FromHex("abc")
	require.Error(t, err)
}

func TestFromHex_InvalidChars(t *testing.T) {
	_, err := FromHex("zzzzzzzzzzzzzzzzzzzzzzzz")
	require.Error(t, err)
}
