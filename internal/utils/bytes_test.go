package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFloat64LERoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	PutFloat64LE(buf, 0, 3.14159)
	got, err := ReadFloat64LE(buf, 0)
	require.NoError(t, err)
	require.InDelta(t, 3.14159, got, 1e-12)
}

func TestReadInt64LERoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	PutInt64LE(buf, 0, -12345)
	got, err := ReadInt64LE(buf, 0)
	require.NoError(t, err)
	require.Equal(t, int64(-12345), got)
}

func TestFindNUL(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		start    int
		expected int
	}{
		{"found at start", []byte{0x00, 0x01}, 0, 0},
		{"found later", []byte{'a', 'b', 0x00}, 0, 2},
		{"not found", []byte{'a', 'b', 'c'}, 0, -1},
		{"start past nul", []byte{0x00, 'a', 0x00}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FindNUL(tt.buf, tt.start))
		})
	}
}
