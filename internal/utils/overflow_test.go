package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckAdditionOverflow(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		wantErr bool
	}{
		{"no overflow - small numbers", 10, 20, false},
		{"no overflow - both zero", 0, 0, false},
		{"overflow - exceeds max document size", MaxDocumentSize, 1, true},
		{"overflow - negative operand", -1, 5, true},
		{"boundary - exact max", MaxDocumentSize, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAdditionOverflow(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateNewSize(t *testing.T) {
	require.NoError(t, ValidateNewSize(5))
	require.NoError(t, ValidateNewSize(MaxDocumentSize))
	require.Error(t, ValidateNewSize(MaxDocumentSize+1))
	require.Error(t, ValidateNewSize(-1))
}

func TestValidatePayloadLength(t *testing.T) {
	require.NoError(t, ValidatePayloadLength(1, 10))
	require.Error(t, ValidatePayloadLength(0, 10), "declared length 0 has no room for trailing NUL")
	require.Error(t, ValidatePayloadLength(20, 10), "declared length exceeds remaining bytes")
}

func TestValidateBinarySubtypeTwoLength(t *testing.T) {
	require.NoError(t, ValidateBinarySubtypeTwoLength(4))
	require.NoError(t, ValidateBinarySubtypeTwoLength(100))
	require.Error(t, ValidateBinarySubtypeTwoLength(3), "outer length below 4 cannot hold inner length prefix")
	require.Error(t, ValidateBinarySubtypeTwoLength(0))
}
