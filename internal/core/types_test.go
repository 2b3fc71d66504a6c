package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	valid := []Type{
		TypeDouble, TypeUTF8, TypeDocument, TypeArray, TypeBinary,
		TypeUndefined, TypeOID, TypeBool, TypeDateTime, TypeNull,
		TypeRegex, TypeDBPointer, TypeCode, TypeSymbol, TypeCodeWithScope,
		TypeInt32, TypeTimestamp, TypeInt64, TypeMinKey, TypeMaxKey,
	}
	for _, tp := range valid {
		require.True(t, IsValid(tp), "%v should be valid", tp)
	}

	require.False(t, IsValid(TypeEOD), "EOD is a terminator, not an element type")
	require.False(t, IsValid(Type(0x20)), "unknown discriminator must be rejected")
	require.False(t, IsValid(Type(0x99)))
}

func TestFixedSize(t *testing.T) {
	tests := []struct {
		t        Type
		wantSize int
		wantOK   bool
	}{
		{TypeDouble, 8, true},
		{TypeDateTime, 8, true},
		{TypeInt64, 8, true},
		{TypeTimestamp, 8, true},
		{TypeInt32, 4, true},
		{TypeOID, 12, true},
		{TypeBool, 1, true},
		{TypeUndefined, 0, true},
		{TypeNull, 0, true},
		{TypeMinKey, 0, true},
		{TypeMaxKey, 0, true},
		{TypeUTF8, 0, false},
		{TypeDocument, 0, false},
		{TypeBinary, 0, false},
		{TypeRegex, 0, false},
	}
	for _, tt := range tests {
		size, ok := FixedSize(tt.t)
		require.Equal(t, tt.wantOK, ok, "%v ok", tt.t)
		if tt.wantOK {
			require.Equal(t, tt.wantSize, size, "%v size", tt.t)
		}
	}
}

func TestHasUTF8LengthPrefix(t *testing.T) {
	require.True(t, HasUTF8LengthPrefix(TypeUTF8))
	require.True(t, HasUTF8LengthPrefix(TypeCode))
	require.True(t, HasUTF8LengthPrefix(TypeSymbol))
	require.False(t, HasUTF8LengthPrefix(TypeBinary))
	require.False(t, HasUTF8LengthPrefix(TypeRegex))
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "int32", TypeInt32.String())
	require.Equal(t, "code-with-scope", TypeCodeWithScope.String())
	require.Contains(t, Type(0x55).String(), "unknown")
}
