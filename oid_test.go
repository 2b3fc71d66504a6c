package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectID_HexRoundTrip(t *testing.T) {
	id := NewObjectID()
	s := id.String()
	require.Len(t, s, 24)

	back, err := ObjectIDFromHex(s)
	require.NoError(t, err)
	require.Equal(t, id, back)
}

func TestObjectID_Unique(t *testing.T) {
	a := NewObjectID()
	b := NewObjectID()
	require.NotEqual(t, a, b)
}
