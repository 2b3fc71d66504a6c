package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_EmptyDocument(t *testing.T) {
	doc := Empty()
	it, err := NewIterator(doc)
	require.NoError(t, err)
	require.False(t, it.Advance())
	_, isErr := it.Err()
	require.False(t, isErr)
}

func TestIterator_DeclaredLengthExceedsBuffer(t *testing.T) {
	// declared length 6 but buffer is only 5 bytes.
	_, err := newIteratorBytes([]byte{0x06, 0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestIterator_CorruptStringLength(t *testing.T) {
	// utf8 "a" with declared length pointing past document end.
	data := []byte{
		0x00, 0x00, 0x00, 0x00, // length header, fixed below
		0x02, 'a', 0x00, // discriminator utf8, key "a"
		0xFF, 0x00, 0x00, 0x00, // declared string length way too large
		'x', 0x00,
		0x00,
	}
	putLen(data)

	it, err := newIteratorBytes(data)
	require.NoError(t, err)
	require.False(t, it.Advance())
	offset, isErr := it.Err()
	require.True(t, isErr)
	require.Equal(t, 4, offset, "offset equal to the element's discriminator")
}

func TestIterator_UnknownDiscriminator(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x99, 'a', 0x00, 0x00}
	putLen(data)
	it, err := newIteratorBytes(data)
	require.NoError(t, err)
	require.False(t, it.Advance())
	_, isErr := it.Err()
	require.True(t, isErr)
}

func TestIterator_FindPath(t *testing.T) {
	outer := NewBuilder()
	require.NoError(t, outer.OpenDocument("b"))
	require.NoError(t, outer.AppendInt32("c", 5))
	require.NoError(t, outer.CloseScope())
	doc, err := outer.Document()
	require.NoError(t, err)

	it, err := NewIterator(doc)
	require.NoError(t, err)
	require.True(t, it.FindPath("b.c"))
	require.Equal(t, int32(5), it.Int32())
}

func TestIterator_FindKeyCI(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AppendInt32("Name", 1))
	doc, err := b.Document()
	require.NoError(t, err)

	it, err := NewIterator(doc)
	require.NoError(t, err)
	require.True(t, it.FindKeyCI("name"))
}

func TestIterator_AsBoolAsInt64(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AppendDouble("d", 0.0))
	require.NoError(t, b.AppendUTF8("s", "x"))
	require.NoError(t, b.AppendNull("n"))
	doc, err := b.Document()
	require.NoError(t, err)

	it, err := NewIterator(doc)
	require.NoError(t, err)

	require.True(t, it.Advance())
	require.False(t, it.AsBool())
	require.Equal(t, int64(0), it.AsInt64())

	require.True(t, it.Advance())
	require.True(t, it.AsBool())
	require.Equal(t, int64(0), it.AsInt64())

	require.True(t, it.Advance())
	require.False(t, it.AsBool())
}

// putLen writes buf's own length into its first 4 bytes as a
// little-endian int32, used by hand-built corrupt-input fixtures.
func putLen(buf []byte) {
	n := int32(len(buf))
	buf[0] = byte(n)
	buf[1] = byte(n >> 8)
	buf[2] = byte(n >> 16)
	buf[3] = byte(n >> 24)
}
