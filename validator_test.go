package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_Clean(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AppendUTF8("name", "ok"))
	doc, err := b.Document()
	require.NoError(t, err)

	_, clean := Validate(doc, FlagUTF8|FlagDollarKeys|FlagDotKeys)
	require.True(t, clean)
}

func TestValidate_DollarKeyRejected(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AppendInt32("$where", 1))
	doc, err := b.Document()
	require.NoError(t, err)

	_, clean := Validate(doc, FlagDollarKeys)
	require.False(t, clean)

	_, clean = Validate(doc, 0)
	require.True(t, clean)
}

func TestValidate_DotKeyRejected(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AppendInt32("a.b", 1))
	doc, err := b.Document()
	require.NoError(t, err)

	_, clean := Validate(doc, FlagDotKeys)
	require.False(t, clean)
}

func TestValidate_NestedDocumentChecked(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.OpenDocument("sub"))
	require.NoError(t, b.AppendInt32("$bad", 1))
	require.NoError(t, b.CloseScope())
	doc, err := b.Document()
	require.NoError(t, err)

	_, clean := Validate(doc, FlagDollarKeys)
	require.False(t, clean)
}

func TestValidate_UTF8AllowNull(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AppendUTF8("s", "a\x00b"))
	doc, err := b.Document()
	require.NoError(t, err)

	_, clean := Validate(doc, FlagUTF8)
	require.False(t, clean)

	_, clean = Validate(doc, FlagUTF8|FlagUTF8AllowNull)
	require.True(t, clean)
}
