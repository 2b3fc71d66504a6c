package bcon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/bsondoc"
	"github.com/scigolib/bsondoc/bcon"
)

func TestNew_FlatFields(t *testing.T) {
	doc, err := bcon.New(
		bcon.UTF8("name", "ada"),
		bcon.Int32("age", 36),
		bcon.Bool("active", true),
	)
	require.NoError(t, err)

	it, err := bsondoc.NewIterator(doc)
	require.NoError(t, err)

	require.True(t, it.FindKey("name"))
	require.Equal(t, "ada", it.UTF8())

	require.True(t, it.FindKey("age"))
	require.Equal(t, int32(36), it.Int32())

	require.True(t, it.FindKey("active"))
	require.Equal(t, true, it.Bool())
}

func TestNew_NestedSubDocAndArray(t *testing.T) {
	doc, err := bcon.New(
		bcon.SubDoc("address",
			bcon.UTF8("city", "oslo"),
			bcon.Int32("zip", 1),
		),
		bcon.Array("tags",
			bcon.UTF8("", "a"),
			bcon.UTF8("", "b"),
		),
	)
	require.NoError(t, err)

	it, err := bsondoc.NewIterator(doc)
	require.NoError(t, err)

	require.True(t, it.FindKey("address"))
	sub, err := it.Recurse()
	require.NoError(t, err)
	require.True(t, sub.FindKey("city"))
	require.Equal(t, "oslo", sub.UTF8())

	it2, err := bsondoc.NewIterator(doc)
	require.NoError(t, err)
	require.True(t, it2.FindKey("tags"))
	arr, err := it2.Recurse()
	require.NoError(t, err)
	require.True(t, arr.Advance())
	require.Equal(t, "0", arr.KeyString())
	require.Equal(t, "a", arr.UTF8())
	require.True(t, arr.Advance())
	require.Equal(t, "1", arr.KeyString())
	require.Equal(t, "b", arr.UTF8())
}

func TestNew_EmbeddedPrebuiltDocument(t *testing.T) {
	inner, err := bcon.New(bcon.Int32("x", 7))
	require.NoError(t, err)

	outer, err := bcon.New(bcon.Doc("inner", inner))
	require.NoError(t, err)

	it, err := bsondoc.NewIterator(outer)
	require.NoError(t, err)
	require.True(t, it.FindKey("inner"))
	sub, err := it.Recurse()
	require.NoError(t, err)
	require.True(t, sub.FindKey("x"))
	require.Equal(t, int32(7), sub.Int32())
}

func TestNew_Sentinels(t *testing.T) {
	doc, err := bcon.New(
		bcon.Null("n"),
		bcon.Undefined("u"),
		bcon.MinKey("lo"),
		bcon.MaxKey("hi"),
	)
	require.NoError(t, err)

	it, err := bsondoc.NewIterator(doc)
	require.NoError(t, err)
	require.True(t, it.Advance())
	require.Equal(t, "n", it.KeyString())
	require.True(t, it.Advance())
	require.Equal(t, "u", it.KeyString())
	require.True(t, it.Advance())
	require.Equal(t, "lo", it.KeyString())
	require.True(t, it.Advance())
	require.Equal(t, "hi", it.KeyString())
}
