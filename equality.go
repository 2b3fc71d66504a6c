package bson

import (
	"bytes"

	"github.com/scigolib/bsondoc/internal/core"
)

// Equal reports whether a and b encode the same sequence of elements:
// matching keys, types, and payloads in the same order. It compares
// structurally rather than byte-for-byte, so two documents differing
// only in unused trailing capacity of their backing buffers still
// compare equal.
func Equal(a, b *Document) bool {
	ai, err := NewIterator(a)
	if err != nil {
		return false
	}
	bi, err := NewIterator(b)
	if err != nil {
		return false
	}

	for {
		aMore := ai.Advance()
		bMore := bi.Advance()
		if aMore != bMore {
			return false
		}
		if !aMore {
			break
		}
		if !elementEqual(ai, bi) {
			return false
		}
	}

	_, aErr := ai.Err()
	_, bErr := bi.Err()
	return !aErr && !bErr
}

func elementEqual(a, b *Iterator) bool {
	if a.Type() != b.Type() || !bytes.Equal(a.Key(), b.Key()) {
		return false
	}
	if a.Type() == core.TypeDocument {
		ad, _ := a.Document()
		bd, _ := b.Document()
		return Equal(ad, bd)
	}
	if a.Type() == core.TypeArray {
		ad, _ := a.Array()
		bd, _ := b.Array()
		return Equal(ad, bd)
	}
	return bytes.Equal(a.payload(), b.payload())
}

// CountElements returns the number of top-level elements in doc, or
// (0, false) if doc is structurally invalid.
func CountElements(doc *Document) (int, bool) {
	it, err := NewIterator(doc)
	if err != nil {
		return 0, false
	}
	n := 0
	for it.Advance() {
		n++
	}
	if _, isError := it.Err(); isError {
		return 0, false
	}
	return n, true
}
