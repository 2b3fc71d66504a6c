// Package bson implements a zero-copy reader and an appending builder for
// the length-prefixed, NUL-terminated binary document format used by a
// popular document database (bsonspec.org v1.1), plus a lossless
// decimal128 <-> string codec.
//
// A Document is an immutable view over already-encoded bytes; documents
// are produced either by validating caller-supplied bytes (NewFromBytes)
// or by finishing a Builder (Builder.Document). Mutation after the fact
// is limited to the Iterator's fixed-width in-place overwrites; anything
// else goes through a Builder, which grows its own backing buffer and
// hands back a new Document when done.
package bson

import (
	"fmt"

	"github.com/scigolib/bsondoc/internal/utils"
)

// MinDocumentSize is the size of the canonical empty document.
const MinDocumentSize = 5

// Document is a read-only view over a complete, length-prefixed document.
type Document struct {
	data []byte
}

// NewFromBytes wraps data as a Document, checking only that it is long
// enough to hold a header and terminator, that the declared length
// matches the slice's own length exactly, and that the last byte is the
// 0x00 terminator. It does not perform full structural validation; use
// Validate for that.
func NewFromBytes(data []byte) (*Document, error) {
	if len(data) < MinDocumentSize {
		return nil, fmt.Errorf("bson: document too short: %d bytes", len(data))
	}
	declared, err := utils.ReadInt32LE(data, 0)
	if err != nil {
		return nil, err
	}
	if int(declared) != len(data) {
		return nil, fmt.Errorf("bson: declared length %d does not match buffer length %d", declared, len(data))
	}
	if data[len(data)-1] != 0x00 {
		return nil, fmt.Errorf("bson: missing terminator byte")
	}
	return &Document{data: data}, nil
}

// Empty returns the canonical 5-byte empty document.
func Empty() *Document {
	return &Document{data: []byte{0x05, 0x00, 0x00, 0x00, 0x00}}
}

// Bytes returns the document's backing bytes. The caller must not mutate
// them; copy first if an independent, writable buffer is needed.
func (d *Document) Bytes() []byte { return d.data }

// Len returns the document's declared (and physical) length in bytes.
func (d *Document) Len() int { return len(d.data) }

// Copy returns a Document backed by a freshly allocated copy of the bytes.
func (d *Document) Copy() *Document {
	cp := make([]byte, len(d.data))
	copy(cp, d.data)
	return &Document{data: cp}
}
