// Package writer provides the growable backing buffer used to
// incrementally construct a well-formed document.
//
// Buffer keeps the invariant that its bytes are, at every point between
// calls, a valid length-prefixed, NUL-terminated document: the buffer ends
// in one terminator per open scope (innermost first), every append inserts
// new content just before the innermost scope's terminator, and every
// enclosing scope's length field is patched in the same step. Growth is geometric because it rides on Go's
// own slice append, whose doubling policy is deliberately left
// unobservable here, matching the teacher's end-of-file allocator design.
package writer

import (
	"fmt"
	"slices"

	"github.com/scigolib/bsondoc/internal/utils"
)

// emptyDocument is the canonical 5-byte empty document: a length of 5
// followed by the terminator.
var emptyDocument = []byte{0x05, 0x00, 0x00, 0x00, 0x00}

// scopeFrame tracks one open document/array scope: the offset of its
// 4-byte length field within Buffer.data.
type scopeFrame struct {
	lengthOffset int
	isArray      bool
	nextIndex    int // next implicit array index, for sugar layers
}

// Buffer is a growable byte buffer that is always a well-formed document.
// It is not safe for concurrent use; the single-writer model from the
// package's sharing policy applies.
type Buffer struct {
	data   []byte
	scopes []scopeFrame
}

// NewBuffer returns a Buffer already containing the 5-byte empty document.
func NewBuffer() *Buffer {
	b := &Buffer{
		data: append([]byte(nil), emptyDocument...),
	}
	b.scopes = []scopeFrame{{lengthOffset: 0}}
	return b
}

// NewBufferFromBytes wraps existing, already-valid document bytes for
// appending (used when a caller hands the builder a document to extend).
// The caller is responsible for having validated data beforehand; this
// constructor trusts it, the same contract spec.md's builder places on
// append-from-iterator copies.
func NewBufferFromBytes(data []byte) *Buffer {
	b := &Buffer{
		data: append([]byte(nil), data...),
	}
	b.scopes = []scopeFrame{{lengthOffset: 0}}
	return b
}

// Bytes returns the current backing bytes. The slice is owned by the
// Buffer; callers must copy before further mutation if they need a
// stable snapshot.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the current total length of the (possibly still open)
// document.
func (b *Buffer) Len() int { return len(b.data) }

// Depth returns the number of currently open nested scopes, not counting
// the implicit root scope.
func (b *Buffer) Depth() int { return len(b.scopes) - 1 }

// AppendElement inserts content just before the current innermost scope's
// terminator, patching every open scope's length field by the resulting
// growth. content must not itself
// end in a reused terminator byte (ordinary element bytes, not a scope
// placeholder).
func (b *Buffer) AppendElement(content []byte) (offset int, err error) {
	if err := utils.CheckAdditionOverflow(len(b.data), len(content)); err != nil {
		return 0, err
	}
	newLen := len(b.data) + len(content)
	if err := utils.ValidateNewSize(newLen); err != nil {
		return 0, err
	}

	offset = len(b.data) - len(b.scopes)
	b.data = slices.Insert(b.data, offset, content...)

	b.patchFrames(len(content))
	return offset, nil
}

// OpenScope inserts headerContent — a discriminator byte, key, NUL, and a
// 5-byte empty-document placeholder — just before the current innermost
// scope's terminator; the placeholder's last byte becomes the new scope's
// own terminator. It pushes a new scope frame pointing at the placeholder's
// length field and returns its offset.
func (b *Buffer) OpenScope(headerContent []byte, isArray bool) (placeholderOffset int, err error) {
	if b.Depth() >= utils.MaxScopeDepth {
		return 0, fmt.Errorf("scope stack overflow: depth limit %d reached", utils.MaxScopeDepth)
	}

	if err := utils.CheckAdditionOverflow(len(b.data), len(headerContent)); err != nil {
		return 0, err
	}
	newLen := len(b.data) + len(headerContent)
	if err := utils.ValidateNewSize(newLen); err != nil {
		return 0, err
	}

	insertOffset := len(b.data) - len(b.scopes)
	b.data = slices.Insert(b.data, insertOffset, headerContent...)

	b.patchFrames(len(headerContent))

	placeholderOffset = insertOffset + len(headerContent) - len(emptyDocument)
	b.scopes = append(b.scopes, scopeFrame{lengthOffset: placeholderOffset, isArray: isArray})
	return placeholderOffset, nil
}

// CloseScope pops the innermost open scope. Its length field is already
// accurate: every AppendElement/OpenScope call while it was the innermost
// scope patched it along with every other then-open ancestor.
func (b *Buffer) CloseScope() error {
	if b.Depth() == 0 {
		return fmt.Errorf("no open scope to close")
	}
	b.scopes = b.scopes[:len(b.scopes)-1]
	return nil
}

// NextArrayIndex returns the implicit integer index for the next element
// of the innermost scope (valid only when it is an array scope) and
// advances the counter; callers render it as the decimal-string key.
func (b *Buffer) NextArrayIndex() (int, bool) {
	if b.Depth() == 0 {
		return 0, false
	}
	top := &b.scopes[len(b.scopes)-1]
	if !top.isArray {
		return 0, false
	}
	idx := top.nextIndex
	top.nextIndex++
	return idx, true
}

// patchFrames adds delta to every currently open scope's stored 4-byte
// length field, keeping the whole chain of enclosing documents valid.
func (b *Buffer) patchFrames(delta int) {
	for _, f := range b.scopes {
		cur, err := utils.ReadInt32LE(b.data, f.lengthOffset)
		if err != nil {
			// Frames always point within already-written bytes; a read
			// failure here means an invariant was broken elsewhere.
			panic(fmt.Sprintf("writer: corrupt scope frame at %d: %v", f.lengthOffset, err))
		}
		utils.PutInt32LE(b.data, f.lengthOffset, cur+int32(delta))
	}
}
