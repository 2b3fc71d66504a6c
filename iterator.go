package bson

import (
	"fmt"

	"github.com/scigolib/bsondoc/internal/core"
	"github.com/scigolib/bsondoc/internal/utils"
)

// element holds the parsed boundaries of the iterator's current element.
// payloadStart/payloadEnd bracket exactly the type's value bytes; typed
// accessors re-derive any further sub-structure (a nested doc length, a
// binary subtype byte, a regex's two strings) from that span on demand
// rather than caching per-field sub-pointers.
type element struct {
	typ          core.Type
	keyStart     int
	keyEnd       int // index of the key's terminating NUL
	payloadStart int
	payloadEnd   int
}

// Iterator is a stateless-per-step, zero-copy cursor over a document's
// encoded bytes. It never holds more state than the current element;
// Advance replaces it wholesale. A Iterator that encounters any
// validation failure becomes terminal: its document reference is
// cleared and Advance keeps returning false.
type Iterator struct {
	data      []byte
	nextOff   int
	cur       element
	hasCur    bool
	done      bool
	errOffset int
	erred     bool
}

// NewIterator initializes an Iterator over doc, positioned before the
// first element.
func NewIterator(doc *Document) (*Iterator, error) {
	return newIteratorBytes(doc.Bytes())
}

// newIteratorBytes initializes an iterator directly over raw bytes, used
// both for NewIterator and for Recurse's static child view.
func newIteratorBytes(data []byte) (*Iterator, error) {
	if len(data) < MinDocumentSize {
		return nil, fmt.Errorf("bson: document shorter than %d bytes", MinDocumentSize)
	}
	declared, err := utils.ReadInt32LE(data, 0)
	if err != nil {
		return nil, err
	}
	if int(declared) != len(data) {
		return nil, fmt.Errorf("bson: declared length %d does not match buffer length %d", declared, len(data))
	}
	return &Iterator{data: data, nextOff: 4}, nil
}

// Done reports whether the iterator has stopped advancing, whether
// cleanly (end of document) or due to a parse error. Use Err to
// distinguish the two.
func (it *Iterator) Done() bool { return it.done }

// Err returns the offset of the first offending byte if the iterator
// stopped due to a parse error, or (0, false) if it stopped cleanly or
// has not stopped.
func (it *Iterator) Err() (offset int, isError bool) {
	return it.errOffset, it.erred
}

func (it *Iterator) fail(offset int) bool {
	it.done = true
	it.erred = true
	it.errOffset = offset
	it.hasCur = false
	it.data = nil
	it.cur = element{}
	return false
}

// Advance parses the element at the current position, updates the
// iterator's state, and returns true. It returns false both at a clean
// end of document and on any validation failure; use Err to tell them
// apart.
func (it *Iterator) Advance() bool {
	if it.done {
		return false
	}

	off := it.nextOff
	if off >= len(it.data) {
		return it.fail(off)
	}

	typByte := it.data[off]
	if typByte == byte(core.TypeEOD) {
		if off != len(it.data)-1 {
			return it.fail(off)
		}
		it.done = true
		it.hasCur = false
		return false
	}

	typ := core.Type(typByte)
	if !core.IsValid(typ) {
		return it.fail(off)
	}

	keyStart := off + 1
	keyEnd := utils.FindNUL(it.data, keyStart)
	if keyEnd < 0 || keyEnd >= len(it.data)-1 {
		return it.fail(off)
	}

	payloadStart := keyEnd + 1
	payloadEnd, ok := parsePayloadEnd(it.data, off, typ, payloadStart)
	if !ok {
		return it.fail(off)
	}

	it.cur = element{
		typ:          typ,
		keyStart:     keyStart,
		keyEnd:       keyEnd,
		payloadStart: payloadStart,
		payloadEnd:   payloadEnd,
	}
	it.hasCur = true
	it.nextOff = payloadEnd
	return true
}

// parsePayloadEnd computes the end offset (exclusive) of the current
// element's value payload, applying every per-type structural check from
// the format's per-step validation rules. elementStart is the offset of
// the discriminator byte, used only for bounds-relative sanity.
func parsePayloadEnd(data []byte, elementStart int, typ core.Type, payloadStart int) (int, bool) {
	if size, ok := core.FixedSize(typ); ok {
		end := payloadStart + size
		if end > len(data) {
			return 0, false
		}
		return end, true
	}

	switch typ {
	case core.TypeUTF8, core.TypeCode, core.TypeSymbol:
		return parseLengthPrefixedString(data, payloadStart)

	case core.TypeDocument, core.TypeArray:
		return parseNestedDoc(data, payloadStart)

	case core.TypeBinary:
		return parseBinary(data, payloadStart)

	case core.TypeRegex:
		return parseRegex(data, payloadStart)

	case core.TypeDBPointer:
		return parseDBPointer(data, payloadStart)

	case core.TypeCodeWithScope:
		return parseCodeWithScope(data, payloadStart)

	default:
		return 0, false
	}
}

func parseLengthPrefixedString(data []byte, start int) (int, bool) {
	l, err := utils.ReadInt32LE(data, start)
	if err != nil {
		return 0, false
	}
	remaining := len(data) - start - 4
	if utils.ValidatePayloadLength(int(l), remaining) != nil {
		return 0, false
	}
	end := start + 4 + int(l)
	if data[end-1] != 0x00 {
		return 0, false
	}
	return end, true
}

func parseNestedDoc(data []byte, start int) (int, bool) {
	l, err := utils.ReadInt32LE(data, start)
	if err != nil || l < MinDocumentSize {
		return 0, false
	}
	end := start + int(l)
	if end > len(data) {
		return 0, false
	}
	return end, true
}

func parseBinary(data []byte, start int) (int, bool) {
	l, err := utils.ReadInt32LE(data, start)
	if err != nil || l < 0 {
		return 0, false
	}
	subtypeOff := start + 4
	if subtypeOff >= len(data) {
		return 0, false
	}
	subtype := core.BinarySubtype(data[subtypeOff])
	if subtype == core.BinaryDeprecated {
		if err := utils.ValidateBinarySubtypeTwoLength(l); err != nil {
			return 0, false
		}
	}
	end := subtypeOff + 1 + int(l)
	if end > len(data) {
		return 0, false
	}
	return end, true
}

func parseRegex(data []byte, start int) (int, bool) {
	patternEnd := utils.FindNUL(data, start)
	if patternEnd < 0 {
		return 0, false
	}
	optionsStart := patternEnd + 1
	optionsEnd := utils.FindNUL(data, optionsStart)
	if optionsEnd < 0 {
		return 0, false
	}
	return optionsEnd + 1, true
}

func parseDBPointer(data []byte, start int) (int, bool) {
	l, err := utils.ReadInt32LE(data, start)
	if err != nil {
		return 0, false
	}
	remaining := len(data) - start - 4
	if utils.ValidatePayloadLength(int(l), remaining) != nil {
		return 0, false
	}
	stringEnd := start + 4 + int(l)
	if data[stringEnd-1] != 0x00 {
		return 0, false
	}
	end := stringEnd + 12
	if end > len(data) {
		return 0, false
	}
	return end, true
}

func parseCodeWithScope(data []byte, start int) (int, bool) {
	total, err := utils.ReadInt32LE(data, start)
	if err != nil || total < 14 {
		return 0, false
	}
	end := start + int(total)
	if end > len(data) {
		return 0, false
	}
	codeLen, err := utils.ReadInt32LE(data, start+4)
	if err != nil || codeLen < 1 {
		return 0, false
	}
	codeStart := start + 8
	codeEnd := codeStart + int(codeLen)
	if codeEnd > end || data[codeEnd-1] != 0x00 {
		return 0, false
	}
	docStart := codeEnd
	docLen := int(total) - 8 - int(codeLen)
	if docLen < MinDocumentSize || docStart+docLen != end {
		return 0, false
	}
	declaredDocLen, err := utils.ReadInt32LE(data, docStart)
	if err != nil || int(declaredDocLen) != docLen {
		return 0, false
	}
	return end, true
}

// Type returns the current element's discriminator. Valid only when the
// most recent Advance returned true.
func (it *Iterator) Type() core.Type { return it.cur.typ }

// Key returns the current element's key bytes (without the terminating
// NUL). The slice aliases the document's backing buffer.
func (it *Iterator) Key() []byte {
	return it.data[it.cur.keyStart:it.cur.keyEnd]
}

// KeyString is a convenience wrapper returning Key as a string.
func (it *Iterator) KeyString() string { return string(it.Key()) }

func (it *Iterator) payload() []byte {
	return it.data[it.cur.payloadStart:it.cur.payloadEnd]
}

// Recurse produces a child iterator over the current element's nested
// document or array payload. It fails if the current element is not a
// document/array, or isn't positioned on a successfully-advanced element.
func (it *Iterator) Recurse() (*Iterator, error) {
	if !it.hasCur {
		return nil, fmt.Errorf("bson: recurse called without a current element")
	}
	if it.cur.typ != core.TypeDocument && it.cur.typ != core.TypeArray {
		return nil, fmt.Errorf("bson: recurse called on non-document/array element")
	}
	return newIteratorBytes(it.payload())
}

// FindKey advances the iterator until an element with an exactly
// matching key is found (true) or the document is exhausted (false).
// The iterator is consumed either way.
func (it *Iterator) FindKey(key string) bool {
	return it.find(key, false)
}

// FindKeyCI is like FindKey but compares keys using ASCII case folding,
// explicitly locale-independent.
func (it *Iterator) FindKeyCI(key string) bool {
	return it.find(key, true)
}

func (it *Iterator) find(key string, caseInsensitive bool) bool {
	for it.Advance() {
		if caseInsensitive {
			if asciiEqualFold(it.Key(), key) {
				return true
			}
		} else if string(it.Key()) == key {
			return true
		}
	}
	return false
}

// FindPath finds a dotted path such as "a.b.c", recursing into nested
// documents and arrays on every '.'-separated segment. It returns the
// iterator positioned on the final segment's element, or false if any
// segment is missing or an intermediate segment is not itself a
// document/array.
func (it *Iterator) FindPath(path string) bool {
	cur := it
	for {
		head, rest, hasMore := cutFirstDot(path)
		if !cur.FindKey(head) {
			return false
		}
		if !hasMore {
			*it = *cur
			return true
		}
		child, err := cur.Recurse()
		if err != nil {
			return false
		}
		cur = child
		path = rest
	}
}

func cutFirstDot(s string) (head, rest string, hasMore bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func asciiEqualFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := range b {
		if asciiLower(b[i]) != asciiLower(s[i]) {
			return false
		}
	}
	return true
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
