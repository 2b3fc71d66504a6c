package bson

import (
	"fmt"

	"github.com/scigolib/bsondoc/internal/core"
	"github.com/scigolib/bsondoc/internal/oid"
	"github.com/scigolib/bsondoc/internal/utils"
	"github.com/scigolib/bsondoc/internal/writer"
)

// Builder incrementally constructs a well-formed document. Its backing
// buffer already contains the canonical empty document on construction,
// and every append operation leaves it a valid document: growing it,
// writing the new element just before the terminator, and patching the
// length header (and every open ancestor scope's header) in the same
// step.
type Builder struct {
	buf *writer.Buffer
}

// NewBuilder returns a Builder for a new, empty document.
func NewBuilder() *Builder {
	return &Builder{buf: writer.NewBuffer()}
}

// Document finishes the builder and returns its current bytes as a
// Document. The builder remains usable for further appends; Document
// does not copy, so further mutation through the builder may be visible
// through previously returned Documents (whenever the backing array is
// written in place rather than reallocated). Callers needing an
// independent snapshot should call Copy on the returned Document.
func (b *Builder) Document() (*Document, error) {
	if b.buf.Depth() != 0 {
		return nil, fmt.Errorf("bson: cannot finish builder with %d scope(s) still open", b.buf.Depth())
	}
	return &Document{data: b.buf.Bytes()}, nil
}

// Depth returns the number of currently open nested scopes.
func (b *Builder) Depth() int { return b.buf.Depth() }

func elementHeader(typ core.Type, key string) []byte {
	h := make([]byte, 0, 1+len(key)+1)
	h = append(h, byte(typ))
	h = append(h, key...)
	h = append(h, 0x00)
	return h
}

func (b *Builder) appendFixed(typ core.Type, key string, payload []byte) error {
	content := elementHeader(typ, key)
	content = append(content, payload...)
	_, err := b.buf.AppendElement(content)
	return err
}

// AppendDouble appends a double element.
func (b *Builder) AppendDouble(key string, v float64) error {
	payload := utils.GetBuffer(8)
	defer utils.ReleaseBuffer(payload)
	utils.PutFloat64LE(payload, 0, v)
	return b.appendFixed(core.TypeDouble, key, payload)
}

// AppendUTF8 appends a utf8 element.
func (b *Builder) AppendUTF8(key, v string) error {
	payload := encodeLengthPrefixedString(v)
	defer utils.ReleaseBuffer(payload)
	return b.appendFixed(core.TypeUTF8, key, payload)
}

// AppendInt32 appends an int32 element.
func (b *Builder) AppendInt32(key string, v int32) error {
	payload := utils.GetBuffer(4)
	defer utils.ReleaseBuffer(payload)
	utils.PutInt32LE(payload, 0, v)
	return b.appendFixed(core.TypeInt32, key, payload)
}

// AppendInt64 appends an int64 element.
func (b *Builder) AppendInt64(key string, v int64) error {
	payload := utils.GetBuffer(8)
	defer utils.ReleaseBuffer(payload)
	utils.PutInt64LE(payload, 0, v)
	return b.appendFixed(core.TypeInt64, key, payload)
}

// AppendBool appends a bool element.
func (b *Builder) AppendBool(key string, v bool) error {
	p := byte(0)
	if v {
		p = 1
	}
	return b.appendFixed(core.TypeBool, key, []byte{p})
}

// AppendDateTime appends a date-time element (raw millisecond value).
func (b *Builder) AppendDateTime(key string, v int64) error {
	payload := utils.GetBuffer(8)
	defer utils.ReleaseBuffer(payload)
	utils.PutInt64LE(payload, 0, v)
	return b.appendFixed(core.TypeDateTime, key, payload)
}

// AppendTimestamp appends a timestamp element.
func (b *Builder) AppendTimestamp(key string, increment, seconds int32) error {
	payload := utils.GetBuffer(8)
	defer utils.ReleaseBuffer(payload)
	utils.PutInt32LE(payload, 0, increment)
	utils.PutInt32LE(payload, 4, seconds)
	return b.appendFixed(core.TypeTimestamp, key, payload)
}

// AppendOID appends an oid element. id must be exactly 12 bytes.
func (b *Builder) AppendOID(key string, id [oid.Size]byte) error {
	return b.appendFixed(core.TypeOID, key, id[:])
}

// AppendNull appends a null element.
func (b *Builder) AppendNull(key string) error {
	return b.appendFixed(core.TypeNull, key, nil)
}

// AppendUndefined appends an undefined element.
func (b *Builder) AppendUndefined(key string) error {
	return b.appendFixed(core.TypeUndefined, key, nil)
}

// AppendMinKey appends a min-key element.
func (b *Builder) AppendMinKey(key string) error {
	return b.appendFixed(core.TypeMinKey, key, nil)
}

// AppendMaxKey appends a max-key element.
func (b *Builder) AppendMaxKey(key string) error {
	return b.appendFixed(core.TypeMaxKey, key, nil)
}

// AppendRegex appends a regex element with pattern and options as two
// consecutive NUL-terminated strings.
func (b *Builder) AppendRegex(key, pattern, options string) error {
	size := len(pattern) + 1 + len(options) + 1
	payload := utils.GetBuffer(size)
	defer utils.ReleaseBuffer(payload)
	copy(payload, pattern)
	payload[len(pattern)] = 0x00
	copy(payload[len(pattern)+1:], options)
	payload[size-1] = 0x00
	return b.appendFixed(core.TypeRegex, key, payload)
}

// AppendBinary appends a binary element of the given subtype. Subtype 2
// is encoded with its inner-length quirk for wire compatibility.
func (b *Builder) AppendBinary(key string, subtype core.BinarySubtype, data []byte) error {
	size := 4 + 1 + len(data)
	if subtype == core.BinaryDeprecated {
		size += 4
	}
	payload := utils.GetBuffer(size)
	defer utils.ReleaseBuffer(payload)
	if subtype == core.BinaryDeprecated {
		utils.PutInt32LE(payload, 0, int32(4+len(data)))
		payload[4] = byte(subtype)
		utils.PutInt32LE(payload, 5, int32(len(data)))
		copy(payload[9:], data)
	} else {
		utils.PutInt32LE(payload, 0, int32(len(data)))
		payload[4] = byte(subtype)
		copy(payload[5:], data)
	}
	return b.appendFixed(core.TypeBinary, key, payload)
}

// AppendDBPointer appends a db-pointer element.
func (b *Builder) AppendDBPointer(key, ns string, id [oid.Size]byte) error {
	payload := utils.GetBuffer(4 + len(ns) + 1 + oid.Size)
	defer utils.ReleaseBuffer(payload)
	utils.PutInt32LE(payload, 0, int32(len(ns)+1))
	copy(payload[4:], ns)
	payload[4+len(ns)] = 0x00
	copy(payload[4+len(ns)+1:], id[:])
	return b.appendFixed(core.TypeDBPointer, key, payload)
}

// AppendCode appends a code element.
func (b *Builder) AppendCode(key, source string) error {
	payload := encodeLengthPrefixedString(source)
	defer utils.ReleaseBuffer(payload)
	return b.appendFixed(core.TypeCode, key, payload)
}

// AppendSymbol appends a symbol element.
func (b *Builder) AppendSymbol(key, v string) error {
	payload := encodeLengthPrefixedString(v)
	defer utils.ReleaseBuffer(payload)
	return b.appendFixed(core.TypeSymbol, key, payload)
}

// AppendCodeWithScope appends a code-with-scope element, embedding
// scope's bytes verbatim as the nested document.
func (b *Builder) AppendCodeWithScope(key, source string, scope *Document) error {
	codeBytes := encodeLengthPrefixedString(source)
	defer utils.ReleaseBuffer(codeBytes)
	// scopeBytes aliases scope's own backing array; it is never pooled.
	scopeBytes := scope.Bytes()
	total := 4 + len(codeBytes) + len(scopeBytes)
	payload := utils.GetBuffer(total)
	defer utils.ReleaseBuffer(payload)
	utils.PutInt32LE(payload, 0, int32(total))
	copy(payload[4:], codeBytes)
	copy(payload[4+len(codeBytes):], scopeBytes)
	return b.appendFixed(core.TypeCodeWithScope, key, payload)
}

func encodeLengthPrefixedString(s string) []byte {
	payload := utils.GetBuffer(4 + len(s) + 1)
	utils.PutInt32LE(payload, 0, int32(len(s)+1))
	copy(payload[4:], s)
	payload[len(payload)-1] = 0x00
	return payload
}

// OpenDocument opens a nested document scope under key. Subsequent
// appends on the same Builder write into that scope until a matching
// CloseScope.
func (b *Builder) OpenDocument(key string) error {
	header := append(elementHeader(core.TypeDocument, key), 0x05, 0x00, 0x00, 0x00, 0x00)
	_, err := b.buf.OpenScope(header, false)
	return err
}

// OpenArray opens a nested array scope under key.
func (b *Builder) OpenArray(key string) error {
	header := append(elementHeader(core.TypeArray, key), 0x05, 0x00, 0x00, 0x00, 0x00)
	_, err := b.buf.OpenScope(header, true)
	return err
}

// CloseScope closes the innermost open document/array scope.
func (b *Builder) CloseScope() error {
	return b.buf.CloseScope()
}

// NextArrayIndex returns the implicit ASCII decimal index ("0", "1", …)
// for the next element of the innermost array scope, for append helpers
// that don't take an explicit key. It fails if the innermost scope is
// not an array.
func (b *Builder) NextArrayIndex() (string, bool) {
	idx, ok := b.buf.NextArrayIndex()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d", idx), true
}

// AppendFromIter copies the iterator's current element verbatim under
// key (or the iterator's own key if key is ""), re-emitting the same
// discriminator and payload bytes without re-validating nested content.
func (b *Builder) AppendFromIter(key string, it *Iterator) error {
	if !it.hasCur {
		return fmt.Errorf("bson: append-from-iter called without a current element")
	}
	if key == "" {
		key = it.KeyString()
	}
	content := elementHeader(it.cur.typ, key)
	content = append(content, it.payload()...)
	_, err := b.buf.AppendElement(content)
	return err
}

// CopyExcluding walks src and appends every element whose key is not in
// excludeKeys into a freshly built destination document, in source
// order.
func CopyExcluding(src *Document, excludeKeys ...string) (*Document, error) {
	excluded := make(map[string]bool, len(excludeKeys))
	for _, k := range excludeKeys {
		excluded[k] = true
	}

	it, err := NewIterator(src)
	if err != nil {
		return nil, err
	}
	dst := NewBuilder()
	for it.Advance() {
		if excluded[it.KeyString()] {
			continue
		}
		if err := dst.AppendFromIter("", it); err != nil {
			return nil, err
		}
	}
	if _, isError := it.Err(); isError {
		return nil, fmt.Errorf("bson: source document corrupt at offset %d", mustErrOffset(it))
	}
	return dst.Document()
}

func mustErrOffset(it *Iterator) int {
	off, _ := it.Err()
	return off
}
