package bson

import (
	"strings"
	"unicode/utf8"

	"github.com/scigolib/bsondoc/internal/core"
)

// Flags is a bitset controlling which extra structural rules Validate
// enforces beyond the iterator's own per-step parse checks.
type Flags uint32

const (
	// FlagUTF8 requires every key and every utf8/code/symbol string
	// payload to be well-formed UTF-8.
	FlagUTF8 Flags = 0x1
	// FlagDollarKeys rejects keys beginning with '$'.
	FlagDollarKeys Flags = 0x2
	// FlagDotKeys rejects keys containing '.'.
	FlagDotKeys Flags = 0x4
	// FlagUTF8AllowNull relaxes FlagUTF8 to permit embedded NUL bytes
	// within string payloads (keys may never contain one; the wire
	// format delimits a key at its first NUL).
	FlagUTF8AllowNull Flags = 0x8
)

// Validate walks doc end to end, recursing into every nested document
// and array, and reports the offset of the first offending byte. It
// returns (0, true) if the document is clean under the given flags.
func Validate(doc *Document, flags Flags) (offset int, clean bool) {
	return validateBytes(doc.Bytes(), flags)
}

func validateBytes(data []byte, flags Flags) (int, bool) {
	it, err := newIteratorBytes(data)
	if err != nil {
		return 0, false
	}

	for it.Advance() {
		if off, ok := checkKey(it.Key(), flags); !ok {
			return off(it), false
		}

		switch it.Type() {
		case core.TypeUTF8:
			if !checkStringPayload(it.UTF8(), flags) {
				return it.cur.payloadStart, false
			}
		case core.TypeCode:
			if !checkStringPayload(it.Code(), flags) {
				return it.cur.payloadStart, false
			}
		case core.TypeSymbol:
			if !checkStringPayload(it.Symbol(), flags) {
				return it.cur.payloadStart, false
			}
		case core.TypeDocument, core.TypeArray:
			child, err := it.Recurse()
			if err != nil {
				return it.cur.payloadStart, false
			}
			if off, ok := validateBytes(child.data, flags); !ok {
				return it.cur.payloadStart + off, false
			}
		}
	}

	if off, isError := it.Err(); isError {
		return off, false
	}
	return 0, true
}

// checkKey returns a function that computes the offending offset from the
// iterator, rather than the offset itself, so the clean common case
// returns nil and computes nothing.
func checkKey(key []byte, flags Flags) (func(*Iterator) int, bool) {
	if flags&FlagDollarKeys != 0 && len(key) > 0 && key[0] == '$' {
		return keyOffset, false
	}
	if flags&FlagDotKeys != 0 && strings.ContainsRune(string(key), '.') {
		return keyOffset, false
	}
	if flags&FlagUTF8 != 0 && !utf8.Valid(key) {
		return keyOffset, false
	}
	return nil, true
}

func keyOffset(it *Iterator) int { return it.cur.keyStart - 1 }

func checkStringPayload(s string, flags Flags) bool {
	if flags&FlagUTF8 == 0 {
		return true
	}
	if !utf8.ValidString(s) {
		return false
	}
	if flags&FlagUTF8AllowNull == 0 && strings.ContainsRune(s, 0) {
		return false
	}
	return true
}
