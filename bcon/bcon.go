// Package bcon provides a compact object-notation front end for building
// documents, replacing the variadic-macro tagging trick of the C
// implementation with a typed Field value and a single AppendMany call.
package bcon

import (
	"fmt"

	"github.com/scigolib/bsondoc"
)

// kind identifies which Append* method a Field must be routed to. It plays
// the role the original's magic-pointer-prefixed tag byte played in its
// variadic argument stream.
type kind int

const (
	kindUTF8 kind = iota
	kindDouble
	kindInt32
	kindInt64
	kindBool
	kindOID
	kindNull
	kindUndefined
	kindMinKey
	kindMaxKey
	kindDateTime
	kindDoc
	kindArray
)

// Field is one tagged value destined for a document or array scope. Build
// a slice of Fields with the constructors below and hand it to AppendMany.
type Field struct {
	key  string
	kind kind

	s    string
	f    float64
	i32  int32
	i64  int64
	b    bool
	oid  [12]byte
	doc  *bsondoc.Document
	subs []Field
}

// UTF8 tags a string value.
func UTF8(key, v string) Field { return Field{key: key, kind: kindUTF8, s: v} }

// Double tags a float64 value.
func Double(key string, v float64) Field { return Field{key: key, kind: kindDouble, f: v} }

// Int32 tags an int32 value.
func Int32(key string, v int32) Field { return Field{key: key, kind: kindInt32, i32: v} }

// Int64 tags an int64 value.
func Int64(key string, v int64) Field { return Field{key: key, kind: kindInt64, i64: v} }

// Bool tags a bool value.
func Bool(key string, v bool) Field { return Field{key: key, kind: kindBool, b: v} }

// OID tags a 12-byte object id value.
func OID(key string, v [12]byte) Field { return Field{key: key, kind: kindOID, oid: v} }

// DateTime tags a raw millisecond UTC timestamp.
func DateTime(key string, millis int64) Field { return Field{key: key, kind: kindDateTime, i64: millis} }

// Null tags an explicit null value.
func Null(key string) Field { return Field{key: key, kind: kindNull} }

// Undefined tags an explicit undefined value.
func Undefined(key string) Field { return Field{key: key, kind: kindUndefined} }

// MinKey tags the min-key sentinel.
func MinKey(key string) Field { return Field{key: key, kind: kindMinKey} }

// MaxKey tags the max-key sentinel.
func MaxKey(key string) Field { return Field{key: key, kind: kindMaxKey} }

// Doc tags a pre-built document embedded under key, used directly rather
// than re-flattened into the current scope.
func Doc(key string, doc *bsondoc.Document) Field { return Field{key: key, kind: kindDoc, doc: doc} }

// SubDoc tags a nested document scope built from the given fields.
func SubDoc(key string, fields ...Field) Field {
	return Field{key: key, kind: kindDoc, subs: fields}
}

// Array tags a nested array scope built from the given fields. Keys on the
// individual fields are ignored; elements are numbered by position.
func Array(key string, fields ...Field) Field {
	return Field{key: key, kind: kindArray, subs: fields}
}

// New builds a fresh document from the given top-level fields.
func New(fields ...Field) (*bsondoc.Document, error) {
	b := bsondoc.NewBuilder()
	if err := AppendMany(b, fields...); err != nil {
		return nil, err
	}
	return b.Document()
}

// AppendMany appends each field to b in order, recursing into SubDoc and
// Array scopes. It is the typed-target-language replacement for the
// original's bcon_append_ctx_va: instead of walking a NULL-terminated
// variadic stream keyed by magic-pointer tag bytes, it walks a plain slice
// of already-typed Field values.
func AppendMany(b *bsondoc.Builder, fields ...Field) error {
	for _, f := range fields {
		if err := appendOne(b, f); err != nil {
			return err
		}
	}
	return nil
}

func appendOne(b *bsondoc.Builder, f Field) error {
	switch f.kind {
	case kindUTF8:
		return b.AppendUTF8(f.key, f.s)
	case kindDouble:
		return b.AppendDouble(f.key, f.f)
	case kindInt32:
		return b.AppendInt32(f.key, f.i32)
	case kindInt64:
		return b.AppendInt64(f.key, f.i64)
	case kindBool:
		return b.AppendBool(f.key, f.b)
	case kindOID:
		return b.AppendOID(f.key, f.oid)
	case kindDateTime:
		return b.AppendDateTime(f.key, f.i64)
	case kindNull:
		return b.AppendNull(f.key)
	case kindUndefined:
		return b.AppendUndefined(f.key)
	case kindMinKey:
		return b.AppendMinKey(f.key)
	case kindMaxKey:
		return b.AppendMaxKey(f.key)
	case kindDoc:
		if err := b.OpenDocument(f.key); err != nil {
			return err
		}
		if f.doc != nil {
			it, err := bsondoc.NewIterator(f.doc)
			if err != nil {
				return err
			}
			for it.Advance() {
				if err := b.AppendFromIter("", it); err != nil {
					return err
				}
			}
			if _, isError := it.Err(); isError {
				return fmt.Errorf("bcon: embedded document corrupt")
			}
		} else if err := AppendMany(b, f.subs...); err != nil {
			return err
		}
		return b.CloseScope()
	case kindArray:
		if err := b.OpenArray(f.key); err != nil {
			return err
		}
		for _, sub := range f.subs {
			idx, ok := b.NextArrayIndex()
			if !ok {
				return fmt.Errorf("bcon: innermost scope is not an array")
			}
			sub.key = idx
			if err := appendOne(b, sub); err != nil {
				return err
			}
		}
		return b.CloseScope()
	default:
		return fmt.Errorf("bcon: unknown field kind %d", f.kind)
	}
}
