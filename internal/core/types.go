// Package core holds the closed discriminator set, per-type size table,
// binary subtype constants, and numeric widening rules shared by the
// iterator, builder, and validator.
package core

import "fmt"

// Type is a single discriminator byte naming an element's payload shape.
type Type byte

// Discriminator bytes, bit-exact with bsonspec.org v1.1.
const (
	TypeEOD            Type = 0x00
	TypeDouble         Type = 0x01
	TypeUTF8           Type = 0x02
	TypeDocument       Type = 0x03
	TypeArray          Type = 0x04
	TypeBinary         Type = 0x05
	TypeUndefined      Type = 0x06 // deprecated
	TypeOID            Type = 0x07
	TypeBool           Type = 0x08
	TypeDateTime       Type = 0x09
	TypeNull           Type = 0x0A
	TypeRegex          Type = 0x0B
	TypeDBPointer      Type = 0x0C // deprecated
	TypeCode           Type = 0x0D
	TypeSymbol         Type = 0x0E // deprecated
	TypeCodeWithScope  Type = 0x0F // deprecated
	TypeInt32          Type = 0x10
	TypeTimestamp      Type = 0x11
	TypeInt64          Type = 0x12
	TypeMinKey         Type = 0xFF
	TypeMaxKey         Type = 0x7F
)

// String implements fmt.Stringer for diagnostics.
func (t Type) String() string {
	switch t {
	case TypeEOD:
		return "eod"
	case TypeDouble:
		return "double"
	case TypeUTF8:
		return "utf8"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeOID:
		return "oid"
	case TypeBool:
		return "bool"
	case TypeDateTime:
		return "date-time"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "db-pointer"
	case TypeCode:
		return "code"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "code-with-scope"
	case TypeInt32:
		return "int32"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "int64"
	case TypeMinKey:
		return "min-key"
	case TypeMaxKey:
		return "max-key"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// IsValid reports whether t is one of the closed set of discriminators.
// EOD is excluded: it terminates a document and is never an element's own
// type.
func IsValid(t Type) bool {
	switch t {
	case TypeDouble, TypeUTF8, TypeDocument, TypeArray, TypeBinary,
		TypeUndefined, TypeOID, TypeBool, TypeDateTime, TypeNull,
		TypeRegex, TypeDBPointer, TypeCode, TypeSymbol, TypeCodeWithScope,
		TypeInt32, TypeTimestamp, TypeInt64, TypeMinKey, TypeMaxKey:
		return true
	default:
		return false
	}
}

// FixedSize returns the payload size in bytes for types whose payload is a
// constant number of bytes independent of content, including 0 for the
// empty-payload types (undefined, null, min-key, max-key), and ok=false for
// variable-length types (callers must special-case those).
func FixedSize(t Type) (size int, ok bool) {
	switch t {
	case TypeDouble, TypeDateTime, TypeInt64, TypeTimestamp:
		return 8, true
	case TypeInt32:
		return 4, true
	case TypeOID:
		return 12, true
	case TypeBool:
		return 1, true
	case TypeUndefined, TypeNull, TypeMinKey, TypeMaxKey:
		return 0, true
	default:
		return 0, false
	}
}

// HasUTF8LengthPrefix reports whether t's payload is the int32-length-
// prefixed, NUL-terminated string encoding (utf8/code/symbol share it).
func HasUTF8LengthPrefix(t Type) bool {
	switch t {
	case TypeUTF8, TypeCode, TypeSymbol:
		return true
	default:
		return false
	}
}
