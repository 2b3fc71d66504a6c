package bson

import (
	"fmt"

	"github.com/scigolib/bsondoc/internal/core"
	"github.com/scigolib/bsondoc/internal/utils"
)

// Each typed accessor below returns the type's zero value when the
// current element's discriminator does not match, per the format's
// type-mismatch rule: a silent zero value, not an error, since the
// caller is expected to check Type first.

// Double returns the current element's value if it is a double.
func (it *Iterator) Double() float64 {
	if it.cur.typ != core.TypeDouble {
		return 0
	}
	v, _ := utils.ReadFloat64LE(it.data, it.cur.payloadStart)
	return v
}

// Int32 returns the current element's value if it is an int32.
func (it *Iterator) Int32() int32 {
	if it.cur.typ != core.TypeInt32 {
		return 0
	}
	v, _ := utils.ReadInt32LE(it.data, it.cur.payloadStart)
	return v
}

// Int64 returns the current element's value if it is an int64.
func (it *Iterator) Int64() int64 {
	if it.cur.typ != core.TypeInt64 {
		return 0
	}
	v, _ := utils.ReadInt64LE(it.data, it.cur.payloadStart)
	return v
}

// Bool returns the current element's value if it is a bool.
func (it *Iterator) Bool() bool {
	if it.cur.typ != core.TypeBool {
		return false
	}
	return it.data[it.cur.payloadStart] != 0
}

// DateTime returns the current element's raw millisecond value if it is
// a date-time.
func (it *Iterator) DateTime() int64 {
	if it.cur.typ != core.TypeDateTime {
		return 0
	}
	v, _ := utils.ReadInt64LE(it.data, it.cur.payloadStart)
	return v
}

// Timestamp returns the current element's (increment, seconds) pair if
// it is a timestamp.
func (it *Iterator) Timestamp() (increment, seconds int32) {
	if it.cur.typ != core.TypeTimestamp {
		return 0, 0
	}
	increment, _ = utils.ReadInt32LE(it.data, it.cur.payloadStart)
	seconds, _ = utils.ReadInt32LE(it.data, it.cur.payloadStart+4)
	return increment, seconds
}

// OID returns the current element's 12-byte object identifier if it is
// an oid. The slice aliases the document's backing buffer.
func (it *Iterator) OID() []byte {
	if it.cur.typ != core.TypeOID {
		return nil
	}
	return it.data[it.cur.payloadStart:it.cur.payloadEnd]
}

// UTF8 returns the current element's string value (without the
// trailing NUL) if it is a utf8 element.
func (it *Iterator) UTF8() string {
	return it.lengthPrefixedString(core.TypeUTF8)
}

// Code returns the current element's source text if it is a code
// element.
func (it *Iterator) Code() string {
	return it.lengthPrefixedString(core.TypeCode)
}

// Symbol returns the current element's text if it is a symbol element.
func (it *Iterator) Symbol() string {
	return it.lengthPrefixedString(core.TypeSymbol)
}

func (it *Iterator) lengthPrefixedString(want core.Type) string {
	if it.cur.typ != want {
		return ""
	}
	// payload is [int32 length][bytes...][0x00]; strip the length
	// prefix and the trailing NUL.
	return string(it.data[it.cur.payloadStart+4 : it.cur.payloadEnd-1])
}

// StringLike returns the current element's decoded text if its type uses
// the shared length-prefixed string encoding (utf8, code, symbol), and
// ok=false for any other type.
func (it *Iterator) StringLike() (s string, ok bool) {
	if !core.HasUTF8LengthPrefix(it.cur.typ) {
		return "", false
	}
	return it.lengthPrefixedString(it.cur.typ), true
}

// Regex returns the current element's pattern and options if it is a
// regex element.
func (it *Iterator) Regex() (pattern, options string) {
	if it.cur.typ != core.TypeRegex {
		return "", ""
	}
	patternEnd := utils.FindNUL(it.data, it.cur.payloadStart)
	optionsStart := patternEnd + 1
	optionsEnd := utils.FindNUL(it.data, optionsStart)
	return string(it.data[it.cur.payloadStart:patternEnd]), string(it.data[optionsStart:optionsEnd])
}

// Binary returns the current element's subtype and data if it is a
// binary element. Subtype 2's inner length prefix is stripped from the
// returned slice.
func (it *Iterator) Binary() (subtype core.BinarySubtype, data []byte) {
	if it.cur.typ != core.TypeBinary {
		return 0, nil
	}
	l, _ := utils.ReadInt32LE(it.data, it.cur.payloadStart)
	subtype = core.BinarySubtype(it.data[it.cur.payloadStart+4])
	dataStart := it.cur.payloadStart + 5
	if subtype == core.BinaryDeprecated {
		dataStart += 4
		l -= 4
	}
	return subtype, it.data[dataStart : dataStart+int(l)]
}

// Document returns a Document view over the current element's nested
// document payload, without validating it further.
func (it *Iterator) Document() (*Document, bool) {
	if it.cur.typ != core.TypeDocument {
		return nil, false
	}
	return &Document{data: it.payload()}, true
}

// Array is the array-typed counterpart of Document.
func (it *Iterator) Array() (*Document, bool) {
	if it.cur.typ != core.TypeArray {
		return nil, false
	}
	return &Document{data: it.payload()}, true
}

// CodeWithScope returns the current element's source text and scope
// document if it is a code-with-scope element.
func (it *Iterator) CodeWithScope() (code string, scope *Document, ok bool) {
	if it.cur.typ != core.TypeCodeWithScope {
		return "", nil, false
	}
	codeLen, _ := utils.ReadInt32LE(it.data, it.cur.payloadStart+4)
	codeStart := it.cur.payloadStart + 8
	codeEnd := codeStart + int(codeLen)
	docStart := codeEnd
	return string(it.data[codeStart : codeEnd-1]), &Document{data: it.data[docStart:it.cur.payloadEnd]}, true
}

// DBPointer returns the current element's namespace string and 12-byte
// object identifier if it is a db-pointer element.
func (it *Iterator) DBPointer() (ns string, oid []byte, ok bool) {
	if it.cur.typ != core.TypeDBPointer {
		return "", nil, false
	}
	l, _ := utils.ReadInt32LE(it.data, it.cur.payloadStart)
	strStart := it.cur.payloadStart + 4
	strEnd := strStart + int(l)
	return string(it.data[strStart : strEnd-1]), it.data[strEnd : strEnd+12], true
}

// AsBool widens the current element per the numeric conversion table:
// bool yields its own value; double and the integer types test for
// non-zero; utf8 is always true; null and undefined are always false;
// any other type defaults to true.
func (it *Iterator) AsBool() bool {
	switch it.cur.typ {
	case core.TypeBool:
		return it.Bool()
	case core.TypeDouble:
		return core.AsBoolDouble(it.Double())
	case core.TypeInt32:
		return core.AsBoolInt32(it.Int32())
	case core.TypeInt64:
		return core.AsBoolInt64(it.Int64())
	case core.TypeUTF8:
		return true
	case core.TypeNull, core.TypeUndefined:
		return false
	default:
		return true
	}
}

// AsInt64 widens the current element per the numeric conversion table:
// bool yields 0 or 1; double truncates toward zero; int32/int64 widen
// directly; everything else yields 0.
func (it *Iterator) AsInt64() int64 {
	switch it.cur.typ {
	case core.TypeBool:
		return core.AsInt64Bool(it.Bool())
	case core.TypeDouble:
		return core.AsInt64Double(it.Double())
	case core.TypeInt32:
		return int64(it.Int32())
	case core.TypeInt64:
		return it.Int64()
	default:
		return 0
	}
}

// OverwriteBool patches a bool element's byte in place. The element's
// length cannot change, so this is the only mutation permitted outside
// of a Builder.
func (it *Iterator) OverwriteBool(v bool) error {
	if it.cur.typ != core.TypeBool {
		return fmt.Errorf("bson: overwrite-bool called on %v element", it.cur.typ)
	}
	b := byte(0)
	if v {
		b = 1
	}
	it.data[it.cur.payloadStart] = b
	return nil
}

// OverwriteInt32 patches an int32 element's bytes in place.
func (it *Iterator) OverwriteInt32(v int32) error {
	if it.cur.typ != core.TypeInt32 {
		return fmt.Errorf("bson: overwrite-int32 called on %v element", it.cur.typ)
	}
	utils.PutInt32LE(it.data, it.cur.payloadStart, v)
	return nil
}

// OverwriteInt64 patches an int64 element's bytes in place.
func (it *Iterator) OverwriteInt64(v int64) error {
	if it.cur.typ != core.TypeInt64 {
		return fmt.Errorf("bson: overwrite-int64 called on %v element", it.cur.typ)
	}
	utils.PutInt64LE(it.data, it.cur.payloadStart, v)
	return nil
}

// OverwriteDouble patches a double element's bytes in place.
func (it *Iterator) OverwriteDouble(v float64) error {
	if it.cur.typ != core.TypeDouble {
		return fmt.Errorf("bson: overwrite-double called on %v element", it.cur.typ)
	}
	utils.PutFloat64LE(it.data, it.cur.payloadStart, v)
	return nil
}
