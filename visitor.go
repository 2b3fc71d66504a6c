package bson

import "github.com/scigolib/bsondoc/internal/core"

// Visitor is a set of optional per-type callbacks invoked during Walk.
// Every field is optional; an absent callback simply skips that type.
// Returning true from before, after, or any typed callback aborts the
// walk and Walk reports true.
type Visitor struct {
	Before func(it *Iterator) bool
	After  func(it *Iterator) bool
	Corrupt func(offset int)

	Double        func(it *Iterator, v float64) bool
	UTF8          func(it *Iterator, v string) bool
	Document      func(it *Iterator, v *Document) bool
	Array         func(it *Iterator, v *Document) bool
	Binary        func(it *Iterator, subtype core.BinarySubtype, data []byte) bool
	Undefined     func(it *Iterator) bool
	OID           func(it *Iterator, v []byte) bool
	Bool          func(it *Iterator, v bool) bool
	DateTime      func(it *Iterator, v int64) bool
	Null          func(it *Iterator) bool
	Regex         func(it *Iterator, pattern, options string) bool
	DBPointer     func(it *Iterator, ns string, oid []byte) bool
	Code          func(it *Iterator, v string) bool
	Symbol        func(it *Iterator, v string) bool
	CodeWithScope func(it *Iterator, code string, scope *Document) bool
	Int32         func(it *Iterator, v int32) bool
	Timestamp     func(it *Iterator, increment, seconds int32) bool
	Int64         func(it *Iterator, v int64) bool
	MinKey        func(it *Iterator) bool
	MaxKey        func(it *Iterator) bool
}

// Walk advances it element by element, invoking Before, the type-specific
// callback, then After for each, until the document is exhausted, a
// callback requests abort (returns true, which Walk then returns), or a
// parse error occurs (Corrupt is invoked with the faulting offset, Walk
// returns false).
func (v *Visitor) Walk(it *Iterator) bool {
	for it.Advance() {
		if v.Before != nil && v.Before(it) {
			return true
		}
		if v.dispatch(it) {
			return true
		}
		if v.After != nil && v.After(it) {
			return true
		}
	}
	if offset, isError := it.Err(); isError && v.Corrupt != nil {
		v.Corrupt(offset)
	}
	return false
}

func (v *Visitor) dispatch(it *Iterator) bool {
	switch it.Type() {
	case core.TypeDouble:
		return v.Double != nil && v.Double(it, it.Double())
	case core.TypeUTF8:
		return v.UTF8 != nil && v.UTF8(it, it.UTF8())
	case core.TypeDocument:
		doc, _ := it.Document()
		return v.Document != nil && v.Document(it, doc)
	case core.TypeArray:
		arr, _ := it.Array()
		return v.Array != nil && v.Array(it, arr)
	case core.TypeBinary:
		subtype, data := it.Binary()
		return v.Binary != nil && v.Binary(it, subtype, data)
	case core.TypeUndefined:
		return v.Undefined != nil && v.Undefined(it)
	case core.TypeOID:
		return v.OID != nil && v.OID(it, it.OID())
	case core.TypeBool:
		return v.Bool != nil && v.Bool(it, it.Bool())
	case core.TypeDateTime:
		return v.DateTime != nil && v.DateTime(it, it.DateTime())
	case core.TypeNull:
		return v.Null != nil && v.Null(it)
	case core.TypeRegex:
		pattern, options := it.Regex()
		return v.Regex != nil && v.Regex(it, pattern, options)
	case core.TypeDBPointer:
		ns, oid, _ := it.DBPointer()
		return v.DBPointer != nil && v.DBPointer(it, ns, oid)
	case core.TypeCode:
		return v.Code != nil && v.Code(it, it.Code())
	case core.TypeSymbol:
		return v.Symbol != nil && v.Symbol(it, it.Symbol())
	case core.TypeCodeWithScope:
		code, scope, _ := it.CodeWithScope()
		return v.CodeWithScope != nil && v.CodeWithScope(it, code, scope)
	case core.TypeInt32:
		return v.Int32 != nil && v.Int32(it, it.Int32())
	case core.TypeTimestamp:
		inc, sec := it.Timestamp()
		return v.Timestamp != nil && v.Timestamp(it, inc, sec)
	case core.TypeInt64:
		return v.Int64 != nil && v.Int64(it, it.Int64())
	case core.TypeMinKey:
		return v.MinKey != nil && v.MinKey(it)
	case core.TypeMaxKey:
		return v.MaxKey != nil && v.MaxKey(it)
	default:
		return false
	}
}
