package bson

import "github.com/scigolib/bsondoc/internal/core"

// ToMap decodes doc into a generic tree of Go values, keyed by element
// key, with nested documents and arrays decoded recursively (arrays as
// []any in element order, documents as map[string]any). It is meant for
// tests and debugging, not for performance-sensitive decoding: every
// element is boxed into an interface value.
func ToMap(doc *Document) (map[string]any, error) {
	it, err := NewIterator(doc)
	if err != nil {
		return nil, err
	}
	return decodeDocument(it)
}

func decodeDocument(it *Iterator) (map[string]any, error) {
	out := make(map[string]any)
	for it.Advance() {
		v, err := decodeValue(it)
		if err != nil {
			return nil, err
		}
		out[it.KeyString()] = v
	}
	if off, isError := it.Err(); isError {
		return nil, &documentError{offset: off}
	}
	return out, nil
}

func decodeArray(it *Iterator) ([]any, error) {
	out := []any{}
	for it.Advance() {
		v, err := decodeValue(it)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if off, isError := it.Err(); isError {
		return nil, &documentError{offset: off}
	}
	return out, nil
}

func decodeValue(it *Iterator) (any, error) {
	if s, ok := it.StringLike(); ok {
		return s, nil
	}
	switch it.Type() {
	case core.TypeDouble:
		return it.Double(), nil
	case core.TypeDocument:
		sub, err := it.Recurse()
		if err != nil {
			return nil, err
		}
		return decodeDocument(sub)
	case core.TypeArray:
		sub, err := it.Recurse()
		if err != nil {
			return nil, err
		}
		return decodeArray(sub)
	case core.TypeBinary:
		_, data := it.Binary()
		cp := make([]byte, len(data))
		copy(cp, data)
		return cp, nil
	case core.TypeUndefined:
		return nil, nil
	case core.TypeOID:
		var id [12]byte
		copy(id[:], it.OID())
		return id, nil
	case core.TypeBool:
		return it.Bool(), nil
	case core.TypeDateTime:
		return it.DateTime(), nil
	case core.TypeNull:
		return nil, nil
	case core.TypeRegex:
		pattern, opts := it.Regex()
		return [2]string{pattern, opts}, nil
	case core.TypeInt32:
		return it.Int32(), nil
	case core.TypeInt64:
		return it.Int64(), nil
	default:
		return nil, nil
	}
}

type documentError struct{ offset int }

func (e *documentError) Error() string {
	return "bson: document corrupt while decoding to map"
}
