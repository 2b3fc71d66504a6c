package bson

import "github.com/scigolib/bsondoc/internal/oid"

// ObjectID is the 12-byte identifier used by oid and db-pointer
// elements: 4 bytes of seconds, 5 bytes of process entropy, and a
// 3-byte counter.
type ObjectID [oid.Size]byte

// NewObjectID generates a fresh identifier.
func NewObjectID() ObjectID {
	return ObjectID(oid.Generate())
}

// String renders the identifier as 24 lowercase hex characters.
func (id ObjectID) String() string {
	return oid.Hex(id)
}

// ObjectIDFromHex parses a 24-character hex string into an ObjectID.
func ObjectIDFromHex(s string) (ObjectID, error) {
	raw, err := oid.FromHex(s)
	if err != nil {
		return ObjectID{}, err
	}
	return ObjectID(raw), nil
}
