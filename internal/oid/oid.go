// Package oid generates the 12-byte object identifiers used by the oid
// element type. The document core treats an OID as an opaque 12-byte
// blob (§4.5 of the format contract); this package is the external
// collaborator that actually produces one: 4 bytes of Unix seconds, 5
// bytes of per-process entropy, and a 3-byte counter seeded from the
// monotonic clock so identifiers generated in quick succession still
// sort in generation order.
package oid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/scigolib/bsondoc/internal/clock"
)

// Size is the fixed length of an OID in bytes.
const Size = 12

var processEntropy [5]byte

var counter uint32

func init() {
	if _, err := rand.Read(processEntropy[:]); err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; there is no safe fallback for identifier generation.
		panic(fmt.Sprintf("oid: reading process entropy: %v", err))
	}
	counter = uint32(clock.NowMicro()) & 0x00FFFFFF
}

// Generate produces a new 12-byte identifier: seconds (big-endian
// uint32), the process entropy, and a big-endian 24-bit counter that
// wraps at 2^24.
func Generate() [Size]byte {
	var id [Size]byte

	seconds := uint32(clock.NowMicro() / 1_000_000)
	id[0] = byte(seconds >> 24)
	id[1] = byte(seconds >> 16)
	id[2] = byte(seconds >> 8)
	id[3] = byte(seconds)

	copy(id[4:9], processEntropy[:])

	c := atomic.AddUint32(&counter, 1) & 0x00FFFFFF
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)

	return id
}

// Hex renders an OID as the conventional 24-character lowercase hex
// string.
func Hex(id [Size]byte) string {
	return hex.EncodeToString(id[:])
}

// FromHex parses a 24-character hex string back into an OID.
func FromHex(s string) ([Size]byte, error) {
	var id [Size]byte
	if len(s) != Size*2 {
		return id, fmt.Errorf("oid: hex string must be %d characters, got %d", Size*2, len(s))
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("oid: invalid hex: %w", err)
	}
	copy(id[:], decoded)
	return id, nil
}
