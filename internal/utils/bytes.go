package utils

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxDocumentSize is the largest document the format permits: 2^31 - 1
// bytes. Any construction that would exceed it must be rejected.
const MaxDocumentSize = math.MaxInt32

// ReadInt32LE reads a little-endian int32 at offset. It returns an error
// instead of panicking when the slice is too short, since input buffers
// are untrusted.
func ReadInt32LE(buf []byte, offset int) (int32, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, fmt.Errorf("read int32 at %d: out of bounds (len %d)", offset, len(buf))
	}
	//nolint:gosec // G115: wire format is a signed 32-bit length/value
	return int32(binary.LittleEndian.Uint32(buf[offset : offset+4])), nil
}

// ReadInt64LE reads a little-endian int64 at offset.
func ReadInt64LE(buf []byte, offset int) (int64, error) {
	if offset < 0 || offset+8 > len(buf) {
		return 0, fmt.Errorf("read int64 at %d: out of bounds (len %d)", offset, len(buf))
	}
	//nolint:gosec // G115: wire format is a signed 64-bit value
	return int64(binary.LittleEndian.Uint64(buf[offset : offset+8])), nil
}

// ReadUint64LE reads a little-endian uint64 at offset.
func ReadUint64LE(buf []byte, offset int) (uint64, error) {
	if offset < 0 || offset+8 > len(buf) {
		return 0, fmt.Errorf("read uint64 at %d: out of bounds (len %d)", offset, len(buf))
	}
	return binary.LittleEndian.Uint64(buf[offset : offset+8]), nil
}

// ReadFloat64LE reads a little-endian IEEE-754 binary64 at offset.
func ReadFloat64LE(buf []byte, offset int) (float64, error) {
	bits, err := ReadUint64LE(buf, offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// PutInt32LE writes v as a little-endian int32 at offset. The caller must
// ensure buf has room; PutInt32LE does not grow the buffer.
func PutInt32LE(buf []byte, offset int, v int32) {
	//nolint:gosec // G115: reinterpreting signed length as unsigned for encoding
	binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(v))
}

// PutInt64LE writes v as a little-endian int64 at offset.
func PutInt64LE(buf []byte, offset int, v int64) {
	//nolint:gosec // G115: reinterpreting signed value as unsigned for encoding
	binary.LittleEndian.PutUint64(buf[offset:offset+8], uint64(v))
}

// PutUint64LE writes v as a little-endian uint64 at offset.
func PutUint64LE(buf []byte, offset int, v uint64) {
	binary.LittleEndian.PutUint64(buf[offset:offset+8], v)
}

// PutFloat64LE writes v as a little-endian IEEE-754 binary64 at offset.
func PutFloat64LE(buf []byte, offset int, v float64) {
	PutUint64LE(buf, offset, math.Float64bits(v))
}

// FindNUL returns the offset of the first 0x00 byte in buf at or after
// start, or -1 if none is found before the end of buf.
func FindNUL(buf []byte, start int) int {
	for i := start; i < len(buf); i++ {
		if buf[i] == 0 {
			return i
		}
	}
	return -1
}
