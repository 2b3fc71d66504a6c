package utils

import "fmt"

// MaxScopeDepth bounds how many nested document/array scopes a builder may
// have open at once, per spec: a fixed-capacity frame stack with a hard
// depth limit (suggested 100) to bound worst-case recursion.
const MaxScopeDepth = 100

// CheckAdditionOverflow returns an error if either operand is negative or
// a + b would exceed MaxDocumentSize (used for accumulating the worst-case
// size of an append before committing it).
func CheckAdditionOverflow(a, b int) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("addition overflow check: negative operand (%d, %d)", a, b)
	}
	if a > MaxDocumentSize-b {
		return fmt.Errorf("addition overflow: %d + %d exceeds max document size", a, b)
	}
	return nil
}

// ValidateNewSize rejects a prospective document size that would exceed
// the format's maximum (2^31 - 1 bytes) or is otherwise nonsensical.
func ValidateNewSize(newSize int) error {
	if newSize < 0 {
		return fmt.Errorf("invalid document size: %d", newSize)
	}
	if newSize > MaxDocumentSize {
		return fmt.Errorf("document size %d exceeds maximum %d", newSize, MaxDocumentSize)
	}
	return nil
}

// ValidatePayloadLength rejects a declared string-like payload length that
// cannot possibly fit within the remaining bytes of the document, without
// itself allocating or copying.
func ValidatePayloadLength(declared, remaining int) error {
	if declared < 1 {
		return fmt.Errorf("payload length %d must be at least 1 (trailing NUL)", declared)
	}
	if declared > remaining {
		return fmt.Errorf("payload length %d exceeds remaining bytes %d", declared, remaining)
	}
	return nil
}

// ValidateBinarySubtypeTwoLength guards the deprecated binary subtype 2
// encoding, where an inner int32 length precedes the payload and is
// subtracted from the outer declared length. Spec's Open Question: a
// malformed document could declare an outer length < 4, which would
// underflow the subtraction; reject that here instead of wrapping.
func ValidateBinarySubtypeTwoLength(outerLength int32) error {
	if outerLength < 4 {
		return fmt.Errorf("binary subtype 2 outer length %d is too small to hold an inner length", outerLength)
	}
	return nil
}
