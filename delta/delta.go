// Package delta implements signed displacement arithmetic between two
// addresses that live inside the same allocation.
package delta

import (
	"errors"
	"fmt"
	"unsafe"
)

// Width is the set of signed integer types that can store a displacement.
// Narrower widths shrink the stored pointer at the cost of addressable range:
// int8 spans ±127 bytes, int16 ±32 KiB, and so on. int is the pointer-width
// choice that always fits.
type Width interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Null is the reserved displacement meaning "unset". A legitimate
// displacement is never zero: a relative pointer's own storage and its
// target are distinct fields, and distinct fields never share an address.
const Null = 0

// ErrOffsetTooLarge reports a displacement that does not fit the chosen
// storage width.
var ErrOffsetTooLarge = errors.New("delta: offset too large for storage width")

// OffsetError carries the displacement that failed to fit and the width it
// was measured against. It unwraps to ErrOffsetTooLarge.
type OffsetError struct {
	Delta     int64
	WidthBits int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("delta: displacement %d does not fit int%d", e.Delta, e.WidthBits)
}

func (e *OffsetError) Unwrap() error { return ErrOffsetTooLarge }

// Between computes the displacement that, added to origin, yields target.
// Both addresses must belong to the same allocation, which makes the
// subtraction exact; the only failure mode is the result not fitting I.
func Between[I Width](target, origin unsafe.Pointer) (I, error) {
	d := int64(uintptr(target)) - int64(uintptr(origin))
	var zero I
	if bits := int(unsafe.Sizeof(zero)) * 8; bits < 64 {
		limit := int64(1) << (bits - 1)
		if d < -limit || d >= limit {
			return 0, &OffsetError{Delta: d, WidthBits: bits}
		}
	}
	return I(d), nil
}

// Add resolves a displacement against a base address. It performs no
// validation; d must have been produced by Between with the same relative
// geometry still in force.
func Add[I Width](base unsafe.Pointer, d I) unsafe.Pointer {
	return unsafe.Add(base, int(d))
}
