// Package ref implements relative pointers: references stored as a signed
// displacement from the pointer's own location instead of an absolute
// address. A relative pointer and its target that move together, as fields
// of one aggregate do, stay consistent without fixups, which makes
// self-referential values relocatable.
//
// The package offers one pointer type per target shape: Ref for fixed-size
// targets, SliceRef and StringRef for variable-length runs whose length is
// captured as metadata, and AnyRef for targets reached through an
// interface. All of them have a null zero value, a checked Set, and both
// checked (TryResolve) and unchecked (Resolve) reconstruction.
package ref

import (
	"errors"
	"unsafe"

	"github.com/quickwritereader/tether/delta"
)

var (
	// ErrNilTarget is returned by Set when the target has no storage to
	// point at (nil pointer, nil or empty backing data).
	ErrNilTarget = errors.New("ref: nil target")

	// ErrNotPointer is returned by AnyRef.Set when the interface payload
	// is not pointer-shaped.
	ErrNotPointer = errors.New("ref: interface payload is not a pointer")
)

// Ref is a relative pointer to a fixed-size sibling value. The zero value
// is null. Once set, a Ref stays valid across any relocation that carries
// the Ref and its target together.
type Ref[T any, I delta.Width] struct {
	probe probe
	off   I
}

// Set points r at target, storing the displacement from r's own storage
// location. Fails with delta.ErrOffsetTooLarge when the displacement does
// not fit I; r is left unchanged on failure.
func (r *Ref[T, I]) Set(target *T) error {
	if target == nil {
		return ErrNilTarget
	}
	d, err := delta.Between[I](unsafe.Pointer(target), unsafe.Pointer(r))
	if err != nil {
		return err
	}
	r.off = d
	r.probe.note(unsafe.Pointer(r), unsafe.Pointer(target))
	return nil
}

// Clear resets r to null, discarding the stored displacement.
func (r *Ref[T, I]) Clear() {
	r.off = delta.Null
	r.probe.drop()
}

// IsNull reports whether r is unset.
func (r *Ref[T, I]) IsNull() bool { return r.off == delta.Null }

// Resolve reconstructs the target pointer without a null check. Calling
// it on a null Ref, or after the target was relocated independently of r,
// is a contract violation.
func (r *Ref[T, I]) Resolve() *T {
	p := delta.Add(unsafe.Pointer(r), r.off)
	r.probe.verify(unsafe.Pointer(r), p)
	return (*T)(p)
}

// TryResolve reconstructs the target pointer, reporting false when r is
// null.
func (r *Ref[T, I]) TryResolve() (*T, bool) {
	if r.IsNull() {
		return nil, false
	}
	return r.Resolve(), true
}

// Equal reports structural equality: same displacement. Two refs embedded
// in different aggregates at different absolute addresses compare equal
// when their relative geometry matches.
func (r *Ref[T, I]) Equal(o *Ref[T, I]) bool { return r.off == o.off }
