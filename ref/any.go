package ref

import (
	"reflect"
	"unsafe"

	"github.com/quickwritereader/tether/delta"
)

// eface mirrors the runtime layout of an empty interface value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// AnyRef is a relative pointer to a sibling value reached through an
// interface. The interface type word is captured as metadata at set time,
// so Resolve can rebuild a usable interface value without knowing the
// concrete type statically.
//
// Set accepts only pointer payloads (a pointer-shaped interface stores
// the pointee address directly in its data word); any other payload would
// reference a temporary copy rather than the sibling field.
type AnyRef[I delta.Width] struct {
	probe probe
	typ   unsafe.Pointer
	off   I
}

// Set points r at the value wrapped by target, capturing the interface
// type word. target must wrap a non-nil pointer into the same aggregate
// as r.
func (r *AnyRef[I]) Set(target any) error {
	if target == nil {
		return ErrNilTarget
	}
	if reflect.TypeOf(target).Kind() != reflect.Pointer {
		return ErrNotPointer
	}
	e := (*eface)(unsafe.Pointer(&target))
	if e.data == nil {
		return ErrNilTarget
	}
	d, err := delta.Between[I](e.data, unsafe.Pointer(r))
	if err != nil {
		return err
	}
	r.off = d
	r.typ = e.typ
	r.probe.note(unsafe.Pointer(r), e.data)
	return nil
}

// Clear resets r to null, discarding displacement and type word.
func (r *AnyRef[I]) Clear() {
	r.off = delta.Null
	r.typ = nil
	r.probe.drop()
}

// IsNull reports whether r is unset.
func (r *AnyRef[I]) IsNull() bool { return r.off == delta.Null }

// Resolve rebuilds the interface value from the stored type word and the
// recomputed address, without a null check. Calling it on a null AnyRef,
// or after the target was relocated independently of r, is a contract
// violation.
func (r *AnyRef[I]) Resolve() any {
	p := delta.Add(unsafe.Pointer(r), r.off)
	r.probe.verify(unsafe.Pointer(r), p)
	var out any
	e := (*eface)(unsafe.Pointer(&out))
	e.typ = r.typ
	e.data = p
	return out
}

// TryResolve rebuilds the interface value, reporting false when r is
// null.
func (r *AnyRef[I]) TryResolve() (any, bool) {
	if r.IsNull() {
		return nil, false
	}
	return r.Resolve(), true
}

// Equal reports structural equality: same displacement and same captured
// type word. Type descriptors are canonical, so comparing the words
// compares the types.
func (r *AnyRef[I]) Equal(o *AnyRef[I]) bool {
	return r.off == o.off && r.typ == o.typ
}
