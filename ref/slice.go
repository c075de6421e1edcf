package ref

import (
	"unsafe"

	"github.com/quickwritereader/tether/delta"
)

// SliceRef is a relative pointer to a run of E elements inside the same
// allocation, such as a window into a sibling array field. The element
// count is captured as metadata at set time.
type SliceRef[E any, I delta.Width] struct {
	probe probe
	off   I
	n     int
}

// Set points r at the elements backing target, capturing len(target).
// An empty or nil slice has no storage to reference and fails with
// ErrNilTarget.
func (r *SliceRef[E, I]) Set(target []E) error {
	data := unsafe.Pointer(unsafe.SliceData(target))
	if data == nil || len(target) == 0 {
		return ErrNilTarget
	}
	d, err := delta.Between[I](data, unsafe.Pointer(r))
	if err != nil {
		return err
	}
	r.off = d
	r.n = len(target)
	r.probe.note(unsafe.Pointer(r), data)
	return nil
}

// Clear resets r to null, discarding displacement and length.
func (r *SliceRef[E, I]) Clear() {
	r.off = delta.Null
	r.n = 0
	r.probe.drop()
}

// IsNull reports whether r is unset.
func (r *SliceRef[E, I]) IsNull() bool { return r.off == delta.Null }

// Len returns the element count captured by the last Set, zero when null.
func (r *SliceRef[E, I]) Len() int { return r.n }

// Resolve reconstructs the referenced run without a null check. Calling
// it on a null SliceRef, or after the elements were relocated
// independently of r, is a contract violation.
func (r *SliceRef[E, I]) Resolve() []E {
	p := delta.Add(unsafe.Pointer(r), r.off)
	r.probe.verify(unsafe.Pointer(r), p)
	return unsafe.Slice((*E)(p), r.n)
}

// TryResolve reconstructs the referenced run, reporting false when r is
// null.
func (r *SliceRef[E, I]) TryResolve() ([]E, bool) {
	if r.IsNull() {
		return nil, false
	}
	return r.Resolve(), true
}

// Equal reports structural equality: same displacement and same length.
func (r *SliceRef[E, I]) Equal(o *SliceRef[E, I]) bool {
	return r.off == o.off && r.n == o.n
}

// StringRef is a relative pointer to a byte run viewed as a string. It is
// the string-shaped sibling of SliceRef: displacement plus byte length.
type StringRef[I delta.Width] struct {
	probe probe
	off   I
	n     int
}

// Set points r at the bytes backing target, capturing len(target). An
// empty string has no storage to reference and fails with ErrNilTarget.
func (r *StringRef[I]) Set(target string) error {
	data := unsafe.Pointer(unsafe.StringData(target))
	if data == nil || len(target) == 0 {
		return ErrNilTarget
	}
	d, err := delta.Between[I](data, unsafe.Pointer(r))
	if err != nil {
		return err
	}
	r.off = d
	r.n = len(target)
	r.probe.note(unsafe.Pointer(r), data)
	return nil
}

// Clear resets r to null, discarding displacement and length.
func (r *StringRef[I]) Clear() {
	r.off = delta.Null
	r.n = 0
	r.probe.drop()
}

// IsNull reports whether r is unset.
func (r *StringRef[I]) IsNull() bool { return r.off == delta.Null }

// Len returns the byte length captured by the last Set, zero when null.
func (r *StringRef[I]) Len() int { return r.n }

// Resolve reconstructs the referenced string without a null check. The
// same preconditions as SliceRef.Resolve apply.
func (r *StringRef[I]) Resolve() string {
	p := delta.Add(unsafe.Pointer(r), r.off)
	r.probe.verify(unsafe.Pointer(r), p)
	return unsafe.String((*byte)(p), r.n)
}

// TryResolve reconstructs the referenced string, reporting false when r
// is null.
func (r *StringRef[I]) TryResolve() (string, bool) {
	if r.IsNull() {
		return "", false
	}
	return r.Resolve(), true
}

// Equal reports structural equality: same displacement and same length.
func (r *StringRef[I]) Equal(o *StringRef[I]) bool {
	return r.off == o.off && r.n == o.n
}
