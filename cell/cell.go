// Package cell couples an owned value with a relative self-reference and
// keeps that reference valid across relocations of the whole cell.
//
// # Sealing
//
// A cell built by New is sealed: its self-reference is set and every read
// goes through it. Mutations that may relocate the value's backing
// storage must run under a Guard, which unseals the cell for the duration
// of the mutation and reseals it on every exit path.
//
// # Concurrency Model
//
// A cell is a single-writer value: at most one goroutine may hold Guard
// or Mutate access at a time, and reads must not overlap a guard window.
// The cell does no locking of its own.
package cell

import (
	"github.com/quickwritereader/tether/delta"
	"github.com/quickwritereader/tether/ref"
)

// Cell owns a value together with a relative pointer at it. Copying or
// moving the whole cell preserves the reference, because both fields
// translate by the same distance.
type Cell[T any, I delta.Width] struct {
	value T
	self  ref.Ref[T, I]
}

// New stores value and seals the self-reference in one construction step.
// Fails with delta.ErrOffsetTooLarge when the cell layout cannot be
// spanned by I; no half-initialised cell is returned.
func New[T any, I delta.Width](value T) (Cell[T, I], error) {
	var c Cell[T, I]
	c.value = value
	if err := c.self.Set(&c.value); err != nil {
		return Cell[T, I]{}, err
	}
	return c, nil
}

// Get returns the owned value through the self-reference. It panics when
// the cell is unsealed (a guard is active) or was never initialised; use
// TryGet where that state is expected.
func (c *Cell[T, I]) Get() *T {
	v, ok := c.TryGet()
	if !ok {
		panic("cell: access to an unsealed cell")
	}
	return v
}

// TryGet returns the owned value, reporting false while the cell is
// unsealed or uninitialised.
func (c *Cell[T, I]) TryGet() (*T, bool) {
	return c.self.TryResolve()
}

// Sealed reports whether the self-reference is currently set.
func (c *Cell[T, I]) Sealed() bool { return !c.self.IsNull() }

// Into unwraps the cell and returns the owned value.
func (c Cell[T, I]) Into() T { return c.value }
