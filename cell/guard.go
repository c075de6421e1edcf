package cell

import (
	"github.com/quickwritereader/tether/delta"
)

// Guard is a scoped suspension of a cell's self-reference. Between
// Cell.Guard and Release the cell is unsealed: reads are rejected and the
// value may be mutated in ways that relocate its backing storage.
type Guard[T any, I delta.Width] struct {
	cell     *Cell[T, I]
	released bool
}

// Guard unseals the cell and returns exclusive access to the value.
// Pair it with a deferred Release so resealing runs on every exit path:
//
//	g, v := c.Guard()
//	defer g.Release()
//	*v = append(*v, data...)
func (c *Cell[T, I]) Guard() (*Guard[T, I], *T) {
	c.self.Clear()
	return &Guard[T, I]{cell: c}, &c.value
}

// Release reseals the cell against the value's current storage. Only the
// first call reseals; later calls return nil. A reseal failure leaves the
// cell unsealed in a defined broken state and is returned to the caller.
func (g *Guard[T, I]) Release() error {
	if g.released {
		return nil
	}
	g.released = true
	return g.cell.self.Set(&g.cell.value)
}

// Mutate runs fn with exclusive access to the value while the
// self-reference is suspended, then reseals. The reseal also runs when fn
// panics, before the panic propagates.
func (c *Cell[T, I]) Mutate(fn func(value *T)) (err error) {
	g, v := c.Guard()
	defer func() {
		if rerr := g.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	fn(v)
	return nil
}
