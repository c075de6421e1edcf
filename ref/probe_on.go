//go:build tethercheck

package ref

import (
	"fmt"
	"unsafe"
)

// probe records the absolute addresses observed at set time and asserts
// on every resolve that the relative geometry still matches. Enabled with
// the tethercheck build tag; diagnostic only, never part of the data
// contract.
type probe struct {
	self   uintptr
	target uintptr
}

func (p *probe) note(self, target unsafe.Pointer) {
	p.self = uintptr(self)
	p.target = uintptr(target)
}

func (p *probe) drop() {
	p.self = 0
	p.target = 0
}

// verify panics when the displacement between the resolved pair no longer
// equals the displacement recorded at set time: the pointer and its
// record drifted apart, typically after a partial copy of the aggregate
// or a mutation that bypassed the owning cell's guard.
func (p *probe) verify(self, target unsafe.Pointer) {
	if p.self == 0 {
		panic("ref: resolve of a pointer that was never set (tethercheck)")
	}
	recorded := int64(p.target) - int64(p.self)
	current := int64(uintptr(target)) - int64(uintptr(self))
	if recorded != current {
		panic(fmt.Sprintf(
			"ref: geometry drift: set %#x->%#x (delta %d), resolved %#x->%#x (delta %d)",
			p.self, p.target, recorded, uintptr(self), uintptr(target), current))
	}
}
