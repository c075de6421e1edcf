//go:build tethercheck

package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_UncheckedResolveOfUnsetPanics(t *testing.T) {
	var p pairInt16
	assert.Panics(t, func() { p.r.Resolve() })
}

func TestProbe_UncheckedResolveAfterClearPanics(t *testing.T) {
	p := newPairInt16("x", 1)
	p.r.Clear()
	assert.Panics(t, func() { p.r.Resolve() })
}

func TestProbe_WholeMoveStaysQuiet(t *testing.T) {
	p := newPairInt16("Hello", 1)
	q := p
	require.NotPanics(t, func() {
		assert.Equal(t, "Hello", *q.r.Resolve())
	})
}
