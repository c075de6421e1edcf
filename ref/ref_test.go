package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/tether/delta"
)

type pairInt16 struct {
	val string
	num uint32
	r   Ref[string, int16]
}

func newPairInt16(val string, num uint32) pairInt16 {
	p := pairInt16{val: val, num: num}
	if err := p.r.Set(&p.val); err != nil {
		panic(err)
	}
	return p
}

func TestRef_SetAndResolve(t *testing.T) {
	p := pairInt16{val: "Hello World", num: 10}
	require.NoError(t, p.r.Set(&p.val))

	got, ok := p.r.TryResolve()
	require.True(t, ok)
	assert.Same(t, &p.val, got)
	assert.Equal(t, "Hello World", *got)
	assert.Equal(t, "Hello World", *p.r.Resolve())
}

func TestRef_SetIsNeverNull(t *testing.T) {
	// The zero sentinel cannot collide with a real displacement: the
	// pointer and its target are distinct fields, so their addresses
	// always differ.
	p := newPairInt16("x", 1)
	assert.False(t, p.r.IsNull())
}

func TestRef_MoveByCopy(t *testing.T) {
	p := newPairInt16("Hello World", 10)

	q := p // relocation by value copy
	got := q.r.Resolve()
	assert.Same(t, &q.val, got)
	assert.Equal(t, "Hello World", *got)

	// The original keeps its own geometry.
	assert.Same(t, &p.val, p.r.Resolve())
}

func TestRef_MoveToHeapAndSlice(t *testing.T) {
	boxed := new(pairInt16)
	*boxed = newPairInt16("Hello World", 10)
	assert.Same(t, &boxed.val, boxed.r.Resolve())
	assert.Equal(t, "Hello World", *boxed.r.Resolve())

	var list []pairInt16
	list = append(list, *boxed, newPairInt16("Another", 11))
	list = append(list, newPairInt16("Third", 12)) // may regrow the backing array

	for i, want := range []string{"Hello World", "Another", "Third"} {
		got := list[i].r.Resolve()
		assert.Same(t, &list[i].val, got)
		assert.Equal(t, want, *got)
	}
}

func TestRef_Swap(t *testing.T) {
	a := newPairInt16("Hello World", 1)
	b := newPairInt16("Killer Move", 2)

	a, b = b, a

	assert.Equal(t, "Killer Move", *a.r.Resolve())
	assert.Equal(t, "Hello World", *b.r.Resolve())
}

func TestRef_NullSemantics(t *testing.T) {
	var r Ref[string, int16]
	assert.True(t, r.IsNull())

	got, ok := r.TryResolve()
	assert.False(t, ok)
	assert.Nil(t, got)

	p := newPairInt16("x", 1)
	p.r.Clear()
	assert.True(t, p.r.IsNull())
	_, ok = p.r.TryResolve()
	assert.False(t, ok)
}

func TestRef_SetNilTarget(t *testing.T) {
	var r Ref[string, int16]
	err := r.Set(nil)
	assert.ErrorIs(t, err, ErrNilTarget)
	assert.True(t, r.IsNull())
}

type farInt8 struct {
	val string
	pad [200]byte
	r   Ref[string, int8]
}

func TestRef_OffsetTooLarge(t *testing.T) {
	var f farInt8
	f.val = "too far"

	err := f.r.Set(&f.val)
	require.Error(t, err)
	assert.ErrorIs(t, err, delta.ErrOffsetTooLarge)
	// No set-but-wrong state is left behind.
	assert.True(t, f.r.IsNull())
	_, ok := f.r.TryResolve()
	assert.False(t, ok)
}

func TestRef_StructuralEquality(t *testing.T) {
	a := newPairInt16("left", 1)
	b := newPairInt16("right", 2)

	// Identical relative geometry at different absolute addresses.
	assert.True(t, a.r.Equal(&b.r))

	var other struct {
		pad [8]byte
		val string
		r   Ref[string, int16]
	}
	other.val = "left"
	require.NoError(t, other.r.Set(&other.val))
	assert.False(t, a.r.Equal(&other.r))
}
