package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dynPair struct {
	count uint64
	tag   string
	r     AnyRef[int16]
}

func TestAnyRef_SetAndResolve(t *testing.T) {
	p := dynPair{count: 42, tag: "answer"}
	require.NoError(t, p.r.Set(&p.count))

	got, ok := p.r.TryResolve()
	require.True(t, ok)
	cp, ok := got.(*uint64)
	require.True(t, ok, "resolved interface keeps the concrete type")
	assert.Same(t, &p.count, cp)
	assert.EqualValues(t, 42, *cp)
}

func TestAnyRef_MoveByCopy(t *testing.T) {
	p := dynPair{count: 7}
	require.NoError(t, p.r.Set(&p.count))

	q := p
	q.count = 9

	cp := q.r.Resolve().(*uint64)
	assert.Same(t, &q.count, cp)
	assert.EqualValues(t, 9, *cp)
	assert.EqualValues(t, 7, *p.r.Resolve().(*uint64))
}

func TestAnyRef_Retarget(t *testing.T) {
	p := dynPair{count: 1, tag: "first"}
	require.NoError(t, p.r.Set(&p.count))
	require.NoError(t, p.r.Set(&p.tag)) // re-set recomputes displacement and type word

	sp, ok := p.r.Resolve().(*string)
	require.True(t, ok)
	assert.Same(t, &p.tag, sp)
}

func TestAnyRef_RejectsNonPointer(t *testing.T) {
	var r AnyRef[int16]
	assert.ErrorIs(t, r.Set(42), ErrNotPointer)
	assert.ErrorIs(t, r.Set("value"), ErrNotPointer)
	assert.True(t, r.IsNull())
}

func TestAnyRef_RejectsNil(t *testing.T) {
	var r AnyRef[int16]
	assert.ErrorIs(t, r.Set(nil), ErrNilTarget)
	assert.ErrorIs(t, r.Set((*uint64)(nil)), ErrNilTarget)
	assert.True(t, r.IsNull())
}

func TestAnyRef_Equality(t *testing.T) {
	a := dynPair{count: 1}
	b := dynPair{count: 2}
	require.NoError(t, a.r.Set(&a.count))
	require.NoError(t, b.r.Set(&b.count))
	assert.True(t, a.r.Equal(&b.r))

	require.NoError(t, b.r.Set(&b.tag)) // different displacement and type word
	assert.False(t, a.r.Equal(&b.r))
}

func TestAnyRef_NullSemantics(t *testing.T) {
	var r AnyRef[int16]
	assert.True(t, r.IsNull())
	_, ok := r.TryResolve()
	assert.False(t, ok)

	p := dynPair{count: 3}
	require.NoError(t, p.r.Set(&p.count))
	p.r.Clear()
	assert.True(t, p.r.IsNull())
	_, ok = p.r.TryResolve()
	assert.False(t, ok)
}
