package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCombinesDisjointBindings(t *testing.T) {
	x := NewVar("X")
	y := NewVar("Y")
	b1 := EmptyBinding().Extend(x, NewAtom("a"))
	b2 := EmptyBinding().Extend(y, NewAtom("b"))

	merged, ok := Merge(b1, b2)
	require.True(t, ok)
	assert.Equal(t, 2, merged.Len())
}

func TestMergeReconcilesCompatibleValues(t *testing.T) {
	x := NewVar("X")
	b1 := EmptyBinding().Extend(x, NewAtom("a"))
	b2 := EmptyBinding().Extend(x, NewAtom("a"))

	merged, ok := Merge(b1, b2)
	require.True(t, ok)
	assert.Equal(t, 1, merged.Len())
}

func TestMergeFailsOnConflict(t *testing.T) {
	x := NewVar("X")
	b1 := EmptyBinding().Extend(x, NewAtom("a"))
	b2 := EmptyBinding().Extend(x, NewAtom("b"))

	_, ok := Merge(b1, b2)
	assert.False(t, ok)
}

func TestMergeNilIsAbsorbing(t *testing.T) {
	_, ok := Merge(nil, EmptyBinding())
	assert.False(t, ok)

	_, ok = Merge(EmptyBinding(), nil)
	assert.False(t, ok)
}

func TestExtendDoesNotMutateReceiver(t *testing.T) {
	x := NewVar("X")
	y := NewVar("Y")
	original := EmptyBinding().Extend(x, NewAtom("a"))
	extended := original.Extend(y, NewAtom("b"))

	assert.Equal(t, 1, original.Len())
	assert.Equal(t, 2, extended.Len())
}
