package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortArrayAppendClonesBaseAndTracksParentArray(t *testing.T) {
	base := NewPort("lane", BitType(), Out)
	size := NewIntParameter("N", 2)
	arr := NewPortArray("lanes", base, size)

	first := arr.Append()
	second := arr.Append()

	require.Len(t, arr.Elements(), 2)
	assert.NotSame(t, first, second)
	assert.Equal(t, "lane", first.Name())
	fp, ok := first.(*Port)
	require.True(t, ok)
	assert.Equal(t, Out, fp.Direction())

	pa, ok := fp.ParentArray()
	require.True(t, ok)
	assert.Same(t, arr, pa)
}

func TestNewPortArraySetsArraySizeOfOnParameter(t *testing.T) {
	base := NewPort("lane", BitType(), Out)
	size := NewIntParameter("N", 2)
	arr := NewPortArray("lanes", base, size)

	assert.Same(t, NodeArray(arr), size.arraySizeOf)
}

func TestNewPortArrayPanicsWhenSizeAlreadyOwnsAnArray(t *testing.T) {
	size := NewIntParameter("N", 2)
	_ = NewPortArray("first", NewPort("a", BitType(), Out), size)

	assert.Panics(t, func() {
		NewPortArray("second", NewPort("b", BitType(), Out), size)
	})
}

func TestSetSizeReassignsArraySizeOfAndClearsOld(t *testing.T) {
	oldSize := NewIntParameter("N", 2)
	arr := NewPortArray("lanes", NewPort("a", BitType(), Out), oldSize)

	newSize := NewIntParameter("M", 4)
	arr.setSize(newSize)

	assert.Nil(t, oldSize.arraySizeOf)
	assert.Same(t, NodeArray(arr), newSize.arraySizeOf)
	assert.Same(t, newSize, arr.Size())
}

func TestSignalArrayAppendClonesBaseType(t *testing.T) {
	base := NewSignal("s", VectorOfWidth(4))
	size := NewIntParameter("N", 3)
	arr := NewSignalArray("signals", base, size)

	el := arr.Append()
	sig, ok := el.(*Signal)
	require.True(t, ok)
	assert.True(t, IsEqual(sig.Type(), VectorOfWidth(4)))
}
