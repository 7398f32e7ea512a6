package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSourcePanicsWhenNodeAlreadyHasOne(t *testing.T) {
	a := NewPort("a", BitType(), Out)
	b := NewPort("b", BitType(), Out)
	dst := NewPort("dst", BitType(), In)

	mustConnect(dst, a)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*StructureError)
		assert.True(t, ok)
	}()
	mustConnect(dst, b)
}

func TestEdgeOtherResolvesOppositeEndpoint(t *testing.T) {
	src := NewPort("src", BitType(), Out)
	dst := NewPort("dst2", BitType(), In)
	mustConnect(dst, src)

	e := dst.Sources()[0]
	other, ok := e.Other(src)
	require.True(t, ok)
	assert.Same(t, Node(dst), other)

	_, ok = e.Other(NewPort("stranger", BitType(), In))
	assert.False(t, ok)
}

func TestReplaceRewiresSourcesAndSinksOntoReplacement(t *testing.T) {
	src := NewPort("src3", BitType(), Out)
	dst := NewPort("dst3", BitType(), In)
	mustConnect(dst, src)

	replacement := NewPort("replacement", BitType(), Out)
	require.NoError(t, src.Replace(replacement))

	require.Len(t, dst.Sources(), 1)
	assert.Same(t, Node(replacement), dst.Sources()[0].Src())
	assert.Empty(t, src.Sinks())
}

func TestReplaceRetargetsArraySizeOfWhenReplacingAParameter(t *testing.T) {
	size := NewIntParameter("N", 2)
	base := NewPort("lane", BitType(), In)
	arr := NewPortArray("lanes", base, size)

	newSize := NewIntParameter("N2", 2)
	require.NoError(t, size.Replace(newSize))

	assert.Same(t, Node(newSize), arr.Size())
}

func mustConnect(dst, src Node) {
	if _, err := Connect(dst, src); err != nil {
		if _, ok := err.(*DomainWarning); !ok {
			panic(err)
		}
	}
}
