package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentAddRejectsUnparentedReference(t *testing.T) {
	c := NewComponent("top")
	size := NewIntParameter("N", 4)
	base := NewPort("lane", BitType(), In)
	arr := NewPortArray("lanes", base, size)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*StructureError)
		assert.True(t, ok)
	}()
	_ = c.Add(arr)
}

func TestComponentAddAcceptsReferenceAfterItIsParented(t *testing.T) {
	c := NewComponent("top")
	size := NewIntParameter("N", 4)
	require.NoError(t, c.Add(size))

	base := NewPort("lane", BitType(), In)
	arr := NewPortArray("lanes", base, size)
	require.NoError(t, c.Add(arr))
	assert.True(t, c.Has("lanes"))
}

func TestComponentAddToleratesReaddingSameObject(t *testing.T) {
	c := NewComponent("top")
	p := NewPort("p", BitType(), In)
	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))
	assert.Len(t, c.Ports(), 1)
}

func TestComponentAddPanicsOnDuplicateNameDifferentObject(t *testing.T) {
	c := NewComponent("top")
	require.NoError(t, c.Add(NewPort("p", BitType(), In)))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*StructureError)
		assert.True(t, ok)
	}()
	_ = c.Add(NewPort("p", BitType(), Out))
}

func TestGraphAccessorsPartitionObjectsByKind(t *testing.T) {
	c := NewComponent("top")
	port := NewPort("p", BitType(), In)
	param := NewIntParameter("n", 1)
	sig := NewSignal("s", BitType())
	require.NoError(t, c.Add(port))
	require.NoError(t, c.Add(param))
	require.NoError(t, c.Add(sig))

	assert.Equal(t, []*Port{port}, c.Ports())
	assert.Equal(t, []*Parameter{param}, c.Parameters())
	assert.Equal(t, []*Signal{sig}, c.Signals())

	assert.Same(t, port, c.Port("p"))
	assert.Same(t, param, c.Parameter("n"))
	assert.Same(t, sig, c.Signal("s"))
	assert.Nil(t, c.Port("missing"))

	n, ok := c.GetNode("p")
	require.True(t, ok)
	assert.Same(t, port, n)
}

func TestGraphMetaDefaultsToEmptyAndIsMutable(t *testing.T) {
	c := NewComponent("top")
	assert.Empty(t, c.Meta())
	c.SetMeta("k", "v")
	assert.Equal(t, "v", c.Meta()["k"])
}
