package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInstanceOfDefaultsNameFromComponent(t *testing.T) {
	child := NewComponent("adder")
	top := NewComponent("top")

	inst := top.AddInstanceOf(child, "")
	assert.Equal(t, "adder_inst", inst.Name())
	assert.True(t, child.IsInstantiated())
}

func TestInstanceComponentsReturnsDistinctReferencedComponents(t *testing.T) {
	child := NewComponent("leaf")
	top := NewComponent("top")
	top.AddInstanceOf(child, "a")
	top.AddInstanceOf(child, "b")
	other := NewComponent("other")
	top.AddInstanceOf(other, "c")

	refs := top.InstanceComponents()
	require.Len(t, refs, 2)
	assert.Contains(t, refs, child)
	assert.Contains(t, refs, other)
}

func TestComponentIsComponentAndIsInstanceFlags(t *testing.T) {
	c := NewComponent("top")
	assert.True(t, c.IsComponent())
	assert.False(t, c.IsInstance())
}
