package transform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletchgen/cerata/pkg/ir"
)

func TestAttachSignalToNodeInterposesForDrivenInstanceInput(t *testing.T) {
	child := ir.NewComponent("child")
	require.NoError(t, child.Add(ir.NewPort("i", ir.BitType(), ir.In)))

	top := ir.NewComponent("top")
	inst := top.AddInstanceOf(child, "inst0")

	feeder := ir.NewPort("top_in", ir.BitType(), ir.In)
	require.NoError(t, top.Add(feeder))
	_, err := ir.Connect(inst.Port("i"), feeder)
	require.NoError(t, err)

	s := AttachSignalToNode(top, inst.Port("i"), map[ir.Node]ir.Node{})

	require.Len(t, feeder.Sinks(), 1)
	assert.Same(t, ir.Node(s), feeder.Sinks()[0].Dst())

	require.Len(t, inst.Port("i").Sources(), 1)
	assert.Same(t, ir.Node(s), inst.Port("i").Sources()[0].Src())

	assert.True(t, top.Has(s.Name()))
	assert.Equal(t, "inst0_i", s.Name())
}

func TestAttachSignalToNodeInterposesForDrivenInstanceOutput(t *testing.T) {
	child := ir.NewComponent("child")
	require.NoError(t, child.Add(ir.NewPort("o", ir.BitType(), ir.Out)))

	top := ir.NewComponent("top")
	inst := top.AddInstanceOf(child, "inst0")

	sink := ir.NewPort("top_out", ir.BitType(), ir.Out)
	require.NoError(t, top.Add(sink))
	_, err := ir.Connect(sink, inst.Port("o"))
	require.NoError(t, err)

	s := AttachSignalToNode(top, inst.Port("o"), map[ir.Node]ir.Node{})

	require.Len(t, inst.Port("o").Sinks(), 1)
	assert.Same(t, ir.Node(s), inst.Port("o").Sinks()[0].Dst())

	require.Len(t, sink.Sources(), 1)
	assert.Same(t, ir.Node(s), sink.Sources()[0].Src())
}

func TestUniqueSignalNameDisambiguatesCollisions(t *testing.T) {
	comp := ir.NewComponent("top")
	first := uniqueSignalName(comp, "inst0", "i")
	require.NoError(t, comp.Add(ir.NewSignal(first, ir.BitType())))

	second := uniqueSignalName(comp, "inst0", "i")
	assert.NotEqual(t, first, second)
	assert.Equal(t, "inst0_i_1", second)
}

func TestSignalizePortsSkipsPortsWithoutEdges(t *testing.T) {
	child := ir.NewComponent("child")
	require.NoError(t, child.Add(ir.NewPort("unused", ir.BitType(), ir.Out)))

	top := ir.NewComponent("top")
	top.AddInstanceOf(child, "inst0")

	SignalizePorts(top)
	assert.Len(t, top.Signals(), 0)
}

func TestSignalizePortsInterposesConnectedPorts(t *testing.T) {
	child := ir.NewComponent("child")
	require.NoError(t, child.Add(ir.NewPort("o", ir.BitType(), ir.Out)))

	top := ir.NewComponent("top")
	inst := top.AddInstanceOf(child, "inst0")

	sink := ir.NewPort("top_out", ir.BitType(), ir.Out)
	require.NoError(t, top.Add(sink))
	_, err := ir.Connect(sink, inst.Port("o"))
	require.NoError(t, err)

	SignalizePorts(top)
	require.Len(t, top.Signals(), 1)
	assert.Equal(t, "inst0_o", top.Signals()[0].Name())
}

func TestAttachSignalArrayToNodeArrayInterposesEachElement(t *testing.T) {
	child := ir.NewComponent("child")
	count := ir.NewIntParameter("N", 2)
	require.NoError(t, child.Add(count))
	base := ir.NewPort("lane", ir.BitType(), ir.Out)
	arr := ir.NewPortArray("lanes", base, count)
	arr.Append()
	arr.Append()
	require.NoError(t, child.Add(arr))

	top := ir.NewComponent("top")
	inst := top.AddInstanceOf(child, "inst0")
	instArr := inst.PortArrays()[0]

	for i, el := range instArr.Elements() {
		sink := ir.NewPort(fmt.Sprintf("sink%d", i), ir.BitType(), ir.Out)
		require.NoError(t, top.Add(sink))
		_, err := ir.Connect(sink, el.(*ir.Port))
		require.NoError(t, err)
	}

	rebinding := map[ir.Node]ir.Node{}
	for k, v := range inst.CompToInst() {
		rebinding[k] = v
	}
	sigArr := AttachSignalArrayToNodeArray(top, instArr, rebinding)

	require.Len(t, sigArr.Elements(), 2)
	for _, el := range instArr.Elements() {
		p := el.(*ir.Port)
		require.Len(t, p.Sinks(), 1)
	}
}
