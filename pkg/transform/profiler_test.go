package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletchgen/cerata/pkg/ir"
)

func TestProfilerComponentIsCachedAndShapedAsDocumented(t *testing.T) {
	a := ProfilerComponent()
	b := ProfilerComponent()
	assert.Same(t, a, b)

	assert.Equal(t, "true", a.Meta()[ir.MetaPrimitive])
	for _, name := range []string{"probe", "enable", "clear", "ecount", "rcount", "vcount", "tcount", "pcount"} {
		require.NotNil(t, a.Port(name), "missing port %q", name)
	}
	assert.Equal(t, ir.In, a.Port("probe").Direction())
	assert.Equal(t, ir.Out, a.Port("ecount").Direction())
}

func TestEnableStreamProfilingInstallsCorrectMapperAndCounters(t *testing.T) {
	hostType := ir.ExpandType(ir.NewStream("host_stream", ir.VectorOfWidth(8), "data", 1))
	node := ir.NewPort("host", hostType, ir.Out)

	comp := ir.NewComponent("top")
	enable := ir.NewPort("enable_bus", ir.BitType(), ir.Out)
	clear := ir.NewPort("clear_bus", ir.BitType(), ir.Out)

	result := EnableStreamProfiling(comp, []ir.Node{node}, enable, clear)

	counters, ok := result[node]
	require.True(t, ok)
	require.Len(t, counters, 1)

	c := counters[0]
	assert.NotNil(t, c.Element)
	assert.NotNil(t, c.Ready)
	assert.NotNil(t, c.Valid)
	assert.NotNil(t, c.Transfer)
	assert.NotNil(t, c.Packet)

	probe := c.Instance.Port("probe")
	require.Len(t, probe.Sources(), 1)
	assert.Same(t, ir.Node(node), probe.Sources()[0].Src())

	m, ok := probe.Type().GetMapper(node.Type(), false)
	require.True(t, ok)
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, m.Pairs())
}

func TestEnableStreamProfilingInstantiatesOneProfilerPerStreamInType(t *testing.T) {
	inner := ir.ExpandType(ir.NewStream("inner", ir.BitType(), "data", 1))
	r := ir.NewRecord("pair", ir.NewField("a", inner, false), ir.NewField("b", inner, false))
	node := ir.NewPort("host", r, ir.Out)

	comp := ir.NewComponent("top")
	enable := ir.NewPort("enable_bus", ir.BitType(), ir.Out)
	clear := ir.NewPort("clear_bus", ir.BitType(), ir.Out)

	result := EnableStreamProfiling(comp, []ir.Node{node}, enable, clear)
	assert.Len(t, result[node], 2)
}
