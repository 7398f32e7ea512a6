package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletchgen/cerata/pkg/ir"
)

func TestExpandStreamsLowersPortAndSignalTypes(t *testing.T) {
	comp := ir.NewComponent("top")
	p := ir.NewPort("p", ir.NewStream("s", ir.VectorOfWidth(8), "data", 1), ir.In)
	require.NoError(t, comp.Add(p))
	s := ir.NewSignal("sig", ir.NewStream("s2", ir.BitType(), "data", 1))
	require.NoError(t, comp.Add(s))

	ExpandStreams(comp)

	pt, ok := p.Type().(*ir.Stream)
	require.True(t, ok)
	assert.Equal(t, "true", pt.Meta()[ir.MetaWasExpanded])

	st, ok := s.Type().(*ir.Stream)
	require.True(t, ok)
	assert.Equal(t, "true", st.Meta()[ir.MetaWasExpanded])
}

func TestExpandStreamsSharesExpansionAcrossPortsWithIdenticalStreamObject(t *testing.T) {
	shared := ir.NewStream("shared", ir.VectorOfWidth(4), "data", 1)

	comp := ir.NewComponent("top")
	a := ir.NewPort("a", shared, ir.In)
	b := ir.NewPort("b", shared, ir.Out)
	require.NoError(t, comp.Add(a))
	require.NoError(t, comp.Add(b))

	ExpandStreams(comp)
	assert.Same(t, a.Type(), b.Type())
}

func TestExpandStreamsExpandsChildInstancePortsAndArrays(t *testing.T) {
	child := ir.NewComponent("child")
	require.NoError(t, child.Add(ir.NewPort("p", ir.NewStream("s", ir.BitType(), "data", 1), ir.Out)))

	count := ir.NewIntParameter("N", 1)
	require.NoError(t, child.Add(count))
	base := ir.NewPort("lane", ir.NewStream("ls", ir.BitType(), "data", 1), ir.Out)
	arr := ir.NewPortArray("lanes", base, count)
	arr.Append()
	require.NoError(t, child.Add(arr))

	top := ir.NewComponent("top")
	inst := top.AddInstanceOf(child, "inst0")

	ExpandStreams(top)

	pt, ok := inst.Port("p").Type().(*ir.Stream)
	require.True(t, ok)
	assert.Equal(t, "true", pt.Meta()[ir.MetaWasExpanded])

	instArr := inst.PortArrays()[0]
	elemType, ok := instArr.Elements()[0].Type().(*ir.Stream)
	require.True(t, ok)
	assert.Equal(t, "true", elemType.Meta()[ir.MetaWasExpanded])
}
