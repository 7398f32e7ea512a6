package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletchgen/cerata/pkg/ir"
)

func TestNewBusArbiterIsCachedPerFunctionAndNamedByFunction(t *testing.T) {
	read1 := NewBusArbiter(Defaults(), BusRead)
	read2 := NewBusArbiter(Defaults(), BusRead)
	assert.Same(t, read1, read2)
	assert.Equal(t, "BusReadArbiterVec", read1.Name())

	write := NewBusArbiter(Defaults(), BusWrite)
	assert.Equal(t, "BusWriteArbiterVec", write.Name())
	assert.NotSame(t, read1, write)
}

func TestNewBusArbiterHasMasterPortAndSlavePortArray(t *testing.T) {
	c := NewBusArbiter(Defaults(), BusRead)

	mst := c.Port("mst")
	require.NotNil(t, mst)
	assert.Equal(t, ir.Out, mst.Direction())

	var slv ir.NodeArray
	for _, a := range c.PortArrays() {
		if a.Name() == "bsv_array" {
			slv = a
		}
	}
	require.NotNil(t, slv)

	sizeParam, ok := slv.Size().(*ir.Parameter)
	require.True(t, ok)
	assert.Equal(t, "NUM_SLAVE_PORTS", sizeParam.Name())

	base, ok := slv.Base().(*ir.Port)
	require.True(t, ok)
	assert.Equal(t, ir.In, base.Direction())
}

func TestNewBusArbiterCarriesInterconnectParameters(t *testing.T) {
	c := NewBusArbiter(Defaults(), BusWrite)
	for _, name := range []string{"NUM_SLAVE_PORTS", "ARB_METHOD", "MAX_OUTSTANDING", "RAM_CONFIG"} {
		require.NotNil(t, c.Parameter(name), "missing parameter %q", name)
	}
}
