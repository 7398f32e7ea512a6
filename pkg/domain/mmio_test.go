package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletchgen/cerata/pkg/ir"
)

func TestAllocateAddressesPacksAtFourByteBoundaries(t *testing.T) {
	regs := []MmioReg{
		{Name: "a", Width: 1},
		{Name: "b", Width: 32},
		{Name: "c", Width: 33},
	}
	next := AllocateAddresses(regs)

	require.NotNil(t, regs[0].Addr)
	assert.Equal(t, 0, *regs[0].Addr)
	require.NotNil(t, regs[1].Addr)
	assert.Equal(t, 4, *regs[1].Addr)
	require.NotNil(t, regs[2].Addr)
	assert.Equal(t, 8, *regs[2].Addr)
	assert.Equal(t, 16, next)
}

func TestAllocateAddressesRespectsPinnedAddress(t *testing.T) {
	pinned := 100
	regs := []MmioReg{
		{Name: "pinned", Width: 32, Addr: &pinned},
		{Name: "after", Width: 1},
	}
	AllocateAddresses(regs)

	assert.Equal(t, 100, *regs[0].Addr)
	require.NotNil(t, regs[1].Addr)
	assert.Equal(t, 104, *regs[1].Addr)
}

func TestParseCustomRegsSkipsMalformedSpecs(t *testing.T) {
	regs := ParseCustomRegs([]string{"c:32:foo", "garbage", "s:1:bar", "c:notanumber:baz"})

	require.Len(t, regs, 2)
	assert.Equal(t, "foo", regs[0].Name)
	assert.Equal(t, MmioControl, regs[0].Behavior)
	assert.Equal(t, 32, regs[0].Width)
	assert.Equal(t, MmioKernel, regs[0].Function)

	assert.Equal(t, "bar", regs[1].Name)
	assert.Equal(t, MmioStatus, regs[1].Behavior)
	assert.Equal(t, 1, regs[1].Width)
}

func TestExposeToKernelReflectsFunction(t *testing.T) {
	assert.True(t, ExposeToKernel(MmioDefault))
	assert.True(t, ExposeToKernel(MmioKernel))
	assert.True(t, ExposeToKernel(MmioBatch))
	assert.False(t, ExposeToKernel(MmioBuffer))
	assert.False(t, ExposeToKernel(MmioProfile))
}

func TestNewMmioComponentIsCachedPerNameAndNamesPortsByConvention(t *testing.T) {
	spec := Axi4LiteSpec{AddrWidth: ir.NewIntParameter("maw", 32), DataWidth: ir.NewIntParameter("mdw", 32)}
	regs := []MmioReg{
		{Name: "ctrl", Behavior: MmioControl, Width: 32},
		{Name: "status", Behavior: MmioStatus, Width: 1},
	}

	a := NewMmioComponent("test_mmio_unique", regs, spec)
	b := NewMmioComponent("test_mmio_unique", regs, spec)
	assert.Same(t, a, b)

	ctrlPort := a.Port("f_ctrl_write_data")
	require.NotNil(t, ctrlPort)
	assert.Equal(t, ir.Out, ctrlPort.Direction())

	statusPort := a.Port("f_status_data")
	require.NotNil(t, statusPort)
	assert.Equal(t, ir.In, statusPort.Direction())

	require.NotNil(t, a.Port("kcd"))
	require.NotNil(t, a.Port("mmio"))
}
