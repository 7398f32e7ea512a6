package domain

import "github.com/fletchgen/cerata/pkg/ir"

// BusDomain and KernelDomain are the two clock domains every RecordBatch
// primitive straddles: the bus-facing side and the kernel-facing side.
// Grounded on fletchgen's bus_cd()/kernel_cd() (basic_types, referenced
// throughout bus.cc/mmio.cc/recordbatch.cc) and spec.md 3.1 "Clock Domain".
var (
	BusDomain    = ir.NewClockDomain("bus")
	KernelDomain = ir.NewClockDomain("kernel")
)

var clockResetType ir.Type

// ClockResetType returns the cached clock/reset bundle {clk, reset}
// carried by every clock-domain-bound port pair in the design.
func ClockResetType() ir.Type {
	if clockResetType != nil {
		return clockResetType
	}
	rec := ir.NewRecord("cr")
	rec.AddField(ir.NewField("clk", ir.BitType(), false))
	rec.AddField(ir.NewField("reset", ir.BitType(), false))
	clockResetType = rec
	return clockResetType
}

// NewClockResetPort builds an IN clock/reset port named name on dom.
func NewClockResetPort(name string, dom *ir.ClockDomain) *ir.Port {
	p := ir.NewPort(name, ClockResetType(), ir.In)
	p.SetDomain(dom)
	return p
}
