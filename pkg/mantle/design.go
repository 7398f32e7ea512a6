package mantle

import (
	"fmt"

	"github.com/fletchgen/cerata/pkg/arrowschema"
	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
)

// bufferRegName names the MMIO register that carries one buffer's address
// for a field, distinguishing buffers by index since the schema front-end
// doesn't carry Arrow's buffer-kind labels (validity/offsets/values).
func bufferRegName(rbName string, field arrowschema.Field, bufIdx int) string {
	return fmt.Sprintf("%s_%s_buf%d", rbName, field.Name, bufIdx)
}

// defaultRegs returns the always-present start/stop/reset/idle/busy/done/
// result registers every kernel gets. Grounded on
// fletchgen::GetDefaultRegs (design.cc); start/stop/reset were STROBE
// registers in the original's three-value Behavior enum, collapsed here
// onto MmioControl since both are host-driven and share its OUT-from-mmio
// direction (see DESIGN.md Open Questions).
func defaultRegs() []domain.MmioReg {
	return []domain.MmioReg{
		{Function: domain.MmioDefault, Behavior: domain.MmioControl, Name: "start", Doc: "Start the kernel.", Width: 1},
		{Function: domain.MmioDefault, Behavior: domain.MmioControl, Name: "stop", Doc: "Stop the kernel.", Width: 1},
		{Function: domain.MmioDefault, Behavior: domain.MmioControl, Name: "reset", Doc: "Reset the kernel.", Width: 1},
		{Function: domain.MmioDefault, Behavior: domain.MmioStatus, Name: "idle", Doc: "Kernel idle status.", Width: 1},
		{Function: domain.MmioDefault, Behavior: domain.MmioStatus, Name: "busy", Doc: "Kernel busy status.", Width: 1},
		{Function: domain.MmioDefault, Behavior: domain.MmioStatus, Name: "done", Doc: "Kernel done status.", Width: 1},
		{Function: domain.MmioDefault, Behavior: domain.MmioStatus, Name: "result", Doc: "Kernel result.", Width: 64},
	}
}

// recordBatchRegs returns, per batch, a first/last index control register
// pair and one buffer-address control register per buffer of every
// non-ignored field. Grounded on fletchgen::GetRecordBatchRegs (design.cc)
// and spec.md 4.8 ("buffer addresses ... delivered through dedicated MMIO
// registers").
func recordBatchRegs(descs []arrowschema.RecordBatchDescription) []domain.MmioReg {
	var out []domain.MmioReg
	for _, d := range descs {
		out = append(out,
			domain.MmioReg{Function: domain.MmioBatch, Behavior: domain.MmioControl, Name: d.Name + "_firstidx", Doc: d.Name + " first index.", Width: 32},
			domain.MmioReg{Function: domain.MmioBatch, Behavior: domain.MmioControl, Name: d.Name + "_lastidx", Doc: d.Name + " last index (exclusive).", Width: 32},
		)
	}
	for _, d := range descs {
		for _, field := range d.NonIgnored() {
			for i := 0; i < arrowschema.BufferCount(field); i++ {
				out = append(out, domain.MmioReg{
					Function: domain.MmioBuffer,
					Behavior: domain.MmioControl,
					Name:     bufferRegName(d.Name, field, i),
					Doc:      fmt.Sprintf("Buffer address for %s %s buffer %d.", d.Name, field.Name, i),
					Width:    64,
				})
			}
		}
	}
	return out
}

// profilingRegs returns the global profile_enable/profile_clear registers
// when any non-ignored field across descs is marked Profile. Grounded on
// fletchgen::GetProfilingRegs (profiler.cc); profile_clear was a STROBE
// register in the original, collapsed onto MmioControl for the same
// reason as defaultRegs.
func profilingRegs(descs []arrowschema.RecordBatchDescription) []domain.MmioReg {
	for _, d := range descs {
		for _, field := range d.NonIgnored() {
			if field.Profile {
				return []domain.MmioReg{
					{Function: domain.MmioProfile, Behavior: domain.MmioControl, Name: "profile_enable", Doc: "Activates profiler counting when this bit is high.", Width: 1},
					{Function: domain.MmioProfile, Behavior: domain.MmioControl, Name: "profile_clear", Doc: "Resets profiler counters when this bit is asserted.", Width: 1},
				}
			}
		}
	}
	return nil
}

// Design is the top-level assembly: every generated component plus the
// register file and schema descriptions they were built from, kept around
// for a VHDL backend to emit in dependency order. Grounded on
// fletchgen::Design (design.h/design.cc) and spec.md 4.9/6.
type Design struct {
	KernelName   string
	Batches      []*RecordBatch
	Regs         []domain.MmioReg
	MmioComp     *ir.Component
	KernelComp   *ir.Component
	NucleusComp  *Nucleus
	MantleComp   *Mantle
}

// NewDesign builds every component of a design named kernelName from
// descs, in the same bottom-up order as fletchgen::Design's constructor:
// RecordBatches first, then the merged MMIO register file, then kernel,
// nucleus and mantle. customRegs are appended as MmioKernel-function
// registers (see domain.ParseCustomRegs for building them from "c:32:foo"
// style command-line specs). axiSpec sizes the AXI4-Lite control bus.
func NewDesign(kernelName string, descs []arrowschema.RecordBatchDescription, customRegs []domain.MmioReg, axiSpec domain.Axi4LiteSpec) *Design {
	batches := make([]*RecordBatch, len(descs))
	for i, d := range descs {
		batches[i] = NewRecordBatch(d)
	}

	profRegs := profilingRegs(descs)
	var regs []domain.MmioReg
	regs = append(regs, defaultRegs()...)
	regs = append(regs, recordBatchRegs(descs)...)
	regs = append(regs, customRegs...)
	regs = append(regs, profRegs...)
	domain.AllocateAddresses(regs)

	mmioComp := domain.NewMmioComponent(kernelName+"_mmio", regs, axiSpec)
	kernelComp := NewKernelInterface(kernelName, batches, mmioComp, regs)
	nucleus := NewNucleus(kernelName+"_nucleus", batches, kernelComp, mmioComp, regs, axiSpec, len(profRegs) > 0)
	mantle := NewMantle(kernelName+"_mantle", batches, nucleus.Component)

	return &Design{
		KernelName:  kernelName,
		Batches:     batches,
		Regs:        regs,
		MmioComp:    mmioComp,
		KernelComp:  kernelComp,
		NucleusComp: nucleus,
		MantleComp:  mantle,
	}
}

// Generate builds a Design the same way NewDesign does, but recovers any
// StructureError/DirectionError/TypeError/GenericError panic raised during
// construction and returns it as an error instead of letting it escape,
// matching go-corset's cmd.Execute pattern of turning internal failures
// into a reported error rather than a crash.
func Generate(kernelName string, descs []arrowschema.RecordBatchDescription, customRegs []domain.MmioReg, axiSpec domain.Axi4LiteSpec) (d *Design, err error) {
	defer ir.Recover(&err)
	d = NewDesign(kernelName, descs, customRegs, axiSpec)
	return d, nil
}

// OutputComponents returns every top-level component a backend should
// emit, in the order the original writes them: mantle, nucleus, kernel,
// then one per RecordBatch. Grounded on fletchgen::Design::GetOutputSpec
// (design.cc).
func (d *Design) OutputComponents() []*ir.Component {
	out := []*ir.Component{d.MantleComp.Component, d.NucleusComp.Component, d.KernelComp}
	for _, rb := range d.Batches {
		out = append(out, rb.Component)
	}
	return out
}
