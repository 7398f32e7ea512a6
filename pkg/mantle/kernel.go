package mantle

import (
	"github.com/fletchgen/cerata/pkg/arrowschema"
	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
)

// NewKernelInterface builds the Component describing the contract a user
// kernel implementation must honor: a kcd port, an inverted copy of every
// RecordBatch's Arrow and unlock ports, an abstracted command port per
// field with the ctrl field stripped out (the buffer addresses
// ArrayCmdCtrlMerger hides), and an inverted copy of every MMIO register
// exposed to the kernel. This Component carries no internals of its own;
// Nucleus instantiates it exactly like any other child. Grounded on
// fletchgen::Kernel (kernel.cc) and spec.md 4.9.
func NewKernelInterface(name string, batches []*RecordBatch, mmio *ir.Component, mmioRegs []domain.MmioReg) *ir.Component {
	c := ir.NewComponent(name)

	kcd := domain.NewClockResetPort("kcd", domain.KernelDomain)
	if err := c.Add(kcd); err != nil {
		panic(err)
	}

	for _, rb := range batches {
		for _, field := range rb.Description.NonIgnored() {
			addKernelFieldPorts(c, rb, field)
		}
	}

	for _, reg := range mmioRegs {
		if !domain.ExposeToKernel(reg.Function) {
			continue
		}
		addKernelMmioPort(c, mmio, reg)
	}

	return c
}

func addKernelFieldPorts(c *ir.Component, rb *RecordBatch, field arrowschema.Field) {
	arrow := rb.ArrowPorts[field.Name]
	kernelArrow := ir.NewPort(arrow.Name(), arrow.Type().Copy(nil), invert(arrow.Direction()))
	kernelArrow.SetDomain(arrow.Domain())
	if err := c.Add(kernelArrow); err != nil {
		panic(err)
	}

	unl := rb.UnlockPorts[field.Name]
	kernelUnl := ir.NewPort(unl.Name(), unl.Type().Copy(nil), invert(unl.Direction()))
	kernelUnl.SetDomain(unl.Domain())
	if err := c.Add(kernelUnl); err != nil {
		panic(err)
	}

	cmd := rb.CommandPorts[field.Name]
	tagWidth := ir.NewIntLiteral(1)
	idxWidth := ir.NewIntLiteral(32)
	abstracted := domain.CommandPort(cmd.Name(), invert(cmd.Direction()), tagWidth, idxWidth, nil)
	abstracted.SetDomain(cmd.Domain())
	if err := c.Add(abstracted); err != nil {
		panic(err)
	}
}

func addKernelMmioPort(c *ir.Component, mmio *ir.Component, reg domain.MmioReg) {
	mmioPort := mmioPortFor(mmio, reg)
	if mmioPort == nil {
		return
	}
	kernelPort := ir.NewPort(reg.Name, mmioPort.Type().Copy(nil), invert(mmioPort.Direction()))
	kernelPort.SetDomain(mmioPort.Domain())
	if err := c.Add(kernelPort); err != nil {
		panic(err)
	}
}
