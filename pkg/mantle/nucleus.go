package mantle

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fletchgen/cerata/pkg/arrowschema"
	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
	"github.com/fletchgen/cerata/pkg/transform"
)

var arrayCmdCtrlMerger *ir.Component

// ArrayCmdCtrlMerger returns the cached primitive that merges a PortArray
// of MMIO-provided buffer address registers into a command stream's ctrl
// field: a nucleus-facing command port carrying the full ctrl field, a
// kernel-facing command port without it, and a "ctrl" PortArray grown one
// element per buffer at each instantiation site. Grounded on
// fletchgen::ArrayCmdCtrlMerger (nucleus.cc) and spec.md 4.9.
func ArrayCmdCtrlMerger() *ir.Component {
	if arrayCmdCtrlMerger != nil {
		return arrayCmdCtrlMerger
	}

	tagWidth := ir.NewIntParameter("tag_width", 1)
	numAddr := ir.NewIntParameter("num_addr", 0)
	idxWidth := ir.NewIntParameter("index_width", 32)

	nucleusCmd := domain.CommandPort("nucleus_cmd", ir.Out, tagWidth, idxWidth, ir.NewIntLiteral(bufferAddrWidth))
	kernelCmd := domain.CommandPort("kernel_cmd", ir.In, tagWidth, idxWidth, nil)
	ctrlBase := ir.NewPort("ctrl", ir.VectorOfWidth(bufferAddrWidth), ir.In)
	ctrl := ir.NewPortArray("ctrl", ctrlBase, numAddr)

	c := ir.NewComponent("ArrayCmdCtrlMerger")
	for _, obj := range []ir.Object{tagWidth, numAddr, idxWidth, nucleusCmd, kernelCmd} {
		if err := c.Add(obj); err != nil {
			panic(err)
		}
	}
	if err := c.Add(ctrl); err != nil {
		panic(err)
	}
	c.SetMeta(ir.MetaPrimitive, "true")
	c.SetMeta(ir.MetaLibrary, "work")
	c.SetMeta(ir.MetaPackage, "Array_pkg")

	arrayCmdCtrlMerger = c
	return c
}

// Nucleus wraps a Kernel instance and an MMIO instance, merging each
// RecordBatch field's MMIO buffer-address registers into its command
// stream's ctrl field before it ever reaches the kernel. Its own boundary
// mirrors each RecordBatch's arrow, full command and unlock ports so
// Mantle can wire Nucleus and RecordBatches 1:1 by field name. Grounded
// on fletchgen::Nucleus (nucleus.cc) and spec.md 4.9.
type Nucleus struct {
	*ir.Component
	KernelInst *ir.Instance
	MmioInst   *ir.Instance
}

// NewNucleus builds a Nucleus named name for batches, instantiating kernel
// and mmio, one ArrayCmdCtrlMerger per non-ignored field, and, when
// enableProfiling is set, a stream profiler on every field marked
// Profile=true (spec.md 4.7, 4.9).
func NewNucleus(name string, batches []*RecordBatch, kernel, mmioComp *ir.Component, mmioRegs []domain.MmioReg, axiSpec domain.Axi4LiteSpec, enableProfiling bool) *Nucleus {
	c := ir.NewComponent(name)
	if err := c.Add(ir.NewIntParameter("BUS_ADDR_WIDTH", 64)); err != nil {
		panic(err)
	}

	kcd := domain.NewClockResetPort("kcd", domain.KernelDomain)
	if err := c.Add(kcd); err != nil {
		panic(err)
	}
	axi := domain.NewAxiLitePort(ir.In, axiSpec)
	if err := c.Add(axi); err != nil {
		panic(err)
	}

	n := &Nucleus{Component: c}
	n.KernelInst = c.AddInstanceOf(kernel, "kernel_inst")
	mustConnect(n.KernelInst.Port("kcd"), kcd)

	n.MmioInst = c.AddInstanceOf(mmioComp, "mmio_inst")
	mustConnect(n.MmioInst.Port("kcd"), kcd)
	mustConnect(n.MmioInst.Port("mmio"), axi)

	bufPorts := bufferRegisterPorts(n.MmioInst, mmioRegs)
	bufIdx := 0

	var profileNodes []ir.Node
	for _, rb := range batches {
		for _, field := range rb.Description.NonIgnored() {
			nucleusArrow := n.addField(rb, field, bufPorts, &bufIdx)
			if field.Profile {
				profileNodes = append(profileNodes, nucleusArrow)
			}
		}
	}

	for _, reg := range mmioRegs {
		if !domain.ExposeToKernel(reg.Function) {
			continue
		}
		kernelPort := n.KernelInst.Port(reg.Name)
		mmioPort := mmioPortFor(n.MmioInst, reg)
		if kernelPort == nil || mmioPort == nil {
			continue
		}
		if mmioPort.Direction() == ir.Out {
			mustConnect(kernelPort, mmioPort)
		} else {
			mustConnect(mmioPort, kernelPort)
		}
	}

	transform.SignalizePorts(c)
	transform.ExpandStreams(c)

	if enableProfiling && len(profileNodes) > 0 {
		enable, clear := profileControls(n.MmioInst, mmioRegs)
		if enable != nil && clear != nil {
			transform.EnableStreamProfiling(c, profileNodes, enable, clear)
		} else {
			log.Warn("profiling requested on one or more fields but no MMIO profile-function registers were found, skipping")
		}
	}

	return n
}

// profileControls looks up the enable/clear registers exposed by the MMIO
// register file under the profile function, returning nil, nil if either
// is absent.
func profileControls(mmioInst *ir.Instance, regs []domain.MmioReg) (ir.Node, ir.Node) {
	var enable, clear *ir.Port
	for _, reg := range regs {
		if reg.Function != domain.MmioProfile {
			continue
		}
		switch reg.Name {
		case "profile_enable":
			enable = mmioPortFor(mmioInst, reg)
		case "profile_clear":
			clear = mmioPortFor(mmioInst, reg)
		}
	}
	if enable == nil || clear == nil {
		return nil, nil
	}
	return enable, clear
}

func (n *Nucleus) addField(rb *RecordBatch, field arrowschema.Field, bufPorts []*ir.Port, bufIdx *int) *ir.Port {
	arrow := rb.ArrowPorts[field.Name]
	unl := rb.UnlockPorts[field.Name]

	nucleusArrow := ir.NewPort(arrow.Name(), arrow.Type().Copy(nil), invert(arrow.Direction()))
	nucleusArrow.SetDomain(arrow.Domain())
	if err := n.Add(nucleusArrow); err != nil {
		panic(err)
	}
	if arrow.Direction() == ir.Out {
		mustConnect(n.KernelInst.Port(arrow.Name()), nucleusArrow)
	} else {
		mustConnect(nucleusArrow, n.KernelInst.Port(arrow.Name()))
	}

	nucleusUnl := ir.NewPort(unl.Name(), unl.Type().Copy(nil), invert(unl.Direction()))
	nucleusUnl.SetDomain(unl.Domain())
	if err := n.Add(nucleusUnl); err != nil {
		panic(err)
	}
	mustConnect(n.KernelInst.Port(unl.Name()), nucleusUnl)

	cmd := rb.CommandPorts[field.Name]
	nucleusCmd := ir.NewPort(cmd.Name(), cmd.Type().Copy(nil), invert(cmd.Direction()))
	nucleusCmd.SetDomain(cmd.Domain())
	if err := n.Add(nucleusCmd); err != nil {
		panic(err)
	}

	merger := n.AddInstanceOf(ArrayCmdCtrlMerger(), cmd.Name()+"_accm_inst")
	bufCount := arrowschema.BufferCount(field)
	if p := merger.Parameter("num_addr"); p != nil {
		p.SetValue(ir.NewIntLiteral(int64(bufCount)))
	}

	mustConnect(nucleusCmd, merger.Port("nucleus_cmd"))
	mustConnect(merger.Port("kernel_cmd"), n.KernelInst.Port(cmd.Name()))

	ctrl := findPortArray(merger, "ctrl")
	for i := 0; i < bufCount && *bufIdx < len(bufPorts); i++ {
		mustConnect(ctrl.Append(), bufPorts[*bufIdx])
		*bufIdx++
	}

	return nucleusArrow
}

func invert(dir ir.Direction) ir.Direction {
	if dir == ir.Out {
		return ir.In
	}
	return ir.Out
}

func findPortArray(g ir.Graph, name string) *ir.PortArray {
	for _, pa := range g.PortArrays() {
		if pa.Name() == name {
			return pa
		}
	}
	return nil
}

// bufferRegisterPorts returns mmioInst's decoded buffer-address register
// ports, in declaration order, for connecting into each field's
// ArrayCmdCtrlMerger.ctrl array.
func bufferRegisterPorts(mmioInst *ir.Instance, regs []domain.MmioReg) []*ir.Port {
	var out []*ir.Port
	for _, reg := range regs {
		if reg.Function == domain.MmioBuffer {
			if p := mmioPortFor(mmioInst, reg); p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

func mmioPortFor(g ir.Graph, reg domain.MmioReg) *ir.Port {
	suffix := "_data"
	if reg.Behavior == domain.MmioControl {
		suffix = "_write_data"
	}
	return g.Port(fmt.Sprintf("f_%s%s", reg.Name, suffix))
}
