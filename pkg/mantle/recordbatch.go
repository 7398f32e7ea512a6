// Package mantle is the orchestration layer: it builds RecordBatch
// components from a schema description, composes a Kernel and an MMIO
// register file into a Nucleus, and wraps the Nucleus plus bus arbiters
// into a Mantle (spec.md 4.9). Grounded on
// original_source/codegen/cpp/fletchgen/src/fletchgen/{recordbatch,nucleus,
// mantle,design,kernel}.cc.
package mantle

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fletchgen/cerata/pkg/arrowschema"
	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
)

// bufferAddrWidth is the bit width of one buffer address register merged
// into a command stream's ctrl field by ArrayCmdCtrlMerger.
const bufferAddrWidth = 64

// RecordBatch wraps the ir.Component built by NewRecordBatch together with
// the field-derived ports callers need to locate without re-walking the
// component's object list. Grounded on fletchgen::RecordBatch (recordbatch.h).
type RecordBatch struct {
	*ir.Component
	Description  arrowschema.RecordBatchDescription
	ArrowPorts   map[string]*ir.Port
	CommandPorts map[string]*ir.Port
	UnlockPorts  map[string]*ir.Port
	BusPorts     []*domain.BusPort
}

// NewRecordBatch builds a RecordBatch component for desc: bus width
// parameters, bus/kernel clock-reset ports, and for every non-ignored
// field an Arrow data port, a command port, an unlock port, an
// ArrayReader/ArrayWriter instance wired to all three, and a
// uniquely-named forwarded bus port. Grounded on fletchgen::RecordBatch's
// constructor and AddArrays (recordbatch.cc) and spec.md 4.9.
func NewRecordBatch(desc arrowschema.RecordBatchDescription) *RecordBatch {
	p := domain.Defaults()
	bf := desc.Mode.BusFunction()

	c := ir.NewComponent(desc.Name)
	if err := p.AddTo(c, bf); err != nil {
		panic(err)
	}

	bcd := domain.NewClockResetPort("bcd", domain.BusDomain)
	kcd := domain.NewClockResetPort("kcd", domain.KernelDomain)
	for _, port := range []*ir.Port{bcd, kcd} {
		if err := c.Add(port); err != nil {
			panic(err)
		}
	}

	rb := &RecordBatch{
		Component:    c,
		Description:  desc,
		ArrowPorts:   map[string]*ir.Port{},
		CommandPorts: map[string]*ir.Port{},
		UnlockPorts:  map[string]*ir.Port{},
	}

	for _, field := range desc.NonIgnored() {
		rb.addArray(field, p, bf)
	}

	return rb
}

func (rb *RecordBatch) addArray(field arrowschema.Field, p domain.BusParam, bf domain.BusFunction) {
	log.Debugf("recordbatch %q: instantiating array for field %q", rb.Name(), field.Name)
	if rb.Description.Mode == arrowschema.Write {
		log.Warn("ArrayWriter support is experimental: dvalid is ignored and clock domain crossing is unsupported")
	}

	arrowDir := ir.Out
	if rb.Description.Mode == arrowschema.Write {
		arrowDir = ir.In
	}
	arrowPort := arrowschema.NewDataPort(field, arrowDir)
	arrowPort.SetDomain(domain.KernelDomain)
	if err := rb.Add(arrowPort); err != nil {
		panic(err)
	}

	tagWidth := ir.NewIntLiteral(1)
	idxWidth := ir.NewIntLiteral(32)
	ctrlWidth := ir.NewIntLiteral(int64(arrowschema.BufferCount(field)) * bufferAddrWidth)
	cmdPort := domain.CommandPort(field.Name+"_cmd", ir.In, tagWidth, idxWidth, ctrlWidth)
	cmdPort.SetDomain(domain.KernelDomain)
	if err := rb.Add(cmdPort); err != nil {
		panic(err)
	}

	unlPort := domain.UnlockPort(field.Name+"_unl", ir.Out, tagWidth)
	unlPort.SetDomain(domain.KernelDomain)
	if err := rb.Add(unlPort); err != nil {
		panic(err)
	}

	arrayComp := arrowschema.ArrayComponentFor(rb.Description.Mode)
	inst := rb.AddInstanceOf(arrayComp, field.Name+"_inst")

	if cfg := inst.Parameter("CFG"); cfg != nil {
		cfg.SetValue(ir.NewStringLiteral(arrowschema.ConfigString(field)))
	}

	connectParam(inst, rb.Component, "BUS_ADDR_WIDTH")
	connectParam(inst, rb.Component, "BUS_DATA_WIDTH")
	if rb.Description.Mode == arrowschema.Write {
		connectParam(inst, rb.Component, "BUS_STROBE_WIDTH")
	}
	connectParam(inst, rb.Component, "BUS_LEN_WIDTH")
	connectParam(inst, rb.Component, "BUS_BURST_STEP_LEN")
	connectParam(inst, rb.Component, "BUS_BURST_MAX_LEN")

	mustConnect(inst.Port("kcd"), rb.Component.Port("kcd"))
	mustConnect(inst.Port("bcd"), rb.Component.Port("bcd"))

	mapper := domain.NewArrayStreamMapper(arrowPort.Type())
	arrowPort.Type().AddMapper(mapper, false)

	if rb.Description.Mode == arrowschema.Read {
		mustConnect(arrowPort, inst.Port("out"))
	} else {
		mustConnect(inst.Port("in"), arrowPort)
	}

	mustConnect(inst.Port("cmd"), cmdPort)
	mustConnect(unlPort, inst.Port("unl"))

	busName := fmt.Sprintf("%s_%s_bus", rb.Name(), field.Name)
	busPort := domain.NewBusPort(busName, ir.Out, p, bf)
	busPort.SetDomain(domain.BusDomain)
	if err := rb.Add(busPort.Port); err != nil {
		panic(err)
	}
	mustConnect(busPort.Port, inst.Port("bus"))

	rb.ArrowPorts[field.Name] = arrowPort
	rb.CommandPorts[field.Name] = cmdPort
	rb.UnlockPorts[field.Name] = unlPort
	rb.BusPorts = append(rb.BusPorts, busPort)
}

func connectParam(inst *ir.Instance, comp *ir.Component, name string) {
	ip := inst.Parameter(name)
	cp := comp.Parameter(name)
	if ip == nil || cp == nil {
		return
	}
	mustConnect(ip, cp)
}

func mustConnect(dst, src ir.Node) {
	if _, err := ir.Connect(dst, src); err != nil {
		if _, isWarning := err.(*ir.DomainWarning); !isWarning {
			panic(err)
		}
	}
}
