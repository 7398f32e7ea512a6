package mantle

import (
	"strings"

	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
)

// Mantle wraps one Nucleus instance and one instance per RecordBatch,
// wiring Arrow, command and unlock ports between them by field name and
// grouping every RecordBatch's bus port into one arbiter instance per bus
// function. Grounded on fletchgen::Mantle (mantle.cc) and spec.md 4.9.
type Mantle struct {
	*ir.Component
	NucleusInst      *ir.Instance
	RecordBatchInsts map[string]*ir.Instance
	ArbiterInsts     map[domain.BusFunction]*ir.Instance
}

type busRef struct {
	inst *ir.Instance
	port *domain.BusPort
}

// NewMantle builds a Mantle named name, instantiating nucleusComp and one
// instance per batch, and one bus arbiter per distinct bus function found
// across their bus ports. Grounded on fletchgen::Mantle's constructor
// (mantle.cc) and spec.md 4.9.
func NewMantle(name string, batches []*RecordBatch, nucleusComp *ir.Component) *Mantle {
	c := ir.NewComponent(name)

	kcd := mirrorPort(nucleusComp.Port("kcd"))
	if err := c.Add(kcd); err != nil {
		panic(err)
	}
	axi := mirrorPort(nucleusComp.Port("mmio"))
	if err := c.Add(axi); err != nil {
		panic(err)
	}
	bcd := domain.NewClockResetPort("bcd", domain.BusDomain)
	if err := c.Add(bcd); err != nil {
		panic(err)
	}

	m := &Mantle{
		Component:        c,
		RecordBatchInsts: map[string]*ir.Instance{},
		ArbiterInsts:     map[domain.BusFunction]*ir.Instance{},
	}

	m.NucleusInst = c.AddInstanceOf(nucleusComp, "nucleus_inst")
	mustConnect(m.NucleusInst.Port("kcd"), kcd)
	mustConnect(m.NucleusInst.Port("mmio"), axi)

	groups := map[domain.BusFunction][]busRef{}

	for _, rb := range batches {
		rbInst := c.AddInstanceOf(rb.Component, rb.Name()+"_inst")
		m.RecordBatchInsts[rb.Name()] = rbInst
		mustConnect(rbInst.Port("bcd"), bcd)
		mustConnect(rbInst.Port("kcd"), kcd)

		for _, field := range rb.Description.NonIgnored() {
			m.wireField(rb, rbInst, field.Name)
		}

		for _, bp := range rb.BusPorts {
			groups[bp.Function] = append(groups[bp.Function], busRef{inst: rbInst, port: bp})
		}
	}

	for _, function := range []domain.BusFunction{domain.BusRead, domain.BusWrite} {
		refs := groups[function]
		if len(refs) == 0 {
			continue
		}
		m.addArbiter(function, refs)
	}

	return m
}

// wireField connects the Arrow, command and unlock ports named by field
// between rbInst and the Nucleus instance. The Arrow port's connection
// order follows its direction on the RecordBatch side (Read mode sources
// from the RecordBatch, Write mode sinks into it); command and unlock keep
// a fixed order since Nucleus always sources commands and sinks unlocks.
func (m *Mantle) wireField(rb *RecordBatch, rbInst *ir.Instance, fieldName string) {
	arrow := rb.ArrowPorts[fieldName]
	rbArrow := rbInst.Port(arrow.Name())
	nucArrow := m.NucleusInst.Port(arrow.Name())
	if arrow.Direction() == ir.Out {
		mustConnect(nucArrow, rbArrow)
	} else {
		mustConnect(rbArrow, nucArrow)
	}

	cmd := rb.CommandPorts[fieldName]
	mustConnect(rbInst.Port(cmd.Name()), m.NucleusInst.Port(cmd.Name()))

	unl := rb.UnlockPorts[fieldName]
	mustConnect(m.NucleusInst.Port(unl.Name()), rbInst.Port(unl.Name()))
}

// addArbiter instantiates one BusReadArbiterVec/BusWriteArbiterVec for
// function, connects its width parameters to a Mantle-owned bus_param
// bundle prefixed by the function name, forwards a master bus port at
// Mantle's own boundary, and appends every ref's bus port onto the
// arbiter's slave port array. Grounded on fletchgen::Mantle's bus spec
// grouping and TypeMapper::MakeImplicit/Connect(slave_array->Append(), bp)
// pattern (mantle.cc) and spec.md 4.8/4.9.
func (m *Mantle) addArbiter(function domain.BusFunction, refs []busRef) {
	prefix := strings.ToUpper(function.String()) + "_"
	p := prefixedBusParams(prefix)
	if err := p.AddTo(m.Component, function); err != nil {
		panic(err)
	}

	arbComp := domain.NewBusArbiter(domain.Defaults(), function)
	arbInst := m.AddInstanceOf(arbComp, function.String()+"_arbiter_inst")
	m.ArbiterInsts[function] = arbInst
	connectArbiterParams(arbInst, p)

	mst := domain.NewBusPort(function.String()+"_mst", ir.Out, p, function)
	if err := m.Add(mst.Port); err != nil {
		panic(err)
	}
	mustConnect(mst.Port, arbInst.Port("mst"))

	if numSlaves := arbInst.Parameter("NUM_SLAVE_PORTS"); numSlaves != nil {
		numSlaves.SetValue(ir.NewIntLiteral(int64(len(refs))))
	}

	slaves := findPortArray(arbInst, "bsv_array")
	for _, ref := range refs {
		busPort := ref.inst.Port(ref.port.Name())
		mustConnect(slaves.Append(), busPort)
	}
}

// mirrorPort copies src's name, type and direction onto a freestanding
// port, used to forward a Nucleus-level clock/reset or MMIO port outward
// onto Mantle's own boundary unchanged.
func mirrorPort(src *ir.Port) *ir.Port {
	p := ir.NewPort(src.Name(), src.Type().Copy(nil), src.Direction())
	p.SetDomain(src.Domain())
	return p
}

// prefixedBusParams returns a fresh BusParam bundle with every parameter
// name prefixed, so more than one bus function's width parameters can
// coexist on the same Mantle component.
func prefixedBusParams(prefix string) domain.BusParam {
	return domain.BusParam{
		AddrWidth:   ir.NewIntParameter(prefix+"BUS_ADDR_WIDTH", 64),
		DataWidth:   ir.NewIntParameter(prefix+"BUS_DATA_WIDTH", 512),
		StrobeWidth: ir.NewIntParameter(prefix+"BUS_STROBE_WIDTH", 64),
		LenWidth:    ir.NewIntParameter(prefix+"BUS_LEN_WIDTH", 8),
		BurstStep:   ir.NewIntParameter(prefix+"BUS_BURST_STEP_LEN", 1),
		BurstMax:    ir.NewIntParameter(prefix+"BUS_BURST_MAX_LEN", 16),
	}
}

// connectArbiterParams wires arbInst's own width parameters (always named
// "BUS_*", regardless of prefix) to the matching field of p, skipping any
// pair where either side is absent (a read-function arbiter, for one, has
// no BUS_STROBE_WIDTH parameter).
func connectArbiterParams(arbInst *ir.Instance, p domain.BusParam) {
	pairs := []struct {
		name string
		src  *ir.Parameter
	}{
		{"BUS_ADDR_WIDTH", p.AddrWidth},
		{"BUS_DATA_WIDTH", p.DataWidth},
		{"BUS_STROBE_WIDTH", p.StrobeWidth},
		{"BUS_LEN_WIDTH", p.LenWidth},
		{"BUS_BURST_STEP_LEN", p.BurstStep},
		{"BUS_BURST_MAX_LEN", p.BurstMax},
	}
	for _, pr := range pairs {
		dst := arbInst.Parameter(pr.name)
		if dst == nil || pr.src == nil {
			continue
		}
		mustConnect(dst, pr.src)
	}
}
