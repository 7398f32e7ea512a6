package domain

import "github.com/fletchgen/cerata/pkg/ir"

var arbiterComponents = map[BusFunction]*ir.Component{}

// NewBusArbiter returns the cached primitive BusReadArbiterVec or
// BusWriteArbiterVec component: a master BusPort plus an appended slave
// PortArray sized by a NUM_SLAVE_PORTS parameter, matching the VHDL
// primitives of the same name. Grounded on fletchgen::bus_arbiter (bus.cc)
// and spec.md 4.8.
func NewBusArbiter(p BusParam, function BusFunction) *ir.Component {
	if c, ok := arbiterComponents[function]; ok {
		return c
	}

	name := "BusReadArbiterVec"
	if function == BusWrite {
		name = "BusWriteArbiterVec"
	}

	c := ir.NewComponent(name)
	if err := p.AddTo(c, function); err != nil {
		panic(err)
	}

	numSlaves := ir.NewIntParameter("NUM_SLAVE_PORTS", 0)
	for _, obj := range []ir.Object{
		numSlaves,
		ir.NewParameter("ARB_METHOD", ir.StringType(), ir.NewStringLiteral("RR-STICKY")),
		ir.NewIntParameter("MAX_OUTSTANDING", 4),
		ir.NewParameter("RAM_CONFIG", ir.StringType(), ir.NewStringLiteral("")),
		ir.NewParameter("SLV_REQ_SLICES", ir.BooleanType(), ir.NewBoolLiteral(true)),
		ir.NewParameter("MST_REQ_SLICE", ir.BooleanType(), ir.NewBoolLiteral(true)),
		ir.NewParameter("MST_DAT_SLICE", ir.BooleanType(), ir.NewBoolLiteral(true)),
		ir.NewParameter("SLV_DAT_SLICES", ir.BooleanType(), ir.NewBoolLiteral(true)),
	} {
		if err := c.Add(obj); err != nil {
			panic(err)
		}
	}

	mst := NewBusPort("mst", ir.Out, p, function)
	if err := c.Add(mst.Port); err != nil {
		panic(err)
	}

	slvBase := ir.NewPort("bsv", BusType(p, function), ir.In)
	slvArr := ir.NewPortArray("bsv_array", slvBase, numSlaves)
	if err := c.Add(slvArr); err != nil {
		panic(err)
	}

	c.SetMeta(ir.MetaPrimitive, "true")
	c.SetMeta(ir.MetaLibrary, "work")
	c.SetMeta(ir.MetaPackage, "Interconnect_pkg")

	arbiterComponents[function] = c
	return c
}
