// Package domain is the Fletchgen-style domain library built on pkg/ir and
// pkg/transform: bus interface parameters, bus/AXI4-Lite port factories,
// array reader/writer primitive declarations and the bus arbiter stub
// (spec.md 4.8).
package domain

import "github.com/fletchgen/cerata/pkg/ir"

// BusFunction distinguishes a read bus interface from a write one.
type BusFunction int

const (
	BusRead BusFunction = iota
	BusWrite
)

func (f BusFunction) String() string {
	if f == BusWrite {
		return "write"
	}
	return "read"
}

// BusParam bundles the six width/burst parameters that size every bus
// interface in the design. Grounded on fletchgen::BusParam (bus.h) and
// spec.md 4.8.
type BusParam struct {
	AddrWidth   *ir.Parameter
	DataWidth   *ir.Parameter
	StrobeWidth *ir.Parameter
	LenWidth    *ir.Parameter
	BurstStep   *ir.Parameter
	BurstMax    *ir.Parameter
}

// Defaults returns a fresh BusParam with the widths original_source's
// fletchgen/bus.h uses throughout (spec.md 4.8 EXPANSION). The
// strobe-width parameter is always constructed, but All and AddTo include
// it only for BusWrite, so a read-mode component does not carry it.
func Defaults() BusParam {
	return BusParam{
		AddrWidth:   ir.NewIntParameter("BUS_ADDR_WIDTH", 64),
		DataWidth:   ir.NewIntParameter("BUS_DATA_WIDTH", 512),
		StrobeWidth: ir.NewIntParameter("BUS_STROBE_WIDTH", 64),
		LenWidth:    ir.NewIntParameter("BUS_LEN_WIDTH", 8),
		BurstStep:   ir.NewIntParameter("BUS_BURST_STEP_LEN", 1),
		BurstMax:    ir.NewIntParameter("BUS_BURST_MAX_LEN", 16),
	}
}

// All returns every parameter in the bundle; function selects whether the
// strobe-width parameter (write-only) is included.
func (p BusParam) All(function BusFunction) []ir.Object {
	out := []ir.Object{p.AddrWidth, p.DataWidth}
	if function == BusWrite {
		out = append(out, p.StrobeWidth)
	}
	out = append(out, p.LenWidth, p.BurstStep, p.BurstMax)
	return out
}

// ConnectBusParam wires each of src's bus-width parameters to the
// identically-named parameter on dst, implementing the spec's
// "ConnectBusParam wires matching-named parameters on two graphs" (4.8).
func ConnectBusParam(dst, src BusParam) error {
	pairs := [][2]*ir.Parameter{
		{dst.AddrWidth, src.AddrWidth},
		{dst.DataWidth, src.DataWidth},
		{dst.StrobeWidth, src.StrobeWidth},
		{dst.LenWidth, src.LenWidth},
		{dst.BurstStep, src.BurstStep},
		{dst.BurstMax, src.BurstMax},
	}
	for _, pair := range pairs {
		if _, err := ir.Connect(pair[0], pair[1]); err != nil {
			if _, isWarning := err.(*ir.DomainWarning); !isWarning {
				return err
			}
		}
	}
	return nil
}

// AddTo adds every parameter in the bundle to g.
func (p BusParam) AddTo(g ir.Graph, function BusFunction) error {
	for _, obj := range p.All(function) {
		if err := g.Add(obj); err != nil {
			return err
		}
	}
	return nil
}
