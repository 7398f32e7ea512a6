package domain

import (
	"fmt"

	"github.com/fletchgen/cerata/pkg/ir"
)

// Axi4LiteSpec sizes an AXI4-Lite control bus.
type Axi4LiteSpec struct {
	AddrWidth ir.Node
	DataWidth ir.Node
}

// TypeName returns a deterministic name for the type this spec produces,
// built from the names of its width nodes.
func (s Axi4LiteSpec) TypeName() string {
	return fmt.Sprintf("MMIO_A%s_D%s", s.AddrWidth.Name(), s.DataWidth.Name())
}

// axiLiteKey identifies a spec by its width nodes, so repeated calls with
// the same width nodes (literals are interned by value) share one Type
// instance, while distinct parameters never do.
type axiLiteKey struct{ addr, data ir.Node }

var axiLiteTypes = map[axiLiteKey]ir.Type{}

// Axi4LiteType returns the cached AXI4-Lite record type for spec: five
// channels (aw, w, b, ar, r), each a stream, b and r reversed. Grounded on
// fletchgen::axi4_lite_type (axi4_lite.cc) and spec.md 4.8/4.9.
func Axi4LiteType(spec Axi4LiteSpec) ir.Type {
	name := spec.TypeName()
	key := axiLiteKey{spec.AddrWidth, spec.DataWidth}
	if t, ok := axiLiteTypes[key]; ok {
		return t
	}

	aw := ir.NewRecord("axi_aw")
	aw.AddField(ir.NewField("addr", ir.NewVector("addr", spec.AddrWidth), false))
	awStream := ir.NewStream("aw", aw, "aw", 1)

	w := ir.NewRecord("axi_w")
	w.AddField(ir.NewField("data", ir.NewVector("data", spec.DataWidth), false))
	w.AddField(ir.NewField("strb", ir.NewVector("strb", byteStrobeWidth(spec.DataWidth)), false))
	wStream := ir.NewStream("w", w, "w", 1)

	b := ir.NewRecord("axi_b")
	b.AddField(ir.NewField("resp", ir.VectorOfWidth(2), false))
	bStream := ir.NewStream("b", b, "b", 1)

	ar := ir.NewRecord("axi_ar")
	ar.AddField(ir.NewField("addr", ir.NewVector("addr", spec.AddrWidth), false))
	arStream := ir.NewStream("ar", ar, "ar", 1)

	r := ir.NewRecord("axi_r")
	r.AddField(ir.NewField("data", ir.NewVector("data", spec.DataWidth), false))
	r.AddField(ir.NewField("resp", ir.VectorOfWidth(2), false))
	rStream := ir.NewStream("r", r, "r", 1)

	result := ir.NewRecord(name)
	awField := ir.NewField("aw", awStream, false)
	awField.NoSep()
	result.AddField(awField)
	wField := ir.NewField("w", wStream, false)
	wField.NoSep()
	result.AddField(wField)
	bField := ir.NewField("b", bStream, true)
	bField.NoSep()
	result.AddField(bField)
	arField := ir.NewField("ar", arStream, false)
	arField.NoSep()
	result.AddField(arField)
	rField := ir.NewField("r", rStream, true)
	rField.NoSep()
	result.AddField(rField)

	axiLiteTypes[key] = result
	return result
}

// byteStrobeWidth models data_width/8 the way axi4_lite.cc divides the
// write-strobe width from the data width: when data_width traces to a
// literal the division is folded immediately, otherwise an Expression node
// carries it unevaluated (spec.md 3.1, Expression "non-evaluating").
func byteStrobeWidth(dataWidth ir.Node) ir.Node {
	if p, ok := dataWidth.(*ir.Parameter); ok {
		if lit, ok := p.TraceLiteral(); ok {
			return ir.NewIntLiteral(lit.IntValue / 8)
		}
	}
	if lit, ok := dataWidth.(*ir.Literal); ok {
		return ir.NewIntLiteral(lit.IntValue / 8)
	}
	return ir.DivExpr(dataWidth, ir.NewIntLiteral(8))
}

// NewAxiLitePort builds a "mmio" AXI4-Lite port of the given direction.
func NewAxiLitePort(dir ir.Direction, spec Axi4LiteSpec) *ir.Port {
	return ir.NewPort("mmio", Axi4LiteType(spec), dir)
}
