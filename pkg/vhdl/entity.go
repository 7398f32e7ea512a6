package vhdl

import (
	"fmt"
	"strings"

	"github.com/fletchgen/cerata/pkg/ir"
)

// portLine is one rendered entity/component port: a flattened leaf's
// qualified name, direction and VHDL type.
type portLine struct {
	name string
	dir  ir.Direction
	typ  string
}

// genericLine is one rendered generic clause entry.
type genericLine struct {
	name    string
	hasInit bool
	init    string
}

func genericLines(params []*ir.Parameter) []genericLine {
	lines := make([]genericLine, 0, len(params))
	for _, p := range params {
		gl := genericLine{name: p.Name()}
		if p.Value() != nil {
			gl.hasInit = true
			gl.init = widthString(p.Value())
		}
		lines = append(lines, gl)
	}
	return lines
}

func leafPortLines(name string, t ir.Type, dir ir.Direction) []portLine {
	var out []portLine
	for _, f := range physicalLeaves(t) {
		d := dir
		if f.Inverted {
			d = d.Reversed()
		}
		out = append(out, portLine{name: leafName(name, f), dir: d, typ: vhdlScalarType(f.Type)})
	}
	return out
}

// portLines flattens every port and port-array element of a graph into its
// leaf-level entity/component port declarations, in insertion order.
func portLines(ports []*ir.Port, arrays []*ir.PortArray) []portLine {
	var out []portLine
	for _, p := range ports {
		out = append(out, leafPortLines(p.Name(), p.Type(), p.Direction())...)
	}
	for _, arr := range arrays {
		base := arr.Base().(*ir.Port)
		for i, elem := range arr.Elements() {
			ep := elem.(*ir.Port)
			name := fmt.Sprintf("%s_%d", arr.Name(), i)
			out = append(out, leafPortLines(name, ep.Type(), base.Direction())...)
		}
	}
	return out
}

func writeGenericClause(b *strings.Builder, indent string, gens []genericLine) {
	if len(gens) == 0 {
		return
	}
	fmt.Fprintf(b, "%sgeneric (\n", indent)
	for i, g := range gens {
		sep := ";"
		if i == len(gens)-1 {
			sep = ""
		}
		if g.hasInit {
			fmt.Fprintf(b, "%s  %s : integer := %s%s\n", indent, g.name, g.init, sep)
		} else {
			fmt.Fprintf(b, "%s  %s : integer%s\n", indent, g.name, sep)
		}
	}
	fmt.Fprintf(b, "%s);\n", indent)
}

func writePortClause(b *strings.Builder, indent string, lines []portLine) {
	fmt.Fprintf(b, "%sport (\n", indent)
	for i, l := range lines {
		sep := ";"
		if i == len(lines)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "%s  %s : %s %s%s\n", indent, l.name, l.dir, l.typ, sep)
	}
	fmt.Fprintf(b, "%s);\n", indent)
}

// Entity renders c's entity declaration: its generics (from Parameters)
// and its ports (from Ports/PortArrays, flattened to physical leaves).
// Grounded on architecture.cc's entity-side counterpart and spec.md §6.
func Entity(c *ir.Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "entity %s is\n", c.Name())
	writeGenericClause(&b, "  ", genericLines(c.Parameters()))
	writePortClause(&b, "  ", portLines(c.Ports(), c.PortArrays()))
	fmt.Fprintf(&b, "end entity %s;\n", c.Name())
	return b.String()
}

// componentDeclaration renders c's VHDL component declaration, as used
// inside another component's architecture declarative part to make c
// instantiable there. Grounded on Arch::Generate's per-child component
// declaration loop (architecture.cc).
func componentDeclaration(c *ir.Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  component %s is\n", c.Name())
	writeGenericClause(&b, "    ", genericLines(c.Parameters()))
	writePortClause(&b, "    ", portLines(c.Ports(), c.PortArrays()))
	fmt.Fprintf(&b, "  end component %s;\n", c.Name())
	return b.String()
}
