// Package vhdl formats a finalized IR graph as VHDL entity/architecture
// text. It never inspects an unfinished graph and never evaluates anything;
// it only walks ports, signals, instances and edges and renders them.
// Grounded on original_source's cerata::vhdl::Arch (vhdl/architecture.cc)
// and spec.md §1/§6 ("RTL back-end text emission ... pure readers").
package vhdl

import (
	"fmt"
	"strings"

	"github.com/fletchgen/cerata/pkg/ir"
)

// physicalLeaves returns the flattened leaves of t that have an immediate
// bit representation, skipping the abstract Record/Stream container entries
// Flatten also reports. Grounded on architecture.cc's GenerateMappingPair,
// which branches on Type::STREAM/Type::RECORD to skip them and only emits
// text for a mapping pair's physical leaves.
func physicalLeaves(t ir.Type) []ir.FlatType {
	var out []ir.FlatType
	for _, f := range ir.Flatten(t) {
		if f.Type.IsPhysical() && !f.Type.IsNested() {
			out = append(out, f)
		}
	}
	return out
}

// leafName appends a flattened leaf's sub-path onto prefix, matching the
// "_"-joined naming FlatType.Name uses for its own root-relative path.
func leafName(prefix string, f ir.FlatType) string {
	if len(f.Path) <= 1 {
		return prefix
	}
	return prefix + "_" + strings.Join(f.Path[1:], "_")
}

// arrayElementIndex returns the position of n within arr's elements.
func arrayElementIndex(arr ir.NodeArray, n ir.Node) int {
	for i, e := range arr.Elements() {
		if e == n {
			return i
		}
	}
	return -1
}

// qualifiedName returns the name a node is addressed by in generated VHDL
// text: its array-indexed name if it is an array element, prefixed by its
// owning instance's name if it belongs to one. Top-level ports and signals
// are returned unqualified.
func qualifiedName(n ir.Node) string {
	base := n.Name()
	var owner ir.Graph
	if arr, ok := n.ParentArray(); ok {
		base = fmt.Sprintf("%s_%d", arr.Name(), arrayElementIndex(arr, n))
		owner, _ = arr.Parent()
	} else {
		owner, _ = n.Parent()
	}
	if owner != nil && owner.IsInstance() {
		return owner.Name() + "_" + base
	}
	return base
}

// widthString renders a width/generic node as VHDL expression text: a
// literal's decimal value, a parameter's bare name (resolved as a generic
// at elaboration), or an expression's infix rendering.
func widthString(n ir.Node) string {
	switch v := n.(type) {
	case *ir.Literal:
		return v.String()
	case *ir.Expression:
		return v.String()
	default:
		return n.Name()
	}
}

// vhdlScalarType renders the VHDL type of a single physical leaf: "bit"
// leaves become std_logic, "vector" leaves become a std_logic_vector sized
// by their width node.
func vhdlScalarType(t ir.Type) string {
	if t.ID() != ir.VectorTypeID {
		return "std_logic"
	}
	w, ok := t.Width()
	if !ok {
		return "std_logic_vector"
	}
	return fmt.Sprintf("std_logic_vector(%s - 1 downto 0)", widthString(w))
}

// connectedNode returns the single node on the other end of n's one edge,
// if any. A finalized, signalized component never leaves a connected port
// with more than one edge on either side (pkg/transform.SignalizePorts
// interposes a Signal at every Instance boundary), so checking both lists
// and taking whichever is non-empty is sufficient.
func connectedNode(n ir.Node) (ir.Node, bool) {
	if len(n.Sources()) == 1 {
		return n.Sources()[0].Other(n)
	}
	if len(n.Sinks()) == 1 {
		return n.Sinks()[0].Other(n)
	}
	return nil, false
}
