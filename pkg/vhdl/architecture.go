package vhdl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fletchgen/cerata/pkg/ir"
)

// Preamble renders the context clause for c's architecture body: the
// standard logic library, plus one library/package use clause per distinct
// primitive component instantiated directly under c, discovered through
// ir.MetaLibrary/ir.MetaPackage. Grounded on fletchgen's vhdmmio/array
// primitive packages (mmio.cc, array.cc) being pulled in by use clause
// rather than re-declared.
func Preamble(c *ir.Component) string {
	var b strings.Builder
	b.WriteString("library ieee;\n")
	b.WriteString("use ieee.std_logic_1164.all;\n")

	seen := map[string]bool{}
	var clauses []string
	for _, child := range c.InstanceComponents() {
		if child.Meta()[ir.MetaPrimitive] != "true" {
			continue
		}
		lib := child.Meta()[ir.MetaLibrary]
		pkg := child.Meta()[ir.MetaPackage]
		if lib == "" || pkg == "" {
			continue
		}
		key := lib + "." + pkg
		if seen[key] {
			continue
		}
		seen[key] = true
		clauses = append(clauses, fmt.Sprintf("library %s;\nuse %s.%s.all;\n", lib, lib, pkg))
	}
	sort.Strings(clauses)
	for _, cl := range clauses {
		b.WriteString(cl)
	}
	return b.String()
}

// Architecture renders c's architecture body: component declarations for
// every directly-instantiated non-primitive component, one signal
// declaration per Signal/SignalArray element, a statement part with one
// assignment line per physical leaf of every edge reachable from c's ports,
// signals and child instances, and one instantiation statement per child
// Instance. Grounded on cerata::vhdl::Arch::Generate (architecture.cc) and
// spec.md §6.
func Architecture(c *ir.Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "architecture Implementation of %s is\n\n", c.Name())

	for _, child := range c.InstanceComponents() {
		if child.Meta()[ir.MetaPrimitive] == "true" {
			continue
		}
		b.WriteString(componentDeclaration(child))
		b.WriteString("\n")
	}

	for _, line := range signalLines(c) {
		fmt.Fprintf(&b, "  signal %s : %s;\n", line.name, line.typ)
	}

	b.WriteString("\nbegin\n\n")

	for _, a := range gatherAssignments(c) {
		fmt.Fprintf(&b, "  %s <= %s;\n", a.dst, a.src)
	}

	for _, inst := range c.ChildInstances() {
		b.WriteString("\n")
		b.WriteString(instanceStatement(inst))
	}

	b.WriteString("\nend architecture Implementation;\n")
	return b.String()
}

func signalLines(c *ir.Component) []portLine {
	var out []portLine
	for _, s := range c.Signals() {
		for _, f := range physicalLeaves(s.Type()) {
			out = append(out, portLine{name: leafName(s.Name(), f), typ: vhdlScalarType(f.Type)})
		}
	}
	for _, arr := range c.SignalArrays() {
		for i, elem := range arr.Elements() {
			name := fmt.Sprintf("%s_%d", arr.Name(), i)
			for _, f := range physicalLeaves(elem.Type()) {
				out = append(out, portLine{name: leafName(name, f), typ: vhdlScalarType(f.Type)})
			}
		}
	}
	return out
}

type assignment struct {
	dst, src string
}

// gatherAssignments visits every node that can originate or terminate an
// edge within c (top ports, signals, and every child instance's ports and
// parameters) exactly once, and renders one assignment per physical leaf
// pair an edge's TypeMapper declares. Assignments are always written
// "<edge.Dst() leaf> <= <edge.Src() leaf>", independent of the ports'
// In/Out direction, matching Connect's dst/src convention.
func gatherAssignments(c *ir.Component) []assignment {
	seen := map[*ir.Edge]bool{}
	var out []assignment

	visit := func(n ir.Node) {
		for _, e := range n.Sources() {
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, edgeAssignments(e)...)
		}
		for _, e := range n.Sinks() {
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, edgeAssignments(e)...)
		}
	}

	for _, p := range c.Ports() {
		visit(p)
	}
	for _, arr := range c.PortArrays() {
		for _, e := range arr.Elements() {
			visit(e)
		}
	}
	for _, s := range c.Signals() {
		visit(s)
	}
	for _, arr := range c.SignalArrays() {
		for _, e := range arr.Elements() {
			visit(e)
		}
	}
	for _, inst := range c.ChildInstances() {
		for _, p := range inst.Ports() {
			visit(p)
		}
		for _, arr := range inst.PortArrays() {
			for _, e := range arr.Elements() {
				visit(e)
			}
		}
		for _, pm := range inst.Parameters() {
			visit(pm)
		}
	}

	return out
}

func edgeAssignments(e *ir.Edge) []assignment {
	dst, src := e.Dst(), e.Src()
	dstType, srcType := dst.Type(), src.Type()

	m, ok := dstType.GetMapper(srcType, true)
	if !ok {
		return nil
	}

	dstBase, srcBase := qualifiedName(dst), qualifiedName(src)
	var out []assignment
	for _, pair := range m.Pairs() {
		la, lb := m.FlatA[pair[0]], m.FlatB[pair[1]]
		if !la.Type.IsPhysical() || la.Type.IsNested() {
			continue
		}
		out = append(out, assignment{dst: leafName(dstBase, la), src: leafName(srcBase, lb)})
	}
	return out
}

// instanceStatement renders one component instantiation, mapping every
// generic to its instance-side bound value and every port leaf to whatever
// node it is connected to (a signal, after signalization; a top-level port
// otherwise; left out of the port map entirely if unconnected).
func instanceStatement(inst *ir.Instance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s : %s\n", inst.Name(), inst.Component().Name())

	if gens := instanceGenericMap(inst); len(gens) > 0 {
		b.WriteString("    generic map (\n")
		for i, g := range gens {
			sep := ","
			if i == len(gens)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "      %s => %s%s\n", g[0], g[1], sep)
		}
		b.WriteString("    )\n")
	}

	assocs := instancePortMap(inst)
	b.WriteString("    port map (\n")
	for i, a := range assocs {
		sep := ","
		if i == len(assocs)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "      %s => %s%s\n", a[0], a[1], sep)
	}
	b.WriteString("    );\n")
	return b.String()
}

func instanceGenericMap(inst *ir.Instance) [][2]string {
	formals := inst.Component().Parameters()
	actuals := inst.Parameters()
	n := len(formals)
	if len(actuals) < n {
		n = len(actuals)
	}
	out := make([][2]string, 0, n)
	for i := 0; i < n; i++ {
		if actuals[i].Value() == nil {
			continue
		}
		out = append(out, [2]string{formals[i].Name(), widthString(actuals[i].Value())})
	}
	return out
}

func instancePortMap(inst *ir.Instance) [][2]string {
	var out [][2]string

	addPort := func(formalName string, typ ir.Type, p ir.Node) {
		other, ok := connectedNode(p)
		if !ok {
			return
		}
		otherType := other.Type()
		m, ok := typ.GetMapper(otherType, true)
		if !ok {
			return
		}
		otherBase := qualifiedName(other)
		for _, pair := range m.Pairs() {
			la, lb := m.FlatA[pair[0]], m.FlatB[pair[1]]
			if !la.Type.IsPhysical() || la.Type.IsNested() {
				continue
			}
			out = append(out, [2]string{leafName(formalName, la), leafName(otherBase, lb)})
		}
	}

	for _, p := range inst.Ports() {
		addPort(p.Name(), p.Type(), p)
	}
	for _, arr := range inst.PortArrays() {
		for i, elem := range arr.Elements() {
			ep := elem.(*ir.Port)
			addPort(fmt.Sprintf("%s_%d", arr.Name(), i), ep.Type(), ep)
		}
	}
	return out
}
