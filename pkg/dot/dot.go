package dot

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fletchgen/cerata/pkg/ir"
)

// emitter accumulates DOT text and assigns every node a stable, DOT-legal
// identifier on first sight, independent of its (possibly DOT-illegal)
// IR name, which is instead rendered into the node's label.
type emitter struct {
	style   Style
	b       strings.Builder
	ids     map[ir.Node]string
	counter int
}

func (e *emitter) id(n ir.Node) string {
	if id, ok := e.ids[n]; ok {
		return id
	}
	id := fmt.Sprintf("n%d", e.counter)
	e.counter++
	e.ids[n] = id
	return id
}

func (e *emitter) node(n ir.Node, label string) {
	if label == "" {
		label = n.Name()
	}
	if e.style.ShowMeta {
		for k, v := range n.Meta() {
			label += fmt.Sprintf("\\n%s=%s", k, v)
		}
	}
	fmt.Fprintf(&e.b, "    %s [label=%q, shape=%s, style=filled, fillcolor=%q];\n",
		e.id(n), label, e.style.shapeFor(n.Kind()), e.style.colorFor(n.Kind()))
}

func (e *emitter) emitGraphNodes(g ir.Graph) {
	for _, p := range g.Ports() {
		e.node(p, p.Name()+" : "+p.Direction().String())
	}
	for _, p := range g.Parameters() {
		e.node(p, p.Name())
	}
	for _, s := range g.Signals() {
		e.node(s, s.Name())
	}
	for _, arr := range g.PortArrays() {
		for i, elem := range arr.Elements() {
			e.node(elem, fmt.Sprintf("%s[%d]", arr.Name(), i))
		}
	}
	for _, arr := range g.SignalArrays() {
		for i, elem := range arr.Elements() {
			e.node(elem, fmt.Sprintf("%s[%d]", arr.Name(), i))
		}
	}
}

func (e *emitter) emitInstanceCluster(inst *ir.Instance, idx int) {
	fmt.Fprintf(&e.b, "  subgraph cluster_%d {\n", idx)
	fmt.Fprintf(&e.b, "    label=%q;\n", inst.Name()+" : "+inst.Component().Name())
	fmt.Fprintf(&e.b, "    style=filled;\n    color=%q;\n", e.style.InstanceColor)
	e.emitGraphNodes(inst)
	e.b.WriteString("  }\n\n")
}

func (e *emitter) emitEdges(c *ir.Component) {
	seen := map[*ir.Edge]bool{}
	visit := func(n ir.Node) {
		for _, edge := range append(append([]*ir.Edge{}, n.Sources()...), n.Sinks()...) {
			if seen[edge] {
				continue
			}
			seen[edge] = true
			fmt.Fprintf(&e.b, "  %s -> %s [color=%q];\n", e.id(edge.Src()), e.id(edge.Dst()), e.style.EdgeColor)
		}
	}

	for _, p := range c.Ports() {
		visit(p)
	}
	for _, arr := range c.PortArrays() {
		for _, el := range arr.Elements() {
			visit(el)
		}
	}
	for _, s := range c.Signals() {
		visit(s)
	}
	for _, arr := range c.SignalArrays() {
		for _, el := range arr.Elements() {
			visit(el)
		}
	}
	for _, inst := range c.ChildInstances() {
		for _, p := range inst.Ports() {
			visit(p)
		}
		for _, arr := range inst.PortArrays() {
			for _, el := range arr.Elements() {
				visit(el)
			}
		}
		for _, pm := range inst.Parameters() {
			visit(pm)
		}
	}
}

// Dump renders c as a Graphviz DOT digraph styled by style: c's own ports,
// parameters and signals as top-level nodes, one cluster subgraph per
// child Instance containing that instance's ports and parameters, and one
// edge per connection found anywhere in the graph. Grounded on spec.md §6
// ("Exposed to DOT dumper: the same graph with a style configuration").
func Dump(c *ir.Component, style Style) string {
	log.Debugf("dot: dumping %q (%d instances)", c.Name(), len(c.ChildInstances()))

	e := &emitter{style: style, ids: map[ir.Node]string{}}
	fmt.Fprintf(&e.b, "digraph %q {\n", c.Name())
	fmt.Fprintf(&e.b, "  rankdir=%s;\n", style.RankDir)
	e.b.WriteString("  node [fontsize=10];\n\n")

	e.emitGraphNodes(c)
	e.b.WriteString("\n")
	for i, inst := range c.ChildInstances() {
		e.emitInstanceCluster(inst, i)
	}

	e.emitEdges(c)

	e.b.WriteString("}\n")
	return e.b.String()
}

// DumpAll renders one DOT file per component in comps, keyed by name.
func DumpAll(comps []*ir.Component, style Style) map[string]string {
	out := make(map[string]string, len(comps))
	for _, c := range comps {
		out[c.Name()] = Dump(c, style)
	}
	return out
}
