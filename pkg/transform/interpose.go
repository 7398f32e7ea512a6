// Package transform implements the structural graph-to-graph passes that
// run on a finalized Component before emission: signal interposition,
// stream expansion, generic rebinding and profiler insertion (spec.md 4.5,
// 4.6, 4.7).
package transform

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fletchgen/cerata/pkg/ir"
)

// AttachSignalToNode interposes a new Signal between an Instance port p and
// the rest of comp's graph: every incoming edge to p is redirected so the
// original source drives the signal and the signal drives p, and every
// outgoing edge from p is redirected symmetrically. Grounded on
// cerata::AttachSignalToNode (original_source's edge.h) and spec.md 4.5.
func AttachSignalToNode(comp *ir.Component, p *ir.Port, rebinding map[ir.Node]ir.Node) *ir.Signal {
	instName := "top"
	if g, ok := p.Parent(); ok {
		instName = g.Name()
	}

	typ := p.Type()
	if typ.IsGeneric() {
		for _, g := range typ.Generics() {
			ir.RebindGeneric(comp, g, rebinding)
		}
		typ = typ.Copy(rebinding)
	} else {
		typ = typ.Copy(nil)
	}

	name := uniqueSignalName(comp, instName, p.Name())
	s := ir.NewSignal(name, typ)
	if err := comp.Add(s); err != nil {
		log.Warnf("signal interposition for %q: %v", p.Name(), err)
	}

	for _, e := range append([]*ir.Edge{}, p.Sources()...) {
		src := e.Src()
		ir.Disconnect(e)
		mustConnect(s, src)
		mustConnect(p, s)
	}
	for _, e := range append([]*ir.Edge{}, p.Sinks()...) {
		dst, _ := e.Other(ir.Node(p))
		ir.Disconnect(e)
		mustConnect(s, p)
		mustConnect(dst, s)
	}

	return s
}

// AttachSignalArrayToNodeArray interposes a SignalArray between an
// Instance's PortArray and the rest of comp's graph, element-wise.
// Grounded on cerata::AttachSignalArrayToNodeArray (original_source's
// edge.h) and spec.md 4.5.
func AttachSignalArrayToNodeArray(comp *ir.Component, arr *ir.PortArray, rebinding map[ir.Node]ir.Node) *ir.SignalArray {
	instName := "top"
	if g, ok := arr.Parent(); ok {
		instName = g.Name()
	}

	base := arr.Base().(*ir.Port)
	baseTyp := base.Type()
	if baseTyp.IsGeneric() {
		for _, g := range baseTyp.Generics() {
			ir.RebindGeneric(comp, g, rebinding)
		}
		baseTyp = baseTyp.Copy(rebinding)
	} else {
		baseTyp = baseTyp.Copy(nil)
	}
	baseSignal := ir.NewSignal(base.Name(), baseTyp)
	baseSignal.SetDomain(base.Domain())

	size := resolveArraySize(comp, arr.Size(), rebinding)
	name := uniqueSignalName(comp, instName, arr.Name())
	sigArr := ir.NewSignalArray(name, baseSignal, size)
	if err := comp.Add(sigArr); err != nil {
		log.Warnf("signal array interposition for %q: %v", arr.Name(), err)
	}

	for _, elem := range arr.Elements() {
		p := elem.(*ir.Port)
		s := sigArr.Append().(*ir.Signal)

		for _, e := range append([]*ir.Edge{}, p.Sources()...) {
			src := e.Src()
			ir.Disconnect(e)
			mustConnect(s, src)
			mustConnect(p, s)
		}
		for _, e := range append([]*ir.Edge{}, p.Sinks()...) {
			dst, _ := e.Other(ir.Node(p))
			ir.Disconnect(e)
			mustConnect(s, p)
			mustConnect(dst, s)
		}
	}

	return sigArr
}

// SignalizePorts runs AttachSignalToNode/AttachSignalArrayToNodeArray over
// every connected port of every child Instance of comp, so the RTL back end
// never has to embed a generic expression on the left-hand side of a port
// association (spec.md 4.5, "Port signalization").
func SignalizePorts(comp *ir.Component) {
	for _, inst := range comp.ChildInstances() {
		rebinding := map[ir.Node]ir.Node{}
		for k, v := range inst.CompToInst() {
			rebinding[k] = v
		}

		for _, p := range inst.Ports() {
			if len(p.Sources()) == 0 && len(p.Sinks()) == 0 {
				continue
			}
			AttachSignalToNode(comp, p, rebinding)
		}
		for _, arr := range inst.PortArrays() {
			hasEdges := false
			for _, e := range arr.Elements() {
				p := e.(*ir.Port)
				if len(p.Sources()) > 0 || len(p.Sinks()) > 0 {
					hasEdges = true
					break
				}
			}
			if hasEdges {
				AttachSignalArrayToNodeArray(comp, arr, rebinding)
			}
		}
	}
}

func resolveArraySize(comp *ir.Component, size ir.Node, rebinding map[ir.Node]ir.Node) ir.Node {
	if _, ok := size.(*ir.Literal); ok {
		return size
	}
	return ir.RebindGeneric(comp, size, rebinding)
}

func uniqueSignalName(comp *ir.Component, instName, portName string) string {
	base := instName + "_" + portName
	name := base
	for i := 1; comp.Has(name); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	return name
}

func mustConnect(dst, src ir.Node) {
	if _, err := ir.Connect(dst, src); err != nil {
		if _, isWarning := err.(*ir.DomainWarning); !isWarning {
			panic(err)
		}
	}
}
