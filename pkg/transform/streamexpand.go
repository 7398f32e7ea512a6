package transform

import "github.com/fletchgen/cerata/pkg/ir"

// ExpandStreams lowers every Stream type reachable from comp's ports,
// signals and node-arrays (and those of its child instances) into their
// Record{valid, ready, element} form via ir.ExpandType, sharing one cache
// so two ports referencing the same Stream object are expanded exactly
// once and keep referencing the same expanded Type (spec.md 4.6). Must
// run after SignalizePorts so the new valid/ready leaves settle on signals
// already interposed between instances.
func ExpandStreams(comp *ir.Component) {
	cache := map[ir.Type]ir.Type{}
	expand := func(n ir.Node) { n.SetType(exp(n.Type(), cache)) }

	for _, p := range comp.Ports() {
		expand(p)
	}
	for _, s := range comp.Signals() {
		expand(s)
	}
	for _, arr := range comp.PortArrays() {
		expandArray(arr, cache)
	}
	for _, arr := range comp.SignalArrays() {
		expandArray(arr, cache)
	}

	for _, inst := range comp.ChildInstances() {
		for _, p := range inst.Ports() {
			expand(p)
		}
		for _, arr := range inst.PortArrays() {
			expandArray(arr, cache)
		}
	}
}

func expandArray(arr ir.NodeArray, cache map[ir.Type]ir.Type) {
	switch a := arr.(type) {
	case *ir.PortArray:
		base := a.Base().(*ir.Port)
		base.SetType(exp(base.Type(), cache))
		for _, e := range a.Elements() {
			e.SetType(exp(e.Type(), cache))
		}
	case *ir.SignalArray:
		base := a.Base().(*ir.Signal)
		base.SetType(exp(base.Type(), cache))
		for _, e := range a.Elements() {
			e.SetType(exp(e.Type(), cache))
		}
	}
}

func exp(t ir.Type, cache map[ir.Type]ir.Type) ir.Type {
	if cached, ok := cache[t]; ok {
		return cached
	}
	out := ir.ExpandType(t)
	cache[t] = out
	return out
}
