package ir

// Instance is a structurally copied, parameter-rebound view of a
// Component: it owns only copies of the Component's parameters and ports
// (no signals, invariant 3.2-4). Grounded on cerata::Instance
// (original_source's graph.h) and spec.md 3.1/4.3.
type Instance struct {
	baseGraph
	component   *Component
	parentGraph Graph
	// compToInst maps each component-side node to its instance-side copy,
	// populated deterministically at construction (spec.md 4.3).
	compToInst map[Node]Node
}

func (inst *Instance) IsComponent() bool { return false }
func (inst *Instance) IsInstance() bool  { return true }

// Component returns the Component this is an instance of.
func (inst *Instance) Component() *Component { return inst.component }

// Parent returns the enclosing graph this instance was added to.
func (inst *Instance) Parent() (Graph, bool) { return inst.parentGraph, inst.parentGraph != nil }

// CompToInst exposes the component-to-instance node rebinding map built at
// construction time, used by transforms that need to look up an instance's
// copy of a component-side generic.
func (inst *Instance) CompToInst() map[Node]Node { return inst.compToInst }

// Add rejects signals (invariant 3.2-4) and otherwise behaves like
// Component.Add's invariant-3.2-2 check, without the immutability concern
// (instances are never themselves instantiated).
func (inst *Instance) Add(obj Object) error {
	if n, ok := obj.(Node); ok && n.Kind() == SignalKind {
		panicStructure("instance %q may not own a signal %q", inst.name, obj.Name())
	}
	if _, ok := obj.(*SignalArray); ok {
		panicStructure("instance %q may not own a signal array %q", inst.name, obj.Name())
	}
	checkParented(inst, obj)
	if err := inst.addObject(obj); err != nil {
		return err
	}
	return obj.SetParent(inst)
}

// newInstance builds an Instance of comp following the three deterministic
// steps of spec.md 4.3 (Instance construction).
func newInstance(comp *Component, name string) *Instance {
	inst := &Instance{baseGraph: newBaseGraph(name), component: comp, compToInst: map[Node]Node{}}

	// Step 1: copy every parameter, populating comp_to_inst.
	for _, p := range comp.Parameters() {
		np := NewParameter(p.Name(), p.Type().Copy(inst.compToInst), rebindValueChain(p.Value(), inst.compToInst))
		inst.compToInst[p] = np
		_ = inst.addObject(np)
		_ = np.SetParent(inst)
	}

	// Step 2: copy every port; if its type is generic, clone it under the
	// now-populated comp_to_inst rebinding so widths refer to instance-side
	// parameters.
	for _, p := range comp.Ports() {
		typ := p.Type()
		if typ.IsGeneric() {
			typ = typ.Copy(inst.compToInst)
		} else {
			typ = typ.Copy(nil)
		}
		np := NewPort(p.Name(), typ, p.Direction())
		np.SetDomain(p.Domain())
		for k, v := range p.Meta() {
			np.SetMeta(k, v)
		}
		inst.compToInst[p] = np
		_ = inst.addObject(np)
		_ = np.SetParent(inst)
	}

	// Step 3: copy every port-array: clone the base port's type under
	// rebinding, find-or-copy its size parameter (idempotent via
	// comp_to_inst), and record-copy the array.
	for _, pa := range comp.PortArrays() {
		base := pa.Base().(*Port)
		typ := base.Type().Copy(inst.compToInst)
		newBase := NewPort(base.Name(), typ, base.Direction())
		newBase.SetDomain(base.Domain())
		size := findOrCopyArraySize(pa.Size(), inst)
		newArr := NewPortArray(pa.Name(), newBase, size)
		for range pa.Elements() {
			newArr.Append()
		}
		_ = inst.addObject(newArr)
		_ = newArr.SetParent(inst)
	}

	return inst
}

// findOrCopyArraySize resolves size onto the instance side: literals are
// shared as-is, a parameter already present in comp_to_inst (from step 1)
// is reused, and anything else is copied fresh.
func findOrCopyArraySize(size Node, inst *Instance) Node {
	if _, ok := size.(*Literal); ok {
		return size
	}
	if mapped, ok := inst.compToInst[size]; ok {
		return mapped
	}
	if p, ok := size.(*Parameter); ok {
		np := NewParameter(p.Name(), p.Type(), rebindValueChain(p.Value(), inst.compToInst))
		inst.compToInst[p] = np
		_ = inst.addObject(np)
		_ = np.SetParent(inst)
		return np
	}
	return size
}

// rebindValueChain rewrites a Parameter's value node for the instance side:
// literals are shared, an already-rebound node is substituted, and an
// Expression is rebuilt with rebound operands (expressions are never owned
// by a graph, so no re-parenting is needed for them).
func rebindValueChain(v Node, rebinding map[Node]Node) Node {
	if v == nil {
		return nil
	}
	if r, ok := rebinding[v]; ok {
		return r
	}
	switch n := v.(type) {
	case *Literal:
		return n
	case *Expression:
		return NewExpression(n.Op, rebindValueChain(n.Left, rebinding), rebindValueChain(n.Right, rebinding))
	default:
		return v
	}
}

// RebindGeneric resolves a generic node (a Parameter or Literal referenced
// by a Type) against target, per spec.md 4.3. If generic is absent from
// rebinding: when it is a Parameter, its value chain is walked for a node
// already present on target, or a Literal; if found, that is bound.
// Otherwise the generic is copied onto target, its name prefixed by its
// original parent's name for disambiguation, and the binding is recorded.
func RebindGeneric(target Graph, generic Node, rebinding map[Node]Node) Node {
	if r, ok := rebinding[generic]; ok {
		return r
	}

	if p, ok := generic.(*Parameter); ok {
		if lit, ok := p.TraceLiteral(); ok {
			rebinding[generic] = lit
			return lit
		}
		for cur := p.Value(); cur != nil; {
			if parent, has := cur.Parent(); has && parent == target {
				rebinding[generic] = cur
				return cur
			}
			pp, ok := cur.(*Parameter)
			if !ok {
				break
			}
			cur = pp.Value()
		}
	}

	prefix := ""
	if parent, ok := generic.Parent(); ok {
		prefix = parent.Name() + "_"
	}

	var copied Node
	switch g := generic.(type) {
	case *Parameter:
		copied = NewParameter(prefix+g.Name(), g.Type(), g.Value())
	case *Literal:
		copied = g
	default:
		panicGeneric("cannot rebind generic node %q of kind %s onto %q", generic.Name(), generic.Kind(), target.Name())
	}

	rebinding[generic] = copied
	if copied.Kind() != LiteralKind {
		if err := target.Add(copied); err != nil {
			panicGeneric("rebinding generic %q onto %q: %v", generic.Name(), target.Name(), err)
		}
	}
	return copied
}
