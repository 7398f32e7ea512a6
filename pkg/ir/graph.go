package ir

// Object is anything a Graph can own: a Node or a NodeArray. Both already
// expose Name/Parent/SetParent, so either satisfies this interface
// structurally.
type Object interface {
	Name() string
	Parent() (Graph, bool)
	SetParent(Graph) error
}

// Graph is a named container of objects: a Component (full-featured) or an
// Instance (ports and parameters only). Grounded on cerata::Graph
// (original_source's graph.h) and spec.md 3.1/4.3.
type Graph interface {
	Name() string
	IsComponent() bool
	IsInstance() bool

	// Add enforces invariant 3.2-2: every sub-object obj references (type
	// generics, array sizes, parameter/expression operand chains) must
	// already be parented on this graph, be a literal, or be an
	// expression (transparent per the same invariant).
	Add(obj Object) error

	Objects() []Object
	Has(name string) bool

	Ports() []*Port
	Parameters() []*Parameter
	Signals() []*Signal
	NodeArrays() []NodeArray
	PortArrays() []*PortArray
	SignalArrays() []*SignalArray
	ChildInstances() []*Instance

	GetNode(name string) (Node, bool)
	Port(name string) *Port
	Parameter(name string) *Parameter
	Signal(name string) *Signal

	Meta() map[string]string
	SetMeta(key, value string)

	String() string
}

// baseGraph implements the object-storage bookkeeping shared by Component
// and Instance; insertion order is preserved (spec.md 5: ordering
// guarantees).
type baseGraph struct {
	name    string
	objects []Object
	byName  map[string]Object
	meta    map[string]string
}

func newBaseGraph(name string) baseGraph {
	return baseGraph{name: name, byName: map[string]Object{}, meta: map[string]string{}}
}

func (g *baseGraph) Name() string { return g.name }

func (g *baseGraph) Has(name string) bool {
	_, ok := g.byName[name]
	return ok
}

func (g *baseGraph) Objects() []Object { return g.objects }

func (g *baseGraph) addObject(obj Object) error {
	if existing, ok := g.byName[obj.Name()]; ok {
		var existingObj Object = existing
		if existingObj == obj {
			return nil
		}
		panicStructure("graph %q already has an object named %q", g.name, obj.Name())
	}
	g.objects = append(g.objects, obj)
	g.byName[obj.Name()] = obj
	return nil
}

func (g *baseGraph) Ports() []*Port {
	var out []*Port
	for _, o := range g.objects {
		if p, ok := o.(*Port); ok {
			out = append(out, p)
		}
	}
	return out
}

func (g *baseGraph) Parameters() []*Parameter {
	var out []*Parameter
	for _, o := range g.objects {
		if p, ok := o.(*Parameter); ok {
			out = append(out, p)
		}
	}
	return out
}

func (g *baseGraph) Signals() []*Signal {
	var out []*Signal
	for _, o := range g.objects {
		if s, ok := o.(*Signal); ok {
			out = append(out, s)
		}
	}
	return out
}

func (g *baseGraph) NodeArrays() []NodeArray {
	var out []NodeArray
	for _, o := range g.objects {
		if a, ok := o.(NodeArray); ok {
			out = append(out, a)
		}
	}
	return out
}

func (g *baseGraph) PortArrays() []*PortArray {
	var out []*PortArray
	for _, o := range g.objects {
		if a, ok := o.(*PortArray); ok {
			out = append(out, a)
		}
	}
	return out
}

func (g *baseGraph) SignalArrays() []*SignalArray {
	var out []*SignalArray
	for _, o := range g.objects {
		if a, ok := o.(*SignalArray); ok {
			out = append(out, a)
		}
	}
	return out
}

func (g *baseGraph) GetNode(name string) (Node, bool) {
	o, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	n, ok := o.(Node)
	return n, ok
}

func (g *baseGraph) Port(name string) *Port {
	if n, ok := g.GetNode(name); ok {
		if p, ok := n.(*Port); ok {
			return p
		}
	}
	return nil
}

func (g *baseGraph) Parameter(name string) *Parameter {
	if n, ok := g.GetNode(name); ok {
		if p, ok := n.(*Parameter); ok {
			return p
		}
	}
	return nil
}

func (g *baseGraph) Signal(name string) *Signal {
	if n, ok := g.GetNode(name); ok {
		if s, ok := n.(*Signal); ok {
			return s
		}
	}
	return nil
}

func (g *baseGraph) Meta() map[string]string { return g.meta }
func (g *baseGraph) SetMeta(key, value string) {
	if g.meta == nil {
		g.meta = map[string]string{}
	}
	g.meta[key] = value
}

func (g *baseGraph) String() string { return g.name }

// ChildInstances returns no children by default; Component overrides this.
func (g *baseGraph) ChildInstances() []*Instance { return nil }

// requiredObjects collects every sub-object obj references: type generics
// of a Node/NodeArray's type, the size node of a NodeArray, and a
// Parameter's value chain. Used by Component.Add/Instance.Add to check
// invariant 3.2-2.
func requiredObjects(obj Object) []Object {
	var out []Object
	switch v := obj.(type) {
	case Node:
		for _, g := range v.Type().Generics() {
			out = append(out, g)
		}
		for _, r := range v.AppendReferences() {
			out = append(out, r)
		}
	case NodeArray:
		for _, g := range v.Base().Type().Generics() {
			out = append(out, g)
		}
		out = append(out, v.Size())
	}
	return out
}

// checkParented verifies every object obj requires is already on g, is a
// Literal, or is an Expression (transparent per invariant 3.2-2).
func checkParented(g Graph, obj Object) {
	for _, req := range requiredObjects(obj) {
		n, ok := req.(Node)
		if !ok {
			continue
		}
		if n.Kind() == LiteralKind || n.Kind() == ExpressionKind {
			continue
		}
		parent, hasParent := n.Parent()
		if !hasParent || parent != g {
			panicStructure("object %q references %q which is not on graph %q", obj.Name(), n.Name(), g.Name())
		}
	}
}
