package ir

import "fmt"

// Node is a typed vertex in a Graph: a Literal, Parameter, Signal, Port or
// Expression. Grounded on cerata::Node (original_source's node.h, visible
// through edge.h's and parameter.h's forward declarations) and go-corset's
// tagged-kind style of modeling distinct vertex behaviors behind one
// interface (pkg/ir/term.go).
type Node interface {
	Name() string
	Kind() NodeKind
	Type() Type
	SetType(Type)

	Parent() (Graph, bool)
	// SetParent reassigns the owning graph atomically (invariant 3.2-1).
	SetParent(Graph) error

	ParentArray() (NodeArray, bool)
	setParentArray(NodeArray)

	Sources() []*Edge
	Sinks() []*Edge
	addSource(*Edge) error
	addSink(*Edge)
	removeEdge(*Edge)

	Meta() map[string]string
	SetMeta(key, value string)

	// AppendReferences returns every Node this node transitively requires to
	// be present wherever it is copied (type generics, parameter values,
	// expression operands).
	AppendReferences() []Node

	// Replace rewires every edge of this node onto other, and reparents
	// other into this node's graph (spec.md 4.2 Replace).
	Replace(other Node) error

	String() string
}

// baseNode implements the bookkeeping shared by all node kinds.
type baseNode struct {
	name        string
	kind        NodeKind
	typ         Type
	parent      Graph
	parentArray NodeArray
	sources     []*Edge
	sinks       []*Edge
	meta        map[string]string
	self        Node
}

func newBaseNode(name string, kind NodeKind, typ Type) baseNode {
	return baseNode{name: name, kind: kind, typ: typ, meta: map[string]string{}}
}

func (n *baseNode) Name() string   { return n.name }
func (n *baseNode) Kind() NodeKind { return n.kind }
func (n *baseNode) Type() Type     { return n.typ }
func (n *baseNode) SetType(t Type) { n.typ = t }

func (n *baseNode) Parent() (Graph, bool) { return n.parent, n.parent != nil }

func (n *baseNode) SetParent(g Graph) error {
	n.parent = g
	return nil
}

func (n *baseNode) ParentArray() (NodeArray, bool) { return n.parentArray, n.parentArray != nil }
func (n *baseNode) setParentArray(a NodeArray)     { n.parentArray = a }

func (n *baseNode) Sources() []*Edge { return n.sources }
func (n *baseNode) Sinks() []*Edge   { return n.sinks }

// addSource enforces invariant 3.2-7: a node may have at most one source
// edge, regardless of kind.
func (n *baseNode) addSource(e *Edge) error {
	if len(n.sources) >= 1 {
		panicStructure("node %q already has a source edge", n.name)
	}
	n.sources = append(n.sources, e)
	return nil
}

func (n *baseNode) addSink(e *Edge) {
	n.sinks = append(n.sinks, e)
}

func (n *baseNode) removeEdge(e *Edge) {
	for i, s := range n.sources {
		if s == e {
			n.sources = append(n.sources[:i], n.sources[i+1:]...)
			return
		}
	}
	for i, s := range n.sinks {
		if s == e {
			n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
			return
		}
	}
}

func (n *baseNode) Meta() map[string]string { return n.meta }
func (n *baseNode) SetMeta(key, value string) {
	if n.meta == nil {
		n.meta = map[string]string{}
	}
	n.meta[key] = value
}

func (n *baseNode) AppendReferences() []Node { return nil }

func (n *baseNode) String() string {
	return fmt.Sprintf("%s(%s):%s", n.kind, n.name, n.typ.Name())
}

// Replace rewires every sink/source edge of self onto other, re-parents
// other into self's graph, and if self was an array-size parameter, makes
// other the array's new size (spec.md 4.2 Replace).
func (n *baseNode) Replace(other Node) error {
	self := n.self

	for _, e := range append([]*Edge{}, n.sources...) {
		src := e.src
		dst := e.dst
		disconnectEdge(e)
		if src == self {
			src = other
		}
		if dst == self {
			dst = other
		}
		if _, err := connectRaw(dst, src); err != nil {
			return err
		}
	}
	for _, e := range append([]*Edge{}, n.sinks...) {
		src := e.src
		dst := e.dst
		disconnectEdge(e)
		if src == self {
			src = other
		}
		if dst == self {
			dst = other
		}
		if _, err := connectRaw(dst, src); err != nil {
			return err
		}
	}

	if g, ok := n.Parent(); ok {
		_ = other.SetParent(g)
	}

	if p, ok := self.(*Parameter); ok && p.arraySizeOf != nil {
		p.arraySizeOf.setSize(other)
	}

	return nil
}
