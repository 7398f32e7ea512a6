package ir

// NodeArray is a size-parameterized vector of structurally identical nodes,
// appended imperatively. The size node is itself a Literal, Parameter or
// Expression, and is exclusively bound to this array (invariant 3.2-3).
// Grounded on cerata::NodeArray (original_source's array.cc).
type NodeArray interface {
	Name() string
	Kind() NodeKind
	Base() Node
	Size() Node
	setSize(Node)
	Elements() []Node
	// Append clones the base node and appends it as the array's next
	// element. The size node is left unchanged, and the element count is
	// not checked against it.
	Append() Node
	Get(i int) Node

	Parent() (Graph, bool)
	SetParent(Graph) error
	Meta() map[string]string
	SetMeta(key, value string)
}

type baseNodeArray struct {
	name     string
	kind     NodeKind
	base     Node
	size     Node
	elements []Node
	parent   Graph
	meta     map[string]string
	selfRef  NodeArray
}

func (a *baseNodeArray) Name() string   { return a.name }
func (a *baseNodeArray) Kind() NodeKind { return a.base.Kind() }
func (a *baseNodeArray) Base() Node     { return a.base }
func (a *baseNodeArray) Size() Node     { return a.size }

func (a *baseNodeArray) setSize(n Node) {
	if p, ok := a.size.(*Parameter); ok && p.arraySizeOf == a.selfRef {
		p.arraySizeOf = nil
	}
	a.size = n
	if p, ok := n.(*Parameter); ok {
		p.arraySizeOf = a.selfRef
	}
}

func (a *baseNodeArray) Elements() []Node { return a.elements }

func (a *baseNodeArray) Get(i int) Node { return a.elements[i] }

func (a *baseNodeArray) Parent() (Graph, bool) { return a.parent, a.parent != nil }
func (a *baseNodeArray) SetParent(g Graph) error {
	a.parent = g
	return nil
}

func (a *baseNodeArray) Meta() map[string]string { return a.meta }
func (a *baseNodeArray) SetMeta(key, value string) {
	if a.meta == nil {
		a.meta = map[string]string{}
	}
	a.meta[key] = value
}

// PortArray is a NodeArray of Ports (a.k.a. cerata's PortArray).
type PortArray struct {
	baseNodeArray
}

// NewPortArray constructs an empty PortArray whose elements are structural
// clones of base, sized by size.
func NewPortArray(name string, base *Port, size Node) *PortArray {
	a := &PortArray{baseNodeArray{name: name, kind: PortKind, base: base, size: size}}
	a.selfRef = a
	if p, ok := size.(*Parameter); ok {
		if p.arraySizeOf != nil {
			panicGeneric("parameter %q is already the size of another array", p.Name())
		}
		p.arraySizeOf = a
	}
	return a
}

// Append clones the base port and appends it as the next element.
func (a *PortArray) Append() Node {
	base := a.base.(*Port)
	clone := base.Copy(nil)
	clone.setParentArray(a)
	a.elements = append(a.elements, clone)
	return clone
}

// SignalArray is a NodeArray of Signals.
type SignalArray struct {
	baseNodeArray
}

// NewSignalArray constructs an empty SignalArray whose elements are
// structural clones of base, sized by size.
func NewSignalArray(name string, base *Signal, size Node) *SignalArray {
	a := &SignalArray{baseNodeArray{name: name, kind: SignalKind, base: base, size: size}}
	a.selfRef = a
	if p, ok := size.(*Parameter); ok {
		if p.arraySizeOf != nil {
			panicGeneric("parameter %q is already the size of another array", p.Name())
		}
		p.arraySizeOf = a
	}
	return a
}

// Append clones the base signal and appends it as the next element.
func (a *SignalArray) Append() Node {
	base := a.base.(*Signal)
	clone := NewSignal(base.Name(), base.Type().Copy(nil))
	clone.SetDomain(base.Domain())
	clone.setParentArray(a)
	a.elements = append(a.elements, clone)
	return clone
}
