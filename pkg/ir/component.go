package ir

// Component is a named container that may own literals, parameters,
// signals, ports, expressions, node-arrays and child Instances. Grounded on
// cerata::Component (original_source's graph.h) and spec.md 3.1/4.3.
type Component struct {
	baseGraph
	children     []*Instance
	instantiated bool
}

// NewComponent constructs an empty Component.
func NewComponent(name string) *Component {
	return &Component{baseGraph: newBaseGraph(name)}
}

func (c *Component) IsComponent() bool { return true }
func (c *Component) IsInstance() bool  { return false }

// Add checks invariant 3.2-2 (every referenced sub-object must already be
// parented here, a literal, or an expression), invariant 3.2-5 (ports and
// parameters become immutable after first instantiation, reported as a
// MutationError rather than aborting), and rejects same-name duplicates
// unless it is the same object.
func (c *Component) Add(obj Object) error {
	if n, ok := obj.(Node); ok && c.instantiated && (n.Kind() == PortKind || n.Kind() == ParameterKind) {
		return warnMutation("component %q mutated after instantiation: added %s %q", c.name, n.Kind(), obj.Name())
	}
	if _, ok := obj.(*PortArray); ok && c.instantiated {
		return warnMutation("component %q mutated after instantiation: added port array %q", c.name, obj.Name())
	}

	checkParented(c, obj)

	if err := c.addObject(obj); err != nil {
		return err
	}
	return obj.SetParent(c)
}

// AddInstanceOf appends a new Instance of comp to this component's
// children, naming it name (or "<comp>_inst" if blank), and marks comp as
// instantiated (invariant 3.2-5).
func (c *Component) AddInstanceOf(comp *Component, name string) *Instance {
	if name == "" {
		name = comp.Name() + "_inst"
	}
	inst := newInstance(comp, name)
	inst.parentGraph = c
	c.children = append(c.children, inst)
	comp.instantiated = true
	return inst
}

// ChildInstances returns all Instance graphs directly owned by this
// Component, in insertion order.
func (c *Component) ChildInstances() []*Instance { return c.children }

// InstanceComponents returns the distinct set of Components referenced by
// this Component's child Instances (spec.md 9, Open Question 1).
func (c *Component) InstanceComponents() []*Component {
	seen := map[*Component]bool{}
	var out []*Component
	for _, inst := range c.children {
		if !seen[inst.Component()] {
			seen[inst.Component()] = true
			out = append(out, inst.Component())
		}
	}
	return out
}

// IsInstantiated reports whether at least one Instance of this Component
// has been constructed.
func (c *Component) IsInstantiated() bool { return c.instantiated }
