package ir

// Parameter is a node whose value may be traced to a Literal, used to
// parameterize vector widths, record field widths and NodeArray sizes.
// Grounded on cerata::Parameter (original_source's parameter.h).
type Parameter struct {
	baseNode
	value Node
	// arraySizeOf is set when this parameter is used as the size node of a
	// NodeArray; invariant 3.2-3 allows at most one.
	arraySizeOf NodeArray
}

// NewParameter constructs a Parameter with an optional default value node
// (a Literal, another Parameter, or an Expression).
func NewParameter(name string, typ Type, value Node) *Parameter {
	p := &Parameter{baseNode: newBaseNode(name, ParameterKind, typ), value: value}
	p.self = p
	return p
}

// Value returns the node backing this parameter's default value.
func (p *Parameter) Value() Node { return p.value }

// SetValue assigns a new default value node. Must be a Literal, Parameter or
// Expression.
func (p *Parameter) SetValue(v Node) {
	switch v.Kind() {
	case LiteralKind, ParameterKind, ExpressionKind:
		p.value = v
	default:
		panicStructure("parameter %q value must be a literal, parameter or expression, got %s", p.name, v.Kind())
	}
}

// AppendReferences returns the value node plus any nodes it transitively
// references, used when copying a Parameter onto another graph (spec.md
// 4.2 "AppendReferences").
func (p *Parameter) AppendReferences() []Node {
	if p.value == nil {
		return nil
	}
	refs := []Node{p.value}
	refs = append(refs, p.value.AppendReferences()...)
	return refs
}

// TraceLiteral walks the value chain looking for a terminal Literal,
// following Parameter.Value() links. Used by RebindGeneric and by tests that
// want a concrete width.
func (p *Parameter) TraceLiteral() (*Literal, bool) {
	var cur Node = p
	for {
		switch v := cur.(type) {
		case *Literal:
			return v, true
		case *Parameter:
			if v.value == nil {
				return nil, false
			}
			cur = v.value
		default:
			return nil, false
		}
	}
}

// NewIntParameter is a convenience constructor for an integer-typed
// Parameter with an integer literal default value, the common case for
// vector widths and array sizes.
func NewIntParameter(name string, value int64) *Parameter {
	return NewParameter(name, IntegerType(), NewIntLiteral(value))
}
