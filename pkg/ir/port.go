package ir

// Port is a directed, clock-domain-bound typed connection point on a Graph.
// Grounded on cerata::Port (original_source's graph.h/edge.h forward
// declarations) and spec.md 3.1 (Node), 4.4 (direction validity rules).
type Port struct {
	baseNode
	direction Direction
	domain    *ClockDomain
}

// NewPort constructs a Port of the given direction and type on the default
// clock domain.
func NewPort(name string, typ Type, dir Direction) *Port {
	p := &Port{baseNode: newBaseNode(name, PortKind, typ), direction: dir, domain: DefaultClockDomain}
	p.self = p
	return p
}

// Direction returns whether this port is an input or an output.
func (p *Port) Direction() Direction { return p.direction }

// Domain returns the clock domain this port is synchronous to.
func (p *Port) Domain() *ClockDomain { return p.domain }

// SetDomain assigns the clock domain this port is synchronous to.
func (p *Port) SetDomain(d *ClockDomain) *Port {
	p.domain = d
	return p
}

// Copy returns a structural copy of the port, re-typed under rebinding
// (used by Instance construction, spec.md 4.3 step 2).
func (p *Port) Copy(rebinding map[Node]Node) *Port {
	np := NewPort(p.name, p.typ.Copy(rebinding), p.direction)
	np.domain = p.domain
	for k, v := range p.meta {
		np.SetMeta(k, v)
	}
	return np
}
