package ir

// Signal is an internal wire of a Component; never legal on an Instance
// (invariant 3.2-4). Grounded on cerata::Signal, exercised heavily by the
// signal-interposition transform (spec.md 4.5).
type Signal struct {
	baseNode
	domain *ClockDomain
}

// NewSignal constructs a Signal of the given type on the default clock
// domain.
func NewSignal(name string, typ Type) *Signal {
	s := &Signal{baseNode: newBaseNode(name, SignalKind, typ), domain: DefaultClockDomain}
	s.self = s
	return s
}

// Domain returns the clock domain this signal is synchronous to.
func (s *Signal) Domain() *ClockDomain { return s.domain }

// SetDomain assigns the clock domain this signal is synchronous to.
func (s *Signal) SetDomain(d *ClockDomain) *Signal {
	s.domain = d
	return s
}
