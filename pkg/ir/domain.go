package ir

// ClockDomain is an identity object shared by signals/ports to assert they
// are synchronous. Crossing domains at Connect is a DomainWarning, never a
// fatal error (spec.md 3.1 Clock Domain, 4.4 step 2).
type ClockDomain struct {
	Name string
}

// NewClockDomain creates a new, distinct clock domain.
func NewClockDomain(name string) *ClockDomain {
	return &ClockDomain{Name: name}
}

// DefaultClockDomain is shared by nodes that don't specify one explicitly,
// so that an unspecified domain never spuriously warns against itself.
var DefaultClockDomain = NewClockDomain("default")
