package vhdl

import (
	log "github.com/sirupsen/logrus"

	"github.com/fletchgen/cerata/pkg/ir"
)

// Generate renders one complete VHDL source file for c: its context
// clause, entity declaration and architecture body, in that order.
// Grounded on spec.md §6 ("RTL back-end text emission ... pure readers")
// and cerata::vhdl::Arch::Generate (architecture.cc).
func Generate(c *ir.Component) string {
	log.Debugf("vhdl: generating %q (%d ports, %d signals, %d instances)",
		c.Name(), len(c.Ports())+len(c.PortArrays()), len(c.Signals())+len(c.SignalArrays()), len(c.ChildInstances()))

	return Preamble(c) + "\n" + Entity(c) + "\n" + Architecture(c)
}

// GenerateAll renders one file per component in comps, keyed by component
// name. The map does not carry comps' order, so callers that need file
// ordering should keep comps around alongside the returned map.
func GenerateAll(comps []*ir.Component) map[string]string {
	out := make(map[string]string, len(comps))
	for _, c := range comps {
		out[c.Name()] = Generate(c)
	}
	return out
}
