// Package dot renders a finalized IR graph as Graphviz DOT text: one
// cluster per child Instance, one node per Port/Signal/Parameter/NodeArray,
// one edge per connection. It is a pure reader, styled by a Style value
// supplied by the caller. Grounded on spec.md §6 ("Exposed to DOT dumper:
// the same graph with a style configuration").
package dot

import "github.com/fletchgen/cerata/pkg/ir"

// Style controls the visual appearance of a dumped graph: fill colors per
// node kind, cluster colors per graph kind, and overall layout direction.
// There is no DOT-specific example anywhere in the retrieval pack to ground
// this on, so its shape follows spec.md §6's "style configuration" phrase
// directly: a small set of named knobs, not a general theming system.
type Style struct {
	RankDir string

	PortColor      string
	SignalColor    string
	ParameterColor string
	LiteralColor   string
	ExpressionColor string

	ComponentColor string
	InstanceColor  string

	EdgeColor string

	// ShowMeta includes a node's metadata as a trailing label line when true.
	ShowMeta bool
}

// DefaultStyle returns a reasonable default: left-to-right layout, pastel
// fills distinguishing node kinds, metadata hidden.
func DefaultStyle() Style {
	return Style{
		RankDir:         "LR",
		PortColor:       "lightblue",
		SignalColor:     "lightyellow",
		ParameterColor:  "lightgray",
		LiteralColor:    "white",
		ExpressionColor: "white",
		ComponentColor:  "gray90",
		InstanceColor:   "gray95",
		EdgeColor:       "black",
		ShowMeta:        false,
	}
}

func (s Style) colorFor(kind ir.NodeKind) string {
	switch kind {
	case ir.PortKind:
		return s.PortColor
	case ir.SignalKind:
		return s.SignalColor
	case ir.ParameterKind:
		return s.ParameterColor
	case ir.ExpressionKind:
		return s.ExpressionColor
	default:
		return s.LiteralColor
	}
}

func (s Style) shapeFor(kind ir.NodeKind) string {
	switch kind {
	case ir.PortKind:
		return "box"
	case ir.SignalKind:
		return "ellipse"
	case ir.ParameterKind:
		return "diamond"
	default:
		return "plaintext"
	}
}
