package ir

// Edge is a directed connection src -> dst between two nodes, lazily
// created by Connect and jointly referenced by both endpoints. Grounded on
// cerata::Edge (original_source's edge.h) and spec.md 3.1/4.4.
type Edge struct {
	name string
	src  Node
	dst  Node
}

// Name returns the edge's generated name, "<src>_to_<dst>".
func (e *Edge) Name() string { return e.name }

// Src returns the source (driving) node.
func (e *Edge) Src() Node { return e.src }

// Dst returns the destination (driven) node.
func (e *Edge) Dst() Node { return e.dst }

// Other returns the node on the opposite side of the edge from n.
func (e *Edge) Other(n Node) (Node, bool) {
	switch n {
	case e.src:
		return e.dst, true
	case e.dst:
		return e.src, true
	default:
		return nil, false
	}
}

// connectRaw creates and registers an edge without running Connect's checks
// (clock domain, mapper discovery, direction validity). Used internally by
// Node.Replace and by Connect itself once checks pass.
func connectRaw(dst, src Node) (*Edge, error) {
	if dst == nil || src == nil {
		panicStructure("cannot connect a nil node")
	}
	e := &Edge{name: src.Name() + "_to_" + dst.Name(), src: src, dst: dst}
	if err := dst.addSource(e); err != nil {
		return nil, err
	}
	src.addSink(e)
	return e, nil
}

// disconnectEdge removes the edge from both of its endpoints, destroying
// it (invariant 3.2-6: destroyed when removed from either endpoint).
func disconnectEdge(e *Edge) {
	e.src.removeEdge(e)
	e.dst.removeEdge(e)
}

// Disconnect removes e from both of its endpoints. Exported for use by
// pkg/transform, which rewires edges during signal interposition and
// stream expansion.
func Disconnect(e *Edge) { disconnectEdge(e) }

