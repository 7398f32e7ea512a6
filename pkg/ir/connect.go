package ir

// Connect joins dst and src with a new Edge, running the checks of
// spec.md 4.4 in order: null rejection, clock domain comparison (warning
// only), mapper discovery (fatal if none found), and direction validity.
// Grounded on cerata::Connect (original_source's edge.h) and go-corset's
// panic-on-structural-violation error style.
func Connect(dst, src Node) (*Edge, error) {
	if dst == nil || src == nil {
		panicStructure("cannot connect a nil node")
	}

	var warning error
	if d1, ok := domainOf(dst); ok {
		if d2, ok := domainOf(src); ok && d1 != d2 {
			warning = warnDomain("connecting %q (domain %q) to %q (domain %q)", src.Name(), d2.Name, dst.Name(), d1.Name)
		}
	}

	if _, ok := dst.Type().GetMapper(src.Type(), true); !ok {
		panicType("no mapper available from %q to %q", src.Type().Name(), dst.Type().Name())
	}

	checkDirection(dst, src)

	e, err := connectRaw(dst, src)
	if err != nil {
		return nil, err
	}
	return e, warning
}

// ConnectOp is sugar over Connect matching cerata's `dst <<= src` operator
// form.
func ConnectOp(dst, src Node) (*Edge, error) { return Connect(dst, src) }

func domainOf(n Node) (*ClockDomain, bool) {
	switch v := n.(type) {
	case *Signal:
		return v.Domain(), true
	case *Port:
		return v.Domain(), true
	default:
		return nil, false
	}
}

// checkDirection enforces spec.md 4.4 step 4: an Instance's OUT port may
// not be driven (it is a source), a Component's IN port may not be driven
// from inside (it is sourced externally), and the symmetric rules when the
// endpoint is instead acting as a source.
func checkDirection(dst, src Node) {
	checkAsDestination(dst)
	checkAsSource(src)
}

func checkAsDestination(n Node) {
	p, ok := n.(*Port)
	if !ok {
		return
	}
	g, hasParent := p.Parent()
	if !hasParent {
		return
	}
	switch {
	case g.IsInstance() && p.Direction() == Out:
		panicDirection("port %q is an instance output and cannot be driven", p.Name())
	case g.IsComponent() && p.Direction() == In:
		panicDirection("port %q is a component input and cannot be driven from inside", p.Name())
	}
}

func checkAsSource(n Node) {
	p, ok := n.(*Port)
	if !ok {
		return
	}
	g, hasParent := p.Parent()
	if !hasParent {
		return
	}
	switch {
	case g.IsInstance() && p.Direction() == In:
		panicDirection("port %q is an instance input and cannot be used as a source", p.Name())
	case g.IsComponent() && p.Direction() == Out:
		panicDirection("port %q is a component output and cannot be used as a source from inside", p.Name())
	}
}
