package ir

import "fmt"

// Literal is an interned, pool-owned node of known value. Literals never
// belong to a Graph. Grounded on cerata's intl/rintl free functions
// (original_source's type.h forward declarations) and spec.md 3.1/4.2.
type Literal struct {
	baseNode
	IntValue  int64
	StrValue  string
	BoolValue bool
}

func (l *Literal) String() string {
	switch l.typ.ID() {
	case IntegerTypeID:
		return fmt.Sprintf("%d", l.IntValue)
	case StringTypeID:
		return fmt.Sprintf("%q", l.StrValue)
	case BooleanTypeID:
		return fmt.Sprintf("%t", l.BoolValue)
	default:
		return l.name
	}
}

// literalPool is the process-wide interning store described in spec.md 3.1
// (Literal) and 5 (Concurrency & Resource Model: shared state). Single
// run, single goroutine; cleared explicitly between independent runs the
// way go-corset's tests reset global registries.
type literalPool struct {
	ints    map[int64]*Literal
	strs    map[string]*Literal
	bools   [2]*Literal
}

var pool = newLiteralPool()

func newLiteralPool() *literalPool {
	return &literalPool{ints: map[int64]*Literal{}, strs: map[string]*Literal{}}
}

// ResetPools clears the process-wide literal pool. Must be called between
// independent generation runs (spec.md 5).
func ResetPools() {
	pool = newLiteralPool()
}

// NewIntLiteral returns the canonical integer literal node for v, creating
// it on first use.
func NewIntLiteral(v int64) *Literal {
	if l, ok := pool.ints[v]; ok {
		return l
	}
	l := &Literal{baseNode: newBaseNode(fmt.Sprintf("%d", v), LiteralKind, IntegerType()), IntValue: v}
	l.self = l
	pool.ints[v] = l
	return l
}

// NewStringLiteral returns the canonical string literal node for v.
func NewStringLiteral(v string) *Literal {
	if l, ok := pool.strs[v]; ok {
		return l
	}
	l := &Literal{baseNode: newBaseNode(v, LiteralKind, StringType()), StrValue: v}
	l.self = l
	pool.strs[v] = l
	return l
}

// NewBoolLiteral returns the canonical boolean literal node for v.
func NewBoolLiteral(v bool) *Literal {
	idx := 0
	if v {
		idx = 1
	}
	if l := pool.bools[idx]; l != nil {
		return l
	}
	l := &Literal{baseNode: newBaseNode(fmt.Sprintf("%t", v), LiteralKind, BooleanType()), BoolValue: v}
	l.self = l
	pool.bools[idx] = l
	return l
}
