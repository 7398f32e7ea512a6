package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPortDefaultsToDefaultClockDomain(t *testing.T) {
	p := NewPort("p", BitType(), In)
	assert.Same(t, DefaultClockDomain, p.Domain())
	assert.Equal(t, In, p.Direction())
}

func TestSetDomainReturnsPortForChaining(t *testing.T) {
	d := NewClockDomain("custom")
	p := NewPort("p", BitType(), Out).SetDomain(d)
	assert.Same(t, d, p.Domain())
}

func TestPortCopyRebindsTypeAndPreservesDomainAndMeta(t *testing.T) {
	width := NewIntParameter("W", 8)
	p := NewPort("p", NewVector("v", width), In)
	p.SetDomain(NewClockDomain("d"))
	p.SetMeta("k", "v")

	replacement := NewIntParameter("W2", 8)
	cp := p.Copy(map[Node]Node{width: replacement})

	assert.Equal(t, p.Direction(), cp.Direction())
	assert.Same(t, p.Domain(), cp.Domain())
	assert.Equal(t, "v", cp.Meta()["k"])

	vec, ok := cp.Type().(*Vector)
	require.True(t, ok)
	w, ok := vec.Width()
	require.True(t, ok)
	assert.Same(t, Node(replacement), w)
}

func TestNewSignalDefaultsToDefaultClockDomainAndIsChainable(t *testing.T) {
	s := NewSignal("s", BitType())
	assert.Same(t, DefaultClockDomain, s.Domain())

	d := NewClockDomain("sig_domain")
	assert.Same(t, d, s.SetDomain(d).Domain())
}

func TestNewClockDomainProducesDistinctIdentities(t *testing.T) {
	a := NewClockDomain("x")
	b := NewClockDomain("x")
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Name, b.Name)
}

func TestExpressionInfersIntegerTypeWhenEitherOperandIsInteger(t *testing.T) {
	width := NewIntParameter("W3", 4)
	e := AddExpr(width, NewIntLiteral(1))
	assert.Equal(t, IntegerTypeID, e.Type().ID())
}

func TestExpressionStringParenthesizesLooserBindingSubexpression(t *testing.T) {
	a := NewIntLiteral(1)
	b := NewIntLiteral(2)
	c := NewIntLiteral(3)
	sum := AddExpr(a, b)
	product := MulExpr(sum, c)

	assert.Equal(t, "(1 + 2) * 3", product.String())
}

func TestExpressionAppendReferencesIsTransitive(t *testing.T) {
	a := NewIntLiteral(4)
	b := NewIntLiteral(5)
	inner := AddExpr(a, b)
	c := NewIntLiteral(6)
	outer := MulExpr(inner, c)

	refs := outer.AppendReferences()
	assert.Contains(t, refs, Node(inner))
	assert.Contains(t, refs, Node(c))
	assert.Contains(t, refs, Node(a))
	assert.Contains(t, refs, Node(b))
}

func TestNegateExprIsSubtractionFromZero(t *testing.T) {
	n := NewIntLiteral(7)
	neg := NegateExpr(n)
	assert.Equal(t, Sub, neg.Op)
	assert.Same(t, Node(NewIntLiteral(0)), neg.Left)
	assert.Same(t, Node(n), neg.Right)
}

func TestLiteralsAreInternedByValue(t *testing.T) {
	defer ResetPools()
	assert.Same(t, NewIntLiteral(42), NewIntLiteral(42))
	assert.Same(t, NewStringLiteral("hi"), NewStringLiteral("hi"))
	assert.Same(t, NewBoolLiteral(true), NewBoolLiteral(true))
	assert.NotSame(t, NewBoolLiteral(true), NewBoolLiteral(false))
}

func TestLiteralStringFormatsByType(t *testing.T) {
	defer ResetPools()
	assert.Equal(t, "42", NewIntLiteral(42).String())
	assert.Equal(t, `"hi"`, NewStringLiteral("hi").String())
	assert.Equal(t, "true", NewBoolLiteral(true).String())
}

func TestResetPoolsClearsInterning(t *testing.T) {
	first := NewIntLiteral(99)
	ResetPools()
	second := NewIntLiteral(99)
	assert.NotSame(t, first, second)
	ResetPools()
}
