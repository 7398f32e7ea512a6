package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletchgen/cerata/pkg/ir"
)

func TestAxi4LiteTypeIsCachedPerSpecAndHasFiveChannels(t *testing.T) {
	spec := Axi4LiteSpec{AddrWidth: ir.NewIntParameter("A", 32), DataWidth: ir.NewIntParameter("D", 32)}

	a := Axi4LiteType(spec)
	b := Axi4LiteType(spec)
	assert.Same(t, a, b)

	rec, ok := a.(*ir.Record)
	require.True(t, ok)
	require.Len(t, rec.Fields(), 5)

	names := map[string]bool{}
	for _, f := range rec.Fields() {
		names[f.Name()] = true
	}
	for _, want := range []string{"aw", "w", "b", "ar", "r"} {
		assert.True(t, names[want], "missing channel %q", want)
	}

	for _, f := range rec.Fields() {
		assert.False(t, f.Sep())
	}
}

func TestAxi4LiteTypeInvertsResponseChannels(t *testing.T) {
	spec := Axi4LiteSpec{AddrWidth: ir.NewIntParameter("A2", 32), DataWidth: ir.NewIntParameter("D2", 32)}
	rec := Axi4LiteType(spec).(*ir.Record)

	for _, f := range rec.Fields() {
		switch f.Name() {
		case "b", "r":
			assert.True(t, f.Invert(), "%s should be inverted", f.Name())
		case "aw", "w", "ar":
			assert.False(t, f.Invert(), "%s should not be inverted", f.Name())
		}
	}
}

func TestAxi4LiteTypeDiffersByDifferingSpec(t *testing.T) {
	specA := Axi4LiteSpec{AddrWidth: ir.NewIntParameter("A3", 32), DataWidth: ir.NewIntParameter("D3", 32)}
	specB := Axi4LiteSpec{AddrWidth: ir.NewIntParameter("A3", 32), DataWidth: ir.NewIntParameter("D3", 64)}

	a := Axi4LiteType(specA)
	b := Axi4LiteType(specB)
	assert.NotSame(t, a, b)
}

func TestByteStrobeWidthFoldsLiteralParameterDivision(t *testing.T) {
	width := byteStrobeWidth(ir.NewIntParameter("DW", 64))
	lit, ok := width.(*ir.Literal)
	require.True(t, ok)
	assert.EqualValues(t, 8, lit.IntValue)
}

func TestByteStrobeWidthFoldsBareLiteralDivision(t *testing.T) {
	width := byteStrobeWidth(ir.NewIntLiteral(32))
	lit, ok := width.(*ir.Literal)
	require.True(t, ok)
	assert.EqualValues(t, 4, lit.IntValue)
}

func TestByteStrobeWidthFallsBackToExpressionForUnresolvedWidth(t *testing.T) {
	free := ir.NewParameter("free_width", ir.IntegerType(), nil)
	width := byteStrobeWidth(free)
	_, ok := width.(*ir.Expression)
	require.True(t, ok)
}

func TestNewAxiLitePortIsNamedMmio(t *testing.T) {
	spec := Axi4LiteSpec{AddrWidth: ir.NewIntParameter("A4", 32), DataWidth: ir.NewIntParameter("D4", 32)}
	p := NewAxiLitePort(ir.Out, spec)
	assert.Equal(t, "mmio", p.Name())
	assert.Equal(t, ir.Out, p.Direction())
}
