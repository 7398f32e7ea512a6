package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEqualIgnoresVectorWidth(t *testing.T) {
	a := VectorOfWidth(8)
	b := VectorOfWidth(64)
	assert.True(t, IsEqual(a, b))
	assert.True(t, a.IsEqual(b))
}

func TestIsEqualRejectsDifferentKinds(t *testing.T) {
	assert.False(t, IsEqual(BitType(), IntegerType()))
}

func TestIsEqualShortCircuitsOnIdenticalObject(t *testing.T) {
	v := VectorOfWidth(32)
	assert.True(t, IsEqual(v, v))
}

func TestRecordIsEqualComparesFieldTypesNotNames(t *testing.T) {
	a := NewRecord("a", NewField("x", BitType(), false), NewField("y", VectorOfWidth(4), false))
	b := NewRecord("b", NewField("different_name", BitType(), false), NewField("also_different", VectorOfWidth(99), false))
	assert.True(t, IsEqual(a, b))
}

func TestRecordIsEqualRejectsDifferentFieldCount(t *testing.T) {
	a := NewRecord("a", NewField("x", BitType(), false))
	b := NewRecord("b", NewField("x", BitType(), false), NewField("y", BitType(), false))
	assert.False(t, IsEqual(a, b))
}

func TestStreamIsEqualComparesElementTypeOnly(t *testing.T) {
	a := NewStream("s1", VectorOfWidth(8), "data", 1)
	b := NewStream("s2", VectorOfWidth(16), "data", 4)
	assert.True(t, IsEqual(a, b))
}

func TestRecordIsPhysicalRequiresAllFieldsPhysicalAndNonEmpty(t *testing.T) {
	empty := NewRecord("empty")
	assert.False(t, empty.IsPhysical())

	mixed := NewRecord("mixed", NewField("bit", BitType(), false), NewField("int", IntegerType(), false))
	assert.False(t, mixed.IsPhysical())

	allPhysical := NewRecord("phys", NewField("a", BitType(), false), NewField("b", VectorOfWidth(4), false))
	assert.True(t, allPhysical.IsPhysical())
}

func TestRecordIsGenericPropagatesFromFields(t *testing.T) {
	withParam := NewRecord("r", NewField("w", NewVector("w", NewIntParameter("WIDTH", 8)), false))
	assert.True(t, withParam.IsGeneric())

	withoutParam := NewRecord("r2", NewField("w", VectorOfWidth(8), false))
	assert.False(t, withoutParam.IsGeneric())
}

func TestVectorCopyRebindsWidth(t *testing.T) {
	oldWidth := NewIntParameter("W", 8)
	newWidth := NewIntParameter("W2", 16)
	v := NewVector("v", oldWidth)

	copied := v.Copy(map[Node]Node{oldWidth: newWidth}).(*Vector)
	w, ok := copied.Width()
	require.True(t, ok)
	assert.Equal(t, newWidth, w)
}

func TestVectorCopyPreservesMeta(t *testing.T) {
	v := NewVector("v", NewIntLiteral(8))
	v.SetMeta("FORCE_VECTOR", "true")
	copied := v.Copy(nil)
	assert.Equal(t, "true", copied.Meta()["FORCE_VECTOR"])
}

func TestRecordCopyDeepCopiesFields(t *testing.T) {
	width := NewIntParameter("W", 8)
	r := NewRecord("r", NewField("a", NewVector("a", width), false))

	rebinding := map[Node]Node{width: NewIntLiteral(32)}
	copied := r.Copy(rebinding).(*Record)
	require.Len(t, copied.Fields(), 1)
	w, _ := copied.Fields()[0].Type().Width()
	assert.Equal(t, NewIntLiteral(32), w)
}

func TestBitWidthIsAlwaysOne(t *testing.T) {
	w, ok := BitType().Width()
	require.True(t, ok)
	lit, ok := w.(*Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.IntValue)
}

func TestGetMapperIdentityForSameObject(t *testing.T) {
	v := VectorOfWidth(8)
	m, ok := v.GetMapper(v, true)
	require.True(t, ok)
	assert.Equal(t, [][2]int{{0, 0}}, m.Pairs())
}

func TestGetMapperFailsWithoutImplicitGeneration(t *testing.T) {
	a := VectorOfWidth(8)
	b := VectorOfWidth(16)
	_, ok := a.GetMapper(b, false)
	assert.False(t, ok)
}

func TestGetMapperFailsForStructurallyUnequalTypes(t *testing.T) {
	_, ok := BitType().GetMapper(IntegerType(), true)
	assert.False(t, ok)
}

func TestGetMapperCachesGeneratedMapper(t *testing.T) {
	a := VectorOfWidth(8)
	b := VectorOfWidth(16)
	m1, ok := a.GetMapper(b, true)
	require.True(t, ok)
	m2, ok := a.GetMapper(b, false)
	require.True(t, ok)
	assert.Same(t, m1, m2)
}

func TestAddMapperInstallsInverseOnOtherType(t *testing.T) {
	a := VectorOfWidth(8)
	b := VectorOfWidth(16)
	m := NewTypeMapper(a, b)
	m.Add(0, 0)
	a.AddMapper(m, false)

	inv, ok := b.GetMapper(a, false)
	require.True(t, ok)
	assert.Equal(t, [][2]int{{0, 0}}, inv.Pairs())
}

func TestRemoveMappersTo(t *testing.T) {
	a := VectorOfWidth(8)
	b := VectorOfWidth(16)
	m := NewTypeMapper(a, b)
	a.AddMapper(m, false)
	require.Len(t, a.Mappers(), 1)

	removed := a.RemoveMappersTo(b)
	assert.Equal(t, 1, removed)
	assert.Len(t, a.Mappers(), 0)
}
