package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTypeLowersStreamToValidReadyElementRecord(t *testing.T) {
	s := NewStream("s", VectorOfWidth(8), "data", 1)
	expanded := ExpandType(s)

	es, ok := expanded.(*Stream)
	require.True(t, ok)
	assert.Equal(t, "true", es.Meta()[MetaWasExpanded])

	rec, ok := es.ElementType().(*Record)
	require.True(t, ok)
	require.Len(t, rec.Fields(), 3)

	assert.Equal(t, "valid", rec.Fields()[0].Name())
	assert.False(t, rec.Fields()[0].Invert())
	assert.Equal(t, "ready", rec.Fields()[1].Name())
	assert.True(t, rec.Fields()[1].Invert())
	assert.Equal(t, "data", rec.Fields()[2].Name())
	assert.True(t, IsEqual(rec.Fields()[2].Type(), VectorOfWidth(8)))
}

func TestExpandTypeIsIdempotentOnAlreadyExpandedStream(t *testing.T) {
	s := NewStream("s", VectorOfWidth(8), "data", 1)
	expanded := ExpandType(s)
	expandedAgain := ExpandType(expanded)
	assert.Same(t, expanded, expandedAgain)
}

func TestExpandTypeRecursesIntoRecordFields(t *testing.T) {
	inner := NewStream("inner", BitType(), "data", 1)
	r := NewRecord("r", NewField("s", inner, false), NewField("plain", BitType(), false))

	expanded := ExpandType(r)
	er, ok := expanded.(*Record)
	require.True(t, ok)
	require.Len(t, er.Fields(), 2)

	_, isStream := er.Fields()[0].Type().(*Stream)
	assert.True(t, isStream)
	assert.Equal(t, "true", er.Fields()[0].Type().Meta()[MetaWasExpanded])
	assert.Equal(t, BitType().ID(), er.Fields()[1].Type().ID())
}

func TestExpandTypeLeavesUnaffectedRecordUnchanged(t *testing.T) {
	r := NewRecord("r", NewField("a", BitType(), false))
	expanded := ExpandType(r)
	assert.Same(t, r, expanded)
}

func TestExpandTypeRewritesMappersBetweenTwoStreams(t *testing.T) {
	a := NewStream("a", VectorOfWidth(8), "data", 1)
	b := NewStream("b", VectorOfWidth(8), "data", 1)

	m := equalStructureMapper(a, b)
	a.AddMapper(m, false)

	expandedAny := ExpandType(a)
	expandedA, ok := expandedAny.(*Stream)
	require.True(t, ok)

	var toB *TypeMapper
	for _, mm := range expandedA.Mappers() {
		if _, isStream := mm.other(expandedA).(*Stream); isStream {
			toB = mm
		}
	}
	require.NotNil(t, toB)
	assert.Equal(t, [][2]int{{0, 0}, {2, 2}, {3, 3}, {4, 4}}, toB.Pairs())
}
