package arrowschema

import (
	"testing"

	"github.com/fletchgen/cerata/pkg/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTypeWidths(t *testing.T) {
	cases := []struct {
		kind  LogicalKind
		width int64
	}{
		{KindUint8, 8},
		{KindInt32, 32},
		{KindFloat64, 64},
	}
	for _, c := range cases {
		f := Field{Name: "f", Kind: c.kind}
		vec, ok := f.Type().(*ir.Vector)
		require.True(t, ok)
		width, hasWidth := vec.Width()
		require.True(t, hasWidth)
		lit, ok := width.(*ir.Literal)
		require.True(t, ok)
		assert.Equal(t, c.width, lit.IntValue)
	}
}

func TestFieldTypeBool(t *testing.T) {
	f := Field{Name: "valid", Kind: KindBool}
	_, ok := f.Type().(*ir.Bit)
	assert.True(t, ok)
}

func TestFieldEPCDefaultsToOne(t *testing.T) {
	f := Field{Name: "f", Kind: KindInt32}
	assert.Equal(t, 1, f.EPC())
	f.ValueEPC = 4
	assert.Equal(t, 4, f.EPC())
}

func TestRecordBatchDescriptionNonIgnored(t *testing.T) {
	d := RecordBatchDescription{
		Name: "s",
		Mode: Read,
		Fields: []Field{
			{Name: "a", Kind: KindInt32},
			{Name: "b", Kind: KindInt32, Ignore: true},
			{Name: "c", Kind: KindUtf8},
		},
	}
	nonIgnored := d.NonIgnored()
	require.Len(t, nonIgnored, 2)
	assert.Equal(t, "a", nonIgnored[0].Name)
	assert.Equal(t, "c", nonIgnored[1].Name)
}

func TestBufferCountVariableLengthAndNullable(t *testing.T) {
	assert.Equal(t, 1, BufferCount(Field{Kind: KindInt32}))
	assert.Equal(t, 2, BufferCount(Field{Kind: KindInt32, Nullable: true}))
	assert.Equal(t, 2, BufferCount(Field{Kind: KindUtf8}))
	assert.Equal(t, 3, BufferCount(Field{Kind: KindUtf8, Nullable: true}))
}

func TestDataPortTypeIsStream(t *testing.T) {
	f := Field{Name: "price", Kind: KindInt64, ValueEPC: 2}
	typ := DataPortType(f)
	s, ok := typ.(*ir.Stream)
	require.True(t, ok)
	assert.Equal(t, 2, s.EPC())
}

func TestConfigStringEncodesWidthAndNullability(t *testing.T) {
	f := Field{Name: "amount", Kind: KindInt32, Nullable: true}
	assert.Equal(t, "amount(32,nullable)", ConfigString(f))
}
