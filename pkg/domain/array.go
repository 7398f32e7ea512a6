package domain

import "github.com/fletchgen/cerata/pkg/ir"

// CommandPortType builds a command stream's record shape: first/last index
// bounds, an optional ctrl field carrying buffer addresses, and a tag.
// Grounded on spec.md 4.9 ("a command port (tag-width x index-width x
// optional ctrl-width carrying buffer addresses)").
func CommandPortType(tagWidth, indexWidth, ctrlWidth ir.Node) ir.Type {
	rec := ir.NewRecord("cmd_rec")
	rec.AddField(ir.NewField("firstIdx", ir.NewVector("firstIdx", indexWidth), false))
	rec.AddField(ir.NewField("lastIdx", ir.NewVector("lastIdx", indexWidth), false))
	if ctrlWidth != nil {
		rec.AddField(ir.NewField("ctrl", ir.NewVector("ctrl", ctrlWidth), false))
	}
	rec.AddField(ir.NewField("tag", ir.NewVector("tag", tagWidth), false))
	return ir.NewStream("cmd", rec, "cmd", 1)
}

// CommandPort builds a named command port of the given direction.
func CommandPort(name string, dir ir.Direction, tagWidth, indexWidth, ctrlWidth ir.Node) *ir.Port {
	return ir.NewPort(name, CommandPortType(tagWidth, indexWidth, ctrlWidth), dir)
}

// UnlockPortType is a tag stream signaling that a previously issued command
// has completed and its buffers may be released.
func UnlockPortType(tagWidth ir.Node) ir.Type {
	return ir.StreamOf(ir.NewVector("tag", tagWidth))
}

// UnlockPort builds a named unlock port of the given direction.
func UnlockPort(name string, dir ir.Direction, tagWidth ir.Node) *ir.Port {
	return ir.NewPort(name, UnlockPortType(tagWidth), dir)
}

// arrayDataType is the ArrayReader/Writer primitive's generic bus-facing
// data stream: a record carrying validity, last, an element count (tagged
// for profiler insertion) and a byte of payload. The Arrow-shaped
// field-derived port a RecordBatch exposes to the kernel is bridged to
// this generic shape by an explicit TypeMapper built alongside the
// connection (mirroring EnableStreamProfiling's manual mapper), since the
// two types are never structurally equal.
func arrayDataType() ir.Type {
	rec := ir.NewRecord("array_data_rec")
	rec.AddField(ir.NewField("dvalid", ir.BitType(), false))
	rec.AddField(ir.NewField("last", ir.BitType(), false))
	count := ir.NewVector("count", ir.NewIntLiteral(1))
	count.SetMeta(ir.MetaCount, "1")
	rec.AddField(ir.NewField("count", count, false))
	data := ir.VectorOfWidth(8)
	data.SetMeta(ir.MetaArrayData, "true")
	rec.AddField(ir.NewField("data", data, false))
	return ir.NewStream("array_data", rec, "data", 1)
}

// ArrayDataType exposes arrayDataType so orchestration code can build an
// explicit TypeMapper between it and a field-derived Arrow port type.
func ArrayDataType() ir.Type { return arrayDataType() }

// NewArrayStreamMapper builds the explicit TypeMapper bridging a field's
// Arrow-shaped stream port (fieldType, assumed a Stream over a single
// primitive leaf) to the ArrayReader/ArrayWriter primitive's generic data
// port: the two stream leaves are paired, and the primitive's
// MetaArrayData-tagged payload leaf is paired with the field type's sole
// element leaf. Grounded on fletchgen::RecordBatch::AddArrays's use of
// GetStreamTypeMapper (recordbatch.cc) and spec.md 4.9; the two types are
// never structurally equal so no mapper could be auto-generated.
func NewArrayStreamMapper(fieldType ir.Type) *ir.TypeMapper {
	arrType := ArrayDataType()
	flatField := ir.Flatten(fieldType)
	flatArr := ir.Flatten(arrType)

	m := ir.NewTypeMapper(fieldType, arrType)
	m.Add(0, 0)

	dataIdx := -1
	for i, ft := range flatArr {
		if ft.Type.Meta()[ir.MetaArrayData] == "true" {
			dataIdx = i
			break
		}
	}
	elemIdx := len(flatField) - 1
	if dataIdx >= 0 && elemIdx >= 0 {
		m.Add(elemIdx, dataIdx)
	}
	return m
}

var arrayComponents = map[BusFunction]*ir.Component{}

// NewArrayComponent returns the cached primitive ArrayReader (mode ==
// BusRead) or ArrayWriter (mode == BusWrite) component: a CFG string
// parameter, the bus-width parameters, clock/reset ports on both the bus
// and kernel domains, a generic data stream port, a command port, an
// unlock port and a bus master port. Grounded on
// fletchgen::RecordBatch::AddArrays's use of `array(mode_)` (recordbatch.cc)
// and spec.md 4.9.
func NewArrayComponent(mode BusFunction) *ir.Component {
	if c, ok := arrayComponents[mode]; ok {
		return c
	}

	name := "ArrayReader"
	dataDir, dataName := ir.Out, "out"
	if mode == BusWrite {
		name, dataDir, dataName = "ArrayWriter", ir.In, "in"
	}

	p := Defaults()
	c := ir.NewComponent(name)
	if err := p.AddTo(c, mode); err != nil {
		panic(err)
	}

	cfg := ir.NewParameter("CFG", ir.StringType(), ir.NewStringLiteral(""))
	tagWidth := ir.NewIntParameter("TAG_WIDTH", 1)
	idxWidth := ir.NewIntParameter("INDEX_WIDTH", 32)
	for _, obj := range []ir.Object{cfg, tagWidth, idxWidth} {
		if err := c.Add(obj); err != nil {
			panic(err)
		}
	}

	bcd := NewClockResetPort("bcd", BusDomain)
	kcd := NewClockResetPort("kcd", KernelDomain)
	data := ir.NewPort(dataName, arrayDataType(), dataDir)
	data.SetDomain(KernelDomain)
	cmd := CommandPort("cmd", ir.In, tagWidth, idxWidth, nil)
	cmd.SetDomain(KernelDomain)
	unl := UnlockPort("unl", ir.Out, tagWidth)
	unl.SetDomain(KernelDomain)
	bus := NewBusPort("bus", ir.Out, p, mode)
	bus.SetDomain(BusDomain)

	for _, obj := range []ir.Object{bcd, kcd, data, cmd, unl, bus.Port} {
		if err := c.Add(obj); err != nil {
			panic(err)
		}
	}

	c.SetMeta(ir.MetaPrimitive, "true")
	c.SetMeta(ir.MetaLibrary, "work")
	c.SetMeta(ir.MetaPackage, "Array_pkg")

	arrayComponents[mode] = c
	return c
}
