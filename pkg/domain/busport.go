package domain

import "github.com/fletchgen/cerata/pkg/ir"

// BusReadType builds the read-bus record type: a request stream (address,
// burst length) paired with a reversed response data stream (data, last).
// Grounded on fletchgen::bus_read (bus.cc) and spec.md 4.8.
func BusReadType(p BusParam) ir.Type {
	reqRec := ir.NewRecord("bus_rreq_rec")
	reqRec.AddField(ir.NewField("addr", ir.NewVector("addr", p.AddrWidth), false))
	reqRec.AddField(ir.NewField("len", ir.NewVector("len", p.LenWidth), false))
	req := ir.NewStream("bus_rreq", reqRec, "rreq", 1)

	datRec := ir.NewRecord("bus_rdat_rec")
	datRec.AddField(ir.NewField("data", ir.NewVector("data", p.DataWidth), false))
	datRec.AddField(ir.NewField("last", ir.BitType(), false))
	dat := ir.NewStream("bus_rdat", datRec, "rdat", 1)

	bus := ir.NewRecord("BusRead")
	bus.AddField(ir.NewField("rreq", req, false))
	bus.AddField(ir.NewField("rdat", dat, true))
	return bus
}

// BusWriteType builds the write-bus record type: a request stream (address,
// burst length) paired with a data stream (data, strobe, last). Grounded on
// fletchgen::bus_write (bus.cc) and spec.md 4.8.
func BusWriteType(p BusParam) ir.Type {
	reqRec := ir.NewRecord("bus_wreq_rec")
	reqRec.AddField(ir.NewField("addr", ir.NewVector("addr", p.AddrWidth), false))
	reqRec.AddField(ir.NewField("len", ir.NewVector("len", p.LenWidth), false))
	req := ir.NewStream("bus_wreq", reqRec, "wreq", 1)

	datRec := ir.NewRecord("bus_wdat_rec")
	datRec.AddField(ir.NewField("data", ir.NewVector("data", p.DataWidth), false))
	datRec.AddField(ir.NewField("strobe", ir.NewVector("strobe", p.StrobeWidth), false))
	datRec.AddField(ir.NewField("last", ir.BitType(), false))
	dat := ir.NewStream("bus_wdat", datRec, "wdat", 1)

	bus := ir.NewRecord("BusWrite")
	bus.AddField(ir.NewField("wreq", req, false))
	bus.AddField(ir.NewField("wdat", dat, false))
	return bus
}

// BusType returns BusReadType or BusWriteType depending on function.
func BusType(p BusParam, function BusFunction) ir.Type {
	if function == BusWrite {
		return BusWriteType(p)
	}
	return BusReadType(p)
}

// BusPort wraps an ir.Port with the bus parameters and function it was
// derived from, so arbiter and RecordBatch wiring code can inspect them
// without re-deriving the type. Grounded on fletchgen::BusPort (bus.h).
type BusPort struct {
	*ir.Port
	Params   BusParam
	Function BusFunction
}

// NewBusPort builds a BusPort named name (or "bus" if blank) of the given
// direction and function, on the default clock domain.
func NewBusPort(name string, dir ir.Direction, p BusParam, function BusFunction) *BusPort {
	if name == "" {
		name = "bus"
	}
	port := ir.NewPort(name, BusType(p, function), dir)
	return &BusPort{Port: port, Params: p, Function: function}
}
