package arrowschema

import (
	"strconv"
	"strings"

	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
)

// BusFunction maps a schema's Mode onto the domain library's BusFunction:
// a read schema drives an ArrayReader/read-bus interface, a write schema
// drives an ArrayWriter/write-bus interface.
func (m Mode) BusFunction() domain.BusFunction {
	if m == Write {
		return domain.BusWrite
	}
	return domain.BusRead
}

// DataPortType returns the Arrow-facing data port type for field: its own
// logical type wrapped in a Stream, at the field's declared EPC. This is
// the port RecordBatch exposes to the kernel; bridging it to the generic
// ArrayReader/ArrayWriter data port happens through an explicit TypeMapper,
// the way recordbatch.cc's GetStreamTypeMapper bridges the two shapes.
func DataPortType(f Field) ir.Type {
	return ir.NewStream(f.Name, f.Type(), "value", f.EPC())
}

// NewDataPort builds field's kernel-facing data port in the given
// direction (In for a write-mode RecordBatch, Out for read-mode, mirroring
// which side produces the stream).
func NewDataPort(f Field, dir ir.Direction) *ir.Port {
	return ir.NewPort(f.Name, DataPortType(f), dir)
}

// ArrayComponentFor returns the cached ArrayReader or ArrayWriter
// primitive appropriate for a schema of mode m, delegating to the domain
// library (spec.md 6, "array-reader/array-writer library components").
func ArrayComponentFor(m Mode) *ir.Component {
	return domain.NewArrayComponent(m.BusFunction())
}

// ConfigString builds the CFG parameter value the ArrayReader/ArrayWriter
// primitive is configured with: a compact string encoding the field's
// logical width and nullability, following the vhdmmio-adjacent
// "name(width,nullable)" shape used throughout the original's generated
// CFG strings (mmio.cc / recordbatch.cc). Non-exhaustive by design: it
// covers exactly the information the generic array primitive needs.
func ConfigString(f Field) string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strconv.FormatInt(widthOf(f), 10))
	if f.Nullable {
		b.WriteString(",nullable")
	}
	b.WriteByte(')')
	return b.String()
}

func widthOf(f Field) int64 {
	if f.Kind == KindFixedWidth {
		return f.Width
	}
	return f.Kind.width()
}
