// Package arrowschema is the thin front-end consumer stub the core expects:
// it turns a sequence of schema fields with Arrow-like logical types into
// the ir.Type instances RecordBatch components are built from, the way a
// real schema front-end would (spec.md 6, "Consumed from schema front-end").
// Grounded on original_source's fletcher::arrow-utils.cc (GetMeta,
// GetMode, GetBoolMeta/GetIntMeta) and meta/meta.h's metadata key names.
package arrowschema

import (
	"fmt"

	"github.com/fletchgen/cerata/pkg/ir"
)

// LogicalKind enumerates the Arrow logical types this front-end maps to
// ir.Type. Grounded on arrow-utils.cc's field-to-type dispatch (the real
// Arrow type tree, reduced to what the spec's core type algebra can carry).
type LogicalKind int

const (
	KindBool LogicalKind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindUtf8
	KindBinary
	KindFixedWidth
)

func (k LogicalKind) width() int64 {
	switch k {
	case KindBool:
		return 1
	case KindUint8, KindInt8:
		return 8
	case KindUint16, KindInt16:
		return 16
	case KindUint32, KindInt32, KindFloat32:
		return 32
	case KindUint64, KindInt64, KindFloat64:
		return 64
	default:
		return 0
	}
}

// Field is one Arrow schema field: a name, a logical type, nullability, and
// the metadata keys the original front-end reads off arrow::Field
// (ignore, profile, value EPC, fixed width for KindFixedWidth). Grounded on
// arrow-utils.cc's GetBoolMeta(field, meta::IGNORE, ...) /
// GetBoolMeta(field, meta::PROFILE, ...) / GetIntMeta(field, meta::VALUE_EPC, 1).
type Field struct {
	Name     string
	Kind     LogicalKind
	Nullable bool
	Width    int64 // only consulted when Kind == KindFixedWidth
	Ignore   bool
	Profile  bool
	ValueEPC int
}

// Type returns the ir.Type this field's logical type maps to: a Vector of
// the kind's bit width, or the Bit type for KindBool. Nullability is not
// represented structurally (the core type algebra has no optional kind):
// a nullable field maps to the same type as a non-nullable one, and
// ExpandStreams adds only the valid/ready handshake to its stream.
// Nullability shows up only in BufferCount and ConfigString.
func (f Field) Type() ir.Type {
	switch f.Kind {
	case KindBool:
		return ir.BitType()
	case KindUtf8, KindBinary:
		return ir.VectorOfWidth(8)
	case KindFixedWidth:
		return ir.VectorOfWidth(f.Width)
	default:
		return ir.VectorOfWidth(f.Kind.width())
	}
}

// EPC returns the field's elements-per-cycle, defaulting to 1 the way
// GetIntMeta(field, meta::VALUE_EPC, 1) does when the metadata key is absent.
func (f Field) EPC() int {
	if f.ValueEPC <= 0 {
		return 1
	}
	return f.ValueEPC
}

func (f Field) String() string {
	return fmt.Sprintf("%s(kind=%d,nullable=%t)", f.Name, f.Kind, f.Nullable)
}
