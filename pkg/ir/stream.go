package ir

// Stream is a nested type representing a handshaked element stream. It
// stays abstract (no valid/ready fields) until lowered by
// pkg/transform.ExpandStreams (spec.md 4.6). Grounded on cerata::Stream
// (original_source's type.h).
type Stream struct {
	baseType
	elementType Type
	elementName string
	epc         int
}

// NewStream constructs a Stream type carrying elements of elementType,
// named elementName, with the given elements-per-cycle.
func NewStream(name string, elementType Type, elementName string, epc int) *Stream {
	if epc < 1 {
		epc = 1
	}
	s := &Stream{baseType: newBaseType(name, StreamTypeID), elementType: elementType, elementName: elementName, epc: epc}
	s.self = s
	return s
}

// StreamOf is a convenience constructor naming the stream "stream:<name>"
// and its elements "data", mirroring cerata's stream(element_type) helper.
func StreamOf(elementType Type) *Stream {
	return NewStream("stream:"+elementType.Name(), elementType, "data", 1)
}

func (s *Stream) ElementType() Type { return s.elementType }

// SetElementType replaces the element type, forgetting any existing
// mappers (they paired leaves of the old element type).
func (s *Stream) SetElementType(t Type) *Stream {
	s.elementType = t
	s.mappers = nil
	return s
}

func (s *Stream) ElementName() string  { return s.elementName }
func (s *Stream) SetElementName(n string) *Stream {
	s.elementName = n
	return s
}

func (s *Stream) EPC() int { return s.epc }

func (s *Stream) IsPhysical() bool { return s.elementType.IsPhysical() }
func (s *Stream) IsNested() bool   { return true }
func (s *Stream) IsGeneric() bool  { return s.elementType.IsGeneric() }

func (s *Stream) Generics() []Node { return s.elementType.Generics() }
func (s *Stream) Nested() []Type   { return []Type{s.elementType} }

// IsEqual compares element types only (spec.md 4.1).
func (s *Stream) IsEqual(other Type) bool {
	o, ok := other.(*Stream)
	if !ok {
		return false
	}
	return IsEqual(s.elementType, o.elementType)
}

func (s *Stream) Copy(rebinding map[Node]Node) Type {
	ns := NewStream(s.name, s.elementType.Copy(rebinding), s.elementName, s.epc)
	for k, v := range s.meta {
		ns.SetMeta(k, v)
	}
	return ns
}

// CanGenerateMapper reports whether Stream's custom generator (spec.md 4.1,
// 4.6) can produce a mapper to other. Streams can always attempt to map to
// another Stream; the generator aligns flattened leaves positionally,
// tolerating the extra valid/ready leaves an already-expanded side may
// carry that the other side doesn't yet.
func (s *Stream) CanGenerateMapper(other Type) bool {
	_, ok := other.(*Stream)
	return ok
}

// GenerateMapper builds a TypeMapper between this Stream and another,
// aligning flattened leaves by skipping expansion-only valid/ready leaves
// on whichever side carries them, so a not-yet-expanded stream port can
// still connect to an already-expanded one mid-transform.
func (s *Stream) GenerateMapper(other Type) *TypeMapper {
	o, ok := other.(*Stream)
	if !ok {
		panicType("stream %q cannot generate a mapper to non-stream type %q", s.name, other.Name())
	}
	return alignedStreamMapper(s, o)
}
