package ir

import "fmt"

// Type is a tagged variant describing the structure of data carried on a
// Node. Every concrete type (Bit, Vector, Nul, Integer, String, Boolean,
// Record, Stream) embeds baseType and implements the methods that differ
// per kind. Grounded on cerata::Type in original_source's type.h.
type Type interface {
	Name() string
	ID() TypeID
	String() string

	// IsPhysical reports whether the type has an immediate bit representation.
	IsPhysical() bool
	// IsNested reports whether the type contains sub-types.
	IsNested() bool
	// IsGeneric reports whether the type references a Node as a width/size.
	IsGeneric() bool

	// Width returns the node representing the bit width of this type, if any.
	Width() (Node, bool)
	// Generics returns the nodes this type references as generics (widths,
	// field widths). Used by Graph.Add to check invariant 3.2-2.
	Generics() []Node
	// Nested returns the immediate sub-types of this type, if any.
	Nested() []Type

	// IsEqual performs the structural equality check of spec.md 4.1.
	IsEqual(other Type) bool

	// Copy clones the type, substituting any referenced generic node that is
	// a key in rebinding with its value.
	Copy(rebinding map[Node]Node) Type

	Meta() map[string]string
	SetMeta(key, value string)

	Mappers() []*TypeMapper
	// AddMapper installs a mapper on this type, and its inverse on the
	// opposite type if one isn't already present there.
	AddMapper(m *TypeMapper, removeExisting bool)
	// GetMapper implements mapper discovery per spec.md 4.1 (GetMapper).
	GetMapper(other Type, generateImplicit bool) (*TypeMapper, bool)
	// RemoveMappersTo removes all installed mappers targeting other, and
	// returns how many were removed.
	RemoveMappersTo(other Type) int

	// CanGenerateMapper and GenerateMapper support custom per-kind mapper
	// generators; only Stream overrides these (spec.md 4.1, 4.6).
	CanGenerateMapper(other Type) bool
	GenerateMapper(other Type) *TypeMapper
}

// baseType implements the bookkeeping shared by every Type: name, id,
// metadata and installed mappers. Concrete types embed it.
type baseType struct {
	name    string
	id      TypeID
	meta    map[string]string
	mappers []*TypeMapper
	self    Type // set by the concrete constructor so default methods can call back
}

func newBaseType(name string, id TypeID) baseType {
	return baseType{name: name, id: id, meta: map[string]string{}}
}

func (t *baseType) Name() string { return t.name }
func (t *baseType) ID() TypeID   { return t.id }

func (t *baseType) Meta() map[string]string { return t.meta }
func (t *baseType) SetMeta(key, value string) {
	if t.meta == nil {
		t.meta = map[string]string{}
	}
	t.meta[key] = value
}

func (t *baseType) Mappers() []*TypeMapper { return t.mappers }

func (t *baseType) AddMapper(m *TypeMapper, removeExisting bool) {
	if removeExisting {
		t.RemoveMappersTo(m.other(t.self))
	}
	t.mappers = append(t.mappers, m)
	// Install the inverse on the opposite type, if absent.
	other := m.other(t.self)
	if other == nil {
		return
	}
	if _, ok := other.GetMapper(t.self, false); !ok {
		other.AddMapper(m.Inverse(), false)
	}
}

func (t *baseType) RemoveMappersTo(other Type) int {
	var kept []*TypeMapper
	removed := 0
	for _, m := range t.mappers {
		if m.other(t.self) == other {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	t.mappers = kept
	return removed
}

func (t *baseType) GetMapper(other Type, generateImplicit bool) (*TypeMapper, bool) {
	for _, m := range t.mappers {
		if o := m.other(t.self); o == other {
			return m, true
		}
	}
	if !generateImplicit {
		return nil, false
	}
	if t.self == other {
		m := identityMapper(t.self)
		t.self.AddMapper(m, false)
		return m, true
	}
	if t.self.CanGenerateMapper(other) {
		m := t.self.GenerateMapper(other)
		t.self.AddMapper(m, false)
		return m, true
	}
	if IsEqual(t.self, other) {
		m := equalStructureMapper(t.self, other)
		t.self.AddMapper(m, false)
		return m, true
	}
	return nil, false
}

func (t *baseType) CanGenerateMapper(other Type) bool { return false }
func (t *baseType) GenerateMapper(other Type) *TypeMapper {
	panicType("type %q has no custom mapper generator", t.name)
	return nil
}

func (t *baseType) Width() (Node, bool) { return nil, false }
func (t *baseType) Generics() []Node    { return nil }
func (t *baseType) Nested() []Type      { return nil }

func (t *baseType) String() string {
	return fmt.Sprintf("%s:%s", t.id, t.name)
}

// IsEqual implements the structural-equality dispatch of spec.md 4.1 for any
// two Types, independent of which concrete kind owns the call.
func IsEqual(a, b Type) bool {
	if a == b {
		return true
	}
	if a.ID() != b.ID() {
		return false
	}
	return a.IsEqual(b)
}

// --- Non-nested, non-generic, primitive/non-physical leaf types ---

// Bit is a single-bit physical type.
type Bit struct{ baseType }

func NewBit(name string) *Bit {
	b := &Bit{newBaseType(name, BitTypeID)}
	b.self = b
	return b
}

func (b *Bit) IsPhysical() bool { return true }
func (b *Bit) IsNested() bool   { return false }
func (b *Bit) IsGeneric() bool  { return false }
func (b *Bit) Width() (Node, bool) {
	return NewIntLiteral(1), true
}
func (b *Bit) IsEqual(other Type) bool { return true }
func (b *Bit) Copy(map[Node]Node) Type { return NewBit(b.name) }

// BitType returns the canonical bit type named "bit".
func BitType() *Bit { return NewBit("bit") }

// Nul is a physically-empty placeholder type, useful for empty streams.
type Nul struct{ baseType }

func NewNul(name string) *Nul {
	n := &Nul{newBaseType(name, NulTypeID)}
	n.self = n
	return n
}

func (n *Nul) IsPhysical() bool         { return false }
func (n *Nul) IsNested() bool           { return false }
func (n *Nul) IsGeneric() bool          { return false }
func (n *Nul) IsEqual(other Type) bool  { return true }
func (n *Nul) Copy(map[Node]Node) Type  { return NewNul(n.name) }

func NulType() *Nul { return NewNul("nul") }

// Integer is a non-physical parameter-value type.
type Integer struct{ baseType }

func NewInteger(name string) *Integer {
	i := &Integer{newBaseType(name, IntegerTypeID)}
	i.self = i
	return i
}

func (i *Integer) IsPhysical() bool        { return false }
func (i *Integer) IsNested() bool          { return false }
func (i *Integer) IsGeneric() bool         { return false }
func (i *Integer) IsEqual(other Type) bool { return true }
func (i *Integer) Copy(map[Node]Node) Type { return NewInteger(i.name) }

func IntegerType() *Integer { return NewInteger("integer") }

// Boolean is a non-physical parameter-value type.
type Boolean struct{ baseType }

func NewBoolean(name string) *Boolean {
	b := &Boolean{newBaseType(name, BooleanTypeID)}
	b.self = b
	return b
}

func (b *Boolean) IsPhysical() bool        { return false }
func (b *Boolean) IsNested() bool          { return false }
func (b *Boolean) IsGeneric() bool         { return false }
func (b *Boolean) IsEqual(other Type) bool { return true }
func (b *Boolean) Copy(map[Node]Node) Type { return NewBoolean(b.name) }

func BooleanType() *Boolean { return NewBoolean("boolean") }

// String is a non-physical parameter-value type.
type String struct{ baseType }

func NewString(name string) *String {
	s := &String{newBaseType(name, StringTypeID)}
	s.self = s
	return s
}

func (s *String) IsPhysical() bool        { return false }
func (s *String) IsNested() bool          { return false }
func (s *String) IsGeneric() bool         { return false }
func (s *String) IsEqual(other Type) bool { return true }
func (s *String) Copy(map[Node]Node) Type { return NewString(s.name) }

func StringType() *String { return NewString("string") }
