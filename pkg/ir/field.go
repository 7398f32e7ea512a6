package ir

// Field belongs to a Record: a name, a Type, an inversion flag that flips
// downstream direction semantics along that field's path, and a
// separator-visible flag used as a name-generation hint by back-ends.
// Grounded on cerata::Field (original_source's type.h).
type Field struct {
	name    string
	typ     Type
	invert  bool
	sep     bool
	meta    map[string]string
}

// NewField constructs a Field. By default the separator is shown in
// generated names and the field is not inverted.
func NewField(name string, typ Type, invert bool) *Field {
	return &Field{name: name, typ: typ, invert: invert, sep: true, meta: map[string]string{}}
}

func (f *Field) Name() string   { return f.name }
func (f *Field) Type() Type     { return f.typ }
func (f *Field) Invert() bool   { return f.invert }
func (f *Field) Sep() bool      { return f.sep }

// NoSep disables the separator in name generation for this field.
func (f *Field) NoSep() *Field { f.sep = false; return f }

// UseSep enables the separator in name generation for this field.
func (f *Field) UseSep() *Field { f.sep = true; return f }

func (f *Field) Meta() map[string]string { return f.meta }
func (f *Field) SetMeta(key, value string) {
	if f.meta == nil {
		f.meta = map[string]string{}
	}
	f.meta[key] = value
}

// Copy clones the field, copying its type under rebinding.
func (f *Field) Copy(rebinding map[Node]Node) *Field {
	nf := NewField(f.name, f.typ.Copy(rebinding), f.invert)
	nf.sep = f.sep
	for k, v := range f.meta {
		nf.SetMeta(k, v)
	}
	return nf
}
