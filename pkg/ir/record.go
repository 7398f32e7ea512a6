package ir

// Record is a nested type containing an ordered sequence of named Fields.
// Grounded on cerata::Record (original_source's type.h).
type Record struct {
	baseType
	fields []*Field
}

// NewRecord constructs a Record type with the given fields, in order.
func NewRecord(name string, fields ...*Field) *Record {
	r := &Record{baseType: newBaseType(name, RecordTypeID), fields: fields}
	r.self = r
	return r
}

// AddField appends a Field to this Record and returns the record for
// chaining.
func (r *Record) AddField(f *Field) *Record {
	r.fields = append(r.fields, f)
	return r
}

// Fields returns all fields contained by this record, in declared order.
func (r *Record) Fields() []*Field { return r.fields }

// NumFields returns the number of fields in this record.
func (r *Record) NumFields() int { return len(r.fields) }

func (r *Record) IsPhysical() bool {
	for _, f := range r.fields {
		if !f.Type().IsPhysical() {
			return false
		}
	}
	return len(r.fields) > 0
}

func (r *Record) IsNested() bool { return true }

func (r *Record) IsGeneric() bool {
	for _, f := range r.fields {
		if f.Type().IsGeneric() {
			return true
		}
	}
	return false
}

func (r *Record) Generics() []Node {
	var out []Node
	for _, f := range r.fields {
		out = append(out, f.Type().Generics()...)
	}
	return out
}

func (r *Record) Nested() []Type {
	out := make([]Type, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, f.Type())
	}
	return out
}

// IsEqual compares field count and pairwise field-type equality; field
// names are not compared (spec.md 4.1).
func (r *Record) IsEqual(other Type) bool {
	o, ok := other.(*Record)
	if !ok || len(o.fields) != len(r.fields) {
		return false
	}
	for i, f := range r.fields {
		if !IsEqual(f.Type(), o.fields[i].Type()) {
			return false
		}
	}
	return true
}

func (r *Record) Copy(rebinding map[Node]Node) Type {
	nr := NewRecord(r.name)
	for _, f := range r.fields {
		nr.AddField(f.Copy(rebinding))
	}
	for k, v := range r.meta {
		nr.SetMeta(k, v)
	}
	return nr
}
