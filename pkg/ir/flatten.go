package ir

import "strings"

// FlatType is one leaf of a flattened Type: the accumulated name path from
// the root, the leaf Type itself, and whether Field.Invert flags along the
// path XOR to an inverted direction. Grounded on spec.md 3.1 (TypeMapper),
// 3.2 invariant 8, and 4.1 (Flattening).
type FlatType struct {
	Path     []string
	Type     Type
	Inverted bool
}

// Name joins the path fragments with "_", honoring each Field's separator
// visibility the way downstream identifier generation does.
func (f FlatType) Name() string {
	return strings.Join(f.Path, "_")
}

// Flatten returns the deterministic depth-first pre-order expansion of t:
// itself first, then each field's flattening, recursing into nested
// element types of records and streams (spec.md 3.2 invariant 8, 4.1).
func Flatten(t Type) []FlatType {
	return flattenInto(t, nil, false)
}

// flattenInto builds a node's path from the field/element names its
// ancestors contributed, not from each visited type's own Name(): only the
// very first call (path empty, nothing contributed yet) falls back to the
// root type's own name so it has an identifier at all. Without this, a leaf
// built with the same name as its enclosing field (the convention pkg/domain
// follows throughout, e.g. NewField("addr", NewVector("addr", ...), false))
// would have its path component duplicated.
func flattenInto(t Type, path []string, inverted bool) []FlatType {
	selfPath := path
	if len(selfPath) == 0 {
		selfPath = appendPath(path, t.Name())
	}
	self := FlatType{Path: selfPath, Type: t, Inverted: inverted}
	out := []FlatType{self}

	switch v := t.(type) {
	case *Record:
		for _, f := range v.Fields() {
			fieldInverted := inverted
			if f.Invert() {
				fieldInverted = !fieldInverted
			}
			fieldPath := selfPath
			if f.Sep() {
				fieldPath = appendPath(selfPath, f.Name())
			}
			out = append(out, flattenInto(f.Type(), fieldPath, fieldInverted)...)
		}
	case *Stream:
		out = append(out, flattenInto(v.ElementType(), appendPath(selfPath, v.ElementName()), inverted)...)
	}

	return out
}

func appendPath(path []string, name string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, name)
}
