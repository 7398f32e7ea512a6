package ir

// MetaWasExpanded marks a Stream type that has already been lowered by
// ExpandType, making repeated expansion idempotent (spec.md 4.6, 6).
const MetaWasExpanded = "WAS_EXPANDED"

// ExpandType recursively lowers every Stream nested in t into
// Stream<Record{valid: bit, ready: bit (inverted), <element-name>: E}>,
// rewriting every TypeMapper installed on an expanded Stream so its new
// valid/ready leaves pair 1-to-1 with the matching Stream on the other
// side, while preserving the original element-leaf pairing. Idempotent:
// a Stream already carrying MetaWasExpanded is returned unchanged.
// Grounded on cerata::Stream::GenerateMapper/CanGenerateMapper
// (original_source's type.h) and spec.md 4.6.
func ExpandType(t Type) Type {
	return expandType(t, map[Type]Type{})
}

func expandType(t Type, cache map[Type]Type) Type {
	if cached, ok := cache[t]; ok {
		return cached
	}

	switch v := t.(type) {
	case *Stream:
		if v.Meta()[MetaWasExpanded] == "true" {
			cache[t] = v
			return v
		}
		elem := expandType(v.ElementType(), cache)

		rec := NewRecord(v.Name() + "_rec")
		rec.AddField(NewField("valid", taggedBit("valid"), false))
		rec.AddField(NewField("ready", taggedBit("ready"), true))
		rec.AddField(NewField(v.ElementName(), elem, false))
		rec.SetMeta(MetaExpandTag, "record")

		expanded := NewStream(v.Name(), rec, v.ElementName(), v.EPC())
		expanded.SetMeta(MetaWasExpanded, "true")
		expanded.SetMeta(MetaExpandTag, "stream")
		cache[t] = expanded

		rewriteExpandedMappers(v, expanded, cache)

		return expanded

	case *Record:
		changed := false
		nr := NewRecord(v.Name())
		for _, f := range v.Fields() {
			nt := expandType(f.Type(), cache)
			if nt != f.Type() {
				changed = true
			}
			nf := NewField(f.Name(), nt, f.Invert())
			if !f.Sep() {
				nf.NoSep()
			}
			nr.AddField(nf)
		}
		if !changed {
			cache[t] = v
			return v
		}
		cache[t] = nr
		return nr

	default:
		cache[t] = t
		return t
	}
}

func taggedBit(tag string) Type {
	b := NewBit(tag)
	b.SetMeta(MetaExpandTag, tag)
	return b
}

// rewriteExpandedMappers replays every mapper installed on the pre-expansion
// stream type onto the expanded type: the original element-leaf pairing is
// preserved (its flat index shifts by the 3 new leaves inserted ahead of
// it: record-self, valid, ready), and new diagonal valid<->valid,
// ready<->ready pairs are added whenever the opposite type is itself a
// Stream, expanded through the same cache so both sides of a connection
// converge on the same final Type objects regardless of visitation order
// (spec.md 4.6).
func rewriteExpandedMappers(old, expanded *Stream, cache map[Type]Type) {
	for _, m := range old.mappers {
		other := m.other(old)
		if other == nil {
			continue
		}
		if otherStream, ok := other.(*Stream); ok {
			other = expandType(otherStream, cache)
		}

		nm := NewTypeMapper(expanded, other)
		otherExpanded, otherIsExpandedStream := other.(*Stream)
		otherIsExpandedStream = otherIsExpandedStream && otherExpanded.Meta()[MetaWasExpanded] == "true"

		for _, pair := range m.Pairs() {
			oldA, oldB := pair[0], pair[1]
			newA := shiftExpandedIndex(oldA)
			newB := oldB
			if otherIsExpandedStream {
				newB = shiftExpandedIndex(oldB)
			}
			if newA < len(nm.FlatA) && newB < len(nm.FlatB) {
				nm.Add(newA, newB)
			}
		}
		if otherIsExpandedStream {
			addDiagonal(nm, "valid")
			addDiagonal(nm, "ready")
		}
		expanded.AddMapper(nm, false)
	}
}

// shiftExpandedIndex translates a flat-leaf index from the pre-expansion
// Stream's flattening to the post-expansion Stream's flattening: index 0
// (the stream leaf itself) is unchanged, everything else shifts by 3 to
// make room for the inserted record-self, valid and ready leaves.
func shiftExpandedIndex(i int) int {
	if i == 0 {
		return 0
	}
	return i + 3
}

func addDiagonal(m *TypeMapper, tag string) {
	ia, oka := findTag(m.FlatA, tag)
	ib, okb := findTag(m.FlatB, tag)
	if oka && okb {
		m.Add(ia, ib)
	}
}

func findTag(flat []FlatType, tag string) (int, bool) {
	for i, f := range flat {
		if f.Type.Meta()[MetaExpandTag] == tag {
			return i, true
		}
	}
	return 0, false
}
