package ir

// TypeMapper holds a {0,1} matrix indicating which flattened leaves of
// type A pair with which flattened leaves of type B. Grounded on
// cerata::TypeMapper (original_source's type.h: mappers(), AddMapper,
// GetMapper) and spec.md 3.1/4.1.
type TypeMapper struct {
	A, B     Type
	FlatA    []FlatType
	FlatB    []FlatType
	Matrix   [][]bool
}

// NewTypeMapper allocates the |Flatten(A)| x |Flatten(B)| zero matrix for a
// mapper between A and B.
func NewTypeMapper(a, b Type) *TypeMapper {
	fa := Flatten(a)
	fb := Flatten(b)
	m := make([][]bool, len(fa))
	for i := range m {
		m[i] = make([]bool, len(fb))
	}
	return &TypeMapper{A: a, B: b, FlatA: fa, FlatB: fb, Matrix: m}
}

// Add records that leaf i of A pairs with leaf j of B.
func (m *TypeMapper) Add(i, j int) {
	m.Matrix[i][j] = true
}

// Inverse returns a new TypeMapper with A and B swapped and the matrix
// transposed.
func (m *TypeMapper) Inverse() *TypeMapper {
	inv := &TypeMapper{A: m.B, B: m.A, FlatA: m.FlatB, FlatB: m.FlatA}
	inv.Matrix = make([][]bool, len(m.FlatB))
	for j := range inv.Matrix {
		inv.Matrix[j] = make([]bool, len(m.FlatA))
		for i := range m.Matrix {
			inv.Matrix[j][i] = m.Matrix[i][j]
		}
	}
	return inv
}

// other returns the Type on the opposite side of the pairing from self.
func (m *TypeMapper) other(self Type) Type {
	switch self {
	case m.A:
		return m.B
	case m.B:
		return m.A
	default:
		return nil
	}
}

// Pairs enumerates every (i, j) index pair marked in the matrix.
func (m *TypeMapper) Pairs() [][2]int {
	var out [][2]int
	for i, row := range m.Matrix {
		for j, set := range row {
			if set {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// identityMapper pairs each flattened leaf of t with itself (A == B, same
// object; spec.md 4.1).
func identityMapper(t Type) *TypeMapper {
	m := NewTypeMapper(t, t)
	for i := range m.FlatA {
		m.Add(i, i)
	}
	return m
}

// equalStructureMapper pairs leaves at matching indices for two types that
// are IsEqual but not identical objects (spec.md 4.1).
func equalStructureMapper(a, b Type) *TypeMapper {
	m := NewTypeMapper(a, b)
	n := len(m.FlatA)
	if len(m.FlatB) < n {
		n = len(m.FlatB)
	}
	for i := 0; i < n; i++ {
		m.Add(i, i)
	}
	return m
}

// alignedStreamMapper implements Stream's custom mapper generator
// (spec.md 4.1, 4.6): walk both flattened sequences with two cursors,
// pairing leaves whenever both sides are at a comparable (physical or
// equally-tagged) position, and advancing whichever cursor is looking at
// an expansion-only valid/ready leaf the other side doesn't have yet.
func alignedStreamMapper(a, b Type) *TypeMapper {
	m := NewTypeMapper(a, b)
	i, j := 0, 0
	for i < len(m.FlatA) && j < len(m.FlatB) {
		la, lb := m.FlatA[i], m.FlatB[j]
		ta, tb := streamLeafTag(la), streamLeafTag(lb)
		switch {
		case ta == tb:
			m.Add(i, j)
			i++
			j++
		case ta == "valid" || ta == "ready":
			i++
		case tb == "valid" || tb == "ready":
			j++
		default:
			m.Add(i, j)
			i++
			j++
		}
	}
	return m
}

// streamLeafTag classifies a FlatType leaf by the expansion-tag metadata
// key set by pkg/transform's stream expansion (spec.md 4.6: "stream",
// "record", "valid", "ready"). Untagged leaves return "".
func streamLeafTag(f FlatType) string {
	return f.Type.Meta()[MetaExpandTag]
}

// MetaExpandTag is the metadata key stream expansion uses to mark a type as
// a synthesized "stream", "record", "valid" or "ready" leaf, consumed by
// alignedStreamMapper and pkg/transform's mapper rewrite.
const MetaExpandTag = "EXPAND_TYPE"
