package ir

// Metadata key constants shared across the core and its domain library
// (spec.md 6, "Metadata keys"). Arbitrary user keys are preserved across
// Copy as-is; these are simply the ones the core and transforms recognize.
const (
	// MetaPrimitive marks a Component whose internals an emitter must not
	// inspect further (e.g. an array reader/writer or MMIO stub).
	MetaPrimitive = "PRIMITIVE"
	// MetaLibrary names the VHDL library a primitive Component's entity
	// lives in.
	MetaLibrary = "LIBRARY"
	// MetaPackage names the VHDL package an emitter should pull a
	// primitive Component's declarations from.
	MetaPackage = "PACKAGE"
	// MetaForceVector forces a width-1 Vector to stay a Vector instead of
	// degenerating to a Bit during emission.
	MetaForceVector = "FORCE_VECTOR"
	// MetaCount marks a flattened leaf as a stream's element-count field,
	// consumed by profiler insertion to size a probe (spec.md 4.7).
	MetaCount = "COUNT"
	// MetaArrayData marks the flattened leaf of an ArrayReader/ArrayWriter
	// data port that carries the field's payload bits, so a field's
	// Arrow-shaped port can be paired to it by an explicit TypeMapper
	// without the two types ever being structurally equal.
	MetaArrayData = "ARRAY_DATA"
)
