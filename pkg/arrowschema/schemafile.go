package arrowschema

import (
	"encoding/json"
	"fmt"
)

// kindNames maps the JSON schema file's field-kind spelling onto
// LogicalKind. Schema file I/O itself is out of scope per spec.md §1 (the
// core only consumes already-built RecordBatchDescription values); this is
// the minimal front-end collaborator spec.md §6 says the repo still needs
// a thin, real implementation of, not a byte-perfect Arrow IPC schema
// reader.
var kindNames = map[string]LogicalKind{
	"bool":    KindBool,
	"uint8":   KindUint8,
	"uint16":  KindUint16,
	"uint32":  KindUint32,
	"uint64":  KindUint64,
	"int8":    KindInt8,
	"int16":   KindInt16,
	"int32":   KindInt32,
	"int64":   KindInt64,
	"float32": KindFloat32,
	"float64": KindFloat64,
	"utf8":    KindUtf8,
	"binary":  KindBinary,
	"fixed":   KindFixedWidth,
}

type jsonField struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Nullable bool   `json:"nullable,omitempty"`
	Width    int64  `json:"width,omitempty"`
	Ignore   bool   `json:"ignore,omitempty"`
	Profile  bool   `json:"profile,omitempty"`
	ValueEPC int    `json:"value_epc,omitempty"`
}

type jsonSchema struct {
	Name   string      `json:"name"`
	Mode   string      `json:"mode"`
	Fields []jsonField `json:"fields"`
}

// ParseSchema decodes one JSON-encoded schema description into a
// RecordBatchDescription. The file format is this repo's own: a name, a
// "read"/"write" mode, and a field list naming each field's logical kind by
// LogicalKind's constant names without the "Kind" prefix, lowercased, except
// that KindFixedWidth is spelled "fixed".
func ParseSchema(data []byte) (RecordBatchDescription, error) {
	var js jsonSchema
	if err := json.Unmarshal(data, &js); err != nil {
		return RecordBatchDescription{}, fmt.Errorf("parsing schema: %w", err)
	}

	mode := Read
	if js.Mode == "write" {
		mode = Write
	}

	fields := make([]Field, len(js.Fields))
	for i, jf := range js.Fields {
		kind, ok := kindNames[jf.Kind]
		if !ok {
			return RecordBatchDescription{}, fmt.Errorf("schema %q field %q: unknown kind %q", js.Name, jf.Name, jf.Kind)
		}
		fields[i] = Field{
			Name:     jf.Name,
			Kind:     kind,
			Nullable: jf.Nullable,
			Width:    jf.Width,
			Ignore:   jf.Ignore,
			Profile:  jf.Profile,
			ValueEPC: jf.ValueEPC,
		}
	}

	return RecordBatchDescription{Name: js.Name, Mode: mode, Fields: fields}, nil
}
