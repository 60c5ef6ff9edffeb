package schema

import (
	"encoding/json"
	"fmt"
)

// Type identifies the wire type of a record field.
type Type string

// Supported field types.
const (
	TypeString  Type = "string"
	TypeInt     Type = "int"
	TypeLong    Type = "long"
	TypeDouble  Type = "double"
	TypeBoolean Type = "boolean"
	TypeEnum    Type = "enum"
	TypeMap     Type = "map"
)

// Field describes a single field of a record schema.
//
// Optional fields are encoded with a leading presence flag and may be absent
// from a value. A field with a default can be omitted by writers; readers fill
// in the default during schema resolution.
type Field struct {
	// Name is the field name, unique within the record.
	Name string `json:"name"`

	// Type is the field's wire type.
	Type Type `json:"type"`

	// Optional marks the field as present/absent on the wire.
	Optional bool `json:"optional,omitempty"`

	// Symbols lists the allowed values for enum fields, in declaration order.
	// The wire encoding of an enum value is its zero-based index in this list.
	Symbols []string `json:"symbols,omitempty"`

	// Default is the value readers substitute when the writer schema does not
	// carry this field. Go type matches the field type (string, int32, int64,
	// float64, bool, map[string]string).
	Default any `json:"default,omitempty"`

	// HasDefault distinguishes "default is the zero value" from "no default".
	HasDefault bool `json:"-"`
}

// Schema is a parsed record schema: an ordered list of named fields.
// Field order is significant; the binary payload encodes fields in
// declaration order.
type Schema struct {
	Name   string
	Fields []Field

	byName map[string]int
}

// Field returns the field with the given name and whether it exists.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Definition renders the schema back to its canonical JSON text, suitable for
// registration with a schema registry.
func (s *Schema) Definition() string {
	doc := schemaDocument{
		Type:   "record",
		Name:   s.Name,
		Fields: make([]fieldDocument, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		fd := fieldDocument{
			Name:     f.Name,
			Type:     f.Type,
			Optional: f.Optional,
			Symbols:  f.Symbols,
		}
		if f.HasDefault {
			d := f.Default
			fd.Default = &d
		}
		doc.Fields = append(doc.Fields, fd)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		// All document fields are marshalable types.
		panic(fmt.Sprintf("schema: marshal definition for %q: %v", s.Name, err))
	}
	return string(out)
}

// schemaDocument is the JSON shape of a schema definition.
type schemaDocument struct {
	Type   string          `json:"type"`
	Name   string          `json:"name"`
	Fields []fieldDocument `json:"fields"`
}

type fieldDocument struct {
	Name     string   `json:"name"`
	Type     Type     `json:"type"`
	Optional bool     `json:"optional,omitempty"`
	Symbols  []string `json:"symbols,omitempty"`
	Default  *any     `json:"default,omitempty"`
}

// Parse parses a JSON record-schema definition.
//
// The definition must declare `"type": "record"`, a non-empty name, and at
// least one field. Field names must be unique, enum fields must declare their
// symbols, and defaults must match the declared field type.
func Parse(data []byte) (*Schema, error) {
	var doc schemaDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse definition: %w", err)
	}
	if doc.Type != "record" {
		return nil, fmt.Errorf("schema: unsupported definition type %q, expected \"record\"", doc.Type)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("schema: record definition has no name")
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schema: record %q declares no fields", doc.Name)
	}

	s := &Schema{
		Name:   doc.Name,
		Fields: make([]Field, 0, len(doc.Fields)),
		byName: make(map[string]int, len(doc.Fields)),
	}
	for _, fd := range doc.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("schema: record %q declares a field with no name", doc.Name)
		}
		if _, dup := s.byName[fd.Name]; dup {
			return nil, fmt.Errorf("schema: record %q declares field %q twice", doc.Name, fd.Name)
		}
		f := Field{
			Name:     fd.Name,
			Type:     fd.Type,
			Optional: fd.Optional,
			Symbols:  fd.Symbols,
		}
		switch f.Type {
		case TypeString, TypeInt, TypeLong, TypeDouble, TypeBoolean, TypeMap:
			if len(f.Symbols) > 0 {
				return nil, fmt.Errorf("schema: record %q field %q declares symbols but is not an enum", doc.Name, f.Name)
			}
		case TypeEnum:
			if len(f.Symbols) == 0 {
				return nil, fmt.Errorf("schema: record %q enum field %q declares no symbols", doc.Name, f.Name)
			}
		default:
			return nil, fmt.Errorf("schema: record %q field %q has unsupported type %q", doc.Name, f.Name, f.Type)
		}
		if fd.Default != nil {
			def, err := coerceDefault(f, *fd.Default)
			if err != nil {
				return nil, fmt.Errorf("schema: record %q field %q: %w", doc.Name, f.Name, err)
			}
			f.Default = def
			f.HasDefault = true
		}
		s.byName[f.Name] = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

// MustParse is Parse for compiled-in definitions; it panics on error.
func MustParse(definition string) *Schema {
	s, err := Parse([]byte(definition))
	if err != nil {
		panic(err)
	}
	return s
}

// coerceDefault converts a JSON-decoded default value to the Go type used for
// the field's values.
func coerceDefault(f Field, raw any) (any, error) {
	switch f.Type {
	case TypeString:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("default %v is not a string", raw)
		}
		return v, nil
	case TypeInt:
		v, ok := raw.(float64)
		if !ok || v != float64(int32(v)) {
			return nil, fmt.Errorf("default %v is not a 32-bit integer", raw)
		}
		return int32(v), nil
	case TypeLong:
		v, ok := raw.(float64)
		if !ok || v != float64(int64(v)) {
			return nil, fmt.Errorf("default %v is not a 64-bit integer", raw)
		}
		return int64(v), nil
	case TypeDouble:
		v, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("default %v is not a number", raw)
		}
		return v, nil
	case TypeBoolean:
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("default %v is not a boolean", raw)
		}
		return v, nil
	case TypeEnum:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("default %v is not an enum symbol", raw)
		}
		if symbolIndex(f.Symbols, v) < 0 {
			return nil, fmt.Errorf("default %q is not one of the declared symbols %v", v, f.Symbols)
		}
		return v, nil
	case TypeMap:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("default %v is not a map", raw)
		}
		out := make(map[string]string, len(m))
		for k, mv := range m {
			sv, ok := mv.(string)
			if !ok {
				return nil, fmt.Errorf("default map value for key %q is not a string", k)
			}
			out[k] = sv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported field type %q", f.Type)
}

func symbolIndex(symbols []string, symbol string) int {
	for i, s := range symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}
