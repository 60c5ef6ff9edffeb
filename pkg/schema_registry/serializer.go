package schema_registry

import (
	"fmt"
	"sync"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

// Serializer encodes record values into registry-framed wire messages for a
// single subject.
//
// The schema is registered with the registry on first use; the assigned ID is
// reused for every subsequent message. A failed registration is not cached, so
// the next Serialize call retries it. Serializer is safe for concurrent use.
type Serializer struct {
	registry Registry
	subject  string
	schema   *schema.Schema

	mu         sync.Mutex
	schemaID   int
	registered bool
}

// NewSerializer creates a Serializer for the given subject and schema.
func NewSerializer(registry Registry, subject string, s *schema.Schema) *Serializer {
	return &Serializer{
		registry: registry,
		subject:  subject,
		schema:   s,
	}
}

// Serialize validates and encodes a record value, returning the framed wire
// bytes. Validation runs before any registry interaction, so a ValidationError
// never costs a network call.
func (s *Serializer) Serialize(fields map[string]any) ([]byte, error) {
	payload, err := schema.Encode(s.schema, fields)
	if err != nil {
		return nil, err
	}

	id, err := s.resolveSchemaID()
	if err != nil {
		return nil, err
	}
	return EncodeFrame(id, payload), nil
}

func (s *Serializer) resolveSchemaID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registered {
		return s.schemaID, nil
	}
	id, err := s.registry.RegisterSchema(s.subject, s.schema.Definition())
	if err != nil {
		return 0, fmt.Errorf("register schema for subject %q: %w", s.subject, err)
	}
	s.schemaID = id
	s.registered = true
	return id, nil
}

// Deserializer decodes registry-framed wire messages into record values using
// a fixed reader schema.
//
// The writer schema is resolved from the embedded schema ID: first from a
// local cache of parsed schemas, then from the registry. Deserializer is safe
// for concurrent use; concurrent first lookups of the same ID may race, which
// is harmless because resolution is idempotent.
type Deserializer struct {
	registry Registry
	reader   *schema.Schema

	mu      sync.RWMutex
	writers map[int]*schema.Schema
}

// NewDeserializer creates a Deserializer that projects decoded messages onto
// the given reader schema.
func NewDeserializer(registry Registry, reader *schema.Schema) *Deserializer {
	return &Deserializer{
		registry: registry,
		reader:   reader,
		writers:  make(map[int]*schema.Schema),
	}
}

// Deserialize parses the wire frame, resolves the writer schema identified in
// the message, and decodes the payload against the reader schema.
func (d *Deserializer) Deserialize(data []byte) (map[string]any, error) {
	id, payload, err := DecodeFrame(data)
	if err != nil {
		return nil, err
	}

	writer, err := d.writerSchema(id)
	if err != nil {
		return nil, err
	}
	return schema.Decode(writer, d.reader, payload)
}

func (d *Deserializer) writerSchema(id int) (*schema.Schema, error) {
	d.mu.RLock()
	writer, ok := d.writers[id]
	d.mu.RUnlock()
	if ok {
		return writer, nil
	}

	definition, err := d.registry.GetSchemaByID(id)
	if err != nil {
		return nil, fmt.Errorf("resolve writer schema %d: %w", id, err)
	}
	writer, err = schema.Parse([]byte(definition))
	if err != nil {
		return nil, fmt.Errorf("parse writer schema %d: %w", id, err)
	}

	d.mu.Lock()
	d.writers[id] = writer
	d.mu.Unlock()

	return writer, nil
}
