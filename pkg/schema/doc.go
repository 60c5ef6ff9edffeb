// Package schema defines the record-schema model and the binary field codec
// used by all railstream data contracts.
//
// A Schema is an ordered list of typed, named fields parsed from a JSON
// definition — the same text that is registered with the schema registry.
// Encode and Decode are pure, stateless transformations and are safe to call
// concurrently.
//
// Wire encoding of the field payload (the bytes after the registry frame):
//   - fields appear in schema declaration order
//   - int/long: zig-zag varint
//   - double: 8-byte little-endian IEEE 754
//   - string: varint byte length followed by UTF-8 bytes
//   - boolean: one byte, 0 or 1
//   - enum: varint of the zero-based index into the declared symbol list
//   - map: varint entry count followed by string key/value pairs
//   - optional fields: one presence byte (0 absent, 1 present); absent fields
//     write nothing further
//
// Schema evolution is handled at decode time: Decode reconciles the writer
// schema (the one the message was produced with) against the reader schema
// field by field. Added fields with defaults and removed defaulted fields are
// safe; anything else fails fast with a SchemaMismatchError rather than
// silently corrupting data.
//
// Basic usage:
//
//	s := schema.MustParse(`{
//	    "type": "record",
//	    "name": "Reading",
//	    "fields": [
//	        {"name": "sensorId", "type": "string"},
//	        {"name": "temperature", "type": "double"},
//	        {"name": "pressure", "type": "double", "optional": true}
//	    ]
//	}`)
//
//	payload, err := schema.Encode(s, map[string]any{
//	    "sensorId":    "sensor-001",
//	    "temperature": 75.5,
//	})
//	if err != nil {
//	    return err
//	}
//
//	fields, err := schema.Decode(s, s, payload)
package schema
