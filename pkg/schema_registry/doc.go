// Package schema_registry provides the HTTP client for a Confluent-compatible
// schema registry and the wire framing shared by all railstream data contracts.
//
// Core features:
//   - schema registration and retrieval with in-process caching
//   - compatibility checking with per-rule violation messages
//   - wire-format framing: [magic_byte][schema_id][payload]
//   - Serializer/Deserializer pairing the frame with the pkg/schema codec
//
// Basic usage:
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:     "http://localhost:8081",
//	    Timeout: 10 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//
//	ser := schema_registry.NewSerializer(registry, "sensor-raw-data-value", readingSchema)
//	wire, err := ser.Serialize(map[string]any{
//	    "sensorId":    "sensor-001",
//	    "temperature": 75.5,
//	})
//
//	de := schema_registry.NewDeserializer(registry, readingSchema)
//	fields, err := de.Deserialize(wire)
//
// Failure semantics: transport errors, timeouts, and 5xx responses surface as
// RegistryUnavailableError and are safe for the caller to retry with backoff.
// Codec failures (ValidationError, MalformedMessageError, SchemaMismatchError
// from pkg/schema) are never retryable. The client imposes no retry policy of
// its own.
//
// Caching: schemas are cached by ID, assigned IDs by subject and definition,
// and deserializers additionally cache parsed writer schemas. Caches are
// thread-safe and live for the lifetime of the client; concurrent lookups for
// the same unresolved ID are collapsed into one registry request.
//
// For dependency injection, FXModule wires the client into an fx application
// given a provided Config.
package schema_registry
