package contracts

import (
	"fmt"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

// Helpers for moving between typed record values and the codec's field maps.
// schema.Decode guarantees the Go type of every value it returns, so a failed
// assertion here means the reader schema and the struct drifted apart.

func requiredError(record, field string) error {
	return &schema.ValidationError{Record: record, Field: field, Reason: "required field is not set"}
}

func decodedTypeError(record, field, expected string, got any) error {
	return &schema.ValidationError{
		Record: record,
		Field:  field,
		Reason: fmt.Sprintf("decoded value has type %T, expected %s", got, expected),
	}
}

func stringField(fields map[string]any, record, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", requiredError(record, name)
	}
	v, ok := raw.(string)
	if !ok {
		return "", decodedTypeError(record, name, "string", raw)
	}
	return v, nil
}

func longField(fields map[string]any, record, name string) (int64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, requiredError(record, name)
	}
	v, ok := raw.(int64)
	if !ok {
		return 0, decodedTypeError(record, name, "int64", raw)
	}
	return v, nil
}

func intField(fields map[string]any, record, name string) (int32, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, requiredError(record, name)
	}
	v, ok := raw.(int32)
	if !ok {
		return 0, decodedTypeError(record, name, "int32", raw)
	}
	return v, nil
}

func doubleField(fields map[string]any, record, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, requiredError(record, name)
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, decodedTypeError(record, name, "float64", raw)
	}
	return v, nil
}

func boolField(fields map[string]any, record, name string) (bool, error) {
	raw, ok := fields[name]
	if !ok {
		return false, requiredError(record, name)
	}
	v, ok := raw.(bool)
	if !ok {
		return false, decodedTypeError(record, name, "bool", raw)
	}
	return v, nil
}
