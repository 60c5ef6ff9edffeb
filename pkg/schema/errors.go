package schema

import (
	"errors"
	"fmt"
)

// ValidationError reports a value that does not satisfy its schema: a required
// field is unset, a value's runtime type disagrees with the declared type, or
// an enum value is not one of the declared symbols. Validation failures are
// caller-fixable and never retryable.
type ValidationError struct {
	// Record is the record schema name.
	Record string

	// Field is the offending field, empty when the failure is not tied to a
	// single field.
	Field string

	// Reason describes the failure, including expected vs. actual type where
	// applicable.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Record, e.Reason)
	}
	return fmt.Sprintf("invalid %s: field %q: %s", e.Record, e.Field, e.Reason)
}

// MalformedMessageError reports wire bytes that fail structural parsing:
// truncated payload, corrupt varints, out-of-range enum indexes, or trailing
// garbage. The data is corrupt or produced by an incompatible producer;
// retrying cannot help.
type MalformedMessageError struct {
	// Offset is the byte offset at which parsing failed.
	Offset int

	// Reason describes the structural failure.
	Reason string
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed message at offset %d: %s", e.Offset, e.Reason)
}

// SchemaMismatchError reports a writer/reader schema pair that cannot be
// reconciled: a reader field is required with no default and absent from the
// writer, or the types disagree beyond the permitted long-to-double promotion.
// Only a schema change resolves this; retrying cannot help.
type SchemaMismatchError struct {
	// Record is the reader schema name.
	Record string

	// Field is the field that failed resolution.
	Field string

	// Reason describes the mismatch.
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch for %s: field %q: %s", e.Record, e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsMalformedMessageError reports whether err is (or wraps) a MalformedMessageError.
func IsMalformedMessageError(err error) bool {
	var e *MalformedMessageError
	return errors.As(err, &e)
}

// IsSchemaMismatchError reports whether err is (or wraps) a SchemaMismatchError.
func IsSchemaMismatchError(err error) bool {
	var e *SchemaMismatchError
	return errors.As(err, &e)
}
