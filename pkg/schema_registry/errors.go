package schema_registry

import (
	"errors"
	"fmt"
)

// RegistryUnavailableError reports a transient failure talking to the schema
// registry: a transport error, a timeout, or a 5xx response. Unlike the codec
// errors it is not a data problem; callers may retry with backoff. The library
// itself never retries.
type RegistryUnavailableError struct {
	// Op is the failed operation ("lookup", "register", "compatibility").
	Op string

	// Err is the underlying transport or HTTP failure.
	Err error
}

func (e *RegistryUnavailableError) Error() string {
	return fmt.Sprintf("schema registry unavailable during %s: %v", e.Op, e.Err)
}

func (e *RegistryUnavailableError) Unwrap() error {
	return e.Err
}

// IsRegistryUnavailableError reports whether err is (or wraps) a
// RegistryUnavailableError.
func IsRegistryUnavailableError(err error) bool {
	var e *RegistryUnavailableError
	return errors.As(err, &e)
}
