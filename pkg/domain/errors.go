package domain

import (
	"errors"
	"fmt"
)

// ErrMemoryNotFound is returned when a memory snapshot cannot be found in a store.
var ErrMemoryNotFound = errors.New("memory not found")

// ErrMissingService is returned when a message carries no service reference at all.
var ErrMissingService = errors.New("message has no service")

// ServiceNotFoundError reports a message whose service key resolved to
// nothing executable in the registry. The step fails the same way a binding
// failure does (memory becomes invalid); the error carries the offending key
// for the host. The historical implementation alerted and dereferenced the
// absent service; this is the normalized form.
type ServiceNotFoundError struct {
	Key string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service not found: %q", e.Key)
}
