package pathres

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProjectNotFound is the sentinel for lookups of unregistered
// namespaces. Use errors.Is against this, or errors.As against
// *NotFoundError to inspect the payload.
var ErrProjectNotFound = errors.New("project not found")

// NotFoundError reports a lookup of a namespace that is not registered.
// It carries the full list of registered namespaces so the caller can
// self-correct by picking a valid one.
type NotFoundError struct {
	// Namespace is the requested project namespace.
	Namespace string

	// Available are the namespaces registered at the time of the lookup.
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project %q not found, available projects: %s",
		e.Namespace, strings.Join(e.Available, ", "))
}

// Is makes errors.Is(err, ErrProjectNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProjectNotFound
}
