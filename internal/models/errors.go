package models

import "fmt"

// NotFoundError reports a lookup that resolved to nothing where a record was required
type NotFoundError struct {
	Kind string // e.g. "recipe"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
