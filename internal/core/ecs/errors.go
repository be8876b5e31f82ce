package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntity is returned for handles that were never issued by the
	// manager or whose slot has since been recycled.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCapacityExceeded means every index addressable by IDBits is in use.
	ErrCapacityExceeded = errors.New("entity capacity exceeded")

	// ErrComponentNotFound is returned by Get for a live entity without the
	// requested type.
	ErrComponentNotFound = errors.New("component not found")
)

// EntityError ties a failure to the handle that caused it.
type EntityError struct {
	Entity Entity
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("entity %s: %v", e.Entity, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }
