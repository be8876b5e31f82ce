package event

import "github.com/sparsecs/engine/internal/core/ecs"

// OutOfBounds is emitted by the motion system for an entity whose position
// left the world rectangle.
type OutOfBounds struct {
	Entity ecs.Entity
	X, Y   float64
}

// Expired is emitted when an entity's lifetime reaches zero.
type Expired struct {
	Entity ecs.Entity
}

// ScriptError is published when a Lua hook fails.
type ScriptError struct {
	Hook string
	Err  error
}
