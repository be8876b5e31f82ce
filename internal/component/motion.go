package component

// Position is a point in world units.
type Position struct {
	X, Y float64
}

// Velocity is expressed in world units per second.
type Velocity struct {
	DX, DY float64
}

// Lifetime counts down once per tick; the entity is destroyed at zero.
type Lifetime struct {
	Ticks int
}
