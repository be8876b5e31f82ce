package system

import (
	"time"

	"github.com/sparsecs/engine/internal/component"
	"github.com/sparsecs/engine/internal/core/ecs"
	"github.com/sparsecs/engine/internal/core/event"
	coresys "github.com/sparsecs/engine/internal/core/system"
)

// MotionSystem integrates Velocity into Position and reports entities that
// leave the world rectangle [0,width]x[0,height].
// Phase 2 (Update).
type MotionSystem struct {
	world         *ecs.Manager
	bus           *event.Bus
	width, height float64
}

func NewMotionSystem(world *ecs.Manager, bus *event.Bus, width, height float64) *MotionSystem {
	return &MotionSystem{world: world, bus: bus, width: width, height: height}
}

func (s *MotionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MotionSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	ecs.Each2(s.world, func(e ecs.Entity, p *component.Position, v *component.Velocity) {
		p.X += v.DX * secs
		p.Y += v.DY * secs
		if p.X < 0 || p.Y < 0 || p.X > s.width || p.Y > s.height {
			event.Emit(s.bus, event.OutOfBounds{Entity: e, X: p.X, Y: p.Y})
		}
	})
}
