package system

import (
	"time"

	"github.com/sparsecs/engine/internal/component"
	"github.com/sparsecs/engine/internal/core/ecs"
	"github.com/sparsecs/engine/internal/core/event"
	coresys "github.com/sparsecs/engine/internal/core/system"
)

// LifetimeSystem counts lifetimes down and queues expired entities for
// destruction. Phase 3 (PostUpdate).
type LifetimeSystem struct {
	world *ecs.Manager
	bus   *event.Bus
}

func NewLifetimeSystem(world *ecs.Manager, bus *event.Bus) *LifetimeSystem {
	return &LifetimeSystem{world: world, bus: bus}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) {
	ecs.Each1(s.world, func(e ecs.Entity, l *component.Lifetime) {
		l.Ticks--
		if l.Ticks <= 0 {
			s.world.MarkForDestruction(e)
			event.Emit(s.bus, event.Expired{Entity: e})
		}
	})
}
