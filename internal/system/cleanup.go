package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/sparsecs/engine/internal/core/ecs"
	coresys "github.com/sparsecs/engine/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	world     *ecs.Manager
	log       *zap.Logger
	destroyed int
}

func NewCleanupSystem(world *ecs.Manager, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if s.world.Pending() == 0 {
		return
	}
	n := s.world.Flush()
	s.destroyed += n
	s.log.Debug("flushed destroy queue", zap.Int("destroyed", n), zap.Int("live", s.world.Size()))
}

// Destroyed returns the total number of entities this system destroyed.
func (s *CleanupSystem) Destroyed() int { return s.destroyed }
