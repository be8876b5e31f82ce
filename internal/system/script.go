package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/sparsecs/engine/internal/core/event"
	coresys "github.com/sparsecs/engine/internal/core/system"
	"github.com/sparsecs/engine/internal/scripting"
)

// ScriptSystem runs the Lua on_tick hook. Phase 0 (Input), so scripted
// spawns are visible to the same tick's simulation.
type ScriptSystem struct {
	lua  *scripting.Engine
	bus  *event.Bus
	log  *zap.Logger
	tick uint64
}

func NewScriptSystem(lua *scripting.Engine, bus *event.Bus, log *zap.Logger) *ScriptSystem {
	return &ScriptSystem{lua: lua, bus: bus, log: log}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ScriptSystem) Update(dt time.Duration) {
	s.tick++
	if err := s.lua.OnTick(s.tick, dt); err != nil {
		s.log.Error("script tick failed", zap.Uint64("tick", s.tick), zap.Error(err))
		event.Publish(s.bus, event.ScriptError{Hook: "on_tick", Err: err})
	}
}
