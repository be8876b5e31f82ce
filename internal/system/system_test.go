package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sparsecs/engine/internal/component"
	"github.com/sparsecs/engine/internal/core/ecs"
	"github.com/sparsecs/engine/internal/core/event"
	coresys "github.com/sparsecs/engine/internal/core/system"
	"github.com/sparsecs/engine/internal/scripting"
)

type fixture struct {
	bus    *event.Bus
	world  *ecs.Manager
	runner *coresys.Runner
}

func newFixture() *fixture {
	bus := event.NewBus()
	world := ecs.NewManager(bus, 0)
	runner := coresys.NewRunner(zap.NewNop(), 0)
	runner.Register(NewEventDispatchSystem(bus))
	runner.Register(NewMotionSystem(world, bus, 100, 100))
	runner.Register(NewLifetimeSystem(world, bus))
	runner.Register(NewCleanupSystem(world, zap.NewNop()))
	event.Subscribe(bus, func(o event.OutOfBounds) { world.MarkForDestruction(o.Entity) })
	return &fixture{bus: bus, world: world, runner: runner}
}

func TestMotionIntegratesVelocity(t *testing.T) {
	f := newFixture()
	moving := f.world.Create()
	still := f.world.Create()
	_, _ = ecs.Assign(f.world, moving, component.Position{X: 10, Y: 10})
	_, _ = ecs.Assign(f.world, moving, component.Velocity{DX: 4, DY: -2})
	_, _ = ecs.Assign(f.world, still, component.Position{X: 1, Y: 1})

	f.runner.Tick(500 * time.Millisecond)

	p, err := ecs.Get[component.Position](f.world, moving)
	require.NoError(t, err)
	assert.Equal(t, component.Position{X: 12, Y: 9}, *p)

	p, err = ecs.Get[component.Position](f.world, still)
	require.NoError(t, err)
	assert.Equal(t, component.Position{X: 1, Y: 1}, *p)
}

func TestOutOfBoundsDestroysNextTick(t *testing.T) {
	f := newFixture()
	e := f.world.Create()
	_, _ = ecs.Assign(f.world, e, component.Position{X: 99, Y: 50})
	_, _ = ecs.Assign(f.world, e, component.Velocity{DX: 10})

	var reported []ecs.Entity
	event.Subscribe(f.bus, func(o event.OutOfBounds) { reported = append(reported, o.Entity) })

	f.runner.Tick(time.Second)
	assert.True(t, f.world.Valid(e), "message is only delivered next tick")

	f.runner.Tick(time.Second)
	assert.False(t, f.world.Valid(e))
	assert.Equal(t, []ecs.Entity{e}, reported)
	assert.Zero(t, ecs.Count[component.Position](f.world))
}

func TestLifetimeExpires(t *testing.T) {
	f := newFixture()
	e := f.world.Create()
	_, _ = ecs.Assign(f.world, e, component.Lifetime{Ticks: 3})

	var expired []ecs.Entity
	event.Subscribe(f.bus, func(x event.Expired) { expired = append(expired, x.Entity) })

	f.runner.Tick(time.Millisecond)
	f.runner.Tick(time.Millisecond)
	require.True(t, f.world.Valid(e))
	f.runner.Tick(time.Millisecond)
	assert.False(t, f.world.Valid(e))

	f.runner.Tick(time.Millisecond)
	assert.Equal(t, []ecs.Entity{e}, expired)
}

func TestCleanupCountsDestroyed(t *testing.T) {
	world := ecs.NewManager(ecs.Discard, 0)
	s := NewCleanupSystem(world, zap.NewNop())
	a, b := world.Create(), world.Create()
	world.MarkForDestruction(a)
	world.MarkForDestruction(b)

	s.Update(0)
	s.Update(0)

	assert.Equal(t, 2, s.Destroyed())
	assert.Zero(t, world.Size())
}

func TestScriptSystemPublishesErrors(t *testing.T) {
	bus := event.NewBus()
	world := ecs.NewManager(bus, 0)
	lua, err := scripting.NewEngine("", world, zap.NewNop())
	require.NoError(t, err)
	defer lua.Close()
	require.NoError(t, lua.DoString(`
		function on_tick(tick)
			if tick == 1 then ecs.create() else error("tick " .. tick) end
		end
	`))

	var failures []event.ScriptError
	event.Subscribe(bus, func(e event.ScriptError) { failures = append(failures, e) })
	s := NewScriptSystem(lua, bus, zap.NewNop())

	s.Update(time.Millisecond)
	assert.Equal(t, 1, world.Size())
	assert.Empty(t, failures)

	s.Update(time.Millisecond)
	require.Len(t, failures, 1)
	assert.Equal(t, "on_tick", failures[0].Hook)
	assert.ErrorContains(t, failures[0].Err, "tick 2")
}
