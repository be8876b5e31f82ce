package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/sparsecs/engine/internal/component"
	"github.com/sparsecs/engine/internal/core/ecs"
)

// Engine wraps a single gopher-lua VM bound to one entity manager.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	m   *ecs.Manager
	log *zap.Logger
}

// NewEngine creates a Lua engine, installs the ecs API table and loads
// every .lua file in scriptsDir. An empty or missing directory loads
// nothing.
func NewEngine(scriptsDir string, m *ecs.Manager, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, m: m, log: log}
	e.install()

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// OnStart calls the global on_start() if a script defined it.
func (e *Engine) OnStart() error {
	return e.call("on_start")
}

// OnTick calls the global on_tick(tick, dt_seconds) if a script defined it.
func (e *Engine) OnTick(tick uint64, dt time.Duration) error {
	return e.call("on_tick", lua.LNumber(tick), lua.LNumber(dt.Seconds()))
}

func (e *Engine) call(name string, args ...lua.LValue) error {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) install() {
	api := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"create":          e.luaCreate,
		"destroy":         e.luaDestroy,
		"valid":           e.luaValid,
		"size":            e.luaSize,
		"set_position":    e.luaSetPosition,
		"position":        e.luaPosition,
		"set_velocity":    e.luaSetVelocity,
		"remove_velocity": e.luaRemoveVelocity,
		"set_lifetime":    e.luaSetLifetime,
		"count":           e.luaCount,
		"log":             e.luaLog,
	})
	e.vm.SetGlobal("ecs", api)
}

// checkEntity reads argument n as a handle. Fractions and numbers outside
// the uint32 range are argument errors, never truncated into some other
// entity.
func checkEntity(L *lua.LState, n int) ecs.Entity {
	v := float64(L.CheckNumber(n))
	if v != math.Trunc(v) || v < 0 || v > math.MaxUint32 {
		L.ArgError(n, fmt.Sprintf("entity handle expected, got %v", v))
	}
	return ecs.Entity(uint32(v))
}

// raise converts a Go error into a Lua error; it does not return.
func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", err.Error())
	return 0
}

func (e *Engine) luaCreate(L *lua.LState) int {
	ent, err := e.m.TryCreate()
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LNumber(ent))
	return 1
}

func (e *Engine) luaDestroy(L *lua.LState) int {
	if err := e.m.Destroy(checkEntity(L, 1)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (e *Engine) luaValid(L *lua.LState) int {
	L.Push(lua.LBool(e.m.Valid(checkEntity(L, 1))))
	return 1
}

func (e *Engine) luaSize(L *lua.LState) int {
	L.Push(lua.LNumber(e.m.Size()))
	return 1
}

func (e *Engine) luaSetPosition(L *lua.LState) int {
	p := component.Position{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}
	if err := ecs.Save(e.m, checkEntity(L, 1), p); err != nil {
		return raise(L, err)
	}
	return 0
}

func (e *Engine) luaPosition(L *lua.LState) int {
	p, err := ecs.Get[component.Position](e.m, checkEntity(L, 1))
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 2
}

func (e *Engine) luaSetVelocity(L *lua.LState) int {
	v := component.Velocity{DX: float64(L.CheckNumber(2)), DY: float64(L.CheckNumber(3))}
	if err := ecs.Save(e.m, checkEntity(L, 1), v); err != nil {
		return raise(L, err)
	}
	return 0
}

func (e *Engine) luaRemoveVelocity(L *lua.LState) int {
	removed, err := ecs.Remove[component.Velocity](e.m, checkEntity(L, 1))
	if err != nil {
		return raise(L, err)
	}
	L.Push(lua.LBool(removed))
	return 1
}

func (e *Engine) luaSetLifetime(L *lua.LState) int {
	if err := ecs.Save(e.m, checkEntity(L, 1), component.Lifetime{Ticks: L.CheckInt(2)}); err != nil {
		return raise(L, err)
	}
	return 0
}

func (e *Engine) luaCount(L *lua.LState) int {
	var n int
	switch kind := L.CheckString(1); kind {
	case "position":
		n = ecs.Count[component.Position](e.m)
	case "velocity":
		n = ecs.Count[component.Velocity](e.m)
	case "lifetime":
		n = ecs.Count[component.Lifetime](e.m)
	default:
		L.ArgError(1, "unknown component "+kind)
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
