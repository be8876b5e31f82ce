package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sparsecs/engine/internal/component"
	"github.com/sparsecs/engine/internal/config"
	"github.com/sparsecs/engine/internal/core/ecs"
	"github.com/sparsecs/engine/internal/core/event"
	coresys "github.com/sparsecs/engine/internal/core/system"
	"github.com/sparsecs/engine/internal/data"
	"github.com/sparsecs/engine/internal/scripting"
	"github.com/sparsecs/engine/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              sparsecs  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("SPARSECS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Bus and entity manager
	bus := event.NewBus()
	world := ecs.NewManager(bus, cfg.World.InitialCapacity)
	if log.Core().Enabled(zapcore.DebugLevel) {
		bus.Hook(func(msg any) {
			log.Debug("message", zap.String("type", fmt.Sprintf("%T", msg)))
		})
		event.OnEntityDestroyed(bus, func(e ecs.Entity) {
			log.Debug("entity destroyed", zap.Stringer("entity", e))
		})
	}
	event.Subscribe(bus, func(o event.OutOfBounds) {
		world.MarkForDestruction(o.Entity)
	})

	// 4. Scene
	printSection("Scene")
	scene, err := data.LoadScene(cfg.Data.Scene)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("scene file not found, starting empty", zap.String("path", cfg.Data.Scene))
	case err != nil:
		return fmt.Errorf("load scene: %w", err)
	default:
		spawned, err := scene.Spawn(world)
		if err != nil {
			return fmt.Errorf("spawn scene: %w", err)
		}
		printStat("Spawn groups", len(scene.Groups))
		printStat("Entities", len(spawned))
	}

	// 5. Scripts
	runner := coresys.NewRunner(log, cfg.Loop.TickRate)
	if cfg.Scripting.Enabled {
		lua, err := scripting.NewEngine(cfg.Scripting.Dir, world, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		if err := lua.OnStart(); err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		printOK("Lua scripts loaded")
		runner.Register(system.NewScriptSystem(lua, bus, log))
	}

	// 6. Systems
	cleanup := system.NewCleanupSystem(world, log)
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewMotionSystem(world, bus, cfg.World.Width, cfg.World.Height))
	runner.Register(system.NewLifetimeSystem(world, bus))
	runner.Register(cleanup)
	printStat("Systems", runner.Len())
	fmt.Println()

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	printReady(fmt.Sprintf("Game loop started (tick: %s)", cfg.Loop.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Loop.TickRate)
			if cfg.Loop.MaxTicks > 0 && runner.Ticks() >= uint64(cfg.Loop.MaxTicks) {
				logStats(log, world, runner, cleanup)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			logStats(log, world, runner, cleanup)
			return nil
		}
	}
}

func logStats(log *zap.Logger, world *ecs.Manager, runner *coresys.Runner, cleanup *system.CleanupSystem) {
	log.Info("world stopped",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Int("live", world.Size()),
		zap.Int("destroyed", cleanup.Destroyed()),
		zap.Int("positions", ecs.Count[component.Position](world)),
		zap.Int("velocities", ecs.Count[component.Velocity](world)),
		zap.Int("lifetimes", ecs.Count[component.Lifetime](world)),
	)
}

// newLogger writes to stderr: colored console lines by default, one JSON
// object per line with format = "json".
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(enc)
	case "", "console":
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc.ConsoleSeparator = "  "
		encoder = zapcore.NewConsoleEncoder(enc)
	default:
		return nil, fmt.Errorf("logging.format: unknown format %q", cfg.Format)
	}

	out := zapcore.Lock(os.Stderr)
	return zap.New(zapcore.NewCore(encoder, out, level), zap.ErrorOutput(out)), nil
}
