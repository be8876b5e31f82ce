package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World     WorldConfig     `toml:"world"`
	Loop      LoopConfig      `toml:"loop"`
	Logging   LoggingConfig   `toml:"logging"`
	Scripting ScriptingConfig `toml:"scripting"`
	Data      DataConfig      `toml:"data"`
}

type WorldConfig struct {
	InitialCapacity int     `toml:"initial_capacity"` // preallocated entity slots
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"`
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until signalled
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type DataConfig struct {
	Scene string `toml:"scene"`
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.World.InitialCapacity < 0 {
		return fmt.Errorf("world.initial_capacity must not be negative")
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world bounds must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			InitialCapacity: 1024,
			Width:           800,
			Height:          600,
		},
		Loop: LoopConfig{
			TickRate: 50 * time.Millisecond,
			MaxTicks: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Data: DataConfig{
			Scene: "data/yaml/scene.yaml",
		},
	}
}
