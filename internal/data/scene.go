package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sparsecs/engine/internal/component"
	"github.com/sparsecs/engine/internal/core/ecs"
)

// SpawnGroup describes Count entities sharing the same components. Each
// copy after the first is offset by Spread from the previous one.
type SpawnGroup struct {
	Name     string `yaml:"name"`
	Count    int    `yaml:"count"`
	Position *Vec2  `yaml:"position"`
	Spread   Vec2   `yaml:"spread"`
	Velocity *Vec2  `yaml:"velocity"`
	Lifetime int    `yaml:"lifetime"` // ticks, 0 = immortal
}

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type sceneFile struct {
	Entities []SpawnGroup `yaml:"entities"`
}

// Scene is the initial population of a world.
type Scene struct {
	Groups []SpawnGroup
}

// LoadScene loads a scene YAML file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(raw)
}

func ParseScene(raw []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i := range f.Entities {
		g := &f.Entities[i]
		if g.Count == 0 {
			g.Count = 1
		}
		if g.Count < 0 {
			return nil, fmt.Errorf("scene group %q: negative count %d", g.Name, g.Count)
		}
		if g.Lifetime < 0 {
			return nil, fmt.Errorf("scene group %q: negative lifetime %d", g.Name, g.Lifetime)
		}
	}
	return &Scene{Groups: f.Entities}, nil
}

// Count returns the total number of entities the scene spawns.
func (s *Scene) Count() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count
	}
	return n
}

// Spawn creates the scene's entities in m and returns them in file order.
func (s *Scene) Spawn(m *ecs.Manager) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, s.Count())
	for _, g := range s.Groups {
		for i := 0; i < g.Count; i++ {
			e, err := m.TryCreate()
			if err != nil {
				return out, fmt.Errorf("spawn %q: %w", g.Name, err)
			}
			if err := g.attach(m, e, i); err != nil {
				return out, fmt.Errorf("spawn %q: %w", g.Name, err)
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func (g *SpawnGroup) attach(m *ecs.Manager, e ecs.Entity, i int) error {
	if g.Position != nil {
		p := component.Position{
			X: g.Position.X + g.Spread.X*float64(i),
			Y: g.Position.Y + g.Spread.Y*float64(i),
		}
		if err := ecs.Save(m, e, p); err != nil {
			return err
		}
	}
	if g.Velocity != nil {
		if err := ecs.Save(m, e, component.Velocity{DX: g.Velocity.X, DY: g.Velocity.Y}); err != nil {
			return err
		}
	}
	if g.Lifetime > 0 {
		if err := ecs.Save(m, e, component.Lifetime{Ticks: g.Lifetime}); err != nil {
			return err
		}
	}
	return nil
}
