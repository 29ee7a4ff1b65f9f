package spruce

import (
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneConfig is the setup-time description of a morphing scene, usually
// loaded from a YAML file. It is consumed once by Build; nothing is
// persisted afterward.
type SceneConfig struct {
	// Seed seeds the layout random source. Zero picks an arbitrary seed.
	Seed uint64 `yaml:"seed"`
	// Groups lists the scene's element groups in draw order.
	Groups []GroupEntry `yaml:"groups"`
}

// GroupEntry is one group in a SceneConfig.
type GroupEntry struct {
	Name string `yaml:"name"`
	// Kind is one of "foliage", "ornament-box", "ornament-sphere".
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`

	ScatterRadius float64 `yaml:"scatterRadius"`
	Height        float64 `yaml:"height"`
	BaseRadius    float64 `yaml:"baseRadius"`
	JitterWidth   float64 `yaml:"jitterWidth"`
	SurfaceOffset float64 `yaml:"surfaceOffset"`

	ScaleMin float64 `yaml:"scaleMin"`
	ScaleMax float64 `yaml:"scaleMax"`
	LerpRate float64 `yaml:"lerpRate"`
	Size     float64 `yaml:"size"`

	Color ColorEntry `yaml:"color"`
}

// ColorEntry is an RGBA color in a config file, components in [0, 1].
// A zero alpha is treated as fully opaque so colors can be written as
// plain r/g/b triples.
type ColorEntry struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

func (c ColorEntry) color() Color {
	a := c.A
	if a == 0 {
		a = 1
	}
	return Color{c.R, c.G, c.B, a}
}

// LoadSceneConfig loads a YAML scene configuration from path.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig parses a YAML scene configuration, typically embedded
// data. The config is validated; invalid entries are reported as errors
// rather than panics since the data comes from outside the program.
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene config: %w", err)
	}
	if len(cfg.Groups) == 0 {
		return nil, fmt.Errorf("parse scene config: no groups")
	}
	for i := range cfg.Groups {
		if err := cfg.Groups[i].validate(); err != nil {
			return nil, fmt.Errorf("scene config group %d (%s): %w", i, cfg.Groups[i].Name, err)
		}
	}
	return &cfg, nil
}

func (e *GroupEntry) validate() error {
	if _, err := parseKind(e.Kind); err != nil {
		return err
	}
	if e.Count < 0 {
		return fmt.Errorf("negative count %d", e.Count)
	}
	if e.ScatterRadius <= 0 {
		return fmt.Errorf("scatterRadius must be positive, got %v", e.ScatterRadius)
	}
	if e.Height <= 0 || e.BaseRadius <= 0 {
		return fmt.Errorf("height and baseRadius must be positive, got %v and %v", e.Height, e.BaseRadius)
	}
	if e.JitterWidth < 0 {
		return fmt.Errorf("jitterWidth must be non-negative, got %v", e.JitterWidth)
	}
	if e.ScaleMin < 0 || e.ScaleMax < e.ScaleMin {
		return fmt.Errorf("invalid scale range [%v, %v]", e.ScaleMin, e.ScaleMax)
	}
	if e.LerpRate < 0 {
		return fmt.Errorf("lerpRate must be non-negative, got %v", e.LerpRate)
	}
	return nil
}

// parseKind maps a config kind string to a Kind.
func parseKind(s string) (Kind, error) {
	switch s {
	case "foliage":
		return KindFoliage, nil
	case "ornament-box":
		return KindOrnamentBox, nil
	case "ornament-sphere":
		return KindOrnamentSphere, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

// Build constructs a Scene from the validated config. The config's Seed, if
// nonzero, makes layout generation deterministic.
func (c *SceneConfig) Build() *Scene {
	var rng *rand.Rand
	if c.Seed != 0 {
		rng = rand.New(rand.NewPCG(c.Seed, c.Seed))
	}
	scene := NewScene(rng)
	for i := range c.Groups {
		e := &c.Groups[i]
		kind, err := parseKind(e.Kind)
		if err != nil {
			// Build is only reachable through ParseSceneConfig, which
			// validated every entry.
			panic("spruce: " + err.Error())
		}
		scene.AddGroup(GroupConfig{
			Name: e.Name,
			Layout: LayoutConfig{
				Count:         e.Count,
				Kind:          kind,
				ScatterRadius: e.ScatterRadius,
				Height:        e.Height,
				BaseRadius:    e.BaseRadius,
				JitterWidth:   e.JitterWidth,
				SurfaceOffset: e.SurfaceOffset,
				ScaleRange:    Range{e.ScaleMin, e.ScaleMax},
			},
			Color:    e.Color.color(),
			Size:     e.Size,
			LerpRate: e.LerpRate,
		})
	}
	return scene
}

// DefaultSceneConfig returns the reference scene: a dense foliage cloud plus
// two sparse ornament batches hung just outside the foliage surface.
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Groups: []GroupEntry{
			{
				Name:          "foliage",
				Kind:          "foliage",
				Count:         4000,
				ScatterRadius: 12,
				Height:        14,
				BaseRadius:    5,
				JitterWidth:   1.2,
				Size:          3,
				Color:         ColorEntry{R: 0.25, G: 0.85, B: 0.45},
			},
			{
				Name:          "boxes",
				Kind:          "ornament-box",
				Count:         30,
				ScatterRadius: 12,
				Height:        14,
				BaseRadius:    5,
				JitterWidth:   0.6,
				SurfaceOffset: 0.4,
				Color:         ColorEntry{R: 0.9, G: 0.25, B: 0.3},
			},
			{
				Name:          "baubles",
				Kind:          "ornament-sphere",
				Count:         40,
				ScatterRadius: 12,
				Height:        14,
				BaseRadius:    5,
				JitterWidth:   0.6,
				SurfaceOffset: 0.3,
				Color:         ColorEntry{R: 0.95, G: 0.8, B: 0.3},
			},
		},
	}
}
