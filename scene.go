package spruce

import "math/rand/v2"

// GroupConfig describes one group added to a Scene: its procedural layout
// plus presentation parameters the morphing core forwards to the render sink
// without interpreting.
type GroupConfig struct {
	// Name labels the group for debugging. Optional.
	Name string
	// Layout is the group's procedural layout configuration.
	Layout LayoutConfig
	// Color is the group's base tint, forwarded opaquely to the sink.
	Color Color
	// Size is the base render size: point-sprite pixel scale for foliage,
	// world-space unit for ornament meshes. Zero means 1.
	Size float64
	// LerpRate overrides the kind's default morph rate. Zero keeps the default.
	LerpRate float64
}

// Group is a homogeneous collection of elements sharing one render
// representation: a point-sprite cloud or one instanced-mesh batch. A group
// owns its elements; they have no existence outside it.
type Group struct {
	Name  string
	Kind  Kind
	Color Color
	Size  float64

	layout *Layout
	driver *MorphDriver
}

// Layout returns the group's immutable generated layout.
func (g *Group) Layout() *Layout {
	return g.layout
}

// Driver returns the group's morph driver.
func (g *Group) Driver() *MorphDriver {
	return g.driver
}

// Count returns the number of elements in the group.
func (g *Group) Count() int {
	return g.layout.Count()
}

// Scene owns a set of morphing groups, the shared target-shape signal, and
// the monotonic elapsed clock. All groups read the same target each frame;
// the host flips it (on user action) between frames and the drivers reverse
// smoothly mid-transition.
//
// A Scene is driven from one logical thread: call Update once per frame,
// then hand each group's buffers to the sink.
type Scene struct {
	groups  []*Group
	target  Shape
	elapsed float64
	rng     *rand.Rand
}

// NewScene creates an empty scene in the Scattered state. All layout
// generation draws from rng; pass nil for an arbitrarily seeded source.
func NewScene(rng *rand.Rand) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scene{rng: rng}
}

// AddGroup generates a layout from cfg, wraps it in a driver, and appends the
// group to the scene. Layout preconditions apply (see NewLayout).
func (s *Scene) AddGroup(cfg GroupConfig) *Group {
	size := cfg.Size
	if size == 0 {
		size = 1
	}
	g := &Group{
		Name:   cfg.Name,
		Kind:   cfg.Layout.Kind,
		Color:  cfg.Color,
		Size:   size,
		layout: NewLayout(cfg.Layout, s.rng),
	}
	g.driver = NewMorphDriver(g.layout)
	if cfg.LerpRate != 0 {
		g.driver.SetLerpRate(cfg.LerpRate)
	}
	s.groups = append(s.groups, g)
	return g
}

// Groups returns the scene's groups in insertion order. The slice is owned
// by the scene; do not modify it.
func (s *Scene) Groups() []*Group {
	return s.groups
}

// Target returns the current target shape signal.
func (s *Scene) Target() Shape {
	return s.target
}

// SetTarget sets the target shape every driver approaches. Safe to call at
// any frame boundary, including mid-transition.
func (s *Scene) SetTarget(shape Shape) {
	s.target = shape
}

// Toggle flips the target shape and returns the new value.
func (s *Scene) Toggle() Shape {
	if s.target == Scattered {
		s.target = TreeShape
	} else {
		s.target = Scattered
	}
	return s.target
}

// Elapsed returns the scene clock: total seconds accumulated over Update
// calls since creation.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Update advances the scene clock by delta seconds and updates every group's
// driver. Call once per rendered frame with the frame's time delta.
func (s *Scene) Update(delta float64) {
	s.elapsed += delta
	for _, g := range s.groups {
		g.driver.Update(s.target, delta, s.elapsed)
	}
}
