package spruce

import (
	"math"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Shape identifies one of the two target arrangements every group morphs
// between. It is the scene-wide target signal: set by the host (typically a
// UI toggle), read by every morph driver each frame, never written by the
// engine itself.
type Shape uint8

const (
	// Scattered is the dispersed state: elements fill a sphere uniformly by
	// volume, forming a cloud rather than a shell.
	Scattered Shape = iota
	// TreeShape is the assembled state: elements spiral up a vertically
	// centered cone.
	TreeShape
)

// Kind distinguishes the render representation and morph behavior of a group.
type Kind uint8

const (
	// KindFoliage renders as a point-sprite cloud. Foliage gets breathing,
	// turbulence, and glitter-pulse secondary motion and the fastest morph rate.
	KindFoliage Kind = iota
	// KindOrnamentBox renders as an instanced box batch. The heaviest kind;
	// morphs slowest.
	KindOrnamentBox
	// KindOrnamentSphere renders as an instanced sphere batch. Lighter than
	// boxes; morphs slightly faster.
	KindOrnamentSphere
)

// IsOrnament reports whether the kind renders as instanced solid meshes
// (full transforms per element) rather than point sprites.
func (k Kind) IsOrnament() bool {
	return k == KindOrnamentBox || k == KindOrnamentSphere
}

// goldenAngle is the phyllotaxis placement step, 137.5 degrees in radians.
// Irrational relative to a full turn, so successive azimuths never band.
const goldenAngle = 137.5 * math.Pi / 180

// Range is a general-purpose min/max range used for kind-specific scale
// spreads and other sampled parameters.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps v to [0, 1]. Guards progress against floating-point creep.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
