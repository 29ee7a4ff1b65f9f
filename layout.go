package spruce

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// LayoutConfig describes the procedural layout of one group. Pass it to
// NewLayout once at setup; the resulting positions never change afterward.
type LayoutConfig struct {
	// Count is the number of elements in the group.
	Count int
	// Kind selects foliage (golden-angle spiral fill) or ornament
	// (sparse random azimuth) placement on the tree.
	Kind Kind
	// ScatterRadius is the outer radius of the dispersed cloud.
	ScatterRadius float64
	// Height is the tree cone's height. The cone is centered vertically on
	// the origin, so y spans [-Height/2, Height/2].
	Height float64
	// BaseRadius is the tree cone's radius at its base (hNorm = 0).
	BaseRadius float64
	// JitterWidth is the full width of the radial jitter band. Each element's
	// tree radius is perturbed by up to ±JitterWidth/4 so the cone surface
	// isn't perfectly smooth. Zero disables jitter.
	JitterWidth float64
	// SurfaceOffset pushes ornament placements outward by a constant, so
	// ornaments hang just outside the foliage surface. Ignored for foliage.
	SurfaceOffset float64
	// ScaleRange is the kind-specific range element scales are drawn from.
	// The zero value selects a per-kind default.
	ScaleRange Range
}

// Layout holds one group's two generated position sets and per-element
// auxiliary attributes. Immutable once generated; element identity is the
// slice index, stable for the group's lifetime.
type Layout struct {
	Kind Kind
	// Scatter and Tree are the two target positions per element.
	Scatter []Vec3
	Tree    []Vec3
	// Seeds holds one uniform random scalar in [0, 1) per element, reused at
	// runtime for shimmer phase and size pulse decorrelation.
	Seeds []float64
	// Scales holds the per-element base scale.
	Scales []float64
	// Rotations holds the per-element initial Euler rotation. Nil for
	// foliage; ornaments draw X and Y uniformly from [0, π) and keep Z at 0.
	Rotations []Vec3
}

// Count returns the number of elements in the layout.
func (l *Layout) Count() int {
	return len(l.Scatter)
}

// NewLayout generates a group's scatter and tree position sets plus auxiliary
// attributes from cfg, drawing all randomness from rng. Reproducibility across
// runs is not a goal, but passing a fixed-seed rng yields a fixed layout.
//
// Invalid configuration (negative Count, non-positive dimensions) is a
// programmer error and panics. Validate external input before calling.
func NewLayout(cfg LayoutConfig, rng *rand.Rand) *Layout {
	if cfg.Count < 0 {
		panic(fmt.Sprintf("spruce: negative layout count %d", cfg.Count))
	}
	if cfg.ScatterRadius <= 0 {
		panic(fmt.Sprintf("spruce: scatter radius must be positive, got %v", cfg.ScatterRadius))
	}
	if cfg.Height <= 0 || cfg.BaseRadius <= 0 {
		panic(fmt.Sprintf("spruce: tree dimensions must be positive, got height %v base radius %v",
			cfg.Height, cfg.BaseRadius))
	}
	if cfg.JitterWidth < 0 {
		panic(fmt.Sprintf("spruce: jitter width must be non-negative, got %v", cfg.JitterWidth))
	}

	scaleRange := cfg.ScaleRange
	if scaleRange == (Range{}) {
		scaleRange = defaultScaleRange(cfg.Kind)
	}

	l := &Layout{
		Kind:    cfg.Kind,
		Scatter: make([]Vec3, cfg.Count),
		Tree:    make([]Vec3, cfg.Count),
		Seeds:   make([]float64, cfg.Count),
		Scales:  make([]float64, cfg.Count),
	}
	if cfg.Kind.IsOrnament() {
		l.Rotations = make([]Vec3, cfg.Count)
	}

	for i := 0; i < cfg.Count; i++ {
		l.Scatter[i] = scatterPoint(cfg.ScatterRadius, rng)
		l.Tree[i] = treePoint(cfg, i, rng)
		l.Seeds[i] = rng.Float64()
		l.Scales[i] = scaleRange.Random(rng)
		if l.Rotations != nil {
			l.Rotations[i] = Vec3{
				X: rng.Float64() * math.Pi,
				Y: rng.Float64() * math.Pi,
			}
		}
	}
	return l
}

// defaultScaleRange returns the kind-specific scale spread used when the
// config leaves ScaleRange zero.
func defaultScaleRange(kind Kind) Range {
	switch kind {
	case KindOrnamentBox:
		return Range{0.3, 0.5}
	case KindOrnamentSphere:
		return Range{0.2, 0.4}
	default:
		return Range{0.6, 1.4}
	}
}

// scatterPoint samples a point uniformly inside a sphere of radius r.
// Cube-root radius sampling gives uniform volumetric density, so the
// dispersed state reads as a cloud rather than a shell.
func scatterPoint(r float64, rng *rand.Rand) Vec3 {
	radius := r * math.Cbrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: radius * sinPhi * cosTheta,
		Y: radius * sinPhi * sinTheta,
		Z: radius * cosPhi,
	}
}

// conePoint maps a normalized height in [0, 1) onto the tree cone, returning
// the vertical coordinate (cone centered on the origin) and the surface
// radius at that height.
func conePoint(hNorm, height, baseRadius float64) (y, radius float64) {
	return hNorm*height - height/2, (1 - hNorm) * baseRadius
}

// treePoint places element i on the tree cone. Foliage advances the azimuth
// by the golden angle per index for an even spiral fill; ornaments are sparse
// enough that a uniform random azimuth suffices.
func treePoint(cfg LayoutConfig, i int, rng *rand.Rand) Vec3 {
	y, radius := conePoint(rng.Float64(), cfg.Height, cfg.BaseRadius)

	var angle float64
	if cfg.Kind.IsOrnament() {
		angle = 2 * math.Pi * rng.Float64()
		radius += cfg.SurfaceOffset
	} else {
		angle = float64(i) * goldenAngle
	}

	// ±JitterWidth/4 keeps the cone surface from reading perfectly smooth.
	jitter := (rng.Float64() - 0.5) * 0.5 * cfg.JitterWidth

	sin, cos := math.Sincos(angle)
	return Vec3{
		X: cos * (radius + jitter),
		Y: y,
		Z: sin * (radius + jitter),
	}
}
