package spruce

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Per-kind exponential approach rates. Foliage is light and settles fastest;
// among ornaments, spheres read lighter than boxes and approach slightly
// faster, so the transition conveys differential weight.
const (
	foliageLerpRate        = 2.0
	ornamentSphereLerpRate = 1.5
	ornamentBoxLerpRate    = 1.2
)

// snapEpsilon is the distance from the target below which progress snaps
// exactly, ending floating-point creep. Secondary motion keeps running after
// the snap.
const snapEpsilon = 1e-3

// MorphDriver owns one group's interpolation progress and computes the
// group's full per-frame visual output from its immutable Layout.
//
// Each frame, Update advances progress toward the target shape with a
// frame-rate-independent exponential approach, applies the easing curve, and
// rewrites the output buffers: interpolated positions for every element,
// pulsing point sizes for foliage, and full 4x4 instance transforms for
// ornaments. The buffers are allocated once and reused; steady-state Update
// performs no allocations.
//
// A driver is not safe for concurrent use. One driver per group, one logical
// thread of execution — the render loop.
type MorphDriver struct {
	layout   *Layout
	lerpRate float64
	easing   ease.TweenFunc

	progress float64
	eased    float64

	positions  []float32 // 3 per element, all kinds
	sizes      []float32 // 1 per element, foliage only
	transforms []float32 // 16 per element (column-major 4x4), ornaments only
}

// NewMorphDriver creates a driver for the given layout, starting fully
// scattered (progress 0) with the kind's default lerp rate and cubic
// ease-in-out easing.
func NewMorphDriver(layout *Layout) *MorphDriver {
	d := &MorphDriver{
		layout:    layout,
		easing:    ease.InOutCubic,
		positions: make([]float32, layout.Count()*3),
	}
	switch layout.Kind {
	case KindOrnamentBox:
		d.lerpRate = ornamentBoxLerpRate
	case KindOrnamentSphere:
		d.lerpRate = ornamentSphereLerpRate
	default:
		d.lerpRate = foliageLerpRate
	}
	if layout.Kind.IsOrnament() {
		d.transforms = make([]float32, layout.Count()*16)
	} else {
		d.sizes = make([]float32, layout.Count())
	}
	return d
}

// SetLerpRate overrides the kind's default exponential approach rate.
// Higher rates converge faster. The rate must be positive.
func (d *MorphDriver) SetLerpRate(rate float64) {
	if rate <= 0 {
		panic(fmt.Sprintf("spruce: lerp rate must be positive, got %v", rate))
	}
	d.lerpRate = rate
}

// LerpRate returns the driver's exponential approach rate.
func (d *MorphDriver) LerpRate() float64 {
	return d.lerpRate
}

// SetEasing replaces the easing curve applied to progress before spatial
// interpolation. Passing nil restores the default, ease.InOutCubic.
func (d *MorphDriver) SetEasing(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.InOutCubic
	}
	d.easing = fn
}

// Progress returns the raw (un-eased) interpolation progress in [0, 1].
func (d *MorphDriver) Progress() float64 {
	return d.progress
}

// SetProgress forces the raw progress, clamped to [0, 1]. Useful for
// starting a scene mid-transition or already assembled.
func (d *MorphDriver) SetProgress(p float64) {
	d.progress = clamp01(p)
	d.eased = d.ease(d.progress)
}

// Blend returns the eased progress from the most recent Update. Foliage
// groups forward it to the sink as a shader-level blend parameter so color
// can react to shape state without per-element recomputation.
func (d *MorphDriver) Blend() float64 {
	return d.eased
}

// Layout returns the immutable layout the driver animates.
func (d *MorphDriver) Layout() *Layout {
	return d.layout
}

// Positions returns the flat position buffer, 3 floats per element, valid
// until the next Update. The caller must not retain it across frames.
func (d *MorphDriver) Positions() []float32 {
	return d.positions
}

// Sizes returns the flat point-size buffer for foliage groups, 1 float per
// element. Nil for ornament groups.
func (d *MorphDriver) Sizes() []float32 {
	return d.sizes
}

// Transforms returns the flat instance transform buffer for ornament groups,
// 16 floats (one column-major 4x4) per element. Nil for foliage groups.
func (d *MorphDriver) Transforms() []float32 {
	return d.transforms
}

// Update advances progress toward the target shape by delta seconds and
// rewrites every output buffer using the global elapsed time for secondary
// motion. Call once per rendered frame.
//
// The approach is exponential and frame-rate independent:
//
//	progress += (target - progress) * (1 - exp(-lerpRate * delta))
//
// so halving the frame rate does not change the transition's wall-clock
// shape. Progress is clamped to [0, 1] each frame and snapped to the target
// once within snapEpsilon; rotation, breathing, and pulsing continue every
// frame regardless of snapping. The target may flip mid-transition — the
// driver simply retraces toward the new value.
func (d *MorphDriver) Update(target Shape, delta, elapsed float64) {
	goal := 0.0
	if target == TreeShape {
		goal = 1.0
	}

	if delta > 0 {
		d.progress += (goal - d.progress) * (1 - math.Exp(-d.lerpRate*delta))
	}
	d.progress = clamp01(d.progress)
	if math.Abs(goal-d.progress) < snapEpsilon {
		d.progress = goal
	}
	d.eased = d.ease(d.progress)

	if d.layout.Kind.IsOrnament() {
		d.updateOrnaments(elapsed)
	} else {
		d.updateFoliage(elapsed)
	}
}

func (d *MorphDriver) ease(p float64) float64 {
	return float64(d.easing(float32(p), 0, 1, 1))
}

// updateFoliage computes per-particle positions and point sizes. On top of
// the base scatter/tree interpolation each particle gets vertical breathing,
// horizontal turbulence that fades out as the tree forms, a slow horizontal
// drift, and a glitter size pulse — all phase-shifted by the element's
// stored random seed so neighbors oscillate out of step.
func (d *MorphDriver) updateFoliage(elapsed float64) {
	l := d.layout
	eased := d.eased
	fade := 1 - eased

	for i := range l.Scatter {
		s := l.Scatter[i]
		p := s.Lerp(l.Tree[i], eased)
		seed := l.Seeds[i]

		p.Y += 0.05 * math.Sin(2*elapsed+seed*10)
		p.X += 0.1*math.Sin(elapsed+s.X)*fade + 0.02*math.Cos(1.5*elapsed+seed)
		p.Z += 0.1*math.Cos(elapsed+s.Z)*fade + 0.02*math.Sin(1.5*elapsed+seed)

		d.positions[i*3] = float32(p.X)
		d.positions[i*3+1] = float32(p.Y)
		d.positions[i*3+2] = float32(p.Z)
		d.sizes[i] = float32(l.Scales[i] * (1 + 0.3*math.Sin(5*elapsed+seed*100)))
	}
}

// updateOrnaments computes per-instance positions and full TRS transforms.
// Ornaments spin continuously whatever the morph state; the scale pulse
// amplitude grows with eased progress, so fully scattered ornaments hold a
// steady size.
func (d *MorphDriver) updateOrnaments(elapsed float64) {
	l := d.layout
	eased := d.eased

	for i := range l.Scatter {
		p := l.Scatter[i].Lerp(l.Tree[i], eased)

		rot := l.Rotations[i]
		rot.X += 0.1 * elapsed
		rot.Y += 0.2 * elapsed

		scale := l.Scales[i] * (1 + eased*0.1*math.Sin(elapsed+float64(i)))

		d.positions[i*3] = float32(p.X)
		d.positions[i*3+1] = float32(p.Y)
		d.positions[i*3+2] = float32(p.Z)
		writeTRS(d.transforms[i*16:i*16+16], p, rot, scale)
	}
}
