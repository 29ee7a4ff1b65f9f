package spruce

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 13))
}

func foliageTestConfig(count int) LayoutConfig {
	return LayoutConfig{
		Count:         count,
		Kind:          KindFoliage,
		ScatterRadius: 12,
		Height:        14,
		BaseRadius:    5,
		JitterWidth:   1.2,
	}
}

func TestScatterWithinRadius(t *testing.T) {
	cfg := foliageTestConfig(2000)
	l := NewLayout(cfg, testRand())
	for i, p := range l.Scatter {
		if d := p.Length(); d > cfg.ScatterRadius+epsilon {
			t.Fatalf("scatter[%d] distance %v exceeds radius %v", i, d, cfg.ScatterRadius)
		}
	}
}

func TestScatterFillsVolume(t *testing.T) {
	cfg := foliageTestConfig(2000)
	l := NewLayout(cfg, testRand())

	// Uniform-by-volume sampling puts half the points inside r·2^(-1/3)
	// (≈0.794r), unlike surface sampling which would leave that shell empty.
	half := cfg.ScatterRadius * math.Cbrt(0.5)
	inner := 0
	for _, p := range l.Scatter {
		if p.Length() <= half {
			inner++
		}
	}
	frac := float64(inner) / float64(len(l.Scatter))
	if frac < 0.4 || frac > 0.6 {
		t.Errorf("inner-half fraction = %v, want ~0.5 for volumetric density", frac)
	}
}

func TestTreeWithinCone(t *testing.T) {
	cfg := foliageTestConfig(2000)
	l := NewLayout(cfg, testRand())
	maxRadial := cfg.BaseRadius + cfg.JitterWidth/2
	for i, p := range l.Tree {
		if p.Y < -cfg.Height/2-epsilon || p.Y > cfg.Height/2+epsilon {
			t.Fatalf("tree[%d] y = %v outside [-%v, %v]", i, p.Y, cfg.Height/2, cfg.Height/2)
		}
		radial := math.Hypot(p.X, p.Z)
		if radial > maxRadial+epsilon {
			t.Fatalf("tree[%d] radial distance %v exceeds %v", i, radial, maxRadial)
		}
	}
}

func TestTreeOrnamentOffset(t *testing.T) {
	cfg := foliageTestConfig(500)
	cfg.Kind = KindOrnamentSphere
	cfg.SurfaceOffset = 0.4
	l := NewLayout(cfg, testRand())
	maxRadial := cfg.BaseRadius + cfg.SurfaceOffset + cfg.JitterWidth/2
	for i, p := range l.Tree {
		radial := math.Hypot(p.X, p.Z)
		if radial > maxRadial+epsilon {
			t.Fatalf("tree[%d] radial distance %v exceeds %v", i, radial, maxRadial)
		}
	}
}

func TestConePointEndpoints(t *testing.T) {
	y, radius := conePoint(0, 14, 5)
	assertNear(t, "y@0", y, -7)
	assertNear(t, "radius@0", radius, 5)

	y, radius = conePoint(1, 14, 5)
	assertNear(t, "y@1", y, 7)
	assertNear(t, "radius@1", radius, 0)
}

func TestGoldenAngleAzimuthsDistinct(t *testing.T) {
	cfg := foliageTestConfig(1000)
	cfg.JitterWidth = 0 // isolate azimuth placement
	l := NewLayout(cfg, testRand())

	// Each foliage azimuth follows the golden-angle accumulation exactly;
	// the irrational step is what guarantees no collisions or banding.
	for i, p := range l.Tree {
		azimuth := math.Atan2(p.Z, p.X)
		want := math.Mod(float64(i)*goldenAngle, 2*math.Pi)
		if want > math.Pi {
			want -= 2 * math.Pi
		}
		diff := math.Abs(azimuth - want)
		if diff > 1e-9 && math.Abs(diff-2*math.Pi) > 1e-9 {
			t.Fatalf("tree[%d] azimuth %v, want %v", i, azimuth, want)
		}
	}
}

func TestAuxiliaryAttributes(t *testing.T) {
	cfg := foliageTestConfig(500)
	cfg.ScaleRange = Range{0.5, 2}
	l := NewLayout(cfg, testRand())

	for i, seed := range l.Seeds {
		if seed < 0 || seed >= 1 {
			t.Fatalf("seed[%d] = %v outside [0, 1)", i, seed)
		}
	}
	for i, s := range l.Scales {
		if s < 0.5 || s > 2 {
			t.Fatalf("scale[%d] = %v outside [0.5, 2]", i, s)
		}
	}
	if l.Rotations != nil {
		t.Error("foliage layout should not carry rotations")
	}
}

func TestOrnamentRotations(t *testing.T) {
	cfg := foliageTestConfig(500)
	cfg.Kind = KindOrnamentBox
	l := NewLayout(cfg, testRand())

	if l.Rotations == nil {
		t.Fatal("ornament layout should carry rotations")
	}
	for i, r := range l.Rotations {
		if r.X < 0 || r.X >= math.Pi || r.Y < 0 || r.Y >= math.Pi {
			t.Fatalf("rotation[%d] = %v outside [0, π) on X/Y", i, r)
		}
		if r.Z != 0 {
			t.Fatalf("rotation[%d].Z = %v, want 0", i, r.Z)
		}
	}
}

func TestDefaultScaleRanges(t *testing.T) {
	// Lighter ornament kinds default smaller than foliage.
	f := defaultScaleRange(KindFoliage)
	b := defaultScaleRange(KindOrnamentBox)
	s := defaultScaleRange(KindOrnamentSphere)
	if b.Max >= f.Max || s.Max >= b.Max+epsilon {
		t.Errorf("unexpected default scale ordering: foliage %v box %v sphere %v", f, b, s)
	}
}

func TestZeroCountLayout(t *testing.T) {
	l := NewLayout(foliageTestConfig(0), testRand())
	if l.Count() != 0 {
		t.Errorf("Count() = %d, want 0", l.Count())
	}
}

func TestLayoutPreconditions(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*LayoutConfig)
	}{
		{"negative count", func(c *LayoutConfig) { c.Count = -1 }},
		{"zero scatter radius", func(c *LayoutConfig) { c.ScatterRadius = 0 }},
		{"zero height", func(c *LayoutConfig) { c.Height = 0 }},
		{"negative base radius", func(c *LayoutConfig) { c.BaseRadius = -3 }},
		{"negative jitter", func(c *LayoutConfig) { c.JitterWidth = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := foliageTestConfig(10)
			tc.mod(&cfg)
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic, got none")
				}
			}()
			NewLayout(cfg, testRand())
		})
	}
}

func TestLayoutDeterministicForFixedSeed(t *testing.T) {
	cfg := foliageTestConfig(100)
	a := NewLayout(cfg, rand.New(rand.NewPCG(42, 42)))
	b := NewLayout(cfg, rand.New(rand.NewPCG(42, 42)))
	for i := range a.Scatter {
		if a.Scatter[i] != b.Scatter[i] || a.Tree[i] != b.Tree[i] || a.Seeds[i] != b.Seeds[i] {
			t.Fatalf("layouts diverge at element %d with identical seeds", i)
		}
	}
}
