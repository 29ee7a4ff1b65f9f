package spruce

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3Near(t *testing.T, name string, got, want Vec3) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon ||
		math.Abs(got.Y-want.Y) > epsilon ||
		math.Abs(got.Z-want.Z) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- writeTRS ---

func TestTRSIdentity(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{}, Vec3{}, 1)
	for i := range m {
		if math.Abs(float64(m[i]-identityTransform[i])) > epsilon {
			t.Errorf("m[%d] = %v, want %v", i, m[i], identityTransform[i])
		}
	}
}

func TestTRSTranslationColumn(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{3, -4, 5}, Vec3{}, 1)
	assertNear(t, "tx", float64(m[12]), 3)
	assertNear(t, "ty", float64(m[13]), -4)
	assertNear(t, "tz", float64(m[14]), 5)
	assertNear(t, "w", float64(m[15]), 1)
}

func TestTRSUniformScale(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{}, Vec3{0.3, 1.1, 2.2}, 2.5)
	assertNear(t, "scale", transformScale(m[:]), 2.5)
}

func TestTRSRotationPreservesLength(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{}, Vec3{0.7, -1.2, 0.4}, 1)
	p := transformPoint3(m[:], Vec3{1, 2, 3})
	assertNear(t, "length", p.Length(), Vec3{1, 2, 3}.Length())
}

func TestTRSYawQuarterTurn(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{}, Vec3{0, math.Pi / 2, 0}, 1)
	// Ry(π/2) sends +X to -Z.
	got := transformPoint3(m[:], Vec3{1, 0, 0})
	assertVec3Near(t, "Ry(π/2)·X", got, Vec3{0, 0, -1})
}

func TestTRSAppliesScaleBeforeTranslate(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{10, 0, 0}, Vec3{}, 2)
	got := transformPoint3(m[:], Vec3{1, 1, 1})
	assertVec3Near(t, "T·S·p", got, Vec3{12, 2, 2})
}

// --- multiplyMat4 / transformPoint3 ---

func TestMultiplyMat4Identity(t *testing.T) {
	var a, dst [16]float32
	writeTRS(a[:], Vec3{1, 2, 3}, Vec3{0.5, 0.6, 0.7}, 1.5)
	multiplyMat4(dst[:], identityTransform[:], a[:])
	for i := range dst {
		if math.Abs(float64(dst[i]-a[i])) > epsilon {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], a[i])
		}
	}
}

func TestMultiplyMat4MatchesSequentialTransforms(t *testing.T) {
	var a, b, ab [16]float32
	writeTRS(a[:], Vec3{1, 0, 0}, Vec3{0, 0.4, 0}, 1)
	writeTRS(b[:], Vec3{0, 2, 0}, Vec3{0.3, 0, 0}, 0.5)
	multiplyMat4(ab[:], a[:], b[:])

	p := Vec3{0.2, -0.7, 1.3}
	want := transformPoint3(a[:], transformPoint3(b[:], p))
	got := transformPoint3(ab[:], p)
	assertVec3Near(t, "(a*b)·p", got, want)
}

func TestTransformPoint3Translation(t *testing.T) {
	var m [16]float32
	writeTRS(m[:], Vec3{-1, 2, -3}, Vec3{}, 1)
	got := transformPoint3(m[:], Vec3{1, 1, 1})
	assertVec3Near(t, "translate", got, Vec3{0, 3, -2})
}
