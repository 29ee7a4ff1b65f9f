package spruce

import "math"

// identityTransform is the identity 4x4 matrix in column-major order.
var identityTransform = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// writeTRS composes a rigid transform from position, Euler rotation
// (radians), and uniform scale, writing the resulting 4x4 column-major
// matrix into dst. dst must have length 16.
//
// Composition order:
//
//	Scale -> Rotate(Z) -> Rotate(X) -> Rotate(Y) -> Translate
func writeTRS(dst []float32, pos, rot Vec3, scale float64) {
	sx, cx := math.Sincos(rot.X)
	sy, cy := math.Sincos(rot.Y)
	sz, cz := math.Sincos(rot.Z)

	// Combined rotation R = Ry * Rx * Rz, expanded once rather than three
	// matrix multiplies per element.
	r00 := cy*cz + sy*sx*sz
	r01 := -cy*sz + sy*sx*cz
	r02 := sy * cx
	r10 := cx * sz
	r11 := cx * cz
	r12 := -sx
	r20 := -sy*cz + cy*sx*sz
	r21 := sy*sz + cy*sx*cz
	r22 := cy * cx

	dst[0] = float32(r00 * scale)
	dst[1] = float32(r10 * scale)
	dst[2] = float32(r20 * scale)
	dst[3] = 0
	dst[4] = float32(r01 * scale)
	dst[5] = float32(r11 * scale)
	dst[6] = float32(r21 * scale)
	dst[7] = 0
	dst[8] = float32(r02 * scale)
	dst[9] = float32(r12 * scale)
	dst[10] = float32(r22 * scale)
	dst[11] = 0
	dst[12] = float32(pos.X)
	dst[13] = float32(pos.Y)
	dst[14] = float32(pos.Z)
	dst[15] = 1
}

// multiplyMat4 multiplies two column-major 4x4 matrices: dst = a * b.
// dst must not alias a or b. All slices must have length 16.
func multiplyMat4(dst, a, b []float32) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			dst[col*4+row] = a[row]*b[col*4] +
				a[4+row]*b[col*4+1] +
				a[8+row]*b[col*4+2] +
				a[12+row]*b[col*4+3]
		}
	}
}

// transformPoint3 applies a column-major 4x4 transform to a point
// (w assumed 1). m must have length 16.
func transformPoint3(m []float32, v Vec3) Vec3 {
	x := float64(m[0])*v.X + float64(m[4])*v.Y + float64(m[8])*v.Z + float64(m[12])
	y := float64(m[1])*v.X + float64(m[5])*v.Y + float64(m[9])*v.Z + float64(m[13])
	z := float64(m[2])*v.X + float64(m[6])*v.Y + float64(m[10])*v.Z + float64(m[14])
	return Vec3{x, y, z}
}

// transformScale extracts the uniform scale factor from a column-major TRS
// matrix produced by writeTRS (length of the first basis column).
func transformScale(m []float32) float64 {
	x := float64(m[0])
	y := float64(m[1])
	z := float64(m[2])
	return math.Sqrt(x*x + y*y + z*z)
}
