// Package math provides the float64 transform helpers used for bone matrices.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PixelsPerUnit is the number of model pixels in one model unit.
const PixelsPerUnit = 16.0

// gimbalEpsilon is the cos(y) below which X and Z rotations are coupled.
const gimbalEpsilon = 1e-9

// ToPixels converts a model-unit length to pixels.
func ToPixels(units float64) float64 {
	return units * PixelsPerUnit
}

// EulerXYZ returns the rotation matrix Rx * Ry * Rz for angles given in degrees.
func EulerXYZ(deg mgl64.Vec3) mgl64.Mat4 {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(deg[0]))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(deg[1]))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(deg[2]))
	return rx.Mul4(ry).Mul4(rz)
}

// EulerFromMatrix extracts XYZ Euler angles (degrees) from the rotation part of m.
// m must not carry scale; see Decompose.
func EulerFromMatrix(m mgl64.Mat4) mgl64.Vec3 {
	cy := math.Hypot(m.At(0, 0), m.At(0, 1))
	y := math.Atan2(m.At(0, 2), cy)

	var x, z float64
	if cy > gimbalEpsilon {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
		z = 0
	}

	return mgl64.Vec3{mgl64.RadToDeg(x), mgl64.RadToDeg(y), mgl64.RadToDeg(z)}
}

// Compose builds T * R * S from a translation, XYZ Euler rotation in degrees and scale.
func Compose(translation, rotationDeg, scale mgl64.Vec3) mgl64.Mat4 {
	m := mgl64.Translate3D(translation[0], translation[1], translation[2])
	m = m.Mul4(EulerXYZ(rotationDeg))
	return m.Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
}

// Decompose splits an affine matrix built by Compose back into its parts.
// Shear cannot be represented and is dropped.
func Decompose(m mgl64.Mat4) (translation, rotationDeg, scale mgl64.Vec3) {
	translation = mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}

	col0 := m.Col(0).Vec3()
	col1 := m.Col(1).Vec3()
	col2 := m.Col(2).Vec3()
	scale = mgl64.Vec3{col0.Len(), col1.Len(), col2.Len()}

	// A mirrored basis keeps its handedness on the X axis.
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}

	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return translation, mgl64.Vec3{}, scale
	}

	rot := mgl64.Ident4()
	rot.SetCol(0, col0.Mul(1/scale[0]).Vec4(0))
	rot.SetCol(1, col1.Mul(1/scale[1]).Vec4(0))
	rot.SetCol(2, col2.Mul(1/scale[2]).Vec4(0))

	return translation, EulerFromMatrix(rot), scale
}

// IsTRS reports whether Compose(Decompose(m)) reproduces m within eps.
// It fails for matrices carrying shear.
func IsTRS(m mgl64.Mat4, eps float64) bool {
	t, r, sc := Decompose(m)
	return ApproxEqualMat4(Compose(t, r, sc), m, eps)
}

// ApproxEqualMat4 reports whether every element of a and b differs by at most eps.
func ApproxEqualMat4(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// ApproxEqualVec3 reports whether every component of a and b differs by at most eps.
func ApproxEqualVec3(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps &&
		math.Abs(a[1]-b[1]) <= eps &&
		math.Abs(a[2]-b[2]) <= eps
}
