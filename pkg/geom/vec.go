package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "X", "Y" or "Z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// ParseAxis maps 'x'/'X', 'y'/'Y' and 'z'/'Z' to an axis.
func ParseAxis(r rune) (Axis, bool) {
	switch r {
	case 'x', 'X':
		return AxisX, true
	case 'y', 'Y':
		return AxisY, true
	case 'z', 'Z':
		return AxisZ, true
	}
	return 0, false
}

// Component returns the coordinate of v along a.
func Component(v r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its coordinate along a replaced by f.
func WithComponent(v r3.Vec, a Axis, f float64) r3.Vec {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// Mul multiplies two vectors element-wise.
func Mul(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Dist2 is the squared distance between a and b.
func Dist2(a, b r3.Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}

// Equal reports whether a and b coincide within eps on every axis.
func Equal(a, b r3.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// Snap rounds v to the nearest multiple of step, rounding ties up.
// A non-positive step returns v unchanged.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Floor(v/step+0.5) * step
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// FromZ returns the rotation that turns the local +Z axis onto dir.
// A zero-length dir yields the identity rotation.
func FromZ(dir r3.Vec) r3.Rotation {
	n := r3.Norm(dir)
	if n == 0 {
		return r3.Rotation{Real: 1}
	}
	d := r3.Scale(1/n, dir)
	z := r3.Vec{Z: 1}
	c := r3.Dot(z, d)
	if c >= 1-1e-12 {
		return r3.Rotation{Real: 1}
	}
	if c <= -1+1e-12 {
		return r3.NewRotation(math.Pi, r3.Vec{X: 1})
	}
	return r3.NewRotation(math.Acos(c), r3.Cross(z, d))
}
