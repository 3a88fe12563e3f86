package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Order is the application order of Euler angles.
type Order string

const (
	OrderXYZ Order = "XYZ"
	OrderYXZ Order = "YXZ"
)

// Euler is a rotation expressed as angles in radians around X, Y and Z.
// The zero Order means [OrderXYZ].
type Euler struct {
	X, Y, Z float64
	Order   Order
}

// Vec returns the angles as a vector.
func (e Euler) Vec() r3.Vec { return r3.Vec{X: e.X, Y: e.Y, Z: e.Z} }

// Transform is a local affine transform: scale, then rotate, then translate.
type Transform struct {
	Position r3.Vec
	Rotation Euler
	Scale    r3.Vec
}

// Identity returns a transform with unit scale and no rotation or offset.
func Identity() Transform {
	return Transform{Scale: r3.Vec{X: 1, Y: 1, Z: 1}}
}

// Matrix returns the 4x4 matrix T·R·S.
func (t Transform) Matrix() *mat.Dense {
	s := t.Scale
	r := RotationMatrix(t.Rotation)
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		m.Set(i, 0, r.At(i, 0)*s.X)
		m.Set(i, 1, r.At(i, 1)*s.Y)
		m.Set(i, 2, r.At(i, 2)*s.Z)
	}
	m.Set(0, 3, t.Position.X)
	m.Set(1, 3, t.Position.Y)
	m.Set(2, 3, t.Position.Z)
	m.Set(3, 3, 1)
	return m
}

// RotationMatrix returns the 3x3 rotation matrix for e.
func RotationMatrix(e Euler) *mat.Dense {
	rx := axisRotation(AxisX, e.X)
	ry := axisRotation(AxisY, e.Y)
	rz := axisRotation(AxisZ, e.Z)

	seq := [3]*mat.Dense{rx, ry, rz}
	if e.Order == OrderYXZ {
		seq = [3]*mat.Dense{ry, rx, rz}
	}

	var tmp, out mat.Dense
	tmp.Mul(seq[0], seq[1])
	out.Mul(&tmp, seq[2])
	return &out
}

func axisRotation(a Axis, angle float64) *mat.Dense {
	s, c := math.Sincos(angle)
	switch a {
	case AxisX:
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		})
	case AxisY:
		return mat.NewDense(3, 3, []float64{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		})
	default:
		return mat.NewDense(3, 3, []float64{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		})
	}
}

// IdentityMatrix returns a new 4x4 identity matrix.
func IdentityMatrix() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Compose returns a·b.
func Compose(a, b mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Mul(a, b)
	return &out
}

// Invert returns the inverse of an affine matrix.
func Invert(m mat.Matrix) (*mat.Dense, error) {
	var out mat.Dense
	if err := out.Inverse(m); err != nil {
		return nil, err
	}
	return &out, nil
}

// Apply transforms point p by the affine matrix m.
func Apply(m mat.Matrix, p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3),
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3),
		Z: m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3),
	}
}

// ApplyDir transforms direction d by the linear part of m.
func ApplyDir(m mat.Matrix, d r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*d.X + m.At(0, 1)*d.Y + m.At(0, 2)*d.Z,
		Y: m.At(1, 0)*d.X + m.At(1, 1)*d.Y + m.At(1, 2)*d.Z,
		Z: m.At(2, 0)*d.X + m.At(2, 1)*d.Y + m.At(2, 2)*d.Z,
	}
}

// Translation returns the translation column of m.
func Translation(m mat.Matrix) r3.Vec {
	return r3.Vec{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
}
