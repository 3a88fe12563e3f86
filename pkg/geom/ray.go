package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half-line starting at Origin in direction Dir.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

const epsilon = 1e-9

// IntersectPlaneY returns the point where the ray crosses the horizontal
// plane y = height. It reports false for rays parallel to the plane or
// pointing away from it.
func (r Ray) IntersectPlaneY(height float64) (r3.Vec, bool) {
	if math.Abs(r.Dir.Y) < epsilon {
		return r3.Vec{}, false
	}
	t := (height - r.Origin.Y) / r.Dir.Y
	if t < 0 {
		return r3.Vec{}, false
	}
	return r.At(t), true
}

// IntersectTriangle returns the ray parameter of the hit with the front
// face of triangle (a, b, c), using the Möller-Trumbore test. The front face
// is the one (a, b, c) winds counter-clockwise around; rays reaching the
// back face miss.
func (r Ray) IntersectTriangle(a, b, c r3.Vec) (float64, bool) {
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	p := r3.Cross(r.Dir, e2)
	det := r3.Dot(e1, p)
	if det < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r3.Sub(r.Origin, a)
	u := r3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(r.Dir, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := r3.Dot(e2, q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// HitsSphere reports whether the ray passes within radius of center in
// front of its origin.
func (r Ray) HitsSphere(center r3.Vec, radius float64) bool {
	oc := r3.Sub(center, r.Origin)
	d := r3.Unit(r.Dir)
	tca := r3.Dot(oc, d)
	d2 := r3.Norm2(oc) - tca*tca
	if d2 > radius*radius {
		return false
	}
	thc := math.Sqrt(radius*radius - d2)
	return tca+thc >= 0
}
