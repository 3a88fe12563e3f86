package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
)

// Projection selects the camera model.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "ortho"
	}
	return "persp"
}

// Camera defaults.
const (
	DefaultFOV       = 30.0 // vertical, degrees
	DefaultOrthoSize = 7.0
	MinOrthoSize     = 1.0
)

// Camera is a positioned camera. It looks down its local -Z axis.
type Camera struct {
	Projection Projection
	Position   r3.Vec
	Rotation   geom.Euler
	FOV        float64
	Near, Far  float64
	Size       float64 // orthographic half-height in world units
}

// Forward returns the unit viewing direction.
func (c Camera) Forward() r3.Vec {
	return geom.ApplyDir(geom.RotationMatrix(c.Rotation), r3.Vec{Z: -1})
}

// Ray returns the world ray through pixel (x, y) of vp. Pixel (0, 0) is the
// top-left corner.
func (c Camera) Ray(vp Viewport, x, y float64) geom.Ray {
	nx, ny := 0.0, 0.0
	if vp.Width > 0 && vp.Height > 0 {
		nx = 2*x/vp.Width - 1
		ny = 1 - 2*y/vp.Height
	}
	rot := geom.RotationMatrix(c.Rotation)
	aspect := vp.Aspect()

	if c.Projection == Orthographic {
		off := r3.Vec{X: nx * c.Size * aspect, Y: ny * c.Size}
		return geom.Ray{
			Origin: r3.Add(c.Position, geom.ApplyDir(rot, off)),
			Dir:    geom.ApplyDir(rot, r3.Vec{Z: -1}),
		}
	}

	h := math.Tan(geom.Deg2Rad(c.FOV) / 2)
	dir := r3.Vec{X: nx * h * aspect, Y: ny * h, Z: -1}
	return geom.Ray{Origin: c.Position, Dir: r3.Unit(geom.ApplyDir(rot, dir))}
}

// Rig holds the two cameras of one view.
type Rig struct {
	Persp Camera
	Ortho Camera
}

// NewRig returns the start-up cameras: a perspective camera above and in
// front of the origin tilted 45° down, and a top-down orthographic camera.
func NewRig() *Rig {
	return &Rig{
		Persp: Camera{
			Projection: Perspective,
			Position:   r3.Vec{Y: 30, Z: 30},
			Rotation:   geom.Euler{X: -math.Pi / 4, Order: geom.OrderYXZ},
			FOV:        DefaultFOV,
			Near:       0.1,
			Far:        1000,
		},
		Ortho: Camera{
			Projection: Orthographic,
			Position:   r3.Vec{Y: 30},
			Rotation:   geom.Euler{X: -math.Pi / 2, Order: geom.OrderYXZ},
			Near:       1,
			Far:        200,
			Size:       DefaultOrthoSize,
		},
	}
}

// Camera returns the camera for projection p.
func (r *Rig) Camera(p Projection) *Camera {
	if p == Orthographic {
		return &r.Ortho
	}
	return &r.Persp
}

// pan slides the camera in its heading plane. dx is screen-right, dy
// screen-down, both in pixels.
func (c *Camera) pan(dx, dy float64) {
	sin, cos := math.Sincos(c.Rotation.Y)
	c.Position.X -= dx*.1*cos + dy*.1*sin
	c.Position.Z -= -dx*.1*sin + dy*.1*cos
}

// orbit turns the camera. Orthographic cameras only turn around Y; the
// perspective pitch is clamped to straight up or down.
func (c *Camera) orbit(dx, dy float64) {
	c.Rotation.Y += dx / 100
	if c.Projection == Orthographic {
		return
	}
	c.Rotation.X = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Rotation.X+dy/100))
}

// zoom dollies a perspective camera along its view axis, or grows an
// orthographic frustum within [MinOrthoSize, maxSize].
func (c *Camera) zoom(dy, maxSize float64) {
	if c.Projection == Orthographic {
		c.Size = math.Max(MinOrthoSize, math.Min(maxSize, c.Size+dy*.1))
		return
	}
	back := geom.ApplyDir(geom.RotationMatrix(c.Rotation), r3.Vec{Z: dy * .1})
	c.Position = r3.Add(c.Position, back)
}
