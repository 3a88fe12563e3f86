package shapes

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/mesh"
)

const cableSides = 8

// Cable returns an 8-sided cylinder of the given radius from the origin to
// to-from. The caller places the buffer at from.
func Cable(from, to r3.Vec, radius float64) *mesh.Buffer {
	dir := r3.Sub(to, from)
	length := r3.Norm(dir)
	w2 := 2 * math.Pi / cableSides

	var b mesh.Builder
	for y := 0; y < 2; y++ {
		for x := 0; x < cableSides; x++ {
			s, c := math.Sincos(float64(x) * w2)
			b.AddVertices(r3.Vec{X: s * radius, Y: c * radius, Z: float64(y) * length})
		}
	}
	for x := 0; x < cableSides; x++ {
		x2 := (x + 1) % cableSides
		b.AddFace(x, x+cableSides, x2+cableSides, mesh.UV(0, 0, 0, length, w2, length))
		b.AddFace(x, x2+cableSides, x2, mesh.UV(0, 0, w2, length, w2, 0))
	}

	rot := geom.FromZ(dir)
	b.Map(rot.Rotate)
	return b.Build(mesh.Smooth)
}

const jointSegments = 10

// Joint returns a UV sphere of the given radius centered on the origin.
func Joint(radius float64) *mesh.Buffer {
	var b mesh.Builder
	grid := make([][]int, jointSegments+1)
	for iy := 0; iy <= jointSegments; iy++ {
		v := float64(iy) / jointSegments
		grid[iy] = make([]int, jointSegments+1)
		for ix := 0; ix <= jointSegments; ix++ {
			u := float64(ix) / jointSegments
			grid[iy][ix] = b.AddVertices(r3.Vec{
				X: -radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: radius * math.Cos(v*math.Pi),
				Z: radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			})
		}
	}

	for iy := 0; iy < jointSegments; iy++ {
		v0, v1 := float64(iy)/jointSegments, float64(iy+1)/jointSegments
		for ix := 0; ix < jointSegments; ix++ {
			u0, u1 := float64(ix)/jointSegments, float64(ix+1)/jointSegments
			a, bb := grid[iy][ix+1], grid[iy][ix]
			c, d := grid[iy+1][ix], grid[iy+1][ix+1]
			if iy != 0 {
				b.AddFace(a, bb, d, mesh.UV(u1, 1-v0, u0, 1-v0, u1, 1-v1))
			}
			if iy != jointSegments-1 {
				b.AddFace(bb, c, d, mesh.UV(u0, 1-v0, u0, 1-v1, u1, 1-v1))
			}
		}
	}
	return b.Build(mesh.Smooth)
}
