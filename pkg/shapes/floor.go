package shapes

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/mesh"
	"github.com/matzehuels/netscene/pkg/scene"
)

// Skirt geometry.
const (
	skirtOutset    = .10
	skirtDrop      = .05
	floatThickness = .1
	columnInset    = .89
	columnHalf     = .1
)

// Floor returns the surfaces of a base of the given subtype. size holds
// width, height and depth; texScale the texture repetitions per unit along X
// and Z.
func Floor(sub scene.Subtype, size r3.Vec, texScale r2.Vec) Pair {
	w2, d2, h := size.X/2, size.Z/2, size.Y
	tu1, tv1 := size.X*texScale.X, size.Z*texScale.Y

	var top mesh.Builder
	top.AddVertices(
		r3.Vec{X: -w2, Y: h, Z: d2}, r3.Vec{X: w2, Y: h, Z: d2},
		r3.Vec{X: w2, Y: h, Z: -d2}, r3.Vec{X: -w2, Y: h, Z: -d2},
	)
	top.AddFace(0, 1, 2, mesh.UV(0, tv1, tu1, tv1, tu1, 0))
	top.AddFace(0, 2, 3, mesh.UV(0, tv1, tu1, 0, 0, 0))

	var edge mesh.Builder
	switch sub {
	case scene.SubtypeNone:
	case scene.SubtypeFloat:
		skirt(&edge, w2, h, h-floatThickness, d2, tu1, tv1)
	case scene.SubtypePlatform:
		skirt(&edge, w2, h, h-floatThickness, d2, tu1, tv1)
		columns(&edge, w2, h, d2)
	default:
		skirt(&edge, w2, h, 0, d2, tu1, tv1)
	}

	return Pair{Front: top.Build(mesh.Flat), Detail: edge.Build(mesh.Flat)}
}

// skirt adds a bevelled rim from the top edge at h down to b.
func skirt(g *mesh.Builder, w2, h, b, d2, tu1, tv1 float64) {
	ow, od := w2+skirtOutset, d2+skirtOutset
	g.AddVertices(
		r3.Vec{X: -w2, Y: h, Z: d2}, r3.Vec{X: w2, Y: h, Z: d2},
		r3.Vec{X: w2, Y: h, Z: -d2}, r3.Vec{X: -w2, Y: h, Z: -d2},

		r3.Vec{X: -ow, Y: h - skirtDrop, Z: od}, r3.Vec{X: ow, Y: h - skirtDrop, Z: od},
		r3.Vec{X: ow, Y: h - skirtDrop, Z: -od}, r3.Vec{X: -ow, Y: h - skirtDrop, Z: -od},

		r3.Vec{X: -ow, Y: b, Z: od}, r3.Vec{X: ow, Y: b, Z: od},
		r3.Vec{X: ow, Y: b, Z: -od}, r3.Vec{X: -ow, Y: b, Z: -od},
	)

	const tf = .5
	for i := 0; i < 8; i += 4 {
		tv := .1
		if i > 0 {
			tv = h - b
		}
		for x := 0; x < 4; x++ {
			x1, x2 := i+x, i+(x+1)%4
			// even sides run along X, odd sides along Z
			span := w2
			if x%2 == 1 {
				span = d2
			}
			g.AddFace(x1, 4+x2, x2, mesh.UV(0, tv*tf, span, 0, span, tv*tf))
			g.AddFace(x1, 4+x1, 4+x2, mesh.UV(0, tv*tf, 0, 0, span, 0))
		}
	}
	g.AddFace(8, 10, 9, mesh.UV(0, 0, tu1, tv1, 0, tv1))
	g.AddFace(8, 11, 10, mesh.UV(0, 0, tu1, 0, tu1, tv1))
}

// columns adds four corner supports reaching from the ground to the skirt.
func columns(g *mesh.Builder, w2, h, d2 float64) {
	cx, cw := w2*columnInset, w2*columnHalf
	cz, cd := d2*columnInset, d2*columnHalf
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			x, z := sx*cx, sz*cz
			g.AddBox(x-cw, x+cw, 0, h-floatThickness, z-cd, z+cd, 0, cw, 0, h*.5)
		}
	}
}
