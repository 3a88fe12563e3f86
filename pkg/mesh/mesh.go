package mesh

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/geom"
)

// Triangle holds three vertex indices in counter-clockwise order.
type Triangle [3]int

// FaceUV holds the texture coordinates of a triangle's three corners.
type FaceUV [3]r2.Vec

// UV is shorthand for a FaceUV built from six coordinates.
func UV(u0, v0, u1, v1, u2, v2 float64) FaceUV {
	return FaceUV{{X: u0, Y: v0}, {X: u1, Y: v1}, {X: u2, Y: v2}}
}

// Shading selects how normals are derived.
type Shading int

const (
	Smooth Shading = iota
	Flat
)

// String returns "smooth" or "flat".
func (s Shading) String() string {
	if s == Flat {
		return "flat"
	}
	return "smooth"
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

// Buffer is a render-ready triangle mesh.
type Buffer struct {
	Vertices []r3.Vec
	Faces    []Triangle
	UVs      []FaceUV
	Normals  [][3]r3.Vec // per face corner
	Shading  Shading
	Bounds   r3.Box
	Sphere   Sphere
}

// Empty reports whether the buffer has no triangles.
func (b *Buffer) Empty() bool { return b == nil || len(b.Faces) == 0 }

// Triangle returns the corner positions of face i.
func (b *Buffer) Triangle(i int) r3.Triangle {
	f := b.Faces[i]
	return r3.Triangle{b.Vertices[f[0]], b.Vertices[f[1]], b.Vertices[f[2]]}
}

// Transformed returns a copy of b with every vertex mapped through the
// affine matrix m. Bounds and normals are recomputed.
func (b *Buffer) Transformed(m mat.Matrix) *Buffer {
	if b == nil {
		return nil
	}
	vs := make([]r3.Vec, len(b.Vertices))
	for i, v := range b.Vertices {
		vs[i] = geom.Apply(m, v)
	}
	out := &Buffer{
		Vertices: vs,
		Faces:    append([]Triangle(nil), b.Faces...),
		UVs:      append([]FaceUV(nil), b.UVs...),
		Shading:  b.Shading,
	}
	out.finish()
	return out
}

// FromLists validates externally supplied lists and builds a buffer from
// them. uvs may be nil, in which case every corner gets (0,0).
func FromLists(vertices []r3.Vec, faces []Triangle, uvs []FaceUV, shading Shading) (*Buffer, error) {
	if uvs != nil && len(uvs) != len(faces) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "uv count %d does not match face count %d", len(uvs), len(faces))
	}
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "face %d references vertex %d of %d", i, idx, len(vertices))
			}
		}
	}
	b := &Builder{}
	b.AddVertices(vertices...)
	b.faces = append(b.faces, faces...)
	if uvs == nil {
		b.uvs = make([]FaceUV, len(faces))
	} else {
		b.uvs = append(b.uvs, uvs...)
	}
	return b.Build(shading), nil
}

func (b *Buffer) finish() {
	b.computeBounds()
	b.computeNormals()
}

func (b *Buffer) computeBounds() {
	if len(b.Vertices) == 0 {
		b.Bounds = r3.Box{}
		b.Sphere = Sphere{}
		return
	}
	lo, hi := b.Vertices[0], b.Vertices[0]
	for _, v := range b.Vertices[1:] {
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	b.Bounds = r3.Box{Min: lo, Max: hi}

	c := b.Bounds.Center()
	var far2 float64
	for _, v := range b.Vertices {
		far2 = math.Max(far2, geom.Dist2(c, v))
	}
	b.Sphere = Sphere{Center: c, Radius: math.Sqrt(far2)}
}

func (b *Buffer) computeNormals() {
	b.Normals = make([][3]r3.Vec, len(b.Faces))
	faceNormals := make([]r3.Vec, len(b.Faces))
	for i := range b.Faces {
		faceNormals[i] = b.Triangle(i).Normal()
	}

	if b.Shading == Flat {
		for i, n := range faceNormals {
			u := unit(n)
			b.Normals[i] = [3]r3.Vec{u, u, u}
		}
		return
	}

	acc := make([]r3.Vec, len(b.Vertices))
	for i, f := range b.Faces {
		for _, idx := range f {
			acc[idx] = r3.Add(acc[idx], faceNormals[i])
		}
	}
	for i, f := range b.Faces {
		b.Normals[i] = [3]r3.Vec{unit(acc[f[0]]), unit(acc[f[1]]), unit(acc[f[2]])}
	}
}

func unit(v r3.Vec) r3.Vec {
	if r3.Norm2(v) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(v)
}
