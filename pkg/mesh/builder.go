package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder accumulates vertices and faces. The zero value is ready to use.
type Builder struct {
	vertices []r3.Vec
	faces    []Triangle
	uvs      []FaceUV
}

// Len returns the number of vertices added so far.
func (b *Builder) Len() int { return len(b.vertices) }

// AddVertices appends vertices and returns the index of the first one.
func (b *Builder) AddVertices(vs ...r3.Vec) int {
	base := len(b.vertices)
	b.vertices = append(b.vertices, vs...)
	return base
}

// AddFace appends a triangle with its corner UVs.
func (b *Builder) AddFace(i, j, k int, uv FaceUV) {
	b.faces = append(b.faces, Triangle{i, j, k})
	b.uvs = append(b.uvs, uv)
}

// AddFaces appends triangles, each offset by base. A nil uvs slice gives
// every corner (0,0).
func (b *Builder) AddFaces(base int, faces []Triangle, uvs []FaceUV) {
	for i, f := range faces {
		var uv FaceUV
		if uvs != nil {
			uv = uvs[i]
		}
		b.AddFace(base+f[0], base+f[1], base+f[2], uv)
	}
}

// AddBox appends an axis-aligned box spanning [x1,x2]×[y1,y2]×[z1,z2].
// Side faces map u over [tu1,tu2] and v over [tv1,tv2]; top and bottom map
// both axes over [tu1,tu2].
func (b *Builder) AddBox(x1, x2, y1, y2, z1, z2, tu1, tu2, tv1, tv2 float64) {
	i := b.AddVertices(
		r3.Vec{X: x2, Y: y1, Z: z1}, r3.Vec{X: x1, Y: y1, Z: z1}, r3.Vec{X: x1, Y: y1, Z: z2}, r3.Vec{X: x2, Y: y1, Z: z2},
		r3.Vec{X: x2, Y: y2, Z: z1}, r3.Vec{X: x1, Y: y2, Z: z1}, r3.Vec{X: x1, Y: y2, Z: z2}, r3.Vec{X: x2, Y: y2, Z: z2},
	)
	sideA := UV(tu1, tv1, tu2, tv1, tu2, tv2)
	sideB := UV(tu1, tv1, tu2, tv2, tu1, tv2)
	for s := 0; s < 4; s++ {
		a, c := i+s, i+(s+1)%4
		b.AddFace(a, c, c+4, sideA)
		b.AddFace(a, c+4, a+4, sideB)
	}
	b.AddFace(i, i+2, i+1, UV(tu1, tu1, tu2, tu2, tu2, tu1))
	b.AddFace(i, i+3, i+2, UV(tu1, tu1, tu1, tu2, tu2, tu2))
	b.AddFace(i+4, i+5, i+6, UV(tu1, tu1, tu2, tu1, tu2, tu2))
	b.AddFace(i+4, i+6, i+7, UV(tu1, tu1, tu2, tu2, tu1, tu2))
}

// Translate moves every vertex added so far by d.
func (b *Builder) Translate(d r3.Vec) {
	for i := range b.vertices {
		b.vertices[i] = r3.Add(b.vertices[i], d)
	}
}

// Map replaces every vertex v added so far with fn(v).
func (b *Builder) Map(fn func(r3.Vec) r3.Vec) {
	for i := range b.vertices {
		b.vertices[i] = fn(b.vertices[i])
	}
}

// Bounds returns the bounding box of the vertices added so far.
func (b *Builder) Bounds() r3.Box {
	buf := Buffer{Vertices: b.vertices}
	buf.computeBounds()
	return buf.Bounds
}

// Build returns a render-ready buffer. The builder may be reused afterwards;
// the buffer does not alias its slices.
func (b *Builder) Build(shading Shading) *Buffer {
	buf := &Buffer{
		Vertices: append([]r3.Vec(nil), b.vertices...),
		Faces:    append([]Triangle(nil), b.faces...),
		UVs:      append([]FaceUV(nil), b.uvs...),
		Shading:  shading,
	}
	buf.finish()
	return buf
}

// Lists returns copies of the accumulated vertices, faces and UVs.
func (b *Builder) Lists() ([]r3.Vec, []Triangle, []FaceUV) {
	return append([]r3.Vec(nil), b.vertices...),
		append([]Triangle(nil), b.faces...),
		append([]FaceUV(nil), b.uvs...)
}
