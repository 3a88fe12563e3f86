package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/geom"
)

func quad() *Builder {
	var b Builder
	i := b.AddVertices(
		r3.Vec{X: -1, Y: 2, Z: 1}, r3.Vec{X: 1, Y: 2, Z: 1},
		r3.Vec{X: 1, Y: 2, Z: -1}, r3.Vec{X: -1, Y: 2, Z: -1},
	)
	b.AddFace(i, i+1, i+2, UV(0, 1, 1, 1, 1, 0))
	b.AddFace(i, i+2, i+3, UV(0, 1, 1, 0, 0, 0))
	return &b
}

func TestBuildBounds(t *testing.T) {
	buf := quad().Build(Flat)

	want := r3.Box{Min: r3.Vec{X: -1, Y: 2, Z: -1}, Max: r3.Vec{X: 1, Y: 2, Z: 1}}
	if buf.Bounds != want {
		t.Errorf("Bounds = %v, want %v", buf.Bounds, want)
	}
	if !geom.Equal(buf.Sphere.Center, r3.Vec{Y: 2}, 1e-12) {
		t.Errorf("Sphere.Center = %v, want (0,2,0)", buf.Sphere.Center)
	}
	if math.Abs(buf.Sphere.Radius-math.Sqrt2) > 1e-12 {
		t.Errorf("Sphere.Radius = %v, want %v", buf.Sphere.Radius, math.Sqrt2)
	}
}

func TestNormals(t *testing.T) {
	for _, sh := range []Shading{Flat, Smooth} {
		t.Run(sh.String(), func(t *testing.T) {
			buf := quad().Build(sh)
			if len(buf.Normals) != len(buf.Faces) {
				t.Fatalf("len(Normals) = %d, want %d", len(buf.Normals), len(buf.Faces))
			}
			for i, corners := range buf.Normals {
				for _, n := range corners {
					if !geom.Equal(n, r3.Vec{Y: 1}, 1e-12) {
						t.Errorf("face %d normal = %v, want +Y", i, n)
					}
				}
			}
		})
	}
}

func TestSmoothDiffersFromFlat(t *testing.T) {
	var b Builder
	b.AddBox(-1, 1, -1, 1, -1, 1, 0, 1, 0, 1)

	flat := b.Build(Flat)
	smooth := b.Build(Smooth)

	n := flat.Normals[0][0]
	if math.Abs(r3.Norm(n)-1) > 1e-12 {
		t.Errorf("flat normal not unit: %v", n)
	}
	s := smooth.Normals[0][0]
	if geom.Equal(s, n, 1e-9) {
		t.Errorf("smooth corner normal = %v, want it to blend neighbouring faces", s)
	}
	if math.Abs(r3.Norm(s)-1) > 1e-12 {
		t.Errorf("smooth normal not unit: %v", s)
	}
}

func TestAddBox(t *testing.T) {
	var b Builder
	b.AddVertices(r3.Vec{})
	b.AddBox(0, 2, 0, 1, 0, 3, 0, 1, 0, 1)
	buf := b.Build(Flat)

	if got := len(buf.Vertices); got != 9 {
		t.Errorf("len(Vertices) = %d, want 9", got)
	}
	if got := len(buf.Faces); got != 12 {
		t.Errorf("len(Faces) = %d, want 12", got)
	}
	for _, f := range buf.Faces {
		for _, idx := range f {
			if idx < 1 {
				t.Fatalf("box face %v references vertex added before the box", f)
			}
		}
	}
	if buf.Bounds.Max != (r3.Vec{X: 2, Y: 1, Z: 3}) {
		t.Errorf("Bounds.Max = %v", buf.Bounds.Max)
	}
	// every side normal points away from the box center
	c := buf.Bounds.Center()
	for i := range buf.Faces {
		tri := buf.Triangle(i)
		out := r3.Sub(tri.Centroid(), c)
		if r3.Dot(out, buf.Normals[i][0]) <= 0 {
			t.Errorf("face %d normal %v points inward", i, buf.Normals[i][0])
		}
	}
}

func TestFromLists(t *testing.T) {
	vs := []r3.Vec{{}, {X: 1}, {Z: 1}}

	buf, err := FromLists(vs, []Triangle{{0, 2, 1}}, nil, Smooth)
	if err != nil {
		t.Fatalf("FromLists() error = %v", err)
	}
	if len(buf.UVs) != 1 {
		t.Errorf("len(UVs) = %d, want 1", len(buf.UVs))
	}

	tests := []struct {
		name  string
		faces []Triangle
		uvs   []FaceUV
	}{
		{"index out of range", []Triangle{{0, 1, 3}}, nil},
		{"negative index", []Triangle{{-1, 1, 2}}, nil},
		{"uv count mismatch", []Triangle{{0, 1, 2}}, []FaceUV{{}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLists(vs, tt.faces, tt.uvs, Flat)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("FromLists() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestTransformed(t *testing.T) {
	buf := quad().Build(Flat)
	tr := geom.Identity()
	tr.Position = r3.Vec{X: 10}
	moved := buf.Transformed(tr.Matrix())

	if moved.Bounds.Min.X != 9 || moved.Bounds.Max.X != 11 {
		t.Errorf("Transformed bounds = %v, want x in [9,11]", moved.Bounds)
	}
	if buf.Bounds.Min.X != -1 {
		t.Error("Transformed() modified the source buffer")
	}
}

func TestEmpty(t *testing.T) {
	var b Builder
	buf := b.Build(Flat)
	if !buf.Empty() {
		t.Error("Empty() = false for a builder without faces")
	}
	if buf.Sphere.Radius != 0 {
		t.Errorf("Sphere.Radius = %v, want 0", buf.Sphere.Radius)
	}
}
