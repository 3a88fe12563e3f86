package route

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/scene"
)

func TestFreeform(t *testing.T) {
	a := r3.Vec{X: 0, Y: 1, Z: 0}
	b := r3.Vec{X: 4, Y: 1, Z: 2}

	tests := []struct {
		name     string
		start    r3.Vec
		joints   []r3.Vec
		segments int
		nJoints  int
	}{
		{"direct", a, nil, 1, 0},
		{"one joint", a, []r3.Vec{{X: 4, Y: 1}}, 2, 1},
		{"two joints", a, []r3.Vec{{X: 2, Y: 3}, {X: 4, Y: 3}}, 3, 2},
		{"joint on start", a, []r3.Vec{a}, 1, 1},
		{"joint on end", a, []r3.Vec{b}, 1, 1},
		{"degenerate", b, nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Freeform(tt.start, b, tt.joints)
			if len(p.Segments) != tt.segments {
				t.Errorf("segments = %d, want %d", len(p.Segments), tt.segments)
			}
			if len(p.Joints) != tt.nJoints {
				t.Errorf("joints = %d, want %d", len(p.Joints), tt.nJoints)
			}
			for i, s := range p.Segments {
				if s.Length() == 0 {
					t.Errorf("segment %d has zero length", i)
				}
			}
			if n := len(p.Segments); n > 0 && (p.Segments[0].From != tt.start || p.Segments[n-1].To != b) {
				t.Errorf("path %v does not run from start to end", p.Points())
			}
		})
	}
}

func TestOrthogonal(t *testing.T) {
	start := r3.Vec{X: 0, Y: 0, Z: 0}
	end := r3.Vec{X: 3, Y: 2, Z: 1}

	tests := []struct {
		name   string
		end    r3.Vec
		order  string
		axes   string
		joints int
	}{
		{"XZ all differ", end, "XZ", "XZY", 2},
		{"XY all differ", end, "XY", "XYZ", 2},
		{"lower case", end, "zy", "ZYX", 2},
		{"third char ignored", end, "XYZ", "XYZ", 2},
		{"unknown chars skipped", end, "QX", "X?", 1},
		{"X equal", r3.Vec{Y: 2, Z: 1}, "XY", "YZ", 1},
		{"done after two", r3.Vec{X: 3, Y: 2}, "XY", "XY", 1},
		{"single axis", r3.Vec{X: 3}, "XY", "X", 0},
		{"empty order", end, "", "?", 0},
		{"same point", start, "XY", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Orthogonal(start, tt.end, tt.order)
			var axes string
			for _, s := range p.Segments {
				if a, ok := s.Axis(); ok {
					axes += a.String()
				} else {
					axes += "?"
				}
			}
			if axes != tt.axes {
				t.Errorf("axes = %q, want %q", axes, tt.axes)
			}
			if len(p.Joints) != tt.joints {
				t.Errorf("joints = %d, want %d", len(p.Joints), tt.joints)
			}
			if n := len(p.Segments); n > 0 && p.Segments[n-1].To != tt.end {
				t.Errorf("last point = %v, want %v", p.Segments[n-1].To, tt.end)
			}
			for i := 1; i < len(p.Segments); i++ {
				if p.Segments[i].From != p.Segments[i-1].To {
					t.Errorf("segment %d is not connected", i)
				}
			}
		})
	}
}

func TestOrthogonalJointsAtCorners(t *testing.T) {
	p := Orthogonal(r3.Vec{}, r3.Vec{X: 3, Y: 2, Z: 1}, "XZ")
	want := []r3.Vec{{X: 3}, {X: 3, Z: 1}}
	for i, j := range p.Joints {
		if j != want[i] {
			t.Errorf("joint %d = %v, want %v", i, j, want[i])
		}
	}
}

func ExampleOrthogonal() {
	p := Orthogonal(r3.Vec{}, r3.Vec{X: 3, Y: 2, Z: 1}, "XZ")
	for _, pt := range p.Points() {
		fmt.Println(pt.X, pt.Y, pt.Z)
	}
	fmt.Println(p.Length())
	// Output:
	// 0 0 0
	// 3 0 0
	// 3 0 1
	// 3 2 1
	// 6
}

// topology: b1 at (1,0,0) holding d1 at local (0,1,0) and d2 at (2,1,0).
func topology(t *testing.T) (*scene.Forest, *scene.Node) {
	t.Helper()
	f := scene.NewForest(scene.ViewL2)
	mk := func(kind scene.Kind, id string, attrs scene.Attributes) *scene.Node {
		return scene.NewNode(kind, id, scene.RoleEntity, &scene.Entity{ID: id, Kind: kind, Attrs: attrs})
	}
	b1 := mk(scene.KindBase, "b1", &scene.BaseAttrs{})
	b1.Local.Position = r3.Vec{X: 1}
	d1 := mk(scene.KindDevice, "d1", &scene.DeviceAttrs{})
	d1.Local.Position = r3.Vec{Y: 1}
	d2 := mk(scene.KindDevice, "d2", &scene.DeviceAttrs{})
	d2.Local.Position = r3.Vec{X: 2, Y: 1}
	l1 := mk(scene.KindLink, "l1", &scene.LinkAttrs{
		Endpoints: [2]scene.Endpoint{{DeviceID: "d1"}, {DeviceID: "d2"}},
		Color:     0xff0000,
		Weight:    .05,
		Height:    .5,
	})
	for _, step := range []struct{ parent, n *scene.Node }{{nil, b1}, {b1, d1}, {b1, d2}, {nil, l1}} {
		if err := f.Insert(step.parent, step.n); err != nil {
			t.Fatal(err)
		}
	}
	return f, l1
}

func TestRouterUpdate(t *testing.T) {
	f, l1 := topology(t)
	r := NewRouter(nil)
	r.Update(f, l1)

	segs := l1.Parts(scene.RoleSegment)
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	if got, want := segs[0].Local.Position, (r3.Vec{X: 1, Y: 1.5}); got != want {
		t.Errorf("segment origin = %v, want %v", got, want)
	}
	// the cable is rotated into the segment direction inside its buffer
	if got := segs[0].Mesh.Bounds.Max.X; math.Abs(got-2) > 1e-9 {
		t.Errorf("segment extent along X = %v, want 2", got)
	}
	if got := segs[0].LocalToWorld(r3.Vec{X: 2}); !geom.Equal(got, r3.Vec{X: 3, Y: 1.5}, 1e-9) {
		t.Errorf("segment end = %v, want (3, 1.5, 0)", got)
	}
	if segs[0].Mesh.Empty() || segs[0].Material.Color != 0xff0000 {
		t.Error("segment has no mesh or wrong material")
	}

	// Re-routing replaces the previous parts.
	a := l1.Entity.LinkAttrs()
	a.Routing = scene.RoutingOrthogonal
	a.Order = "XZ"
	f.Find(scene.KindDevice, "d2").Local.Position = r3.Vec{X: 2, Y: 1, Z: 3}
	r.Update(f, l1)
	if got := len(l1.Parts(scene.RoleSegment)); got != 2 {
		t.Errorf("segments after re-route = %d, want 2", got)
	}
	if got := len(l1.Parts(scene.RoleJoint)); got != 1 {
		t.Errorf("joints after re-route = %d, want 1", got)
	}
	for i, s := range l1.Parts(scene.RoleSegment) {
		if s.Index != i || s.ID != "l1" || !s.Tagged() {
			t.Errorf("segment %d tagged %q index %d", i, s.ID, s.Index)
		}
	}

	a.Color = 0x00ff00
	r.Recolor(l1)
	for _, c := range l1.Children() {
		if c.Material.Color != 0x00ff00 {
			t.Errorf("part %s not recolored", c.Role)
		}
	}
}

func TestRouterMissingEndpoint(t *testing.T) {
	f, l1 := topology(t)
	r := NewRouter(nil)
	r.Update(f, l1)

	f.Remove(f.Find(scene.KindDevice, "d2"))
	r.Update(f, l1)
	if n := len(l1.Children()); n != 0 {
		t.Errorf("children = %d, want 0 after endpoint removal", n)
	}
	if _, _, ok := r.Anchors(f, l1.Entity.LinkAttrs()); ok {
		t.Error("Anchors() should fail for a missing device")
	}
}
