package edit

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/observability"
	"github.com/matzehuels/netscene/pkg/route"
	"github.com/matzehuels/netscene/pkg/scene"
)

const L2 = scene.ViewL2

// scenario builds b1 (4x1x4 at the origin) holding d1 (router, at 0,0,0)
// and d2 (switch, at 2,0,0) joined by freeform link l1 at height .5.
func scenario(t *testing.T) *Editor {
	t.Helper()
	ed := New(scene.New())
	mustAdd(t)(ed.AddBase(L2, BaseSpec{ID: "b1", Size: r3.Vec{X: 4, Y: 1, Z: 4}}))
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d1", Base: "b1", DeviceAttrs: scene.DeviceAttrs{Type: "router", Name: "core1"}}))
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d2", Base: "b1", Position: r3.Vec{X: 2}, DeviceAttrs: scene.DeviceAttrs{Type: "switch"}}))
	mustAdd(t)(ed.AddLink(L2, LinkSpec{ID: "l1", LinkAttrs: scene.LinkAttrs{
		Endpoints: [2]scene.Endpoint{{DeviceID: "d1"}, {DeviceID: "d2"}},
		Color:     0x336699,
		Height:    .5,
	}}))
	return ed
}

func mustAdd(t *testing.T) func(string, error) {
	t.Helper()
	return func(_ string, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
}

func path(t *testing.T, ed *Editor, id string) route.Path {
	t.Helper()
	n := ed.Scene().Find(L2, scene.KindLink, id)
	if n == nil {
		t.Fatalf("link %s not found", id)
	}
	p, ok := ed.Router().Path(ed.Scene().L2, n)
	if !ok {
		t.Fatalf("link %s has unresolved endpoints", id)
	}
	return p
}

func TestScenarioSingleSegment(t *testing.T) {
	ed := scenario(t)
	l1 := ed.Scene().Find(L2, scene.KindLink, "l1")

	segs := l1.Parts(scene.RoleSegment)
	if len(segs) != 1 || len(l1.Parts(scene.RoleJoint)) != 0 {
		t.Fatalf("parts = %d segments, %d joints; want 1, 0", len(segs), len(l1.Parts(scene.RoleJoint)))
	}
	if got, want := segs[0].Local.Position, (r3.Vec{Y: 1.5}); !geom.Equal(got, want, 1e-9) {
		t.Errorf("segment start = %v, want %v", got, want)
	}
	if got := segs[0].Mesh.Bounds.Max.X; math.Abs(got-2) > 1e-9 {
		t.Errorf("segment reaches X = %v, want 2", got)
	}
	p := path(t, ed, "l1")
	if got, want := p.Segments[0].To, (r3.Vec{X: 2, Y: 1.5}); !geom.Equal(got, want, 1e-9) {
		t.Errorf("segment end = %v, want %v", got, want)
	}
}

func ExampleEditor() {
	ed := New(scene.New())
	ed.AddBase(scene.ViewL2, BaseSpec{ID: "b1", Size: r3.Vec{X: 4, Y: 1, Z: 4}})
	ed.AddDevice(scene.ViewL2, DeviceSpec{ID: "d1", Base: "b1"})
	ed.AddDevice(scene.ViewL2, DeviceSpec{ID: "d2", Base: "b1", Position: r3.Vec{X: 2}})
	ed.AddLink(scene.ViewL2, LinkSpec{ID: "l1", LinkAttrs: scene.LinkAttrs{
		Endpoints: [2]scene.Endpoint{{DeviceID: "d1"}, {DeviceID: "d2"}},
		Height:    .5,
	}})

	ed.Move(scene.ViewL2, scene.KindDevice, "d2", MoveOpts{Z: Float(1.2), Snap: true})

	n := ed.Scene().Find(scene.ViewL2, scene.KindLink, "l1")
	p, _ := ed.Router().Path(ed.Scene().L2, n)
	for _, pt := range p.Points() {
		fmt.Println(pt.X, pt.Y, pt.Z)
	}
	// Output:
	// 0 1.5 0
	// 2 1.5 1
}

func TestGridSnap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{.24, 0},
		{.25, .5}, // ties round up
		{.26, .5},
		{-.25, 0},
		{-.26, -.5},
		{.74, .5},
		{.75, 1},
		{3.1, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			ed := scenario(t)
			ed.Move(L2, scene.KindDevice, "d2", MoveOpts{X: Float(tt.in), Z: Float(tt.in), Snap: true})
			pl, _ := ed.Position(L2, scene.KindDevice, "d2")
			if pl.Position.X != tt.want || pl.Position.Z != tt.want {
				t.Errorf("snapped (%v, %v), want %v", pl.Position.X, pl.Position.Z, tt.want)
			}
			if r := math.Mod(pl.Position.X, .5); r != 0 {
				t.Errorf("%v is not a multiple of the grid", pl.Position.X)
			}
		})
	}
}

func TestSnapRequiresActiveGrid(t *testing.T) {
	ed := scenario(t)
	g := ed.Settings().Grid
	g.Active = false
	ed.SetGrid(g)

	ed.Move(L2, scene.KindDevice, "d2", MoveOpts{X: Float(.3), Snap: true})
	if pl, _ := ed.Position(L2, scene.KindDevice, "d2"); pl.Position.X != .3 {
		t.Errorf("X = %v, want .3 with the grid off", pl.Position.X)
	}
}

func TestMoveOnlySuppliedCoordinates(t *testing.T) {
	ed := scenario(t)
	ed.Move(L2, scene.KindDevice, "d2", MoveOpts{Y: Float(.25)})
	pl, _ := ed.Position(L2, scene.KindDevice, "d2")
	if want := (r3.Vec{X: 2, Y: .25}); pl.Position != want {
		t.Errorf("Position = %v, want %v", pl.Position, want)
	}
	if want := (r3.Vec{X: 2, Y: 1.25}); pl.Local != want {
		t.Errorf("Local = %v, want %v", pl.Local, want)
	}
}

func TestRoundTripAttach(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddBase(L2, BaseSpec{ID: "b2", Position: r3.Vec{X: 10}, Size: r3.Vec{X: 4, Y: 2, Z: 4}}))

	ed.Move(L2, scene.KindDevice, "d1", MoveOpts{X: Float(1), Y: Float(.5), Base: String("b2")})

	pl, ok := ed.Position(L2, scene.KindDevice, "d1")
	if !ok {
		t.Fatal("d1 not found")
	}
	if pl.Base != "b2" {
		t.Errorf("Base = %q, want b2", pl.Base)
	}
	if got, want := pl.Position.Y+2, pl.World.Y; got != want {
		t.Errorf("offset + base height = %v, world Y = %v", got, want)
	}
	if want := (r3.Vec{X: 11, Y: 2.5}); !geom.Equal(pl.World, want, 1e-9) {
		t.Errorf("World = %v, want %v", pl.World, want)
	}
	if n := ed.Scene().Find(L2, scene.KindDevice, "d1"); n.Parent() != ed.Scene().Find(L2, scene.KindBase, "b2") {
		t.Error("d1 not re-parented")
	}
	if got := path(t, ed, "l1").Segments[0].From; !geom.Equal(got, r3.Vec{X: 11, Y: 3}, 1e-9) {
		t.Errorf("link start = %v, want (11, 3, 0)", got)
	}

	// unknown target base keeps the parent and still applies the position
	ed.Move(L2, scene.KindDevice, "d1", MoveOpts{X: Float(0), Base: String("nope")})
	if pl, _ := ed.Position(L2, scene.KindDevice, "d1"); pl.Base != "b2" || pl.Position.X != 0 {
		t.Errorf("placement = %+v", pl)
	}
}

func TestTextReattachKeepsOffset(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddBase(L2, BaseSpec{ID: "b2", Size: r3.Vec{X: 2, Y: 3, Z: 2}}))
	mustAdd(t)(ed.AddText(L2, TextSpec{ID: "t1", Base: "b1", Position: r3.Vec{Y: .2}, TextAttrs: scene.TextAttrs{Text: "rack"}}))

	ed.Move(L2, scene.KindText, "t1", MoveOpts{Base: String("b2")})
	pl, _ := ed.Position(L2, scene.KindText, "t1")
	if math.Abs(pl.Local.Y-3.2) > 1e-9 {
		t.Errorf("text local Y = %v, want 3.2", pl.Local.Y)
	}
	n := ed.Scene().Find(L2, scene.KindText, "t1")
	if n.Local.Rotation.Order != geom.OrderYXZ || n.Mesh.Empty() {
		t.Error("text should use YXZ order and carry a mesh")
	}
}

func TestLinkCascade(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d3", Base: "b1", Position: r3.Vec{Z: 1}}))
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d4", Base: "b1", Position: r3.Vec{X: 1, Z: 1}}))
	mustAdd(t)(ed.AddLink(L2, LinkSpec{ID: "l2", LinkAttrs: scene.LinkAttrs{
		Endpoints: [2]scene.Endpoint{{DeviceID: "d3"}, {DeviceID: "d4"}},
	}}))

	before := path(t, ed, "l1").Segments[0]
	other := path(t, ed, "l2")
	d2, _ := ed.Position(L2, scene.KindDevice, "d2")
	l2part := ed.Scene().Find(L2, scene.KindLink, "l2").Parts(scene.RoleSegment)[0]

	ed.Move(L2, scene.KindDevice, "d1", MoveOpts{X: Float(5)})

	after := path(t, ed, "l1").Segments[0]
	if got := after.From.X - before.From.X; got != 5 {
		t.Errorf("first segment start moved by %v on X, want 5", got)
	}
	if after.From.Y != before.From.Y || after.From.Z != before.From.Z || after.To != before.To {
		t.Errorf("segment %v -> %v changed beyond X", before, after)
	}
	if got := ed.Scene().Find(L2, scene.KindLink, "l1").Parts(scene.RoleSegment)[0].Local.Position; got != after.From {
		t.Errorf("segment geometry not rebuilt: %v", got)
	}
	if p := path(t, ed, "l2"); p.Segments[0] != other.Segments[0] {
		t.Error("unrelated link path changed")
	}
	if ed.Scene().Find(L2, scene.KindLink, "l2").Parts(scene.RoleSegment)[0] != l2part {
		t.Error("unrelated link geometry was rebuilt")
	}
	if got, _ := ed.Position(L2, scene.KindDevice, "d2"); got != d2 {
		t.Error("unrelated device moved")
	}
}

func TestBaseMoveReroutes(t *testing.T) {
	ed := scenario(t)
	ed.Move(L2, scene.KindBase, "b1", MoveOpts{X: Float(3), Z: Float(-1)})
	p := path(t, ed, "l1")
	if want := (r3.Vec{X: 3, Y: 1.5, Z: -1}); !geom.Equal(p.Segments[0].From, want, 1e-9) {
		t.Errorf("link start = %v, want %v", p.Segments[0].From, want)
	}
	seg := ed.Scene().Find(L2, scene.KindLink, "l1").Parts(scene.RoleSegment)[0]
	if !geom.Equal(seg.Local.Position, p.Segments[0].From, 1e-9) {
		t.Error("link geometry not rebuilt after base move")
	}

	ed.Rotate(L2, scene.KindBase, "b1", RotateOpts{Y: Float(math.Pi)})
	p = path(t, ed, "l1")
	if want := (r3.Vec{X: 1, Y: 1.5, Z: -1}); !geom.Equal(p.Segments[0].To, want, 1e-9) {
		t.Errorf("link end after rotation = %v, want %v", p.Segments[0].To, want)
	}
}

func TestOrthogonalXZ(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d3", Base: "b1", Position: r3.Vec{X: 1.5, Y: .5, Z: 1}}))
	mustAdd(t)(ed.AddLink(L2, LinkSpec{ID: "l2", LinkAttrs: scene.LinkAttrs{
		Endpoints: [2]scene.Endpoint{{DeviceID: "d1"}, {DeviceID: "d3"}},
		Routing:   scene.RoutingOrthogonal,
		Order:     "XZ",
	}}))

	p := path(t, ed, "l2")
	if len(p.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(p.Segments))
	}
	for i, want := range []geom.Axis{geom.AxisX, geom.AxisZ, geom.AxisY} {
		if a, ok := p.Segments[i].Axis(); !ok || a != want {
			t.Errorf("segment %d runs along %v (%v), want %v", i, a, ok, want)
		}
	}
	n := ed.Scene().Find(L2, scene.KindLink, "l2")
	if len(n.Parts(scene.RoleSegment)) != 3 || len(n.Parts(scene.RoleJoint)) != 2 {
		t.Errorf("parts = %d segments, %d joints", len(n.Parts(scene.RoleSegment)), len(n.Parts(scene.RoleJoint)))
	}
}

func TestResizeBase(t *testing.T) {
	ed := scenario(t)
	d2, _ := ed.Position(L2, scene.KindDevice, "d2")

	ed.Resize(L2, scene.KindBase, "b1", ResizeOpts{X: Float(8), Snap: true})

	size, _ := ed.Size(L2, scene.KindBase, "b1")
	if size.X != 8 {
		t.Errorf("sx = %v, want 8", size.X)
	}
	if got, _ := ed.Position(L2, scene.KindDevice, "d2"); got.World.X != d2.World.X {
		t.Errorf("d2 world X = %v, want %v", got.World.X, d2.World.X)
	}
	front := ed.Scene().Find(L2, scene.KindBase, "b1").Part(scene.RoleFront)
	if got := front.Mesh.Bounds.Max.X; math.Abs(got-4) > 1e-9 {
		t.Errorf("floor half extent = %v, want 4", got)
	}
}

func TestResizeBaseClamp(t *testing.T) {
	tests := []struct {
		name string
		opts ResizeOpts
		want r3.Vec
	}{
		{"height floor", ResizeOpts{Y: Float(.01)}, r3.Vec{X: 4, Y: .5, Z: 4}},
		{"height floor snapped", ResizeOpts{Y: Float(.01), Snap: true}, r3.Vec{X: 4, Y: .5, Z: 4}},
		{"width floor", ResizeOpts{X: Float(.2), Z: Float(-3)}, r3.Vec{X: 1, Y: 1, Z: 1}},
		{"snap", ResizeOpts{X: Float(5.1), Y: Float(2.13), Snap: true}, r3.Vec{X: 5, Y: 2.25, Z: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := scenario(t)
			ed.Resize(L2, scene.KindBase, "b1", tt.opts)
			if got, _ := ed.Size(L2, scene.KindBase, "b1"); got != tt.want {
				t.Errorf("size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResizeBaseLiftsChildren(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddText(L2, TextSpec{ID: "t1", Base: "b1", Position: r3.Vec{Y: .25}, TextAttrs: scene.TextAttrs{Text: "A"}}))
	mustAdd(t)(ed.AddSymbol(L2, SymbolSpec{ID: "s1", Base: "b1", SymbolAttrs: scene.SymbolAttrs{Type: "F"}}))

	ed.Resize(L2, scene.KindBase, "b1", ResizeOpts{Y: Float(2)})

	for _, tt := range []struct {
		kind scene.Kind
		id   string
		want float64
	}{
		{scene.KindDevice, "d1", 2},
		{scene.KindText, "t1", 2.25},
		{scene.KindSymbol, "s1", 2},
	} {
		if pl, _ := ed.Position(L2, tt.kind, tt.id); pl.World.Y != tt.want {
			t.Errorf("%s world Y = %v, want %v", tt.id, pl.World.Y, tt.want)
		}
	}
	if got := path(t, ed, "l1").Segments[0].From.Y; got != 2.5 {
		t.Errorf("link start Y = %v, want 2.5", got)
	}
}

func TestResizeDevice(t *testing.T) {
	ed := scenario(t)
	ed.Resize(L2, scene.KindDevice, "d2", ResizeOpts{X: Float(.05), Y: Float(2), Z: Float(1.5)})
	if got, _ := ed.Size(L2, scene.KindDevice, "d2"); got != (r3.Vec{X: 1, Y: 2, Z: 1.5}) {
		t.Errorf("size = %v, want (1, 2, 1.5)", got)
	}
	front := ed.Scene().Find(L2, scene.KindDevice, "d2").Part(scene.RoleFront)
	// switch bodies are .4 of the nominal height
	if got := front.Mesh.Bounds.Max.Y; math.Abs(got-.8) > 1e-9 {
		t.Errorf("body height = %v, want .8", got)
	}

	ed.Resize(L2, scene.KindDevice, "d1", ResizeOpts{Y: Float(3)})
	d1 := ed.Scene().Find(L2, scene.KindDevice, "d1")
	label := d1.Part(scene.RoleLabel)
	if label == nil {
		t.Fatal("label missing after resize")
	}
	if want := devicePairTop(d1) + .5; math.Abs(label.Local.Position.Y-want) > 1e-9 {
		t.Errorf("label Y = %v, want %v", label.Local.Position.Y, want)
	}

	// texts have no size
	mustAdd(t)(ed.AddText(L2, TextSpec{ID: "t1", Base: "b1", TextAttrs: scene.TextAttrs{Text: "x"}}))
	ed.Resize(L2, scene.KindText, "t1", ResizeOpts{X: Float(4)})
	if got, _ := ed.Size(L2, scene.KindText, "t1"); got.X != 1 {
		t.Errorf("text size = %v", got)
	}
}

func devicePairTop(n *scene.Node) float64 {
	p := devicePair(n)
	return math.Max(p.Front.Bounds.Max.Y, p.Detail.Bounds.Max.Y)
}

func TestRotate(t *testing.T) {
	step := math.Pi / 12
	tests := []struct {
		name string
		opts RotateOpts
		want r3.Vec
	}{
		{"exact", RotateOpts{Y: Float(.3)}, r3.Vec{Y: .3}},
		{"snap", RotateOpts{Y: Float(.3), Snap: true}, r3.Vec{Y: step}},
		{"snap up", RotateOpts{X: Float(.4), Snap: true}, r3.Vec{X: 2 * step}},
		{"only supplied", RotateOpts{Z: Float(1)}, r3.Vec{Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := scenario(t)
			ed.Rotate(L2, scene.KindDevice, "d2", tt.opts)
			got, _ := ed.Rotation(L2, scene.KindDevice, "d2")
			if !geom.Equal(got, tt.want, 1e-12) {
				t.Errorf("rotation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ed := scenario(t)
	ed.Delete(L2, scene.KindDevice, "d1")

	f := ed.Scene().L2
	if f.Find(scene.KindDevice, "d1") != nil || f.Find(scene.KindLink, "l1") != nil {
		t.Fatal("device or its link survived deletion")
	}
	n, roots := f.Len(), len(f.Roots())

	ed.Scene().ClearDirty()
	ed.Delete(L2, scene.KindDevice, "d1")
	if f.Len() != n || len(f.Roots()) != roots {
		t.Error("second delete changed the scene")
	}
	if ed.Scene().Dirty() {
		t.Error("deleting an absent entity marked the scene dirty")
	}
}

func TestDeleteBaseCascades(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddBase(L2, BaseSpec{ID: "b2", Position: r3.Vec{X: 10}}))
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d3", Base: "b2"}))
	mustAdd(t)(ed.AddLink(L2, LinkSpec{ID: "l2", LinkAttrs: scene.LinkAttrs{
		Endpoints: [2]scene.Endpoint{{DeviceID: "d2"}, {DeviceID: "d3"}},
	}}))

	ed.Delete(L2, scene.KindBase, "b1")

	f := ed.Scene().L2
	for _, k := range []struct {
		kind scene.Kind
		id   string
	}{{scene.KindBase, "b1"}, {scene.KindDevice, "d1"}, {scene.KindDevice, "d2"}, {scene.KindLink, "l1"}, {scene.KindLink, "l2"}} {
		if f.Find(k.kind, k.id) != nil {
			t.Errorf("%s %s survived", k.kind, k.id)
		}
	}
	if f.Find(scene.KindDevice, "d3") == nil {
		t.Error("device on another base was deleted")
	}
}

func TestNotFoundIsNoop(t *testing.T) {
	ed := scenario(t)
	ed.Scene().ClearDirty()

	ed.Move(L2, scene.KindDevice, "ghost", MoveOpts{X: Float(1)})
	ed.Rotate(L2, scene.KindBase, "ghost", RotateOpts{Y: Float(1)})
	ed.Resize(L2, scene.KindBase, "ghost", ResizeOpts{X: Float(2)})
	ed.ConfigureLink(L2, "ghost", LinkConfig{})
	ed.InsertJoint(L2, "ghost", 0, r3.Vec{})
	ed.Move("L9", scene.KindDevice, "d1", MoveOpts{X: Float(1)})

	if ed.Scene().Dirty() {
		t.Error("edits on missing entities marked the scene dirty")
	}
	if _, ok := ed.Position(L2, scene.KindDevice, "ghost"); ok {
		t.Error("Position() found a missing entity")
	}
	if ed.Entity(L2, scene.KindDevice, "ghost") != nil {
		t.Error("Entity() found a missing entity")
	}
}

func TestJoints(t *testing.T) {
	ed := scenario(t)
	l1 := ed.Scene().Find(L2, scene.KindLink, "l1")
	joints := func() []r3.Vec { return l1.Entity.LinkAttrs().Joints }

	ed.InsertJoint(L2, "l1", 0, r3.Vec{X: 1, Y: 3})
	ed.InsertJoint(L2, "l1", 99, r3.Vec{X: 2, Y: 3})
	ed.InsertJoint(L2, "l1", 1, r3.Vec{X: 1.5, Y: 4})
	want := []r3.Vec{{X: 1, Y: 3}, {X: 1.5, Y: 4}, {X: 2, Y: 3}}
	if len(joints()) != 3 {
		t.Fatalf("joints = %v", joints())
	}
	for i := range want {
		if joints()[i] != want[i] {
			t.Errorf("joint %d = %v, want %v", i, joints()[i], want[i])
		}
	}
	if len(l1.Parts(scene.RoleSegment)) != 4 || len(l1.Parts(scene.RoleJoint)) != 3 {
		t.Errorf("parts = %d segments, %d joints", len(l1.Parts(scene.RoleSegment)), len(l1.Parts(scene.RoleJoint)))
	}

	ed.MoveJoint(L2, "l1", 1, r3.Vec{X: 1.3, Y: 4, Z: .2}, true)
	if got := joints()[1]; got != (r3.Vec{X: 1.5, Y: 4}) {
		t.Errorf("moved joint = %v, want snapped (1.5, 4, 0)", got)
	}

	ed.RemoveJoint(L2, "l1", 7)
	ed.RemoveJoint(L2, "l1", -1)
	if len(joints()) != 3 {
		t.Error("out-of-range removal changed the joints")
	}
	ed.RemoveJoint(L2, "l1", 0)
	if len(joints()) != 2 || joints()[0] != (r3.Vec{X: 1.5, Y: 4}) {
		t.Errorf("joints after removal = %v", joints())
	}
	if got := len(l1.Parts(scene.RoleJoint)); got != 2 {
		t.Errorf("joint spheres = %d, want 2", got)
	}
}

func TestConfigureLink(t *testing.T) {
	ed := scenario(t)
	l1 := ed.Scene().Find(L2, scene.KindLink, "l1")
	seg := l1.Parts(scene.RoleSegment)[0]

	cfg := LinkConfig{Routing: scene.RoutingFreeform, Color: 0xff0000, Height: .5}
	ed.ConfigureLink(L2, "l1", cfg)
	if l1.Parts(scene.RoleSegment)[0] != seg {
		t.Error("color change rebuilt the geometry")
	}
	if seg.Material.Color != 0xff0000 {
		t.Errorf("color = %#x", seg.Material.Color)
	}

	cfg.Height = 1
	cfg.Weight = .1
	ed.ConfigureLink(L2, "l1", cfg)
	seg = l1.Parts(scene.RoleSegment)[0]
	if seg.Local.Position.Y != 2 {
		t.Errorf("segment Y = %v, want 2", seg.Local.Position.Y)
	}
	if got := seg.Mesh.Bounds.Max.Y - seg.Mesh.Bounds.Min.Y; math.Abs(got-.2) > 1e-6 {
		t.Errorf("cable diameter = %v, want .2", got)
	}

	ed.ConfigureLinkPhysical(L2, "l1", scene.Metadata{"lag_name": "po1"})
	ed.ConfigureLinkEndpoint(L2, "l1", 1, scene.Metadata{"function": "routing"})
	ed.ConfigureLinkEndpoint(L2, "l1", 2, scene.Metadata{"function": "bogus"})
	a := l1.Entity.LinkAttrs()
	if a.Phy["lag_name"] != "po1" || a.Endpoints[1].Data["function"] != "routing" || a.Endpoints[0].Data != nil {
		t.Errorf("opaque link data = %+v", a)
	}
}

func TestConfigureDevice(t *testing.T) {
	ed := scenario(t)
	d1 := ed.Scene().Find(L2, scene.KindDevice, "d1")
	front := d1.Part(scene.RoleFront)

	ed.ConfigureDevice(L2, "d1", DeviceConfig{Name: "", Color1: 0x112233, Color2: 0x445566})
	if d1.Part(scene.RoleFront) != front || front.Material.Color != 0x112233 {
		t.Error("recolor should update materials in place")
	}
	if d1.Part(scene.RoleLabel) != nil {
		t.Error("empty name should remove the label")
	}

	ed.ConfigureDevice(L2, "d1", DeviceConfig{Type: "F", Name: "fw"})
	if d1.Part(scene.RoleFront) == front {
		t.Error("type change should regenerate the body")
	}
	if d1.Part(scene.RoleLabel) == nil {
		t.Error("label missing")
	}
	if tex := d1.Part(scene.RoleFront).Material.Texture; tex != "F_1.png" {
		t.Errorf("texture = %q, want F_1.png", tex)
	}

	ed.ConfigureDeviceNetwork(L2, "d1", scene.Metadata{"vlans": []int{10, 20}})
	if _, ok := d1.Entity.DeviceAttrs().Config["vlans"]; !ok {
		t.Error("network config not stored")
	}
}

func TestConfigureBase(t *testing.T) {
	ed := scenario(t)
	ed.ConfigureBase(L2, "b1", BaseConfig{
		BaseAttrs: scene.BaseAttrs{Name: "floor", Color1: 0xaaaaaa, Texture1: "wood"},
		Height:    2,
	})
	b1 := ed.Scene().Find(L2, scene.KindBase, "b1")
	if b1.Part(scene.RoleFront).Material.Texture != "wood" {
		t.Error("texture not applied")
	}
	if got := b1.Entity.BaseAttrs().TexScale; got.X != 1 || got.Y != 1 {
		t.Errorf("texture scale = %v, want kept (1, 1)", got)
	}
	if pl, _ := ed.Position(L2, scene.KindDevice, "d1"); pl.World.Y != 2 {
		t.Errorf("device Y = %v, want 2", pl.World.Y)
	}
	if got := path(t, ed, "l1").Segments[0].From.Y; got != 2.5 {
		t.Errorf("link start Y = %v, want 2.5", got)
	}
}

func TestConfigureTextSymbolLine(t *testing.T) {
	ed := scenario(t)
	mustAdd(t)(ed.AddText(L2, TextSpec{ID: "t1", Base: "b1", TextAttrs: scene.TextAttrs{Text: "a"}}))
	mustAdd(t)(ed.AddSymbol(L2, SymbolSpec{ID: "s1", Base: "b1", SymbolAttrs: scene.SymbolAttrs{Type: "F"}}))
	mustAdd(t)(ed.AddLine(L2, LineSpec{ID: "ln1", LineAttrs: scene.LineAttrs{To: r3.Vec{X: 1}}}))

	t1 := ed.Scene().Find(L2, scene.KindText, "t1")
	narrow := t1.Mesh.Bounds.Max.X
	ed.ConfigureText(L2, "t1", TextConfig{TextAttrs: scene.TextAttrs{Text: "abcd", Color: 0xff}, Offset: .5})
	if t1.Mesh.Bounds.Max.X <= narrow {
		t.Error("text mesh not rebuilt")
	}
	if t1.Local.Position.Y != 1.5 || t1.Material.Color != 0xff {
		t.Errorf("text placement/color = %v %#x", t1.Local.Position, t1.Material.Color)
	}

	ed.ConfigureSymbol(L2, "s1", SymbolConfig{Color: 0x1, FlagColor: 0x2})
	colors := map[uint32]bool{}
	for _, p := range ed.Scene().Find(L2, scene.KindSymbol, "s1").Parts(scene.RolePart) {
		colors[p.Material.Color] = true
	}
	if !colors[1] || !colors[2] {
		t.Errorf("symbol colors = %v", colors)
	}

	ed.ConfigureLine(L2, "ln1", scene.LineAttrs{From: r3.Vec{Z: 1}, To: r3.Vec{Z: 4}, Color: 0x3})
	ln := ed.Scene().Find(L2, scene.KindLine, "ln1")
	if ln.Local.Position != (r3.Vec{Z: 1}) || math.Abs(ln.Mesh.Bounds.Max.Z-3) > 1e-9 {
		t.Errorf("line at %v spanning %v", ln.Local.Position, ln.Mesh.Bounds)
	}
	if ln.Entity.LineAttrs().Radius != DefaultLineRadius {
		t.Error("radius should be kept when unset")
	}

	ed.Move(L2, scene.KindLine, "ln1", MoveOpts{X: Float(2)})
	if a := ln.Entity.LineAttrs(); a.From != (r3.Vec{X: 2, Z: 1}) || a.To != (r3.Vec{X: 2, Z: 4}) {
		t.Errorf("moved line = %v -> %v", a.From, a.To)
	}
}

func TestShowDeviceNames(t *testing.T) {
	ed := scenario(t)
	label := ed.Scene().Find(L2, scene.KindDevice, "d1").Part(scene.RoleLabel)
	if label == nil || !label.Visible {
		t.Fatal("named device should show its label")
	}
	if ed.Scene().Find(L2, scene.KindDevice, "d2").Part(scene.RoleLabel) != nil {
		t.Error("unnamed device has a label")
	}

	ed.SetShowDeviceNames(false)
	if label.Visible {
		t.Error("label still visible")
	}
	mustAdd(t)(ed.AddDevice(L2, DeviceSpec{ID: "d9", Base: "b1", DeviceAttrs: scene.DeviceAttrs{Name: "edge"}}))
	if ed.Scene().Find(L2, scene.KindDevice, "d9").Part(scene.RoleLabel).Visible {
		t.Error("new label ignores the setting")
	}
}

func TestSetGridDropsInvalidSteps(t *testing.T) {
	ed := New(scene.New())
	ed.SetGrid(config.Grid{Active: true, X: 1, Z: -1, Angle: 0, Resize: .1})
	g := ed.Settings().Grid
	if g.X != 1 || g.Z != config.DefaultGridZ || g.Angle != config.DefaultGridAngle || g.Resize != .1 {
		t.Errorf("grid = %+v", g)
	}
}

func TestAddErrors(t *testing.T) {
	ed := scenario(t)
	tests := []struct {
		name string
		add  func() (string, error)
		code errors.Code
	}{
		{"missing base", func() (string, error) {
			return ed.AddDevice(L2, DeviceSpec{ID: "x", Base: "nope"})
		}, errors.ErrCodeNotFound},
		{"duplicate", func() (string, error) {
			return ed.AddDevice(L2, DeviceSpec{ID: "d1", Base: "b1"})
		}, errors.ErrCodeDuplicateID},
		{"missing endpoint", func() (string, error) {
			return ed.AddLink(L2, LinkSpec{LinkAttrs: scene.LinkAttrs{Endpoints: [2]scene.Endpoint{{DeviceID: "d1"}, {DeviceID: "zz"}}}})
		}, errors.ErrCodeNotFound},
		{"bad id", func() (string, error) {
			return ed.AddBase(L2, BaseSpec{ID: "a\nb"})
		}, errors.ErrCodeInvalidInput},
		{"bad view", func() (string, error) {
			return ed.AddBase("L7", BaseSpec{})
		}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.add(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	id, err := ed.AddBase(scene.ViewL3, BaseSpec{})
	if err != nil || len(id) != 36 {
		t.Errorf("generated id = %q, %v", id, err)
	}
	if got, _ := ed.Size(scene.ViewL3, scene.KindBase, id); got != (r3.Vec{X: 1, Y: .5, Z: 1}) {
		t.Errorf("default base size = %v", got)
	}
}

type recordingHooks struct {
	observability.NoopSceneHooks
	mu     sync.Mutex
	edits  []string
	routes map[string]int
}

func (h *recordingHooks) OnEdit(op, kind, id string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.edits = append(h.edits, op+" "+kind+" "+id)
}

func (h *recordingHooks) OnRoute(id string, segments, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes[id] = segments
}

func TestHooks(t *testing.T) {
	h := &recordingHooks{routes: map[string]int{}}
	observability.SetSceneHooks(h)
	t.Cleanup(observability.Reset)

	ed := scenario(t)
	ed.Move(L2, scene.KindDevice, "d2", MoveOpts{X: Float(3)})

	if len(h.edits) != 1 || h.edits[0] != "move device d2" {
		t.Errorf("edits = %v", h.edits)
	}
	if h.routes["l1"] != 1 {
		t.Errorf("routes = %v", h.routes)
	}
}
