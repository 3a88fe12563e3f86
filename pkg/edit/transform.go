package edit

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/scene"
)

// MoveOpts selects the coordinates a move changes. Nil fields are left as
// they are.
type MoveOpts struct {
	X, Y, Z *float64
	// Base re-parents a device, text or symbol onto another base.
	Base *string
	// Snap rounds X and Z to the grid when the grid is active.
	Snap bool
}

// RotateOpts selects the angles (radians) a rotation changes.
type RotateOpts struct {
	X, Y, Z *float64
	Snap    bool
}

// ResizeOpts selects the size components a resize changes.
type ResizeOpts struct {
	X, Y, Z *float64
	Snap    bool
}

// Float returns a pointer to v for use in edit options.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s for use in edit options.
func String(s string) *string { return &s }

// Move updates the position of an entity. For devices, texts and symbols Y
// is the offset above the owning base. Moving a line translates both of its
// ends. Links have no position and ignore moves.
func (ed *Editor) Move(v scene.View, kind scene.Kind, id string, o MoveOpts) {
	f, n := ed.lookup("move", v, kind, id)
	if n == nil || kind == scene.KindLink {
		return
	}
	start := time.Now()
	e := n.Entity

	pos := e.Position
	if o.X != nil {
		pos.X = *o.X
	}
	if o.Y != nil {
		pos.Y = *o.Y
	}
	if o.Z != nil {
		pos.Z = *o.Z
	}
	if ed.snapOn(o.Snap) {
		pos.X = geom.Snap(pos.X, ed.settings.Grid.X)
		pos.Z = geom.Snap(pos.Z, ed.settings.Grid.Z)
	}

	if kind == scene.KindLine {
		a := e.LineAttrs()
		d := r3.Sub(pos, a.From)
		a.From, a.To = pos, r3.Add(a.To, d)
		e.Position = pos
		place(n)
		ed.done("move", n, start)
		return
	}
	e.Position = pos

	if o.Base != nil && kind.Attached() {
		if base := f.Find(scene.KindBase, *o.Base); base != nil {
			f.Reparent(n, base)
			e.Base = base.ID
		} else {
			ed.logger.Debug("move target base not found", "view", v, "id", id, "base", *o.Base)
		}
	}

	place(n)
	ed.reroute(f, n)
	ed.done("move", n, start)
}

// Rotate updates the rotation of an entity. Snapping rounds each supplied
// angle to the grid's angular step.
func (ed *Editor) Rotate(v scene.View, kind scene.Kind, id string, o RotateOpts) {
	f, n := ed.lookup("rotate", v, kind, id)
	if n == nil || kind == scene.KindLink || kind == scene.KindLine {
		return
	}
	start := time.Now()
	e := n.Entity
	step := 0.0
	if ed.snapOn(o.Snap) {
		step = ed.settings.Grid.AngleRad()
	}
	if o.X != nil {
		e.Rotation.X = geom.Snap(*o.X, step)
	}
	if o.Y != nil {
		e.Rotation.Y = geom.Snap(*o.Y, step)
	}
	if o.Z != nil {
		e.Rotation.Z = geom.Snap(*o.Z, step)
	}
	place(n)
	ed.reroute(f, n)
	ed.done("rotate", n, start)
}

// Resize updates the size of a base, device or symbol. Base sizes are
// clamped to 1 wide, 0.5 high and 1 deep; for other kinds a component below
// 0.1 is dropped. Resizing a base lifts the entities standing on it and
// re-routes their links.
func (ed *Editor) Resize(v scene.View, kind scene.Kind, id string, o ResizeOpts) {
	f, n := ed.lookup("resize", v, kind, id)
	if n == nil {
		return
	}
	if kind != scene.KindBase && kind != scene.KindDevice && kind != scene.KindSymbol {
		ed.logger.Debug("entity has no size", "view", v, "kind", kind, "id", id)
		return
	}
	start := time.Now()
	e := n.Entity
	step := 0.0
	if ed.snapOn(o.Snap) {
		step = ed.settings.Grid.Resize
	}

	comps := []struct {
		v   *float64
		dst *float64
		lo  float64
	}{
		{o.X, &e.Scale.X, MinBaseWidth},
		{o.Y, &e.Scale.Y, MinBaseHeight},
		{o.Z, &e.Scale.Z, MinBaseDepth},
	}
	for _, c := range comps {
		if c.v == nil {
			continue
		}
		s := geom.Snap(*c.v, step)
		if kind == scene.KindBase {
			*c.dst = atLeast(s, c.lo)
			continue
		}
		if s < MinSize {
			ed.logger.Debug("size below minimum dropped", "kind", kind, "id", id, "value", s)
			continue
		}
		*c.dst = s
	}

	ed.rebuild(f, n)
	if kind == scene.KindBase {
		relayout(n)
		ed.reroute(f, n)
	}
	ed.done("resize", n, start)
}
