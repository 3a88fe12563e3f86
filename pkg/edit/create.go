package edit

import (
	stderrors "errors"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/scene"
)

// Size limits and creation defaults.
const (
	MinSize       = .1
	MinBaseWidth  = 1.0
	MinBaseHeight = .5
	MinBaseDepth  = 1.0

	DefaultLinkWeight = .025
	DefaultTextSize   = .3
	DefaultTextDepth  = .01
	DefaultLineRadius = .025
)

var unitSize = r3.Vec{X: 1, Y: 1, Z: 1}

// BaseSpec describes a base to create.
type BaseSpec struct {
	ID       string
	Position r3.Vec
	Rotation r3.Vec
	Size     r3.Vec // zero components default to the minimum
	scene.BaseAttrs
}

// DeviceSpec describes a device to create on a base.
type DeviceSpec struct {
	ID       string
	Base     string
	Position r3.Vec // Y is the offset above the base top
	Rotation r3.Vec
	Size     r3.Vec // zero components default to 1
	Snap     bool
	scene.DeviceAttrs
}

// LinkSpec describes a link to create between two existing devices.
type LinkSpec struct {
	ID string
	scene.LinkAttrs
}

// TextSpec describes a text to create on a base.
type TextSpec struct {
	ID       string
	Base     string
	Position r3.Vec
	Rotation r3.Vec
	Snap     bool
	scene.TextAttrs
}

// SymbolSpec describes a symbol to create on a base.
type SymbolSpec struct {
	ID       string
	Base     string
	Position r3.Vec
	Rotation r3.Vec
	Size     r3.Vec
	Snap     bool
	scene.SymbolAttrs
}

// LineSpec describes a standalone line.
type LineSpec struct {
	ID string
	scene.LineAttrs
}

// AddBase creates a base and returns its id. An empty id is replaced by a
// random UUID.
func (ed *Editor) AddBase(v scene.View, s BaseSpec) (string, error) {
	a := s.BaseAttrs
	size := r3.Vec{
		X: atLeast(s.Size.X, MinBaseWidth),
		Y: atLeast(s.Size.Y, MinBaseHeight),
		Z: atLeast(s.Size.Z, MinBaseDepth),
	}
	if a.TexScale.X == 0 && a.TexScale.Y == 0 {
		a.TexScale.X, a.TexScale.Y = 1, 1
	}
	e := &scene.Entity{Kind: scene.KindBase, Position: s.Position, Rotation: s.Rotation, Scale: size, Attrs: &a}
	return ed.insert(v, s.ID, e, nil, false)
}

// AddDevice creates a device on an existing base.
func (ed *Editor) AddDevice(v scene.View, s DeviceSpec) (string, error) {
	a := s.DeviceAttrs
	a.Config = a.Config.Clone()
	e := &scene.Entity{
		Kind:     scene.KindDevice,
		Position: s.Position,
		Rotation: s.Rotation,
		Scale:    orUnit(s.Size),
		Base:     s.Base,
		Attrs:    &a,
	}
	return ed.insertAttached(v, s.ID, e, s.Snap)
}

// AddText creates a text on an existing base.
func (ed *Editor) AddText(v scene.View, s TextSpec) (string, error) {
	a := s.TextAttrs
	if a.Size <= 0 {
		a.Size = DefaultTextSize
	}
	if a.Depth <= 0 {
		a.Depth = DefaultTextDepth
	}
	e := &scene.Entity{
		Kind:     scene.KindText,
		Position: s.Position,
		Rotation: s.Rotation,
		Scale:    unitSize,
		Base:     s.Base,
		Attrs:    &a,
	}
	return ed.insertAttached(v, s.ID, e, s.Snap)
}

// AddSymbol creates a symbol on an existing base.
func (ed *Editor) AddSymbol(v scene.View, s SymbolSpec) (string, error) {
	a := s.SymbolAttrs
	e := &scene.Entity{
		Kind:     scene.KindSymbol,
		Position: s.Position,
		Rotation: s.Rotation,
		Scale:    orUnit(s.Size),
		Base:     s.Base,
		Attrs:    &a,
	}
	return ed.insertAttached(v, s.ID, e, s.Snap)
}

// AddLink creates a link between two devices of the view.
func (ed *Editor) AddLink(v scene.View, s LinkSpec) (string, error) {
	a := s.LinkAttrs
	f := ed.scene.View(v)
	if f == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown view %q", v)
	}
	for i, ep := range a.Endpoints {
		if f.Find(scene.KindDevice, ep.DeviceID) == nil {
			return "", errors.New(errors.ErrCodeNotFound, "link endpoint %d: device %q not found in %s", i, ep.DeviceID, v)
		}
		a.Endpoints[i].Data = ep.Data.Clone()
	}
	if a.Weight <= 0 {
		a.Weight = DefaultLinkWeight
	}
	a.Joints = append([]r3.Vec(nil), a.Joints...)
	a.Phy = a.Phy.Clone()
	e := &scene.Entity{Kind: scene.KindLink, Scale: unitSize, Attrs: &a}
	return ed.insert(v, s.ID, e, nil, false)
}

// AddLine creates a standalone line.
func (ed *Editor) AddLine(v scene.View, s LineSpec) (string, error) {
	a := s.LineAttrs
	if a.Radius <= 0 {
		a.Radius = DefaultLineRadius
	}
	e := &scene.Entity{Kind: scene.KindLine, Position: a.From, Scale: unitSize, Attrs: &a}
	return ed.insert(v, s.ID, e, nil, false)
}

func (ed *Editor) insertAttached(v scene.View, id string, e *scene.Entity, snap bool) (string, error) {
	f := ed.scene.View(v)
	if f == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown view %q", v)
	}
	base := f.Find(scene.KindBase, e.Base)
	if base == nil {
		return "", errors.New(errors.ErrCodeNotFound, "%s: base %q not found in %s", e.Kind, e.Base, v)
	}
	return ed.insert(v, id, e, base, snap)
}

func (ed *Editor) insert(v scene.View, id string, e *scene.Entity, parent *scene.Node, snap bool) (string, error) {
	f := ed.scene.View(v)
	if f == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown view %q", v)
	}
	if id == "" {
		id = uuid.NewString()
	} else if err := errors.ValidateEntityID(id); err != nil {
		return "", err
	}
	e.ID = id

	if ed.snapOn(snap) {
		e.Position.X = geom.Snap(e.Position.X, ed.settings.Grid.X)
		e.Position.Z = geom.Snap(e.Position.Z, ed.settings.Grid.Z)
	}

	n := scene.NewNode(e.Kind, id, scene.RoleEntity, e)
	if err := f.Insert(parent, n); err != nil {
		if stderrors.Is(err, scene.ErrDuplicateID) {
			return "", errors.Wrap(errors.ErrCodeDuplicateID, err, "add %s", e.Kind)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "add %s", e.Kind)
	}
	place(n)
	ed.rebuild(f, n)
	ed.scene.MarkDirty()
	return id, nil
}

func atLeast(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

func orUnit(s r3.Vec) r3.Vec {
	if s.X <= 0 {
		s.X = 1
	}
	if s.Y <= 0 {
		s.Y = 1
	}
	if s.Z <= 0 {
		s.Z = 1
	}
	return s
}
