package edit

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/scene"
)

// BaseConfig replaces the attributes of a base. A zero Height keeps the
// current height; a non-zero one is clamped to the base minimum.
type BaseConfig struct {
	scene.BaseAttrs
	Height float64
}

// DeviceConfig updates the presentation of a device. An empty Type keeps
// the current type.
type DeviceConfig struct {
	Type     string
	Name     string
	Color1   uint32
	Color2   uint32
	IfNaming []string
}

// LinkConfig updates how a link is drawn.
type LinkConfig struct {
	Routing scene.Routing
	Order   string
	Color   uint32
	Weight  float64 // non-positive keeps the current weight
	Height  float64
}

// TextConfig updates a text. Offset is the height above the base top.
type TextConfig struct {
	scene.TextAttrs
	Offset float64
}

// SymbolConfig updates the colors of a symbol.
type SymbolConfig struct {
	Color     uint32
	FlagColor uint32
}

// ConfigureBase replaces the attributes of a base and regenerates both of its
// surfaces. Entities on the base follow a height change.
func (ed *Editor) ConfigureBase(v scene.View, id string, c BaseConfig) {
	f, n := ed.lookup("configure", v, scene.KindBase, id)
	if n == nil {
		return
	}
	start := time.Now()
	a := c.BaseAttrs
	if a.TexScale.X == 0 && a.TexScale.Y == 0 {
		a.TexScale = n.Entity.BaseAttrs().TexScale
	}
	n.Entity.Attrs = &a
	if c.Height != 0 {
		n.Entity.Scale.Y = atLeast(c.Height, MinBaseHeight)
	}
	ed.buildBase(n)
	relayout(n)
	ed.reroute(f, n)
	ed.done("configure", n, start)
}

// ConfigureDevice updates the name, colors and interface naming of a device.
// Colors only touch materials; the label is rebuilt and a type change
// regenerates the body.
func (ed *Editor) ConfigureDevice(v scene.View, id string, c DeviceConfig) {
	_, n := ed.lookup("configure", v, scene.KindDevice, id)
	if n == nil {
		return
	}
	start := time.Now()
	a := n.Entity.DeviceAttrs()
	retype := c.Type != "" && c.Type != a.Type
	if retype {
		a.Type = c.Type
	}
	a.Name = c.Name
	a.Color1, a.Color2 = c.Color1, c.Color2
	a.IfNaming = append([]string(nil), c.IfNaming...)

	if retype {
		ed.buildDevice(n)
	} else {
		ed.recolorDevice(n)
		ed.buildLabel(n, devicePair(n))
	}
	ed.done("configure", n, start)
}

// ConfigureDeviceNetwork replaces the opaque network configuration (VLANs,
// VRFs, SVIs, loopbacks) of a device. No geometry changes.
func (ed *Editor) ConfigureDeviceNetwork(v scene.View, id string, cfg scene.Metadata) {
	_, n := ed.lookup("configure", v, scene.KindDevice, id)
	if n == nil {
		return
	}
	n.Entity.DeviceAttrs().Config = cfg.Clone()
}

// ConfigureLink updates the routing and look of a link. A color-only change
// rebuilds materials; anything else re-routes.
func (ed *Editor) ConfigureLink(v scene.View, id string, c LinkConfig) {
	f, n := ed.lookup("configure", v, scene.KindLink, id)
	if n == nil {
		return
	}
	start := time.Now()
	a := n.Entity.LinkAttrs()
	weight := a.Weight
	if c.Weight > 0 {
		weight = c.Weight
	}
	geometry := a.Routing != c.Routing || a.Order != c.Order || a.Weight != weight || a.Height != c.Height
	a.Routing, a.Order, a.Color, a.Weight, a.Height = c.Routing, c.Order, c.Color, weight, c.Height
	if geometry {
		ed.router.Update(f, n)
	} else {
		ed.router.Recolor(n)
	}
	ed.done("configure", n, start)
}

// ConfigureLinkPhysical replaces the opaque physical bindings of a link
// (interface bindings, LAG name, LACP, transceiver).
func (ed *Editor) ConfigureLinkPhysical(v scene.View, id string, phy scene.Metadata) {
	_, n := ed.lookup("configure", v, scene.KindLink, id)
	if n == nil {
		return
	}
	n.Entity.LinkAttrs().Phy = phy.Clone()
}

// ConfigureLinkEndpoint replaces the opaque interface data of endpoint index
// (0 or 1). Other indexes are dropped.
func (ed *Editor) ConfigureLinkEndpoint(v scene.View, id string, index int, data scene.Metadata) {
	_, n := ed.lookup("configure", v, scene.KindLink, id)
	if n == nil {
		return
	}
	if index < 0 || index > 1 {
		ed.logger.Debug("endpoint index out of range", "link", id, "index", index)
		return
	}
	n.Entity.LinkAttrs().Endpoints[index].Data = data.Clone()
}

// ConfigureText replaces a text's content, size and color and its height
// above the base.
func (ed *Editor) ConfigureText(v scene.View, id string, c TextConfig) {
	_, n := ed.lookup("configure", v, scene.KindText, id)
	if n == nil {
		return
	}
	start := time.Now()
	a := c.TextAttrs
	if a.Size <= 0 {
		a.Size = DefaultTextSize
	}
	if a.Depth <= 0 {
		a.Depth = DefaultTextDepth
	}
	n.Entity.Attrs = &a
	n.Entity.Position.Y = c.Offset
	ed.buildText(n)
	place(n)
	ed.done("configure", n, start)
}

// ConfigureSymbol updates the colors of a symbol.
func (ed *Editor) ConfigureSymbol(v scene.View, id string, c SymbolConfig) {
	_, n := ed.lookup("configure", v, scene.KindSymbol, id)
	if n == nil {
		return
	}
	start := time.Now()
	a := n.Entity.SymbolAttrs()
	a.Color, a.FlagColor = c.Color, c.FlagColor
	ed.buildSymbol(n)
	ed.done("configure", n, start)
}

// ConfigureLine replaces the end points, radius and color of a line.
func (ed *Editor) ConfigureLine(v scene.View, id string, a scene.LineAttrs) {
	_, n := ed.lookup("configure", v, scene.KindLine, id)
	if n == nil {
		return
	}
	start := time.Now()
	if a.Radius <= 0 {
		a.Radius = n.Entity.LineAttrs().Radius
	}
	n.Entity.Attrs = &a
	n.Entity.Position = a.From
	ed.buildLine(n)
	ed.done("configure", n, start)
}

// InsertJoint inserts a waypoint into a link's joint list at index and
// re-routes it. The index is clamped to the list.
func (ed *Editor) InsertJoint(v scene.View, linkID string, index int, p r3.Vec) {
	f, n := ed.lookup("insert-joint", v, scene.KindLink, linkID)
	if n == nil {
		return
	}
	start := time.Now()
	a := n.Entity.LinkAttrs()
	index = max(0, min(index, len(a.Joints)))
	a.Joints = append(a.Joints, p)
	copy(a.Joints[index+1:], a.Joints[index:])
	a.Joints[index] = p
	ed.router.Update(f, n)
	ed.done("insert-joint", n, start)
}

// RemoveJoint deletes the waypoint at index. Out-of-range indexes are
// dropped.
func (ed *Editor) RemoveJoint(v scene.View, linkID string, index int) {
	f, n := ed.lookup("remove-joint", v, scene.KindLink, linkID)
	if n == nil {
		return
	}
	a := n.Entity.LinkAttrs()
	if index < 0 || index >= len(a.Joints) {
		ed.logger.Debug("joint index out of range", "link", linkID, "index", index)
		return
	}
	start := time.Now()
	a.Joints = append(a.Joints[:index], a.Joints[index+1:]...)
	ed.router.Update(f, n)
	ed.done("remove-joint", n, start)
}

// MoveJoint drags the waypoint at index to p. Snapping aligns X and Z to the
// grid.
func (ed *Editor) MoveJoint(v scene.View, linkID string, index int, p r3.Vec, snap bool) {
	f, n := ed.lookup("move-joint", v, scene.KindLink, linkID)
	if n == nil {
		return
	}
	a := n.Entity.LinkAttrs()
	if index < 0 || index >= len(a.Joints) {
		ed.logger.Debug("joint index out of range", "link", linkID, "index", index)
		return
	}
	start := time.Now()
	if ed.snapOn(snap) {
		p.X = geom.Snap(p.X, ed.settings.Grid.X)
		p.Z = geom.Snap(p.Z, ed.settings.Grid.Z)
	}
	a.Joints[index] = p
	ed.router.Update(f, n)
	ed.done("move-joint", n, start)
}
