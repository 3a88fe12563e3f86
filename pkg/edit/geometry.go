package edit

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/mesh"
	"github.com/matzehuels/netscene/pkg/observability"
	"github.com/matzehuels/netscene/pkg/scene"
	"github.com/matzehuels/netscene/pkg/shapes"
)

// labelColor is the color of device name labels.
const labelColor = 0x000000

// place derives the node transform of n from its entity.
func place(n *scene.Node) {
	e := n.Entity
	switch e.Kind {
	case scene.KindLink:
		return
	case scene.KindLine:
		n.Local.Position = e.LineAttrs().From
		return
	}
	pos := e.Position
	if e.Kind.Attached() {
		if p := n.Parent(); p != nil && p.Entity != nil {
			pos.Y += p.Entity.Scale.Y
		}
	}
	order := geom.OrderXYZ
	if e.Kind == scene.KindText {
		order = geom.OrderYXZ
	}
	n.Local.Position = pos
	n.Local.Rotation = geom.Euler{X: e.Rotation.X, Y: e.Rotation.Y, Z: e.Rotation.Z, Order: order}
}

// relayout re-places the entities standing on base n.
func relayout(n *scene.Node) {
	for _, c := range n.Children() {
		if c.IsEntity() {
			place(c)
		}
	}
}

// rebuild regenerates the geometry of n from its entity.
func (ed *Editor) rebuild(f *scene.Forest, n *scene.Node) {
	switch n.Kind {
	case scene.KindBase:
		ed.buildBase(n)
	case scene.KindDevice:
		ed.buildDevice(n)
	case scene.KindText:
		ed.buildText(n)
	case scene.KindSymbol:
		ed.buildSymbol(n)
	case scene.KindLine:
		ed.buildLine(n)
	case scene.KindLink:
		ed.router.Update(f, n)
	}
}

func (ed *Editor) setPair(n *scene.Node, p shapes.Pair, front, detail scene.Material) {
	n.RemoveParts(scene.RoleFront, scene.RoleDetail)
	for _, s := range []struct {
		role scene.Role
		buf  *mesh.Buffer
		mat  scene.Material
	}{
		{scene.RoleFront, p.Front, front},
		{scene.RoleDetail, p.Detail, detail},
	} {
		c := scene.NewNode(n.Kind, n.ID, s.role, n.Entity)
		c.Mesh = s.buf
		c.Material = s.mat
		n.AddPart(c)
		ed.reportMesh(n, s.buf)
	}
}

func (ed *Editor) buildBase(n *scene.Node) {
	e, a := n.Entity, n.Entity.BaseAttrs()
	p := shapes.Floor(a.Subtype, e.Scale, a.TexScale)
	ed.setPair(n, p,
		scene.Material{Color: a.Color1, Texture: a.Texture1, Shader: scene.ShaderStandard},
		scene.Material{Color: a.Color2, Texture: a.Texture2, Shader: scene.ShaderStandard},
	)
}

func (ed *Editor) buildDevice(n *scene.Node) {
	e, a := n.Entity, n.Entity.DeviceAttrs()
	p := shapes.Device(ed.lib, a.Type, e.Scale)
	tex := shapes.DeviceTextures(ed.lib, a.Type)
	ed.setPair(n, p,
		scene.Material{Color: a.Color1, Texture: tex[0], Shader: scene.ShaderDevice},
		scene.Material{Color: a.Color2, Texture: tex[1], Shader: scene.ShaderDevice},
	)
	ed.buildLabel(n, p)
}

// buildLabel replaces the name label of device n whose surfaces are p.
func (ed *Editor) buildLabel(n *scene.Node, p shapes.Pair) {
	n.RemoveParts(scene.RoleLabel)
	buf := shapes.Label(ed.glyphs, n.Entity.DeviceAttrs().Name)
	if buf == nil {
		return
	}
	l := scene.NewNode(n.Kind, n.ID, scene.RoleLabel, n.Entity)
	l.Mesh = buf
	l.Material = scene.Material{Color: labelColor, Shader: scene.ShaderPhong}
	l.Local.Position = r3.Vec{Y: shapes.LabelHeight(p)}
	l.Local.Rotation = geom.Euler{X: shapes.LabelTilt, Order: geom.OrderYXZ}
	l.Visible = ed.settings.ShowDeviceNames
	n.AddPart(l)
}

// devicePair returns the current surfaces of device n.
func devicePair(n *scene.Node) shapes.Pair {
	var p shapes.Pair
	if c := n.Part(scene.RoleFront); c != nil {
		p.Front = c.Mesh
	}
	if c := n.Part(scene.RoleDetail); c != nil {
		p.Detail = c.Mesh
	}
	return p
}

func (ed *Editor) recolorDevice(n *scene.Node) {
	a := n.Entity.DeviceAttrs()
	if c := n.Part(scene.RoleFront); c != nil {
		c.Material.Color = a.Color1
	}
	if c := n.Part(scene.RoleDetail); c != nil {
		c.Material.Color = a.Color2
	}
}

func (ed *Editor) buildText(n *scene.Node) {
	a := n.Entity.TextAttrs()
	n.Mesh = shapes.Text(ed.glyphs, a.Text, a.Size, a.Depth, shapes.AlignCenter)
	n.Material = scene.Material{Color: a.Color, Shader: scene.ShaderStandard}
	ed.reportMesh(n, n.Mesh)
}

func (ed *Editor) buildSymbol(n *scene.Node) {
	e, a := n.Entity, n.Entity.SymbolAttrs()
	n.RemoveParts(scene.RolePart)
	for _, part := range shapes.Symbol(a.Type, e.Scale) {
		c := scene.NewNode(n.Kind, n.ID, scene.RolePart, n.Entity)
		c.Mesh = part.Mesh
		color := a.Color
		if part.Accent {
			color = a.FlagColor
		}
		c.Material = scene.Material{Color: color, Shader: scene.ShaderPhong}
		n.AddPart(c)
		ed.reportMesh(n, part.Mesh)
	}
}

func (ed *Editor) buildLine(n *scene.Node) {
	a := n.Entity.LineAttrs()
	n.Local.Position = a.From
	n.Mesh = shapes.Cable(a.From, a.To, a.Radius)
	n.Material = scene.Material{Color: a.Color, Shader: scene.ShaderStandard}
	ed.reportMesh(n, n.Mesh)
}

func (ed *Editor) reportMesh(n *scene.Node, b *mesh.Buffer) {
	if b == nil {
		return
	}
	observability.Scene().OnGeometry(string(n.Kind), n.ID, len(b.Vertices), len(b.Faces))
}

// reroute re-routes the links affected by a change to n.
func (ed *Editor) reroute(f *scene.Forest, n *scene.Node) {
	switch n.Kind {
	case scene.KindDevice:
		ed.router.UpdateAll(f, f.LinksOfDevice(n.ID))
	case scene.KindBase:
		for _, l := range f.LinksOfBase(n) {
			ed.router.Update(f, l)
		}
	}
}
