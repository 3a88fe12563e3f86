package shapes

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/mesh"
	"github.com/matzehuels/netscene/pkg/templates"
)

// Pair holds the two surfaces of a base or device.
type Pair struct {
	Front  *mesh.Buffer
	Detail *mesh.Buffer
}

// Boxed device type codes.
const (
	TypeSwitch       = "S"
	TypeFirewall     = "F"
	TypeLoadBalancer = "LB"
)

type boxStyle struct {
	factors      r3.Vec
	backX, backY float64
}

var boxStyles = map[string]boxStyle{
	TypeSwitch:       {factors: r3.Vec{X: 1, Y: .4, Z: 1}, backX: 1, backY: 1},
	TypeFirewall:     {factors: r3.Vec{X: 1, Y: 1.2, Z: .6}, backX: 1, backY: 1},
	TypeLoadBalancer: {factors: r3.Vec{X: 1, Y: .4, Z: 1}, backX: .6, backY: .8},
}

// Device returns the surfaces of a device of type typ and size.
func Device(lib *templates.Library, typ string, size r3.Vec) Pair {
	if st, ok := boxStyles[typ]; ok {
		s := r3.Vec{X: size.X * st.factors.X, Y: size.Y * st.factors.Y, Z: size.Z * st.factors.Z}
		return TaperedBox(s, st.backX, st.backY)
	}
	return TemplateDevice(lib.Lookup(typ), size)
}

// DeviceTextures returns the texture names of the front and detail surfaces
// of a device type. Registered templates win over the boxed types.
func DeviceTextures(lib *templates.Library, typ string) [2]string {
	if lib.Has(typ) {
		return lib.Lookup(typ).Textures
	}
	if _, ok := boxStyles[typ]; ok {
		return [2]string{fmt.Sprintf("%s_1.png", typ), fmt.Sprintf("%s_2.png", typ)}
	}
	return lib.Lookup(templates.Unknown).Textures
}

// TemplateDevice scales a template to size.
func TemplateDevice(t *templates.Template, size r3.Vec) Pair {
	var p [2]*mesh.Buffer
	for i := range p {
		var b mesh.Builder
		vs, fs, uvs := t.Scaled(i, size)
		base := b.AddVertices(vs...)
		b.AddFaces(base, fs, uvs)
		p[i] = b.Build(t.Shading())
	}
	return Pair{Front: p[0], Detail: p[1]}
}

// TaperedBox returns a box of width size.X, height size.Y and depth size.Z
// standing on y=0. The back edge (-Z) is scaled horizontally by backX and
// its top and bottom are pulled toward the middle height by backY; a value
// of 1 for both gives a plain box.
//
// The front surface holds the inset top and bottom panels, the detail
// surface the bevel between the panels and the outer walls.
func TaperedBox(size r3.Vec, backX, backY float64) Pair {
	sx, h, sz := size.X, size.Y, size.Z
	top, bottom := h*backY, h*(1-backY)

	ring := func(scale, yFront, yBack float64) []r3.Vec {
		return []r3.Vec{
			{X: -sx * scale, Y: yFront, Z: sz * scale},
			{X: sx * scale, Y: yFront, Z: sz * scale},
			{X: sx * scale * backX, Y: yBack, Z: -sz * scale},
			{X: -sx * scale * backX, Y: yBack, Z: -sz * scale},
		}
	}

	fxt := (1 - backX) * .5

	var front mesh.Builder
	front.AddVertices(ring(.45, h, top)...)
	front.AddFace(0, 1, 2, mesh.UV(0, 1, 1, 1, 1-fxt, 0))
	front.AddFace(0, 2, 3, mesh.UV(0, 1, 1-fxt, 0, fxt, 0))
	front.AddVertices(ring(.45, 0, bottom)...)
	front.AddFace(4, 6, 5, mesh.UV(0, 1, 1-fxt, 0, 1, 1))
	front.AddFace(4, 7, 6, mesh.UV(0, 1, fxt, 0, 1-fxt, 0))

	var detail mesh.Builder
	detail.AddVertices(ring(.45, h, top)...)
	detail.AddVertices(ring(.5, h, top)...)
	detail.AddVertices(ring(.5, 0, bottom)...)
	detail.AddVertices(ring(.45, 0, bottom)...)

	for x := 0; x < 12; x += 4 {
		// the walls (x == 4) tile by size; the bevels get a thin strip
		du, dv := r3.Vec{X: sx, Y: h}, r3.Vec{X: sz, Y: h}
		if x != 4 {
			du, dv = r3.Vec{X: sx, Y: sz * .05}, r3.Vec{X: sz, Y: sx * .05}
		}
		for side := 0; side < 4; side++ {
			a, c := x+side, x+(side+1)%4
			span := du
			if side%2 == 1 {
				span = dv
			}
			detail.AddFace(a, c+4, c, mesh.UV(0, 0, span.X, span.Y, span.X, 0))
			detail.AddFace(a, a+4, c+4, mesh.UV(0, 0, 0, span.Y, span.X, span.Y))
		}
	}

	return Pair{Front: front.Build(mesh.Flat), Detail: detail.Build(mesh.Flat)}
}
