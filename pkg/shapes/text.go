package shapes

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/mesh"
)

// GlyphSource turns a string into an extruded outline. Implementations lay
// glyphs out along +X from the origin with the baseline at y=0 and extrude
// along Z by depth.
type GlyphSource interface {
	Glyphs(text string, size, depth float64) ([]r3.Vec, []mesh.Triangle)
}

// Align is the horizontal anchoring of a text mesh.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// ParseAlign maps "left" and "right" to their alignment; anything else
// centers.
func ParseAlign(s string) Align {
	switch s {
	case "left":
		return AlignLeft
	case "right":
		return AlignRight
	}
	return AlignCenter
}

// Text builds a text mesh and moves it so it sits on y=0, is centered in
// depth and is anchored horizontally by align. A nil source or empty text
// yields an empty buffer.
func Text(src GlyphSource, text string, size, depth float64, align Align) *mesh.Buffer {
	var b mesh.Builder
	if src == nil || text == "" {
		return b.Build(mesh.Flat)
	}
	vs, fs := src.Glyphs(text, size, depth)
	b.AddVertices(vs...)
	b.AddFaces(0, fs, nil)

	box := b.Bounds()
	dz := -box.Min.Z - (box.Max.Z-box.Min.Z)/2
	switch align {
	case AlignLeft:
		b.Translate(r3.Vec{X: -box.Min.X, Y: -box.Min.Y, Z: dz})
	case AlignRight:
		b.Translate(r3.Vec{X: -box.Max.X, Y: -box.Min.Y, Z: dz})
	default:
		b.Translate(r3.Vec{X: -box.Min.X - (box.Max.X-box.Min.X)/2, Y: -box.Min.Y, Z: dz})
	}
	return b.Build(mesh.Flat)
}

// Device name labels.
const (
	LabelSize   = .3
	LabelDepth  = .01
	LabelOffset = .5
	LabelTilt   = -math.Pi / 4
)

// Label returns the centered name label of a device, or nil for an empty
// name.
func Label(src GlyphSource, name string) *mesh.Buffer {
	if name == "" {
		return nil
	}
	return Text(src, name, LabelSize, LabelDepth, AlignCenter)
}

// LabelHeight returns the label elevation above a device whose surfaces
// are p.
func LabelHeight(p Pair) float64 {
	var h float64
	for _, b := range []*mesh.Buffer{p.Front, p.Detail} {
		if !b.Empty() && b.Bounds.Max.Y > h {
			h = b.Bounds.Max.Y
		}
	}
	return h + LabelOffset
}

// BlockFont draws every non-space rune as a box. It needs no font data and
// keeps text measurable when no real font is loaded.
type BlockFont struct{}

// Glyphs implements GlyphSource.
func (BlockFont) Glyphs(text string, size, depth float64) ([]r3.Vec, []mesh.Triangle) {
	var b mesh.Builder
	advance, width := size*.7, size*.6
	x := 0.0
	for _, r := range text {
		if r != ' ' {
			b.AddBox(x, x+width, 0, size, 0, depth, 0, 1, 0, 1)
		}
		x += advance
	}
	vs, fs, _ := b.Lists()
	return vs, fs
}
