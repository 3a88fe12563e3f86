package shapes

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/mesh"
)

// Symbol type codes.
const (
	SymbolFlag  = "F"
	SymbolCross = "X"
	SymbolCheck = "V"
)

// SymbolPart is one independently colored piece of a symbol. Accent parts
// use the symbol's secondary color (the cloth of a flag).
type SymbolPart struct {
	Mesh   *mesh.Buffer
	Accent bool
}

type glyph struct {
	vertices [][3]float64
	faces    []mesh.Triangle
	accent   bool
}

// Flag dimensions: pole base and top widths, pole taper height, pole height,
// pole tip height, cloth width, cloth half depth, cloth bottom height.
const (
	flagWB = .2
	flagWT = .07
	flagHM = .1
	flagH  = 1
	flagHP = 1.2
	flagWF = 1
	flagDF = .05
	flagHF = .5
)

var flagGlyph = []glyph{
	{
		vertices: [][3]float64{
			{0, 0, flagWB}, {flagWB, 0, 0}, {0, 0, -flagWB}, {-flagWB, 0, 0},
			{0, flagHM, flagWT}, {flagWT, flagHM, 0}, {0, flagHM, -flagWT}, {-flagWT, flagHM, 0},
			{0, flagH, flagWT}, {flagWT, flagH, 0}, {0, flagH, -flagWT}, {-flagWT, flagH, 0},
			{0, flagHP, 0},
		},
		faces: []mesh.Triangle{
			{0, 2, 1}, {0, 3, 2},
			{0, 1, 5}, {0, 5, 4}, {1, 2, 6}, {1, 6, 5}, {2, 3, 7}, {2, 7, 6}, {3, 0, 4}, {3, 4, 7},
			{4, 5, 9}, {4, 9, 8}, {5, 6, 10}, {5, 10, 9}, {6, 7, 11}, {6, 11, 10}, {7, 4, 8}, {7, 8, 11},
			{8, 9, 12}, {9, 10, 12}, {10, 11, 12}, {11, 8, 12},
		},
	},
	{
		vertices: [][3]float64{
			{flagWT, flagH, flagDF}, {flagWF, flagH, flagDF}, {flagWF, flagHF, flagDF}, {flagWT, flagHF, flagDF},
			{flagWT, flagH, -flagDF}, {flagWF, flagH, -flagDF}, {flagWF, flagHF, -flagDF}, {flagWT, flagHF, -flagDF},
		},
		faces: []mesh.Triangle{
			{0, 2, 1}, {0, 3, 2},
			{4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4}, {1, 2, 6}, {1, 6, 5}, {2, 3, 7}, {2, 7, 6}, {3, 0, 4}, {3, 4, 7},
		},
		accent: true,
	},
}

// barFaces joins two 8-vertex outlines (front at +Z, back at -Z) into two
// slanted bars.
var barFaces = []mesh.Triangle{
	{0, 4, 1}, {0, 5, 4}, {2, 6, 3}, {2, 7, 6},
	{8, 9, 12}, {8, 12, 13}, {10, 11, 14}, {10, 14, 15},
	{0, 9, 8}, {0, 1, 9}, {1, 4, 12}, {1, 12, 9}, {4, 5, 13}, {4, 13, 12}, {5, 0, 8}, {5, 8, 13},
	{2, 11, 10}, {2, 3, 11}, {3, 6, 14}, {3, 14, 11}, {6, 7, 15}, {6, 15, 14}, {7, 2, 10}, {7, 10, 15},
}

var crossGlyph = []glyph{{
	vertices: [][3]float64{
		{-.5, .9, .1}, {-.4, 1, .1}, {.4, 1, .1}, {.5, .9, .1}, {.5, .1, .1}, {.4, 0, .1}, {-.4, 0, .1}, {-.5, .1, .1},
		{-.5, .9, -.1}, {-.4, 1, -.1}, {.4, 1, -.1}, {.5, .9, -.1}, {.5, .1, -.1}, {.4, 0, -.1}, {-.4, 0, -.1}, {-.5, .1, -.1},
	},
	faces: barFaces,
}}

var checkGlyph = []glyph{{
	vertices: [][3]float64{
		{-.5, .6, .1}, {-.3, .6, .1}, {.3, 1, .1}, {.5, 1, .1}, {.1, 0, .1}, {-.1, 0, .1}, {.1, 0, .1}, {-.1, 0, .1},
		{-.5, .6, -.1}, {-.3, .6, -.1}, {.3, 1, -.1}, {.5, 1, -.1}, {.1, 0, -.1}, {-.1, 0, -.1}, {.1, 0, -.1}, {-.1, 0, -.1},
	},
	faces: barFaces,
}}

// Symbol returns the parts of a symbol glyph scaled per axis by size.
// Unknown type codes draw a cross.
func Symbol(typ string, size r3.Vec) []SymbolPart {
	var glyphs []glyph
	switch typ {
	case SymbolFlag:
		glyphs = flagGlyph
	case SymbolCheck:
		glyphs = checkGlyph
	default:
		glyphs = crossGlyph
	}

	parts := make([]SymbolPart, 0, len(glyphs))
	for _, g := range glyphs {
		var b mesh.Builder
		for _, v := range g.vertices {
			b.AddVertices(r3.Vec{X: v[0] * size.X, Y: v[1] * size.Y, Z: v[2] * size.Z})
		}
		b.AddFaces(0, g.faces, nil)
		parts = append(parts, SymbolPart{Mesh: b.Build(mesh.Flat), Accent: g.accent})
	}
	return parts
}
