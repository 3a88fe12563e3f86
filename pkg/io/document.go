package io

import (
	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/scene"
)

// Version is the document format version written by this package.
const Version = 1

// Document is a serialized diagram.
type Document struct {
	Version  int                 `json:"version"`
	Settings *config.Settings    `json:"settings,omitempty"`
	Views    map[string]ViewData `json:"views"`
}

// ViewData lists the entities of one view by kind. Within a kind, entities
// are applied in order.
type ViewData struct {
	Bases   []Base   `json:"base,omitempty"`
	Devices []Device `json:"device,omitempty"`
	Links   []Link   `json:"link,omitempty"`
	Texts   []Text   `json:"text,omitempty"`
	Symbols []Symbol `json:"symbol,omitempty"`
	Lines   []Line   `json:"line,omitempty"`
}

// Len returns the number of entities in the view.
func (v ViewData) Len() int {
	return len(v.Bases) + len(v.Devices) + len(v.Links) + len(v.Texts) + len(v.Symbols) + len(v.Lines)
}

// Placement is the shared transform block of placed entities.
type Placement struct {
	PX float64 `json:"px"`
	PY float64 `json:"py"`
	PZ float64 `json:"pz"`
	RX float64 `json:"rx,omitempty"`
	RY float64 `json:"ry,omitempty"`
	RZ float64 `json:"rz,omitempty"`
}

// Size is the shared size block of resizable entities.
type Size struct {
	SX float64 `json:"sx,omitempty"`
	SY float64 `json:"sy,omitempty"`
	SZ float64 `json:"sz,omitempty"`
}

// Base is a floor.
type Base struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Subtype string `json:"subtype,omitempty"`
	Placement
	Size
	Color1 uint32  `json:"color1"`
	Color2 uint32  `json:"color2"`
	T1Name string  `json:"t1name,omitempty"`
	T2Name string  `json:"t2name,omitempty"`
	TSX    float64 `json:"tsx,omitempty"`
	TSY    float64 `json:"tsy,omitempty"`
}

// Device is a network device standing on a base.
type Device struct {
	ID   string `json:"id,omitempty"`
	Base string `json:"base"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Placement
	Size
	Color1   uint32         `json:"color1"`
	Color2   uint32         `json:"color2"`
	IfNaming []string       `json:"ifnaming,omitempty"`
	Config   scene.Metadata `json:"config,omitempty"`
}

// LinkEnd references one device of a link.
type LinkEnd struct {
	ID   string         `json:"id"`
	Data scene.Metadata `json:"data,omitempty"`
}

// LineData is the drawing block of a link.
type LineData struct {
	Points [][3]float64 `json:"points,omitempty"`
	Color  uint32       `json:"color"`
	Weight float64      `json:"weight,omitempty"`
	Height float64      `json:"height"`
}

// Link joins two devices. Type 0 is freeform, 1 orthogonal.
type Link struct {
	ID       string         `json:"id,omitempty"`
	Type     int            `json:"type"`
	Order    string         `json:"order,omitempty"`
	Devs     [2]LinkEnd     `json:"devs"`
	LineData LineData       `json:"linedata"`
	Phy      scene.Metadata `json:"phy,omitempty"`
}

// Text is a free-standing label on a base.
type Text struct {
	ID   string `json:"id,omitempty"`
	Base string `json:"base"`
	Text string `json:"text"`
	Placement
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
	Color  uint32  `json:"color"`
}

// Symbol is a marker on a base.
type Symbol struct {
	ID   string `json:"id,omitempty"`
	Base string `json:"base"`
	Type string `json:"type"`
	Placement
	Size
	Color     uint32 `json:"color"`
	FlagColor uint32 `json:"flagcolor,omitempty"`
}

// Line is a standalone cylinder between two points.
type Line struct {
	ID     string  `json:"id,omitempty"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	Z1     float64 `json:"z1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Z2     float64 `json:"z2"`
	Radius float64 `json:"radius,omitempty"`
	Color  uint32  `json:"color"`
}
