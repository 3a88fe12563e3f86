package scene

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entity is one editable element of the diagram.
type Entity struct {
	ID       string
	Kind     Kind
	Position r3.Vec // Y is the offset above the base top for attached kinds
	Rotation r3.Vec // radians
	Scale    r3.Vec // size; unused for links and lines
	Base     string // owning base for attached kinds
	Attrs    Attributes
}

// Attributes is the kind-specific part of an entity.
type Attributes interface {
	Kind() Kind
}

// BaseAttrs configures a floor.
type BaseAttrs struct {
	Name     string
	Subtype  Subtype
	Color1   uint32 // top
	Color2   uint32 // skirt
	Texture1 string
	Texture2 string
	TexScale r2.Vec // texture repeats per unit along X and Z
}

// DeviceAttrs configures a device.
type DeviceAttrs struct {
	Type     string
	Name     string
	Color1   uint32
	Color2   uint32
	IfNaming []string
	Config   Metadata // vlans, vrfs, svis, loopbacks
}

// Routing selects how a link is drawn between its endpoints.
type Routing int

const (
	RoutingFreeform Routing = iota
	RoutingOrthogonal
)

// String returns "freeform" or "orthogonal".
func (r Routing) String() string {
	if r == RoutingOrthogonal {
		return "orthogonal"
	}
	return "freeform"
}

// Endpoint is one end of a link.
type Endpoint struct {
	DeviceID string
	Data     Metadata // interface function and its settings
}

// LinkAttrs configures a link.
type LinkAttrs struct {
	Endpoints [2]Endpoint
	Routing   Routing
	Order     string // axis priority for orthogonal routing, e.g. "XZ"
	Color     uint32
	Weight    float64 // cable and joint radius
	Height    float64 // attachment height above the device anchors
	Joints    []r3.Vec
	Phy       Metadata // interface bindings, lag, lacp, transceiver
}

// Touches reports whether either endpoint is device id.
func (a *LinkAttrs) Touches(id string) bool {
	return a.Endpoints[0].DeviceID == id || a.Endpoints[1].DeviceID == id
}

// TextAttrs configures a free-standing text.
type TextAttrs struct {
	Text  string
	Size  float64
	Depth float64
	Color uint32
}

// SymbolAttrs configures a symbol.
type SymbolAttrs struct {
	Type      string
	Color     uint32
	FlagColor uint32
}

// LineAttrs configures a standalone line.
type LineAttrs struct {
	From   r3.Vec
	To     r3.Vec
	Radius float64
	Color  uint32
}

func (*BaseAttrs) Kind() Kind   { return KindBase }
func (*DeviceAttrs) Kind() Kind { return KindDevice }
func (*LinkAttrs) Kind() Kind   { return KindLink }
func (*TextAttrs) Kind() Kind   { return KindText }
func (*SymbolAttrs) Kind() Kind { return KindSymbol }
func (*LineAttrs) Kind() Kind   { return KindLine }

// BaseAttrs returns the attributes of a base, or nil.
func (e *Entity) BaseAttrs() *BaseAttrs {
	a, _ := e.Attrs.(*BaseAttrs)
	return a
}

// DeviceAttrs returns the attributes of a device, or nil.
func (e *Entity) DeviceAttrs() *DeviceAttrs {
	a, _ := e.Attrs.(*DeviceAttrs)
	return a
}

// LinkAttrs returns the attributes of a link, or nil.
func (e *Entity) LinkAttrs() *LinkAttrs {
	a, _ := e.Attrs.(*LinkAttrs)
	return a
}

// TextAttrs returns the attributes of a text, or nil.
func (e *Entity) TextAttrs() *TextAttrs {
	a, _ := e.Attrs.(*TextAttrs)
	return a
}

// SymbolAttrs returns the attributes of a symbol, or nil.
func (e *Entity) SymbolAttrs() *SymbolAttrs {
	a, _ := e.Attrs.(*SymbolAttrs)
	return a
}

// LineAttrs returns the attributes of a line, or nil.
func (e *Entity) LineAttrs() *LineAttrs {
	a, _ := e.Attrs.(*LineAttrs)
	return a
}
