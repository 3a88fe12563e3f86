package scene

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateID is returned by [Forest.Insert] when an entity of the same
	// kind and id already exists in the view.
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrUnknownView is returned by [ParseView] for names other than L2 and L3.
	ErrUnknownView = errors.New("unknown view")

	// ErrUnknownKind is returned by [ParseKind] for unsupported entity kinds.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// View names one of the two parallel diagrams.
type View string

const (
	ViewL2 View = "L2"
	ViewL3 View = "L3"
)

// Views lists both views in order.
var Views = []View{ViewL2, ViewL3}

// ParseView maps "L2"/"L3" (case-insensitive) to a View.
func ParseView(s string) (View, error) {
	switch View(strings.ToUpper(s)) {
	case ViewL2:
		return ViewL2, nil
	case ViewL3:
		return ViewL3, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Kind is the type of an entity.
type Kind string

const (
	KindBase   Kind = "base"
	KindDevice Kind = "device"
	KindLink   Kind = "link"
	KindText   Kind = "text"
	KindSymbol Kind = "symbol"
	KindLine   Kind = "line"
)

// Kinds lists every entity kind.
var Kinds = []Kind{KindBase, KindDevice, KindLink, KindText, KindSymbol, KindLine}

// ParseKind validates an entity kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Attached reports whether entities of kind k live on a base.
func (k Kind) Attached() bool {
	return k == KindDevice || k == KindText || k == KindSymbol
}

// Subtype selects the elevation geometry drawn below a floor.
type Subtype string

const (
	SubtypeNone     Subtype = "n"
	SubtypeFloat    Subtype = "f"
	SubtypePlatform Subtype = "p"
	SubtypeFlush    Subtype = "g"
)

// ParseSubtype maps a subtype code or name to a Subtype. Unrecognized codes
// draw a flush skirt down to the ground.
func ParseSubtype(s string) Subtype {
	switch strings.ToLower(s) {
	case "n", "none":
		return SubtypeNone
	case "f", "float":
		return SubtypeFloat
	case "p", "platform":
		return SubtypePlatform
	default:
		return SubtypeFlush
	}
}

// String returns the long name of the subtype.
func (s Subtype) String() string {
	switch s {
	case SubtypeNone:
		return "none"
	case SubtypeFloat:
		return "float"
	case SubtypePlatform:
		return "platform"
	}
	return "flush"
}

// Role distinguishes the nodes generated for one entity.
type Role string

const (
	RoleEntity  Role = ""
	RoleFront   Role = "surface1"
	RoleDetail  Role = "surface2"
	RoleLabel   Role = "name"
	RoleSegment Role = "segment"
	RoleJoint   Role = "joint"
	RolePart    Role = "part"
)

// Shader is the lighting model a renderer should apply.
type Shader int

const (
	ShaderStandard Shader = iota
	ShaderPhong
	ShaderDevice
)

// Material describes how a node is drawn. Color is 0xRRGGBB.
type Material struct {
	Color   uint32
	Texture string
	Shader  Shader
}

// RGB returns the color channels scaled to [0,1).
func (m Material) RGB() (r, g, b float64) {
	return float64(m.Color>>16) / 256, float64((m.Color>>8)&0xFF) / 256, float64(m.Color&0xFF) / 256
}

// Metadata stores attributes the scene carries without interpreting them.
type Metadata map[string]any

// Clone returns a shallow copy of m; nil stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
