package edit

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/scene"
)

// Placement reports where an entity is.
type Placement struct {
	// Position is the stored position. For devices, texts and symbols Y is
	// the offset above the owning base.
	Position r3.Vec
	// Local is the position in the parent's frame.
	Local r3.Vec
	// World is the world-space position of the entity origin.
	World r3.Vec
	// Base is the owning base, if any.
	Base string
}

// Entity returns the entity (v, kind, id), or nil. The returned value must
// not be modified directly.
func (ed *Editor) Entity(v scene.View, kind scene.Kind, id string) *scene.Entity {
	n := ed.scene.Find(v, kind, id)
	if n == nil {
		return nil
	}
	return n.Entity
}

// Position returns the placement of an entity.
func (ed *Editor) Position(v scene.View, kind scene.Kind, id string) (Placement, bool) {
	n := ed.scene.Find(v, kind, id)
	if n == nil {
		return Placement{}, false
	}
	return Placement{
		Position: n.Entity.Position,
		Local:    n.Local.Position,
		World:    n.WorldPosition(),
		Base:     n.Entity.Base,
	}, true
}

// Rotation returns the rotation of an entity in radians.
func (ed *Editor) Rotation(v scene.View, kind scene.Kind, id string) (r3.Vec, bool) {
	n := ed.scene.Find(v, kind, id)
	if n == nil {
		return r3.Vec{}, false
	}
	return n.Entity.Rotation, true
}

// Size returns the size of an entity.
func (ed *Editor) Size(v scene.View, kind scene.Kind, id string) (r3.Vec, bool) {
	n := ed.scene.Find(v, kind, id)
	if n == nil {
		return r3.Vec{}, false
	}
	return n.Entity.Scale, true
}
