package scene

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/mesh"
)

// Node is an element of a view's scene tree. Entity roots have Role
// RoleEntity; generated render nodes below them share the root's Kind, ID and
// Entity.
type Node struct {
	Kind     Kind
	ID       string
	Role     Role
	Index    int // segment or joint index for link parts
	Entity   *Entity
	Local    geom.Transform
	Mesh     *mesh.Buffer
	Material Material
	Visible  bool

	parent   *Node
	children []*Node
}

// NewNode returns a visible node with an identity transform.
func NewNode(kind Kind, id string, role Role, e *Entity) *Node {
	return &Node{Kind: kind, ID: id, Role: role, Entity: e, Local: geom.Identity(), Visible: true}
}

// Parent returns the parent node, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Tagged reports whether the node maps back to an entity.
func (n *Node) Tagged() bool { return n.ID != "" }

// IsEntity reports whether n is the root node of its entity.
func (n *Node) IsEntity() bool { return n.Role == RoleEntity && n.Entity != nil }

// AddPart attaches a generated render node below n. Parts are not indexed.
func (n *Node) AddPart(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

// Part returns the first child with the given role, or nil.
func (n *Node) Part(role Role) *Node {
	for _, c := range n.children {
		if c.Role == role {
			return c
		}
	}
	return nil
}

// Parts returns the children with the given role in order.
func (n *Node) Parts(role Role) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

// RemoveParts drops all generated children whose role is in roles. Entity
// children are kept.
func (n *Node) RemoveParts(roles ...Role) {
	kept := n.children[:0]
	for _, c := range n.children {
		drop := false
		for _, r := range roles {
			if c.Role == r && !c.IsEntity() {
				drop = true
				break
			}
		}
		if drop {
			c.parent = nil
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = kept
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// World returns the node's local-to-world matrix.
func (n *Node) World() *mat.Dense {
	m := n.Local.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = geom.Compose(p.Local.Matrix(), m)
	}
	return m
}

// WorldPosition returns the world position of the node's origin.
func (n *Node) WorldPosition() r3.Vec {
	return geom.Translation(n.World())
}

// LocalToWorld maps a point in the node's frame to world space.
func (n *Node) LocalToWorld(p r3.Vec) r3.Vec {
	return geom.Apply(n.World(), p)
}

// WorldToLocal maps a world point into the node's frame. A degenerate
// transform (zero scale) returns p unchanged and false.
func (n *Node) WorldToLocal(p r3.Vec) (r3.Vec, bool) {
	inv, err := geom.Invert(n.World())
	if err != nil {
		return p, false
	}
	return geom.Apply(inv, p), true
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
