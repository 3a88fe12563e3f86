package scene

import "fmt"

type key struct {
	kind Kind
	id   string
}

// Forest is the node forest of one view.
type Forest struct {
	view  View
	roots []*Node
	index map[key]*Node
}

// NewForest returns an empty forest for view v.
func NewForest(v View) *Forest {
	return &Forest{view: v, index: make(map[key]*Node)}
}

// View returns the view the forest belongs to.
func (f *Forest) View() View { return f.view }

// Roots returns the top-level nodes. The slice must not be modified.
func (f *Forest) Roots() []*Node { return f.roots }

// Len returns the number of indexed entities.
func (f *Forest) Len() int { return len(f.index) }

// Find returns the entity node of the given kind and id, or nil.
func (f *Forest) Find(kind Kind, id string) *Node {
	return f.index[key{kind, id}]
}

// Insert adds the entity node n below parent, or as a root when parent is
// nil. It fails with [ErrDuplicateID] if the key is taken.
func (f *Forest) Insert(parent, n *Node) error {
	k := key{n.Kind, n.ID}
	if _, ok := f.index[k]; ok {
		return fmt.Errorf("%w: %s %q in %s", ErrDuplicateID, n.Kind, n.ID, f.view)
	}
	f.attach(parent, n)
	f.index[k] = n
	return nil
}

// Reparent moves n below parent (or to the roots when parent is nil). The
// index entry is unchanged.
func (f *Forest) Reparent(n, parent *Node) {
	if n.parent == parent && (parent != nil || f.isRoot(n)) {
		return
	}
	f.detach(n)
	f.attach(parent, n)
}

// Remove detaches n and drops every entity in its subtree from the index.
func (f *Forest) Remove(n *Node) {
	f.detach(n)
	n.Walk(func(c *Node) bool {
		if c.IsEntity() {
			k := key{c.Kind, c.ID}
			if f.index[k] == c {
				delete(f.index, k)
			}
		}
		return true
	})
}

// Walk visits every node depth-first in scene order.
func (f *Forest) Walk(fn func(*Node) bool) {
	for _, r := range f.roots {
		r.Walk(fn)
	}
}

// Entities returns the entity nodes of the given kind in scene order.
func (f *Forest) Entities(kind Kind) []*Node {
	var out []*Node
	f.Walk(func(n *Node) bool {
		if n.IsEntity() && n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// LinksOfDevice returns the links with an endpoint on device id, in scene
// order.
func (f *Forest) LinksOfDevice(id string) []*Node {
	var out []*Node
	for _, n := range f.roots {
		if n.Kind != KindLink || !n.IsEntity() {
			continue
		}
		if a := n.Entity.LinkAttrs(); a != nil && a.Touches(id) {
			out = append(out, n)
		}
	}
	return out
}

// LinksOfBase returns the links touching any device directly contained by
// base, keyed by link id.
func (f *Forest) LinksOfBase(base *Node) map[string]*Node {
	devices := make(map[string]bool)
	for _, c := range base.children {
		if c.Kind == KindDevice && c.IsEntity() {
			devices[c.ID] = true
		}
	}
	out := make(map[string]*Node)
	if len(devices) == 0 {
		return out
	}
	for _, n := range f.roots {
		if n.Kind != KindLink || !n.IsEntity() {
			continue
		}
		a := n.Entity.LinkAttrs()
		if a == nil {
			continue
		}
		if devices[a.Endpoints[0].DeviceID] || devices[a.Endpoints[1].DeviceID] {
			out[n.ID] = n
		}
	}
	return out
}

func (f *Forest) attach(parent, n *Node) {
	if parent == nil {
		n.parent = nil
		f.roots = append(f.roots, n)
		return
	}
	parent.AddPart(n)
}

func (f *Forest) detach(n *Node) {
	if n.parent != nil {
		n.detach()
		return
	}
	for i, r := range f.roots {
		if r == n {
			f.roots = append(f.roots[:i], f.roots[i+1:]...)
			return
		}
	}
}

func (f *Forest) isRoot(n *Node) bool {
	for _, r := range f.roots {
		if r == n {
			return true
		}
	}
	return false
}
