package route

import (
	"io"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/observability"
	"github.com/matzehuels/netscene/pkg/scene"
	"github.com/matzehuels/netscene/pkg/shapes"
)

// Router resolves link anchors against a view and rebuilds link geometry.
type Router struct {
	logger *log.Logger
}

// NewRouter returns a router that logs dropped links to logger. A nil logger
// discards output.
func NewRouter(logger *log.Logger) *Router {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Router{logger: logger}
}

// Anchors returns the world-space attachment points of both endpoints of a,
// or false if either device is missing from f.
func (r *Router) Anchors(f *scene.Forest, a *scene.LinkAttrs) (r3.Vec, r3.Vec, bool) {
	var pts [2]r3.Vec
	for i, ep := range a.Endpoints {
		dev := f.Find(scene.KindDevice, ep.DeviceID)
		if dev == nil {
			return r3.Vec{}, r3.Vec{}, false
		}
		pts[i] = r3.Add(dev.WorldPosition(), r3.Vec{Y: a.Height})
	}
	return pts[0], pts[1], true
}

// Path computes the current path of link node n.
func (r *Router) Path(f *scene.Forest, n *scene.Node) (Path, bool) {
	a := n.Entity.LinkAttrs()
	if a == nil {
		return Path{}, false
	}
	start, end, ok := r.Anchors(f, a)
	if !ok {
		return Path{}, false
	}
	if a.Routing == scene.RoutingOrthogonal {
		return Orthogonal(start, end, a.Order), true
	}
	return Freeform(start, end, a.Joints), true
}

// Update replaces the segment and joint children of link node n with
// geometry for its current path.
func (r *Router) Update(f *scene.Forest, n *scene.Node) {
	n.RemoveParts(scene.RoleSegment, scene.RoleJoint)
	p, ok := r.Path(f, n)
	if !ok {
		r.logger.Debug("link endpoint unresolved", "view", f.View(), "link", n.ID)
		observability.Scene().OnRoute(n.ID, 0, 0)
		return
	}

	a := n.Entity.LinkAttrs()
	mat := scene.Material{Color: a.Color, Shader: scene.ShaderStandard}
	for i, s := range p.Segments {
		c := scene.NewNode(scene.KindLink, n.ID, scene.RoleSegment, n.Entity)
		c.Index = i
		c.Local.Position = s.From
		c.Mesh = shapes.Cable(s.From, s.To, a.Weight)
		c.Material = mat
		n.AddPart(c)
	}
	for i, j := range p.Joints {
		c := scene.NewNode(scene.KindLink, n.ID, scene.RoleJoint, n.Entity)
		c.Index = i
		c.Local.Position = j
		c.Mesh = shapes.Joint(a.Weight)
		c.Material = mat
		n.AddPart(c)
	}
	observability.Scene().OnRoute(n.ID, len(p.Segments), len(p.Joints))
}

// Recolor updates the material of every part of link node n in place.
func (r *Router) Recolor(n *scene.Node) {
	a := n.Entity.LinkAttrs()
	if a == nil {
		return
	}
	for _, c := range n.Children() {
		c.Material.Color = a.Color
	}
}

// UpdateAll re-routes every link in links.
func (r *Router) UpdateAll(f *scene.Forest, links []*scene.Node) {
	for _, n := range links {
		r.Update(f, n)
	}
}
