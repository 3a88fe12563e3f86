package query

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/render"
	"github.com/matzehuels/netscene/pkg/scene"
)

// MaxWaypointDistance2 is the squared distance beyond which a waypoint is
// never reported as closest.
const MaxWaypointDistance2 = 10000.0

// Hit is one ray intersection with a tagged render node.
type Hit struct {
	View     scene.View
	Kind     scene.Kind
	ID       string
	Role     scene.Role // part that was hit; RoleEntity for the root mesh
	Index    int        // segment or joint index for link parts
	Node     *scene.Node
	Point    r3.Vec  // world-space hit point
	Distance float64 // from the ray origin
}

// Querier runs read-only queries against a scene.
type Querier struct {
	scene *scene.Scene
	proj  render.Projector
}

// New returns a querier for s. proj may be nil when screen picking is not
// needed.
func New(s *scene.Scene, proj render.Projector) *Querier {
	return &Querier{scene: s, proj: proj}
}

// PointToRay returns the world ray through screen position (x, y) of view
// v. Without a projector it returns the zero ray and false.
func (q *Querier) PointToRay(v scene.View, x, y float64) (geom.Ray, bool) {
	if q.proj == nil {
		return geom.Ray{}, false
	}
	return q.proj.PointToRay(v, x, y), true
}

// Pick intersects the ray through (x, y) with the entities of view v.
func (q *Querier) Pick(v scene.View, x, y float64) []Hit {
	ray, ok := q.PointToRay(v, x, y)
	if !ok {
		return nil
	}
	return q.IntersectEntities(v, ray)
}

// IntersectEntities returns every visible tagged node the ray hits, nearest
// first. Each node contributes at most its nearest hit.
func (q *Querier) IntersectEntities(v scene.View, ray geom.Ray) []Hit {
	f := q.scene.View(v)
	if f == nil {
		return nil
	}
	scale := r3.Norm(ray.Dir)
	if scale == 0 {
		return nil
	}

	var hits []Hit
	f.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if !n.Tagged() || n.Mesh.Empty() {
			return true
		}
		world := n.World()
		if !ray.HitsSphere(geom.Apply(world, n.Mesh.Sphere.Center), n.Mesh.Sphere.Radius*maxScale(world)) {
			return true
		}
		if t, ok := nearest(ray, world, n); ok {
			hits = append(hits, Hit{
				View:     v,
				Kind:     n.Kind,
				ID:       n.ID,
				Role:     n.Role,
				Index:    n.Index,
				Node:     n,
				Point:    ray.At(t),
				Distance: t * scale,
			})
		}
		return true
	})

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func nearest(ray geom.Ray, world mat.Matrix, n *scene.Node) (float64, bool) {
	best, found := math.Inf(1), false
	// A mirroring transform flips the winding of every face.
	mirrored := mat.Det(world) < 0
	for i := range n.Mesh.Faces {
		tri := n.Mesh.Triangle(i)
		a, b, c := geom.Apply(world, tri[0]), geom.Apply(world, tri[1]), geom.Apply(world, tri[2])
		if mirrored {
			b, c = c, b
		}
		if t, ok := ray.IntersectTriangle(a, b, c); ok && t < best {
			best, found = t, true
		}
	}
	return best, found
}

// maxScale returns the largest axis stretch of the linear part of m.
func maxScale(m mat.Matrix) float64 {
	s := 0.0
	for j := 0; j < 3; j++ {
		col := r3.Vec{X: m.At(0, j), Y: m.At(1, j), Z: m.At(2, j)}
		s = math.Max(s, r3.Norm(col))
	}
	return s
}

// IntersectHorizontalPlane returns where ray crosses y = height.
func (q *Querier) IntersectHorizontalPlane(ray geom.Ray, height float64) (r3.Vec, bool) {
	return ray.IntersectPlaneY(height)
}

// WorldToLocal maps world point p into the frame of entity (v, kind, id).
// It reports false when the entity does not exist or its transform is
// degenerate.
func (q *Querier) WorldToLocal(v scene.View, kind scene.Kind, id string, p r3.Vec) (r3.Vec, bool) {
	n := q.scene.Find(v, kind, id)
	if n == nil {
		return p, false
	}
	return n.WorldToLocal(p)
}

// LocalToWorld maps point p from the frame of entity (v, kind, id) to world
// space.
func (q *Querier) LocalToWorld(v scene.View, kind scene.Kind, id string, p r3.Vec) (r3.Vec, bool) {
	n := q.scene.Find(v, kind, id)
	if n == nil {
		return p, false
	}
	return n.LocalToWorld(p), true
}

// ClosestWaypointIndex returns the index of the stored joint of link id
// nearest to p by squared distance, or -1 when the link is missing, has no
// joints, or every joint is farther than MaxWaypointDistance2.
func (q *Querier) ClosestWaypointIndex(v scene.View, id string, p r3.Vec) int {
	n := q.scene.Find(v, scene.KindLink, id)
	if n == nil {
		return -1
	}
	a := n.Entity.LinkAttrs()
	if a == nil {
		return -1
	}
	index, best := -1, MaxWaypointDistance2
	for i, j := range a.Joints {
		if d := geom.Dist2(j, p); d < best {
			index, best = i, d
		}
	}
	return index
}

// LinksOfDevice returns the ids of links with an endpoint on device id.
func (q *Querier) LinksOfDevice(v scene.View, id string) []string {
	f := q.scene.View(v)
	if f == nil {
		return nil
	}
	return ids(f.LinksOfDevice(id))
}

// LinksOfBase returns the ids of links touching any device on base id,
// sorted.
func (q *Querier) LinksOfBase(v scene.View, id string) []string {
	f := q.scene.View(v)
	if f == nil {
		return nil
	}
	base := f.Find(scene.KindBase, id)
	if base == nil {
		return nil
	}
	out := make([]string, 0)
	for lid := range f.LinksOfBase(base) {
		out = append(out, lid)
	}
	sort.Strings(out)
	return out
}

func ids(nodes []*scene.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
