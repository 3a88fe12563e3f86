// Package query answers spatial questions about a scene without changing it.
//
// A [Querier] picks entities under a screen position, intersects rays with
// horizontal planes, converts points between world space and an entity's
// local frame, and finds the link waypoint nearest to a point. Picking only
// reports render nodes that map back to an entity, so callers receive
// (view, kind, id) references plus the part that was hit:
//
//	q := query.New(s, ctl)
//	ray := q.PointToRay(scene.ViewL2, x, y)
//	for _, h := range q.IntersectEntities(scene.ViewL2, ray) {
//		fmt.Println(h.Kind, h.ID, h.Point)
//	}
//
// Results reflect the scene as of the last completed edit; geometry is never
// recomputed lazily.
package query
