// Package route computes and materializes link geometry.
//
// A link connects the anchors of two devices. An anchor is the device's world
// position raised by the link's attachment height. Two routing modes are
// supported:
//
//   - [Freeform] passes through every stored joint in order, emitting one
//     segment per consecutive pair and a joint sphere at each waypoint.
//   - [Orthogonal] moves along the axes named by the first two characters of
//     the link's order string (for example "XZ"), then covers whatever delta
//     remains with a final segment. A joint is placed at a corner only when
//     the path continues past it.
//
// Zero-length segments are never emitted.
//
// # Materialization
//
// [Router.Update] rebuilds a link node's children from its current path: one
// cable mesh per segment (placed at the segment start) and one sphere per
// joint. The router must run whenever the link's attributes change or either
// endpoint, or the base holding it, moves. If an endpoint cannot be resolved
// the link is left without geometry.
package route
