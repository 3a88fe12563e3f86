// Package shapes synthesizes the triangle meshes of every entity kind.
//
// Bases and devices are drawn as two paired surfaces ([Pair]): a front
// surface carrying the main texture (the floor top, the device faceplate)
// and a detail surface for everything else (floor skirts and columns, device
// bevels and sides). Both are always generated together so their
// proportions never diverge.
//
// # Devices
//
// [Device] dispatches on the device type code:
//
//	S   switch box       size × (1, .4, 1)
//	F   firewall box     size × (1, 1.2, .6)
//	LB  load balancer    size × (1, .4, 1), back edge shrunk to .6 wide, .8 high
//	*   template         template vertices × size × template base scale
//
// Template lookups fall back to the UNKNOWN template, so every type renders.
//
// # Floors
//
// [Floor] draws a textured top rectangle at the base height and, depending on
// the [scene.Subtype], a thin floating skirt, a skirt on four corner columns, or a
// skirt reaching the ground.
//
// # Links
//
// [Cable] is an 8-sided cylinder from a start point toward an end point,
// expressed relative to the start point. [Joint] is the sphere drawn at
// waypoints.
//
// # Text
//
// Text outlines come from a [GlyphSource]; [Text] aligns them around the
// origin. [BlockFont] is a font-free source that draws one box per glyph.
package shapes
