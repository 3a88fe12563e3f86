// Package mesh turns vertex, triangle and per-face UV lists into
// render-ready triangle buffers.
//
// A [Builder] accumulates geometry; [Builder.Build] (or [FromLists] for
// externally supplied lists) produces a [Buffer] whose bounding box,
// bounding sphere and normals are already computed. A buffer is only handed
// to a renderer after this step, so bounds used for picking and label
// placement are never stale.
//
// # Shading
//
// [Flat] assigns every corner of a triangle the triangle's face normal,
// producing hard edges. [Smooth] averages the area-weighted normals of all
// faces sharing a vertex.
//
// # UVs
//
// UVs are stored per face corner ([FaceUV]) rather than per vertex, so a
// vertex shared by two faces can carry different texture coordinates on
// each.
package mesh
