// Package edit is the spatial edit engine of a diagram scene.
//
// An [Editor] owns the mutation path of a [scene.Scene]: it creates entities,
// moves, rotates and resizes them, updates their attributes and deletes them,
// regenerating exactly the geometry each change affects before returning.
//
// # Failure policy
//
// Edits address entities by (view, kind, id). An edit on an entity that does
// not exist is a silent no-op, since editor commands may race with earlier
// deletions. A value that would violate a constraint (a size below its
// minimum, an out-of-range joint index) is dropped while the rest of the
// edit applies. Only creation returns errors.
//
// # Grid snapping
//
// When an edit asks for snapping and the grid is active, values are rounded
// to the nearest multiple of the grid step with ties rounding up:
//
//	snapped = floor(v/step + 0.5) * step
//
// Moves snap X and Z independently to their own steps, rotations snap to the
// angular step and resizes snap to the resize step.
//
// # Cascades
//
// Devices, texts and symbols sit on a base. Their stored Y is an offset above
// the base top, so resizing a base lifts them with it. Moving a device
// re-routes its links; moving or rotating a base re-routes every link
// touching one of its devices. Deleting a device deletes its links and
// deleting a base deletes everything on it.
package edit
