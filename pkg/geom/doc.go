// Package geom provides the small amount of 3D math the scene needs on top
// of gonum's spatial packages.
//
// Points and directions are [r3.Vec] values and texture coordinates are
// [r2.Vec] values. Affine transforms are 4x4 [mat.Dense] matrices built from
// a [Transform] (translation, Euler rotation, scale) so that world matrices
// can be composed along a node chain and inverted for world-to-local
// conversion.
//
// # Rotation Order
//
// Euler angles are applied in the order named by [Order]. For [OrderXYZ] the
// rotation matrix is Rx·Ry·Rz, for [OrderYXZ] it is Ry·Rx·Rz, which matches
// the conventions used by common WebGL scene graphs.
//
// # Grid Snapping
//
// [Snap] rounds a value to the nearest multiple of a step. Ties round up:
// Snap(0.25, 0.5) is 0.5 and Snap(-0.25, 0.5) is 0.
package geom
