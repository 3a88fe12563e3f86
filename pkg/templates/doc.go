// Package templates holds the parametric geometry used for device types that
// have no procedural generator of their own.
//
// A [Template] stores up to two surfaces (front and detail), each as template
// space vertices, triangles and per-face UVs, plus a base scale, a shading
// flag and the texture names of both surfaces. Shape generators multiply
// template vertices by the device size and the base scale; triangles and UVs
// are used verbatim.
//
// # Lookup
//
// [Library.Lookup] never fails: a type that is not registered resolves to the
// [Unknown] template, which every library contains.
//
// # Loading
//
// Libraries are read from JSON or TOML documents that map a type code to a
// template:
//
//	{
//	  "R": {
//	    "v": [[[-0.5, 1, 0.5], ...], [...]],
//	    "f": [[[0, 1, 2], ...], [...]],
//	    "uv": [[[[0, 1], [1, 1], [1, 0]], ...], [...]],
//	    "base_scale": [1, 0.4, 1],
//	    "flat_normals": true,
//	    "texture": ["R_1.png", "R_2.png"]
//	  }
//	}
//
// Loaded templates are merged over [Builtin], so the fallback is always
// present.
package templates
