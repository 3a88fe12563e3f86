// Package pkg provides the core libraries for netscene 3D network diagrams.
//
// # Overview
//
// netscene turns a network diagram (floors, devices, links, texts, symbols
// and standalone lines, in a layer 2 and a layer 3 view) into a scene graph
// of positioned, textured meshes. The pkg directory is organized as:
//
//  1. Model: [scene] (entity index and render nodes), [geom], [mesh]
//  2. Geometry: [shapes] (device, floor, cable, text and symbol generators),
//     [templates] (device type library), [route] (link routing)
//  3. Editing: [edit] (spatial edit engine), [config] (grid and display settings)
//  4. Reading: [query] (picking, coordinate conversion, link lookups),
//     [render] (cameras and the draw controller)
//  5. Interchange: [io] (diagram documents), [export] (mesh and topology output)
//  6. Orchestration: [pipeline] (load → build → export), [cache], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	Diagram document (JSON)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [edit] package (apply entities, build meshes, route links)
//	         ↓
//	    [scene] package (two forests of render nodes)
//	         ↓
//	    [render] / [export] packages (camera, OBJ, mesh JSON, DOT, SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/netscene/pkg/edit"
//	    "github.com/matzehuels/netscene/pkg/export"
//	    "github.com/matzehuels/netscene/pkg/io"
//	    "github.com/matzehuels/netscene/pkg/scene"
//	)
//
//	doc, _ := io.ImportJSON("campus.json")
//	ed := edit.New(scene.New())
//	if err := io.Apply(doc, ed); err != nil {
//	    return err
//	}
//	return export.WriteOBJ(os.Stdout, ed.Scene().L2)
//
// Edits keep the scene consistent: moving a device re-routes its links,
// deleting a base removes its devices and their links, and grid snapping
// applies to every placement made with snapping requested.
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/scene
// [geom]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/geom
// [mesh]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/mesh
// [shapes]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/shapes
// [templates]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/templates
// [route]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/route
// [edit]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/edit
// [config]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/config
// [query]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/query
// [render]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/io
// [export]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/netscene/pkg/observability
package pkg
