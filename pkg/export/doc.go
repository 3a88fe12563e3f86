// Package export writes scene views to artifact formats.
//
// # Mesh formats
//
// [Collect] gathers every visible, tagged mesh of a view and maps it to
// world space. [WriteMeshJSON] and [WriteOBJ] serialize the result; [Sink]
// wraps both as a [render.Renderer] so a [render.Controller] can drive it
// like any other renderer:
//
//	sink := export.NewSink(export.FormatOBJ, w)
//	ctrl := render.NewController(s, sink)
//	_, err := ctrl.Draw()
//
// # Topology
//
// [TopologyDOT] describes the devices and links of a view as an undirected
// Graphviz graph, clustering devices by base. [RenderSVG] lays the graph out
// with Graphviz (compiled to WebAssembly, no system install needed).
package export
