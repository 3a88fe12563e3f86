// Package render connects a scene to an external drawing backend.
//
// # Overview
//
// The scene graph owns no GPU state. A host supplies a [Renderer] that draws
// one view's forest through a [Camera], a [TextureProvider] that fetches
// surface images in the background, and a glyph source for text outlines.
// The [Controller] ties these together:
//
//   - it tracks the active view and one camera [Rig] per view
//   - [Controller.Draw] renders only when the scene is dirty
//   - camera moves, view switches and finished texture loads mark the scene
//     dirty so the next Draw repaints
//
// # Cameras
//
// Each view keeps a perspective and an orthographic camera. The projection
// mode is shared by both views and switched with [Controller.ToggleCamera].
//
//	ctl := render.NewController(s, backend, render.WithViewport(render.Viewport{Width: 1280, Height: 720}))
//	ctl.RotateCamera(40, 0)
//	ctl.ZoomCamera(-20)
//	drawn, err := ctl.Draw()
//
// # Picking
//
// The controller implements [Projector], turning a pixel position into a
// world-space ray for the query package. When the Renderer also implements
// Projector its projection is used instead of the built-in camera math.
package render
