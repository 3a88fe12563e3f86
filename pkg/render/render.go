package render

import (
	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/scene"
	"github.com/matzehuels/netscene/pkg/shapes"
)

// Renderer draws a view's forest as seen through cam.
type Renderer interface {
	Render(f *scene.Forest, cam Camera, vp Viewport) error
}

// Projector maps a pixel position in the viewport of view v to a world ray.
type Projector interface {
	PointToRay(v scene.View, x, y float64) geom.Ray
}

// TextureProvider loads textures by name. Load must not block; done is
// called exactly once, possibly from another goroutine.
type TextureProvider interface {
	Load(name string, done func(name string, err error))
}

// GlyphSource produces text outlines synchronously.
type GlyphSource = shapes.GlyphSource

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Aspect returns Width/Height, or 1 for an empty viewport.
func (vp Viewport) Aspect() float64 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 1
	}
	return vp.Width / vp.Height
}
