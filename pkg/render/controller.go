package render

import (
	"io"
	"math"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
	"github.com/matzehuels/netscene/pkg/scene"
)

// Controller drives a Renderer on demand. Apart from TextureLoaded, which
// may be called from any goroutine, it is owned by one goroutine.
type Controller struct {
	scene    *scene.Scene
	renderer Renderer
	textures TextureProvider
	logger   *log.Logger

	view     scene.View
	mode     Projection
	rigs     map[scene.View]*Rig
	viewport Viewport

	mu        sync.Mutex
	requested map[string]bool
	failed    map[string]error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for texture and draw failures.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithTextures sets the texture provider used by LoadTextures.
func WithTextures(p TextureProvider) Option { return func(c *Controller) { c.textures = p } }

// WithViewport sets the initial viewport size.
func WithViewport(vp Viewport) Option { return func(c *Controller) { c.viewport = vp } }

// NewController returns a controller showing the L2 view through the
// perspective camera. The scene is marked dirty so the first Draw paints.
func NewController(s *scene.Scene, r Renderer, opts ...Option) *Controller {
	c := &Controller{
		scene:     s,
		renderer:  r,
		view:      scene.ViewL2,
		rigs:      make(map[scene.View]*Rig, len(scene.Views)),
		requested: make(map[string]bool),
		failed:    make(map[string]error),
	}
	for _, v := range scene.Views {
		c.rigs[v] = NewRig()
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.MarkDirty()
	return c
}

// Draw renders the active view if anything changed since the last draw and
// reports whether it did. A failed render leaves the scene dirty.
func (c *Controller) Draw() (bool, error) {
	if !c.scene.ClearDirty() {
		return false, nil
	}
	if err := c.renderer.Render(c.scene.View(c.view), c.Camera(), c.viewport); err != nil {
		c.scene.MarkDirty()
		c.logger.Warn("render failed", "view", c.view, "err", err)
		return false, err
	}
	return true, nil
}

// View returns the active view.
func (c *Controller) View() scene.View { return c.view }

// SetView switches the displayed view.
func (c *Controller) SetView(v scene.View) {
	c.view = v
	c.scene.MarkDirty()
}

// Viewport returns the current viewport.
func (c *Controller) Viewport() Viewport { return c.viewport }

// Resize updates the viewport. Camera aspect follows from it.
func (c *Controller) Resize(vp Viewport) {
	c.viewport = vp
	c.scene.MarkDirty()
}

// Projection returns the active camera model.
func (c *Controller) Projection() Projection { return c.mode }

// Rig returns the camera rig of view v.
func (c *Controller) Rig(v scene.View) *Rig { return c.rigs[v] }

// Camera returns a copy of the active camera of the active view.
func (c *Controller) Camera() Camera { return *c.active() }

func (c *Controller) active() *Camera {
	return c.rigs[c.view].Camera(c.mode)
}

// SetCamera places the active camera.
func (c *Controller) SetCamera(pos r3.Vec, rot geom.Euler) {
	cam := c.active()
	cam.Position = pos
	cam.Rotation.X, cam.Rotation.Y, cam.Rotation.Z = rot.X, rot.Y, rot.Z
	c.scene.MarkDirty()
}

// MoveCamera pans the active camera by a pointer drag of (dx, dy) pixels.
func (c *Controller) MoveCamera(dx, dy float64) {
	c.active().pan(dx, dy)
	c.scene.MarkDirty()
}

// RotateCamera turns the active camera by a pointer drag of (dx, dy) pixels.
func (c *Controller) RotateCamera(dx, dy float64) {
	c.active().orbit(dx, dy)
	c.scene.MarkDirty()
}

// ZoomCamera zooms by a wheel delta. Orthographic zoom is bounded by a tenth
// of the viewport height.
func (c *Controller) ZoomCamera(dy float64) {
	limit := math.Inf(1)
	if c.viewport.Height > 0 {
		limit = c.viewport.Height * .1
	}
	c.active().zoom(dy, limit)
	c.scene.MarkDirty()
}

// ToggleCamera switches between perspective and orthographic projection and
// returns the new mode.
func (c *Controller) ToggleCamera() Projection {
	if c.mode == Perspective {
		c.mode = Orthographic
	} else {
		c.mode = Perspective
	}
	c.scene.MarkDirty()
	return c.mode
}

// PointToRay implements Projector.
func (c *Controller) PointToRay(v scene.View, x, y float64) geom.Ray {
	if p, ok := c.renderer.(Projector); ok {
		return p.PointToRay(v, x, y)
	}
	rig, ok := c.rigs[v]
	if !ok {
		rig = c.rigs[c.view]
	}
	return rig.Camera(c.mode).Ray(c.viewport, x, y)
}

// LoadTextures requests every texture referenced by either view that has
// not been requested yet. It returns the names requested by this call.
func (c *Controller) LoadTextures() []string {
	if c.textures == nil {
		return nil
	}
	var names []string
	seen := map[string]bool{}
	for _, v := range scene.Views {
		c.scene.View(v).Walk(func(n *scene.Node) bool {
			if t := n.Material.Texture; t != "" && !seen[t] {
				seen[t] = true
				names = append(names, t)
			}
			return true
		})
	}
	sort.Strings(names)

	c.mu.Lock()
	var pending []string
	for _, name := range names {
		if !c.requested[name] {
			c.requested[name] = true
			pending = append(pending, name)
		}
	}
	c.mu.Unlock()

	for _, name := range pending {
		c.textures.Load(name, c.textureDone)
	}
	return pending
}

func (c *Controller) textureDone(name string, err error) {
	if err != nil {
		c.mu.Lock()
		c.failed[name] = err
		c.mu.Unlock()
		c.logger.Warn("texture load failed", "texture", name, "err", err)
	}
	c.TextureLoaded(name)
}

// TextureLoaded schedules a redraw after a texture finished loading. It is
// safe to call from any goroutine.
func (c *Controller) TextureLoaded(name string) {
	c.logger.Debug("texture loaded", "texture", name)
	c.scene.MarkDirty()
}

// TextureErr returns the load error recorded for name, if any.
func (c *Controller) TextureErr(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[name]
}
