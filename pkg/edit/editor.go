package edit

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/observability"
	"github.com/matzehuels/netscene/pkg/route"
	"github.com/matzehuels/netscene/pkg/scene"
	"github.com/matzehuels/netscene/pkg/shapes"
	"github.com/matzehuels/netscene/pkg/templates"
)

// Editor applies edits to a scene. It is not safe for concurrent use.
type Editor struct {
	scene    *scene.Scene
	settings config.Settings
	lib      *templates.Library
	glyphs   shapes.GlyphSource
	router   *route.Router
	logger   *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger for dropped edits.
func WithLogger(l *log.Logger) Option { return func(e *Editor) { e.logger = l } }

// WithLibrary sets the device template library.
func WithLibrary(lib *templates.Library) Option { return func(e *Editor) { e.lib = lib } }

// WithGlyphs sets the glyph source for texts and device labels.
func WithGlyphs(g shapes.GlyphSource) Option { return func(e *Editor) { e.glyphs = g } }

// WithSettings sets the initial global settings.
func WithSettings(s config.Settings) Option { return func(e *Editor) { e.settings = s } }

// New returns an editor for s using the built-in templates, block glyphs
// and default settings unless overridden.
func New(s *scene.Scene, opts ...Option) *Editor {
	ed := &Editor{
		scene:    s,
		settings: config.Default(),
		lib:      templates.Builtin(),
		glyphs:   shapes.BlockFont{},
	}
	for _, opt := range opts {
		opt(ed)
	}
	if ed.logger == nil {
		ed.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	ed.router = route.NewRouter(ed.logger)
	return ed
}

// Scene returns the edited scene.
func (ed *Editor) Scene() *scene.Scene { return ed.scene }

// Settings returns the current global settings.
func (ed *Editor) Settings() config.Settings { return ed.settings }

// Router returns the link router used by the editor.
func (ed *Editor) Router() *route.Router { return ed.router }

// SetShowDeviceNames toggles device name labels in both views.
func (ed *Editor) SetShowDeviceNames(show bool) {
	ed.settings.ShowDeviceNames = show
	for _, v := range scene.Views {
		for _, n := range ed.scene.View(v).Entities(scene.KindDevice) {
			if l := n.Part(scene.RoleLabel); l != nil {
				l.Visible = show
			}
		}
	}
	ed.scene.MarkDirty()
}

// SetGrid replaces the grid settings. Non-positive steps keep their previous
// value.
func (ed *Editor) SetGrid(g config.Grid) {
	cur := &ed.settings.Grid
	cur.Active = g.Active
	steps := []struct {
		dst *float64
		v   float64
	}{
		{&cur.X, g.X},
		{&cur.Z, g.Z},
		{&cur.Angle, g.Angle},
		{&cur.Resize, g.Resize},
	}
	for _, st := range steps {
		if st.v > 0 {
			*st.dst = st.v
		} else {
			ed.logger.Debug("grid step dropped", "value", st.v)
		}
	}
}

// lookup resolves (v, kind, id) and logs misses.
func (ed *Editor) lookup(op string, v scene.View, kind scene.Kind, id string) (*scene.Forest, *scene.Node) {
	f := ed.scene.View(v)
	if f == nil {
		ed.logger.Debug("unknown view", "op", op, "view", v)
		return nil, nil
	}
	n := f.Find(kind, id)
	if n == nil {
		ed.logger.Debug("entity not found", "op", op, "view", v, "kind", kind, "id", id)
		return f, nil
	}
	return f, n
}

func (ed *Editor) done(op string, n *scene.Node, start time.Time) {
	ed.scene.MarkDirty()
	observability.Scene().OnEdit(op, string(n.Kind), n.ID, time.Since(start))
}

func (ed *Editor) snapOn(snap bool) bool { return snap && ed.settings.Grid.Active }
