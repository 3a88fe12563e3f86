// Package pipeline provides the load → build → export pipeline for netscene.
//
// The pipeline is shared by every entry point so that documents are read,
// built into a scene and exported the same way everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate a diagram document
//  2. Build: apply the document to an editor, producing a scene
//  3. Export: write the requested artifact formats (json, obj, dot, svg)
//
// Artifacts are cached by document hash and options; the normalized document
// produced by the build stage is cached too, so entities without an id keep
// the id they were first given.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "campus.json",
//	    Formats: []string{"obj", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj := result.Artifacts["obj"]
//
// Run the build stage alone to inspect or edit the scene:
//
//	doc, err := runner.Load(ctx, &opts)
//	ed, err := runner.Build(ctx, doc, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscene/pkg/cache"
	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/export"
	nsio "github.com/matzehuels/netscene/pkg/io"
	"github.com/matzehuels/netscene/pkg/render"
	"github.com/matzehuels/netscene/pkg/scene"
	"github.com/matzehuels/netscene/pkg/templates"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultView is the view exported when none is given.
	DefaultView = scene.ViewL2

	// DefaultFormat is the format exported when none is given.
	DefaultFormat = export.FormatJSON
)

// Projection names accepted in Options.
const (
	ProjectionPerspective  = "persp"
	ProjectionOrthographic = "ortho"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"` // document path
	Data  []byte `json:"-"`               // document bytes; takes precedence over Input

	// Build options
	Settings        *config.Settings `json:"settings,omitempty"` // base settings, overridden by the document's
	HideDeviceNames bool             `json:"hide_device_names,omitempty"`
	Refresh         bool             `json:"refresh,omitempty"`

	// Export options
	View       string   `json:"view,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Projection string   `json:"projection,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger        `json:"-"`
	Library *templates.Library `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document.
	Document *nsio.Document

	// DocumentHash is the content hash of the document bytes.
	DocumentHash string

	// Editor holds the built scene. It is nil when every artifact came
	// from the cache.
	Editor *edit.Editor

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// MissingTextures lists textures that failed to load from the
	// configured texture directory.
	MissingTextures []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entities   int
	LoadTime   time.Duration
	BuildTime  time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // normalized document came from cache
	ExportHit   bool // all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := export.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateProjection checks that a projection name is valid.
func ValidateProjection(p string) error {
	if p != ProjectionPerspective && p != ProjectionOrthographic {
		return errors.New(errors.ErrCodeInvalidInput, "invalid projection: %q (must be one of: persp, ortho)", p)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && len(o.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input document is required")
	}
	if o.Settings != nil {
		if err := o.Settings.Validate(); err != nil {
			return err
		}
	}

	if o.View == "" {
		o.View = string(DefaultView)
	}
	v, err := scene.ParseView(o.View)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "view")
	}
	o.View = string(v)

	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	for i, f := range o.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		o.Formats[i] = string(format)
	}

	if o.Projection == "" {
		o.Projection = ProjectionPerspective
	}
	if err := ValidateProjection(o.Projection); err != nil {
		return err
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Source names the document for logs and hooks.
func (o *Options) Source() string {
	if len(o.Data) > 0 || o.Input == "" {
		return "<data>"
	}
	return o.Input
}

// Viewport returns the export viewport.
func (o *Options) Viewport() render.Viewport {
	return render.Viewport{Width: o.Width, Height: o.Height}
}

// ArtifactKeyOpts returns cache key options for an artifact format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:          format,
		View:            o.View,
		ShowDeviceNames: !o.HideDeviceNames,
		Settings:        o.settingsKey(),
	}
}

// settingsKey digests everything besides format, view and labels that
// changes the exported bytes.
func (o *Options) settingsKey() string {
	data, err := json.Marshal(struct {
		Settings   *config.Settings `json:"settings"`
		Projection string           `json:"projection"`
		Width      float64          `json:"width"`
		Height     float64          `json:"height"`
		Templates  []string         `json:"templates,omitempty"`
	}{o.Settings, o.Projection, o.Width, o.Height, o.templateTypes()})
	if err != nil {
		return fmt.Sprintf("%v/%s/%gx%g", o.Settings, o.Projection, o.Width, o.Height)
	}
	return cache.Hash(data)
}

func (o *Options) templateTypes() []string {
	if o.Library == nil {
		return nil
	}
	return o.Library.Types()
}
