package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscene/pkg/cache"
	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/export"
	nsio "github.com/matzehuels/netscene/pkg/io"
	"github.com/matzehuels/netscene/pkg/observability"
	"github.com/matzehuels/netscene/pkg/render"
	"github.com/matzehuels/netscene/pkg/scene"
	"github.com/matzehuels/netscene/pkg/templates"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	documents cache.Cache
	artifacts cache.Cache
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		documents: cache.Observed(c, "document"),
		artifacts: cache.Observed(c, "artifact"),
	}
}

// Execute runs the complete load → build → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	doc, hash, err := r.load(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{
		Document:     doc,
		DocumentHash: hash,
		Artifacts:    make(map[string][]byte),
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Entities = entities(doc)
	r.Logger.Info("loaded document",
		"source", opts.Source(),
		"entities", result.Stats.Entities,
		"duration", result.Stats.LoadTime)

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.ExportHit = true
			r.Logger.Info("artifacts served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, result.Stats.Entities)
	ed, docHit, err := r.BuildWithCacheInfo(ctx, doc, hash, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Editor = ed
	result.CacheInfo.DocumentHit = docHit
	r.Logger.Info("built scene",
		"l2", ed.Scene().L2.Len(),
		"l3", ed.Scene().L3.Len(),
		"duration", result.Stats.BuildTime)

	if opts.Settings != nil && opts.Settings.TextureDir != "" {
		result.MissingTextures = CheckTextures(ed.Scene(), render.NewDirTextures(opts.Settings.TextureDir), opts.Logger)
	}

	// Stage 3: Export
	exportStart := time.Now()
	hooks.OnExportStart(ctx, opts.Formats)
	artifacts, err := Export(ctx, ed, opts)
	result.Stats.ExportTime = time.Since(exportStart)
	hooks.OnExportComplete(ctx, opts.Formats, result.Stats.ExportTime, err)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.artifacts.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "err", err)
		}
	}
	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load reads and validates the document named by opts.
func (r *Runner) Load(ctx context.Context, opts *Options) (*nsio.Document, error) {
	r.applyLogger(opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	doc, _, err := r.load(ctx, opts)
	return doc, err
}

func (r *Runner) load(ctx context.Context, opts *Options) (doc *nsio.Document, hash string, err error) {
	hooks := observability.Pipeline()
	source := opts.Source()
	start := time.Now()
	hooks.OnLoadStart(ctx, source)
	defer func() {
		hooks.OnLoadComplete(ctx, source, entities(doc), time.Since(start), err)
	}()

	data := opts.Data
	if len(data) == 0 {
		data, err = os.ReadFile(opts.Input)
		if os.IsNotExist(err) {
			return nil, "", errors.New(errors.ErrCodeFileNotFound, "document not found: %s", opts.Input)
		}
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", opts.Input, err)
		}
	}
	doc, err = nsio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return doc, cache.Hash(data), nil
}

// Build applies doc to a new editor configured from opts.
func (r *Runner) Build(ctx context.Context, doc *nsio.Document, opts Options) (*edit.Editor, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return build(doc, opts)
}

// BuildWithCacheInfo builds doc, first consulting the normalized document
// cached under hash, and reports whether the cache was used.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, doc *nsio.Document, hash string, opts Options) (*edit.Editor, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.DocumentKey(hash)

	if !opts.Refresh {
		if data, hit, err := r.documents.Get(ctx, key); err == nil && hit {
			if cached, err := nsio.ReadJSON(bytes.NewReader(data)); err == nil {
				if ed, err := build(cached, opts); err == nil {
					return ed, true, nil
				}
			}
			opts.Logger.Debug("discarding cached document", "key", key)
		}
	}

	ed, err := build(doc, opts)
	if err != nil {
		return nil, false, err
	}

	normalized := nsio.Snapshot(ed.Scene(), doc.Settings)
	var buf bytes.Buffer
	if err := nsio.WriteJSON(normalized, &buf); err == nil {
		if err := r.documents.Set(ctx, key, buf.Bytes(), cache.TTLDocument); err != nil {
			opts.Logger.Warn("cache document", "err", err)
		}
	}
	return ed, false, nil
}

func build(doc *nsio.Document, opts Options) (*edit.Editor, error) {
	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	lib := opts.Library
	if lib == nil && settings.Templates != "" {
		loaded, err := templates.LoadFile(settings.Templates)
		if err != nil {
			return nil, err
		}
		lib = loaded
	}

	edOpts := []edit.Option{edit.WithLogger(opts.Logger), edit.WithSettings(settings)}
	if lib != nil {
		edOpts = append(edOpts, edit.WithLibrary(lib))
	}
	ed := edit.New(scene.New(), edOpts...)
	if err := nsio.Apply(doc, ed); err != nil {
		return nil, err
	}
	if opts.HideDeviceNames {
		ed.SetShowDeviceNames(false)
	}
	return ed, nil
}

// Export writes every format in opts for the built scene.
func Export(ctx context.Context, ed *edit.Editor, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	v := scene.View(opts.View)
	forest := ed.Scene().View(v)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, f := range opts.Formats {
		format := export.Format(f)
		switch format {
		case export.FormatJSON, export.FormatOBJ:
			data, err := renderMesh(ed.Scene(), v, format, opts)
			if err != nil {
				return nil, err
			}
			artifacts[f] = data
		case export.FormatDOT, export.FormatSVG:
			if dot == "" {
				dot = export.TopologyDOT(forest)
			}
			if format == export.FormatDOT {
				artifacts[f] = []byte(dot)
				continue
			}
			svg, err := export.RenderSVG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render topology")
			}
			artifacts[f] = svg
		}
	}
	return artifacts, nil
}

// renderMesh draws view v once through a controller into an export sink.
func renderMesh(s *scene.Scene, v scene.View, format export.Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	sink := export.NewSink(format, &buf)
	ctrl := render.NewController(s, sink,
		render.WithLogger(opts.Logger),
		render.WithViewport(opts.Viewport()))
	ctrl.SetView(v)
	if opts.Projection == ProjectionOrthographic {
		ctrl.ToggleCamera()
	}
	if _, err := ctrl.Draw(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CheckTextures requests every texture the scene references from p, waits
// for all of them and returns the names that failed to load.
func CheckTextures(s *scene.Scene, p render.TextureProvider, logger *log.Logger) []string {
	w := &waitTextures{inner: p}
	ctrl := render.NewController(s, nil, render.WithTextures(w), render.WithLogger(logger))
	names := ctrl.LoadTextures()
	w.wg.Wait()

	var missing []string
	for _, name := range names {
		if ctrl.TextureErr(name) != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// waitTextures tracks outstanding loads of the wrapped provider.
type waitTextures struct {
	inner render.TextureProvider
	wg    sync.WaitGroup
}

func (w *waitTextures) Load(name string, done func(string, error)) {
	w.wg.Add(1)
	w.inner.Load(name, func(n string, err error) {
		defer w.wg.Done()
		done(n, err)
	})
}

func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.artifacts.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func entities(doc *nsio.Document) int {
	if doc == nil {
		return 0
	}
	n := 0
	for _, vd := range doc.Views {
		n += vd.Len()
	}
	return n
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
