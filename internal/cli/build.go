package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netscene/pkg/export"
	nsio "github.com/matzehuels/netscene/pkg/io"
	"github.com/matzehuels/netscene/pkg/observability"
	"github.com/matzehuels/netscene/pkg/pipeline"
)

// buildOpts holds the flags of the build command.
type buildOpts struct {
	formats    string
	output     string
	view       string
	projection string
	width      float64
	height     float64
	hideNames  bool
	noCache    bool
	refresh    bool
	normalized string
}

// buildCommand creates the build command for exporting documents.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build [document]",
		Short: "Build a scene and export it",
		Long: `Build the scene of a diagram document and export one view of it.

Mesh formats (json, obj) are rendered through the camera of the view; topology
formats (dot, svg) draw bases as clusters, devices as nodes and links as edges.`,
		Example: `  netscene build campus.json
  netscene build campus.json -f obj,svg --view L3 -o out/
  netscene build campus.json --projection ortho --hide-names`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: "+formatList()+" (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.view, "view", string(pipeline.DefaultView), "view to export: L2, L3")
	cmd.Flags().StringVar(&opts.projection, "projection", pipeline.ProjectionPerspective, "camera projection: persp, ortho")
	cmd.Flags().Float64Var(&opts.width, "width", pipeline.DefaultWidth, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", pipeline.DefaultHeight, "viewport height in pixels")
	cmd.Flags().BoolVar(&opts.hideNames, "hide-names", false, "hide device name labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.normalized, "normalized", "", "also write the normalized document to this path")

	return cmd
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// runBuild executes the pipeline for doc and writes the artifacts.
func (c *CLI) runBuild(ctx context.Context, doc string, opts buildOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts, err := c.pipelineOptions(ctx, doc)
	if err != nil {
		return err
	}
	popts.Formats = parseFormats(opts.formats)
	popts.View = opts.view
	popts.Projection = opts.projection
	popts.Width = opts.width
	popts.Height = opts.height
	popts.HideDeviceNames = opts.hideNames
	popts.Refresh = opts.refresh

	spinner := newSpinnerWithContext(ctx, "Building "+filepath.Base(doc)+"...")
	spinner.Start()
	observability.SetPipelineHooks(spinnerHooks{spinner: spinner})
	res, err := runner.Execute(ctx, popts)
	observability.SetPipelineHooks(observability.NoopPipelineHooks{})
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	paths, err := writeArtifacts(opts.output, doc, popts.View, res.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Built %s", doc)
	printStats(res.Stats.Entities, len(res.Artifacts), res.CacheInfo.ExportHit)
	for _, p := range paths {
		printFile(p)
	}
	for _, name := range res.MissingTextures {
		printWarning("Missing texture %s", name)
	}

	if opts.normalized != "" {
		ed := res.Editor
		if ed == nil {
			if ed, err = runner.Build(ctx, res.Document, popts); err != nil {
				return err
			}
		}
		if err := nsio.ExportJSON(nsio.Snapshot(ed.Scene(), res.Document.Settings), opts.normalized); err != nil {
			return err
		}
		printFile(opts.normalized)
	}
	return nil
}

// writeArtifacts writes each artifact as <dir>/<name>.<view><ext> and
// returns the written paths in format order.
func writeArtifacts(dir, doc, view string, artifacts map[string][]byte) ([]string, error) {
	base := strings.TrimSuffix(filepath.Base(doc), filepath.Ext(doc))
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, base+"."+strings.ToLower(view)+export.Format(f).Ext())
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
