package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/pipeline"
	"github.com/matzehuels/netscene/pkg/query"
	"github.com/matzehuels/netscene/pkg/scene"
)

// inspectCommand creates the inspect command for listing entities.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		view        string
		kind        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "List the entities of a view",
		Example: `  netscene inspect campus.json
  netscene inspect campus.json --view L3 --kind line
  netscene inspect campus.json -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, v, err := c.loadScene(ctx, args[0], view)
			if err != nil {
				return err
			}
			var kinds []scene.Kind
			if kind != "" {
				k, err := scene.ParseKind(kind)
				if err != nil {
					return err
				}
				kinds = []scene.Kind{k}
			}
			entries := listEntities(ed.Scene(), v, kinds...)

			if interactive {
				_, err := tea.NewProgram(NewEntityListModel(ed.Scene(), v, entries), tea.WithAltScreen()).Run()
				return err
			}
			if len(entries) == 0 {
				printInfo("No entities in %s", v)
				return nil
			}
			fmt.Println(entityTable(entries).Render())
			printDetail("%d entities in %s", len(entries), v)
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", string(pipeline.DefaultView), "view to inspect: L2, L3")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only list one kind: base, device, link, text, symbol, line")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse entities interactively")

	return cmd
}

// loadScene loads doc and builds its scene without touching the cache.
func (c *CLI) loadScene(ctx context.Context, doc, view string) (*edit.Editor, scene.View, error) {
	v, err := scene.ParseView(view)
	if err != nil {
		return nil, "", err
	}
	opts, err := c.pipelineOptions(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	opts.View = string(v)

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	runner := pipeline.NewRunner(nil, nil, logger)
	d, err := runner.Load(ctx, &opts)
	if err != nil {
		return nil, "", err
	}
	ed, err := runner.Build(ctx, d, opts)
	if err != nil {
		return nil, "", err
	}
	prog.done(fmt.Sprintf("Built %d entities in %s", ed.Scene().View(v).Len(), v))
	return ed, v, nil
}

// =============================================================================
// Entity Listing
// =============================================================================

// entityEntry is one row of the entity listing.
type entityEntry struct {
	Kind   scene.Kind
	ID     string
	Label  string // name, type or text
	Base   string
	Detail string
}

// listEntities returns the entities of view v in kind order, optionally
// restricted to kinds.
func listEntities(s *scene.Scene, v scene.View, kinds ...scene.Kind) []entityEntry {
	f := s.View(v)
	if f == nil {
		return nil
	}
	if len(kinds) == 0 {
		kinds = scene.Kinds
	}
	var out []entityEntry
	for _, k := range kinds {
		for _, n := range f.Entities(k) {
			out = append(out, describe(n.Entity))
		}
	}
	return out
}

func describe(e *scene.Entity) entityEntry {
	entry := entityEntry{Kind: e.Kind, ID: e.ID, Base: e.Base}
	p := e.Position
	switch a := e.Attrs.(type) {
	case *scene.BaseAttrs:
		entry.Label = a.Name
		entry.Detail = fmt.Sprintf("at %s size %s", vec(p), vec(e.Scale))
	case *scene.DeviceAttrs:
		entry.Label = a.Type
		if a.Name != "" {
			entry.Label = a.Name + " (" + a.Type + ")"
		}
		entry.Detail = "at " + vec(p)
	case *scene.LinkAttrs:
		entry.Label = a.Endpoints[0].DeviceID + " - " + a.Endpoints[1].DeviceID
		entry.Detail = a.Routing.String()
		if a.Routing == scene.RoutingOrthogonal && a.Order != "" {
			entry.Detail += " " + a.Order
		}
		if n := len(a.Joints); n > 0 {
			entry.Detail += fmt.Sprintf(", %d joints", n)
		}
	case *scene.TextAttrs:
		entry.Label = fmt.Sprintf("%q", a.Text)
		entry.Detail = "at " + vec(p)
	case *scene.SymbolAttrs:
		entry.Label = a.Type
		entry.Detail = "at " + vec(p)
	case *scene.LineAttrs:
		entry.Detail = vec(a.From) + " to " + vec(a.To)
	}
	return entry
}

func (e entityEntry) row() []string {
	base := e.Base
	if base == "" {
		base = "—"
	}
	return []string{string(e.Kind), e.ID, e.Label, base, e.Detail}
}

// entityTable renders entries as a bordered table.
func entityTable(entries []entityEntry) *table.Table {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = e.row()
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "ID", "Label", "Base", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleHighlight
			case col >= 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
}

// connections returns the links touching the entity in entry, for devices
// and bases.
func connections(q *query.Querier, v scene.View, entry entityEntry) []string {
	switch entry.Kind {
	case scene.KindDevice:
		return q.LinksOfDevice(v, entry.ID)
	case scene.KindBase:
		return q.LinksOfBase(v, entry.ID)
	}
	return nil
}

func vec(p r3.Vec) string { return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z) }
