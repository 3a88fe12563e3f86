package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/pipeline"
	"github.com/matzehuels/netscene/pkg/scene"
)

// routeCommand creates the route command for printing link paths.
func (c *CLI) routeCommand() *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "route [document] [link...]",
		Short: "Print the routed path of links",
		Long: `Print the polyline each link is drawn along, in world coordinates.

Without link ids every link of the view is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, v, err := c.loadScene(cmd.Context(), args[0], view)
			if err != nil {
				return err
			}
			routes, err := linkRoutes(ed, v, args[1:])
			if err != nil {
				return err
			}
			if len(routes) == 0 {
				printInfo("No links in %s", v)
				return nil
			}
			for _, r := range routes {
				fmt.Println(StyleHighlight.Render(r.ID) + " " + StyleDim.Render(fmt.Sprintf("%s, length %.3g", r.Routing, r.Length)))
				fmt.Println("  " + r.polyline())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", string(pipeline.DefaultView), "view: L2, L3")
	return cmd
}

// linkRoute is the computed path of one link.
type linkRoute struct {
	ID      string
	Routing scene.Routing
	Points  []string
	Length  float64
}

func (r linkRoute) polyline() string { return strings.Join(r.Points, " → ") }

// linkRoutes computes the paths of the named links, or of every link of v
// when ids is empty.
func linkRoutes(ed *edit.Editor, v scene.View, ids []string) ([]linkRoute, error) {
	f := ed.Scene().View(v)
	var nodes []*scene.Node
	if len(ids) == 0 {
		nodes = f.Entities(scene.KindLink)
	}
	for _, id := range ids {
		n := f.Find(scene.KindLink, id)
		if n == nil {
			return nil, errors.New(errors.ErrCodeNotFound, "link %q not found in %s", id, v)
		}
		nodes = append(nodes, n)
	}

	out := make([]linkRoute, 0, len(nodes))
	for _, n := range nodes {
		p, ok := ed.Router().Path(f, n)
		if !ok {
			continue
		}
		r := linkRoute{ID: n.ID, Routing: n.Entity.LinkAttrs().Routing, Length: p.Length()}
		for _, pt := range p.Points() {
			r.Points = append(r.Points, vec(pt))
		}
		out = append(out, r)
	}
	return out, nil
}
