package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/pipeline"
	"github.com/matzehuels/netscene/pkg/query"
	"github.com/matzehuels/netscene/pkg/render"
	"github.com/matzehuels/netscene/pkg/scene"
)

// pickOpts holds the flags of the pick command.
type pickOpts struct {
	view       string
	projection string
	width      float64
	height     float64
	plane      float64
}

// pickCommand creates the pick command for hit-testing a pixel.
func (c *CLI) pickCommand() *cobra.Command {
	opts := pickOpts{}

	cmd := &cobra.Command{
		Use:   "pick [document] [x] [y]",
		Short: "Report the entities under a pixel",
		Long: `Cast a ray through pixel (x, y) of the default camera of a view and list
every entity it hits, nearest first, along with the point where the ray
crosses the horizontal plane at --plane.`,
		Example: `  netscene pick campus.json 400 300
  netscene pick campus.json 120 80 --projection ortho --plane 0.5`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var x, y float64
			if _, err := fmt.Sscan(args[1], &x); err != nil {
				return fmt.Errorf("x: %w", err)
			}
			if _, err := fmt.Sscan(args[2], &y); err != nil {
				return fmt.Errorf("y: %w", err)
			}
			ed, v, err := c.loadScene(cmd.Context(), args[0], opts.view)
			if err != nil {
				return err
			}
			res := pickAt(ed, v, x, y, opts)

			if len(res.Hits) == 0 {
				printInfo("Nothing at (%g, %g)", x, y)
			}
			for _, h := range res.Hits {
				line := StyleHighlight.Render(string(h.Kind)+" "+h.ID) + " " + StyleDim.Render(hitPart(h))
				fmt.Println(line + " " + StyleDim.Render(fmt.Sprintf("at %s, distance %.3g", vec(h.Point), h.Distance)))
				if res.Local[h.ID] != "" {
					printDetail("base-local %s", res.Local[h.ID])
				}
			}
			if res.PlaneHit {
				printKeyValue(fmt.Sprintf("y = %g", opts.plane), vec(res.Plane))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", string(pipeline.DefaultView), "view: L2, L3")
	cmd.Flags().StringVar(&opts.projection, "projection", pipeline.ProjectionPerspective, "camera projection: persp, ortho")
	cmd.Flags().Float64Var(&opts.width, "width", pipeline.DefaultWidth, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", pipeline.DefaultHeight, "viewport height in pixels")
	cmd.Flags().Float64Var(&opts.plane, "plane", 0, "height of the horizontal plane to intersect")

	return cmd
}

// pickResult is the outcome of one pick.
type pickResult struct {
	Hits     []query.Hit
	Local    map[string]string // attached entity id -> hit point in its base frame
	Plane    r3.Vec
	PlaneHit bool
}

// pickAt casts the ray through (x, y) of view v.
func pickAt(ed *edit.Editor, v scene.View, x, y float64, opts pickOpts) pickResult {
	ctrl := render.NewController(ed.Scene(), nil,
		render.WithViewport(render.Viewport{Width: opts.width, Height: opts.height}))
	ctrl.SetView(v)
	if opts.projection == pipeline.ProjectionOrthographic {
		ctrl.ToggleCamera()
	}
	q := query.New(ed.Scene(), ctrl)

	res := pickResult{Local: map[string]string{}}
	for _, h := range q.Pick(v, x, y) {
		res.Hits = append(res.Hits, h)
		if !h.Kind.Attached() || res.Local[h.ID] != "" {
			continue
		}
		n := ed.Scene().Find(v, h.Kind, h.ID)
		if n == nil || n.Entity == nil {
			continue
		}
		if p, ok := q.WorldToLocal(v, scene.KindBase, n.Entity.Base, h.Point); ok {
			res.Local[h.ID] = vec(p)
		}
	}
	if ray, ok := q.PointToRay(v, x, y); ok {
		if p, ok := q.IntersectHorizontalPlane(ray, opts.plane); ok {
			res.Plane, res.PlaneHit = p, true
		}
	}
	return res
}

func hitPart(h query.Hit) string {
	switch h.Role {
	case scene.RoleEntity:
		return ""
	case scene.RoleSegment, scene.RoleJoint:
		return fmt.Sprintf("%s %d", h.Role, h.Index)
	}
	return string(h.Role)
}
