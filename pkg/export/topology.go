package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netscene/pkg/scene"
)

// TopologyDOT converts the devices and links of f to an undirected Graphviz
// graph. Devices are grouped into one cluster per base; links become edges
// drawn in the link color, dashed for freeform routing.
func TopologyDOT(f *scene.Forest) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", string(f.View()))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [penwidth=2];\n")

	devices := make(map[string][]*scene.Node)
	for _, d := range f.Entities(scene.KindDevice) {
		devices[d.Entity.Base] = append(devices[d.Entity.Base], d)
	}

	for i, b := range f.Entities(scene.KindBase) {
		label := b.Entity.BaseAttrs().Name
		if label == "" {
			label = b.ID
		}
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", label)
		fmt.Fprintf(&buf, "    style=filled; fillcolor=%q; color=%q;\n",
			hexColor(b.Entity.BaseAttrs().Color1), "#999999")
		for _, d := range devices[b.ID] {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", d.ID, deviceLabel(d))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, l := range f.Entities(scene.KindLink) {
		a := l.Entity.LinkAttrs()
		style := "solid"
		if a.Routing == scene.RoutingFreeform {
			style = "dashed"
		}
		fmt.Fprintf(&buf, "  %q -- %q [id=%q, color=%q, style=%s];\n",
			a.Endpoints[0].DeviceID, a.Endpoints[1].DeviceID, l.ID, hexColor(a.Color), style)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func deviceLabel(n *scene.Node) string {
	a := n.Entity.DeviceAttrs()
	switch {
	case a.Name != "" && a.Type != "":
		return a.Name + "\n(" + a.Type + ")"
	case a.Name != "":
		return a.Name
	case a.Type != "":
		return a.Type
	}
	return n.ID
}

func hexColor(c uint32) string { return fmt.Sprintf("#%06x", c&0xFFFFFF) }

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox with
// matching pixel width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
