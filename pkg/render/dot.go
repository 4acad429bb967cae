package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dragsort/pkg/geom"
)

// pointsPerInch converts Graphviz points to the inches used by node sizes.
const pointsPerInch = 72.0

// Options configures snapshot rendering.
type Options struct {
	// Scale is the number of points per layout unit. Zero means 1.
	Scale float64
	// Detailed adds each item's index and box to its label.
	Detailed bool
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// ToDOT converts a snapshot to Graphviz DOT. Every node is pinned at its
// layout position for the neato engine, with the y axis flipped so the
// first row is on top.
func ToDOT(s Snapshot, opts Options) string {
	k := opts.scale()
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, fixedsize=true, margin=0];\n")
	buf.WriteString("\n")

	bounds := geom.Rect{Width: s.Bounds.Width, Height: s.Bounds.Height}
	fmt.Fprintf(&buf, "  %q [%s];\n", "container", strings.Join(
		append(nodeAttrs(bounds, s.Bounds.Height, k), `label=""`, `style="dashed"`, "fillcolor=none", "color=grey"), ", "))

	for i, it := range s.Items {
		attrs := append(nodeAttrs(it.Rect, s.Bounds.Height, k), fmt.Sprintf("label=%q", itemLabel(i, it, opts.Detailed)))
		if i == s.ProbeIndex {
			attrs = append(attrs, "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", fmt.Sprintf("item%d", i), strings.Join(attrs, ", "))
	}

	if s.Probe != nil {
		label := "probe"
		if s.ProbeIndex >= 0 {
			label = fmt.Sprintf("probe → %d", s.ProbeIndex)
		}
		attrs := append(nodeAttrs(*s.Probe, s.Bounds.Height, k),
			fmt.Sprintf("label=%q", label), `style="rounded,dashed"`, "fillcolor=none", "color=red", "fontcolor=red")
		fmt.Fprintf(&buf, "  %q [%s];\n", "probe", strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func itemLabel(i int, it Item, detailed bool) string {
	label := it.Label
	if label == "" {
		label = strconv.Itoa(i)
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nindex: %d\n%g,%g %gx%g", label, i, it.Rect.X, it.Rect.Y, it.Rect.Width, it.Rect.Height)
}

// nodeAttrs pins a node's center at r's center. Positions are in points
// (inputscale=72), sizes in inches.
func nodeAttrs(r geom.Rect, height, k float64) []string {
	c := r.Center()
	return []string{
		fmt.Sprintf(`pos="%s,%s!"`, num(c.X*k), num((height-c.Y)*k)),
		fmt.Sprintf("width=%s", num(r.Width*k/pointsPerInch)),
		fmt.Sprintf("height=%s", num(r.Height*k/pointsPerInch)),
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
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

	gv.SetLayout(graphviz.NEATO)
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

// normalizeViewBox replaces the root tag so the image scales with its
// container.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
