package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// Options configures passage graph generation.
type Options struct {
	// Detailed labels each node with its carved poles ("1,2\nES").
	// When false, only the coordinates are shown.
	Detailed bool

	// Spacing is the distance in inches between adjacent node centers.
	// Zero means 1.
	Spacing float64
}

// Formatter produces DOT source for a grid.
type Formatter struct {
	opts Options
}

var _ render.Formatter[string] = (*Formatter)(nil)

// New creates a DOT formatter.
func New(opts Options) *Formatter { return &Formatter{opts: opts} }

// Format returns [ToDOT] for g.
func (f *Formatter) Format(g *grid.Grid) string { return ToDOT(g, f.opts) }

// NodeID returns the DOT node name of the cell at c.
func NodeID(c grid.Coords) string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ToDOT converts the passage graph of g to Graphviz DOT. Cells are emitted
// in row-major order and passages in [grid.Grid.Passages] order, so the
// output is stable for a given grid.
func ToDOT(g *grid.Grid, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, width=0.6, height=0.4];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for c := range g.Cells() {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(c, opts.Detailed)),
			// neato's y axis points up; negate rows so row 0 is on top.
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(float64(c.Coords.X)*spacing), fmtFloat(float64(-c.Coords.Y)*spacing)),
		}
		if c.Walls.Count() == 1 {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", NodeID(c.Coords), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range g.Passages() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", NodeID(p.From), NodeID(p.To()))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c grid.Cell, detailed bool) string {
	id := NodeID(c.Coords)
	if !detailed {
		return id
	}
	return id + "\n" + c.Walls.String()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG using Graphviz.
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

// normalizeViewBox rewrites Graphviz's pt-sized <svg> tag into a unitless
// one so browsers scale the diagram to its container.
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
