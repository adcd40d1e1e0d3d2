package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/render"
)

// Node fill colors.
const (
	ColorNotOpen = "#ff7f0e"
	ColorOpened  = "#1f77b4"
)

// Options configures diagram generation.
type Options struct {
	// LinkLabels draws each link's label at its midpoint.
	LinkLabels bool
	// Detailed adds the node type under the label.
	Detailed bool
}

// ToDOT converts a frame to Graphviz DOT. Simulation y grows downward while
// Graphviz y grows upward, so y is negated.
func ToDOT(f layout.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontcolor=white, fontsize=10, fixedsize=false];\n")
	buf.WriteString("  edge [color=\"#999999\", fontsize=9, arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Address, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, s := range f.Links {
		attrs := ""
		if opts.LinkLabels && s.Label != "" {
			attrs = fmt.Sprintf(" [label=%q]", s.Label)
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", s.Source, s.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n layout.NodePosition, opts Options) []string {
	label := n.Label
	if opts.Detailed && n.Type != "" {
		label += "\n" + n.Type
	}
	fill := ColorOpened
	if n.NotOpen {
		fill = ColorNotOpen
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.X), fmtCoord(-n.Y)),
	}
	if n.Pinned {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders DOT produced by [ToDOT] to SVG, keeping node positions.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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

// normalizeViewBox replaces Graphviz's root element with one whose size
// matches its viewBox, so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT to PDF via SVG.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT to PNG via SVG at the given scale.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
