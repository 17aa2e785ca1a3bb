package scene

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"surveymap/internal/geom"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	ticks      int
	dropHidden bool
	caption    string
}

// WithTicks sets the approximate tick count per axis.
func WithTicks(n int) SVGOption { return func(r *svgRenderer) { r.ticks = n } }

// WithoutHidden leaves legend-hidden nodes out of the document instead of
// emitting them with zero opacity.
func WithoutHidden() SVGOption { return func(r *svgRenderer) { r.dropHidden = true } }

// WithCaption adds a caption line under the plot, e.g. the depth range label.
func WithCaption(s string) SVGOption { return func(r *svgRenderer) { r.caption = s } }

// RenderSVG writes the scene as a standalone SVG document. Axes are derived
// from the same mapper that positioned the nodes.
func RenderSVG(s *Scene, m *geom.Mapper, opts ...SVGOption) []byte {
	r := svgRenderer{ticks: 10}
	for _, opt := range opts {
		opt(&r)
	}

	height := m.Height
	if r.caption != "" {
		height += 24
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="axis" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(m.Width), num(height), num(m.Width), num(height))
	renderXAxis(&buf, m, r.ticks)
	renderYAxis(&buf, m, r.ticks)
	for _, n := range s.nodes {
		if r.dropHidden && !n.Shown() {
			continue
		}
		renderNode(&buf, m, n)
	}
	if r.caption != "" {
		fmt.Fprintf(&buf, `  <text class="caption" x="%s" y="%s">%s</text>`+"\n",
			num(m.Margin), num(m.Height+12), html.EscapeString(r.caption))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderXAxis(buf *bytes.Buffer, m *geom.Mapper, ticks int) {
	fmt.Fprintf(buf, `  <g class="x-axis" transform="translate(%s,%s)">`+"\n", num(m.Margin), num(m.Height-m.Margin))
	fmt.Fprintf(buf, `    <line class="domain" x1="0" y1="0" x2="%s" y2="0" stroke="black"/>`+"\n", num(m.PlotWidth()))
	for _, v := range m.X.Ticks(ticks) {
		x := num(m.ToPixelX(v))
		fmt.Fprintf(buf, `    <g class="tick" transform="translate(%s,0)"><line y2="6" stroke="black"/><line class="grid-line" y2="%s" stroke="black" opacity="0.4"/><text y="18" text-anchor="middle">%s</text></g>`+"\n",
			x, num(-m.PlotHeight()), num(v))
	}
	buf.WriteString("  </g>\n")
}

func renderYAxis(buf *bytes.Buffer, m *geom.Mapper, ticks int) {
	fmt.Fprintf(buf, `  <g class="y-axis" transform="translate(%s,%s)">`+"\n", num(m.Margin), num(m.Margin))
	fmt.Fprintf(buf, `    <line class="domain" x1="0" y1="0" x2="0" y2="%s" stroke="black"/>`+"\n", num(m.PlotHeight()))
	for _, v := range m.Y.Ticks(ticks) {
		y := num(m.ToPixelY(v))
		fmt.Fprintf(buf, `    <g class="tick" transform="translate(0,%s)"><line x2="-6" stroke="black"/><line class="grid-line" x2="%s" stroke="black" opacity="0.4"/><text x="-9" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
			y, num(m.PlotWidth()), num(v))
	}
	buf.WriteString("  </g>\n")
}

func renderNode(buf *bytes.Buffer, m *geom.Mapper, n Node) {
	label := html.EscapeString(n.Label)
	fmt.Fprintf(buf, `  <g class="nodes" marker-type="%s" data-marker-id="%s" opacity="%s" transform="translate(%s,%s)">`+"\n",
		html.EscapeString(n.Tag), html.EscapeString(n.MarkerID), num(n.Alpha), num(m.Margin), num(m.Margin))
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s" opacity="%s" stroke="black"/>`+"\n",
		num(n.X), num(n.Y), num(NodeRadius), html.EscapeString(n.Color), num(n.Opacity))
	fmt.Fprintf(buf, `    <text x="%s" y="%s">%s</text>`+"\n", num(n.X+15), num(n.Y+4), label)
	fmt.Fprintf(buf, "    <title>%s</title>\n  </g>\n", label)
}

// num formats coordinates compactly: integers without a decimal point,
// everything else with at most two decimals.
func num(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
