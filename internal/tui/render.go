package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surveymap/internal/geom"
)

// plot maps the mapper's pixel space onto a w x h block of terminal cells.
type plot struct {
	mapper *geom.Mapper
	w, h   int
}

// toMicro converts plot pixels to braille micro coordinates. ok is false
// for points outside the plot area, NaN included.
func (p plot) toMicro(px, py float64) (mx, my int, ok bool) {
	pw, ph := p.mapper.PlotWidth(), p.mapper.PlotHeight()
	if !(px >= 0 && py >= 0 && px <= pw && py <= ph) {
		return 0, 0, false
	}
	mx = min(int(px/pw*float64(p.w*2)), p.w*2-1)
	my = min(int(py/ph*float64(p.h*4)), p.h*4-1)
	return mx, my, true
}

// toCell converts plot pixels to a cell position.
func (p plot) toCell(px, py float64) (cx, cy int, ok bool) {
	mx, my, ok := p.toMicro(px, py)
	return mx / 2, my / 4, ok
}

// toPixel returns the plot pixel at the centre of a cell.
func (p plot) toPixel(cx, cy int) (px, py float64) {
	px = (float64(cx) + 0.5) / float64(p.w) * p.mapper.PlotWidth()
	py = (float64(cy) + 0.5) / float64(p.h) * p.mapper.PlotHeight()
	return px, py
}

// pickRadius is the hit radius in plot pixels covering a whole cell.
func (p plot) pickRadius() float64 {
	cw := p.mapper.PlotWidth() / float64(p.w)
	ch := p.mapper.PlotHeight() / float64(p.h)
	return 0.75 * math.Max(cw, ch)
}

// plotFor returns the plot area inside a w x h canvas, leaving room for the
// y axis gutter and the x axis row.
func (m Model) plotFor(w, h int) (plot, bool) {
	p := plot{mapper: m.sess.Mapper, w: w - yAxisWidth, h: h - 1}
	return p, p.w >= 4 && p.h >= 2
}

type cellInk struct {
	color   string
	opacity float64
	label   rune
}

// renderCanvas draws the scene, axes and selection into a w x h block.
func (m Model) renderCanvas(w, h int) string {
	p, ok := m.plotFor(w, h)
	if !ok {
		return ""
	}
	br := newBrailleBuf(p.w, p.h)
	ink := make([][]cellInk, p.h)
	for i := range ink {
		ink[i] = make([]cellInk, p.w)
	}

	selected := m.sess.Form().MarkerID
	selX, selY := -1, -1
	nodes := m.sess.Scene.Nodes()
	for _, n := range nodes {
		if !n.Shown() {
			continue
		}
		mx, my, ok := p.toMicro(n.X, n.Y)
		if !ok {
			continue
		}
		br.plus(mx, my)
		cx, cy := mx/2, my/4
		if o := n.EffectiveOpacity(); o >= ink[cy][cx].opacity {
			ink[cy][cx].color = n.Color
			ink[cy][cx].opacity = o
		}
		if selected != "" && n.MarkerID == selected {
			selX, selY = cx, cy
		}
	}
	// labels go right of their node where the cells are still blank
	for _, n := range nodes {
		if !n.Shown() {
			continue
		}
		cx, cy, ok := p.toCell(n.X, n.Y)
		if !ok {
			continue
		}
		label := []rune(truncate(n.Label, 12))
		start := cx + 2
		if start+len(label) > p.w {
			continue
		}
		free := true
		for i := range label {
			if br.rune(start+i, cy) != 0 || ink[cy][start+i].label != 0 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for i, r := range label {
			ink[cy][start+i] = cellInk{label: r, opacity: ink[cy][cx].opacity, color: ink[cy][cx].color}
		}
	}

	lines := make([]string, 0, h)
	yLabels := m.yTickRows(p)
	for cy := 0; cy < p.h; cy++ {
		var sb strings.Builder
		gutter := yLabels[cy]
		if gutter == "" {
			sb.WriteString(axisStyle.Render(padRight("", yAxisWidth-1) + "│"))
		} else {
			sb.WriteString(axisStyle.Render(padLeft(gutter, yAxisWidth-1) + "┤"))
		}
		for cx := 0; cx < p.w; cx++ {
			if cx == selX && cy == selY {
				sb.WriteString(markStyle.Render("◯"))
				continue
			}
			c := ink[cy][cx]
			switch {
			case c.label != 0:
				sb.WriteString(nodeStyle(c.color, c.opacity).Render(string(c.label)))
			case br.rune(cx, cy) != 0:
				sb.WriteString(nodeStyle(c.color, c.opacity).Render(string(br.rune(cx, cy))))
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines, axisStyle.Render(m.xAxisRow(p)))
	return strings.Join(lines, "\n")
}

// yTickRows places y tick labels on the rows their values map to.
func (m Model) yTickRows(p plot) []string {
	rows := make([]string, p.h)
	mp := m.sess.Mapper
	for _, v := range mp.Y.Ticks(max(2, p.h/4)) {
		_, cy, ok := p.toCell(0, mp.ToPixelY(v))
		if !ok || rows[cy] != "" {
			continue
		}
		rows[cy] = formatTick(v)
	}
	return rows
}

// xAxisRow draws the x axis baseline with tick labels under their columns.
func (m Model) xAxisRow(p plot) string {
	row := []rune(padRight("", yAxisWidth-1) + "└" + strings.Repeat("─", p.w))
	mp := m.sess.Mapper
	next := 0
	for _, v := range mp.X.Ticks(max(2, p.w/10)) {
		cx, _, ok := p.toCell(mp.ToPixelX(v), 0)
		if !ok {
			continue
		}
		label := []rune(formatTick(v))
		start := yAxisWidth + cx - len(label)/2
		if start < next || start+len(label) > len(row) {
			continue
		}
		copy(row[start:], label)
		next = start + len(label) + 1
	}
	return string(row)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func padLeft(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return strings.Repeat(" ", n-w) + s
	}
	return s
}

// hoverAt resolves a canvas cell to plot pixels, or false when the cell is
// on an axis or outside the plot.
func (m Model) hoverAt(cellX, cellY, w, h int) (px, py float64, p plot, ok bool) {
	p, ok = m.plotFor(w, h)
	if !ok {
		return 0, 0, p, false
	}
	cx, cy := cellX-yAxisWidth, cellY
	if cx < 0 || cy < 0 || cx >= p.w || cy >= p.h {
		return 0, 0, p, false
	}
	px, py = p.toPixel(cx, cy)
	return px, py, p, true
}
