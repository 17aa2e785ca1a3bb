package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type layout struct {
	contentW, contentH int
	explorerW          int
	mapX, mapY         int
	mapW, mapH         int
	panelW             int
}

// layout computes the screen regions shared by View and mouse handling.
func (m Model) layout() layout {
	headerHeight := 1
	depthHeight := 1
	footerHeight := 2
	ly := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-depthHeight-footerHeight),
		panelW:   panelWidth,
		mapY:     headerHeight,
	}
	if m.showExplorer {
		ly.explorerW = explorerWidth
		ly.mapX = explorerWidth + 1
	}
	ly.mapW = max(10, ly.contentW-ly.mapX-ly.panelW-1)
	ly.mapH = ly.contentH
	return ly
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	ly := m.layout()

	// Update list size with accurate content height when explorer visible
	if m.showExplorer {
		m.l.SetSize(explorerWidth-2, ly.contentH-2)
	}

	// Header
	header := titleStyle.Render(" surveymap ─ survey marker viewer ")
	header = lipgloss.NewStyle().Width(ly.contentW).Render(header)

	// Map viewport
	var mapView string
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(ly.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(ly.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(ly.mapW, ly.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		mapView = lipgloss.NewStyle().Width(ly.mapW).Height(ly.mapH).Render(m.renderCanvas(ly.mapW, ly.mapH))
	}

	panel := lipgloss.NewStyle().Width(ly.panelW).Height(ly.contentH).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.renderLegend(ly.panelW), m.renderForm(ly.panelW)))

	var body string
	if m.showExplorer {
		explorer := lipgloss.NewStyle().Width(explorerWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, explorer, " ", mapView, " ", panel)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", panel)
	}

	depthBar := m.renderDepthBar(ly.contentW)

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.1f y=%.1f  ", m.hoverWorldX, m.hoverWorldY))
	}
	spacerW := max(0, ly.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	statusRow := lipgloss.JoinHorizontal(lipgloss.Bottom, status, right)
	footer := lipgloss.NewStyle().Width(ly.contentW).Render(lipgloss.JoinVertical(lipgloss.Left, statusRow, help))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, depthBar, footer)
	return appStyle.Width(ly.contentW).Height(m.height).Render(ui)
}

// renderLegend draws one checkbox per marker type plus the bulk actions.
func (m Model) renderLegend(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Legend"))
	entries := m.sess.Legend.Entries()
	if len(entries) == 0 {
		rows = append(rows, dimStyle.Render("no markers loaded"))
	}
	for i, e := range entries {
		box := "[ ]"
		if e.Checked {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, truncate(e.Type, w-10))
		if i == m.legendIdx {
			rows = append(rows, cursorStyle.Render("› "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	rows = append(rows, dimStyle.Render("A all  C clear"))
	return boxStyle.Width(w - 2).Render(strings.Join(rows, "\n"))
}

// renderForm draws the marker form as last written by a selection.
func (m Model) renderForm(w int) string {
	f := m.sess.Form()
	field := func(label, value string) string {
		return dimStyle.Render(padRight(label, 9-len(label))) + truncate(value, w-14)
	}
	typeValue := f.MarkerType
	if m.typing {
		typeValue = m.typeInput.View()
	}
	picker := "‹ " + m.sess.Picker.Selected() + " ›"
	if m.sess.Picker.ListDisabled() || len(m.sess.Picker.Options()) == 0 {
		picker = dimStyle.Render(picker)
	}
	rows := []string{
		titleStyle.Render("Marker"),
		field("name", f.Name),
		field("distance", f.Distance),
		field("depth", f.Depth),
		field("heading", f.Heading),
		field("type", typeValue),
		field("", picker),
		field("id", f.MarkerID),
		buttonStyle.Render(f.SubmitLabel),
	}
	return boxStyle.Width(w - 2).Render(strings.Join(rows, "\n"))
}

// renderDepthBar draws the two-handle depth selector and its range label.
func (m Model) renderDepthBar(w int) string {
	prefix := " depth "
	label := " " + m.sess.RangeLabel() + " "
	tw := w - lipgloss.Width(prefix) - lipgloss.Width(label)
	if tw < 4 {
		return dimStyle.Render(prefix + label)
	}
	lo, hi := m.sess.Depth.Fraction()
	li := int(lo * float64(tw-1))
	hiIdx := int(hi * float64(tw-1))
	var sb strings.Builder
	for i := 0; i < tw; i++ {
		switch {
		case i == li || i == hiIdx:
			sb.WriteString(markStyle.Render("◆"))
		case i > li && i < hiIdx:
			sb.WriteString(cursorStyle.Render("━"))
		default:
			sb.WriteString(dimStyle.Render("─"))
		}
	}
	return dimStyle.Render(prefix) + sb.String() + label
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click select",
		"↑↓ legend",
		"space toggle",
		"A/C all/none",
		"[ ] low",
		"{ } high",
		"< > type",
		"t new type",
		"n new",
		"a table",
		"Tab files",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
