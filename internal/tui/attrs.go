package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"surveymap/internal/marker"
)

var attrColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "name", Width: 14},
	{Title: "type", Width: 10},
	{Title: "x", Width: 8},
	{Title: "y", Width: 8},
	{Title: "depth", Width: 7},
	{Title: "distance", Width: 8},
	{Title: "heading", Width: 7},
	{Title: "id", Width: 10},
}

// attrRows lists the markers that pass the current filter, in store order.
func (m Model) attrRows() []table.Row {
	var rows []table.Row
	m.sess.Store.Each(func(mk marker.Marker) {
		if !m.sess.State.IsVisible(mk) {
			return
		}
		rows = append(rows, table.Row{
			strconv.Itoa(len(rows) + 1),
			mk.Name,
			mk.Type,
			formatTick(mk.X),
			formatTick(mk.Y),
			formatTick(mk.Depth),
			marker.FormatOptional(mk.Distance),
			marker.FormatOptional(mk.Bearing),
			truncate(mk.ID, 10),
		})
	})
	return rows
}

// refreshAttrs rebuilds the table from the visible markers.
func (m *Model) refreshAttrs() {
	rows := m.attrRows()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no visible markers"
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(attrColumns)
	m.tbl.SetRows(rows)
}
