package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showExplorer {
			m.l.SetSize(explorerWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showExplorer && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.typing {
			return m.updateTyping(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.showExplorer = !m.showExplorer
			if m.showExplorer {
				m.refreshDir()
				m.l.SetSize(explorerWidth-2, m.layout().contentH-2)
			}
			return m, nil
		case "enter":
			if m.showExplorer {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
				return m, nil
			}
		case "up", "k":
			if !m.showExplorer && m.legendIdx > 0 {
				m.legendIdx--
			}
		case "down", "j":
			if !m.showExplorer && m.legendIdx < len(m.sess.Legend.Entries())-1 {
				m.legendIdx++
			}
		case " ":
			entries := m.sess.Legend.Entries()
			if m.legendIdx < len(entries) {
				m.sess.ToggleIndex(m.legendIdx)
				e := m.sess.Legend.Entries()[m.legendIdx]
				m.status = fmt.Sprintf("%s: %v", e.Type, e.Checked)
			}
		case "A":
			m.sess.SelectAll()
			m.status = fmt.Sprintf("all types shown  %d markers", len(m.sess.Visible()))
		case "C":
			m.sess.ClearAll()
			m.status = "all types hidden"
		case "[":
			m.nudge(m.sess.NudgeLow, -1)
		case "]":
			m.nudge(m.sess.NudgeLow, 1)
		case "{":
			m.nudge(m.sess.NudgeHigh, -1)
		case "}":
			m.nudge(m.sess.NudgeHigh, 1)
		case "<", ",":
			m.sess.CycleType(-1)
			m.typeInput.SetValue(m.sess.Picker.Text())
		case ">", ".":
			m.sess.CycleType(1)
			m.typeInput.SetValue(m.sess.Picker.Text())
		case "t":
			m.typing = true
			m.typeInput.SetValue(m.sess.Picker.Text())
			m.typeInput.CursorEnd()
			m.status = "type a marker type  Enter add  Esc done"
			return m, m.typeInput.Focus()
		case "n":
			m.sess.NewMarker()
			m.typeInput.SetValue("")
			m.status = "new marker"
		case "a":
			m.showAttrs = !m.showAttrs
		case "h":
			m.helpVisible = !m.helpVisible
		}
		if m.showAttrs {
			m.refreshAttrs()
		}
	case tea.MouseMsg:
		m = m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showExplorer {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateTyping routes keys to the type field while it has focus.
func (m Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.typing = false
		m.typeInput.Blur()
		m.status = "type: " + m.sess.Picker.Value()
		return m, nil
	case "enter":
		m.typing = false
		m.typeInput.Blur()
		if m.sess.CommitType() {
			m.status = "added type: " + m.sess.Picker.Value()
		} else {
			m.status = "type: " + m.sess.Picker.Value()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.typeInput, cmd = m.typeInput.Update(msg)
	m.sess.InputType(m.typeInput.Value())
	return m, cmd
}

func (m *Model) nudge(fn func(int) bool, steps int) {
	if fn(steps) {
		m.status = "depth " + m.sess.RangeLabel()
	}
}

// updateMouse tracks hover over the plot and selects on left click.
func (m Model) updateMouse(msg tea.MouseMsg) Model {
	ly := m.layout()
	cx, cy := msg.X-ly.mapX, msg.Y-ly.mapY
	if m.showAttrs || cx < 0 || cy < 0 || cx >= ly.mapW || cy >= ly.mapH {
		m.hovering = false
		return m
	}
	px, py, p, ok := m.hoverAt(cx, cy, ly.mapW, ly.mapH)
	if !ok {
		m.hovering = false
		return m
	}
	m.hovering = true
	m.hoverWorldX, m.hoverWorldY = m.sess.Mapper.ToWorld(px, py)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if m.sess.SelectAt(px, py, p.pickRadius()) {
			f := m.sess.Form()
			m.status = fmt.Sprintf("selected %s (%s)", f.Name, f.MarkerType)
		}
	}
	return m
}
