// Package legend keeps the per-type toggles, the visibility state and the
// drawn scene consistent.
//
// A single toggle is a fast path: it flips the flag and changes the opacity
// of nodes already drawn with that type. Select-all and clear-all go through
// a full redraw so the scene is re-derived from the filter.
package legend

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"surveymap/internal/scene"
	"surveymap/internal/visibility"
)

// Entry is one legend toggle.
type Entry struct {
	Type    string
	Checked bool
}

// Redrawer is the part of the render pipeline the legend needs.
type Redrawer interface {
	Redraw() int
	Surface() scene.Surface
}

// Controller owns the legend entries.
type Controller struct {
	state    *visibility.State
	pipeline Redrawer
	entries  []Entry
	logger   *log.Logger
}

// New returns a controller with no entries; call Build.
func New(state *visibility.State, pipeline Redrawer, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{state: state, pipeline: pipeline, logger: logger}
}

// Build creates one checked entry per type, sorted alphabetically.
func (c *Controller) Build(types []string) {
	sorted := append([]string(nil), types...)
	sort.Strings(sorted)
	c.entries = c.entries[:0]
	seen := make(map[string]bool, len(sorted))
	for _, t := range sorted {
		if seen[t] {
			continue
		}
		seen[t] = true
		c.entries = append(c.entries, Entry{Type: t, Checked: true})
		c.state.SetTypeEnabled(t, true)
	}
}

// Add inserts an entry for a type not yet in the legend, keeping sort
// order. It is a no-op for known types.
func (c *Controller) Add(t string) {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].Type >= t })
	if i < len(c.entries) && c.entries[i].Type == t {
		return
	}
	c.entries = append(c.entries, Entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = Entry{Type: t, Checked: true}
	c.state.Register(t)
}

// Entries returns a copy of the legend entries in display order.
func (c *Controller) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Checked reports whether type t's entry is checked.
func (c *Controller) Checked(t string) bool {
	for _, e := range c.entries {
		if e.Type == t {
			return e.Checked
		}
	}
	return false
}

// OnToggle applies a single-entry toggle without redrawing.
func (c *Controller) OnToggle(t string, checked bool) {
	c.setEntry(t, checked)
	c.state.SetTypeEnabled(t, checked)
	alpha := 0.0
	if checked {
		alpha = 1
	}
	n := c.pipeline.Surface().SetTagOpacity(t, alpha)
	c.logger.Debug("legend toggle", "type", t, "checked", checked, "nodes", n)
}

// Toggle flips the entry at index i. Out-of-range indexes are ignored.
func (c *Controller) Toggle(i int) {
	if i < 0 || i >= len(c.entries) {
		return
	}
	e := c.entries[i]
	c.OnToggle(e.Type, !e.Checked)
}

// SelectAll checks every entry and redraws once.
func (c *Controller) SelectAll() { c.setAll(true) }

// ClearAll unchecks every entry and redraws once.
func (c *Controller) ClearAll() { c.setAll(false) }

func (c *Controller) setAll(checked bool) {
	for i := range c.entries {
		c.entries[i].Checked = checked
	}
	c.state.SetAllEnabled(checked)
	drawn := c.pipeline.Redraw()
	c.logger.Debug("legend set all", "checked", checked, "drawn", drawn)
}

func (c *Controller) setEntry(t string, checked bool) {
	for i := range c.entries {
		if c.entries[i].Type == t {
			c.entries[i].Checked = checked
			return
		}
	}
	c.Add(t)
	c.setEntry(t, checked)
}
