package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"surveymap/internal/marker"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !marker.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no marker files in current directory"
	}
}

// loadPath replaces the session's markers with the file's contents. A
// failed load keeps the current markers.
func (m *Model) loadPath(p string) {
	markers, err := marker.LoadFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.logger.Error("load failed", "path", p, "err", err)
		return
	}
	m.selPath = p
	m.sess.Reload(markers)
	m.legendIdx = 0
	m.typing = false
	m.typeInput.Blur()
	m.typeInput.SetValue("")
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  markers=%d types=%d shown=%d", m.sess.Store.Len(), len(m.sess.Store.Types()), len(m.sess.Visible()))
	if dups := m.sess.Store.DuplicateNames(); len(dups) > 0 {
		m.status += fmt.Sprintf("  duplicate names: %s", strings.Join(dups, ","))
	}
	if out := m.sess.OutsideDomain(); len(out) > 0 {
		m.status += fmt.Sprintf("  %d outside map domain", len(out))
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
}
