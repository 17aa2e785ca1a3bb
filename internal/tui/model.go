package tui

import (
	"io"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"surveymap/internal/config"
	"surveymap/internal/session"
)

const (
	explorerWidth = 28
	panelWidth    = 32
	yAxisWidth    = 7
)

type Model struct {
	width  int
	height int

	cfg    config.Config
	sess   *session.Session
	logger *log.Logger

	showExplorer bool
	helpVisible  bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// legend cursor
	legendIdx int

	// type picker free text
	typing    bool
	typeInput textinput.Model

	// hover state
	hovering    bool
	hoverWorldX float64
	hoverWorldY float64

	// visible markers table
	showAttrs bool
	tbl       table.Model
}

// New returns a viewer with an empty marker set.
func New(cfg config.Config, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sess, err := session.New(nil, cfg, logger)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:         cfg,
		sess:        sess,
		logger:      logger,
		helpVisible: true,
		status:      "surveymap ready",
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// type picker free text
	m.typeInput = textinput.New()
	m.typeInput.Prompt = ""
	m.typeInput.Placeholder = "new type"
	m.typeInput.CharLimit = 32
	m.typeInput.Width = panelWidth - 12
	// visible markers table
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m, nil
}

// NewWithPath preloads a marker file at launch.
func NewWithPath(path string, cfg config.Config, logger *log.Logger) (Model, error) {
	m, err := New(cfg, logger)
	if err != nil {
		return m, err
	}
	m.loadPath(path)
	return m, nil
}

// Session exposes the viewer state.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) Init() tea.Cmd { return nil }
