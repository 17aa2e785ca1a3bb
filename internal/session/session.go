// Package session wires one viewer: a marker set, its visibility state, the
// render pipeline and the controllers that react to user events.
//
// Every reaction runs synchronously on the caller's goroutine. Hosts must
// not share a Session between goroutines.
package session

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"surveymap/internal/config"
	"surveymap/internal/depth"
	"surveymap/internal/geom"
	"surveymap/internal/inspect"
	"surveymap/internal/legend"
	"surveymap/internal/marker"
	"surveymap/internal/scene"
	"surveymap/internal/visibility"
)

// ErrOutOfDomain is returned by SetDepth for bounds outside the selector.
var ErrOutOfDomain = errors.New("depth range outside selector domain")

// Session is one viewer's state.
type Session struct {
	Store     *marker.Store
	State     *visibility.State
	Mapper    *geom.Mapper
	Scene     *scene.Scene
	Pipeline  *scene.Pipeline
	Legend    *legend.Controller
	Inspector *inspect.Inspector
	Depth     *depth.Control
	Picker    *legend.TypePicker

	form       inspect.Form
	rangeLabel string
	logger     *log.Logger
}

// New builds a session over markers and draws it once.
func New(markers []marker.Marker, cfg config.Config, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store := marker.NewStore(markers)
	state, err := visibility.New(store.Types(), visibility.Range{Min: cfg.Depth.Min, Max: cfg.Depth.Max})
	if err != nil {
		return nil, fmt.Errorf("initial depth range: %w", err)
	}
	mapper, err := geom.NewMapper(cfg.Domain.BBox(), cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Margin)
	if err != nil {
		return nil, fmt.Errorf("canvas mapping: %w", err)
	}
	ctl, err := depth.New(cfg.Depth.Max, cfg.Depth.Step)
	if err != nil {
		return nil, err
	}
	// Position the handles before subscribing so the initial draw is the
	// only one.
	ctl.Set(cfg.Depth.Min, cfg.Depth.Max)

	sc := scene.NewScene()
	pipe := scene.NewPipeline(store, state, mapper, sc,
		scene.WithConvention(cfg.Convention()),
		scene.WithLogger(logger.WithPrefix("pipeline")),
	)

	s := &Session{
		Store:    store,
		State:    state,
		Mapper:   mapper,
		Scene:    sc,
		Pipeline: pipe,
		Legend:   legend.New(state, pipe, logger.WithPrefix("legend")),
		Depth:    ctl,
		Picker:   legend.NewTypePicker(store.Types()),
		logger:   logger,
	}
	s.Inspector = inspect.New(store, &s.form, logger.WithPrefix("inspect"))
	s.Legend.Build(store.Types())
	s.rangeLabel = ctl.Label()

	ctl.OnChange(s.onDepthChange)
	sc.OnSelect(func(n scene.Node) { s.Inspector.OnMarkerSelected(n) })

	if dups := store.DuplicateNames(); len(dups) > 0 {
		logger.Warn("duplicate marker names, selection falls back to ids", "names", dups)
	}
	s.warnOutside()

	drawn := pipe.Redraw()
	logger.Info("session ready", "markers", store.Len(), "types", len(store.Types()), "drawn", drawn)
	return s, nil
}

func (s *Session) onDepthChange(min, max float64) {
	s.Pipeline.Clear()
	if err := s.State.SetDepthRange(min, max); err != nil {
		// The control never emits inverted ranges; keep the prior drawing.
		s.logger.Error("depth change rejected", "err", err)
	}
	drawn := s.Pipeline.Redraw()
	s.rangeLabel = depth.Label(min, max)
	s.logger.Debug("depth range changed", "min", min, "max", max, "drawn", drawn)
}

// Form returns the edit form as last written.
func (s *Session) Form() inspect.Form { return s.form }

// RangeLabel is the depth readout shown next to the selector.
func (s *Session) RangeLabel() string { return s.rangeLabel }

// Visible returns the labels of the drawn markers.
func (s *Session) Visible() []string { return s.Scene.Visible() }

// ToggleType flips the legend entry for type t.
func (s *Session) ToggleType(t string) {
	s.Legend.OnToggle(t, !s.Legend.Checked(t))
}

// ToggleIndex flips the legend entry at index i.
func (s *Session) ToggleIndex(i int) { s.Legend.Toggle(i) }

// SelectAll checks every legend entry.
func (s *Session) SelectAll() { s.Legend.SelectAll() }

// ClearAll unchecks every legend entry.
func (s *Session) ClearAll() { s.Legend.ClearAll() }

// ShowOnly enables exactly the given types and redraws once. Types the
// legend does not know yet are added.
func (s *Session) ShowOnly(types ...string) {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	for _, e := range s.Legend.Entries() {
		s.Legend.OnToggle(e.Type, want[e.Type])
		delete(want, e.Type)
	}
	for t := range want {
		s.Legend.OnToggle(t, true)
	}
	drawn := s.Pipeline.Redraw()
	s.logger.Debug("showing only", "types", types, "drawn", drawn)
}

// Click hit-tests a point in plot pixels and selects the node under it.
func (s *Session) Click(px, py float64) bool { return s.Scene.Click(px, py) }

// SelectAt is Click with a hit radius wider than a node.
func (s *Session) SelectAt(px, py, radius float64) bool {
	return s.Scene.ClickWithin(px, py, max(radius, scene.NodeRadius))
}

// SetDepth moves both depth handles. An inverted or non-finite range returns
// an *visibility.InvalidRangeError and leaves everything unchanged.
func (s *Session) SetDepth(min, max float64) error {
	if min > max || !finite(min) || !finite(max) {
		return &visibility.InvalidRangeError{Min: min, Max: max}
	}
	if !s.Depth.InDomain(min, max) {
		lo, hi := s.Depth.Domain()
		return fmt.Errorf("%w: [%g, %g] not within [%g, %g]", ErrOutOfDomain, min, max, lo, hi)
	}
	s.Depth.Set(min, max)
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// NudgeLow moves the low depth handle by steps.
func (s *Session) NudgeLow(steps int) bool { return s.Depth.NudgeLow(steps) }

// NudgeHigh moves the high depth handle by steps.
func (s *Session) NudgeHigh(steps int) bool { return s.Depth.NudgeHigh(steps) }

// CycleType selects the next or previous existing type in the picker and
// writes it into the form.
func (s *Session) CycleType(delta int) {
	if s.Picker.Cycle(delta) {
		s.Inspector.SetType(s.Picker.Value())
	}
}

// InputType sets the picker's free text and writes the resulting value
// into the form.
func (s *Session) InputType(text string) {
	s.Picker.Input(text)
	s.Inspector.SetType(s.Picker.Value())
}

// CommitType adds the picker's value to the legend when it is a new type.
// It reports whether a type was added.
func (s *Session) CommitType() bool {
	if !s.Picker.IsNew() {
		return false
	}
	t := s.Picker.Value()
	s.Legend.Add(t)
	s.Picker.SetOptions(s.State.Types())
	s.Picker.Reset()
	s.Picker.Choose(t)
	s.Inspector.SetType(t)
	s.logger.Info("marker type added", "type", t)
	return true
}

// NewMarker resets the form and the type picker for a new marker.
func (s *Session) NewMarker() {
	s.Inspector.NewMarker()
	s.Picker.Reset()
}

// Reload replaces the marker set and rebuilds derived state. Depth handles
// and the convention are kept. The legend lists every type the filter knows,
// including types added from the form, and all of them start checked.
func (s *Session) Reload(markers []marker.Marker) {
	s.Store.Load(markers)
	s.State.Register(s.Store.Types()...)
	s.Legend.Build(s.State.Types())
	s.Picker.SetOptions(s.State.Types())
	s.Inspector.NewMarker()
	s.warnOutside()
	drawn := s.Pipeline.Redraw()
	s.logger.Info("markers reloaded", "markers", s.Store.Len(), "drawn", drawn)
}

// OutsideDomain returns the names of markers whose position falls outside
// the mapped world extent. They are still drawn, off the plot area.
func (s *Session) OutsideDomain() []string {
	world := s.Mapper.World()
	if ext, ok := s.Store.Extent(); !ok || world.Covers(ext) {
		return nil
	}
	var out []string
	s.Store.Each(func(m marker.Marker) {
		if !world.Contains(m.X, m.Y) {
			out = append(out, m.Name)
		}
	})
	return out
}

func (s *Session) warnOutside() {
	if names := s.OutsideDomain(); len(names) > 0 {
		s.logger.Warn("markers outside map domain", "count", len(names), "names", names)
	}
}
