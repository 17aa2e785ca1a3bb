package scene

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"surveymap/internal/geom"
	"surveymap/internal/marker"
	"surveymap/internal/visibility"
)

// Convention says which sign of depth means "deeper".
type Convention string

const (
	// NegativeDown: depth values grow more negative with depth.
	NegativeDown Convention = "negative-down"
	// PositiveDown: depth values grow more positive with depth.
	PositiveDown Convention = "positive-down"
)

// ParseConvention validates a configured convention name.
func ParseConvention(s string) (Convention, error) {
	switch c := Convention(s); c {
	case NegativeDown, PositiveDown:
		return c, nil
	case "":
		return NegativeDown, nil
	}
	return "", fmt.Errorf("unknown depth convention %q (want %q or %q)", s, NegativeDown, PositiveDown)
}

// Opacity fades deeper markers: 1 at the surface down to 0.2 at 800 units
// deep and beyond.
func Opacity(depth float64, c Convention) float64 {
	d := -depth
	if c == PositiveDown {
		d = depth
	}
	return 1.0 - math.Min(math.Max(d/1000.0, 0), 0.8)
}

// Pipeline draws the visible subset of the store on a surface.
type Pipeline struct {
	store      *marker.Store
	state      *visibility.State
	mapper     *geom.Mapper
	surface    Surface
	convention Convention
	logger     *log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConvention sets the depth sign convention used for opacity.
func WithConvention(c Convention) Option { return func(p *Pipeline) { p.convention = c } }

// WithLogger sets the logger used for per-redraw debug output.
func WithLogger(l *log.Logger) Option { return func(p *Pipeline) { p.logger = l } }

// NewPipeline wires the pipeline's collaborators.
func NewPipeline(store *marker.Store, state *visibility.State, mapper *geom.Mapper, surface Surface, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:      store,
		state:      state,
		mapper:     mapper,
		surface:    surface,
		convention: NegativeDown,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clear removes every drawn node.
func (p *Pipeline) Clear() { p.surface.Clear() }

// Redraw clears the surface and draws every visible marker in store order.
// It returns the number of nodes drawn.
func (p *Pipeline) Redraw() int {
	p.surface.Clear()
	drawn := 0
	p.store.Each(func(m marker.Marker) {
		if !p.state.IsVisible(m) {
			return
		}
		p.surface.Add(p.node(m))
		drawn++
	})
	r := p.state.DepthRange()
	p.logger.Debug("redraw", "drawn", drawn, "total", p.store.Len(), "min", r.Min, "max", r.Max)
	return drawn
}

func (p *Pipeline) node(m marker.Marker) Node {
	return Node{
		MarkerID: m.ID,
		Label:    m.Name,
		Tag:      m.Type,
		X:        p.mapper.ToPixelX(m.X),
		Y:        p.mapper.ToPixelY(m.Y),
		Opacity:  Opacity(m.Depth, p.convention),
		Alpha:    1,
		Color:    m.FillColor(),
	}
}

// Surface returns the surface the pipeline draws on.
func (p *Pipeline) Surface() Surface { return p.surface }

// Mapper returns the coordinate mapper shared with axis rendering.
func (p *Pipeline) Mapper() *geom.Mapper { return p.mapper }
