package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateScale is returned when a scale's domain or range has zero
// width or a non-finite bound.
var ErrDegenerateScale = errors.New("degenerate scale")

// Linear is an affine map from a domain [D0, D1] onto a range [R0, R1].
// D0 may be greater than D1; that is how the Y axis is flipped.
// Values outside the domain are extrapolated, never clamped.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a scale, rejecting zero-width domains and ranges.
func NewLinear(d0, d1, r0, r1 float64) (Linear, error) {
	for _, v := range []float64{d0, d1, r0, r1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Linear{}, fmt.Errorf("scale [%g, %g] -> [%g, %g]: %w", d0, d1, r0, r1, ErrDegenerateScale)
		}
	}
	if d0 == d1 {
		return Linear{}, fmt.Errorf("domain [%g, %g]: %w", d0, d1, ErrDegenerateScale)
	}
	if r0 == r1 {
		return Linear{}, fmt.Errorf("range [%g, %g]: %w", r0, r1, ErrDegenerateScale)
	}
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}, nil
}

// Map converts a domain value to range units.
func (s Linear) Map(v float64) float64 {
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert converts a range value back to domain units.
func (s Linear) Invert(p float64) float64 {
	return s.D0 + (p-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// Ticks returns roughly count evenly spaced "nice" values (1, 2 or 5 times a
// power of ten apart) inside the domain, in ascending order.
func (s Linear) Ticks(count int) []float64 {
	lo, hi := s.D0, s.D1
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 || lo == hi {
		return nil
	}
	step := tickStep(lo, hi, count)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i*step)
	}
	return ticks
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	step := math.Pow(10, math.Floor(math.Log10(raw)))
	switch ratio := raw / step; {
	case ratio >= math.Sqrt(50):
		step *= 10
	case ratio >= math.Sqrt(10):
		step *= 5
	case ratio >= math.Sqrt(2):
		step *= 2
	}
	return step
}

// Mapper converts world coordinates to plotting-surface pixels. The plot area
// is the canvas minus Margin on every side; pixel (0, 0) is its top-left.
// World Y grows upward while pixel Y grows downward.
type Mapper struct {
	X, Y   Linear
	Width  float64
	Height float64
	Margin float64
}

// NewMapper builds a mapper for the given world extent and canvas geometry.
func NewMapper(world BBox, width, height, margin float64) (*Mapper, error) {
	xLen := width - 2*margin
	yLen := height - 2*margin
	if xLen <= 0 || yLen <= 0 {
		return nil, fmt.Errorf("canvas %gx%g with margin %g leaves no plot area: %w", width, height, margin, ErrDegenerateScale)
	}
	x, err := NewLinear(world.MinX, world.MaxX, 0, xLen)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	y, err := NewLinear(world.MaxY, world.MinY, 0, yLen)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	return &Mapper{X: x, Y: y, Width: width, Height: height, Margin: margin}, nil
}

// ToPixelX maps a world X to a plot-area pixel X.
func (m *Mapper) ToPixelX(x float64) float64 { return m.X.Map(x) }

// ToPixelY maps a world Y to a plot-area pixel Y.
func (m *Mapper) ToPixelY(y float64) float64 { return m.Y.Map(y) }

// ToWorld is the inverse of (ToPixelX, ToPixelY).
func (m *Mapper) ToWorld(px, py float64) (float64, float64) {
	return m.X.Invert(px), m.Y.Invert(py)
}

// PlotWidth is the X pixel range length.
func (m *Mapper) PlotWidth() float64 { return m.X.R1 - m.X.R0 }

// PlotHeight is the Y pixel range length.
func (m *Mapper) PlotHeight() float64 { return m.Y.R1 - m.Y.R0 }

// World returns the configured world extent.
func (m *Mapper) World() BBox {
	return BBox{MinX: m.X.D0, MaxX: m.X.D1, MinY: m.Y.D1, MaxY: m.Y.D0}
}
