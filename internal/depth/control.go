// Package depth implements the two-handle depth range selector.
package depth

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ChangeFunc receives every user-driven range change.
type ChangeFunc func(min, max float64)

// Control is a bounded two-handle range selector over [0, Max]. It only
// emits ranges that are inside the domain, ordered, and different from the
// current value.
type Control struct {
	domainMax float64
	step      float64
	low, high float64
	listeners []ChangeFunc
}

// New returns a control over [0, max] with both handles at the ends.
func New(max, step float64) (*Control, error) {
	if !(max > 0) || math.IsInf(max, 1) {
		return nil, fmt.Errorf("depth control: domain max %g must be positive and finite", max)
	}
	if !(step > 0) {
		step = max / 40
	}
	return &Control{domainMax: max, step: step, low: 0, high: max}, nil
}

// OnChange subscribes fn to range changes.
func (c *Control) OnChange(fn ChangeFunc) { c.listeners = append(c.listeners, fn) }

// Value returns the current handle positions.
func (c *Control) Value() (min, max float64) { return c.low, c.high }

// Domain returns the selectable bounds.
func (c *Control) Domain() (min, max float64) { return 0, c.domainMax }

// Step is the nudge increment.
func (c *Control) Step() float64 { return c.step }

// Set moves both handles. Ranges outside the domain, with min > max, or
// with a NaN bound are ignored, as are no-op changes. It reports whether an
// event was emitted.
func (c *Control) Set(min, max float64) bool {
	if !c.InDomain(min, max) || min > max {
		return false
	}
	if min == c.low && max == c.high {
		return false
	}
	c.low, c.high = min, max
	for _, fn := range c.listeners {
		fn(min, max)
	}
	return true
}

// InDomain reports whether both bounds are numbers inside [0, Max].
func (c *Control) InDomain(min, max float64) bool {
	if math.IsNaN(min) || math.IsNaN(max) {
		return false
	}
	return min >= 0 && max <= c.domainMax
}

// NudgeLow moves the low handle by steps, clamped to [0, high].
func (c *Control) NudgeLow(steps int) bool {
	v := clamp(c.low+float64(steps)*c.step, 0, c.high)
	return c.Set(v, c.high)
}

// NudgeHigh moves the high handle by steps, clamped to [low, Max].
func (c *Control) NudgeHigh(steps int) bool {
	v := clamp(c.high+float64(steps)*c.step, c.low, c.domainMax)
	return c.Set(c.low, v)
}

// Label renders the current range as "min-max" with thousands separators.
func (c *Control) Label() string {
	return Label(c.low, c.high)
}

// Label formats a depth range the way the range readout shows it.
func Label(min, max float64) string {
	return humanize.Comma(int64(min)) + "-" + humanize.Comma(int64(max))
}

// Fraction returns the handle positions as fractions of the domain, for
// drawing the slider track.
func (c *Control) Fraction() (low, high float64) {
	return c.low / c.domainMax, c.high / c.domainMax
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
