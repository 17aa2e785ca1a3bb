// Package visibility holds the authoritative filter deciding which markers
// are drawn: per-type flags plus an inclusive depth range.
package visibility

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"surveymap/internal/marker"
)

// ErrInvalidRange is matched by errors.Is for every *InvalidRangeError.
var ErrInvalidRange = errors.New("invalid depth range")

// InvalidRangeError reports a depth range whose minimum exceeds its maximum
// or whose bounds are not finite.
type InvalidRangeError struct {
	Min, Max float64
}

func (e *InvalidRangeError) Error() string {
	if e.Min > e.Max {
		return fmt.Sprintf("invalid depth range: min %g > max %g", e.Min, e.Max)
	}
	return fmt.Sprintf("invalid depth range: bounds %g, %g must be finite", e.Min, e.Max)
}

// Is lets errors.Is(err, ErrInvalidRange) match.
func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// Range is an inclusive depth interval.
type Range struct {
	Min, Max float64
}

// Contains reports whether d lies in [Min, Max].
func (r Range) Contains(d float64) bool { return d >= r.Min && d <= r.Max }

// State is the per-session visibility filter. Type flags are only ever added,
// never removed. The zero value is not usable; call New.
type State struct {
	enabled map[string]bool
	depth   Range
}

// New returns a state with every type in types enabled and the given depth range.
func New(types []string, depth Range) (*State, error) {
	if !validRange(depth.Min, depth.Max) {
		return nil, &InvalidRangeError{Min: depth.Min, Max: depth.Max}
	}
	s := &State{enabled: make(map[string]bool, len(types)), depth: depth}
	s.Register(types...)
	return s, nil
}

// Register adds types as enabled. Types that already have a flag keep it.
func (s *State) Register(types ...string) {
	for _, t := range types {
		if _, ok := s.enabled[t]; !ok {
			s.enabled[t] = true
		}
	}
}

// SetTypeEnabled sets a type's flag, adding the type if it is new.
func (s *State) SetTypeEnabled(t string, enabled bool) {
	s.enabled[t] = enabled
}

// SetAllEnabled sets every known type's flag.
func (s *State) SetAllEnabled(enabled bool) {
	for t := range s.enabled {
		s.enabled[t] = enabled
	}
}

// SetDepthRange replaces both bounds at once. A range with min > max or a
// non-finite bound is rejected and the current range is kept.
func (s *State) SetDepthRange(min, max float64) error {
	if !validRange(min, max) {
		return &InvalidRangeError{Min: min, Max: max}
	}
	s.depth = Range{Min: min, Max: max}
	return nil
}

func validRange(min, max float64) bool {
	for _, v := range []float64{min, max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return min <= max
}

// DepthRange returns the current depth range.
func (s *State) DepthRange() Range { return s.depth }

// TypeEnabled returns a type's flag and whether the type is known.
func (s *State) TypeEnabled(t string) (enabled, known bool) {
	enabled, known = s.enabled[t]
	return enabled, known
}

// Types returns every known type, sorted.
func (s *State) Types() []string {
	out := make([]string, 0, len(s.enabled))
	for t := range s.enabled {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// IsVisible reports whether m passes both filters. Unknown types are hidden.
func (s *State) IsVisible(m marker.Marker) bool {
	return s.enabled[m.Type] && s.depth.Contains(m.Depth)
}
