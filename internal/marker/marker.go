// Package marker holds survey marker records, the per-session marker store and
// the file loaders that produce markers.
package marker

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Marker is one named, positioned survey record.
type Marker struct {
	ID       string   `json:"id" yaml:"id" toml:"id"`
	Name     string   `json:"name" yaml:"name" toml:"name"`
	X        float64  `json:"x" yaml:"x" toml:"x"`
	Y        float64  `json:"y" yaml:"y" toml:"y"`
	Depth    float64  `json:"depth" yaml:"depth" toml:"depth"`
	Distance *float64 `json:"distance,omitempty" yaml:"distance,omitempty" toml:"distance,omitempty"`
	Bearing  *float64 `json:"bearing,omitempty" yaml:"bearing,omitempty" toml:"bearing,omitempty"`
	Type     string   `json:"marker_type" yaml:"marker_type" toml:"marker_type"`
	Color    string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// DefaultColor is the fill used for markers that do not carry one.
const DefaultColor = "555555"

// FillColor returns the marker color as a CSS hex value.
func (m Marker) FillColor() string {
	c := m.Color
	if c == "" {
		c = DefaultColor
	}
	if c[0] != '#' {
		c = "#" + c
	}
	return c
}

// FormatOptional renders an optional numeric field for display; nil is "".
func FormatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

var (
	// ErrNotFound is returned by store lookups that match nothing.
	ErrNotFound = errors.New("marker not found")
	// ErrMissingField is returned by loaders for records lacking a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned by loaders for numeric fields that are NaN or infinite.
	ErrInvalidField = errors.New("invalid field value")
	// ErrUnsupportedFormat is returned by LoadFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("unsupported marker file format")
)

// record is the decoding shape shared by the structured loaders. Pointer
// fields distinguish "absent" from zero so required fields can be enforced.
type record struct {
	ID       string   `json:"id" yaml:"id" toml:"id"`
	Name     *string  `json:"name" yaml:"name" toml:"name"`
	X        *float64 `json:"x" yaml:"x" toml:"x"`
	Y        *float64 `json:"y" yaml:"y" toml:"y"`
	Depth    *float64 `json:"depth" yaml:"depth" toml:"depth"`
	Distance *float64 `json:"distance" yaml:"distance" toml:"distance"`
	Bearing  *float64 `json:"bearing" yaml:"bearing" toml:"bearing"`
	Heading  *float64 `json:"heading" yaml:"heading" toml:"heading"`
	Type     *string  `json:"marker_type" yaml:"marker_type" toml:"marker_type"`
	Color    string   `json:"color" yaml:"color" toml:"color"`
}

// toMarker validates required fields. idx is the record position used in errors.
// A record without an id gets a generated one.
func (r record) toMarker(idx int) (Marker, error) {
	missing := func(field string) error {
		return fmt.Errorf("record %d: %s: %w", idx, field, ErrMissingField)
	}
	switch {
	case r.Name == nil || *r.Name == "":
		return Marker{}, missing("name")
	case r.X == nil:
		return Marker{}, missing("x")
	case r.Y == nil:
		return Marker{}, missing("y")
	case r.Depth == nil:
		return Marker{}, missing("depth")
	case r.Type == nil || *r.Type == "":
		return Marker{}, missing("marker_type")
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"x", r.X}, {"y", r.Y}, {"depth", r.Depth},
		{"distance", r.Distance}, {"bearing", r.Bearing}, {"heading", r.Heading},
	} {
		if f.v != nil && !finite(*f.v) {
			return Marker{}, fmt.Errorf("record %d: %s %g: %w", idx, f.name, *f.v, ErrInvalidField)
		}
	}
	m := Marker{
		ID:       r.ID,
		Name:     *r.Name,
		X:        *r.X,
		Y:        *r.Y,
		Depth:    *r.Depth,
		Distance: r.Distance,
		Bearing:  r.Bearing,
		Type:     *r.Type,
		Color:    r.Color,
	}
	if m.Bearing == nil {
		m.Bearing = r.Heading
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return m, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func fromRecords(rs []record) ([]Marker, error) {
	out := make([]Marker, 0, len(rs))
	for i, r := range rs {
		m, err := r.toMarker(i + 1)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
