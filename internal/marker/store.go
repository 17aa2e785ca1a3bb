package marker

import (
	"fmt"
	"sort"

	"surveymap/internal/geom"
)

// Store is the active marker set for one session. It is replaced wholesale by
// Load and is otherwise read-only.
type Store struct {
	markers []Marker
	types   map[string]struct{}
	byID    map[string]int
}

// NewStore returns a store loaded with markers.
func NewStore(markers []Marker) *Store {
	s := &Store{}
	s.Load(markers)
	return s
}

// Load replaces the active set and recomputes the type set. It never fails;
// field validation belongs to the loaders.
func (s *Store) Load(markers []Marker) {
	s.markers = append([]Marker(nil), markers...)
	s.types = make(map[string]struct{}, len(markers))
	s.byID = make(map[string]int, len(markers))
	for i, m := range s.markers {
		s.types[m.Type] = struct{}{}
		if _, dup := s.byID[m.ID]; !dup && m.ID != "" {
			s.byID[m.ID] = i
		}
	}
}

// Markers returns a copy of the markers in load order.
func (s *Store) Markers() []Marker {
	return append([]Marker(nil), s.markers...)
}

// Len returns the number of loaded markers.
func (s *Store) Len() int { return len(s.markers) }

// Each calls fn for every marker in load order.
func (s *Store) Each(fn func(Marker)) {
	for _, m := range s.markers {
		fn(m)
	}
}

// Types returns the distinct marker types, sorted.
func (s *Store) Types() []string {
	out := make([]string, 0, len(s.types))
	for t := range s.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasType reports whether any loaded marker has type t.
func (s *Store) HasType(t string) bool {
	_, ok := s.types[t]
	return ok
}

// FindByName returns the first marker named name.
func (s *Store) FindByName(name string) (Marker, error) {
	for _, m := range s.markers {
		if m.Name == name {
			return m, nil
		}
	}
	return Marker{}, fmt.Errorf("name %q: %w", name, ErrNotFound)
}

// FindByID returns the marker with the given id.
func (s *Store) FindByID(id string) (Marker, error) {
	if i, ok := s.byID[id]; ok {
		return s.markers[i], nil
	}
	return Marker{}, fmt.Errorf("id %q: %w", id, ErrNotFound)
}

// DuplicateNames lists names carried by more than one marker, sorted.
func (s *Store) DuplicateNames() []string {
	seen := make(map[string]int, len(s.markers))
	for _, m := range s.markers {
		seen[m.Name]++
	}
	var dups []string
	for n, c := range seen {
		if c > 1 {
			dups = append(dups, n)
		}
	}
	sort.Strings(dups)
	return dups
}

// Extent returns the bounding box of every marker position, or false when
// the store is empty.
func (s *Store) Extent() (geom.BBox, bool) {
	pts := make([][2]float64, len(s.markers))
	for i, m := range s.markers {
		pts[i] = [2]float64{m.X, m.Y}
	}
	return geom.BBoxOf(pts)
}
