package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveymap/internal/geom"
)

func sample() []Marker {
	return []Marker{
		{ID: "1", Name: "A", X: 10, Y: 20, Depth: 100, Type: "shaft"},
		{ID: "2", Name: "B", X: -5, Y: 3, Depth: 3000, Type: "tunnel"},
		{ID: "3", Name: "C", X: 0, Y: 0, Depth: 50, Type: "shaft"},
	}
}

func TestStore_LoadComputesTypes(t *testing.T) {
	s := NewStore(sample())

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"shaft", "tunnel"}, s.Types())
	assert.True(t, s.HasType("tunnel"))
	assert.False(t, s.HasType("cave"))
}

func TestStore_LoadReplacesAndIsIdempotent(t *testing.T) {
	s := NewStore(sample())
	s.Load([]Marker{{ID: "9", Name: "Z", Type: "cave"}})
	assert.Equal(t, []string{"cave"}, s.Types())
	assert.Equal(t, 1, s.Len())

	s.Load(sample())
	first := s.Markers()
	s.Load(sample())
	assert.Equal(t, first, s.Markers())
}

func TestStore_LoadCopiesInput(t *testing.T) {
	in := sample()
	s := NewStore(in)
	in[0].Name = "mutated"

	m, err := s.FindByID("1")
	require.NoError(t, err)
	assert.Equal(t, "A", m.Name)
}

func TestStore_FindByName(t *testing.T) {
	s := NewStore(sample())

	m, err := s.FindByName("B")
	require.NoError(t, err)
	assert.Equal(t, "2", m.ID)

	_, err = s.FindByName("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FindByID(t *testing.T) {
	s := NewStore(sample())

	m, err := s.FindByID("3")
	require.NoError(t, err)
	assert.Equal(t, "C", m.Name)

	_, err = s.FindByID("42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DuplicateNames(t *testing.T) {
	ms := append(sample(), Marker{ID: "4", Name: "A", Type: "cave"})
	s := NewStore(ms)

	assert.Equal(t, []string{"A"}, s.DuplicateNames())
	m, err := s.FindByName("A")
	require.NoError(t, err)
	assert.Equal(t, "1", m.ID, "first match in load order wins")
}

func TestStore_EachKeepsOrder(t *testing.T) {
	s := NewStore(sample())
	var names []string
	s.Each(func(m Marker) { names = append(names, m.Name) })
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestMarker_FillColor(t *testing.T) {
	assert.Equal(t, "#555555", Marker{}.FillColor())
	assert.Equal(t, "#ff0000", Marker{Color: "ff0000"}.FillColor())
	assert.Equal(t, "#00ff00", Marker{Color: "#00ff00"}.FillColor())
}

func TestFormatOptional(t *testing.T) {
	v := 12.5
	assert.Equal(t, "", FormatOptional(nil))
	assert.Equal(t, "12.5", FormatOptional(&v))
}

func TestStore_Extent(t *testing.T) {
	_, ok := NewStore(nil).Extent()
	assert.False(t, ok)

	s := NewStore([]Marker{
		{ID: "1", Name: "A", X: -10, Y: 4, Type: "shaft"},
		{ID: "2", Name: "B", X: 30, Y: -2, Type: "shaft"},
	})
	ext, ok := s.Extent()
	require.True(t, ok)
	assert.Equal(t, geom.BBox{MinX: -10, MinY: -2, MaxX: 30, MaxY: 4}, ext)
}
