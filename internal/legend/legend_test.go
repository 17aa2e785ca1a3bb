package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveymap/internal/geom"
	"surveymap/internal/marker"
	"surveymap/internal/scene"
	"surveymap/internal/visibility"
)

type countingPipeline struct {
	*scene.Pipeline
	redraws int
}

func (p *countingPipeline) Redraw() int {
	p.redraws++
	return p.Pipeline.Redraw()
}

type fixture struct {
	state *visibility.State
	scene *scene.Scene
	pipe  *countingPipeline
	ctl   *Controller
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := marker.NewStore([]marker.Marker{
		{ID: "a", Name: "A", Depth: 100, Type: "shaft"},
		{ID: "b", Name: "B", Depth: 3000, Type: "tunnel"},
		{ID: "c", Name: "C", Depth: 200, Type: "tunnel"},
	})
	state, err := visibility.New(store.Types(), visibility.Range{Min: 0, Max: 2000})
	require.NoError(t, err)
	mapper, err := geom.NewMapper(geom.BBox{MinX: -1500, MaxX: 1400, MinY: -1350, MaxY: 800}, 800, 800, 50)
	require.NoError(t, err)
	sc := scene.NewScene()
	pipe := &countingPipeline{Pipeline: scene.NewPipeline(store, state, mapper, sc)}
	ctl := New(state, pipe, nil)
	ctl.Build(store.Types())
	pipe.Pipeline.Redraw()
	return fixture{state, sc, pipe, ctl}
}

func TestBuild_SortedAndChecked(t *testing.T) {
	f := newFixture(t)
	f.ctl.Build([]string{"tunnel", "shaft", "cave", "shaft"})

	assert.Equal(t, []Entry{
		{Type: "cave", Checked: true},
		{Type: "shaft", Checked: true},
		{Type: "tunnel", Checked: true},
	}, f.ctl.Entries())
	enabled, known := f.state.TypeEnabled("cave")
	assert.True(t, known)
	assert.True(t, enabled)
}

func TestOnToggle_TargetedWithoutRedraw(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, []string{"A", "C"}, f.scene.Visible())

	f.ctl.OnToggle("shaft", false)
	assert.Equal(t, []string{"C"}, f.scene.Visible())
	assert.False(t, f.ctl.Checked("shaft"))
	enabled, _ := f.state.TypeEnabled("shaft")
	assert.False(t, enabled)

	f.ctl.OnToggle("shaft", true)
	assert.Equal(t, []string{"A", "C"}, f.scene.Visible(), "A restored, tunnel untouched")
	assert.Zero(t, f.pipe.redraws, "single toggles never redraw")
}

func TestToggle_ByIndex(t *testing.T) {
	f := newFixture(t)
	f.ctl.Toggle(1) // tunnel
	assert.Equal(t, []string{"A"}, f.scene.Visible())
	f.ctl.Toggle(99)
	assert.Equal(t, []string{"A"}, f.scene.Visible())
}

func TestSelectAll_RedrawsOnceFromFilter(t *testing.T) {
	f := newFixture(t)
	f.ctl.OnToggle("shaft", false)
	f.ctl.OnToggle("tunnel", false)
	assert.Empty(t, f.scene.Visible())

	f.ctl.SelectAll()
	assert.Equal(t, 1, f.pipe.redraws)
	assert.Equal(t, []string{"A", "C"}, f.scene.Visible(), "B stays out of depth range")
	for _, e := range f.ctl.Entries() {
		assert.True(t, e.Checked)
	}
}

func TestClearAll(t *testing.T) {
	f := newFixture(t)
	f.ctl.ClearAll()

	assert.Equal(t, 1, f.pipe.redraws)
	assert.Empty(t, f.scene.Nodes())
	for _, e := range f.ctl.Entries() {
		assert.False(t, e.Checked)
	}
}

func TestAdd_KeepsOrderAndIgnoresKnown(t *testing.T) {
	f := newFixture(t)
	f.ctl.Add("pod")
	f.ctl.Add("shaft")

	var types []string
	for _, e := range f.ctl.Entries() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"pod", "shaft", "tunnel"}, types)
	_, known := f.state.TypeEnabled("pod")
	assert.True(t, known)
}

func TestOnToggle_UnknownTypeAddsEntry(t *testing.T) {
	f := newFixture(t)
	f.ctl.OnToggle("cave", false)

	assert.False(t, f.ctl.Checked("cave"))
	enabled, known := f.state.TypeEnabled("cave")
	assert.True(t, known)
	assert.False(t, enabled)
}
