package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapper(t *testing.T) *Mapper {
	t.Helper()
	m, err := NewMapper(BBox{MinX: -1500, MaxX: 1400, MinY: -1350, MaxY: 800}, 800, 800, 50)
	require.NoError(t, err)
	return m
}

func TestMapper_DomainEndpoints(t *testing.T) {
	m := testMapper(t)

	assert.InDelta(t, 0, m.ToPixelX(-1500), 1e-9)
	assert.InDelta(t, 700, m.ToPixelX(1400), 1e-9)
	// Y is reversed: the top of the world is pixel row 0.
	assert.InDelta(t, 0, m.ToPixelY(800), 1e-9)
	assert.InDelta(t, 700, m.ToPixelY(-1350), 1e-9)
}

func TestMapper_Monotonic(t *testing.T) {
	m := testMapper(t)

	assert.Less(t, m.ToPixelX(-10), m.ToPixelX(10))
	assert.Greater(t, m.ToPixelY(-10), m.ToPixelY(10), "higher world Y should sit higher on screen")
}

func TestMapper_NoClamping(t *testing.T) {
	m := testMapper(t)

	assert.Less(t, m.ToPixelX(-3000), 0.0)
	assert.Greater(t, m.ToPixelX(3000), 700.0)
	assert.Less(t, m.ToPixelY(5000), 0.0)
}

func TestMapper_RoundTrip(t *testing.T) {
	m := testMapper(t)

	x, y := m.ToWorld(m.ToPixelX(123.5), m.ToPixelY(-77))
	assert.InDelta(t, 123.5, x, 1e-9)
	assert.InDelta(t, -77, y, 1e-9)
	assert.Equal(t, BBox{MinX: -1500, MaxX: 1400, MinY: -1350, MaxY: 800}, m.World())
}

func TestNewMapper_Errors(t *testing.T) {
	tests := []struct {
		name   string
		world  BBox
		w, h   float64
		margin float64
	}{
		{"flat x domain", BBox{MinX: 1, MaxX: 1, MinY: 0, MaxY: 10}, 100, 100, 10},
		{"flat y domain", BBox{MinX: 0, MaxX: 10, MinY: 5, MaxY: 5}, 100, 100, 10},
		{"margin eats canvas", BBox{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, 100, 100, 50},
		{"nan x domain", BBox{MinX: math.NaN(), MaxX: 10, MinY: 0, MaxY: 10}, 100, 100, 10},
		{"infinite y domain", BBox{MinX: 0, MaxX: 10, MinY: 0, MaxY: math.Inf(1)}, 100, 100, 10},
		{"nan canvas", BBox{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, math.NaN(), 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapper(tt.world, tt.w, tt.h, tt.margin)
			assert.ErrorIs(t, err, ErrDegenerateScale)
		})
	}
}

func TestLinear_Ticks(t *testing.T) {
	s, err := NewLinear(-1500, 1400, 0, 700)
	require.NoError(t, err)

	ticks := s.Ticks(10)
	require.NotEmpty(t, ticks)
	assert.Equal(t, -1400.0, ticks[0])
	assert.Equal(t, 1400.0, ticks[len(ticks)-1])
	for i := 1; i < len(ticks); i++ {
		assert.InDelta(t, 200, ticks[i]-ticks[i-1], 1e-9)
	}

	rev, err := NewLinear(800, -1350, 0, 700)
	require.NoError(t, err)
	assert.Equal(t, -1200.0, rev.Ticks(10)[0], "ticks are ascending even on a reversed domain")
}

func TestBBoxOf(t *testing.T) {
	_, ok := BBoxOf(nil)
	assert.False(t, ok)

	bb, ok := BBoxOf([][2]float64{{1, 2}, {-3, 5}, {4, -1}})
	require.True(t, ok)
	assert.Equal(t, BBox{MinX: -3, MinY: -1, MaxX: 4, MaxY: 5}, bb)
	assert.True(t, bb.Valid())

	assert.True(t, bb.Contains(4, 5))
	assert.False(t, bb.Contains(4.1, 0))
	assert.True(t, bb.Covers(BBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}))
	assert.False(t, bb.Covers(BBox{MinX: -5, MinY: 0, MaxX: 1, MaxY: 1}))

	flat, _ := BBoxOf([][2]float64{{2, 2}})
	assert.False(t, flat.Valid())
}
