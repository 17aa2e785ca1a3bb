package depth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct{ min, max float64 }

func newControl(t *testing.T) (*Control, *[]event) {
	t.Helper()
	c, err := New(2000, 50)
	require.NoError(t, err)
	var events []event
	c.OnChange(func(min, max float64) { events = append(events, event{min, max}) })
	return c, &events
}

func TestNew(t *testing.T) {
	c, _ := newControl(t)
	lo, hi := c.Value()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2000.0, hi)
	assert.Equal(t, "0-2,000", c.Label())

	_, err := New(0, 10)
	assert.Error(t, err)
	_, err = New(math.NaN(), 10)
	assert.Error(t, err)
	_, err = New(math.Inf(1), 10)
	assert.Error(t, err)

	d, err := New(400, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d.Step())
}

func TestSet_EmitsOnlyValidChanges(t *testing.T) {
	c, events := newControl(t)

	assert.True(t, c.Set(100, 900))
	assert.False(t, c.Set(100, 900), "unchanged")
	assert.False(t, c.Set(900, 100), "inverted")
	assert.False(t, c.Set(-1, 100), "below domain")
	assert.False(t, c.Set(0, 2001), "above domain")
	assert.False(t, c.Set(math.NaN(), 100), "NaN min")
	assert.False(t, c.Set(100, math.NaN()), "NaN max")
	assert.False(t, c.Set(math.Inf(-1), 100), "infinite min")

	assert.Equal(t, []event{{100, 900}}, *events)
	assert.Equal(t, "100-900", c.Label())
}

func TestNudge_ClampsAndNeverCrosses(t *testing.T) {
	c, events := newControl(t)

	assert.False(t, c.NudgeLow(-1), "already at domain min")
	assert.True(t, c.NudgeLow(2))
	assert.True(t, c.NudgeHigh(-4))
	lo, hi := c.Value()
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 1800.0, hi)

	assert.True(t, c.NudgeLow(1000))
	lo, hi = c.Value()
	assert.Equal(t, hi, lo, "low stops at high")

	assert.True(t, c.NudgeHigh(1000))
	_, hi = c.Value()
	assert.Equal(t, 2000.0, hi)

	for _, e := range *events {
		assert.LessOrEqual(t, e.min, e.max)
	}
}

func TestInDomain(t *testing.T) {
	c, _ := newControl(t)
	tests := []struct {
		name     string
		min, max float64
		want     bool
	}{
		{"full", 0, 2000, true},
		{"below", -1, 10, false},
		{"above", 0, 2001, false},
		{"nan min", math.NaN(), 10, false},
		{"nan max", 0, math.NaN(), false},
		{"inf max", 0, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.InDomain(tt.min, tt.max))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "1,250-12,000", Label(1250, 12000))
}

func TestFraction(t *testing.T) {
	c, _ := newControl(t)
	c.Set(500, 1000)
	lo, hi := c.Fraction()
	assert.Equal(t, 0.25, lo)
	assert.Equal(t, 0.5, hi)
}
