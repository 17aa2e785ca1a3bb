package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePicker_ChooseMirrorsIntoText(t *testing.T) {
	p := NewTypePicker([]string{"tunnel", "shaft"})
	assert.Equal(t, []string{"shaft", "tunnel"}, p.Options())
	assert.Equal(t, "shaft", p.Value())

	assert.True(t, p.Choose("tunnel"))
	assert.Equal(t, "tunnel", p.Text())
	assert.False(t, p.ListDisabled())
	assert.Equal(t, "tunnel", p.Value())
	assert.False(t, p.IsNew())

	assert.False(t, p.Choose("cave"))
}

func TestTypePicker_FreeTextDisablesList(t *testing.T) {
	p := NewTypePicker([]string{"shaft", "tunnel"})

	p.Input("cave")
	assert.True(t, p.ListDisabled())
	assert.Equal(t, "cave", p.Value())
	assert.True(t, p.IsNew())
	assert.False(t, p.Choose("tunnel"), "list is disabled while text is entered")
	assert.False(t, p.Cycle(1))

	p.Input("")
	assert.False(t, p.ListDisabled())
	assert.Equal(t, "shaft", p.Value())
}

func TestTypePicker_Cycle(t *testing.T) {
	p := NewTypePicker([]string{"a", "b", "c"})
	assert.True(t, p.Cycle(-1))
	assert.Equal(t, "c", p.Value())
	assert.True(t, p.Cycle(1))
	assert.Equal(t, "a", p.Value())

	empty := NewTypePicker(nil)
	assert.False(t, empty.Cycle(1))
	assert.Equal(t, "", empty.Value())
	assert.False(t, empty.IsNew())
}

func TestTypePicker_SetOptionsKeepsSelection(t *testing.T) {
	p := NewTypePicker([]string{"a", "b"})
	p.Choose("b")
	p.SetOptions([]string{"c", "b", "a"})
	assert.Equal(t, "b", p.Selected())

	p.Reset()
	assert.Equal(t, "", p.Text())
	assert.Equal(t, "b", p.Value())
}
