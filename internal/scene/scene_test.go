package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScene_SetTagOpacity(t *testing.T) {
	s := NewScene()
	s.Add(Node{Label: "A", Tag: "shaft", Alpha: 1})
	s.Add(Node{Label: "B", Tag: "tunnel", Alpha: 1})
	s.Add(Node{Label: "C", Tag: "shaft", Alpha: 1})

	assert.Equal(t, 2, s.SetTagOpacity("shaft", 0))
	assert.Equal(t, []string{"B"}, s.Visible())
	assert.Equal(t, 0, s.SetTagOpacity("cave", 0))

	s.SetTagOpacity("shaft", 1)
	assert.Equal(t, []string{"A", "B", "C"}, s.Visible())
}

func TestScene_NodeAt(t *testing.T) {
	s := NewScene()
	s.Add(Node{Label: "far", X: 100, Y: 100, Alpha: 1})
	s.Add(Node{Label: "near", X: 10, Y: 10, Alpha: 1})
	s.Add(Node{Label: "hidden", X: 11, Y: 11, Alpha: 0})

	n, ok := s.NodeAt(12, 12, NodeRadius)
	require.True(t, ok)
	assert.Equal(t, "near", n.Label, "hidden nodes are not hit")

	_, ok = s.NodeAt(50, 50, NodeRadius)
	assert.False(t, ok)
}

func TestScene_NodeAtPrefersTopmost(t *testing.T) {
	s := NewScene()
	s.Add(Node{Label: "under", X: 5, Y: 5, Alpha: 1})
	s.Add(Node{Label: "over", X: 5, Y: 5, Alpha: 1})

	n, ok := s.NodeAt(5, 5, NodeRadius)
	require.True(t, ok)
	assert.Equal(t, "over", n.Label)
}

func TestScene_Click(t *testing.T) {
	s := NewScene()
	s.Add(Node{Label: "A", X: 0, Y: 0, Alpha: 1})
	var got []string
	s.OnSelect(func(n Node) { got = append(got, n.Label) })

	assert.True(t, s.Click(3, 4))
	assert.False(t, s.Click(300, 400))
	assert.Equal(t, []string{"A"}, got)

	assert.False(t, s.Click(30, 0))
	assert.True(t, s.ClickWithin(30, 0, 40))
	assert.Equal(t, []string{"A", "A"}, got)
}

func TestScene_ClearAndCopy(t *testing.T) {
	s := NewScene()
	s.Add(Node{Label: "A", Alpha: 1})
	nodes := s.Nodes()
	nodes[0].Label = "mutated"
	assert.Equal(t, []string{"A"}, s.Visible())

	s.Clear()
	assert.Empty(t, s.Nodes())
}
