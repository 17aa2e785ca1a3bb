// Package scene turns the marker store and visibility filter into drawable
// nodes and owns the render targets those nodes are drawn on.
package scene

import "math"

// NodeRadius is the marker circle radius in plot pixels; it is also the
// click tolerance for hit testing.
const NodeRadius = 10.0

// Node is one drawn marker.
type Node struct {
	MarkerID string
	Label    string
	Tag      string // marker type, used by the legend to target nodes
	X, Y     float64
	Opacity  float64 // depth-derived, in [0.2, 1]
	Alpha    float64 // legend visibility multiplier: 1 shown, 0 hidden
	Color    string
}

// Shown reports whether the node is currently visible on the surface.
func (n Node) Shown() bool { return n.Alpha > 0 }

// EffectiveOpacity is what a renderer should paint with.
func (n Node) EffectiveOpacity() float64 { return n.Opacity * n.Alpha }

// Surface is a render target the pipeline draws on.
type Surface interface {
	// Clear removes every drawn node.
	Clear()
	// Add draws one node.
	Add(Node)
	// SetTagOpacity sets Alpha on every drawn node tagged tag and returns
	// how many nodes changed.
	SetTagOpacity(tag string, alpha float64) int
}

// Scene is an in-memory Surface. Hosts render it to the terminal or to SVG.
type Scene struct {
	nodes    []Node
	onSelect func(Node)
}

// NewScene returns an empty scene.
func NewScene() *Scene { return &Scene{} }

// Clear implements Surface.
func (s *Scene) Clear() { s.nodes = s.nodes[:0] }

// Add implements Surface.
func (s *Scene) Add(n Node) { s.nodes = append(s.nodes, n) }

// SetTagOpacity implements Surface.
func (s *Scene) SetTagOpacity(tag string, alpha float64) int {
	changed := 0
	for i := range s.nodes {
		if s.nodes[i].Tag == tag {
			s.nodes[i].Alpha = alpha
			changed++
		}
	}
	return changed
}

// Nodes returns a copy of every drawn node in draw order.
func (s *Scene) Nodes() []Node {
	return append([]Node(nil), s.nodes...)
}

// Visible returns the labels of nodes currently shown, in draw order.
func (s *Scene) Visible() []string {
	var out []string
	for _, n := range s.nodes {
		if n.Shown() {
			out = append(out, n.Label)
		}
	}
	return out
}

// NodeAt returns the shown node nearest to (px, py) within radius. Later
// nodes win ties since they are painted on top.
func (s *Scene) NodeAt(px, py, radius float64) (Node, bool) {
	best := -1
	bestD := math.Inf(1)
	for i, n := range s.nodes {
		if !n.Shown() {
			continue
		}
		d := math.Hypot(n.X-px, n.Y-py)
		if d <= radius && d <= bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return Node{}, false
	}
	return s.nodes[best], true
}

// OnSelect registers the handler invoked when a node is clicked.
func (s *Scene) OnSelect(fn func(Node)) { s.onSelect = fn }

// Click dispatches a selection for the node under (px, py), if any.
func (s *Scene) Click(px, py float64) bool { return s.ClickWithin(px, py, NodeRadius) }

// ClickWithin is Click with a custom hit radius, for hosts whose pointer
// resolution is coarser than a node.
func (s *Scene) ClickWithin(px, py, radius float64) bool {
	n, ok := s.NodeAt(px, py, radius)
	if !ok {
		return false
	}
	if s.onSelect != nil {
		s.onSelect(n)
	}
	return true
}
