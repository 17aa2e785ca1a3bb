package geom

// BBox is an axis-aligned world-coordinate extent.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a non-zero extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Contains reports whether (x, y) lies inside the box, edges included.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Covers reports whether o lies entirely inside b.
func (b BBox) Covers(o BBox) bool {
	return b.Contains(o.MinX, o.MinY) && b.Contains(o.MaxX, o.MaxY)
}

// Extend grows the box to include (x, y). The first call on an empty box
// should go through BBoxOf instead so the zero value is not treated as a point.
func (b *BBox) Extend(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// BBoxOf returns the bounding box of pts, or ok=false when pts is empty.
func BBoxOf(pts [][2]float64) (bb BBox, ok bool) {
	for i, p := range pts {
		if i == 0 {
			bb = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
			continue
		}
		bb.Extend(p[0], p[1])
	}
	return bb, len(pts) > 0
}
