package geom

import "math"

// Rect represents a room: an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Anchor Point   `json:"anchor"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a rectangle at the given anchor.
func NewRect(anchor Point, width, height float64) Rect {
	return Rect{Anchor: anchor, Width: width, Height: height}
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Anchor.X + r.Width/2, Y: r.Anchor.Y + r.Height/2}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Anchor.X + r.Width, Y: r.Anchor.Y + r.Height}
}

// Area returns width * height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Translate moves the anchor by d.
func (r *Rect) Translate(d Point) {
	r.Anchor = r.Anchor.Add(d)
}

// Intersects returns true if this room overlaps with another room.
// The distance between centers must be strictly below the half-extent sum on
// both axes, so rooms that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	c1, c2 := r.Center(), other.Center()
	return math.Abs(c1.X-c2.X) < r.Width/2+other.Width/2 &&
		math.Abs(c1.Y-c2.Y) < r.Height/2+other.Height/2
}
