// Package geom provides the 2D primitives used by the generator: points and
// axis-aligned rectangles.
package geom

import "math"

// Point is a position or direction in continuous layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Len returns the Euclidean length of p.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// IsZero reports whether p is the zero vector.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Normalize returns the unit vector pointing in the direction of p.
// The zero vector normalizes to itself.
func (p Point) Normalize() Point {
	d := p.Len()
	if d == 0 {
		return Point{}
	}
	return Point{X: p.X / d, Y: p.Y / d}
}
