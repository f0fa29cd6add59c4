// Package sampler draws the random inputs of a generation run: candidate
// room positions inside a disk and jittered room dimensions.
package sampler

import (
	"math"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// Sampler wraps a Source with the distributions the generator needs.
// A Sampler is not safe for concurrent use; each generation owns one.
type Sampler struct {
	src Source
}

// New creates a sampler seeded with seed.
func New(seed int64) *Sampler {
	return &Sampler{src: NewSource(seed)}
}

// FromSource creates a sampler over an existing source.
func FromSource(src Source) *Sampler {
	return &Sampler{src: src}
}

// PointInDisk returns a point uniformly distributed inside a disk of the given
// radius. The disk is shifted so its bounding box starts at the origin, so
// both coordinates are non-negative.
//
// The radius is drawn from a triangular distribution (sum of two uniforms,
// folded at 1) which yields radially uniform density.
func (s *Sampler) PointInDisk(radius float64) geom.Point {
	theta := 2 * math.Pi * s.src.Float64()
	u := s.src.Float64() + s.src.Float64()
	r := u
	if u > 1 {
		r = 2 - u
	}
	return geom.Point{
		X: radius*r*math.Cos(theta) + radius,
		Y: radius*r*math.Sin(theta) + radius,
	}
}

// ScalarInRange returns min + span*u for a uniform u.
func (s *Sampler) ScalarInRange(min, span float64) float64 {
	return min + span*s.src.Float64()
}

// Room draws one candidate room: an anchor inside the disk and dimensions
// between the floor and floor+variation, padded by expansion.
func (s *Sampler) Room(radius, minWidth, minHeight, variation, expansion float64) geom.Rect {
	anchor := s.PointInDisk(radius)
	width := s.ScalarInRange(minWidth, variation) + expansion
	height := s.ScalarInRange(minHeight, variation) + expansion
	return geom.NewRect(anchor, width, height)
}
