package raster

import (
	"math"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Block is a grid-aligned rectangle with inclusive top-left and bottom-right
// cells.
type Block struct {
	TL Cell `json:"tl"`
	BR Cell `json:"br"`
}

// ToBlock snaps a room onto the grid: the top-left rounds up and the
// bottom-right rounds down to whole tiles.
func ToBlock(r geom.Rect, tileSize float64) Block {
	far := r.Max()
	return Block{
		TL: Cell{X: int(math.Ceil(r.Anchor.X / tileSize)), Y: int(math.Ceil(r.Anchor.Y / tileSize))},
		BR: Cell{X: int(math.Floor(far.X / tileSize)), Y: int(math.Floor(far.Y / tileSize))},
	}
}

// Valid reports whether the block covers at least one cell.
func (b Block) Valid() bool {
	return b.TL.X <= b.BR.X && b.TL.Y <= b.BR.Y
}

// Width returns the number of columns covered.
func (b Block) Width() int {
	return b.BR.X - b.TL.X + 1
}

// Height returns the number of rows covered.
func (b Block) Height() int {
	return b.BR.Y - b.TL.Y + 1
}

// Center returns the middle cell, rounding toward the top-left.
func (b Block) Center() Cell {
	return Cell{X: floorDiv(b.TL.X+b.BR.X, 2), Y: floorDiv(b.TL.Y+b.BR.Y, 2)}
}

// Contains returns true if the cell lies inside the block.
func (b Block) Contains(c Cell) bool {
	return c.X >= b.TL.X && c.X <= b.BR.X && c.Y >= b.TL.Y && c.Y <= b.BR.Y
}

// Overlaps reports a strict overlap on both axes: each block must start
// before the other one ends.
func (b Block) Overlaps(o Block) bool {
	return b.TL.X < o.BR.X && o.TL.X < b.BR.X &&
		b.TL.Y < o.BR.Y && o.TL.Y < b.BR.Y
}

// overlapX returns how many columns the two blocks share (may be <= 0).
func overlapX(a, b Block) int {
	return min(a.BR.X, b.BR.X) - max(a.TL.X, b.TL.X) + 1
}

// overlapY returns how many rows the two blocks share (may be <= 0).
func overlapY(a, b Block) int {
	return min(a.BR.Y, b.BR.Y) - max(a.TL.Y, b.TL.Y) + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
