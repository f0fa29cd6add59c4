// Package selection moves a separated layout into non-negative space and
// picks the principal rooms that get connected and rasterized.
package selection

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// ErrInsufficientRooms indicates fewer rooms than requested principal rooms.
var ErrInsufficientRooms = errors.New("selection: not enough rooms")

// Normalize translates every room so the smallest anchor x and y become
// exactly zero. It returns the offset that was applied.
func Normalize(rooms []geom.Rect) geom.Point {
	if len(rooms) == 0 {
		return geom.Point{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	for _, r := range rooms {
		minX = math.Min(minX, r.Anchor.X)
		minY = math.Min(minY, r.Anchor.Y)
	}
	offset := geom.Point{X: -minX, Y: -minY}
	for i := range rooms {
		rooms[i].Translate(offset)
	}
	return offset
}

// Principal returns the indices of the count largest rooms by area, largest
// first. Equal areas keep index order.
func Principal(rooms []geom.Rect, count int) ([]int, error) {
	if count <= 0 {
		return nil, fmt.Errorf("selection: count must be positive, got %d", count)
	}
	if len(rooms) < count {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientRooms, len(rooms), count)
	}

	ranked := make([]int, len(rooms))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return rooms[ranked[a]].Area() > rooms[ranked[b]].Area()
	})
	return ranked[:count], nil
}

// Centers returns the centers of the selected rooms, in selection order.
func Centers(rooms []geom.Rect, selected []int) []geom.Point {
	out := make([]geom.Point, len(selected))
	for i, idx := range selected {
		out[i] = rooms[idx].Center()
	}
	return out
}
