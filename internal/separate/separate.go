package separate

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// ErrDidNotConverge is returned when a room cannot be cleared of its
// neighbors within the step budget, or when the context ends first.
var ErrDidNotConverge = errors.New("separate: did not converge")

// DefaultMaxSteps bounds the displacement steps spent on a single room.
const DefaultMaxSteps = 10000

// Options controls the displacement loop.
type Options struct {
	// Increment is the distance a room moves per step. Must be positive.
	Increment float64
	// MaxSteps is the per-room step budget. Zero means DefaultMaxSteps.
	MaxSteps int
	// Fallback is the direction used when a room sits exactly on the
	// centroid. Zero means +X.
	Fallback geom.Point
}

// Stats summarizes a separation run.
type Stats struct {
	Conflicts  int `json:"conflicts"`  // intersecting pairs before separation
	Steps      int `json:"steps"`      // total displacement steps
	MaxPerRoom int `json:"maxPerRoom"` // most steps spent on one room
	Moved      int `json:"moved"`      // rooms that were displaced at least once
}

// Separate moves rooms in place until no pair intersects.
func Separate(ctx context.Context, rooms []geom.Rect, opts Options) (Stats, error) {
	var stats Stats
	if opts.Increment <= 0 {
		return stats, fmt.Errorf("separate: increment must be positive, got %v", opts.Increment)
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	fallback := opts.Fallback.Normalize()
	if fallback.IsZero() {
		fallback = geom.Point{X: 1}
	}

	g := BuildGraph(rooms)
	stats.Conflicts = g.EdgeCount()
	order := RemovalOrder(g)

	placed := make([]int, 0, len(rooms))

	// Re-insert in reverse removal order: the last room removed goes first.
	for k := len(order) - 1; k >= 0; k-- {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrDidNotConverge, err)
		}

		idx := order[k]
		room := &rooms[idx]
		placed = append(placed, idx)

		dir := room.Center().Sub(centroid(rooms, placed)).Normalize()
		if dir.IsZero() {
			dir = fallback
		}
		step := dir.Scale(opts.Increment)

		steps := 0
		for collides(rooms, placed[:len(placed)-1], *room) {
			if steps >= maxSteps {
				return stats, fmt.Errorf("%w: room %d still overlapping after %d steps", ErrDidNotConverge, idx, steps)
			}
			room.Translate(step)
			steps++
		}

		stats.Steps += steps
		if steps > stats.MaxPerRoom {
			stats.MaxPerRoom = steps
		}
		if steps > 0 {
			stats.Moved++
		}
	}

	return stats, nil
}

// centroid averages the current centers of the given rooms.
func centroid(rooms []geom.Rect, idx []int) geom.Point {
	var c geom.Point
	n := float64(len(idx))
	for _, i := range idx {
		c = c.Add(rooms[i].Center().Scale(1 / n))
	}
	return c
}

func collides(rooms []geom.Rect, placed []int, r geom.Rect) bool {
	for _, p := range placed {
		if r.Intersects(rooms[p]) {
			return true
		}
	}
	return false
}
