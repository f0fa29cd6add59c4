// Package triangulate builds the connectivity graph between principal rooms
// from a Delaunay triangulation of their centers.
package triangulate

import (
	"errors"
	"fmt"

	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
)

// ErrDegenerateInput indicates a point set with no triangulation: fewer
// than three points, or every point on one line.
var ErrDegenerateInput = errors.New("triangulate: degenerate input")

// Triangle holds three indices into the triangulated point slice.
type Triangle [3]int

type edgeKey struct{ a, b int }

func makeEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Delaunay triangulates points. The returned triangles index into points
// and cover their whole convex hull.
func Delaunay(points []orb.Point) ([]Triangle, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 points, got %d", ErrDegenerateInput, n)
	}

	bound := orb.MultiPoint(points).Bound()
	if bound.Max[0] == bound.Min[0] && bound.Max[1] == bound.Min[1] {
		return nil, fmt.Errorf("%w: all points coincide", ErrDegenerateInput)
	}

	pts := make([]delaunay.Point, n)
	for i, p := range points {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}

	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateInput, err)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("%w: points are collinear", ErrDegenerateInput)
	}

	out := make([]Triangle, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		out = append(out, Triangle{tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]})
	}
	return out, nil
}
