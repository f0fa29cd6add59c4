package triangulate

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Edge is an undirected, weighted connection between two points (A < B).
type Edge struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Weight float64 `json:"weight"`
}

// Graph is the weighted connectivity graph over N points.
type Graph struct {
	N     int
	Edges []Edge
}

// Build triangulates points and returns the unique triangulation edges,
// weighted by Euclidean distance and sorted by endpoints.
func Build(points []orb.Point) (Graph, error) {
	tris, err := Delaunay(points)
	if err != nil {
		return Graph{}, err
	}

	seen := make(map[edgeKey]bool)
	g := Graph{N: len(points)}
	for _, t := range tris {
		for _, e := range [3]edgeKey{
			makeEdge(t[0], t[1]),
			makeEdge(t[1], t[2]),
			makeEdge(t[2], t[0]),
		} {
			if seen[e] {
				continue
			}
			seen[e] = true
			g.Edges = append(g.Edges, Edge{
				A:      e.a,
				B:      e.b,
				Weight: planar.Distance(points[e.a], points[e.b]),
			})
		}
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].A != g.Edges[j].A {
			return g.Edges[i].A < g.Edges[j].A
		}
		return g.Edges[i].B < g.Edges[j].B
	})
	return g, nil
}
