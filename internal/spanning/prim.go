// Package spanning reduces the connectivity graph to the corridors that are
// actually carved: a minimum spanning tree over the principal rooms.
package spanning

import (
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/dungeongen/internal/triangulate"
)

// ErrNoSpanningTree indicates a disconnected connectivity graph.
var ErrNoSpanningTree = errors.New("spanning: graph is disconnected")

// Edge links a room to the room it was reached from.
type Edge struct {
	Child  int     `json:"child"`
	Parent int     `json:"parent"`
	Weight float64 `json:"weight"`
}

// Selection is a spanning tree: one edge per non-root vertex, in the order
// vertices joined the tree.
type Selection struct {
	Root  int    `json:"root"`
	Edges []Edge `json:"edges"`
}

// Weight returns the total edge weight.
func (s Selection) Weight() float64 {
	var w float64
	for _, e := range s.Edges {
		w += e.Weight
	}
	return w
}

// Prim computes a minimum spanning tree rooted at vertex 0 using a dense
// adjacency matrix. Ties between candidate vertices go to the lowest index.
//
// Complexity: O(N^2) time and memory, which suits the small principal room
// counts the generator works with.
func Prim(g triangulate.Graph) (Selection, error) {
	n := g.N
	sel := Selection{Root: 0}
	if n <= 0 {
		return sel, fmt.Errorf("%w: no vertices", ErrNoSpanningTree)
	}

	inf := math.Inf(1)
	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
		for j := range adj[i] {
			adj[i][j] = inf
		}
	}
	for _, e := range g.Edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return sel, fmt.Errorf("spanning: edge %d-%d out of range for %d vertices", e.A, e.B, n)
		}
		adj[e.A][e.B] = e.Weight
		adj[e.B][e.A] = e.Weight
	}

	selected := make([]bool, n)
	minWeight := make([]float64, n)
	from := make([]int, n)
	for i := range minWeight {
		minWeight[i] = inf
		from[i] = -1
	}
	minWeight[0] = 0

	sel.Edges = make([]Edge, 0, n-1)
	for range n {
		v := -1
		for j := 0; j < n; j++ {
			if selected[j] {
				continue
			}
			if v == -1 || minWeight[j] < minWeight[v] {
				v = j
			}
		}
		if math.IsInf(minWeight[v], 1) {
			return Selection{}, fmt.Errorf("%w: vertex %d unreachable", ErrNoSpanningTree, v)
		}

		selected[v] = true
		if from[v] != -1 {
			sel.Edges = append(sel.Edges, Edge{Child: v, Parent: from[v], Weight: minWeight[v]})
		}

		for to := 0; to < n; to++ {
			if !selected[to] && adj[v][to] < minWeight[to] {
				minWeight[to] = adj[v][to]
				from[to] = v
			}
		}
	}
	return sel, nil
}
