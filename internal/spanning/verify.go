package spanning

import "fmt"

// Validate checks that s is a spanning tree over n vertices: exactly n-1
// edges, no cycles, every vertex reachable.
func (s Selection) Validate(n int) error {
	if len(s.Edges) != n-1 {
		return fmt.Errorf("spanning: %d edges for %d vertices", len(s.Edges), n)
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for _, e := range s.Edges {
		if e.Child < 0 || e.Child >= n || e.Parent < 0 || e.Parent >= n {
			return fmt.Errorf("spanning: edge %d->%d out of range", e.Child, e.Parent)
		}
		a, b := find(e.Child), find(e.Parent)
		if a == b {
			return fmt.Errorf("spanning: edge %d->%d closes a cycle", e.Child, e.Parent)
		}
		parent[a] = b
	}
	// n-1 edges without a cycle connect all n vertices.
	return nil
}
