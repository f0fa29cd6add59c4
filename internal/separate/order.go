package separate

import (
	"github.com/zyedidia/generic/heap"
)

type degreeEntry struct {
	degree int
	index  int
}

// RemovalOrder returns the order in which rooms are peeled off the
// intersection graph: always the present room with the highest remaining
// degree, higher index winning ties. Removing a room decrements the degree of
// its present neighbors. Every room appears exactly once; rooms left with no
// conflicts come last.
func RemovalOrder(g Graph) []int {
	n := g.Len()
	degree := make([]int, n)
	removed := make([]bool, n)

	pq := heap.New(func(a, b degreeEntry) bool {
		if a.degree != b.degree {
			return a.degree > b.degree
		}
		return a.index > b.index
	})
	for i := 0; i < n; i++ {
		degree[i] = g.Degree(i)
		pq.Push(degreeEntry{degree: degree[i], index: i})
	}

	order := make([]int, 0, n)
	for len(order) < n {
		top, ok := pq.Pop()
		if !ok {
			break
		}
		// Stale entries are left in the heap when a degree drops.
		if removed[top.index] || top.degree != degree[top.index] {
			continue
		}
		removed[top.index] = true
		order = append(order, top.index)

		for _, nb := range g.Neighbors(top.index) {
			if removed[nb] {
				continue
			}
			degree[nb]--
			pq.Push(degreeEntry{degree: degree[nb], index: nb})
		}
	}
	return order
}
