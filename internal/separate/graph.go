// Package separate pushes overlapping candidate rooms apart until no two
// rooms intersect.
//
// Rooms are removed from an intersection graph greedily, most conflicted
// first, and then re-inserted in reverse removal order. Each re-inserted room
// is stepped away from the centroid of the rooms placed so far until it is
// clear of all of them.
package separate

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/samdwyer/dungeongen/internal/geom"
)

const (
	rtreeMinChildren = 4
	rtreeMaxChildren = 16
)

// Graph is an undirected intersection graph over room indices.
type Graph struct {
	adj [][]int
}

// Len returns the number of vertices.
func (g Graph) Len() int {
	return len(g.adj)
}

// Neighbors returns the rooms intersecting room i, in ascending order.
func (g Graph) Neighbors(i int) []int {
	return g.adj[i]
}

// Degree returns the number of rooms intersecting room i.
func (g Graph) Degree(i int) int {
	return len(g.adj[i])
}

// EdgeCount returns the number of intersecting pairs.
func (g Graph) EdgeCount() int {
	n := 0
	for _, nb := range g.adj {
		n += len(nb)
	}
	return n / 2
}

// spatialRoom adapts a room to the rtreego.Spatial interface.
type spatialRoom struct {
	index int
	rect  rtreego.Rect
}

func (s *spatialRoom) Bounds() rtreego.Rect {
	return s.rect
}

func boundsOf(r geom.Rect) (rtreego.Rect, error) {
	return rtreego.NewRect(rtreego.Point{r.Anchor.X, r.Anchor.Y}, []float64{r.Width, r.Height})
}

// BuildGraph maps the intersection relationships between rooms.
// Candidate pairs come from an R-tree query; each pair is then confirmed
// with geom.Rect.Intersects, so rooms that only touch are never connected.
func BuildGraph(rooms []geom.Rect) Graph {
	g := Graph{adj: make([][]int, len(rooms))}

	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	items := make([]*spatialRoom, len(rooms))
	indexed := true
	for i, r := range rooms {
		bb, err := boundsOf(r)
		if err != nil {
			// Zero-sized rooms cannot be indexed; fall back to a full scan.
			indexed = false
			break
		}
		items[i] = &spatialRoom{index: i, rect: bb}
		tree.Insert(items[i])
	}

	for i := range rooms {
		if indexed {
			for _, hit := range tree.SearchIntersect(items[i].rect) {
				j := hit.(*spatialRoom).index
				if j > i && rooms[i].Intersects(rooms[j]) {
					g.link(i, j)
				}
			}
			continue
		}
		for j := i + 1; j < len(rooms); j++ {
			if rooms[i].Intersects(rooms[j]) {
				g.link(i, j)
			}
		}
	}

	for i := range g.adj {
		sort.Ints(g.adj[i])
	}
	return g
}

func (g *Graph) link(i, j int) {
	g.adj[i] = append(g.adj[i], j)
	g.adj[j] = append(g.adj[j], i)
}

// Overlapping returns every intersecting pair (i < j), in order.
func Overlapping(rooms []geom.Rect) [][2]int {
	var pairs [][2]int
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			if rooms[i].Intersects(rooms[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
