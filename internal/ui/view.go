package ui

import "github.com/samdwyer/dungeongen/internal/raster"

// Viewport is the visible window onto the map, in tiles.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Pan moves the viewport by (dx, dy) and keeps it inside a map of the given
// size. Maps smaller than the viewport pin it to the origin.
func (v Viewport) Pan(dx, dy, mapWidth, mapHeight int) Viewport {
	v.X = clamp(v.X+dx, 0, max(0, mapWidth-v.Width))
	v.Y = clamp(v.Y+dy, 0, max(0, mapHeight-v.Height))
	return v
}

// Resize changes the viewport size, re-clamping its position.
func (v Viewport) Resize(width, height, mapWidth, mapHeight int) Viewport {
	v.Width, v.Height = width, height
	return v.Pan(0, 0, mapWidth, mapHeight)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// kindLayer labels every cell with the kind of the last block written over
// it. Corridors are written after rooms and so win where they overlap.
func kindLayer(g *raster.Grid) []raster.Kind {
	layer := make([]raster.Kind, g.Width*g.Height)
	for _, b := range g.Blocks {
		for y := b.TL.Y; y <= b.BR.Y; y++ {
			for x := b.TL.X; x <= b.BR.X; x++ {
				if g.InBounds(x, y) {
					layer[x+y*g.Width] = b.Kind
				}
			}
		}
	}
	return layer
}
