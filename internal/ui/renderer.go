package ui

import (
	"fmt"

	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/world"
)

// Renderer handles drawing a map to the screen.
type Renderer struct {
	screen  *Screen
	palette Palette

	m     *world.Map
	kinds []raster.Kind
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// SetMap replaces the map being drawn.
func (r *Renderer) SetMap(m *world.Map) {
	r.m = m
	r.kinds = kindLayer(m.Grid)
}

// Render draws the visible part of the map plus a status line below it.
func (r *Renderer) Render(view Viewport) {
	r.screen.Clear()

	g := r.m.Grid
	for sy := 0; sy < view.Height; sy++ {
		for sx := 0; sx < view.Width; sx++ {
			x, y := view.X+sx, view.Y+sy
			if !g.InBounds(x, y) {
				continue
			}
			style := r.palette.Style(r.kinds[x+y*g.Width])
			r.screen.SetContent(sx, sy, g.At(x, y).Rune(), style)
		}
	}

	r.RenderMessage(statusLine(r.m, view), view.Height)
	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, r.palette.Status)
}

func statusLine(m *world.Map, view Viewport) string {
	return fmt.Sprintf("seed %d  %dx%d  rooms %d  corridors %d  absorbed %d  view %d,%d  [arrows] pan  [q] quit",
		m.Seed, m.Width(), m.Height(), len(m.Principal), m.Corridors, len(m.Absorbed), view.X, view.Y)
}
