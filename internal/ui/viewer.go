package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/world"
)

// panStep is how many tiles Shift+arrow moves the view.
const panStep = 10

// Viewer is an interactive map preview.
type Viewer struct {
	screen   *Screen
	renderer *Renderer
	m        *world.Map
	view     Viewport
	running  bool
}

// NewViewer opens the terminal and prepares to show m.
func NewViewer(m *world.Map, palette Palette) (*Viewer, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return newViewer(screen, m, palette), nil
}

func newViewer(screen *Screen, m *world.Map, palette Palette) *Viewer {
	renderer := NewRenderer(screen, palette)
	renderer.SetMap(m)
	v := &Viewer{
		screen:   screen,
		renderer: renderer,
		m:        m,
		running:  true,
	}
	v.resize()
	return v
}

// Run shows the map until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("ui").Start(ctx, "ui.view")
	span.SetAttributes(
		attribute.String("dungeon.id", v.m.ID),
		attribute.Int("dungeon.grid_width", v.m.Width()),
		attribute.Int("dungeon.grid_height", v.m.Height()),
	)
	defer span.End()
	defer v.screen.Close()

	for v.running && ctx.Err() == nil {
		v.renderer.Render(v.view)
		v.handleEvent(v.screen.PollEvent())
	}
	return nil
}

func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ev)
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	case nil:
		// Screen finalized.
		v.running = false
	}
}

func (v *Viewer) handleKeyEvent(ev *tcell.EventKey) {
	step := 1
	if ev.Modifiers()&tcell.ModShift != 0 {
		step = panStep
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyUp:
		v.pan(0, -step)
	case tcell.KeyDown:
		v.pan(0, step)
	case tcell.KeyLeft:
		v.pan(-step, 0)
	case tcell.KeyRight:
		v.pan(step, 0)
	case tcell.KeyHome:
		v.view = v.view.Pan(-v.view.X, -v.view.Y, v.m.Width(), v.m.Height())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		}
	}
}

func (v *Viewer) pan(dx, dy int) {
	v.view = v.view.Pan(dx, dy, v.m.Width(), v.m.Height())
}

// resize fits the viewport to the terminal, leaving one row for the status
// line.
func (v *Viewer) resize() {
	w, h := v.screen.Size()
	v.view = v.view.Resize(w, max(0, h-1), v.m.Width(), v.m.Height())
}
