package world

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/sampler"
	"github.com/samdwyer/dungeongen/internal/separate"
	"github.com/samdwyer/dungeongen/internal/telemetry"
)

func testGenerator() *Generator {
	return New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTracer(telemetry.NoopTracer()),
	)
}

// scenarioParams is the 20-candidate, 10-room layout used throughout.
func scenarioParams(seed int64) Params {
	p := DefaultParams()
	p.Candidates = 20
	p.Radius = 100
	p.Rooms = RoomConfig{MinWidth: 50, MinHeight: 50, Variation: 50, Expansion: 0, Count: 10}
	p.Increment = 10
	p.Seed = seed
	return p
}

func TestGenerateScenario(t *testing.T) {
	p := scenarioParams(10)
	p.Diagonal = raster.DiagonalSkip

	m, err := testGenerator().Generate(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 10, m.Grid.Count(raster.KindRoom))
	assert.LessOrEqual(t, m.Grid.Count(raster.KindCorridor), 9)
	require.Len(t, m.PrincipalRooms, 10)
	require.Len(t, m.Edges, 9)

	for i := range m.PrincipalRooms {
		for j := i + 1; j < len(m.PrincipalRooms); j++ {
			assert.False(t, m.PrincipalRooms[i].Intersects(m.PrincipalRooms[j]), "principal rooms %d and %d overlap", i, j)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		m, err := testGenerator().Generate(context.Background(), scenarioParams(seed))
		require.NoError(t, err, "seed %d", seed)

		// No overlaps anywhere in the separated set.
		assert.Empty(t, separate.Overlapping(m.Rooms), "seed %d", seed)

		// Normalization puts the layout at the origin.
		minX, minY := m.Rooms[0].Anchor.X, m.Rooms[0].Anchor.Y
		for _, r := range m.Rooms {
			minX = min(minX, r.Anchor.X)
			minY = min(minY, r.Anchor.Y)
		}
		assert.Equal(t, 0.0, minX, "seed %d", seed)
		assert.Equal(t, 0.0, minY, "seed %d", seed)

		// Spanning tree over the principal rooms.
		require.Len(t, m.Edges, m.Params.Rooms.Count-1)

		// Every block is well formed and inside the grid.
		for _, b := range m.Blocks() {
			assert.True(t, b.Valid(), "seed %d block %v", seed, b)
			assert.True(t, m.Grid.InBounds(b.TL.X, b.TL.Y), "seed %d block %v", seed, b)
			assert.True(t, m.Grid.InBounds(b.BR.X, b.BR.Y), "seed %d block %v", seed, b)
		}

		// At most one corridor per spanning edge.
		assert.LessOrEqual(t, m.Corridors, len(m.Edges))
	}
}

func TestGenerateConnectsAllPrincipalRooms(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		p := scenarioParams(seed)
		p.GridWidth, p.GridHeight = 0, 0

		m, err := testGenerator().Generate(context.Background(), p)
		require.NoError(t, err)
		require.Empty(t, m.Unrouted)

		reached := flood(m, m.Grid.Blocks[0].Center())
		for i, b := range m.Blocks() {
			if b.Kind == raster.KindRoom {
				assert.True(t, reached[b.Center()], "seed %d: principal block %d unreachable", seed, i)
			}
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	// Generate two maps with the same seed
	m1, err := testGenerator().Generate(context.Background(), scenarioParams(12345))
	require.NoError(t, err)
	m2, err := testGenerator().Generate(context.Background(), scenarioParams(12345))
	require.NoError(t, err)

	b1, err := json.Marshal(m1)
	require.NoError(t, err)
	b2, err := json.Marshal(m2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
	assert.Equal(t, m1.ID, m2.ID)
}

func TestGenerateDifferentSeeds(t *testing.T) {
	m1, err := testGenerator().Generate(context.Background(), scenarioParams(12345))
	require.NoError(t, err)
	m2, err := testGenerator().Generate(context.Background(), scenarioParams(54321))
	require.NoError(t, err)

	assert.NotEqual(t, m1.ID, m2.ID)
	assert.NotEqual(t, m1.Rooms, m2.Rooms)
}

func TestGenerateInsufficientCandidates(t *testing.T) {
	p := scenarioParams(1)
	p.Candidates = 5

	_, err := testGenerator().Generate(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.True(t, IsParamError(err))

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageValidate, se.Stage)
}

func TestGenerateParamErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"too few principal rooms", func(p *Params) { p.Rooms.Count = 2 }, ErrDegenerateTriangulationInput},
		{"zero increment", func(p *Params) { p.Increment = 0 }, ErrInvalidParams},
		{"zero radius", func(p *Params) { p.Radius = 0 }, ErrInvalidParams},
		{"negative variation", func(p *Params) { p.Rooms.Variation = -1 }, ErrInvalidParams},
		{"rooms smaller than a tile", func(p *Params) { p.TileSize = 60 }, ErrInvalidParams},
		{"negative grid", func(p *Params) { p.GridWidth = -1 }, ErrInvalidParams},
		{"oversized fixed grid", func(p *Params) { p.GridWidth, p.GridHeight = 100000, 100000 }, ErrInvalidParams},
		{"unknown diagonal policy", func(p *Params) { p.Diagonal = raster.DiagonalPolicy(7) }, ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioParams(1)
			tt.mutate(&p)
			_, err := testGenerator().Generate(context.Background(), p)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, IsInvariantViolation(err))
		})
	}
}

func TestGenerateFittedGridTooLarge(t *testing.T) {
	p := scenarioParams(1)
	p.Radius = 1e9
	p.GridWidth, p.GridHeight = 0, 0

	_, err := testGenerator().Generate(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.ErrorIs(t, err, raster.ErrGridTooLarge)
	assert.True(t, IsParamError(err))

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageRasterize, se.Stage)
}

func TestGenerateSmallFixedGridReportsClippedRooms(t *testing.T) {
	clipped := 0
	for seed := int64(1); seed <= 8; seed++ {
		p := scenarioParams(seed)
		p.GridWidth, p.GridHeight = 4, 4

		m, err := testGenerator().Generate(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, len(m.Principal), m.Grid.Count(raster.KindRoom)+len(m.Clipped), "seed %d", seed)
		assert.Subset(t, m.Principal, m.Clipped)
		clipped += len(m.Clipped)
	}
	assert.Positive(t, clipped)
}

func TestGenerateThreeRoomLayouts(t *testing.T) {
	gen := testGenerator()
	for seed := int64(1); seed <= 300; seed++ {
		p := scenarioParams(seed)
		p.Candidates = 5
		p.Rooms.Count = 3

		m, err := gen.Generate(context.Background(), p)
		require.NoError(t, err, "seed %d", seed)
		assert.Len(t, m.Edges, 2, "seed %d", seed)
	}
}

func TestGenerateSeparationBudget(t *testing.T) {
	p := scenarioParams(3)
	p.Candidates = 40
	p.Radius = 10
	p.MaxSteps = 1

	_, err := testGenerator().Generate(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSeparationDidNotConverge)
	assert.ErrorIs(t, err, separate.ErrDidNotConverge)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageSeparate, se.Stage)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testGenerator().Generate(ctx, scenarioParams(1))
	assert.ErrorIs(t, err, ErrSeparationDidNotConverge)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWithReferenceSampler(t *testing.T) {
	p := DefaultParams()
	s := sampler.FromSource(sampler.Quantized(sampler.NewParkMiller(10), 100))

	m, err := testGenerator().GenerateWith(context.Background(), p, s)
	require.NoError(t, err)
	assert.Len(t, m.Rooms, p.Candidates)
	assert.Len(t, m.Principal, p.Rooms.Count)
}

func TestPrincipalRoomsAreLargest(t *testing.T) {
	m, err := testGenerator().Generate(context.Background(), scenarioParams(4))
	require.NoError(t, err)

	smallest := m.PrincipalRooms[len(m.PrincipalRooms)-1].Area()
	chosen := make(map[int]bool)
	for _, idx := range m.Principal {
		chosen[idx] = true
	}
	for i, r := range m.Rooms {
		if !chosen[i] {
			assert.LessOrEqual(t, r.Area(), smallest)
		}
	}
}

func TestMapQueries(t *testing.T) {
	m, err := testGenerator().Generate(context.Background(), scenarioParams(6))
	require.NoError(t, err)

	first := m.Blocks()[0]
	c := first.Center()
	assert.True(t, m.IsPassable(c.X, c.Y))
	assert.Equal(t, 0, m.RoomIndexAt(c.X, c.Y))
	assert.Equal(t, -1, m.RoomIndexAt(-5, -5))
	assert.False(t, m.IsPassable(-1, 0))

	assert.Equal(t, m.Grid.Width, m.Width())
	assert.Equal(t, m.Grid.Height, m.Height())
	assert.Len(t, m.String(), (m.Width()+1)*m.Height())
}

func TestStageErrorMessage(t *testing.T) {
	err := &StageError{Stage: StageSpan, Kind: ErrNoSpanningTree, Err: errors.New("vertex 3 unreachable")}
	assert.Equal(t, "world: span stage: vertex 3 unreachable", err.Error())
	assert.True(t, IsInvariantViolation(err))
	assert.False(t, IsParamError(err))
}

func TestRoomConfigJSON(t *testing.T) {
	var cfg RoomConfig
	require.NoError(t, json.Unmarshal([]byte(`{"minWidth":30,"minHeight":30,"variation":50,"expansion":10,"count":5}`), &cfg))
	assert.Equal(t, RoomConfig{MinWidth: 30, MinHeight: 30, Variation: 50, Expansion: 10, Count: 5}, cfg)
	assert.Equal(t, 40.0, cfg.smallestSide())
}

func flood(m *Map, start raster.Cell) map[raster.Cell]bool {
	seen := map[raster.Cell]bool{}
	stack := []raster.Cell{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[c] || !m.IsPassable(c.X, c.Y) {
			continue
		}
		seen[c] = true
		stack = append(stack,
			raster.Cell{X: c.X + 1, Y: c.Y}, raster.Cell{X: c.X - 1, Y: c.Y},
			raster.Cell{X: c.X, Y: c.Y + 1}, raster.Cell{X: c.X, Y: c.Y - 1})
	}
	return seen
}
