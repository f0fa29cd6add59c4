// Package world runs the dungeon generation pipeline: scatter candidate
// rooms, separate them, pick the principal rooms, connect them and carve the
// result onto a tile grid.
package world

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/sampler"
	"github.com/samdwyer/dungeongen/internal/selection"
	"github.com/samdwyer/dungeongen/internal/separate"
	"github.com/samdwyer/dungeongen/internal/spanning"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/triangulate"
)

// Generator runs the pipeline. The zero value is not usable; call New.
type Generator struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for stage failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTracer overrides the tracer, e.g. telemetry.NoopTracer() in tests.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) {
		if t != nil {
			g.tracer = t
		}
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.Default(),
		tracer: telemetry.Tracer("world"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a map with a sampler seeded from p.Seed.
func Generate(ctx context.Context, p Params) (*Map, error) {
	return New().Generate(ctx, p)
}

// Generate builds a map with a sampler seeded from p.Seed.
func (g *Generator) Generate(ctx context.Context, p Params) (*Map, error) {
	return g.GenerateWith(ctx, p, sampler.New(p.Seed))
}

// GenerateWith builds a map drawing all randomness from s. The sampler must
// not be shared with concurrent calls.
func (g *Generator) GenerateWith(ctx context.Context, p Params, s *sampler.Sampler) (*Map, error) {
	ctx, span := g.tracer.Start(ctx, "dungeon.generate")
	defer span.End()
	startTime := time.Now()

	m, err := g.run(ctx, p, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logFailure(ctx, p, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("dungeon.candidates", p.Candidates),
		attribute.Int("dungeon.principal_rooms", len(m.Principal)),
		attribute.Int("dungeon.corridors", m.Corridors),
		attribute.Int("dungeon.absorbed_rooms", len(m.Absorbed)),
		attribute.Int("dungeon.unrouted_edges", len(m.Unrouted)),
		attribute.Int("dungeon.clipped_rooms", len(m.Clipped)),
		attribute.Int("dungeon.grid_width", m.Grid.Width),
		attribute.Int("dungeon.grid_height", m.Grid.Height),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return m, nil
}

func (g *Generator) run(ctx context.Context, p Params, s *sampler.Sampler) (*Map, error) {
	if err := p.Validate(); err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}

	// Scatter candidate rooms
	rooms := make([]geom.Rect, p.Candidates)
	for i := range rooms {
		rooms[i] = s.Room(p.Radius, p.Rooms.MinWidth, p.Rooms.MinHeight, p.Rooms.Variation, p.Rooms.Expansion)
	}

	// Push overlapping rooms apart
	sepCtx, sepSpan := g.tracer.Start(ctx, "dungeon.separate")
	stats, err := separate.Separate(sepCtx, rooms, separate.Options{Increment: p.Increment, MaxSteps: p.MaxSteps})
	sepSpan.SetAttributes(
		attribute.Int("separate.conflicts", stats.Conflicts),
		attribute.Int("separate.steps", stats.Steps),
		attribute.Int("separate.max_per_room", stats.MaxPerRoom),
	)
	sepSpan.End()
	if err != nil {
		return nil, &StageError{Stage: StageSeparate, Kind: ErrSeparationDidNotConverge, Err: err}
	}

	// Move into grid space and keep the largest rooms
	selection.Normalize(rooms)
	principal, err := selection.Principal(rooms, p.Rooms.Count)
	if err != nil {
		return nil, &StageError{Stage: StageSelect, Kind: ErrInsufficientCandidates, Err: err}
	}

	// Connect principal rooms through a triangulation of their centers
	centers := selection.Centers(rooms, principal)
	points := make([]orb.Point, len(centers))
	for i, c := range centers {
		points[i] = orb.Point{c.X, c.Y}
	}
	graph, err := triangulate.Build(points)
	if err != nil {
		return nil, &StageError{Stage: StageTriangulate, Kind: ErrDegenerateTriangulationInput, Err: err}
	}

	// Reduce to the corridors actually carved
	tree, err := spanning.Prim(graph)
	if err == nil {
		err = tree.Validate(len(principal))
	}
	if err != nil {
		return nil, &StageError{Stage: StageSpan, Kind: ErrNoSpanningTree, Err: err}
	}

	// Carve rooms and corridors
	res, err := raster.Rasterize(rooms, principal, tree.Edges, raster.Options{
		TileSize: p.TileSize,
		Width:    p.GridWidth,
		Height:   p.GridHeight,
		Diagonal: p.Diagonal,
	})
	if err != nil {
		var kind error
		if errors.Is(err, raster.ErrInvalidBlock) || errors.Is(err, raster.ErrGridTooLarge) {
			kind = ErrInvalidParams
		}
		return nil, &StageError{Stage: StageRasterize, Kind: kind, Err: err}
	}

	principalRooms := make([]geom.Rect, len(principal))
	for i, idx := range principal {
		principalRooms[i] = rooms[idx]
	}

	return &Map{
		ID:             mapID(p),
		Seed:           p.Seed,
		Params:         p,
		Grid:           res.Grid,
		PrincipalRooms: principalRooms,
		Principal:      principal,
		Rooms:          rooms,
		Edges:          tree.Edges,
		Corridors:      res.Corridors,
		Unrouted:       res.Unrouted,
		Absorbed:       res.Absorbed,
		Clipped:        res.Clipped,
		Separation:     stats,
	}, nil
}

// logFailure keeps invariant violations apart from bad input.
func (g *Generator) logFailure(ctx context.Context, p Params, err error) {
	attrs := []any{
		slog.Int64("seed", p.Seed),
		slog.Int("candidates", p.Candidates),
		slog.Int("count", p.Rooms.Count),
		slog.Any("error", err),
	}
	var se *StageError
	if errors.As(err, &se) {
		attrs = append(attrs, slog.String("stage", string(se.Stage)))
	}

	switch {
	case IsInvariantViolation(err):
		g.logger.ErrorContext(ctx, "generation invariant violated", attrs...)
	case IsParamError(err):
		g.logger.WarnContext(ctx, "generation rejected parameters", attrs...)
	default:
		g.logger.WarnContext(ctx, "generation failed", attrs...)
	}
}

// mapID derives a stable identifier from the inputs, so identical requests
// produce identical maps down to the ID.
func mapID(p Params) string {
	data, err := json.Marshal(p)
	if err != nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, nil).String()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String()
}
