package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/bulletarena/internal/telemetry"
)

// Generator builds arenas: rooms, MST connectivity and carved corridors.
type Generator struct {
	params   Params
	seed     int64
	rng      Rand
	observer Observer
}

// Option configures a Generator.
type Option func(*Generator)

// WithObserver registers an observer for room and corridor progress.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithRand replaces the seeded source created by NewGenerator.
func WithRand(rng Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// NewGenerator creates a generator whose room placement is driven by a single
// source seeded with seed. A seed of 0 picks a time-based seed.
func NewGenerator(params Params, seed int64, opts ...Option) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		params:   params,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns the seed driving room placement.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate places rooms and builds the finished level. Any failure is fatal
// for the level: no partially connected layout is returned.
func (g *Generator) Generate(ctx context.Context) (*Level, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "arena.generate")
	defer span.End()

	startTime := time.Now()

	span.SetAttributes(
		attribute.Int64("arena.seed", g.seed),
		attribute.Int("arena.width", g.params.Width),
		attribute.Int("arena.height", g.params.Height),
		attribute.Int("arena.room_count_requested", g.params.RoomCount),
	)

	if err := g.params.Validate(); err != nil {
		return nil, recordError(span, err)
	}

	rooms, err := g.placeRooms(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}

	level, err := g.build(ctx, rooms)
	if err != nil {
		return nil, recordError(span, err)
	}

	span.SetAttributes(
		attribute.String("arena.level_id", level.ID),
		attribute.Int("arena.room_count", len(level.Rooms)),
		attribute.Int("arena.edge_count", len(level.Edges)),
		attribute.Int("arena.corridor_cells", level.Grid.Count(CellCorridor)),
		attribute.Int64("arena.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return level, nil
}

// Build marks the given rooms on a fresh width x height grid, connects them
// with an MST and carves a corridor per edge. Room IDs must equal their index.
func Build(ctx context.Context, width, height int, rooms []Room, widen bool, opts ...Option) (*Level, error) {
	params := Params{
		Width:                width,
		Height:               height,
		RoomCount:            len(rooms),
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
		Widen:                widen,
	}
	g := &Generator{params: params, observer: nopObserver{}}
	for _, opt := range opts {
		opt(g)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidParams, width, height)
	}
	for i, room := range rooms {
		if room.ID != i {
			return nil, fmt.Errorf("%w: room at index %d has id %d", ErrInvalidParams, i, room.ID)
		}
	}
	return g.build(ctx, rooms)
}

func (g *Generator) placeRooms(ctx context.Context) ([]Room, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "arena.place_rooms")
	defer span.End()

	p := g.params
	rooms, err := PlaceRooms(g.rng, p.RoomCount, p.MinRoomSize, p.MaxRoomSize, p.Width, p.Height, p.MaxPlacementAttempts)
	span.SetAttributes(attribute.Int("arena.rooms_placed", len(rooms)))
	if err != nil {
		return nil, recordError(span, err)
	}
	for _, room := range rooms {
		g.observer.RoomPlaced(room)
	}
	return rooms, nil
}

// build runs the deterministic part of generation in strict order: mark
// rooms, compute the MST, carve one corridor per edge, validate.
func (g *Generator) build(ctx context.Context, rooms []Room) (*Level, error) {
	tracer := telemetry.Tracer("world")
	p := g.params

	grid := NewGrid(p.Width, p.Height)

	// Rooms go down first so the carver can skip them.
	_, markSpan := tracer.Start(ctx, "arena.mark_rooms")
	for _, room := range rooms {
		markRoom(grid, room)
	}
	markSpan.SetAttributes(attribute.Int("arena.room_cells", grid.Count(CellRoom)))
	markSpan.End()

	_, mstSpan := tracer.Start(ctx, "arena.build_mst")
	edges := BuildMST(rooms)
	mstSpan.SetAttributes(
		attribute.Int("arena.edge_count", len(edges)),
		attribute.Float64("arena.mst_weight", TotalWeight(edges)),
	)
	mstSpan.End()

	carveCtx, carveSpan := tracer.Start(ctx, "arena.carve_corridors")
	for _, edge := range edges {
		if err := carveCtx.Err(); err != nil {
			carveSpan.End()
			return nil, err
		}
		path := CarvePath(grid, rooms[edge.A].Center, rooms[edge.B].Center, p.Widen)
		g.observer.CorridorCarved(edge, path)
	}
	carveSpan.SetAttributes(attribute.Int("arena.corridor_cells", grid.Count(CellCorridor)))
	carveSpan.End()

	level := &Level{
		ID:        uuid.NewString(),
		Seed:      g.seed,
		Params:    p,
		Grid:      grid,
		Rooms:     rooms,
		Edges:     edges,
		CreatedAt: time.Now().UTC(),
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// markRoom types every in-bounds cell inside the room's bounds as room.
func markRoom(grid *Grid, room Room) {
	for y := room.YMin(); y < room.YMax(); y++ {
		for x := room.XMin(); x < room.XMax(); x++ {
			grid.Set(x, y, CellRoom)
		}
	}
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
