package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Options configures a Game beyond what the config file holds.
type Options struct {
	Seed      int64  // RNG seed for collision relocation
	LogStats  bool   // Log window stats and bookmarks via slog
	OutputDir string // Directory for CSV output (empty = disabled)

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game owns the aquarium: the ECS world holding every animal plus the
// occupancy index and telemetry. It is not safe for concurrent use.
type Game struct {
	cfg  *config.Config
	opts Options

	world *ecs.World
	rng   *rand.Rand

	// Entity mapper and filter over the five animal components
	animalMapper *ecs.Map5[
		components.Animal,
		components.Position,
		components.Body,
		components.Facing,
		components.Vitals,
	]
	animalFilter *ecs.Filter5[
		components.Animal,
		components.Position,
		components.Body,
		components.Facing,
		components.Vitals,
	]

	// Individual component mappers for lookups
	animalMap *ecs.Map[components.Animal]
	posMap    *ecs.Map[components.Position]
	bodyMap   *ecs.Map[components.Body]
	facingMap *ecs.Map[components.Facing]
	vitalsMap *ecs.Map[components.Vitals]

	occupancy *systems.OccupancyChecker
	relocator *systems.Relocator

	// Telemetry
	events    []telemetry.Event
	collector *telemetry.Collector
	perf      *telemetry.TickProfiler
	bookmarks *telemetry.BookmarkDetector
	lifetimes *telemetry.LifetimeTracker
	output    *telemetry.OutputManager

	// State
	tick   int32
	nextID uint32
	fish   int
	crabs  int
}

// New creates an empty aquarium. The config is validated first.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	occupancy := systems.NewOccupancyChecker(cfg.Tank.Width, cfg.Tank.Height)

	g := &Game{
		cfg:   cfg,
		opts:  opts,
		world: world,
		rng:   rng,
		animalMapper: ecs.NewMap5[
			components.Animal,
			components.Position,
			components.Body,
			components.Facing,
			components.Vitals,
		](world),
		animalFilter: ecs.NewFilter5[
			components.Animal,
			components.Position,
			components.Body,
			components.Facing,
			components.Vitals,
		](world),
		animalMap: ecs.NewMap[components.Animal](world),
		posMap:    ecs.NewMap[components.Position](world),
		bodyMap:   ecs.NewMap[components.Body](world),
		facingMap: ecs.NewMap[components.Facing](world),
		vitalsMap: ecs.NewMap[components.Vitals](world),
		occupancy: occupancy,
		relocator: &systems.Relocator{
			Checker:     occupancy,
			Rng:         rng,
			MinY:        cfg.Tank.Waterline + 1,
			MaxAttempts: cfg.Collision.MaxAttempts,
		},
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewTickProfiler(),
		bookmarks: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.CollisionStormFailures),
		lifetimes: telemetry.NewLifetimeTracker(),
		output:    output,
		nextID:    1,
	}

	return g, nil
}

// SpawnPopulation adds the configured starting animals. Animals that cannot
// be placed are logged and skipped; the returned error joins every failure.
func (g *Game) SpawnPopulation() error {
	var errs []error
	for _, ac := range g.cfg.Population {
		spec, err := SpecFromConfig(ac)
		if err == nil {
			_, err = g.AddAnimal(spec)
		}
		if err != nil {
			slog.Warn("spawn_skipped", "name", ac.Name, "species", ac.Species, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", ac.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Width returns the tank width in cells.
func (g *Game) Width() int { return g.cfg.Tank.Width }

// Height returns the tank height in cells.
func (g *Game) Height() int { return g.cfg.Tank.Height }

// Waterline returns the lowest row fish may not rise above.
func (g *Game) Waterline() int { return g.cfg.Tank.Waterline }

// CurrentTick returns the number of completed ticks.
func (g *Game) CurrentTick() int32 { return g.tick }

// Count returns the number of live animals.
func (g *Game) Count() int { return g.fish + g.crabs }

// Population returns the live fish and crab counts.
func (g *Game) Population() (fish, crabs int) { return g.fish, g.crabs }

// Events returns the events emitted by the most recent operation.
// The slice is only valid until the next operation.
func (g *Game) Events() []telemetry.Event { return g.events }

// Perf returns the tick timing of the current stats window.
func (g *Game) Perf() telemetry.TickProfile { return g.perf.Current() }

// animalRef pairs an entity with its stable animal ID.
type animalRef struct {
	e  ecs.Entity
	id uint32
}

// liveAnimals returns every live animal in ascending ID order.
func (g *Game) liveAnimals() []animalRef {
	var refs []animalRef
	query := g.animalFilter.Query()
	for query.Next() {
		animal, _, _, _, vitals := query.Get()
		if vitals.Alive {
			refs = append(refs, animalRef{e: query.Entity(), id: animal.ID})
		}
	}
	sortRefs(refs)
	return refs
}

func sortRefs(refs []animalRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].id < refs[j].id })
}

// valid reports whether e is a live entity carrying the animal components.
func (g *Game) valid(e ecs.Entity) bool {
	return !e.IsZero() && g.world.Alive(e) && g.animalMap.Has(e)
}

// beginOp clears the per-operation event log.
func (g *Game) beginOp() {
	g.events = g.events[:0]
}

// endOp writes the operation's events to events.csv.
func (g *Game) endOp() {
	if err := g.output.WriteEvents(g.events); err != nil {
		slog.Error("failed to write events", "error", err)
	}
}

// emit appends an event to the operation log and feeds the collectors.
func (g *Game) emit(ev telemetry.Event) {
	g.events = append(g.events, ev)
	g.collector.Record(ev)
	g.lifetimes.Observe(ev)
}
