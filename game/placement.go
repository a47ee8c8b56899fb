package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Placement errors. A failed AddAnimal leaves the tank unchanged.
var (
	ErrUnknownSpecies = components.ErrUnknownSpecies
	ErrInvalidAge     = errors.New("invalid age")
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrAboveWaterline = errors.New("fish above waterline")
	ErrOccupied       = errors.New("position occupied")
)

// AnimalSpec describes an animal to place.
type AnimalSpec struct {
	Name    string
	Age     int
	X, Y    int
	FacingH components.Horizontal
	FacingV components.Vertical
	Code    string // Species code: fi, sc, mo, cr, oc, sh
}

// SpecFromConfig converts a population entry into an AnimalSpec.
func SpecFromConfig(ac config.AnimalConfig) (AnimalSpec, error) {
	h, err := components.ParseHorizontal(ac.FacingH)
	if err != nil {
		return AnimalSpec{}, err
	}
	v, err := components.ParseVertical(ac.FacingV)
	if err != nil {
		return AnimalSpec{}, err
	}
	return AnimalSpec{
		Name:    ac.Name,
		Age:     ac.Age,
		X:       ac.X,
		Y:       ac.Y,
		FacingH: h,
		FacingV: v,
		Code:    ac.Species,
	}, nil
}

// AddAnimal validates and places a new animal with the configured starting food.
// An animal placed at the maximum age dies of old age straight away.
func (g *Game) AddAnimal(spec AnimalSpec) (ecs.Entity, error) {
	g.beginOp()
	defer g.endOp()

	species, err := components.ParseSpecies(spec.Code)
	if err != nil {
		return ecs.Entity{}, err
	}
	if spec.Age < 0 || spec.Age > g.cfg.Life.MaxAge {
		return ecs.Entity{}, fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidAge, spec.Age, g.cfg.Life.MaxAge)
	}

	pos := components.Position{X: spec.X, Y: spec.Y}
	body := components.BodyOf(species)
	rect := systems.RectOf(pos, body)

	if !g.occupancy.InBounds(rect) {
		return ecs.Entity{}, fmt.Errorf("%w: %s %dx%d at (%d,%d) in %dx%d tank",
			ErrOutOfBounds, species, body.Width, body.Height, pos.X, pos.Y, g.Width(), g.Height())
	}
	if species.IsFish() && pos.Y < g.Waterline() {
		return ecs.Entity{}, fmt.Errorf("%w: row %d above waterline %d", ErrAboveWaterline, pos.Y, g.Waterline())
	}
	if blockers := g.occupancy.Blockers(nil, rect, ecs.Entity{}); len(blockers) > 0 {
		other := g.animalMap.Get(blockers[0].E)
		return ecs.Entity{}, fmt.Errorf("%w: overlaps %q (id %d)", ErrOccupied, other.Name, other.ID)
	}

	animal := components.Animal{ID: g.nextID, Name: spec.Name, Species: species}
	g.nextID++
	facing := components.Facing{H: spec.FacingH, V: spec.FacingV}
	vitals := components.NewVitals(spec.Age, g.cfg.Life.StartingFood)

	entity := g.animalMapper.NewEntity(&animal, &pos, &body, &facing, &vitals)
	g.occupancy.Place(entity, rect)
	g.lifetimes.Register(animal.ID, g.tick)
	g.countAlive(species, 1)

	g.emit(telemetry.NewAddedEvent(g.tick, animal.ID, species, pos))
	slog.Debug("animal_added", "id", animal.ID, "name", animal.Name, "species", species.Code(), "x", pos.X, "y", pos.Y)

	if g.vitalsMap.Get(entity).CheckAge(g.cfg.Life.MaxAge) {
		g.cleanupDead()
	}

	return entity, nil
}

// countAlive adjusts the per-category population counters.
func (g *Game) countAlive(s components.Species, delta int) {
	if s.IsCrab() {
		g.crabs += delta
	} else {
		g.fish += delta
	}
}
