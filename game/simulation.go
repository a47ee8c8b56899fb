package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Tick advances the tank by one step: every live animal ages, overlapping
// crabs are pulled apart, and dead animals are removed. Food is not consumed;
// see Digest.
func (g *Game) Tick() {
	g.beginOp()
	defer g.endOp()

	g.perf.Begin()
	g.tick++

	// 1. Age everyone
	g.perf.Enter(telemetry.PhaseAging)
	maxAge := g.cfg.Life.MaxAge
	for _, ref := range g.liveAnimals() {
		g.vitalsMap.Get(ref.e).AdvanceAge(maxAge)
	}

	// 2. Rebuild the occupancy index from the world
	g.perf.Enter(telemetry.PhaseOccupancy)
	g.rebuildOccupancy()

	// 3. Crab collisions
	g.perf.Enter(telemetry.PhaseRelocation)
	g.resolveCrabCollisions()

	// 4. Cleanup dead animals
	g.perf.Enter(telemetry.PhaseCleanup)
	g.cleanupDead()
	g.perf.End()

	g.flushTelemetry()
}

// RunTicks runs n ticks. If observe is non-nil it is called after each tick
// with the tick number.
func (g *Game) RunTicks(n int, observe func(tick int32)) {
	for i := 0; i < n; i++ {
		g.Tick()
		if observe != nil {
			observe(g.tick)
		}
	}
}

// rebuildOccupancy indexes every live animal.
func (g *Game) rebuildOccupancy() {
	var occupants []systems.Occupant
	query := g.animalFilter.Query()
	for query.Next() {
		_, pos, body, _, vitals := query.Get()
		if vitals.Alive {
			occupants = append(occupants, systems.Occupant{E: query.Entity(), Rect: systems.RectOf(*pos, *body)})
		}
	}
	g.occupancy.Reset(occupants)
}

// crabOccupants returns the live crabs in ascending ID order.
func (g *Game) crabOccupants() []systems.Occupant {
	var crabs []systems.Occupant
	for _, ref := range g.liveAnimals() {
		if !g.animalMap.Get(ref.e).Species.IsCrab() {
			continue
		}
		crabs = append(crabs, systems.Occupant{
			E:    ref.e,
			Rect: systems.RectOf(*g.posMap.Get(ref.e), *g.bodyMap.Get(ref.e)),
		})
	}
	return crabs
}

// resolveCrabCollisions relocates both crabs of every overlapping pair.
// A crab that cannot be relocated stays put until the next tick.
func (g *Game) resolveCrabCollisions() {
	pairs := systems.FindOverlaps(g.crabOccupants())
	for _, p := range pairs {
		a := g.occupantOf(p.A.E)
		b := g.occupantOf(p.B.E)
		// An earlier relocation may already have separated this pair
		if !a.Rect.Overlaps(b.Rect) {
			continue
		}

		animalA := g.animalMap.Get(a.E)
		animalB := g.animalMap.Get(b.E)
		g.emit(telemetry.NewCollisionEvent(g.tick, animalA.ID, animalB.ID, animalA.Species))

		g.relocate(a)
		g.relocate(g.occupantOf(b.E))
	}
}

func (g *Game) occupantOf(e ecs.Entity) systems.Occupant {
	return systems.Occupant{E: e, Rect: systems.RectOf(*g.posMap.Get(e), *g.bodyMap.Get(e))}
}

// relocate moves one crab to a random free spot below the waterline.
func (g *Game) relocate(o systems.Occupant) {
	animal := g.animalMap.Get(o.E)
	res := g.relocator.Relocate(o)
	g.perf.Relocated(res.Attempts, res.OK)
	if res.OK {
		pos := g.posMap.Get(o.E)
		pos.X, pos.Y = res.To.X, res.To.Y
	} else {
		slog.Warn("relocation_failed",
			"id", animal.ID,
			"name", animal.Name,
			"attempts", res.Attempts,
			"tick", g.tick,
		)
	}
	g.emit(telemetry.NewRelocationEvent(g.tick, animal.ID, animal.Species, res.To.X, res.To.Y, res.Attempts, res.OK))
}
