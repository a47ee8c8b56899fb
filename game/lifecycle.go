package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// FeedAll drops amount food for every live animal.
func (g *Game) FeedAll(amount int) {
	g.beginOp()
	defer g.endOp()

	if amount <= 0 {
		return
	}
	for _, ref := range g.liveAnimals() {
		animal := g.animalMap.Get(ref.e)
		g.vitalsMap.Get(ref.e).Feed(amount)
		g.emit(telemetry.NewFedEvent(g.tick, animal.ID, animal.Species, amount))
	}
}

// Digest makes every live animal consume one unit of food, then removes the
// animals that starved.
func (g *Game) Digest() {
	g.beginOp()
	defer g.endOp()

	for _, ref := range g.liveAnimals() {
		g.vitalsMap.Get(ref.e).ConsumeFood()
	}
	g.cleanupDead()
}

// ConsumeFood makes one animal consume one unit of food. It returns false for
// unknown or dead animals. A starved animal is removed immediately.
func (g *Game) ConsumeFood(e ecs.Entity) bool {
	g.beginOp()
	defer g.endOp()

	vitals, ok := g.liveVitals(e)
	if !ok {
		return false
	}
	vitals.ConsumeFood()
	g.cleanupDead()
	return true
}

// AdvanceAge ages one animal by a tick. It returns false for unknown or dead
// animals. An animal reaching the maximum age is removed immediately.
func (g *Game) AdvanceAge(e ecs.Entity) bool {
	g.beginOp()
	defer g.endOp()

	vitals, ok := g.liveVitals(e)
	if !ok {
		return false
	}
	vitals.AdvanceAge(g.cfg.Life.MaxAge)
	g.cleanupDead()
	return true
}

func (g *Game) liveVitals(e ecs.Entity) (*components.Vitals, bool) {
	if !g.valid(e) {
		return nil, false
	}
	vitals := g.vitalsMap.Get(e)
	return vitals, vitals.Alive
}

// cleanupDead removes every animal that is no longer alive.
func (g *Game) cleanupDead() {
	// First pass: collect dead entities (must complete before modifying)
	var toRemove []animalRef
	query := g.animalFilter.Query()
	for query.Next() {
		animal, _, _, _, vitals := query.Get()
		if !vitals.Alive {
			toRemove = append(toRemove, animalRef{e: query.Entity(), id: animal.ID})
		}
	}
	sortRefs(toRemove)

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		animal := *g.animalMap.Get(dead.e)
		pos := *g.posMap.Get(dead.e)
		body := *g.bodyMap.Get(dead.e)
		vitals := *g.vitalsMap.Get(dead.e)

		g.emit(telemetry.NewDeathEvent(g.tick, animal.ID, animal.Species, pos, vitals.Cause))

		var lifespan int32
		if stats := g.lifetimes.Remove(animal.ID); stats != nil {
			lifespan = stats.Lifespan(g.tick)
		}
		msg := "animal_died"
		if vitals.Cause == components.CauseStarvation {
			msg = "animal_starved"
		}
		slog.Info(msg,
			"id", animal.ID,
			"name", animal.Name,
			"species", animal.Species.Code(),
			"age", vitals.Age,
			"lifespan", lifespan,
			"tick", g.tick,
		)

		g.occupancy.Remove(dead.e, systems.RectOf(pos, body))
		g.countAlive(animal.Species, -1)
		g.world.RemoveEntity(dead.e)
	}
}
