package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/renderer"
)

// AnimalView is a read-only copy of one animal's state.
type AnimalView struct {
	Entity  ecs.Entity
	ID      uint32
	Name    string
	Species components.Species
	Pos     components.Position
	Body    components.Body
	Facing  components.Facing
	Age     int
	Food    int
	Alive   bool
}

// Lookup returns the state of one animal. ok is false for removed entities.
func (g *Game) Lookup(e ecs.Entity) (AnimalView, bool) {
	if !g.valid(e) {
		return AnimalView{}, false
	}
	return g.view(e), true
}

// Animals returns every live animal in ascending ID order.
func (g *Game) Animals() []AnimalView {
	refs := g.liveAnimals()
	views := make([]AnimalView, len(refs))
	for i, ref := range refs {
		views[i] = g.view(ref.e)
	}
	return views
}

func (g *Game) view(e ecs.Entity) AnimalView {
	animal := g.animalMap.Get(e)
	vitals := g.vitalsMap.Get(e)
	return AnimalView{
		Entity:  e,
		ID:      animal.ID,
		Name:    animal.Name,
		Species: animal.Species,
		Pos:     *g.posMap.Get(e),
		Body:    *g.bodyMap.Get(e),
		Facing:  *g.facingMap.Get(e),
		Age:     vitals.Age,
		Food:    vitals.Food,
		Alive:   vitals.Alive,
	}
}

// Board rasterizes the live animals, lowest ID first.
func (g *Game) Board() renderer.Board {
	animals := g.Animals()
	stamps := make([]renderer.Stamp, len(animals))
	for i, a := range animals {
		stamps[i] = renderer.Stamp{X: a.Pos.X, Y: a.Pos.Y, Sprite: a.Species.Sprite(a.Facing.H)}
	}
	return renderer.Rasterize(g.Width(), g.Height(), stamps)
}

// Snapshot returns the current board as fixed-width rows.
func (g *Game) Snapshot() []string {
	return g.Board().Rows()
}

// Describe lists every live animal, one line each.
func (g *Game) Describe() []string {
	animals := g.Animals()
	lines := make([]string, len(animals))
	for i, a := range animals {
		lines[i] = fmt.Sprintf("The %s %s is %d years old and has %d food",
			a.Species.Category(), a.Name, a.Age, a.Food)
	}
	return lines
}
