package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Direction is a unit step on the grid.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}

// Vertical reports whether the direction changes the row.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Move steps an animal one cell. It returns false and changes nothing when
// the animal is unknown or dead, when a crab is asked to move vertically,
// when the step crosses the tank edge or the waterline, or when the target
// overlaps another animal.
func (g *Game) Move(e ecs.Entity, dir Direction) bool {
	g.beginOp()
	defer g.endOp()

	if !g.valid(e) {
		return false
	}
	animal := g.animalMap.Get(e)
	vitals := g.vitalsMap.Get(e)
	if !vitals.Alive {
		return false
	}
	if dir.Vertical() && !animal.Species.IsFish() {
		return false
	}

	pos := g.posMap.Get(e)
	body := g.bodyMap.Get(e)
	if g.atBoundary(*pos, *body, dir) {
		return false
	}

	dx, dy := dir.delta()
	from := systems.RectOf(*pos, *body)
	to := from.Moved(dx, dy)
	if !g.occupancy.IsFree(to, e) {
		return false
	}

	pos.MoveBy(dx, dy)
	g.occupancy.Move(e, from, to)

	facing := g.facingMap.Get(e)
	switch dir {
	case DirLeft:
		facing.H = components.Left
	case DirRight:
		facing.H = components.Right
	case DirUp:
		facing.V = components.Up
	case DirDown:
		facing.V = components.Down
	}

	g.emit(telemetry.NewMovedEvent(g.tick, animal.ID, animal.Species, *pos))
	return true
}

// atBoundary reports whether a step in dir would leave the swimmable area.
func (g *Game) atBoundary(pos components.Position, body components.Body, dir Direction) bool {
	switch dir {
	case DirLeft:
		return pos.X <= 0
	case DirRight:
		return pos.X+body.Width >= g.Width()
	case DirUp:
		return pos.Y <= g.Waterline()
	case DirDown:
		return pos.Y+body.Height >= g.Height()
	}
	return true
}
