// Package components defines the ECS components that make up an aquarium animal.
package components

// Position is the top-left corner of an animal's bounding box in grid cells.
type Position struct {
	X, Y int
}

// MoveBy shifts the position. It performs no bounds or occupancy checks;
// callers validate the target first.
func (p *Position) MoveBy(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Horizontal is the direction an animal faces along the x axis.
type Horizontal uint8

const (
	Right Horizontal = iota
	Left
)

// Vertical is the direction a fish last swam along the y axis.
type Vertical uint8

const (
	Down Vertical = iota
	Up
)

// Facing holds both facing directions. V is only meaningful for fish.
type Facing struct {
	H Horizontal
	V Vertical
}
