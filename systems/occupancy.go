package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// DefaultCellSize matches the width of the largest sprite box.
const DefaultCellSize = 8

// OccupancyChecker answers "is this box free?" for a fixed-size tank.
// The caller keeps it in sync through Reset, Place, Move and Remove.
type OccupancyChecker struct {
	width  int
	height int
	grid   *SpatialGrid
}

// NewOccupancyChecker creates an empty checker for a width x height tank.
func NewOccupancyChecker(width, height int) *OccupancyChecker {
	return &OccupancyChecker{
		width:  width,
		height: height,
		grid:   NewSpatialGrid(width, height, DefaultCellSize),
	}
}

// Width returns the tank width in cells.
func (c *OccupancyChecker) Width() int { return c.width }

// Height returns the tank height in cells.
func (c *OccupancyChecker) Height() int { return c.height }

// Len returns the number of tracked occupants.
func (c *OccupancyChecker) Len() int { return c.grid.Len() }

// Reset rebuilds the index from scratch.
func (c *OccupancyChecker) Reset(occupants []Occupant) {
	c.grid.Clear()
	for _, o := range occupants {
		c.grid.Insert(o)
	}
}

// Place starts tracking an entity.
func (c *OccupancyChecker) Place(e ecs.Entity, r Rect) {
	c.grid.Insert(Occupant{E: e, Rect: r})
}

// Move updates the box of a tracked entity.
func (c *OccupancyChecker) Move(e ecs.Entity, from, to Rect) {
	c.grid.Move(e, from, to)
}

// Remove stops tracking an entity.
func (c *OccupancyChecker) Remove(e ecs.Entity, r Rect) {
	c.grid.Remove(e, r)
}

// InBounds reports whether r lies fully inside the tank.
func (c *OccupancyChecker) InBounds(r Rect) bool {
	return r.Within(c.width, c.height)
}

// IsFree reports whether r is inside the tank and overlaps no tracked
// entity other than exclude. Pass a zero entity to exclude nothing.
func (c *OccupancyChecker) IsFree(r Rect, exclude ecs.Entity) bool {
	if !c.InBounds(r) {
		return false
	}
	return !c.grid.AnyOverlap(r, exclude)
}

// Blockers appends the entities other than exclude that overlap r.
func (c *OccupancyChecker) Blockers(dst []Occupant, r Rect, exclude ecs.Entity) []Occupant {
	return c.grid.QueryInto(dst, r, exclude)
}
