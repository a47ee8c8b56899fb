// Package systems provides the spatial and collision systems for the aquarium.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
)

// Rect is an axis-aligned bounding box in grid cells.
type Rect struct {
	X, Y, W, H int
}

// RectOf returns the bounding box of an animal.
func RectOf(pos components.Position, body components.Body) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: body.Width, H: body.Height}
}

// Overlaps reports whether two boxes share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Within reports whether the box lies fully inside a width x height grid.
func (r Rect) Within(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= width && r.Y+r.H <= height
}

// Moved returns the box shifted by (dx, dy).
func (r Rect) Moved(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Occupant is an entity together with its bounding box.
type Occupant struct {
	E    ecs.Entity
	Rect Rect
}

// SpatialGrid buckets occupants by grid cell so overlap queries only look at
// nearby animals. An occupant is stored in every cell its box touches.
type SpatialGrid struct {
	cellSize int
	cols     int
	rows     int
	cells    [][]Occupant
	count    int
}

// NewSpatialGrid creates a spatial grid covering a width x height tank.
func NewSpatialGrid(width, height, cellSize int) *SpatialGrid {
	if cellSize < 1 {
		cellSize = 1
	}
	cols := width/cellSize + 1
	rows := height/cellSize + 1

	cells := make([][]Occupant, cols*rows)
	for i := range cells {
		cells[i] = make([]Occupant, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all occupants from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Len returns the number of occupants in the grid.
func (g *SpatialGrid) Len() int {
	return g.count
}

// Insert adds an occupant to every cell its box touches.
func (g *SpatialGrid) Insert(o Occupant) {
	c0, r0, c1, r1, ok := g.cellRange(o.Rect)
	if !ok {
		return
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := row*g.cols + col
			g.cells[idx] = append(g.cells[idx], o)
		}
	}
	g.count++
}

// Remove deletes an entity previously inserted with the given box.
func (g *SpatialGrid) Remove(e ecs.Entity, r Rect) {
	c0, r0, c1, r1, ok := g.cellRange(r)
	if !ok {
		return
	}
	removed := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := row*g.cols + col
			cell := g.cells[idx]
			for i := range cell {
				if cell[i].E == e {
					cell[i] = cell[len(cell)-1]
					g.cells[idx] = cell[:len(cell)-1]
					removed = true
					break
				}
			}
		}
	}
	if removed {
		g.count--
	}
}

// Move relocates an entity from one box to another.
func (g *SpatialGrid) Move(e ecs.Entity, from, to Rect) {
	g.Remove(e, from)
	g.Insert(Occupant{E: e, Rect: to})
}

// AnyOverlap reports whether any occupant other than exclude overlaps r.
func (g *SpatialGrid) AnyOverlap(r Rect, exclude ecs.Entity) bool {
	c0, r0, c1, r1, ok := g.cellRange(r)
	if !ok {
		return false
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, o := range g.cells[row*g.cols+col] {
				if o.E != exclude && o.Rect.Overlaps(r) {
					return true
				}
			}
		}
	}
	return false
}

// QueryInto appends every occupant other than exclude that overlaps r.
// Each occupant appears once. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryInto(dst []Occupant, r Rect, exclude ecs.Entity) []Occupant {
	c0, r0, c1, r1, ok := g.cellRange(r)
	if !ok {
		return dst
	}
	start := len(dst)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, o := range g.cells[row*g.cols+col] {
				if o.E == exclude || !o.Rect.Overlaps(r) {
					continue
				}
				if containsEntity(dst[start:], o.E) {
					continue
				}
				dst = append(dst, o)
			}
		}
	}
	return dst
}

func containsEntity(list []Occupant, e ecs.Entity) bool {
	for _, o := range list {
		if o.E == e {
			return true
		}
	}
	return false
}

// cellRange returns the clamped inclusive cell span of a box.
// ok is false for empty boxes.
func (g *SpatialGrid) cellRange(r Rect) (c0, r0, c1, r1 int, ok bool) {
	if r.W <= 0 || r.H <= 0 {
		return 0, 0, 0, 0, false
	}
	c0 = g.clampCol(floorDiv(r.X, g.cellSize))
	r0 = g.clampRow(floorDiv(r.Y, g.cellSize))
	c1 = g.clampCol(floorDiv(r.X+r.W-1, g.cellSize))
	r1 = g.clampRow(floorDiv(r.Y+r.H-1, g.cellSize))
	return c0, r0, c1, r1, true
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	} else if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	} else if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// floorDiv divides rounding toward negative infinity (Go's / truncates).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
