// Package renderer turns animal state into a character grid.
package renderer

import (
	"strings"

	"github.com/pthm-cable/aquarium/components"
)

// Blank is the rune written to cells no sprite covers.
const Blank = ' '

// Stamp places a sprite with its top-left corner at (X, Y).
type Stamp struct {
	X, Y   int
	Sprite components.Sprite
}

// Board is a width x height grid of runes. It is rebuilt on every render
// and carries no identity.
type Board struct {
	width  int
	height int
	cells  []rune
}

// NewBoard returns a blank board.
func NewBoard(width, height int) Board {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = Blank
	}
	return Board{width: width, height: height, cells: cells}
}

// Rasterize draws stamps onto a blank board in order. Later stamps win where
// sprites overlap. Blank sprite cells are transparent and out-of-bounds cells
// are clipped.
func Rasterize(width, height int, stamps []Stamp) Board {
	b := NewBoard(width, height)
	for _, s := range stamps {
		b.Draw(s)
	}
	return b
}

// Draw writes the non-blank cells of one stamp.
func (b *Board) Draw(s Stamp) {
	for dy, row := range s.Sprite {
		y := s.Y + dy
		if y < 0 || y >= b.height {
			continue
		}
		dx := 0
		for _, r := range row {
			x := s.X + dx
			dx++
			if r == Blank || x < 0 || x >= b.width {
				continue
			}
			b.cells[y*b.width+x] = r
		}
	}
}

// Width returns the number of columns.
func (b Board) Width() int { return b.width }

// Height returns the number of rows.
func (b Board) Height() int { return b.height }

// At returns the rune at (x, y), or Blank outside the board.
func (b Board) At(x, y int) rune {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Blank
	}
	return b.cells[y*b.width+x]
}

// Rows returns the board as height strings of exactly width runes each.
func (b Board) Rows() []string {
	rows := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		rows[y] = string(b.cells[y*b.width : (y+1)*b.width])
	}
	return rows
}

// String joins the rows with newlines.
func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
