// Package ui draws the aquarium and its panels on a terminal screen.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the styles shared by every panel.
type Theme struct {
	Text      tcell.Style
	Label     tcell.Style
	Value     tcell.Style
	Header    tcell.Style
	Status    tcell.Style
	Border    tcell.Style
	Water     tcell.Style
	Fish      tcell.Style
	Crab      tcell.Style
	Selected  tcell.Style
	BarFill   tcell.Style
	BarLow    tcell.Style
	BarEmpty  tcell.Style
	LabelCols int
}

// DefaultTheme returns the standard terminal theme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Text:      base,
		Label:     base.Foreground(tcell.ColorSilver),
		Value:     base.Foreground(tcell.ColorWhite),
		Header:    base.Foreground(tcell.ColorAqua).Bold(true),
		Status:    base.Foreground(tcell.ColorYellow),
		Border:    base.Foreground(tcell.ColorGray),
		Water:     base.Foreground(tcell.ColorBlue),
		Fish:      base.Foreground(tcell.ColorAqua),
		Crab:      base.Foreground(tcell.ColorRed),
		Selected:  base.Foreground(tcell.ColorYellow).Bold(true),
		BarFill:   base.Foreground(tcell.ColorGreen),
		BarLow:    base.Foreground(tcell.ColorRed),
		BarEmpty:  base.Foreground(tcell.ColorGray),
		LabelCols: 8,
	}
}

// Renderer draws text widgets on a screen with consistent styling.
type Renderer struct {
	Screen tcell.Screen
	Theme  Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{Screen: screen, Theme: DefaultTheme()}
}

// DrawText writes text starting at (x, y) and returns the column after it.
// Text past the screen edge is dropped.
func (r *Renderer) DrawText(x, y int, style tcell.Style, text string) int {
	w, h := r.Screen.Size()
	if y < 0 || y >= h {
		return x + len([]rune(text))
	}
	for _, ch := range text {
		if x >= 0 && x < w {
			r.Screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

// DrawSectionHeader draws a header and returns the next row.
func (r *Renderer) DrawSectionHeader(x, y int, title string) int {
	r.DrawText(x, y, r.Theme.Header, title)
	return y + 1
}

// DrawLabelValue draws "label: value" with aligned values and returns the next row.
func (r *Renderer) DrawLabelValue(x, y int, label, value string) int {
	r.DrawText(x, y, r.Theme.Label, label+":")
	r.DrawText(x+r.Theme.LabelCols, y, r.Theme.Value, value)
	return y + 1
}

// DrawBar draws a labelled gauge of current/max over width cells and returns
// the next row. The bar turns to the low style under a quarter.
func (r *Renderer) DrawBar(x, y int, label string, current, max, width int) int {
	r.DrawText(x, y, r.Theme.Label, label+":")
	barX := x + r.Theme.LabelCols

	filled := 0
	if max > 0 {
		filled = current * width / max
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	fill := r.Theme.BarFill
	if max > 0 && current*4 < max {
		fill = r.Theme.BarLow
	}
	for i := 0; i < width; i++ {
		if i < filled {
			r.Screen.SetContent(barX+i, y, '#', nil, fill)
		} else {
			r.Screen.SetContent(barX+i, y, '.', nil, r.Theme.BarEmpty)
		}
	}
	r.DrawText(barX+width+1, y, r.Theme.Value, fmt.Sprintf("%d/%d", current, max))
	return y + 1
}

// DrawBox draws a border around the w x h interior whose top-left cell is (x, y).
func (r *Renderer) DrawBox(x, y, w, h int) {
	st := r.Theme.Border
	for i := 0; i < w; i++ {
		r.Screen.SetContent(x+i, y-1, tcell.RuneHLine, nil, st)
		r.Screen.SetContent(x+i, y+h, tcell.RuneHLine, nil, st)
	}
	for j := 0; j < h; j++ {
		r.Screen.SetContent(x-1, y+j, tcell.RuneVLine, nil, st)
		r.Screen.SetContent(x+w, y+j, tcell.RuneVLine, nil, st)
	}
	r.Screen.SetContent(x-1, y-1, tcell.RuneULCorner, nil, st)
	r.Screen.SetContent(x+w, y-1, tcell.RuneURCorner, nil, st)
	r.Screen.SetContent(x-1, y+h, tcell.RuneLLCorner, nil, st)
	r.Screen.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, st)
}
