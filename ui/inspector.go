package ui

import (
	"fmt"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/game"
)

// InspectorData holds the animal shown in the inspector.
type InspectorData struct {
	Animal       game.AnimalView
	MaxAge       int
	StartingFood int
}

// Inspector renders details of the selected animal.
type Inspector struct {
	renderer *Renderer
	barWidth int
}

// NewInspector creates an inspector drawing through r.
func NewInspector(r *Renderer) *Inspector {
	return &Inspector{renderer: r, barWidth: 12}
}

// Draw renders the inspector at (x, y) and returns the next free row.
func (ins *Inspector) Draw(x, y int, data InspectorData) int {
	r := ins.renderer
	a := data.Animal

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("#%d %s", a.ID, a.Name))
	y = r.DrawLabelValue(x, y, "species", fmt.Sprintf("%s (%s)", a.Species, a.Species.Category()))
	y = r.DrawLabelValue(x, y, "pos", fmt.Sprintf("%d,%d", a.Pos.X, a.Pos.Y))
	y = r.DrawLabelValue(x, y, "size", fmt.Sprintf("%dx%d", a.Body.Width, a.Body.Height))
	y = r.DrawLabelValue(x, y, "facing", facingLabel(a))
	y = r.DrawBar(x, y, "age", a.Age, data.MaxAge, ins.barWidth)

	// Food has no ceiling; scale the bar against twice the starting ration
	foodMax := data.StartingFood * 2
	if a.Food > foodMax {
		foodMax = a.Food
	}
	y = r.DrawBar(x, y, "food", a.Food, foodMax, ins.barWidth)
	return y
}

func facingLabel(a game.AnimalView) string {
	h := "right"
	if a.Facing.H == components.Left {
		h = "left"
	}
	if !a.Species.IsFish() {
		return h
	}
	v := "down"
	if a.Facing.V == components.Up {
		v = "up"
	}
	return h + "/" + v
}
