package ui

import (
	"fmt"

	"github.com/pthm-cable/aquarium/telemetry"
)

// HUDData holds the values shown on the status lines.
type HUDData struct {
	Title  string
	Fish   int
	Crabs  int
	Tick   int32
	Speed  int // Ticks per second
	Paused bool
	View   string // Visible part of a tank larger than the screen
	Last   string // Most recent notable event
}

// HUD renders the status lines under the tank.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a HUD drawing through r.
func NewHUD(r *Renderer) *HUD {
	return &HUD{renderer: r}
}

// Draw renders the HUD at (x, y) and returns the next free row.
func (h *HUD) Draw(x, y int, data HUDData) int {
	r := h.renderer
	next := r.DrawText(x, y, r.Theme.Header, data.Title)

	status := "running"
	if data.Paused {
		status = "PAUSED"
	}
	next = r.DrawText(next+2, y, r.Theme.Status, status)
	if data.View != "" {
		r.DrawText(next+2, y, r.Theme.Label, data.View)
	}
	y++

	r.DrawText(x, y, r.Theme.Text,
		fmt.Sprintf("Tick: %d | Fish: %d | Crabs: %d | Speed: %d/s", data.Tick, data.Fish, data.Crabs, data.Speed))
	y++

	if data.Last != "" {
		r.DrawText(x, y, r.Theme.Label, data.Last)
		y++
	}
	return y
}

// DrawControls renders the key legend and returns the next free row.
func (h *HUD) DrawControls(x, y int, overlays *OverlayRegistry) int {
	r := h.renderer
	r.DrawText(x, y, r.Theme.Label, "space pause | n step | f feed | d digest | +/- speed | tab/click select | hjkl pan | 0 home | q quit")
	y++

	col := x
	for _, desc := range overlays.All() {
		style := r.Theme.Label
		if overlays.IsEnabled(desc.ID) {
			style = r.Theme.Value
		}
		col = r.DrawText(col, y, style, fmt.Sprintf("%c %s", desc.Key, desc.Name)) + 2
	}
	return y + 1
}

// PerfPanel renders the tick profile of the current stats window.
type PerfPanel struct {
	renderer *Renderer
}

// NewPerfPanel creates a perf panel drawing through r.
func NewPerfPanel(r *Renderer) *PerfPanel {
	return &PerfPanel{renderer: r}
}

// Draw renders the panel at (x, y) and returns the next free row.
func (p *PerfPanel) Draw(x, y int, tp telemetry.TickProfile) int {
	r := p.renderer
	y = r.DrawSectionHeader(x, y, "Perf")
	y = r.DrawLabelValue(x, y, "ticks", fmt.Sprintf("%d", tp.Ticks))
	y = r.DrawLabelValue(x, y, "mean", tp.Mean.String())
	y = r.DrawLabelValue(x, y, "p95", tp.P95.String())
	for _, phase := range telemetry.Phases() {
		y = r.DrawLabelValue(x, y, phaseLabel(phase.String()), fmt.Sprintf("%5.1f%%", tp.Share[phase]*100))
	}
	if tp.Relocations > 0 {
		y = r.DrawLabelValue(x, y, "draws", fmt.Sprintf("%.1f/crab", tp.AttemptsPerRelocation()))
		y = r.DrawLabelValue(x, y, "failed", fmt.Sprintf("%.0f%%", tp.FailureRate()*100))
	}
	return y
}

// phaseLabel shortens a phase name to fit the label column.
func phaseLabel(phase string) string {
	if len(phase) > 7 {
		return phase[:7]
	}
	return phase
}
