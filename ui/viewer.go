package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/aquarium/camera"
	"github.com/pthm-cable/aquarium/game"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Tick interval limits for the speed keys.
const (
	MinTickInterval = 50 * time.Millisecond
	MaxTickInterval = 5 * time.Second
)

// Board origin on screen; row 0 and column 0 hold the tank border.
const (
	boardX = 1
	boardY = 1

	hudRows = 4
)

// Pan step for the h/j/k/l keys.
const (
	panCols = 4
	panRows = 2
)

// Options configures a Viewer.
type Options struct {
	TickInterval time.Duration
	Sound        bool
}

// Viewer runs the aquarium interactively on a terminal screen.
// All methods must be called from the goroutine running Run.
type Viewer struct {
	screen tcell.Screen
	game   *game.Game
	cycle  game.Cycle

	renderer  *Renderer
	hud       *HUD
	perfPanel *PerfPanel
	inspector *Inspector
	overlays  *OverlayRegistry
	sound     *Sound
	camera    *camera.Camera

	interval time.Duration
	paused   bool
	selected uint32 // Animal ID, 0 = none
	last     string
}

// NewViewer creates a viewer for g on an initialized screen.
func NewViewer(screen tcell.Screen, g *game.Game, opts Options) *Viewer {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	r := NewRenderer(screen)
	v := &Viewer{
		screen:    screen,
		game:      g,
		cycle:     g.DemoCycle(),
		renderer:  r,
		hud:       NewHUD(r),
		perfPanel: NewPerfPanel(r),
		inspector: NewInspector(r),
		overlays:  NewOverlayRegistry(),
		sound:     &Sound{},
		camera:    camera.New(g.Width(), g.Height(), g.Width(), g.Height()),
		interval:  clampInterval(interval),
	}
	v.fitCamera()
	if opts.Sound {
		if err := v.sound.Init(); err != nil {
			// Non-fatal, the viewer runs without sound
			slog.Warn("audio_init_failed", "error", err)
		}
	}
	return v
}

// Run draws the tank and advances it on a timer until the user quits or
// ctx is cancelled. The caller owns the screen and calls Fini afterwards.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.sound.Close()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			interval := v.interval
			if !v.HandleEvent(ev) {
				return nil
			}
			if v.interval != interval {
				ticker.Reset(v.interval)
			}
		case <-ticker.C:
			if !v.paused {
				v.Step()
			}
		}
		v.Draw()
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.fitCamera()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			v.selectAt(ev.Position())
		}
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.cycleSelection(1)
	case tcell.KeyBacktab:
		v.cycleSelection(-1)
	case tcell.KeyLeft:
		v.moveSelected(game.DirLeft)
	case tcell.KeyRight:
		v.moveSelected(game.DirRight)
	case tcell.KeyUp:
		v.moveSelected(game.DirUp)
	case tcell.KeyDown:
		v.moveSelected(game.DirDown)
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *Viewer) handleRune(ch rune) bool {
	switch ch {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.Step()
	case 'f':
		v.game.FeedAll(v.game.Config().Life.FeedAmount)
		v.notice(v.game.Events())
	case 'd':
		v.game.Digest()
		v.notice(v.game.Events())
	case '+', '=':
		v.interval = clampInterval(v.interval / 2)
	case '-', '_':
		v.interval = clampInterval(v.interval * 2)
	case 'h':
		v.camera.Pan(-panCols, 0)
	case 'l':
		v.camera.Pan(panCols, 0)
	case 'k':
		v.camera.Pan(0, -panRows)
	case 'j':
		v.camera.Pan(0, panRows)
	case '0':
		v.camera.Reset()
	default:
		v.overlays.HandleKeyPress(ch)
	}
	return true
}

// Step runs one scheduled step of the tank.
func (v *Viewer) Step() {
	v.notice(v.game.Step(v.cycle))
}

// Paused reports whether the timer is paused.
func (v *Viewer) Paused() bool { return v.paused }

// Interval returns the current tick interval.
func (v *Viewer) Interval() time.Duration { return v.interval }

// Selected returns the selected animal ID, 0 if none.
func (v *Viewer) Selected() uint32 { return v.selected }

// Camera returns the viewport onto the tank.
func (v *Viewer) Camera() *camera.Camera { return v.camera }

// Overlays returns the overlay registry.
func (v *Viewer) Overlays() *OverlayRegistry { return v.overlays }

// notice updates the status line and plays chimes for notable events.
func (v *Viewer) notice(events []telemetry.Event) {
	var fed, died, clashed bool
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventFed:
			fed = true
			v.last = fmt.Sprintf("tick %d: fed %d", ev.Tick, ev.Amount)
		case telemetry.EventDied, telemetry.EventStarved:
			died = true
			v.last = fmt.Sprintf("tick %d: %s #%d %s", ev.Tick, ev.Species.Category(), ev.AnimalID, ev.Type)
		case telemetry.EventCollision:
			clashed = true
			v.last = fmt.Sprintf("tick %d: crabs #%d and #%d collided", ev.Tick, ev.AnimalID, ev.OtherID)
		}
	}

	switch {
	case died:
		v.sound.Chime(ToneDeath, 150*time.Millisecond)
	case clashed:
		v.sound.Chime(ToneClash, 80*time.Millisecond)
	case fed:
		v.sound.Chime(ToneFeed, 50*time.Millisecond)
	}
}

// cycleSelection moves the selection through the animals in ID order.
func (v *Viewer) cycleSelection(step int) {
	animals := v.game.Animals()
	if len(animals) == 0 {
		v.selected = 0
		return
	}
	idx := -1
	for i, a := range animals {
		if a.ID == v.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step < 0:
		idx = len(animals) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(animals)) % len(animals)
	}
	v.selected = animals[idx].ID
	v.followSelected()
}

// selectAt selects the animal drawn at screen cell (x, y), or clears the
// selection when the cell is empty tank.
func (v *Viewer) selectAt(x, y int) {
	sx, sy := x-boardX, y-boardY
	if sx < 0 || sy < 0 || sx >= v.camera.ViewportW || sy >= v.camera.ViewportH {
		return
	}
	wx, wy := v.camera.ScreenToWorld(sx, sy)
	v.selected = 0
	for _, a := range v.game.Animals() {
		r := systems.RectOf(a.Pos, a.Body)
		if wx >= r.X && wx < r.X+r.W && wy >= r.Y && wy < r.Y+r.H {
			v.selected = a.ID
			return
		}
	}
}

// viewLabel describes the visible tank columns and rows when the tank does
// not fit on screen.
func (v *Viewer) viewLabel() string {
	if !v.camera.Clipped() {
		return ""
	}
	minX, minY, maxX, maxY := v.camera.VisibleWorldBounds()
	return fmt.Sprintf("view %d-%d x %d-%d of %dx%d", minX, maxX-1, minY, maxY-1, v.game.Width(), v.game.Height())
}

// followSelected scrolls the viewport to the selected animal.
func (v *Viewer) followSelected() {
	if a, ok := v.selectedAnimal(); ok {
		v.camera.Follow(a.Pos.X, a.Pos.Y, a.Body.Width, a.Body.Height)
	}
}

// fitCamera sizes the viewport to the screen, leaving room for the border and HUD.
func (v *Viewer) fitCamera() {
	sw, sh := v.screen.Size()
	v.camera.Resize(sw-2, sh-2-hudRows)
}

func (v *Viewer) selectedAnimal() (game.AnimalView, bool) {
	if v.selected == 0 {
		return game.AnimalView{}, false
	}
	for _, a := range v.game.Animals() {
		if a.ID == v.selected {
			return a, true
		}
	}
	return game.AnimalView{}, false
}

func (v *Viewer) moveSelected(dir game.Direction) {
	a, ok := v.selectedAnimal()
	if !ok {
		return
	}
	if !v.game.Move(a.Entity, dir) {
		v.last = fmt.Sprintf("%s cannot move %s", a.Name, dir)
		return
	}
	v.followSelected()
}

// Draw renders the tank, HUD and enabled panels, then shows the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	g := v.game
	w := g.Width()
	theme := v.renderer.Theme
	cam := v.camera
	vw, vh := cam.ViewportW, cam.ViewportH

	v.renderer.DrawBox(boardX, boardY, vw, vh)

	styles := v.cellStyles()
	board := g.Board()
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			sx, sy, ok := cam.WorldToScreen(x, y)
			if !ok {
				continue
			}
			ch := board.At(x, y)
			st := styles[y*w+x]
			if ch == ' ' && y == g.Waterline()-1 && v.overlays.IsEnabled(OverlayWaterline) {
				ch, st = '~', theme.Water
			}
			v.screen.SetContent(boardX+sx, boardY+sy, ch, nil, st)
		}
	}

	fish, crabs := g.Population()
	row := v.hud.Draw(boardX, boardY+vh+1, HUDData{
		Title:  "Aquarium",
		Fish:   fish,
		Crabs:  crabs,
		Tick:   g.CurrentTick(),
		Speed:  int(time.Second / v.interval),
		Paused: v.paused,
		View:   v.viewLabel(),
		Last:   v.last,
	})
	v.hud.DrawControls(boardX, row, v.overlays)

	panelX := boardX + vw + 2
	panelY := boardY
	if v.overlays.IsEnabled(OverlayInspector) {
		if a, ok := v.selectedAnimal(); ok {
			panelY = v.inspector.Draw(panelX, panelY, InspectorData{
				Animal:       a,
				MaxAge:       g.Config().Life.MaxAge,
				StartingFood: g.Config().Life.StartingFood,
			}) + 1
		}
	}
	if v.overlays.IsEnabled(OverlayPerf) {
		v.perfPanel.Draw(panelX, panelY, g.Perf())
	}

	v.screen.Show()
}

// cellStyles returns the style of every board cell in row-major order.
func (v *Viewer) cellStyles() []tcell.Style {
	g := v.game
	w, h := g.Width(), g.Height()
	theme := v.renderer.Theme
	styles := make([]tcell.Style, w*h)
	for i := range styles {
		styles[i] = theme.Text
	}

	colors := v.overlays.IsEnabled(OverlaySpeciesColors)
	for _, a := range g.Animals() {
		if !v.camera.IsVisible(a.Pos.X, a.Pos.Y, a.Body.Width, a.Body.Height) {
			continue
		}
		st := theme.Text
		switch {
		case a.ID == v.selected:
			st = theme.Selected
		case !colors:
		case a.Species.IsCrab():
			st = theme.Crab
		default:
			st = theme.Fish
		}
		r := systems.RectOf(a.Pos, a.Body)
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				if x >= 0 && x < w && y >= 0 && y < h {
					styles[y*w+x] = st
				}
			}
		}
	}
	return styles
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinTickInterval {
		return MinTickInterval
	}
	if d > MaxTickInterval {
		return MaxTickInterval
	}
	return d
}
