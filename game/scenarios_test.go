package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

func TestOverlappingPlacementRejected(t *testing.T) {
	g := newTestGame(t, nil)

	// A scalar is 8x5, so (10,10) does not fit in 12 rows
	if _, err := g.AddAnimal(AnimalSpec{Name: "low", X: 10, Y: 10, Code: "sc"}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("scalar at (10,10): err = %v, want ErrOutOfBounds", err)
	}

	first := mustAdd(t, g, AnimalSpec{Name: "first", X: 10, Y: 6, Code: "sc"})
	before, _ := g.Lookup(first)

	_, err := g.AddAnimal(AnimalSpec{Name: "second", X: 12, Y: 7, Code: "sc"})
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("overlapping add: err = %v, want ErrOccupied", err)
	}
	if !strings.Contains(err.Error(), `"first"`) {
		t.Errorf("error %q does not name the blocking animal", err)
	}

	after, ok := g.Lookup(first)
	if !ok || after != before {
		t.Errorf("first animal changed: %+v -> %+v", before, after)
	}
	if g.Count() != 1 {
		t.Errorf("Count = %d, want 1", g.Count())
	}
}

func TestMoveLeftAtEdgeIsNoop(t *testing.T) {
	g := newTestGame(t, nil)
	e := mustAdd(t, g, AnimalSpec{Name: "edge", X: 0, Y: 5, Code: "mo"})

	if g.Move(e, DirLeft) {
		t.Error("Move(Left) at x=0 succeeded")
	}
	a, _ := g.Lookup(e)
	if a.Pos.X != 0 || a.Pos.Y != 5 {
		t.Errorf("pos = (%d,%d), want (0,5)", a.Pos.X, a.Pos.Y)
	}
}

func TestLastFoodStarves(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) { c.Life.StartingFood = 1 })
	e := mustAdd(t, g, AnimalSpec{Name: "hungry", X: 0, Y: 5, Code: "mo"})

	if !g.ConsumeFood(e) {
		t.Fatal("ConsumeFood on live animal returned false")
	}
	if _, ok := g.Lookup(e); ok {
		t.Error("starved animal still present")
	}
	if !hasEvent(g.Events(), telemetry.EventStarved) {
		t.Error("expected starved event")
	}
	for i, row := range g.Snapshot() {
		if strings.TrimSpace(row) != "" {
			t.Errorf("row %d not blank after starvation: %q", i, row)
		}
	}
}

func TestDriftedCrabsSeparated(t *testing.T) {
	g := newTestGame(t, nil)
	a := mustAdd(t, g, AnimalSpec{Name: "a", X: 2, Y: 8, Code: "sh"})
	b := mustAdd(t, g, AnimalSpec{Name: "b", X: 15, Y: 8, Code: "sh"})

	// Drift bypasses placement checks
	g.posMap.Get(b).X = 5

	g.Tick()

	if !hasEvent(g.Events(), telemetry.EventCollision) {
		t.Error("expected collision event")
	}
	va, _ := g.Lookup(a)
	vb, _ := g.Lookup(b)
	overlap := systems.RectOf(va.Pos, va.Body).Overlaps(systems.RectOf(vb.Pos, vb.Body))
	if overlap && !hasEvent(g.Events(), telemetry.EventRelocationFailed) {
		t.Error("crabs still overlap without a relocation_failed event")
	}
	if !overlap {
		checkInvariants(t, g)
		for _, v := range []AnimalView{va, vb} {
			if v.Pos.Y <= g.Waterline() {
				t.Errorf("%s relocated to row %d, above the waterline", v.Name, v.Pos.Y)
			}
		}
	}
}

func TestCrabRelocationExhaustion(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Tank.Width = 8
		c.Tank.Height = 8
		c.Tank.Waterline = 0
	})
	// Ocypodes are 7x4; every spot below row 0 overlaps the other crab
	a := mustAdd(t, g, AnimalSpec{Name: "a", X: 0, Y: 4, Code: "oc"})
	b := mustAdd(t, g, AnimalSpec{Name: "b", X: 0, Y: 0, Code: "oc"})
	g.posMap.Get(b).X = 1
	g.posMap.Get(b).Y = 3

	g.Tick()

	failures := 0
	for _, ev := range g.Events() {
		if ev.Type == telemetry.EventRelocationFailed {
			failures++
			if ev.Amount != 10 {
				t.Errorf("attempts = %d, want 10", ev.Amount)
			}
		}
	}
	if failures != 2 {
		t.Errorf("relocation failures = %d, want 2", failures)
	}

	// Exhaustion leaves both crabs alive and in place
	va, okA := g.Lookup(a)
	vb, okB := g.Lookup(b)
	if !okA || !okB {
		t.Fatal("crab removed after failed relocation")
	}
	if va.Pos.X != 0 || va.Pos.Y != 4 || vb.Pos.X != 1 || vb.Pos.Y != 3 {
		t.Errorf("positions changed: a=%+v b=%+v", va.Pos, vb.Pos)
	}
}

func TestMaxAgeRemovesAnimal(t *testing.T) {
	g := newTestGame(t, nil)
	maxAge := g.Config().Life.MaxAge
	e := mustAdd(t, g, AnimalSpec{Name: "elder", Age: maxAge - 1, X: 0, Y: 5, Code: "mo"})
	mustAdd(t, g, AnimalSpec{Name: "young", X: 10, Y: 5, Code: "mo"})

	if !g.AdvanceAge(e) {
		t.Fatal("AdvanceAge on live animal returned false")
	}
	if _, ok := g.Lookup(e); ok {
		t.Error("animal at max age still present")
	}
	for _, a := range g.Animals() {
		if a.Name == "elder" {
			t.Error("elder listed after reaching max age")
		}
	}
	if g.AdvanceAge(e) {
		t.Error("AdvanceAge on removed animal returned true")
	}
	if g.Count() != 1 {
		t.Errorf("Count = %d, want 1", g.Count())
	}
}

func TestTickProfileRecordsRelocations(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Tank.Width = 8
		c.Tank.Height = 8
		c.Tank.Waterline = 0
	})
	mustAdd(t, g, AnimalSpec{Name: "a", X: 0, Y: 4, Code: "oc"})
	b := mustAdd(t, g, AnimalSpec{Name: "b", X: 0, Y: 0, Code: "oc"})
	g.posMap.Get(b).X = 1
	g.posMap.Get(b).Y = 3

	g.Tick()
	tp := g.Perf()
	if tp.Ticks != 1 || tp.WindowEnd != 0 {
		t.Errorf("open window = %+v, want 1 tick", tp)
	}
	if tp.Relocations != 2 || tp.RelocationFailures != 2 || tp.RelocationAttempts != 20 {
		t.Errorf("relocations = %d/%d failed, %d draws; want 2/2, 20",
			tp.Relocations, tp.RelocationFailures, tp.RelocationAttempts)
	}
	if tp.FailureRate() != 1 {
		t.Errorf("FailureRate = %v, want 1", tp.FailureRate())
	}

	// The crabs keep colliding until the window closes
	window := g.Config().Telemetry.StatsWindow
	g.RunTicks(window-1, nil)
	tp = g.Perf()
	if tp.WindowEnd != int32(window) || tp.Ticks != window {
		t.Errorf("closed window ends at %d with %d ticks, want %d", tp.WindowEnd, tp.Ticks, window)
	}
	if tp.Relocations != 2*window {
		t.Errorf("window relocations = %d, want %d", tp.Relocations, 2*window)
	}
}
