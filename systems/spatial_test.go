package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
)

// newEntities creates n bare entities in a fresh world.
func newEntities(n int) []ecs.Entity {
	w := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](w)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = mapper.NewEntity(&components.Position{})
	}
	return out
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 6, W: 8, H: 5}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"shifted inside", Rect{X: 12, Y: 7, W: 8, H: 5}, true},
		{"touching right edge", Rect{X: 18, Y: 6, W: 8, H: 5}, false},
		{"touching bottom edge", Rect{X: 10, Y: 11, W: 8, H: 5}, false},
		{"one cell corner", Rect{X: 17, Y: 10, W: 3, H: 3}, true},
		{"far away", Rect{X: 0, Y: 0, W: 2, H: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps not symmetric: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{X: 0, Y: 0, W: 8, H: 8}, true},
		{Rect{X: 22, Y: 4, W: 8, H: 8}, true},
		{Rect{X: 23, Y: 4, W: 8, H: 8}, false},
		{Rect{X: 10, Y: 10, W: 8, H: 5}, false},
		{Rect{X: -1, Y: 0, W: 2, H: 2}, false},
		{Rect{X: 0, Y: -1, W: 2, H: 2}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Within(30, 12); got != tt.want {
			t.Errorf("%+v.Within(30,12) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestSpatialGridQuery(t *testing.T) {
	es := newEntities(3)
	g := NewSpatialGrid(30, 12, 4)

	g.Insert(Occupant{E: es[0], Rect: Rect{X: 0, Y: 0, W: 8, H: 8}})
	g.Insert(Occupant{E: es[1], Rect: Rect{X: 20, Y: 4, W: 7, H: 4}})
	g.Insert(Occupant{E: es[2], Rect: Rect{X: 6, Y: 6, W: 8, H: 3}})

	if g.Len() != 3 {
		t.Fatalf("Len = %d, want 3", g.Len())
	}

	got := g.QueryInto(nil, Rect{X: 5, Y: 5, W: 4, H: 4}, ecs.Entity{})
	if len(got) != 2 {
		t.Fatalf("query returned %d occupants, want 2 (each once)", len(got))
	}

	got = g.QueryInto(got[:0], Rect{X: 5, Y: 5, W: 4, H: 4}, es[0])
	if len(got) != 1 || got[0].E != es[2] {
		t.Errorf("query excluding es[0] = %v, want only es[2]", got)
	}

	if !g.AnyOverlap(Rect{X: 21, Y: 5, W: 1, H: 1}, ecs.Entity{}) {
		t.Error("expected overlap with es[1]")
	}
	if g.AnyOverlap(Rect{X: 21, Y: 5, W: 1, H: 1}, es[1]) {
		t.Error("excluded entity should not count as overlap")
	}
}

func TestSpatialGridMoveAndRemove(t *testing.T) {
	es := newEntities(1)
	g := NewSpatialGrid(30, 12, 4)

	from := Rect{X: 0, Y: 0, W: 8, H: 8}
	to := Rect{X: 20, Y: 4, W: 8, H: 8}
	g.Insert(Occupant{E: es[0], Rect: from})
	g.Move(es[0], from, to)

	if g.AnyOverlap(from, ecs.Entity{}) {
		t.Error("old box still occupied after Move")
	}
	if !g.AnyOverlap(to, ecs.Entity{}) {
		t.Error("new box not occupied after Move")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d after Move, want 1", g.Len())
	}

	g.Remove(es[0], to)
	if g.Len() != 0 {
		t.Errorf("Len = %d after Remove, want 0", g.Len())
	}
	if g.AnyOverlap(to, ecs.Entity{}) {
		t.Error("box still occupied after Remove")
	}
}

func TestSpatialGridClear(t *testing.T) {
	es := newEntities(2)
	g := NewSpatialGrid(30, 12, 8)
	g.Insert(Occupant{E: es[0], Rect: Rect{X: 0, Y: 0, W: 8, H: 8}})
	g.Insert(Occupant{E: es[1], Rect: Rect{X: 10, Y: 0, W: 8, H: 8}})
	g.Clear()

	if g.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", g.Len())
	}
	if g.AnyOverlap(Rect{X: 0, Y: 0, W: 30, H: 12}, ecs.Entity{}) {
		t.Error("grid not empty after Clear")
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 4, 1},
		{8, 4, 2},
		{-1, 4, -1},
		{-4, 4, -1},
		{-5, 4, -2},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
