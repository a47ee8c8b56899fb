package telemetry

import "testing"

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0)
	lt.Register(2, 5)

	lt.Observe(Event{Type: EventMoved, AnimalID: 1})
	lt.Observe(Event{Type: EventMoved, AnimalID: 1})
	lt.Observe(Event{Type: EventFed, AnimalID: 1, Amount: 10})
	lt.Observe(Event{Type: EventCollision, AnimalID: 1, OtherID: 2})
	lt.Observe(Event{Type: EventRelocated, AnimalID: 2})
	lt.Observe(Event{Type: EventMoved, AnimalID: 99}) // unknown animal is ignored

	s := lt.Get(1)
	if s == nil {
		t.Fatal("animal 1 not tracked")
	}
	if s.Moves != 2 || s.Feedings != 1 || s.FoodEaten != 10 || s.Collisions != 1 {
		t.Errorf("animal 1 stats = %+v", *s)
	}
	if other := lt.Get(2); other.Collisions != 1 || other.Relocations != 1 {
		t.Errorf("animal 2 stats = %+v", *other)
	}

	if got := lt.Get(2).Lifespan(25); got != 20 {
		t.Errorf("lifespan = %d, want 20", got)
	}

	removed := lt.Remove(1)
	if removed == nil || removed.Moves != 2 {
		t.Error("Remove should return the stats")
	}
	if lt.Count() != 1 {
		t.Errorf("Count = %d, want 1", lt.Count())
	}
	if lt.Remove(1) != nil {
		t.Error("second Remove should return nil")
	}
}
