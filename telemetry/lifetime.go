package telemetry

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int32

	Moves       int
	Feedings    int
	FoodEaten   int
	Collisions  int
	Relocations int
}

// Lifespan returns the number of ticks the animal has lived at currentTick.
func (s *LifetimeStats) Lifespan(currentTick int32) int32 {
	return currentTick - s.BirthTick
}

// LifetimeTracker manages per-animal lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a newly placed animal.
func (lt *LifetimeTracker) Register(animalID uint32, birthTick int32) {
	lt.stats[animalID] = &LifetimeStats{BirthTick: birthTick}
}

// Get returns the lifetime stats for an animal, or nil if not found.
func (lt *LifetimeTracker) Get(animalID uint32) *LifetimeStats {
	return lt.stats[animalID]
}

// Remove removes an animal's stats and returns them (for logging).
func (lt *LifetimeTracker) Remove(animalID uint32) *LifetimeStats {
	stats := lt.stats[animalID]
	delete(lt.stats, animalID)
	return stats
}

// Observe updates the per-animal counters from an event.
func (lt *LifetimeTracker) Observe(ev Event) {
	s := lt.stats[ev.AnimalID]
	if s == nil {
		return
	}
	switch ev.Type {
	case EventMoved:
		s.Moves++
	case EventFed:
		s.Feedings++
		s.FoodEaten += ev.Amount
	case EventCollision:
		s.Collisions++
		if other := lt.stats[ev.OtherID]; other != nil {
			other.Collisions++
		}
	case EventRelocated:
		s.Relocations++
	}
}

// Count returns the number of tracked animals.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
