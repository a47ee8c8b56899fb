package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	added              int
	moves              int
	feedings           int
	oldAgeDeaths       int
	starvations        int
	collisions         int
	relocations        int
	relocationFailures int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventAdded:
		c.added++
	case EventMoved:
		c.moves++
	case EventFed:
		c.feedings++
	case EventDied:
		c.oldAgeDeaths++
	case EventStarved:
		c.starvations++
	case EventCollision:
		c.collisions++
	case EventRelocated:
		c.relocations++
	case EventRelocationFailed:
		c.relocationFailures++
	}
}

// RecordAll counts a batch of events.
func (c *Collector) RecordAll(events []Event) {
	for _, ev := range events {
		c.Record(ev)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Population is a sample of the live animals taken at flush time.
type Population struct {
	Fish  int
	Crabs int
	Ages  []float64
	Food  []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	age := Summarize(pop.Ages)
	food := Summarize(pop.Food)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Fish:  pop.Fish,
		Crabs: pop.Crabs,

		Added:              c.added,
		Moves:              c.moves,
		Feedings:           c.feedings,
		OldAgeDeaths:       c.oldAgeDeaths,
		Starvations:        c.starvations,
		Collisions:         c.collisions,
		Relocations:        c.relocations,
		RelocationFailures: c.relocationFailures,

		AgeMean: age.Mean,
		AgeStd:  age.Std,
		AgeP10:  age.P10,
		AgeP50:  age.P50,
		AgeP90:  age.P90,

		FoodMean: food.Mean,
		FoodStd:  food.Std,
		FoodP10:  food.P10,
		FoodP50:  food.P50,
		FoodP90:  food.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.added = 0
	c.moves = 0
	c.feedings = 0
	c.oldAgeDeaths = 0
	c.starvations = 0
	c.collisions = 0
	c.relocations = 0
	c.relocationFailures = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
