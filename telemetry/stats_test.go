package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Distribution
	}{
		{"empty", nil, Distribution{}},
		{"single", []float64{7}, Distribution{Mean: 7, Std: 0, P10: 7, P50: 7, P90: 7}},
		{"constant", []float64{3, 3, 3, 3}, Distribution{Mean: 3, Std: 0, P10: 3, P50: 3, P90: 3}},
		{"two values", []float64{4, 2}, Distribution{Mean: 3, Std: 1, P10: 2, P50: 2, P90: 4}},
		{"five unsorted", []float64{5, 1, 4, 2, 3}, Distribution{Mean: 3, Std: math.Sqrt(2), P10: 1, P50: 3, P90: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			check := func(field string, got, want float64) {
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("%s = %v, want %v", field, got, want)
				}
			}
			check("mean", got.Mean, tt.want.Mean)
			check("std", got.Std, tt.want.Std)
			check("p10", got.P10, tt.want.P10)
			check("p50", got.P50, tt.want.P50)
			check("p90", got.P90, tt.want.P90)
		})
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.RecordAll([]Event{
		{Type: EventAdded},
		{Type: EventAdded},
		{Type: EventMoved},
		{Type: EventFed},
		{Type: EventStarved},
		{Type: EventDied},
		{Type: EventCollision},
		{Type: EventRelocated},
		{Type: EventRelocationFailed},
		{Type: EventRelocationFailed},
	})

	if c.ShouldFlush(9) {
		t.Error("should not flush before window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at window end")
	}

	stats := c.Flush(10, Population{Fish: 2, Crabs: 1, Ages: []float64{1, 2, 3}, Food: []float64{5, 5, 5}})

	if stats.Added != 2 || stats.Moves != 1 || stats.Feedings != 1 {
		t.Errorf("added/moves/feedings = %d/%d/%d, want 2/1/1", stats.Added, stats.Moves, stats.Feedings)
	}
	if stats.Starvations != 1 || stats.OldAgeDeaths != 1 || stats.Deaths() != 2 {
		t.Errorf("deaths = %d starved + %d old age, want 1 + 1", stats.Starvations, stats.OldAgeDeaths)
	}
	if stats.Collisions != 1 || stats.Relocations != 1 || stats.RelocationFailures != 2 {
		t.Errorf("collisions/relocations/failures = %d/%d/%d, want 1/1/2",
			stats.Collisions, stats.Relocations, stats.RelocationFailures)
	}
	if stats.Population() != 3 {
		t.Errorf("population = %d, want 3", stats.Population())
	}
	if stats.AgeMean != 2 || stats.FoodMean != 5 {
		t.Errorf("age_mean = %v food_mean = %v, want 2 and 5", stats.AgeMean, stats.FoodMean)
	}

	// Counters reset after flush
	next := c.Flush(20, Population{})
	if next.Added != 0 || next.RelocationFailures != 0 {
		t.Error("counters not reset after flush")
	}
	if next.WindowStartTick != 10 || next.WindowEndTick != 20 {
		t.Errorf("window = [%d,%d], want [10,20]", next.WindowStartTick, next.WindowEndTick)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventRelocationFailed.String() != "relocation_failed" {
		t.Errorf("got %q", EventRelocationFailed.String())
	}
	if EventType(200).String() != "unknown" {
		t.Errorf("out-of-range type = %q, want unknown", EventType(200).String())
	}
}
