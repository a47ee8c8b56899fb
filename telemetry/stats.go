package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Fish  int `csv:"fish"`
	Crabs int `csv:"crabs"`

	// Events during window
	Added              int `csv:"added"`
	Moves              int `csv:"moves"`
	Feedings           int `csv:"feedings"`
	OldAgeDeaths       int `csv:"old_age_deaths"`
	Starvations        int `csv:"starvations"`
	Collisions         int `csv:"collisions"`
	Relocations        int `csv:"relocations"`
	RelocationFailures int `csv:"relocation_failures"`

	// Age distribution (sampled at window end)
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Food distribution
	FoodMean float64 `csv:"food_mean"`
	FoodStd  float64 `csv:"food_std"`
	FoodP10  float64 `csv:"food_p10"`
	FoodP50  float64 `csv:"food_p50"`
	FoodP90  float64 `csv:"food_p90"`
}

// Population returns the total live animal count.
func (s WindowStats) Population() int {
	return s.Fish + s.Crabs
}

// Deaths returns the deaths of every cause during the window.
func (s WindowStats) Deaths() int {
	return s.OldAgeDeaths + s.Starvations
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Summarize computes mean, population standard deviation and empirical
// percentiles. An empty sample yields all zeros.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("fish", s.Fish),
		slog.Int("crabs", s.Crabs),
		slog.Int("added", s.Added),
		slog.Int("moves", s.Moves),
		slog.Int("feedings", s.Feedings),
		slog.Int("old_age_deaths", s.OldAgeDeaths),
		slog.Int("starvations", s.Starvations),
		slog.Int("collisions", s.Collisions),
		slog.Int("relocations", s.Relocations),
		slog.Int("relocation_failures", s.RelocationFailures),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("food_mean", s.FoodMean),
		slog.Float64("food_p10", s.FoodP10),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"fish", s.Fish,
		"crabs", s.Crabs,
		"added", s.Added,
		"moves", s.Moves,
		"feedings", s.Feedings,
		"old_age_deaths", s.OldAgeDeaths,
		"starvations", s.Starvations,
		"collisions", s.Collisions,
		"relocations", s.Relocations,
		"relocation_failures", s.RelocationFailures,
		"age_mean", s.AgeMean,
		"age_std", s.AgeStd,
		"age_p10", s.AgeP10,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
		"food_mean", s.FoodMean,
		"food_std", s.FoodStd,
		"food_p10", s.FoodP10,
		"food_p50", s.FoodP50,
		"food_p90", s.FoodP90,
	)
}
