package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/game"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Fitness weights. A single starvation outweighs any amount of saved food.
const (
	starvationPenalty = 1000.0
	qualityBonus      = 0.2
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	animals    int
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each seed places up to
// animals random animals.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, animals int, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		animals:    animals,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			results[idx] = seedResult{
				fitness: computeFitness(result.windowStats),
				quality: computeQuality(result.windowStats),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run on the feeding
// schedule described by x.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := copyConfig(fe.baseConfig)
	fe.params.ApplyToConfig(cfg, x)
	cfg.Population = randomPopulation(rand.New(rand.NewSource(seed)), cfg, fe.animals)

	result := &runResult{}
	g, err := game.New(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Close()

	// Overlapping random placements are skipped
	_ = g.SpawnPopulation()

	cycle := g.DemoCycle()
	for g.CurrentTick() < fe.maxTicks && g.Count() > 0 {
		g.Step(cycle)
	}
	return result
}

// randomPopulation draws n animals of random species, age and position.
// Fish are placed at or below the waterline.
func randomPopulation(rng *rand.Rand, cfg *config.Config, n int) []config.AnimalConfig {
	species := components.AllSpecies()
	pop := make([]config.AnimalConfig, 0, n)
	for i := 0; i < n; i++ {
		s := species[rng.Intn(len(species))]
		body := components.BodyOf(s)
		minY := 0
		if s.IsFish() {
			minY = cfg.Tank.Waterline
		}
		maxX := cfg.Tank.Width - body.Width
		maxY := cfg.Tank.Height - body.Height
		if maxX < 0 || maxY < minY {
			continue
		}
		facing := "right"
		if rng.Intn(2) == 0 {
			facing = "left"
		}
		pop = append(pop, config.AnimalConfig{
			Name:    s.String(),
			Species: s.Code(),
			Age:     rng.Intn(cfg.Life.MaxAge/2 + 1),
			X:       rng.Intn(maxX + 1),
			Y:       minY + rng.Intn(maxY-minY+1),
			FacingH: facing,
		})
	}
	return pop
}

// copyConfig creates a deep copy of the base config.
func copyConfig(base *config.Config) *config.Config {
	cfg := *base
	cfg.Population = append([]config.AnimalConfig(nil), base.Population...)
	return &cfg
}

// computeFitness scores a run (lower = better): heavy penalty per starvation
// plus the average food held, discounted by up to 20% for a steady supply.
func computeFitness(windows []telemetry.WindowStats) float64 {
	var starved int
	for _, w := range windows {
		starved += w.Starvations
	}
	food := foodSeries(windows)
	meanFood := 0.0
	if len(food) > 0 {
		meanFood = stat.Mean(food, nil)
	}
	return starvationPenalty*float64(starved) + meanFood*(1.0-qualityBonus*computeQuality(windows))
}

// computeQuality computes feeding quality in [0, 1] from window stats:
// 1 when every window ends with the same average food, falling with variation.
func computeQuality(windows []telemetry.WindowStats) float64 {
	food := foodSeries(windows)
	if len(food) < 2 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(food, nil)
	if mean == 0 {
		return 0
	}
	cv := std / mean
	return math.Exp(-cv * cv)
}

// foodSeries returns the mean food of every window with live animals.
func foodSeries(windows []telemetry.WindowStats) []float64 {
	food := make([]float64, 0, len(windows))
	for _, w := range windows {
		if w.Population() > 0 {
			food = append(food, w.FoodMean)
		}
	}
	return food
}
