// Command optimize searches for the feeding schedule that keeps a randomly
// stocked tank alive on the least food.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/aquarium/config"
)

// EvalRecord is one row of optimize_log.csv.
type EvalRecord struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	Quality     float64 `csv:"quality"`
	FeedAmount  float64 `csv:"feed_amount"`
	FeedEvery   float64 `csv:"feed_every"`
	DigestEvery float64 `csv:"digest_every"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 200, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 4, "Number of random tanks per evaluation")
	animals := flag.Int("animals", 6, "Animals drawn per random tank")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Skipped random placements would flood the log
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	config.MustInit(*configPath)
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, *animals, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		rec := []EvalRecord{{
			Eval:        evalCount,
			Fitness:     fitness,
			Quality:     evaluator.LastQuality(),
			FeedAmount:  clamped[0],
			FeedEvery:   clamped[1],
			DigestEvery: clamped[2],
		}}
		var werr error
		if evalCount == 1 {
			werr = gocsv.Marshal(rec, logFile)
		} else {
			werr = gocsv.MarshalWithoutHeaders(rec, logFile)
		}
		if werr != nil {
			log.Printf("failed to log evaluation: %v", werr)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
		fmt.Printf("Eval %d/%d: fitness=%.2f quality=%.2f (best=%.2f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, fitness, evaluator.LastQuality(), bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Tanks per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.2f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.0f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := copyConfig(baseCfg)
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
