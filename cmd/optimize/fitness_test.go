package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/telemetry"
)

func TestParamVectorRoundtrip(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: extracted %v, default %v", pv.Specs[i].Name, got[i], want[i])
		}
	}

	norm := pv.Normalize(want)
	back := pv.Denormalize(norm)
	for i := range want {
		if math.Abs(back[i]-want[i]) > 1e-9 {
			t.Errorf("%s: roundtrip %v -> %v", pv.Specs[i].Name, want[i], back[i])
		}
	}
}

func TestApplyToConfigClampsAndRounds(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{12.6, 500, -3})

	if cfg.Life.FeedAmount != 13 {
		t.Errorf("feed_amount = %d, want 13", cfg.Life.FeedAmount)
	}
	if cfg.Demo.FeedEvery != 100 {
		t.Errorf("feed_every = %d, want 100", cfg.Demo.FeedEvery)
	}
	if cfg.Life.DigestEvery != 1 {
		t.Errorf("digest_every = %d, want 1", cfg.Life.DigestEvery)
	}
}

func TestRandomPopulation(t *testing.T) {
	cfg := config.Default()
	a := randomPopulation(rand.New(rand.NewSource(5)), cfg, 20)
	b := randomPopulation(rand.New(rand.NewSource(5)), cfg, 20)

	if len(a) != 20 {
		t.Fatalf("got %d animals, want 20", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("animal %d differs between equal seeds: %+v vs %+v", i, a[i], b[i])
		}
		s, err := components.ParseSpecies(a[i].Species)
		if err != nil {
			t.Fatalf("animal %d: %v", i, err)
		}
		body := components.BodyOf(s)
		if a[i].X < 0 || a[i].X+body.Width > cfg.Tank.Width || a[i].Y+body.Height > cfg.Tank.Height {
			t.Errorf("animal %d out of bounds: %+v", i, a[i])
		}
		if s.IsFish() && a[i].Y < cfg.Tank.Waterline {
			t.Errorf("fish %d above waterline: %+v", i, a[i])
		}
		if a[i].Age > cfg.Life.MaxAge/2 {
			t.Errorf("animal %d too old: %d", i, a[i].Age)
		}
	}
}

func TestComputeFitness(t *testing.T) {
	steady := []telemetry.WindowStats{
		{Fish: 2, FoodMean: 10},
		{Fish: 2, FoodMean: 10},
	}
	starving := []telemetry.WindowStats{
		{Fish: 2, FoodMean: 2},
		{Fish: 1, FoodMean: 1, Starvations: 1},
	}

	if q := computeQuality(steady); math.Abs(q-1) > 1e-9 {
		t.Errorf("steady quality = %v, want 1", q)
	}
	if f := computeFitness(steady); math.Abs(f-8) > 1e-9 {
		t.Errorf("steady fitness = %v, want 8", f)
	}
	if computeFitness(starving) < starvationPenalty {
		t.Errorf("starvation not penalized: %v", computeFitness(starving))
	}

	// Empty windows are ignored
	empty := []telemetry.WindowStats{{FoodMean: 0}}
	if f := computeFitness(empty); f != 0 {
		t.Errorf("empty fitness = %v, want 0", f)
	}
}

func TestEvaluateDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 10
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 60, []int64{1, 2}, 4, cfg)

	f := fe.Evaluate(pv.DefaultVector())
	if math.IsNaN(f) || f < 0 {
		t.Errorf("fitness = %v", f)
	}
	if q := fe.LastQuality(); q < 0 || q > 1 {
		t.Errorf("quality = %v outside [0,1]", q)
	}
}
