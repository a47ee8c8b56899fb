package game

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())
	profile := g.perf.Close(stats.WindowEndTick)

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		slog.Info("tick_profile", "profile", profile)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(profile); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.opts.LogStats {
			bm.LogBookmark()
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// samplePopulation collects counts and age/food values of the live animals.
func (g *Game) samplePopulation() telemetry.Population {
	pop := telemetry.Population{Fish: g.fish, Crabs: g.crabs}
	query := g.animalFilter.Query()
	for query.Next() {
		_, _, _, _, vitals := query.Get()
		if !vitals.Alive {
			continue
		}
		pop.Ages = append(pop.Ages, float64(vitals.Age))
		pop.Food = append(pop.Food, float64(vitals.Food))
	}
	return pop
}
