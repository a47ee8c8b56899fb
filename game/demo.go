package game

import "github.com/pthm-cable/aquarium/telemetry"

// Cycle schedules feeding and digestion around ticks. Zero disables either.
type Cycle struct {
	FeedEvery   int
	DigestEvery int
}

// DemoCycle returns the feeding schedule from the config.
func (g *Game) DemoCycle() Cycle {
	return Cycle{FeedEvery: g.cfg.Demo.FeedEvery, DigestEvery: g.cfg.Life.DigestEvery}
}

// Step feeds and digests when due, then ticks once. Feeding is checked
// against the number of completed ticks, so a fresh tank is fed first.
// It returns the events of all three operations in order.
func (g *Game) Step(c Cycle) []telemetry.Event {
	var events []telemetry.Event
	if c.FeedEvery > 0 && int(g.tick)%c.FeedEvery == 0 {
		g.FeedAll(g.cfg.Life.FeedAmount)
		events = append(events, g.events...)
	}
	if c.DigestEvery > 0 && g.tick > 0 && int(g.tick)%c.DigestEvery == 0 {
		g.Digest()
		events = append(events, g.events...)
	}
	g.Tick()
	return append(events, g.events...)
}

// RunDemo runs the configured number of demo steps. observe, if non-nil, is
// called after every tick.
func (g *Game) RunDemo(observe func(tick int32)) {
	cycle := g.DemoCycle()
	for i := 0; i < g.cfg.Demo.Ticks; i++ {
		g.Step(cycle)
		if observe != nil {
			observe(g.tick)
		}
	}
}
