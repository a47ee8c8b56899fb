package telemetry

import (
	"math"
	"testing"
	"time"
)

// stepClock advances by a fixed step every time it is read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newSteppedProfiler(step time.Duration) *TickProfiler {
	c := &stepClock{t: time.Unix(0, 0), step: step}
	p := NewTickProfiler()
	p.now = c.now
	return p
}

func TestTickProfilerPhaseShares(t *testing.T) {
	p := newSteppedProfiler(time.Millisecond)

	// Begin, Enter(aging), Enter(relocation), End: aging and relocation each
	// span one clock read, the tick spans three.
	for i := 0; i < 4; i++ {
		p.Begin()
		p.Enter(PhaseAging)
		p.Enter(PhaseRelocation)
		p.End()
	}

	tp := p.Current()
	if tp.Ticks != 4 {
		t.Fatalf("Ticks = %d, want 4", tp.Ticks)
	}
	if tp.Mean != 3*time.Millisecond || tp.Max != 3*time.Millisecond {
		t.Errorf("Mean/Max = %v/%v, want 3ms", tp.Mean, tp.Max)
	}
	if math.Abs(tp.Share[PhaseAging]-0.5) > 1e-9 || math.Abs(tp.Share[PhaseRelocation]-0.5) > 1e-9 {
		t.Errorf("shares = %v, want aging and relocation at 0.5", tp.Share)
	}
	if tp.Share[PhaseCleanup] != 0 {
		t.Errorf("cleanup share = %v, want 0", tp.Share[PhaseCleanup])
	}
	if got := tp.TicksPerSecond(); math.Abs(got-1000.0/3) > 1e-6 {
		t.Errorf("TicksPerSecond = %v", got)
	}
}

func TestTickProfilerQuantiles(t *testing.T) {
	p := newSteppedProfiler(time.Millisecond)

	// Tick i spends i+1 reads in aging
	for i := 0; i < 20; i++ {
		p.Begin()
		p.Enter(PhaseAging)
		for j := 0; j < i; j++ {
			p.now()
		}
		p.End()
	}

	tp := p.Current()
	if tp.Max != 21*time.Millisecond {
		t.Errorf("Max = %v, want 21ms", tp.Max)
	}
	if tp.P50 > tp.P95 || tp.P95 > tp.Max {
		t.Errorf("quantiles out of order: p50 %v p95 %v max %v", tp.P50, tp.P95, tp.Max)
	}
	if tp.P50 != 11*time.Millisecond {
		t.Errorf("P50 = %v, want 11ms", tp.P50)
	}
}

func TestTickProfilerRelocations(t *testing.T) {
	p := newSteppedProfiler(time.Microsecond)
	p.Relocated(3, true)
	p.Relocated(10, false)
	p.Relocated(2, true)
	p.Relocated(10, false)

	p.Begin()
	p.End()
	tp := p.Current()

	if tp.Relocations != 4 || tp.RelocationFailures != 2 || tp.RelocationAttempts != 25 {
		t.Errorf("relocations = %+v", tp)
	}
	if got := tp.AttemptsPerRelocation(); got != 6.25 {
		t.Errorf("AttemptsPerRelocation = %v, want 6.25", got)
	}
	if got := tp.FailureRate(); got != 0.5 {
		t.Errorf("FailureRate = %v, want 0.5", got)
	}
}

func TestTickProfilerCloseStartsNewWindow(t *testing.T) {
	p := newSteppedProfiler(time.Millisecond)

	if tp := p.Current(); tp.Ticks != 0 || tp.TicksPerSecond() != 0 || tp.FailureRate() != 0 {
		t.Errorf("empty profiler = %+v", tp)
	}

	p.Begin()
	p.Enter(PhaseCleanup)
	p.End()
	p.Relocated(1, true)

	closed := p.Close(20)
	if closed.WindowEnd != 20 || closed.Ticks != 1 || closed.Relocations != 1 {
		t.Errorf("closed window = %+v", closed)
	}

	// Until a new tick lands the last window stays visible
	if got := p.Current(); got != closed {
		t.Errorf("Current after Close = %+v, want %+v", got, closed)
	}

	p.Begin()
	p.End()
	next := p.Current()
	if next.Ticks != 1 || next.Relocations != 0 || next.Share[PhaseCleanup] != 0 {
		t.Errorf("new window carried old data: %+v", next)
	}
}

func TestTickProfilerIgnoresPhaseOutsideTick(t *testing.T) {
	p := newSteppedProfiler(time.Millisecond)
	p.Enter(PhaseAging)
	p.End()
	if tp := p.Current(); tp.Ticks != 0 {
		t.Errorf("Ticks = %d, want 0", tp.Ticks)
	}
}

func TestProfileRow(t *testing.T) {
	tp := TickProfile{
		WindowEnd:          40,
		Ticks:              20,
		Mean:               1500 * time.Microsecond,
		Relocations:        2,
		RelocationFailures: 1,
	}
	tp.Share[PhaseRelocation] = 0.25

	row := tp.Row()
	if row.WindowEnd != 40 || row.Ticks != 20 || row.MeanUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.RelocationPct != 25 {
		t.Errorf("RelocationPct = %v, want 25", row.RelocationPct)
	}
	if row.RelocationFailures != 1 {
		t.Errorf("RelocationFailures = %d, want 1", row.RelocationFailures)
	}
}

func TestPhaseNames(t *testing.T) {
	want := []string{"aging", "occupancy", "relocation", "cleanup"}
	got := Phases()
	if len(got) != len(want) {
		t.Fatalf("Phases() = %v", got)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("phase %d = %q, want %q", i, got[i], want[i])
		}
	}
	if Phase(99).String() != "unknown" {
		t.Error("out-of-range phase should be unknown")
	}
}
