package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a tank tick.
type Phase uint8

const (
	PhaseAging Phase = iota
	PhaseOccupancy
	PhaseRelocation
	PhaseCleanup

	numPhases
)

var phaseNames = [numPhases]string{"aging", "occupancy", "relocation", "cleanup"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases returns the tick phases in execution order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// TickProfiler times the phases of every tick in the current stats window
// and counts the random draws spent relocating crabs.
// Windows are closed by the game when it flushes window stats.
type TickProfiler struct {
	now func() time.Time

	ticks    []float64 // Tick durations in microseconds
	phases   [numPhases]time.Duration
	attempts int
	relocs   int
	failures int

	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inTick     bool

	last TickProfile
}

// NewTickProfiler creates a profiler reading the wall clock.
func NewTickProfiler() *TickProfiler {
	return &TickProfiler{now: time.Now}
}

// Begin starts timing a tick.
func (p *TickProfiler) Begin() {
	t := p.now()
	p.tickStart, p.phaseStart = t, t
	p.phase = numPhases
	p.inTick = true
}

// Enter closes the running phase, if any, and starts timing ph.
func (p *TickProfiler) Enter(ph Phase) {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.phase = ph
	p.phaseStart = t
}

// End closes the running phase and records the tick.
func (p *TickProfiler) End() {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.ticks = append(p.ticks, float64(t.Sub(p.tickStart).Microseconds()))
	p.inTick = false
}

func (p *TickProfiler) closePhase(t time.Time) {
	if p.phase < numPhases {
		p.phases[p.phase] += t.Sub(p.phaseStart)
	}
}

// Relocated records one relocation try of a crab.
func (p *TickProfiler) Relocated(attempts int, ok bool) {
	p.attempts += attempts
	p.relocs++
	if !ok {
		p.failures++
	}
}

// Current summarizes the open window, or returns the last closed one while
// the open window has no ticks yet.
func (p *TickProfiler) Current() TickProfile {
	if len(p.ticks) == 0 {
		return p.last
	}
	return p.summarize(0)
}

// Close summarizes the open window as ending at windowEnd and starts a new one.
func (p *TickProfiler) Close(windowEnd int32) TickProfile {
	tp := p.summarize(windowEnd)
	p.last = tp
	p.ticks = p.ticks[:0]
	p.phases = [numPhases]time.Duration{}
	p.attempts, p.relocs, p.failures = 0, 0, 0
	return tp
}

func (p *TickProfiler) summarize(windowEnd int32) TickProfile {
	tp := TickProfile{
		WindowEnd:          windowEnd,
		Ticks:              len(p.ticks),
		RelocationAttempts: p.attempts,
		Relocations:        p.relocs,
		RelocationFailures: p.failures,
	}
	if tp.Ticks == 0 {
		return tp
	}

	sorted := append([]float64(nil), p.ticks...)
	sort.Float64s(sorted)
	us := func(v float64) time.Duration { return time.Duration(v) * time.Microsecond }
	tp.Mean = us(stat.Mean(sorted, nil))
	tp.P50 = us(stat.Quantile(0.5, stat.Empirical, sorted, nil))
	tp.P95 = us(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	tp.Max = us(sorted[len(sorted)-1])

	var total time.Duration
	for _, d := range p.phases {
		total += d
	}
	if total > 0 {
		for i, d := range p.phases {
			tp.Share[i] = float64(d) / float64(total)
		}
	}
	return tp
}

// TickProfile is the timing summary of one stats window.
type TickProfile struct {
	WindowEnd int32
	Ticks     int

	Mean, P50, P95, Max time.Duration

	// Fraction of measured phase time per phase, indexed by Phase
	Share [numPhases]float64

	RelocationAttempts int // Random positions drawn
	Relocations        int // Crabs that needed a new spot
	RelocationFailures int
}

// TicksPerSecond is the throughput implied by the mean tick time.
func (tp TickProfile) TicksPerSecond() float64 {
	if tp.Mean <= 0 {
		return 0
	}
	return float64(time.Second) / float64(tp.Mean)
}

// AttemptsPerRelocation is the mean number of draws per relocated crab.
func (tp TickProfile) AttemptsPerRelocation() float64 {
	if tp.Relocations == 0 {
		return 0
	}
	return float64(tp.RelocationAttempts) / float64(tp.Relocations)
}

// FailureRate is the fraction of relocations that found no free spot.
func (tp TickProfile) FailureRate() float64 {
	if tp.Relocations == 0 {
		return 0
	}
	return float64(tp.RelocationFailures) / float64(tp.Relocations)
}

// LogValue implements slog.LogValuer.
func (tp TickProfile) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("window_end", int(tp.WindowEnd)),
		slog.Int("ticks", tp.Ticks),
		slog.Int64("mean_us", tp.Mean.Microseconds()),
		slog.Int64("p95_us", tp.P95.Microseconds()),
	}
	for _, ph := range Phases() {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", tp.Share[ph]*100))
	}
	if tp.Relocations > 0 {
		attrs = append(attrs,
			slog.Float64("attempts_per_relocation", tp.AttemptsPerRelocation()),
			slog.Float64("relocation_failure_rate", tp.FailureRate()),
		)
	}
	return slog.GroupValue(attrs...)
}

// ProfileRow is one line of perf.csv.
type ProfileRow struct {
	WindowEnd          int32   `csv:"window_end"`
	Ticks              int     `csv:"ticks"`
	MeanUS             int64   `csv:"mean_tick_us"`
	P50US              int64   `csv:"p50_tick_us"`
	P95US              int64   `csv:"p95_tick_us"`
	MaxUS              int64   `csv:"max_tick_us"`
	AgingPct           float64 `csv:"aging_pct"`
	OccupancyPct       float64 `csv:"occupancy_pct"`
	RelocationPct      float64 `csv:"relocation_pct"`
	CleanupPct         float64 `csv:"cleanup_pct"`
	RelocationAttempts int     `csv:"relocation_attempts"`
	Relocations        int     `csv:"relocations"`
	RelocationFailures int     `csv:"relocation_failures"`
}

// Row flattens the profile for CSV output.
func (tp TickProfile) Row() ProfileRow {
	return ProfileRow{
		WindowEnd:          tp.WindowEnd,
		Ticks:              tp.Ticks,
		MeanUS:             tp.Mean.Microseconds(),
		P50US:              tp.P50.Microseconds(),
		P95US:              tp.P95.Microseconds(),
		MaxUS:              tp.Max.Microseconds(),
		AgingPct:           tp.Share[PhaseAging] * 100,
		OccupancyPct:       tp.Share[PhaseOccupancy] * 100,
		RelocationPct:      tp.Share[PhaseRelocation] * 100,
		CleanupPct:         tp.Share[PhaseCleanup] * 100,
		RelocationAttempts: tp.RelocationAttempts,
		Relocations:        tp.Relocations,
		RelocationFailures: tp.RelocationFailures,
	}
}
