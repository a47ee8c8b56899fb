package components

// DeathCause records why an animal stopped being alive.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseOldAge
	CauseStarvation
)

// Vitals tracks an animal's age, food and life state.
// Alive only ever goes from true to false.
type Vitals struct {
	Age   int
	Food  int
	Alive bool
	Cause DeathCause
}

// NewVitals returns the vitals of a freshly placed animal.
func NewVitals(age, food int) Vitals {
	return Vitals{Age: age, Food: food, Alive: true}
}

// AdvanceAge ages the animal by one. Reports whether this call killed it.
func (v *Vitals) AdvanceAge(maxAge int) bool {
	if !v.Alive {
		return false
	}
	v.Age++
	return v.CheckAge(maxAge)
}

// CheckAge kills the animal if it has reached maxAge. Reports whether this
// call killed it.
func (v *Vitals) CheckAge(maxAge int) bool {
	if !v.Alive || v.Age < maxAge {
		return false
	}
	return v.kill(CauseOldAge)
}

// ConsumeFood uses up one unit of food. Reports whether the animal starved.
// Food never goes below zero.
func (v *Vitals) ConsumeFood() bool {
	if !v.Alive {
		return false
	}
	v.Food--
	if v.Food <= 0 {
		v.Food = 0
		return v.kill(CauseStarvation)
	}
	return false
}

// Feed adds food. Dead animals and non-positive amounts are ignored.
func (v *Vitals) Feed(amount int) {
	if !v.Alive || amount <= 0 {
		return
	}
	v.Food += amount
}

func (v *Vitals) kill(cause DeathCause) bool {
	if !v.Alive {
		return false
	}
	v.Alive = false
	v.Cause = cause
	return true
}

// Animal bundles identity and species.
type Animal struct {
	ID      uint32 // Engine-assigned, increasing; the deterministic iteration key
	Name    string // Display only, not unique
	Species Species
}
