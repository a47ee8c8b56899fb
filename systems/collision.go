package systems

import (
	"math/rand"
)

// Pair is an unordered pair of overlapping occupants.
type Pair struct {
	A, B Occupant
}

// FindOverlaps returns every unordered pair of overlapping occupants.
// Pairs come out in input order (i < j), so a sorted input gives a stable result.
func FindOverlaps(occupants []Occupant) []Pair {
	var pairs []Pair
	for i := 0; i < len(occupants); i++ {
		for j := i + 1; j < len(occupants); j++ {
			if occupants[i].Rect.Overlaps(occupants[j].Rect) {
				pairs = append(pairs, Pair{A: occupants[i], B: occupants[j]})
			}
		}
	}
	return pairs
}

// Relocator moves colliding animals to random free spots below MinY.
type Relocator struct {
	Checker     *OccupancyChecker
	Rng         *rand.Rand
	MinY        int // Topmost row a relocated box may start on
	MaxAttempts int
}

// Relocation is the outcome of one relocation try.
type Relocation struct {
	From     Rect
	To       Rect
	Attempts int
	OK       bool
}

// Relocate draws up to MaxAttempts random positions for o and moves it to
// the first free one. On failure the occupant stays where it was.
func (r *Relocator) Relocate(o Occupant) Relocation {
	res := Relocation{From: o.Rect, To: o.Rect}

	maxX := r.Checker.Width() - o.Rect.W
	maxY := r.Checker.Height() - o.Rect.H
	if maxX < 0 || maxY < r.MinY {
		return res
	}

	for res.Attempts < r.MaxAttempts {
		res.Attempts++
		cand := Rect{
			X: r.Rng.Intn(maxX + 1),
			Y: r.MinY + r.Rng.Intn(maxY-r.MinY+1),
			W: o.Rect.W,
			H: o.Rect.H,
		}
		if r.Checker.IsFree(cand, o.E) {
			r.Checker.Move(o.E, o.Rect, cand)
			res.To = cand
			res.OK = true
			return res
		}
	}
	return res
}
