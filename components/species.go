package components

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSpecies is returned for species codes outside the closed set.
var ErrUnknownSpecies = errors.New("unknown species")

// Species identifies the kind of animal. Size, sprite and vertical mobility all
// derive from it.
type Species uint8

const (
	PlainFish Species = iota
	Scalar
	Moly
	PlainCrab
	Ocypode
	Shrimp
	numSpecies
)

// Category groups species by how they move.
type Category uint8

const (
	CategoryFish Category = iota // Swims anywhere below the waterline
	CategoryCrab                 // Walks along the bottom, horizontal moves only
)

type speciesInfo struct {
	code     string
	name     string
	category Category
	width    int
	height   int
	sprite   Sprite
}

// The plain variants keep the 8x8 default box while their glyphs are smaller.
var speciesTable = [numSpecies]speciesInfo{
	PlainFish: {
		code: "fi", name: "fish", category: CategoryFish, width: 8, height: 8,
		sprite: Sprite{
			`  ___  `,
			`><___o>`,
			`   v   `,
		},
	},
	Scalar: {
		code: "sc", name: "scalar", category: CategoryFish, width: 8, height: 5,
		sprite: Sprite{
			`******  `,
			`    *** `,
			`  ******`,
			`    *** `,
			`******  `,
		},
	},
	Moly: {
		code: "mo", name: "moly", category: CategoryFish, width: 8, height: 3,
		sprite: Sprite{
			`*   *** `,
			`********`,
			`*   *** `,
		},
	},
	PlainCrab: {
		code: "cr", name: "crab", category: CategoryCrab, width: 8, height: 8,
		sprite: Sprite{
			`\/ o \/`,
			` (___) `,
			` /   \ `,
		},
	},
	Ocypode: {
		code: "oc", name: "ocypode", category: CategoryCrab, width: 7, height: 4,
		sprite: Sprite{
			` *   * `,
			`  ***  `,
			`*******`,
			`*     *`,
		},
	},
	Shrimp: {
		code: "sh", name: "shrimp", category: CategoryCrab, width: 7, height: 3,
		sprite: Sprite{
			`    * *`,
			`****** `,
			`  * *  `,
		},
	},
}

// ParseSpecies resolves a two-letter species code, case-insensitively.
func ParseSpecies(code string) (Species, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	for i := range speciesTable {
		if speciesTable[i].code == c {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpecies, code)
}

// AllSpecies returns every species in declaration order.
func AllSpecies() []Species {
	out := make([]Species, numSpecies)
	for i := range out {
		out[i] = Species(i)
	}
	return out
}

func (s Species) info() speciesInfo {
	if s >= numSpecies {
		return speciesInfo{code: "??", name: "unknown"}
	}
	return speciesTable[s]
}

// Valid reports whether s is one of the declared species.
func (s Species) Valid() bool { return s < numSpecies }

// String returns the species name.
func (s Species) String() string { return s.info().name }

// Code returns the two-letter species code.
func (s Species) Code() string { return s.info().code }

// Category returns whether the species is a fish or a crab.
func (s Species) Category() Category { return s.info().category }

// IsFish reports whether the species may move vertically.
func (s Species) IsFish() bool { return s.Valid() && s.Category() == CategoryFish }

// IsCrab reports whether the species takes part in crab collision resolution.
func (s Species) IsCrab() bool { return s.Valid() && s.Category() == CategoryCrab }

// Sprite returns the species glyph block, mirrored when facing left.
// The returned sprite is a copy and may be modified by the caller.
func (s Species) Sprite(h Horizontal) Sprite {
	sp := s.info().sprite
	if h == Left {
		return sp.Mirror()
	}
	return sp.Clone()
}

// String returns the category name.
func (c Category) String() string {
	if c == CategoryCrab {
		return "crab"
	}
	return "fish"
}
