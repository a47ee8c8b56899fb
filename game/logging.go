package game

import (
	"bufio"
	"io"
	"log/slog"
)

// PrintBoard writes the board rows followed by a blank line.
func (g *Game) PrintBoard(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range g.Snapshot() {
		bw.WriteString(row)
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// PrintAll writes one line per live animal.
func (g *Game) PrintAll(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range g.Describe() {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// LogWorldState logs a summary of the tank.
func (g *Game) LogWorldState() {
	var minFood, maxFood, oldest int
	first := true
	for _, a := range g.Animals() {
		if first || a.Food < minFood {
			minFood = a.Food
		}
		if a.Food > maxFood {
			maxFood = a.Food
		}
		if a.Age > oldest {
			oldest = a.Age
		}
		first = false
	}

	slog.Info("world_state",
		"tick", g.tick,
		"fish", g.fish,
		"crabs", g.crabs,
		"min_food", minFood,
		"max_food", maxFood,
		"oldest", oldest,
	)
}
