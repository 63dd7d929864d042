package policy

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper-bench/internal/mines"
)

// Random guesses any covered square.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Heatmap(board mines.Fair, r *rand.Rand) Heatmap {
	v := board.Visible()
	return noise(v.Width, v.Height, r).subtract(func(i int) bool {
		return !v.Cells[i].IsHidden()
	})
}

// Cheating guesses any covered square that is not a mine.
type Cheating struct{}

func (Cheating) Name() string { return "cheating" }

func (Cheating) Heatmap(board mines.Oracle, r *rand.Rand) Heatmap {
	h := noise(board.Width(), board.Height(), r)
	if !board.Placed() {
		return h
	}
	v := board.Visible()
	return h.subtract(func(i int) bool {
		return !v.Cells[i].IsHidden()
	}).subtract(func(i int) bool {
		return board.Mine(i%v.Width, i/v.Width)
	})
}
