package policy

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper-bench/internal/mines"
)

// Heatmap scores every square of a board, row-major. Higher is a better
// guess.
type Heatmap []float64

func noise(width, height int, r *rand.Rand) Heatmap {
	h := make(Heatmap, width*height)
	for i := range h {
		h[i] = r.Float64()
	}
	return h
}

// Argmax returns the square with the highest score; ties go to the first.
func (h Heatmap) Argmax(width int) mines.Point {
	best := 0
	for i, v := range h {
		if v > h[best] {
			best = i
		}
	}
	return mines.Point{X: best % width, Y: best / width}
}

// subtract lowers the score of every square where mask is true by one and
// clips the result at zero.
func (h Heatmap) subtract(mask func(i int) bool) Heatmap {
	for i := range h {
		if mask(i) {
			h[i] = max(h[i]-1, 0)
		}
	}
	return h
}
