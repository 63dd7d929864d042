package policy

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper-bench/internal/mines"
)

// Logic opens squares it can prove safe from single numbers and otherwise
// guesses among the squares it has not proven to be mines.
//
// Deduction runs to a fixed point: a number whose covered neighbours all
// have to be mines marks them, and a number that already touches as many
// marked mines as it shows clears its remaining covered neighbours.
type Logic struct{}

func (Logic) Name() string { return "logic" }

const (
	unknownSquare = iota
	safeSquare
	mineSquare
)

func (Logic) Heatmap(board mines.Fair, r *rand.Rand) Heatmap {
	v := board.Visible()
	known := deduce(v)

	h := noise(v.Width, v.Height, r)
	for i, c := range v.Cells {
		switch {
		case !c.IsHidden() || known[i] == mineSquare:
			h[i] = 0
		case known[i] == safeSquare:
			h[i] = 1
		default:
			/* keep guesses strictly below proven squares */
			h[i] *= 0.5
		}
	}
	return h
}

func deduce(v mines.View) []int {
	known := make([]int, len(v.Cells))
	neighbours := func(i int, f func(j int)) {
		x, y := i%v.Width, i/v.Width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := x+dx, y+dy
				if (dx != 0 || dy != 0) &&
					xx >= 0 && xx < v.Width &&
					yy >= 0 && yy < v.Height {
					f(yy*v.Width + xx)
				}
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for i, c := range v.Cells {
			n, ok := c.Count()
			if !ok || n == 0 {
				continue
			}
			var covered, marked int
			neighbours(i, func(j int) {
				if v.Cells[j].IsHidden() {
					covered++
					if known[j] == mineSquare {
						marked++
					}
				}
			})
			switch {
			case covered == n:
				neighbours(i, func(j int) {
					if v.Cells[j].IsHidden() && known[j] != mineSquare {
						known[j] = mineSquare
						changed = true
					}
				})
			case marked == n:
				neighbours(i, func(j int) {
					if v.Cells[j].IsHidden() && known[j] == unknownSquare {
						known[j] = safeSquare
						changed = true
					}
				})
			}
		}
	}
	return known
}
