package mines

import "math/rand/v2"

// minefield is the hidden half of a board. It only exists once the first
// square has been opened.
type minefield struct {
	mines  []bool /* real mine points */
	counts []int8 /* mined neighbours per square */
}

// maxExclusion is the size of the largest area kept free of mines around the
// first click, which for boards at least 3 wide and high is the full 3x3.
func maxExclusion(width, height int) int {
	return min(3, width) * min(3, height)
}

func newMinefield(width, height, mineCount, startX, startY int, r *rand.Rand) *minefield {
	mines := make([]bool, width*height)

	/*
	 * Write down the list of possible mine locations: everything that is
	 * not x,y or within one square of it.
	 */
	candidates := make([]int, 0, width*height)
	for y := range height {
		for x := range width {
			if absDiff(startY, y) > 1 || absDiff(startX, x) > 1 {
				candidates = append(candidates, y*width+x)
			}
		}
	}

	/*
	 * Now pick n off the list at random. Every pick draws uniformly from the
	 * squares not chosen yet, so the final set is the same as drawing
	 * squares and rejecting repeats.
	 */
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	Log.Debug("placed mines",
		"width", width, "height", height, "mineCount", mineCount,
		"startX", startX, "startY", startY,
	)

	return &minefield{
		mines:  mines,
		counts: countAdjacent(mines, width, height),
	}
}

func countAdjacent(mines []bool, width, height int) []int8 {
	counts := make([]int8, len(mines))
	for y := range height {
		for x := range width {
			var v int8
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xx, yy := x+dx, y+dy
					if (dx != 0 || dy != 0) &&
						xx >= 0 && xx < width &&
						yy >= 0 && yy < height &&
						mines[yy*width+xx] {
						v++
					}
				}
			}
			counts[y*width+x] = v
		}
	}
	return counts
}
