package mines

import (
	"math/rand/v2"
	"testing"
)

func TestMinefieldGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{name: "9x9(10)", width: 9, height: 9, mineCount: 10},
		{name: "9x9(72)", width: 9, height: 9, mineCount: 72},
		{name: "16x16(40)", width: 16, height: 16, mineCount: 40},
		{name: "30x16(99)", width: 30, height: 16, mineCount: 99},
		{name: "1x7(4)", width: 1, height: 7, mineCount: 4},
		{name: "2x2(0)", width: 2, height: 2, mineCount: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for sx := range test.width {
				for sy := range test.height {
					f := newMinefield(test.width, test.height, test.mineCount, sx, sy, r)

					placed := 0
					for i, mine := range f.mines {
						if !mine {
							continue
						}
						placed++
						x, y := i%test.width, i/test.width
						if absDiff(x, sx) <= 1 && absDiff(y, sy) <= 1 {
							t.Errorf("%s @ %d:%d: mine at %d:%d inside the start area",
								test.name, sx, sy, x, y)
						}
					}
					if placed != test.mineCount {
						t.Errorf("%s @ %d:%d: have %d mines, want %d",
							test.name, sx, sy, placed, test.mineCount)
					}
				}
			}
		})
	}
}

func TestCountAdjacent(t *testing.T) {
	// * . .
	// . . *
	mines := []bool{
		true, false, false,
		false, false, true,
	}
	want := []int8{
		0, 2, 1,
		1, 2, 0,
	}
	have := countAdjacent(mines, 3, 2)
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("square %d: have %d, want %d", i, have[i], want[i])
		}
	}
}

func TestMaxExclusion(t *testing.T) {
	testCases := []struct {
		width, height, want int
	}{
		{9, 9, 9},
		{2, 2, 4},
		{1, 1, 1},
		{1, 10, 3},
		{30, 2, 6},
	}
	for _, tc := range testCases {
		if have := maxExclusion(tc.width, tc.height); have != tc.want {
			t.Errorf("maxExclusion(%d, %d): have %d, want %d",
				tc.width, tc.height, have, tc.want)
		}
	}
}
