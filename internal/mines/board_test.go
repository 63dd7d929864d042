package mines

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// boardWith builds a board with a fixed layout, '*' marking mines.
func boardWith(t *testing.T, rows ...string) *Board {
	t.Helper()
	height := len(rows)
	width := len(strings.Fields(rows[0]))
	mines := make([]bool, 0, width*height)
	for _, row := range rows {
		for _, c := range strings.Fields(row) {
			mines = append(mines, c == "*")
		}
	}
	b := &Board{
		width:   width,
		height:  height,
		exposed: make([]bool, width*height),
		rnd:     rand.New(rand.NewPCG(1, 2)),
		field: &minefield{
			mines:  mines,
			counts: countAdjacent(mines, width, height),
		},
	}
	for _, m := range mines {
		if m {
			b.mineCount++
		}
	}
	return b
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name                     string
		width, height, mineCount int
		err                      error
	}{
		{"beginner", 9, 9, 10, nil},
		{"zero width", 0, 9, 0, ErrInvalidDimensions},
		{"negative height", 9, -1, 0, ErrInvalidDimensions},
		{"negative mines", 9, 9, -1, ErrNegativeMineCount},
		{"full board", 9, 9, 72, nil},
		{"overfull board", 9, 9, 73, ErrTooManyMines},
		{"3x3 with a mine", 3, 3, 1, ErrTooManyMines},
		{"2x2 empty", 2, 2, 0, nil},
		{"single square", 1, 1, 0, nil},
		{"largest board", MaxArea, 1, 0, nil},
		{"over maximum area", MaxArea/2 + 1, 2, 0, ErrInvalidDimensions},
		{"area overflows int", 1 << 31, 1 << 31, 0, ErrInvalidDimensions},
		{"huge width", math.MaxInt, 1, 0, ErrInvalidDimensions},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := New(tc.width, tc.height, tc.mineCount, nil)
			if !errors.Is(err, tc.err) {
				t.Fatalf("have error %v, want %v", err, tc.err)
			}
			if err != nil {
				return
			}
			if b.Width() != tc.width || b.Height() != tc.height || b.MineCount() != tc.mineCount {
				t.Fatalf("have %dx%d(%d), want %dx%d(%d)",
					b.Width(), b.Height(), b.MineCount(),
					tc.width, tc.height, tc.mineCount)
			}
		})
	}
}

func TestFreshBoard(t *testing.T) {
	b, err := New(16, 16, 40, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if b.Placed() {
		t.Fatal("mines placed before the first reveal")
	}
	if b.Lost() || b.Won() || b.IsOver() {
		t.Fatalf("lost=%v won=%v over=%v before the first reveal", b.Lost(), b.Won(), b.IsOver())
	}
	v := b.Visible()
	if v.Hidden() != 16*16 {
		t.Fatalf("have %d hidden cells, want %d", v.Hidden(), 16*16)
	}
}

func TestFirstRevealIsSafe(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for _, p := range []struct{ w, h, m int }{{9, 9, 10}, {16, 16, 40}, {30, 16, 99}, {9, 9, 72}} {
		for x := range p.w {
			for y := range p.h {
				b, err := New(p.w, p.h, p.m, r)
				if err != nil {
					t.Fatal(err)
				}
				if o := b.Reveal(x, y); o != Valid {
					t.Fatalf("%dx%d(%d) @ %d:%d: have %v", p.w, p.h, p.m, x, y, o)
				}
				if b.Lost() {
					t.Fatalf("%dx%d(%d) @ %d:%d: lost on the first reveal", p.w, p.h, p.m, x, y)
				}
				if n, ok := b.Visible().At(x, y).Count(); !ok || n != 0 {
					t.Fatalf("%dx%d(%d) @ %d:%d: first square shows %d (ok=%v)", p.w, p.h, p.m, x, y, n, ok)
				}
			}
		}
	}
}

func TestRevealInvalid(t *testing.T) {
	b, err := New(8, 8, 10, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []Point{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, -100}} {
		if o := b.Reveal(p.X, p.Y); o != Invalid {
			t.Fatalf("reveal %v on a fresh board: have %v", p, o)
		}
	}
	if b.Placed() {
		t.Fatal("out of bounds reveal placed mines")
	}

	if o := b.Reveal(3, 3); o != Valid {
		t.Fatalf("have %v, want valid", o)
	}
	exposed := slices.Clone(b.exposed)
	mines := slices.Clone(b.field.mines)
	counts := slices.Clone(b.field.counts)

	for _, p := range []Point{{3, 3}, {-1, 3}, {3, 8}} {
		if o := b.Reveal(p.X, p.Y); o != Invalid {
			t.Fatalf("reveal %v: have %v, want invalid", p, o)
		}
	}
	if !slices.Equal(exposed, b.exposed) {
		t.Fatal("invalid reveal changed the exposed set")
	}
	if !slices.Equal(mines, b.field.mines) || !slices.Equal(counts, b.field.counts) {
		t.Fatal("invalid reveal changed the minefield")
	}
}

func TestFloodFill(t *testing.T) {
	b := boardWith(t,
		". . . . .",
		". . . . .",
		". . . * .",
		". . . . .",
	)
	if o := b.Reveal(0, 0); o != Valid {
		t.Fatalf("have %v, want valid", o)
	}

	want := View{Width: 5, Height: 4, Cells: []Cell{
		Revealed(0), Revealed(0), Revealed(0), Revealed(0), Revealed(0),
		Revealed(0), Revealed(0), Revealed(1), Revealed(1), Revealed(1),
		Revealed(0), Revealed(0), Revealed(1), Hidden, Hidden,
		Revealed(0), Revealed(0), Revealed(1), Hidden, Hidden,
	}}
	if diff := cmp.Diff(want, b.Visible(), cmp.AllowUnexported(Cell{})); diff != "" {
		t.Fatalf("visible state mismatch (-want +have):\n%s", diff)
	}
	if b.Lost() || b.Won() {
		t.Fatalf("lost=%v won=%v", b.Lost(), b.Won())
	}
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	b := boardWith(t,
		". . * . .",
		". . * . .",
		". . * . .",
	)
	if o := b.Reveal(4, 1); o != Valid {
		t.Fatalf("have %v, want valid", o)
	}
	for y := range 3 {
		for x := range 5 {
			if want := x >= 3; b.Exposed(x, y) != want {
				t.Errorf("%d:%d exposed=%v, want %v", x, y, b.Exposed(x, y), want)
			}
		}
	}
}

func TestZeroRegionProperties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		b, err := New(30, 16, 60, r)
		if err != nil {
			t.Fatal(err)
		}
		b.Reveal(r.IntN(30), r.IntN(16))

		for i, open := range b.exposed {
			if !open {
				continue
			}
			if b.field.mines[i] {
				t.Fatalf("flood fill exposed a mine at %d", i)
			}
			if b.field.counts[i] == 0 {
				for j := range b.neighbours(i) {
					if !b.exposed[j] {
						t.Fatalf("zero square %d has a covered neighbour %d", i, j)
					}
				}
			}
		}
		if !slices.Equal(countAdjacent(b.field.mines, 30, 16), b.field.counts) {
			t.Fatal("cached counts drifted from the layout")
		}
	}
}

func TestFourByFourOneMine(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		b, err := New(4, 4, 1, r)
		if err != nil {
			t.Fatal(err)
		}
		b.Reveal(0, 0)
		o := b.Oracle()

		mines := 0
		for x := range 4 {
			for y := range 4 {
				if o.Mine(x, y) {
					mines++
					if x <= 1 && y <= 1 {
						t.Fatalf("mine at %d:%d inside the start area", x, y)
					}
					if b.Exposed(x, y) {
						t.Fatalf("mine at %d:%d exposed", x, y)
					}
				}
			}
		}
		if mines != 1 {
			t.Fatalf("have %d mines, want 1", mines)
		}
		for _, p := range []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			if !b.Exposed(p.X, p.Y) {
				t.Fatalf("%v not exposed", p)
			}
		}
	}
}

func TestTwoByTwoNoMines(t *testing.T) {
	for _, p := range []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		b, err := New(2, 2, 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		b.Reveal(p.X, p.Y)
		if !b.Won() || b.Lost() || !b.IsOver() {
			t.Fatalf("reveal %v: won=%v lost=%v over=%v", p, b.Won(), b.Lost(), b.IsOver())
		}
		if b.Visible().Hidden() != 0 {
			t.Fatalf("reveal %v left hidden cells", p)
		}
	}
}

func TestLosing(t *testing.T) {
	b := boardWith(t,
		"* . .",
		". . .",
		". . .",
	)
	b.Reveal(0, 0)
	if !b.Lost() || b.Won() || !b.IsOver() {
		t.Fatalf("won=%v lost=%v over=%v", b.Won(), b.Lost(), b.IsOver())
	}
	if c := b.Uncovered().At(0, 0); c != ExplodedCell {
		t.Fatalf("have %v, want exploded mine", c)
	}
}

func TestRandomPlayOutcomes(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		b, err := New(9, 9, 10, r)
		if err != nil {
			t.Fatal(err)
		}
		for !b.IsOver() {
			b.Reveal(r.IntN(9), r.IntN(9))
		}
		if b.Won() == b.Lost() {
			t.Fatalf("won=%v lost=%v", b.Won(), b.Lost())
		}

		complement := true
		intersects := false
		for i, mine := range b.field.mines {
			complement = complement && mine != b.exposed[i]
			intersects = intersects || mine && b.exposed[i]
		}
		if b.Won() != complement || b.Lost() != intersects {
			t.Fatalf("won=%v complement=%v lost=%v intersects=%v",
				b.Won(), complement, b.Lost(), intersects)
		}
	}
}

func TestCapabilities(t *testing.T) {
	b, err := New(9, 9, 10, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Fair().(Oracle); ok {
		t.Fatal("fair view satisfies Oracle")
	}
	o := b.Oracle()
	if o.Placed() || o.Mine(0, 0) {
		t.Fatal("oracle reports mines before placement")
	}

	b.Reveal(4, 4)
	n := 0
	for x := range 9 {
		for y := range 9 {
			if o.Mine(x, y) {
				n++
			}
			if c, ok := b.Visible().At(x, y).Count(); ok && c != o.Count(x, y) {
				t.Fatalf("%d:%d shows %d, oracle says %d", x, y, c, o.Count(x, y))
			}
		}
	}
	if n != 10 {
		t.Fatalf("oracle sees %d mines, want 10", n)
	}
	if o.Mine(-1, 0) || o.Count(9, 9) != 0 {
		t.Fatal("oracle answered for a square off the board")
	}
}
