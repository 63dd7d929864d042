package mines

import (
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type Outcome int8

const (
	// Invalid means the reveal changed nothing: the square is off the board
	// or already exposed.
	Invalid Outcome = iota
	Valid
)

func (o Outcome) String() string {
	if o == Valid {
		return "valid"
	}
	return "invalid"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "valid":
		*o = Valid
	case "invalid":
		*o = Invalid
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Board is a single game of Minesweeper. Mines are placed on the first
// successful [Board.Reveal] so that the first square and its neighbours are
// always safe.
//
// A Board is not safe for concurrent use.
type Board struct {
	width, height, mineCount int

	exposed []bool
	field   *minefield // nil until the first reveal
	rnd     *rand.Rand
}

// MaxArea is the largest number of squares a board may have.
const MaxArea = 1 << 24

// New creates a board without mines. mineCount must leave room for the 3x3
// area around any first click. If r is nil a randomly seeded generator is
// used.
func New(width, height, mineCount int, r *rand.Rand) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (have %dx%d)", ErrInvalidDimensions, width, height)
	}
	if width > MaxArea/height {
		return nil, fmt.Errorf(
			"%w (%dx%d is more than %d squares)",
			ErrInvalidDimensions, width, height, MaxArea,
		)
	}
	if mineCount < 0 {
		return nil, ErrNegativeMineCount
	}
	if free := width*height - maxExclusion(width, height); mineCount > free {
		return nil, fmt.Errorf(
			"%w (%d mines, at most %d fit on %dx%d)",
			ErrTooManyMines, mineCount, free, width, height,
		)
	}
	if r == nil {
		r = NewRand()
	}
	b := &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
		exposed:   make([]bool, width*height),
		rnd:       r,
	}
	return b, nil
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mineCount }

// Placed reports whether the mines have been laid out yet.
func (b *Board) Placed() bool { return b.field != nil }

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) Exposed(x, y int) bool {
	return b.InBounds(x, y) && b.exposed[y*b.width+x]
}

// neighbours yields the indices of the up to 8 squares around i.
func (b *Board) neighbours(i int) iter.Seq[int] {
	x, y := i%b.width, i/b.width
	return func(yield func(int) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 || !b.InBounds(x+dx, y+dy) {
					continue
				}
				if !yield((y+dy)*b.width + (x + dx)) {
					return
				}
			}
		}
	}
}

// Reveal opens the square at x,y. Opening a square with no mined neighbours
// opens its neighbours too, spreading through the whole zero region.
func (b *Board) Reveal(x, y int) Outcome {
	if !b.InBounds(x, y) {
		return Invalid
	}
	i := y*b.width + x
	if b.exposed[i] {
		return Invalid
	}
	if b.field == nil {
		b.field = newMinefield(b.width, b.height, b.mineCount, x, y, b.rnd)
	}

	b.exposed[i] = true
	todo := []int{i}
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if b.field.counts[j] != 0 {
			continue
		}
		for k := range b.neighbours(j) {
			if !b.exposed[k] {
				b.exposed[k] = true
				todo = append(todo, k)
			}
		}
	}

	return Valid
}

// Lost reports whether a mine has been exposed.
func (b *Board) Lost() bool {
	if b.field == nil {
		return false
	}
	for i, mine := range b.field.mines {
		if mine && b.exposed[i] {
			return true
		}
	}
	return false
}

// Won reports whether every square is either a mine or exposed, but not both.
func (b *Board) Won() bool {
	if b.field == nil {
		return false
	}
	for i, mine := range b.field.mines {
		if mine == b.exposed[i] {
			return false
		}
	}
	return true
}

func (b *Board) IsOver() bool {
	return b.Lost() || b.Won()
}

// Visible returns what the player knows: adjacency counts of exposed squares
// and [Hidden] everywhere else.
func (b *Board) Visible() View {
	v := newView(b.width, b.height)
	if b.field == nil {
		return v
	}
	for i, open := range b.exposed {
		if open {
			v.Cells[i] = Revealed(int(b.field.counts[i]))
		}
	}
	return v
}

// Uncovered returns the whole board as shown once a game is over: every safe
// square with its count and every mine marked, the exposed ones as
// [ExplodedCell]. It does not expose anything.
func (b *Board) Uncovered() View {
	v := newView(b.width, b.height)
	if b.field == nil {
		return v
	}
	for i, mine := range b.field.mines {
		switch {
		case mine && b.exposed[i]:
			v.Cells[i] = ExplodedCell
		case mine:
			v.Cells[i] = MineCell
		default:
			v.Cells[i] = Revealed(int(b.field.counts[i]))
		}
	}
	return v
}

// Fair returns a view of the board that only exposes what the player can see.
func (b *Board) Fair() Fair {
	return fairBoard{b}
}

// Oracle returns a view of the board that also exposes the mine layout.
func (b *Board) Oracle() Oracle {
	return oracleBoard{fairBoard{b}}
}
