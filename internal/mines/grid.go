package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type cellState int8

const (
	hidden cellState = iota
	revealed
	/* post-game only, see [Board.Uncovered] */
	unexploded
	exploded
)

// Cell is what a player can see of one square: either nothing ([Hidden]) or
// its adjacency count. The post-game view additionally marks mines.
type Cell struct {
	state cellState
	count int8
}

// Hidden is a cell the player has not exposed yet.
var Hidden = Cell{}

// Revealed returns an exposed cell with n mined neighbours.
func Revealed(n int) Cell {
	return Cell{state: revealed, count: int8(n)}
}

var (
	// MineCell is an unexposed mine shown after the game is over.
	MineCell = Cell{state: unexploded}
	// ExplodedCell is the exposed mine that ended the game.
	ExplodedCell = Cell{state: exploded}
)

func (c Cell) IsHidden() bool {
	return c.state == hidden
}

func (c Cell) IsMine() bool {
	return c.state == unexploded || c.state == exploded
}

// Count reports the adjacency count of an exposed cell. ok is false for
// hidden cells and mines.
func (c Cell) Count() (n int, ok bool) {
	if c.state != revealed {
		return 0, false
	}
	return int(c.count), true
}

func (c Cell) String() string {
	switch c.state {
	case hidden:
		return "-"
	case revealed:
		if c.count == 0 {
			return "."
		}
		return strconv.Itoa(int(c.count))
	case unexploded:
		return "*"
	default:
		return "!"
	}
}

// MarshalJSON encodes hidden cells as null, exposed cells as their count and
// mines as "*" or "!".
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.state {
	case hidden:
		return []byte("null"), nil
	case revealed:
		return []byte(strconv.Itoa(int(c.count))), nil
	default:
		return json.Marshal(c.String())
	}
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch s {
	case "null":
		*c = Hidden
		return nil
	case `"*"`:
		*c = MineCell
		return nil
	case `"!"`:
		*c = ExplodedCell
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 8 {
		return fmt.Errorf("invalid cell %s", s)
	}
	*c = Revealed(n)
	return nil
}

// View is a row-major snapshot of the cells a player can see.
type View struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

func newView(width, height int) View {
	return View{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height), // all Hidden
	}
}

func (v View) At(x, y int) Cell {
	return v.Cells[y*v.Width+x]
}

// Hidden counts the cells that are still covered.
func (v View) Hidden() int {
	n := 0
	for _, c := range v.Cells {
		if c.IsHidden() {
			n++
		}
	}
	return n
}

func (v View) String() string {
	var b strings.Builder
	for y := range v.Height {
		for x := range v.Width {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.At(x, y).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
