package mines

// Fair is the part of a board a player is entitled to look at.
type Fair interface {
	Width() int
	Height() int
	Visible() View
}

// Oracle additionally knows where the mines are. Mine and Count report false
// and 0 until the mines are placed.
type Oracle interface {
	Fair
	Placed() bool
	Mine(x, y int) bool
	Count(x, y int) int
}

type fairBoard struct {
	b *Board
}

func (f fairBoard) Width() int    { return f.b.width }
func (f fairBoard) Height() int   { return f.b.height }
func (f fairBoard) Visible() View { return f.b.Visible() }

type oracleBoard struct {
	fairBoard
}

func (o oracleBoard) Placed() bool {
	return o.b.field != nil
}

func (o oracleBoard) Mine(x, y int) bool {
	if o.b.field == nil || !o.b.InBounds(x, y) {
		return false
	}
	return o.b.field.mines[y*o.b.width+x]
}

func (o oracleBoard) Count(x, y int) int {
	if o.b.field == nil || !o.b.InBounds(x, y) {
		return 0
	}
	return int(o.b.field.counts[y*o.b.width+x])
}
