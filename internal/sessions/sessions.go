// Package sessions keeps the boards of games played over HTTP in memory.
package sessions

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-bench/internal/mines"
)

var ErrNotFound = errors.New("session not found")

type Params struct {
	Width     int
	Height    int
	MineCount int
	PlayerId  *int64
}

// Session is one game. The board is only touched with mu held.
type Session struct {
	Id       uuid.UUID
	PlayerId *int64

	mu        sync.Mutex
	board     *mines.Board
	moves     int
	startedAt time.Time
	endedAt   time.Time
	touchedAt time.Time // last fetch or reveal
}

// Snapshot is a consistent copy of a session's public state.
type Snapshot struct {
	SessionId string     `json:"session_id"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	MineCount int        `json:"mine_count"`
	Grid      mines.View `json:"grid"`
	Moves     int        `json:"moves"`
	Lost      bool       `json:"lost"`
	Won       bool       `json:"won"`
	Over      bool       `json:"over"`
	StartedAt int64      `json:"started_at"`
	EndedAt   *int64     `json:"ended_at,omitempty"`
}

func (s *Session) snapshot() Snapshot {
	b := s.board
	snap := Snapshot{
		SessionId: s.Id.String(),
		Width:     b.Width(),
		Height:    b.Height(),
		MineCount: b.MineCount(),
		Moves:     s.moves,
		Lost:      b.Lost(),
		Won:       b.Won(),
		Over:      b.IsOver(),
		StartedAt: s.startedAt.UnixMilli(),
	}
	if snap.Over {
		snap.Grid = b.Uncovered()
		e := s.endedAt.UnixMilli()
		snap.EndedAt = &e
	} else {
		snap.Grid = b.Visible()
	}
	return snap
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now().UTC()
	return s.snapshot()
}

// Reveal opens a square. Once the game is over every further reveal is
// invalid. finished is true only for the reveal that ended the game.
func (s *Session) Reveal(x, y int) (o mines.Outcome, snap Snapshot, finished bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchedAt = time.Now().UTC()
	if s.board.IsOver() {
		return mines.Invalid, s.snapshot(), false
	}
	o = s.board.Reveal(x, y)
	if o == mines.Valid {
		s.moves++
		if s.board.IsOver() {
			s.endedAt = time.Now().UTC()
			finished = true
		}
	}
	return o, s.snapshot(), finished
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	rnd      *rand.Rand
}

// NewRegistry creates an empty registry. Boards draw their mines from r,
// which must not be used elsewhere.
func NewRegistry(r *rand.Rand) *Registry {
	if r == nil {
		r = mines.NewRand()
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		rnd:      r,
	}
}

func (reg *Registry) Create(p Params) (*Session, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	/* seed each board separately so that no two sessions share a generator */
	r := rand.New(rand.NewPCG(reg.rnd.Uint64(), reg.rnd.Uint64()))
	board, err := mines.New(p.Width, p.Height, p.MineCount, r)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := &Session{
		Id:        uuid.New(),
		PlayerId:  p.PlayerId,
		board:     board,
		startedAt: now,
		touchedAt: now,
	}
	reg.sessions[s.Id] = s
	return s, nil
}

func (reg *Registry) Get(id uuid.UUID) (*Session, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	s, ok := reg.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (reg *Registry) Delete(id uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.sessions, id)
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// Sweep drops games, finished or not, that nobody has fetched or played
// since cutoff and returns how many went.
func (reg *Registry) Sweep(cutoff time.Time) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	n := 0
	for id, s := range reg.sessions {
		if s.idleSince().Before(cutoff) {
			delete(reg.sessions, id)
			n++
		}
	}
	return n
}
