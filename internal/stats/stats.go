// Package stats measures how often a policy wins.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-bench/internal/mines"
	"github.com/vancomm/minesweeper-bench/internal/policy"
)

type Preset struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MineCount int    `json:"mine_count"`
}

func (p Preset) String() string {
	return fmt.Sprintf("%s %dx%d(%d)", p.Name, p.Width, p.Height, p.MineCount)
}

var (
	Beginner     = Preset{Name: "beginner", Width: 9, Height: 9, MineCount: 10}
	Intermediate = Preset{Name: "intermediate", Width: 16, Height: 16, MineCount: 40}
	Expert       = Preset{Name: "expert", Width: 30, Height: 16, MineCount: 99}
)

func Presets() []Preset {
	return []Preset{Beginner, Intermediate, Expert}
}

func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

var ErrNoIterations = errors.New("iterations must be positive")

// PlayGame plays one game to the end. A guess the board rejects ends the game
// as a loss.
func PlayGame(p policy.Policy, preset Preset, r *rand.Rand) (won bool, moves int, err error) {
	if r == nil {
		r = mines.NewRand()
	}
	b, err := mines.New(preset.Width, preset.Height, preset.MineCount, r)
	if err != nil {
		return false, 0, err
	}
	for {
		g := p.Guess(b, r)
		moves++
		if b.Reveal(g.X, g.Y) == mines.Invalid {
			return false, moves, nil
		}
		if b.IsOver() {
			return b.Won(), moves, nil
		}
	}
}

type Result struct {
	Preset   Preset        `json:"preset"`
	Policy   string        `json:"policy"`
	Games    int           `json:"games"`
	Wins     int           `json:"wins"`
	Moves    int           `json:"moves"`
	Duration time.Duration `json:"duration"`
}

func (r Result) Rate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

func (r Result) String() string {
	return fmt.Sprintf("Win rate on %s with %s: %.2f%% (%d/%d)",
		r.Preset.Name, r.Policy, r.Rate()*100, r.Wins, r.Games)
}

type Options struct {
	Preset     Preset
	Policy     policy.Policy
	Iterations int
	Workers    int
	Seed       uint64
	Logger     *slog.Logger
}

type tally struct {
	games, wins, moves int
}

// Run plays opts.Iterations games split across opts.Workers goroutines. Each
// worker owns its boards and its generator, seeded from opts.Seed and the
// worker index, so a run is reproducible for a fixed worker count.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Iterations <= 0 {
		return Result{}, ErrNoIterations
	}
	workers := max(1, min(opts.Workers, opts.Iterations))
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	tallies := make([]tally, workers)
	g, gCtx := errgroup.WithContext(ctx)
	for w := range workers {
		n := opts.Iterations / workers
		if w < opts.Iterations%workers {
			n++
		}
		g.Go(func() error {
			r := rand.New(rand.NewPCG(opts.Seed, uint64(w)))
			for range n {
				if err := gCtx.Err(); err != nil {
					return err
				}
				won, moves, err := PlayGame(opts.Policy, opts.Preset, r)
				if err != nil {
					return err
				}
				tallies[w].games++
				tallies[w].moves += moves
				if won {
					tallies[w].wins++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("unable to play %s: %w", opts.Preset, err)
	}

	res := Result{
		Preset:   opts.Preset,
		Policy:   opts.Policy.Name(),
		Duration: time.Since(start),
	}
	for _, t := range tallies {
		res.Games += t.games
		res.Wins += t.wins
		res.Moves += t.moves
	}

	logger.Info("finished run",
		slog.String("preset", res.Preset.Name),
		slog.String("policy", res.Policy),
		slog.Int("games", res.Games),
		slog.Int("wins", res.Wins),
		slog.Float64("rate", res.Rate()),
		slog.Duration("duration", res.Duration),
	)

	return res, nil
}

// RunAll runs every preset in turn, like the classic Beginner, Intermediate
// and Expert comparison.
func RunAll(ctx context.Context, presets []Preset, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(presets))
	for _, p := range presets {
		opts.Preset = p
		res, err := Run(ctx, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
