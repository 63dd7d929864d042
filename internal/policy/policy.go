// Package policy holds the strategies that pick which square to open next.
//
// A strategy scores every square with a [Heatmap] and the highest score wins.
// Fair strategies ([Guesser]) only ever see [mines.Fair]; strategies allowed
// to cheat ([Cheater]) get [mines.Oracle]. Both are turned into a [Policy] by
// [AsFair] and [AsCheater], which decide the capability handed out.
package policy

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/vancomm/minesweeper-bench/internal/mines"
)

type Guesser interface {
	Name() string
	Heatmap(board mines.Fair, r *rand.Rand) Heatmap
}

type Cheater interface {
	Name() string
	Heatmap(board mines.Oracle, r *rand.Rand) Heatmap
}

// Policy is what drives a game.
type Policy interface {
	Name() string
	Guess(board *mines.Board, r *rand.Rand) mines.Point
}

type fairPolicy struct {
	g Guesser
}

func AsFair(g Guesser) Policy {
	return fairPolicy{g}
}

func (p fairPolicy) Name() string { return p.g.Name() }

func (p fairPolicy) Guess(board *mines.Board, r *rand.Rand) mines.Point {
	return p.g.Heatmap(board.Fair(), r).Argmax(board.Width())
}

type cheatingPolicy struct {
	c Cheater
}

func AsCheater(c Cheater) Policy {
	return cheatingPolicy{c}
}

func (p cheatingPolicy) Name() string { return p.c.Name() }

func (p cheatingPolicy) Guess(board *mines.Board, r *rand.Rand) mines.Point {
	return p.c.Heatmap(board.Oracle(), r).Argmax(board.Width())
}

var registry = map[string]Policy{
	"random":   AsFair(Random{}),
	"logic":    AsFair(Logic{}),
	"cheating": AsCheater(Cheating{}),
}

// ByName looks up one of the built-in policies.
func ByName(name string) (Policy, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (known: %v)", name, Names())
	}
	return p, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
