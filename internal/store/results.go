package store

import (
	"database/sql"

	"github.com/vancomm/minesweeper-bench/internal/stats"
)

// Results accumulates [stats.Result] tallies per preset and policy.
type Results struct {
	s *Store
}

func NewResults(db *sql.DB) (*Results, error) {
	s, err := NewStore(db, "results")
	if err != nil {
		return nil, err
	}
	return &Results{s: s}, nil
}

func resultKey(preset, policy string) string {
	return preset + "/" + policy
}

// Add merges res into the stored tally and returns the new total.
func (r *Results) Add(res stats.Result) (stats.Result, error) {
	var total stats.Result
	err := r.s.Update(resultKey(res.Preset.Name, res.Policy), &total, func() error {
		total.Preset = res.Preset
		total.Policy = res.Policy
		total.Games += res.Games
		total.Wins += res.Wins
		total.Moves += res.Moves
		total.Duration += res.Duration
		return nil
	})
	return total, err
}

func (r *Results) Get(preset, policy string) (stats.Result, error) {
	var res stats.Result
	err := r.s.Get(resultKey(preset, policy), &res)
	return res, err
}

// All returns every tally ordered by preset then policy name.
func (r *Results) All() ([]stats.Result, error) {
	keys, err := r.s.Keys()
	if err != nil {
		return nil, err
	}
	all := make([]stats.Result, 0, len(keys))
	for _, k := range keys {
		var res stats.Result
		if err := r.s.Get(k, &res); err != nil {
			return nil, err
		}
		all = append(all, res)
	}
	return all, nil
}

func (r *Results) Reset(preset, policy string) error {
	return r.s.Delete(resultKey(preset, policy))
}
