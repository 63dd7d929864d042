package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-bench/internal/stats"
)

func TestResultsAccumulate(t *testing.T) {
	r, err := NewResults(setupTestDB(t))
	require.NoError(t, err)

	run := stats.Result{
		Preset:   stats.Beginner,
		Policy:   "random",
		Games:    10,
		Wins:     3,
		Moves:    45,
		Duration: time.Second,
	}
	total, err := r.Add(run)
	require.NoError(t, err)
	assert.Equal(t, run, total)

	total, err = r.Add(run)
	require.NoError(t, err)
	assert.Equal(t, 20, total.Games)
	assert.Equal(t, 6, total.Wins)
	assert.Equal(t, 90, total.Moves)
	assert.Equal(t, 2*time.Second, total.Duration)

	got, err := r.Get(stats.Beginner.Name, "random")
	require.NoError(t, err)
	assert.Equal(t, total, got)
}

func TestResultsAll(t *testing.T) {
	r, err := NewResults(setupTestDB(t))
	require.NoError(t, err)

	for _, res := range []stats.Result{
		{Preset: stats.Expert, Policy: "logic", Games: 1},
		{Preset: stats.Beginner, Policy: "random", Games: 2},
		{Preset: stats.Beginner, Policy: "cheating", Games: 3, Wins: 3},
	} {
		_, err := r.Add(res)
		require.NoError(t, err)
	}

	all, err := r.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cheating", all[0].Policy)
	assert.Equal(t, "random", all[1].Policy)
	assert.Equal(t, "expert", all[2].Preset.Name)

	require.NoError(t, r.Reset(stats.Expert.Name, "logic"))
	_, err = r.Get(stats.Expert.Name, "logic")
	assert.ErrorIs(t, err, ErrNotFound)
}
