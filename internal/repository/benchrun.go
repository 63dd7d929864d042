package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-bench/internal/stats"
)

type BenchRun struct {
	BenchRunId int64              `json:"bench_run_id" db:"bench_run_id"`
	Preset     string             `json:"preset" db:"preset"`
	Width      int                `json:"width" db:"width"`
	Height     int                `json:"height" db:"height"`
	MineCount  int                `json:"mine_count" db:"mine_count"`
	Policy     string             `json:"policy" db:"policy"`
	Games      int                `json:"games" db:"games"`
	Wins       int                `json:"wins" db:"wins"`
	Moves      int64              `json:"moves" db:"moves"`
	DurationMs int64              `json:"duration_ms" db:"duration_ms"`
	Seed       int64              `json:"seed" db:"seed"`
	CreatedAt  pgtype.Timestamptz `json:"created_at" db:"created_at"`
}

func (q *Queries) CreateBenchRun(ctx context.Context, res stats.Result, seed uint64) (*BenchRun, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO bench_run (
			preset, width, height, mine_count, policy, games, wins, moves, duration_ms, seed
		)
		VALUES (
			@preset, @width, @height, @mine_count, @policy, @games, @wins, @moves, @duration_ms, @seed
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"preset":      res.Preset.Name,
			"width":       res.Preset.Width,
			"height":      res.Preset.Height,
			"mine_count":  res.Preset.MineCount,
			"policy":      res.Policy,
			"games":       res.Games,
			"wins":        res.Wins,
			"moves":       res.Moves,
			"duration_ms": res.Duration.Milliseconds(),
			"seed":        int64(seed),
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[BenchRun])
}

type BenchRunFilter struct {
	Preset *string
	Policy *string
	Limit  int
}

func (f BenchRunFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Preset != nil {
		clauses = append(clauses, "preset = @preset")
		args["preset"] = *f.Preset
	}
	if f.Policy != nil {
		clauses = append(clauses, "policy = @policy")
		args["policy"] = *f.Policy
	}
	return strings.Join(clauses, " AND "), args
}

// ListBenchRuns returns runs newest first.
func (q *Queries) ListBenchRuns(ctx context.Context, filter BenchRunFilter) ([]BenchRun, error) {
	query := "SELECT * FROM bench_run"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY created_at DESC, bench_run_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[BenchRun])
}
