package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// GameRecord is a finished game. Boards themselves are never stored.
type GameRecord struct {
	GameRecordId uuid.UUID          `db:"game_record_id"`
	PlayerId     *int64             `db:"player_id"`
	Width        int                `db:"width"`
	Height       int                `db:"height"`
	MineCount    int                `db:"mine_count"`
	Won          bool               `db:"won"`
	Moves        int                `db:"moves"`
	StartedAt    time.Time          `db:"started_at"`
	EndedAt      time.Time          `db:"ended_at"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

type CreateGameRecordParams struct {
	GameRecordId uuid.UUID
	PlayerId     *int64
	Width        int
	Height       int
	MineCount    int
	Won          bool
	Moves        int
	StartedAt    time.Time
	EndedAt      time.Time
}

func (q *Queries) CreateGameRecord(ctx context.Context, p CreateGameRecordParams) (*GameRecord, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			game_record_id, player_id, width, height, mine_count, won, moves, started_at, ended_at
		)
		VALUES (
			@game_record_id, @player_id, @width, @height, @mine_count, @won, @moves, @started_at, @ended_at
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"game_record_id": p.GameRecordId,
			"player_id":      p.PlayerId,
			"width":          p.Width,
			"height":         p.Height,
			"mine_count":     p.MineCount,
			"won":            p.Won,
			"moves":          p.Moves,
			"started_at":     p.StartedAt,
			"ended_at":       p.EndedAt,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRecord])
}

type Record struct {
	GameRecordId string  `json:"game_record_id" db:"game_record_id"`
	Username     *string `json:"username" db:"username"`
	Width        int     `json:"width" db:"width"`
	Height       int     `json:"height" db:"height"`
	MineCount    int     `json:"mine_count" db:"mine_count"`
	Moves        int     `json:"moves" db:"moves"`
	PlaytimeMs   float64 `json:"playtime_ms" db:"playtime_ms"`
}

type BoardParams struct {
	Width     int
	Height    int
	MineCount int
}

type RecordFilter struct {
	Username *string
	Params   *BoardParams
	Limit    int
}

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.Params.Width
		args["height"] = f.Params.Height
		args["mineCount"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// GetRecords lists won games, fastest first.
func (q *Queries) GetRecords(ctx context.Context, filter RecordFilter) ([]Record, error) {
	query := `
	SELECT
		game_record_id::text,
		username,
		width,
		height,
		mine_count,
		moves,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_record
		LEFT OUTER JOIN player using (player_id)
	WHERE won = true
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}
	query += ";"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
