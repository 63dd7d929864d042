package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestRecordFilterWhereClause(t *testing.T) {
	clause, args := RecordFilter{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	username := "alice"
	clause, args = RecordFilter{
		Username: &username,
		Params:   &BoardParams{Width: 9, Height: 9, MineCount: 10},
	}.WhereClause()
	assert.Equal(t,
		"username = @username AND width = @width AND height = @height AND mine_count = @mineCount",
		clause,
	)
	assert.Equal(t, pgx.NamedArgs{
		"username":  "alice",
		"width":     9,
		"height":    9,
		"mineCount": 10,
	}, args)
}

func TestBenchRunFilterWhereClause(t *testing.T) {
	policy := "logic"
	clause, args := BenchRunFilter{Policy: &policy}.WhereClause()
	assert.Equal(t, "policy = @policy", clause)
	assert.Equal(t, pgx.NamedArgs{"policy": "logic"}, args)
}
