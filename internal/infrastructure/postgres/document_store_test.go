package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

func TestBuildQuery_Filtros(t *testing.T) {
	sql, args, err := buildQuery(repository.Query{
		Collection: "employees",
		Filters: []repository.Filter{
			repository.Eq("branch_id", "b1"),
			repository.In("status", "draft", "published"),
		},
		Limit: 5,
	})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb AND (data @> $3::jsonb OR data @> $4::jsonb) ORDER BY id LIMIT $5`,
		sql)
	assert.Equal(t, []any{"employees", `{"branch_id":"b1"}`, `{"status":"draft"}`, `{"status":"published"}`, 5}, args)
}

func TestBuildQuery_InVacio(t *testing.T) {
	_, _, err := buildQuery(repository.Query{Collection: "c", Filters: []repository.Filter{repository.In("x")}})
	assert.Error(t, err)
}

func TestDecodeData_Vacio(t *testing.T) {
	f, err := decodeData(nil)
	require.NoError(t, err)
	assert.NotNil(t, f)
}
