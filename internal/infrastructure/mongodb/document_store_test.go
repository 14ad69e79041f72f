package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter([]repository.Filter{
		repository.Eq("branch_id", "b1"),
		repository.In("status", "draft", "published"),
	})
	require.NoError(t, err)
	assert.Equal(t, bson.D{
		{Key: "branch_id", Value: "b1"},
		{Key: "status", Value: bson.M{"$in": bson.A{"draft", "published"}}},
	}, f)

	_, err = buildFilter([]repository.Filter{{Field: "x", Op: "<", Value: 1}})
	assert.Error(t, err)
}

func TestDecodeRaw(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": "e1", "name": "Ana", "active": true, "days": bson.A{"lunes"}})
	require.NoError(t, err)

	doc, err := decodeRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, "e1", doc.ID)
	assert.Equal(t, "Ana", doc.Fields["name"])
	assert.Equal(t, true, doc.Fields["active"])
	assert.Equal(t, []any{"lunes"}, doc.Fields["days"])
	_, hasID := doc.Fields["_id"]
	assert.False(t, hasID)
}
