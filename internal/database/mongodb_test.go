package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// unreachableCollection returns a collection whose server never answers, so
// every operation fails fast on server selection.
func unreachableCollection(t *testing.T, name string) *mongo.Collection {
	t.Helper()
	opts := options.Client().ApplyURI("mongodb://127.0.0.1:1").SetServerSelectionTimeout(100 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("glovebox_test").Collection(name)
}

func TestEnsureIndexesReportsCollection(t *testing.T) {
	col := unreachableCollection(t, "logs")
	err := EnsureIndexes(context.Background(), col, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logs")

	err = EnsureIndex(context.Background(), col, true, "email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logs")
}

func TestEnsureIndexesNoModels(t *testing.T) {
	assert.NoError(t, EnsureIndexes(context.Background(), unreachableCollection(t, "empty")))
}
