package migrations

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestIndexUpThenDown(t *testing.T) {
	uri := os.Getenv("PLANTNET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PLANTNET_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	db := client.Database("plantnet_migrations_test")
	defer db.Drop(ctx)

	m := index{collection: "users", name: "email_unique", keys: bson.D{{Key: "email", Value: 1}}, unique: true}
	require.NoError(t, m.Up(ctx, db))

	users := db.Collection("users")
	_, err = users.InsertOne(ctx, bson.M{"email": "a@x.com"})
	require.NoError(t, err)
	_, err = users.InsertOne(ctx, bson.M{"email": "a@x.com"})
	assert.True(t, mongo.IsDuplicateKeyError(err))

	require.NoError(t, m.Down(ctx, db))
	_, err = users.InsertOne(ctx, bson.M{"email": "a@x.com"})
	assert.NoError(t, err)
}
