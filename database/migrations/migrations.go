// Package migrations holds the index migrations for the plantNet collections.
// Each file registers itself from init(); cmd/plantnet blank-imports the
// package so `plantnet migrate` sees them all.
package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// index is a migration that creates one named index and drops it on rollback.
type index struct {
	collection string
	name       string
	keys       bson.D
	unique     bool
}

func (i index) Up(ctx context.Context, db *mongo.Database) error {
	opts := options.Index().SetName(i.name)
	if i.unique {
		opts.SetUnique(true)
	}
	_, err := db.Collection(i.collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: i.keys, Options: opts})
	return err
}

func (i index) Down(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(i.collection).Indexes().DropOne(ctx, i.name)
	return err
}
