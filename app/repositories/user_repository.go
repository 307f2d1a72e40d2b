package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.Users)}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveDBQuery(database.Users, "find_one", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, translate(err)
}

// FirstOrCreate inserts u when no user has its email and returns the stored
// document either way. The upsert makes concurrent first logins safe.
func (r *UserRepository) FirstOrCreate(ctx context.Context, u models.User) (models.User, error) {
	defer metrics.ObserveDBQuery(database.Users, "upsert", time.Now())

	u.ID = primitive.NilObjectID
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"email": u.Email},
		bson.M{"$setOnInsert": u},
		opts,
	).Decode(&stored)
	return stored, translate(err)
}

// AllExcept returns every user whose email is not email, in store order.
func (r *UserRepository) AllExcept(ctx context.Context, email string) ([]models.User, error) {
	defer metrics.ObserveDBQuery(database.Users, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"email": bson.M{"$ne": email}})
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// MarkRequested flips status to Requested unless it already is. It reports
// whether a document changed.
func (r *UserRepository) MarkRequested(ctx context.Context, email string) (bool, error) {
	defer metrics.ObserveDBQuery(database.Users, "update_one", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email, "status": bson.M{"$ne": models.UserStatusRequested}},
		bson.M{"$set": bson.M{"status": models.UserStatusRequested}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// SetRole stores role with status Verified and reports whether the user exists.
func (r *UserRepository) SetRole(ctx context.Context, email, role string) (bool, error) {
	defer metrics.ObserveDBQuery(database.Users, "update_one", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "status": models.UserStatusVerified}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
