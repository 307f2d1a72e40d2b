package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// PlantRepository handles database operations for Plant.
type PlantRepository struct {
	col *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{col: db.Collection(database.Plants)}
}

// Create inserts p and sets its ID.
func (r *PlantRepository) Create(ctx context.Context, p *models.Plant) error {
	defer metrics.ObserveDBQuery(database.Plants, "insert_one", time.Now())

	p.ID = primitive.NewObjectID()
	_, err := r.col.InsertOne(ctx, p)
	return translate(err)
}

// All returns every plant in store order.
func (r *PlantRepository) All(ctx context.Context) ([]models.Plant, error) {
	defer metrics.ObserveDBQuery(database.Plants, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	plants := []models.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Plant, error) {
	defer metrics.ObserveDBQuery(database.Plants, "find_one", time.Now())

	var p models.Plant
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, translate(err)
}

// FindByIDs fetches all plants in ids with one $in query.
func (r *PlantRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Plant, error) {
	defer metrics.ObserveDBQuery(database.Plants, "find_in", time.Now())

	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var plants []models.Plant
	if err := cur.All(ctx, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// Update overwrites the listing fields of a plant. Quantity and seller are
// left alone. It reports whether the plant exists.
func (r *PlantRepository) Update(ctx context.Context, id primitive.ObjectID, p models.Plant) (bool, error) {
	defer metrics.ObserveDBQuery(database.Plants, "update_one", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"category":    p.Category,
		"description": p.Description,
		"price":       p.Price,
		"imageURL":    p.ImageURL,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *PlantRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	defer metrics.ObserveDBQuery(database.Plants, "delete_one", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Increment adds delta to the plant's quantity in one atomic update.
func (r *PlantRepository) Increment(ctx context.Context, id primitive.ObjectID, delta int) (bool, error) {
	defer metrics.ObserveDBQuery(database.Plants, "inc", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"quantity": delta}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Decrement subtracts delta only while quantity >= delta, so stock never
// goes negative. false means the plant is missing or short.
func (r *PlantRepository) Decrement(ctx context.Context, id primitive.ObjectID, delta int) (bool, error) {
	defer metrics.ObserveDBQuery(database.Plants, "dec", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gte": delta}},
		bson.M{"$inc": bson.M{"quantity": -delta}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
