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

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.Orders)}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveDBQuery(database.Orders, "insert_one", time.Now())

	o.ID = primitive.NewObjectID()
	_, err := r.col.InsertOne(ctx, o)
	return translate(err)
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	defer metrics.ObserveDBQuery(database.Orders, "find_one", time.Now())

	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, translate(err)
}

// ByCustomer returns the orders placed by email, in store order.
func (r *OrderRepository) ByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"customer.email": email})
}

// BySeller returns the orders for plants sold by email, in store order.
func (r *OrderRepository) BySeller(ctx context.Context, email string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"seller": email})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	defer metrics.ObserveDBQuery(database.Orders, "find", time.Now())

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) DeleteIfStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	defer metrics.ObserveDBQuery(database.Orders, "delete_one", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "status": status})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// SwapStatus sets the status to "to" only if it is still "from", so two
// concurrent transitions cannot both win.
func (r *OrderRepository) SwapStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	defer metrics.ObserveDBQuery(database.Orders, "update_one", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
