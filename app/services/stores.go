package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
)

// UserStore is satisfied by repositories.UserRepository and memstore.Users.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FirstOrCreate(ctx context.Context, u models.User) (models.User, error)
	AllExcept(ctx context.Context, email string) ([]models.User, error)
	MarkRequested(ctx context.Context, email string) (bool, error)
	SetRole(ctx context.Context, email, role string) (bool, error)
}

// PlantStore is satisfied by repositories.PlantRepository and memstore.Plants.
type PlantStore interface {
	Create(ctx context.Context, p *models.Plant) error
	All(ctx context.Context) ([]models.Plant, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Plant, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Plant, error)
	Update(ctx context.Context, id primitive.ObjectID, p models.Plant) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Increment(ctx context.Context, id primitive.ObjectID, delta int) (bool, error)
	Decrement(ctx context.Context, id primitive.ObjectID, delta int) (bool, error)
}

// OrderStore is satisfied by repositories.OrderRepository and memstore.Orders.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	ByCustomer(ctx context.Context, email string) ([]models.Order, error)
	BySeller(ctx context.Context, email string) ([]models.Order, error)
	DeleteIfStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error)
	SwapStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error)
}
