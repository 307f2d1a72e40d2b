package migrations

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/migration"
)

func init() {
	// FirstOrCreate upserts by email; the unique index keeps two concurrent
	// saves from producing duplicate users.
	migration.Register("20260101000000_users_email_unique", index{
		collection: database.Users,
		name:       "email_unique",
		keys:       bson.D{{Key: "email", Value: 1}},
		unique:     true,
	})
	migration.Register("20260101000001_orders_customer_email", index{
		collection: database.Orders,
		name:       "customer_email",
		keys:       bson.D{{Key: "customer.email", Value: 1}},
	})
	migration.Register("20260101000002_orders_seller", index{
		collection: database.Orders,
		name:       "seller",
		keys:       bson.D{{Key: "seller", Value: 1}},
	})
	migration.Register("20260101000003_plants_seller_email", index{
		collection: database.Plants,
		name:       "seller_email",
		keys:       bson.D{{Key: "seller.email", Value: 1}},
	})
}
