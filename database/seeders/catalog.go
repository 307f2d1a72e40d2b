package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/database"
)

func init() {
	Register("admin", SeedAdmin)
	Register("plants", SeedPlants)
}

const seedSeller = "seller@plantnet.local"

// SeedAdmin upserts the account named by SEED_ADMIN_EMAIL as admin.
func SeedAdmin(ctx context.Context, db *mongo.Database) error {
	email := config.Get("SEED_ADMIN_EMAIL", "admin@plantnet.local")
	_, err := db.Collection(database.Users).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"role": models.RoleAdmin, "status": models.UserStatusVerified},
			"$setOnInsert": bson.M{"name": "Admin", "timestamp": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// SeedPlants inserts a small catalogue owned by one seller. It is a no-op
// once the seller has any listings.
func SeedPlants(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(database.Users).UpdateOne(ctx,
		bson.M{"email": seedSeller},
		bson.M{"$setOnInsert": bson.M{
			"name":      "Green Corner",
			"role":      models.RoleSeller,
			"status":    models.UserStatusVerified,
			"timestamp": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	plants := db.Collection(database.Plants)
	n, err := plants.CountDocuments(ctx, bson.M{"seller.email": seedSeller})
	if err != nil || n > 0 {
		return err
	}

	docs := make([]interface{}, 0, len(catalog))
	for _, p := range catalog {
		p.Seller = models.SellerInfo{Name: "Green Corner", Email: seedSeller}
		docs = append(docs, p)
	}
	_, err = plants.InsertMany(ctx, docs)
	return err
}

var catalog = []models.Plant{
	{Name: "Money Plant", Category: "Indoor", Description: "Trailing pothos, tolerates low light.", Price: 8, Quantity: 40},
	{Name: "Snake Plant", Category: "Indoor", Description: "Upright leaves, water every two weeks.", Price: 15, Quantity: 25},
	{Name: "Rose", Category: "Flowering", Description: "Hybrid tea rose in a 10in pot.", Price: 12, Quantity: 30},
	{Name: "Aloe Vera", Category: "Succulent", Description: "Medicinal succulent, full sun.", Price: 6, Quantity: 50},
	{Name: "Tulsi", Category: "Medicinal", Description: "Holy basil, likes warm weather.", Price: 4, Quantity: 60},
}
