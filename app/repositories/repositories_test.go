package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
)

// testDB connects to PLANTNET_TEST_MONGO_URI and returns a throwaway
// database, or skips the test.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("PLANTNET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PLANTNET_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("plantnet_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestPlantDecrementNeverGoesNegative(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	plants := repositories.NewPlantRepository(db)

	p := &models.Plant{Name: "Rose", Quantity: 5}
	require.NoError(t, plants.Create(ctx, p))

	ok, err := plants.Decrement(ctx, p.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = plants.Decrement(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := plants.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	ok, err = plants.Increment(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlantFindByIDs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	plants := repositories.NewPlantRepository(db)

	a := &models.Plant{Name: "A"}
	b := &models.Plant{Name: "B"}
	require.NoError(t, plants.Create(ctx, a))
	require.NoError(t, plants.Create(ctx, b))

	got, err := plants.FindByIDs(ctx, []primitive.ObjectID{a.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	_, err = plants.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserFirstOrCreateKeepsExisting(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	first, err := users.FirstOrCreate(ctx, models.User{Email: "a@x.com", Name: "A", Role: models.RoleCustomer})
	require.NoError(t, err)
	assert.False(t, first.ID.IsZero())

	again, err := users.FirstOrCreate(ctx, models.User{Email: "a@x.com", Name: "Changed", Role: models.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "A", again.Name)

	changed, err := users.MarkRequested(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = users.MarkRequested(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestOrderSwapStatus(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	orders := repositories.NewOrderRepository(db)

	o := &models.Order{PlantID: primitive.NewObjectID().Hex(), Quantity: 1, Status: models.OrderPending}
	require.NoError(t, orders.Create(ctx, o))

	ok, err := orders.SwapStatus(ctx, o.ID, models.OrderPending, models.OrderShipped)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = orders.SwapStatus(ctx, o.ID, models.OrderPending, models.OrderShipped)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderDeleteIfStatusMatchesCheckedStatusOnly(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	orders := repositories.NewOrderRepository(db)

	o := &models.Order{PlantID: primitive.NewObjectID().Hex(), Quantity: 1, Status: models.OrderShipped}
	require.NoError(t, orders.Create(ctx, o))

	ok, err := orders.DeleteIfStatus(ctx, o.ID, models.OrderPending)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = orders.FindByID(ctx, o.ID)
	require.NoError(t, err)

	ok, err = orders.DeleteIfStatus(ctx, o.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.True(t, ok)
}
