package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
)

func TestPlaceForcesCallerAndCopiesSeller(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)

	o, err := f.orders.Place(context.Background(), as("buyer@x.com"), services.OrderInput{
		PlantID:  p.ID.Hex(),
		Quantity: 2,
		Price:    20,
		Customer: models.CustomerInfo{Email: "victim@x.com", Name: "B", Address: "Dhaka"},
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@x.com", o.Customer.Email)
	assert.Equal(t, "Dhaka", o.Customer.Address)
	assert.Equal(t, "seller@x.com", o.Seller)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.False(t, o.ID.IsZero())
	assert.Equal(t, 2, o.Reserved)
	assert.Equal(t, 3, f.quantity(t, p), "placing reserves stock")
	assert.Equal(t, []string{services.EventInventoryAdjusted, services.EventOrderPlaced}, f.fired)
}

func TestPlaceBeyondStockIsRejectedAndCancelCannotMintStock(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 2)
	ctx := context.Background()

	_, err := f.orders.Place(ctx, as("buyer@x.com"), services.OrderInput{PlantID: p.ID.Hex(), Quantity: 5})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Empty(t, f.store.Snapshot().Orders)
	assert.Equal(t, 2, f.quantity(t, p))

	o, err := f.orders.Place(ctx, as("buyer@x.com"), services.OrderInput{PlantID: p.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, f.quantity(t, p))

	require.NoError(t, f.orders.Cancel(ctx, as("buyer@x.com"), o.ID.Hex()))
	assert.Equal(t, 2, f.quantity(t, p), "cancel gives back only what was reserved")
}

func TestCancelUnreservedOrderLeavesStockAlone(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)
	o := f.store.PutOrder(models.Order{PlantID: p.ID.Hex(), Quantity: 4, Status: models.OrderPending, Customer: models.CustomerInfo{Email: "buyer@x.com"}})

	require.NoError(t, f.orders.Cancel(context.Background(), as("buyer@x.com"), o.ID.Hex()))
	assert.Equal(t, 5, f.quantity(t, p))
	assert.Equal(t, []string{services.EventOrderCancelled}, f.fired)
}

// deliverAfterRead marks an order Delivered right after it is read, the
// way a seller's concurrent PATCH would.
type deliverAfterRead struct {
	services.OrderStore
}

func (s deliverAfterRead) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	o, err := s.OrderStore.FindByID(ctx, id)
	if err == nil && o.Status != models.OrderDelivered {
		_, _ = s.OrderStore.SwapStatus(ctx, id, o.Status, models.OrderDelivered)
	}
	return o, err
}

func TestCancelLosesToConcurrentDelivery(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)
	o := f.store.PutOrder(models.Order{PlantID: p.ID.Hex(), Quantity: 2, Reserved: 2, Status: models.OrderShipped, Customer: models.CustomerInfo{Email: "buyer@x.com"}})
	orders := services.NewOrderService(deliverAfterRead{f.store.Orders()}, f.store.Plants(), f.inventory, f.access, f.events)

	err := orders.Cancel(context.Background(), as("buyer@x.com"), o.ID.Hex())
	assert.ErrorIs(t, err, services.ErrConflict)

	left := f.store.Snapshot().Orders
	require.Len(t, left, 1)
	assert.Equal(t, models.OrderDelivered, left[0].Status)
	assert.Equal(t, 5, f.quantity(t, p))
	assert.Empty(t, f.fired)
}

func TestPlaceRequiresExistingPlant(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.Place(context.Background(), as("buyer@x.com"), services.OrderInput{
		PlantID:  primitive.NewObjectID().Hex(),
		Quantity: 1,
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Empty(t, f.store.Snapshot().Orders)
}

func TestCancelDeliveredIsConflictAndMutatesNothing(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)
	for _, status := range []string{models.OrderDelivered, "delivered"} {
		o := f.store.PutOrder(models.Order{
			PlantID:  p.ID.Hex(),
			Quantity: 1,
			Status:   status,
			Customer: models.CustomerInfo{Email: "buyer@x.com"},
		})
		before := f.store.Snapshot()

		err := f.orders.Cancel(context.Background(), as("buyer@x.com"), o.ID.Hex())
		assert.ErrorIs(t, err, services.ErrConflict, status)
		assert.Equal(t, before, f.store.Snapshot(), status)
	}
}

func TestCancelPendingRemovesExactlyThatOrderAndRestocks(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)
	keep := f.store.PutOrder(models.Order{PlantID: p.ID.Hex(), Quantity: 1, Status: models.OrderPending, Customer: models.CustomerInfo{Email: "buyer@x.com"}})
	drop := f.store.PutOrder(models.Order{PlantID: p.ID.Hex(), Quantity: 3, Reserved: 3, Status: models.OrderPending, Customer: models.CustomerInfo{Email: "buyer@x.com"}})

	require.NoError(t, f.orders.Cancel(context.Background(), as("buyer@x.com"), drop.ID.Hex()))

	orders := f.store.Snapshot().Orders
	require.Len(t, orders, 1)
	assert.Equal(t, keep.ID, orders[0].ID)
	assert.Equal(t, 8, f.quantity(t, p))
	assert.Equal(t, []string{services.EventInventoryAdjusted, services.EventOrderCancelled}, f.fired)
}

func TestCancelSkipsRestockWhenPlantIsGone(t *testing.T) {
	f := newFixture(t)
	o := f.store.PutOrder(models.Order{
		PlantID:  primitive.NewObjectID().Hex(),
		Quantity: 2,
		Reserved: 2,
		Status:   models.OrderShipped,
		Customer: models.CustomerInfo{Email: "buyer@x.com"},
	})

	require.NoError(t, f.orders.Cancel(context.Background(), as("buyer@x.com"), o.ID.Hex()))
	assert.Empty(t, f.store.Snapshot().Orders)
}

func TestCancelGuards(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)
	o := f.store.PutOrder(models.Order{PlantID: p.ID.Hex(), Quantity: 1, Status: models.OrderPending, Customer: models.CustomerInfo{Email: "buyer@x.com"}})
	ctx := context.Background()

	assert.ErrorIs(t, f.orders.Cancel(ctx, as("seller@x.com"), o.ID.Hex()), services.ErrUnauthorized)
	assert.ErrorIs(t, f.orders.Cancel(ctx, as("buyer@x.com"), primitive.NewObjectID().Hex()), services.ErrNotFound)
	assert.ErrorIs(t, f.orders.Cancel(ctx, as("buyer@x.com"), "zzz"), services.ErrValidation)
	assert.Len(t, f.store.Snapshot().Orders, 1)

	assert.NoError(t, f.orders.Cancel(ctx, as("admin@x.com"), o.ID.Hex()))
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	f := newFixture(t)
	p := f.plant(t, "Rose", 5)
	o := f.store.PutOrder(models.Order{PlantID: p.ID.Hex(), Quantity: 1, Status: models.OrderPending, Seller: "seller@x.com"})
	ctx := context.Background()
	seller := as("seller@x.com")

	_, err := f.orders.UpdateStatus(ctx, seller, o.ID.Hex(), models.OrderDelivered)
	assert.ErrorIs(t, err, services.ErrConflict, "skipping Shipped")

	got, err := f.orders.UpdateStatus(ctx, seller, o.ID.Hex(), "shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, got.Status)

	got, err = f.orders.UpdateStatus(ctx, seller, o.ID.Hex(), models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, got.Status)

	_, err = f.orders.UpdateStatus(ctx, seller, o.ID.Hex(), models.OrderShipped)
	assert.ErrorIs(t, err, services.ErrConflict, "Delivered is terminal")

	_, err = f.orders.UpdateStatus(ctx, seller, o.ID.Hex(), "Lost")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestUpdateStatusGuard(t *testing.T) {
	f := newFixture(t)
	o := f.store.PutOrder(models.Order{PlantID: primitive.NewObjectID().Hex(), Quantity: 1, Status: models.OrderPending, Seller: "seller@x.com"})

	_, err := f.orders.UpdateStatus(context.Background(), as("buyer@x.com"), o.ID.Hex(), models.OrderShipped)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = f.orders.UpdateStatus(context.Background(), as("admin@x.com"), o.ID.Hex(), models.OrderShipped)
	assert.NoError(t, err)
}
