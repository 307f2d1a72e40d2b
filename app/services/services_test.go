package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories/memstore"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// fixture wires every service over one in-memory store.
type fixture struct {
	store     *memstore.Store
	events    *event.Dispatcher
	fired     []string
	access    *services.AccessService
	users     *services.UserService
	plants    *services.PlantService
	inventory *services.InventoryService
	orders    *services.OrderService
	enrich    *services.EnrichmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), events: event.New()}
	for _, name := range []string{services.EventOrderPlaced, services.EventOrderCancelled, services.EventInventoryAdjusted} {
		name := name
		f.events.Listen(name, func(context.Context, any) { f.fired = append(f.fired, name) })
	}

	reg := services.NewRegistry(services.Stores{
		Users:  f.store.Users(),
		Plants: f.store.Plants(),
		Orders: f.store.Orders(),
	}, f.events)
	f.access, f.users, f.plants = reg.Access, reg.Users, reg.Plants
	f.inventory, f.orders, f.enrich = reg.Inventory, reg.Orders, reg.Enrichment

	f.store.PutUser(models.User{Email: "admin@x.com", Role: models.RoleAdmin})
	f.store.PutUser(models.User{Email: "seller@x.com", Role: models.RoleSeller})
	f.store.PutUser(models.User{Email: "buyer@x.com", Role: models.RoleCustomer})
	return f
}

func as(email string) session.Session { return session.Session{Email: email} }

func (f *fixture) plant(t *testing.T, name string, qty int) models.Plant {
	t.Helper()
	return f.store.PutPlant(models.Plant{
		Name:     name,
		Category: "Flower",
		ImageURL: "https://img/" + name,
		Quantity: qty,
		Price:    10,
		Seller:   models.SellerInfo{Email: "seller@x.com"},
	})
}

func (f *fixture) quantity(t *testing.T, p models.Plant) int {
	t.Helper()
	got, err := f.store.Plants().FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	return got.Quantity
}
