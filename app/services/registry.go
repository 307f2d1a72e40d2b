package services

import "github.com/shashiranjanraj/plantnet/pkg/event"

// Stores groups the three collections the services read and write.
type Stores struct {
	Users  UserStore
	Plants PlantStore
	Orders OrderStore
}

// Registry holds one instance of every service, sharing stores and events.
type Registry struct {
	Access     *AccessService
	Users      *UserService
	Plants     *PlantService
	Inventory  *InventoryService
	Orders     *OrderService
	Enrichment *EnrichmentService
}

func NewRegistry(st Stores, events *event.Dispatcher) *Registry {
	access := NewAccessService(st.Users)
	inventory := NewInventoryService(st.Plants, events)
	return &Registry{
		Access:     access,
		Users:      NewUserService(st.Users, access),
		Plants:     NewPlantService(st.Plants, access),
		Inventory:  inventory,
		Orders:     NewOrderService(st.Orders, st.Plants, inventory, access, events),
		Enrichment: NewEnrichmentService(st.Orders, st.Plants),
	}
}
