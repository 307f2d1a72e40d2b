package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/collection"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// EnrichmentService joins orders to their plants for display.
type EnrichmentService struct {
	orders OrderStore
	plants PlantStore
}

func NewEnrichmentService(orders OrderStore, plants PlantStore) *EnrichmentService {
	return &EnrichmentService{orders: orders, plants: plants}
}

// CustomerOrders returns email's orders, each carrying its plant's name,
// imageURL and category. Orders whose plant no longer exists are dropped.
func (s *EnrichmentService) CustomerOrders(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	orders, err := s.orders.ByCustomer(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, orders)
}

// SellerOrders is CustomerOrders for the orders placed against email's plants.
func (s *EnrichmentService) SellerOrders(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	orders, err := s.orders.BySeller(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, orders)
}

func (s *EnrichmentService) enrich(ctx context.Context, orders []models.Order) ([]models.EnrichedOrder, error) {
	out := make([]models.EnrichedOrder, 0, len(orders))
	if len(orders) == 0 {
		return out, nil
	}

	ids := make([]primitive.ObjectID, len(orders))
	for i, o := range orders {
		id, err := primitive.ObjectIDFromHex(o.PlantID)
		if err != nil {
			return nil, fmt.Errorf("order %s has plantId %q: %w", o.ID.Hex(), o.PlantID, ErrDataIntegrity)
		}
		ids[i] = id
	}

	plants, err := s.plants.FindByIDs(ctx, collection.Unique(ids))
	if err != nil {
		return nil, err
	}
	byID := collection.KeyBy(plants, func(p models.Plant) primitive.ObjectID { return p.ID })

	for i, o := range orders {
		p, ok := byID[ids[i]]
		if !ok {
			metrics.EnrichedOrdersDropped.Inc()
			logger.WithCtx(ctx).Warn("enrichment: plant missing, order dropped", "order_id", o.ID.Hex(), "plant_id", o.PlantID)
			continue
		}
		out = append(out, models.EnrichedOrder{
			Order:    o,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Category: p.Category,
		})
	}
	return out, nil
}
